// Package split proposes new child anchors for over-budget documentation
// anchors. Candidates are the immediate subdirectories of the anchor's
// directory; a subdirectory qualifies when it holds enough files and enough
// of the parent's covered token mass.
package split

import (
	"sort"

	"github.com/dgallion1/doccover/internal/budget"
	"github.com/dgallion1/doccover/internal/repopath"
)

// Config holds the split policy. The minimums are policy constants, not
// physical limits; callers tune them per repository.
type Config struct {
	ThresholdPercent   float64 // budget percent above which an anchor should split
	MinFiles           int     // minimum files for a subdirectory to qualify
	MinCoveragePercent float64 // minimum share of parent covered tokens
	AnchorFileName     string  // file name for suggested anchors
}

// DefaultConfig returns the standard split policy.
func DefaultConfig() Config {
	return Config{
		ThresholdPercent:   budget.DefaultThresholdPercent,
		MinFiles:           3,
		MinCoveragePercent: 10,
		AnchorFileName:     "AGENTS.md",
	}
}

// Suggestion is one candidate child anchor.
type Suggestion struct {
	Directory         string   `json:"directory"`
	SuggestedNodePath string   `json:"suggested_node_path"`
	Files             []string `json:"files"`
	Tokens            int      `json:"tokens"`
	CoveragePercent   float64  `json:"coverage_percent"`
}

// Proposal is the advisor's answer for one anchor.
type Proposal struct {
	ShouldSplit bool         `json:"should_split"`
	Suggestions []Suggestion `json:"suggestions"`
}

// ProposeSplits suggests child anchors for the given anchor. An anchor at
// or under the budget threshold yields no proposal. Files directly inside
// the anchor directory belong to no candidate and are excluded from
// splitting; subdirectories that already have an anchor are dropped.
// Surviving candidates are ordered by coverage percent descending, with
// directory order breaking ties for reproducible output.
func ProposeSplits(anchorPath, anchorDir string, coveredPaths []string, contentByPath map[string]string, budgetPercent float64, existingAnchorDirs map[string]bool, cfg Config, opts budget.Options) Proposal {
	if cfg.ThresholdPercent <= 0 {
		cfg.ThresholdPercent = budget.DefaultThresholdPercent
	}
	if cfg.MinFiles <= 0 {
		cfg.MinFiles = 3
	}
	if cfg.MinCoveragePercent <= 0 {
		cfg.MinCoveragePercent = 10
	}
	if cfg.AnchorFileName == "" {
		cfg.AnchorFileName = "AGENTS.md"
	}

	if budgetPercent <= cfg.ThresholdPercent {
		return Proposal{Suggestions: make([]Suggestion, 0)}
	}

	// Group covered files by immediate subdirectory of the anchor.
	groups := make(map[string][]string)
	for _, file := range coveredPaths {
		dir := repopath.DirOf(file)
		if dir == anchorDir {
			continue
		}
		if !repopath.IsAncestorDir(anchorDir, dir) {
			continue
		}
		rel := dir
		if anchorDir != "" {
			rel = dir[len(anchorDir)+1:]
		}
		sub := repopath.Join(anchorDir, firstSegment(rel))
		if existingAnchorDirs[sub] {
			continue
		}
		groups[sub] = append(groups[sub], file)
	}

	totalTokens := budget.CoveredCodeTokens(coveredPaths, contentByPath, opts).Total

	suggestions := make([]Suggestion, 0, len(groups))
	for sub, files := range groups {
		if len(files) < cfg.MinFiles {
			continue
		}
		groupTokens := budget.CoveredCodeTokens(files, contentByPath, opts).Total
		coverage := 0.0
		if totalTokens > 0 {
			coverage = float64(groupTokens) * 100 / float64(totalTokens)
		}
		if coverage < cfg.MinCoveragePercent {
			continue
		}
		sort.Strings(files)
		suggestions = append(suggestions, Suggestion{
			Directory:         sub,
			SuggestedNodePath: repopath.Join(sub, cfg.AnchorFileName),
			Files:             files,
			Tokens:            groupTokens,
			CoveragePercent:   coverage,
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].CoveragePercent != suggestions[j].CoveragePercent {
			return suggestions[i].CoveragePercent > suggestions[j].CoveragePercent
		}
		return suggestions[i].Directory < suggestions[j].Directory
	})

	return Proposal{ShouldSplit: true, Suggestions: suggestions}
}

// ForestAnalysis aggregates split proposals across one forest.
type ForestAnalysis struct {
	PerAnchor        map[string]Proposal `json:"per_anchor"`
	AnchorsToSplit   []string            `json:"anchors_to_split"`
	TotalSuggestions int                 `json:"total_suggestions"`
}

// AnalyzeForestForSplits runs the advisor over every anchor already known
// to exceed its budget. Anchors missing coverage or directory data are
// skipped.
func AnalyzeForestForSplits(fb budget.ForestBudget, coveredByAnchor map[string][]string, dirByAnchor map[string]string, contentByPath map[string]string, existingAnchorDirs map[string]bool, cfg Config, opts budget.Options) ForestAnalysis {
	res := ForestAnalysis{
		PerAnchor:      make(map[string]Proposal),
		AnchorsToSplit: make([]string, 0),
	}
	for _, anchorPath := range fb.AnchorsExceeding {
		covered, ok := coveredByAnchor[anchorPath]
		if !ok {
			continue
		}
		dir, ok := dirByAnchor[anchorPath]
		if !ok {
			continue
		}
		p := ProposeSplits(anchorPath, dir, covered, contentByPath, fb.PerAnchor[anchorPath].BudgetPercent, existingAnchorDirs, cfg, opts)
		res.PerAnchor[anchorPath] = p
		res.TotalSuggestions += len(p.Suggestions)
		if p.ShouldSplit && len(p.Suggestions) > 0 {
			res.AnchorsToSplit = append(res.AnchorsToSplit, anchorPath)
		}
	}
	sort.Strings(res.AnchorsToSplit)
	return res
}

func firstSegment(rel string) string {
	for i := 0; i < len(rel); i++ {
		if rel[i] == '/' {
			return rel[:i]
		}
	}
	return rel
}
