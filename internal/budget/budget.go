// Package budget approximates documentation and code size in a token-like
// unit and computes per-anchor budget ratios. Everything here is a pure
// function over caller-supplied data; files whose content is not in the map
// are silently dropped rather than treated as errors.
package budget

import "sort"

// ExcludeReason says why a file was left out of budget math.
type ExcludeReason string

const (
	ExcludeBinary   ExcludeReason = "binary"
	ExcludeTooLarge ExcludeReason = "too_large"
)

// DefaultThresholdPercent is the budget threshold applied when the caller
// does not configure one.
const DefaultThresholdPercent = 5.0

// Options controls file classification.
type Options struct {
	SkipBinary bool // exclude files containing NUL bytes
	MaxLines   int  // exclude files longer than this; 0 disables the check
}

// DefaultOptions returns the standard classification settings.
func DefaultOptions() Options {
	return Options{SkipBinary: true, MaxLines: 8000}
}

// Outcome is the classification of one file for budget purposes. Excluded
// files contribute zero tokens.
type Outcome struct {
	Tokens   int           `json:"tokens"`
	Excluded bool          `json:"excluded"`
	Reason   ExcludeReason `json:"reason,omitempty"`
}

// ClassifyForBudget classifies text. The binary check takes precedence over
// the size check when both apply.
func ClassifyForBudget(text string, opts Options) Outcome {
	if opts.SkipBinary && IsBinary(text) {
		return Outcome{Excluded: true, Reason: ExcludeBinary}
	}
	if opts.MaxLines > 0 && CountLines(text) > opts.MaxLines {
		return Outcome{Excluded: true, Reason: ExcludeTooLarge}
	}
	return Outcome{Tokens: CountTokens(text)}
}

// FileTokens pairs a path with its classification outcome.
type FileTokens struct {
	Path    string  `json:"path"`
	Outcome Outcome `json:"outcome"`
}

// CodeTokens aggregates token counts over a set of covered files.
type CodeTokens struct {
	Total        int          `json:"total"`
	CountedCount int          `json:"counted_count"`
	SkippedCount int          `json:"skipped_count"`
	PerFile      []FileTokens `json:"per_file"`
}

// CoveredCodeTokens looks up each path in contentByPath and accumulates
// token counts. Paths absent from the map are dropped from the output
// entirely; they are content not yet fetched, not an error.
func CoveredCodeTokens(paths []string, contentByPath map[string]string, opts Options) CodeTokens {
	res := CodeTokens{PerFile: make([]FileTokens, 0, len(paths))}
	for _, p := range paths {
		text, ok := contentByPath[p]
		if !ok {
			continue
		}
		out := ClassifyForBudget(text, opts)
		res.PerFile = append(res.PerFile, FileTokens{Path: p, Outcome: out})
		if out.Excluded {
			res.SkippedCount++
			continue
		}
		res.CountedCount++
		res.Total += out.Tokens
	}
	return res
}

// NodeBudget is the documentation/code size ratio for one anchor.
type NodeBudget struct {
	AnchorPath    string  `json:"anchor_path"`
	AnchorTokens  int     `json:"anchor_tokens"`
	CoveredTokens int     `json:"covered_tokens"`
	BudgetPercent float64 `json:"budget_percent"`
	ExceedsBudget bool    `json:"exceeds_budget"`
	FilesCounted  int     `json:"files_counted"`
	FilesSkipped  int     `json:"files_skipped"`
}

// ComputeNodeBudget computes an anchor's budget percentage: its own token
// count over the token count of the code it covers. Zero covered tokens
// yield exactly 0%, never a division fault. The threshold comparison is
// strict, so an anchor exactly at the threshold does not exceed it.
func ComputeNodeBudget(anchorPath, anchorText string, coveredPaths []string, contentByPath map[string]string, thresholdPercent float64, opts Options) NodeBudget {
	code := CoveredCodeTokens(coveredPaths, contentByPath, opts)
	anchorTokens := CountTokens(anchorText)

	// Multiply before dividing so integer-exact ratios stay exact and the
	// strict threshold comparison behaves at the boundary.
	percent := 0.0
	if code.Total > 0 {
		percent = float64(anchorTokens) * 100 / float64(code.Total)
	}

	return NodeBudget{
		AnchorPath:    anchorPath,
		AnchorTokens:  anchorTokens,
		CoveredTokens: code.Total,
		BudgetPercent: percent,
		ExceedsBudget: percent > thresholdPercent,
		FilesCounted:  code.CountedCount,
		FilesSkipped:  code.SkippedCount,
	}
}

// ForestBudget summarizes budgets across one forest.
type ForestBudget struct {
	PerAnchor        map[string]NodeBudget `json:"per_anchor"`
	AnchorsExceeding []string              `json:"anchors_exceeding"`
}

// ComputeForestBudget computes a NodeBudget for every anchor that has both
// a coverage entry and known anchor text. Anchors whose text is missing are
// excluded from the result, not treated as empty.
func ComputeForestBudget(coveredByAnchor map[string][]string, anchorTextByPath map[string]string, contentByPath map[string]string, thresholdPercent float64, opts Options) ForestBudget {
	res := ForestBudget{
		PerAnchor:        make(map[string]NodeBudget, len(coveredByAnchor)),
		AnchorsExceeding: make([]string, 0),
	}
	for anchorPath, covered := range coveredByAnchor {
		text, ok := anchorTextByPath[anchorPath]
		if !ok {
			continue
		}
		nb := ComputeNodeBudget(anchorPath, text, covered, contentByPath, thresholdPercent, opts)
		res.PerAnchor[anchorPath] = nb
		if nb.ExceedsBudget {
			res.AnchorsExceeding = append(res.AnchorsExceeding, anchorPath)
		}
	}
	sort.Strings(res.AnchorsExceeding)
	return res
}
