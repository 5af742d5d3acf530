// Package report runs the full coverage analysis for every anchor kind and
// assembles the result into one serializable document: forest, per-anchor
// coverage, token budgets, and split suggestions for anchors over budget.
package report

import (
	"sort"
	"time"

	"github.com/dgallion1/doccover/internal/budget"
	"github.com/dgallion1/doccover/internal/coverage"
	"github.com/dgallion1/doccover/internal/forest"
	"github.com/dgallion1/doccover/internal/scanner"
	"github.com/dgallion1/doccover/internal/split"
)

// Params is the policy surface for one analysis run. Everything is passed
// explicitly; the core reads no process-wide state.
type Params struct {
	ThresholdPercent float64
	TokenOptions     budget.Options
	MinSplitFiles    int
	MinSplitCoverage float64
	AnchorNames      map[forest.Kind]string
	Ignore           func(path string) bool
}

// KindReport is the analysis for one anchor family.
type KindReport struct {
	Kind           forest.Kind                `json:"kind"`
	Forest         *forest.Forest             `json:"forest"`
	Coverage       map[string]coverage.Result `json:"coverage"`
	Budget         budget.ForestBudget        `json:"budget"`
	Splits         split.ForestAnalysis       `json:"splits"`
	AnchorTitles   map[string]string          `json:"anchor_titles"`
	UnclaimedFiles []string                   `json:"unclaimed_files"`
}

// Report is the full analysis of one repository snapshot.
type Report struct {
	GeneratedAt time.Time                   `json:"generated_at"`
	Root        string                      `json:"root"`
	Digest      string                      `json:"digest"`
	TotalFiles  int                         `json:"total_files"`
	Kinds       map[forest.Kind]*KindReport `json:"kinds"`
}

// Build computes the report from caller-supplied snapshot data. It is a
// pure function: same snapshot and contents, same report (modulo
// GeneratedAt).
func Build(snap *scanner.Snapshot, contents *scanner.Contents, p Params) *Report {
	rep := &Report{
		GeneratedAt: time.Now().UTC(),
		Root:        snap.Root,
		Digest:      contents.Digest,
		TotalFiles:  len(snap.SourceFiles),
		Kinds:       make(map[forest.Kind]*KindReport, len(p.AnchorNames)),
	}

	anchorPaths := snap.AnchorPathSet()

	for kind, anchorName := range p.AnchorNames {
		f := forest.Build(snap.Anchors[kind], kind)

		cov := coverage.CoveredFilesForForest(f, snap.SourceFiles, coverage.Options{
			AnchorPaths: anchorPaths,
			Ignore:      p.Ignore,
		})

		coveredByAnchor := make(map[string][]string, len(cov))
		for anchorPath, res := range cov {
			coveredByAnchor[anchorPath] = res.Covered
		}

		anchorText := make(map[string]string, len(f.ByPath))
		titles := make(map[string]string, len(f.ByPath))
		for anchorPath := range f.ByPath {
			text, ok := contents.ByPath[anchorPath]
			if !ok {
				continue
			}
			anchorText[anchorPath] = text
			titles[anchorPath] = ExtractTitle(text)
		}

		fb := budget.ComputeForestBudget(coveredByAnchor, anchorText, contents.ByPath, p.ThresholdPercent, p.TokenOptions)

		dirByAnchor := make(map[string]string, len(f.Nodes))
		for i := range f.Nodes {
			dirByAnchor[f.Nodes[i].Anchor.Path] = f.Nodes[i].Directory
		}

		splitCfg := split.Config{
			ThresholdPercent:   p.ThresholdPercent,
			MinFiles:           p.MinSplitFiles,
			MinCoveragePercent: p.MinSplitCoverage,
			AnchorFileName:     anchorName,
		}
		analysis := split.AnalyzeForestForSplits(fb, coveredByAnchor, dirByAnchor, contents.ByPath, f.Directories(), splitCfg, p.TokenOptions)

		rep.Kinds[kind] = &KindReport{
			Kind:           kind,
			Forest:         f,
			Coverage:       cov,
			Budget:         fb,
			Splits:         analysis,
			AnchorTitles:   titles,
			UnclaimedFiles: unclaimedFiles(f, snap.SourceFiles, anchorPaths),
		}
	}

	return rep
}

// unclaimedFiles lists eligible files no anchor in this forest covers.
func unclaimedFiles(f *forest.Forest, allFiles []string, anchorPaths map[string]bool) []string {
	out := make([]string, 0)
	for _, file := range allFiles {
		if anchorPaths[file] {
			continue
		}
		if _, ok := coverage.FindCoveringAnchor(file, f); !ok {
			out = append(out, file)
		}
	}
	sort.Strings(out)
	return out
}
