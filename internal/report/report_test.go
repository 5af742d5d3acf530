package report

import (
	"strings"
	"testing"

	"github.com/dgallion1/doccover/internal/budget"
	"github.com/dgallion1/doccover/internal/forest"
	"github.com/dgallion1/doccover/internal/scanner"
)

func testSnapshot() (*scanner.Snapshot, *scanner.Contents) {
	snap := &scanner.Snapshot{
		Root: "/repo",
		Anchors: map[forest.Kind][]forest.AnchorFile{
			forest.KindPrimary: {
				{Path: "AGENTS.md", Kind: forest.KindPrimary},
				{Path: "pkg/api/AGENTS.md", Kind: forest.KindPrimary},
			},
			forest.KindMirror: {
				{Path: "CLAUDE.md", Kind: forest.KindMirror},
			},
		},
		SourceFiles: []string{
			"AGENTS.md",
			"CLAUDE.md",
			"main.go",
			"pkg/api/AGENTS.md",
			"pkg/api/handler.go",
			"pkg/api/router.go",
		},
	}
	contents := &scanner.Contents{
		ByPath: map[string]string{
			"AGENTS.md":          "# Root docs\n\nOverview.",
			"CLAUDE.md":          "# Mirror docs",
			"main.go":            strings.Repeat("m", 400),
			"pkg/api/AGENTS.md":  "# API docs",
			"pkg/api/handler.go": strings.Repeat("h", 400),
			"pkg/api/router.go":  strings.Repeat("r", 400),
		},
		Digest: "abc123",
	}
	return snap, contents
}

func testParams() Params {
	return Params{
		ThresholdPercent: 5,
		TokenOptions:     budget.DefaultOptions(),
		MinSplitFiles:    3,
		MinSplitCoverage: 10,
		AnchorNames: map[forest.Kind]string{
			forest.KindPrimary: "AGENTS.md",
			forest.KindMirror:  "CLAUDE.md",
		},
	}
}

func TestBuild_ProducesPerKindReports(t *testing.T) {
	snap, contents := testSnapshot()
	rep := Build(snap, contents, testParams())

	if len(rep.Kinds) != 2 {
		t.Fatalf("expected 2 kind reports, got %d", len(rep.Kinds))
	}
	if rep.Digest != "abc123" || rep.TotalFiles != 6 {
		t.Errorf("unexpected report header: %+v", rep)
	}

	primary := rep.Kinds[forest.KindPrimary]
	if len(primary.Forest.Nodes) != 2 {
		t.Fatalf("expected 2 primary nodes, got %d", len(primary.Forest.Nodes))
	}

	// Nested anchor claims the api files; root keeps main.go only.
	apiCov := primary.Coverage["pkg/api/AGENTS.md"]
	if len(apiCov.Covered) != 2 {
		t.Errorf("expected api anchor to cover 2 files, got %v", apiCov.Covered)
	}
	rootCov := primary.Coverage["AGENTS.md"]
	if len(rootCov.Covered) != 1 || rootCov.Covered[0] != "main.go" {
		t.Errorf("expected root anchor to cover only main.go, got %v", rootCov.Covered)
	}
}

func TestBuild_AnchorFilesNeverCovered(t *testing.T) {
	snap, contents := testSnapshot()
	rep := Build(snap, contents, testParams())

	for kind, kr := range rep.Kinds {
		for anchorPath, res := range kr.Coverage {
			for _, f := range res.Covered {
				if strings.HasSuffix(f, "AGENTS.md") || strings.HasSuffix(f, "CLAUDE.md") {
					t.Errorf("%s/%s: anchor file %s counted as covered", kind, anchorPath, f)
				}
			}
		}
	}
}

func TestBuild_ExtractsAnchorTitles(t *testing.T) {
	snap, contents := testSnapshot()
	rep := Build(snap, contents, testParams())

	titles := rep.Kinds[forest.KindPrimary].AnchorTitles
	if titles["AGENTS.md"] != "Root docs" {
		t.Errorf("expected title 'Root docs', got %q", titles["AGENTS.md"])
	}
	if titles["pkg/api/AGENTS.md"] != "API docs" {
		t.Errorf("expected title 'API docs', got %q", titles["pkg/api/AGENTS.md"])
	}
}

func TestBuild_UnclaimedFiles(t *testing.T) {
	snap := &scanner.Snapshot{
		Root: "/repo",
		Anchors: map[forest.Kind][]forest.AnchorFile{
			forest.KindPrimary: {
				{Path: "pkg/AGENTS.md", Kind: forest.KindPrimary},
			},
		},
		SourceFiles: []string{"pkg/AGENTS.md", "pkg/a.go", "orphan/b.go", "top.go"},
	}
	contents := &scanner.Contents{
		ByPath: map[string]string{
			"pkg/AGENTS.md": "# docs",
			"pkg/a.go":      "package pkg",
			"orphan/b.go":   "package orphan",
			"top.go":        "package main",
		},
	}
	p := testParams()
	p.AnchorNames = map[forest.Kind]string{forest.KindPrimary: "AGENTS.md"}

	rep := Build(snap, contents, p)

	unclaimed := rep.Kinds[forest.KindPrimary].UnclaimedFiles
	want := map[string]bool{"orphan/b.go": true, "top.go": true}
	if len(unclaimed) != 2 {
		t.Fatalf("expected 2 unclaimed files, got %v", unclaimed)
	}
	for _, f := range unclaimed {
		if !want[f] {
			t.Errorf("unexpected unclaimed file %s", f)
		}
	}
}

func TestBuild_IgnorePredicateApplied(t *testing.T) {
	snap, contents := testSnapshot()
	p := testParams()
	p.Ignore = func(path string) bool { return strings.HasSuffix(path, "router.go") }

	rep := Build(snap, contents, p)

	apiCov := rep.Kinds[forest.KindPrimary].Coverage["pkg/api/AGENTS.md"]
	if len(apiCov.Covered) != 1 || apiCov.Covered[0] != "pkg/api/handler.go" {
		t.Errorf("expected only handler.go covered, got %v", apiCov.Covered)
	}
	if len(apiCov.Ignored) != 1 || apiCov.Ignored[0] != "pkg/api/router.go" {
		t.Errorf("expected router.go ignored, got %v", apiCov.Ignored)
	}
}

func TestBuild_SplitSuggestionsForOverBudgetAnchor(t *testing.T) {
	// One root anchor with a long doc over a small covered set, split
	// candidate in sub/ with 3 files.
	snap := &scanner.Snapshot{
		Root: "/repo",
		Anchors: map[forest.Kind][]forest.AnchorFile{
			forest.KindPrimary: {{Path: "AGENTS.md", Kind: forest.KindPrimary}},
		},
		SourceFiles: []string{"AGENTS.md", "sub/a.go", "sub/b.go", "sub/c.go"},
	}
	contents := &scanner.Contents{
		ByPath: map[string]string{
			"AGENTS.md": strings.Repeat("d", 4000),
			"sub/a.go":  strings.Repeat("c", 400),
			"sub/b.go":  strings.Repeat("c", 400),
			"sub/c.go":  strings.Repeat("c", 400),
		},
	}
	p := testParams()
	p.AnchorNames = map[forest.Kind]string{forest.KindPrimary: "AGENTS.md"}

	rep := Build(snap, contents, p)

	kr := rep.Kinds[forest.KindPrimary]
	if len(kr.Budget.AnchorsExceeding) != 1 {
		t.Fatalf("expected root anchor over budget, got %v", kr.Budget.AnchorsExceeding)
	}
	if len(kr.Splits.AnchorsToSplit) != 1 {
		t.Fatalf("expected a split recommendation, got %+v", kr.Splits)
	}
	sg := kr.Splits.PerAnchor["AGENTS.md"].Suggestions
	if len(sg) != 1 || sg[0].SuggestedNodePath != "sub/AGENTS.md" {
		t.Errorf("expected sub/AGENTS.md suggestion, got %+v", sg)
	}
}

func TestExtractTitle(t *testing.T) {
	cases := []struct {
		md   string
		want string
	}{
		{"# Hello\n\nBody.", "Hello"},
		{"Intro text.\n\n## Second-level first\n", "Second-level first"},
		{"no headings here", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := ExtractTitle(c.md); got != c.want {
			t.Errorf("ExtractTitle(%q): expected %q, got %q", c.md, c.want, got)
		}
	}
}

func TestMarkdown_RendersSummary(t *testing.T) {
	snap, contents := testSnapshot()
	rep := Build(snap, contents, testParams())

	out := Markdown(rep)

	for _, want := range []string{
		"# Documentation coverage report",
		"`abc123`",
		"Anchor family: mirror",
		"Anchor family: primary",
		"`pkg/api/AGENTS.md`",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered markdown missing %q", want)
		}
	}
}
