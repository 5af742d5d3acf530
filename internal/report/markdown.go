package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dgallion1/doccover/internal/forest"
)

// Markdown renders the report as a human-readable summary.
func Markdown(r *Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Documentation coverage report\n\n")
	fmt.Fprintf(&sb, "- Root: `%s`\n", r.Root)
	fmt.Fprintf(&sb, "- Snapshot digest: `%s`\n", r.Digest)
	fmt.Fprintf(&sb, "- Files: %d\n", r.TotalFiles)
	fmt.Fprintf(&sb, "- Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))

	kinds := make([]forest.Kind, 0, len(r.Kinds))
	for k := range r.Kinds {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	for _, kind := range kinds {
		kr := r.Kinds[kind]
		fmt.Fprintf(&sb, "\n## Anchor family: %s\n\n", kind)

		if len(kr.Forest.Nodes) == 0 {
			sb.WriteString("No anchors found.\n")
			continue
		}

		sb.WriteString("| Anchor | Title | Depth | Covered | Ignored | Budget | Over |\n")
		sb.WriteString("|---|---|---|---|---|---|---|\n")
		for _, anchorPath := range kr.Forest.AnchorPaths() {
			idx := kr.Forest.ByPath[anchorPath]
			node := kr.Forest.Nodes[idx]
			cov := kr.Coverage[anchorPath]

			budgetCell := "n/a"
			overCell := ""
			if nb, ok := kr.Budget.PerAnchor[anchorPath]; ok {
				budgetCell = fmt.Sprintf("%.1f%%", nb.BudgetPercent)
				if nb.ExceedsBudget {
					overCell = "yes"
				}
			}
			fmt.Fprintf(&sb, "| `%s` | %s | %d | %d | %d | %s | %s |\n",
				anchorPath, kr.AnchorTitles[anchorPath], node.Depth,
				len(cov.Covered), len(cov.Ignored), budgetCell, overCell)
		}

		if len(kr.Splits.AnchorsToSplit) > 0 {
			sb.WriteString("\n### Split suggestions\n")
			for _, anchorPath := range kr.Splits.AnchorsToSplit {
				fmt.Fprintf(&sb, "\n`%s` is over budget:\n\n", anchorPath)
				for _, s := range kr.Splits.PerAnchor[anchorPath].Suggestions {
					fmt.Fprintf(&sb, "- add `%s` (%d files, %d tokens, %.1f%% of coverage)\n",
						s.SuggestedNodePath, len(s.Files), s.Tokens, s.CoveragePercent)
				}
			}
		}

		if len(kr.UnclaimedFiles) > 0 {
			fmt.Fprintf(&sb, "\n%d files have no covering anchor.\n", len(kr.UnclaimedFiles))
		}
	}

	return sb.String()
}
