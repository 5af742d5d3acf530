// Package forest builds the documentation coverage forest: a set of anchor
// trees for one anchor kind, linked purely by directory nesting. Nodes live
// in an arena and reference each other by index, so a Forest is plain
// serializable data with no pointer cycles.
package forest

import (
	"sort"

	"github.com/dgallion1/doccover/internal/repopath"
)

// Node is one anchor in the coverage forest. Parent is an index into
// Forest.Nodes, -1 for forest roots. Children hold indices ordered by
// anchor path.
type Node struct {
	Anchor    AnchorFile `json:"anchor"`
	Directory string     `json:"directory"`
	Parent    int        `json:"parent"`
	Children  []int      `json:"children"`
	Depth     int        `json:"depth"`
}

// Forest is the coverage forest for a single anchor kind. ByPath and ByDir
// map anchor path and anchor directory to node indices; every node appears
// in both exactly once.
type Forest struct {
	Kind   Kind           `json:"kind"`
	Nodes  []Node         `json:"nodes"`
	Roots  []int          `json:"roots"`
	ByPath map[string]int `json:"by_path"`
	ByDir  map[string]int `json:"by_dir"`
}

// Build constructs the forest implied by directory nesting. It is
// deterministic: anchors are sorted by path before node creation, so node
// indices, root order, and child order are stable across calls regardless
// of input order. Empty input yields an empty forest.
//
// Two anchors sharing a directory is a caller contract violation; Build
// keeps the first in sorted order and drops the rest rather than failing.
func Build(anchors []AnchorFile, kind Kind) *Forest {
	f := &Forest{
		Kind:   kind,
		Nodes:  make([]Node, 0, len(anchors)),
		Roots:  make([]int, 0),
		ByPath: make(map[string]int),
		ByDir:  make(map[string]int),
	}

	sorted := make([]AnchorFile, len(anchors))
	copy(sorted, anchors)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	dirs := make(map[string]bool, len(sorted))
	for _, a := range sorted {
		dir := repopath.DirOf(a.Path)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		idx := len(f.Nodes)
		f.Nodes = append(f.Nodes, Node{
			Anchor:    a,
			Directory: dir,
			Parent:    -1,
			Children:  make([]int, 0),
		})
		f.ByPath[a.Path] = idx
		f.ByDir[dir] = idx
	}

	// Link each node to its nearest covered ancestor. Anchors with no
	// intervening anchor attach directly to the nearest one above them,
	// skipping uncovered intermediate directories.
	for idx := range f.Nodes {
		parentDir, ok := repopath.NearestAnchorDir(f.Nodes[idx].Directory, dirs)
		if !ok {
			f.Roots = append(f.Roots, idx)
			continue
		}
		parentIdx := f.ByDir[parentDir]
		f.Nodes[idx].Parent = parentIdx
		f.Nodes[parentIdx].Children = append(f.Nodes[parentIdx].Children, idx)
	}

	// Nodes were created in path order, so Roots and Children are already
	// sorted by anchor path.

	// Depth top-down from each root.
	var assignDepth func(idx, depth int)
	assignDepth = func(idx, depth int) {
		f.Nodes[idx].Depth = depth
		for _, c := range f.Nodes[idx].Children {
			assignDepth(c, depth+1)
		}
	}
	for _, r := range f.Roots {
		assignDepth(r, 0)
	}

	return f
}

// AnchorPaths returns every anchor path in the forest, sorted.
func (f *Forest) AnchorPaths() []string {
	paths := make([]string, 0, len(f.ByPath))
	for p := range f.ByPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Directories returns the set of anchor directories in the forest.
func (f *Forest) Directories() map[string]bool {
	dirs := make(map[string]bool, len(f.ByDir))
	for d := range f.ByDir {
		dirs[d] = true
	}
	return dirs
}
