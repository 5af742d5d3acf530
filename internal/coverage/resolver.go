// Package coverage assigns every source file to the nearest anchor
// responsible for it. Within one forest the covered sets of all anchors are
// pairwise disjoint: nearest-anchor resolution decides ownership per file,
// so no cross-node coordination is needed.
package coverage

import (
	"sort"

	"github.com/dgallion1/doccover/internal/forest"
	"github.com/dgallion1/doccover/internal/repopath"
)

// Result lists the source files one anchor covers, and the files it would
// have covered but for the ignore predicate. Both lists are sorted and
// never overlap.
type Result struct {
	Covered []string `json:"covered"`
	Ignored []string `json:"ignored"`
}

// Options supplies the caller-owned context for resolution. AnchorPaths
// holds anchor file paths of every kind; anchor files are never counted as
// covered content. Ignore is optional.
type Options struct {
	AnchorPaths map[string]bool
	Ignore      func(path string) bool
}

// FindCoveringAnchor returns the index of the node whose directory equals
// the file's directory, or failing that the nearest ancestor directory that
// has a node. A file literally at the repository root is covered only by a
// root-directory anchor. Returns false when no anchor covers the file.
func FindCoveringAnchor(filePath string, f *forest.Forest) (int, bool) {
	dir := repopath.DirOf(filePath)
	if idx, ok := f.ByDir[dir]; ok {
		return idx, true
	}
	for dir != "" {
		dir = repopath.DirOf(dir)
		if idx, ok := f.ByDir[dir]; ok {
			return idx, true
		}
	}
	return 0, false
}

// CoveredFilesFor computes the coverage result for a single node.
func CoveredFilesFor(f *forest.Forest, nodeIdx int, allFiles []string, opts Options) Result {
	node := f.Nodes[nodeIdx]
	res := Result{
		Covered: make([]string, 0),
		Ignored: make([]string, 0),
	}

	for _, file := range allFiles {
		if opts.AnchorPaths[file] {
			continue
		}
		dir := repopath.DirOf(file)
		if dir != node.Directory && !repopath.IsAncestorDir(node.Directory, dir) {
			continue
		}
		// The nearest anchor claims the file; anything farther up skips it.
		covering, ok := FindCoveringAnchor(file, f)
		if !ok || covering != nodeIdx {
			continue
		}
		if opts.Ignore != nil && opts.Ignore(file) {
			res.Ignored = append(res.Ignored, file)
			continue
		}
		res.Covered = append(res.Covered, file)
	}

	res.Covered = sortedUnique(res.Covered)
	res.Ignored = sortedUnique(res.Ignored)
	return res
}

func sortedUnique(paths []string) []string {
	sort.Strings(paths)
	out := paths[:0]
	for i, p := range paths {
		if i > 0 && p == paths[i-1] {
			continue
		}
		out = append(out, p)
	}
	return out
}

// CoveredFilesForForest resolves coverage for every node, keyed by anchor
// path.
func CoveredFilesForForest(f *forest.Forest, allFiles []string, opts Options) map[string]Result {
	out := make(map[string]Result, len(f.Nodes))
	for idx := range f.Nodes {
		out[f.Nodes[idx].Anchor.Path] = CoveredFilesFor(f, idx, allFiles, opts)
	}
	return out
}
