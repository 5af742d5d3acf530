// Package scanner walks a repository checkout and produces the plain data
// the coverage core consumes: anchor descriptors per kind, the flat list of
// source-file paths, and file contents keyed by repo-relative path. All
// paths are forward-slash separated regardless of platform.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/dgallion1/doccover/internal/forest"
	"github.com/dgallion1/doccover/internal/repopath"
)

// Snapshot is the result of one repository walk.
type Snapshot struct {
	Root        string                              `json:"root"`
	Anchors     map[forest.Kind][]forest.AnchorFile `json:"anchors"`
	SourceFiles []string                            `json:"source_files"`
	Errors      []string                            `json:"errors,omitempty"`
}

// Scan walks root and classifies every regular file. A file whose base name
// matches a configured anchor name belongs to that kind's anchor family;
// everything else is a source file. Anchor files also appear in
// SourceFiles so the resolver can exclude them by path. The .git directory
// is always skipped; ignore-pattern handling happens later, at coverage
// resolution, so ignored files still show up here.
func Scan(root string, anchorNames map[forest.Kind]string) (*Snapshot, error) {
	snap := &Snapshot{
		Root:        root,
		Anchors:     make(map[forest.Kind][]forest.AnchorFile, len(anchorNames)),
		SourceFiles: make([]string, 0),
	}
	for kind := range anchorNames {
		snap.Anchors[kind] = make([]forest.AnchorFile, 0)
	}

	nameToKind := make(map[string]forest.Kind, len(anchorNames))
	for kind, name := range anchorNames {
		nameToKind[name] = kind
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			snap.Errors = append(snap.Errors, err.Error())
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			snap.Errors = append(snap.Errors, err.Error())
			return nil
		}
		rel = filepath.ToSlash(rel)

		snap.SourceFiles = append(snap.SourceFiles, rel)

		kind, isAnchor := nameToKind[repopath.Base(rel)]
		if !isAnchor {
			return nil
		}

		anchor := forest.AnchorFile{Path: rel, Kind: kind}
		if d.Type()&fs.ModeSymlink != 0 {
			anchor.IsSymlink = true
			if target, err := os.Readlink(path); err == nil {
				anchor.SymlinkTarget = filepath.ToSlash(target)
			}
		}
		snap.Anchors[kind] = append(snap.Anchors[kind], anchor)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk repository: %w", err)
	}

	sort.Strings(snap.SourceFiles)
	for kind := range snap.Anchors {
		anchors := snap.Anchors[kind]
		sort.Slice(anchors, func(i, j int) bool { return anchors[i].Path < anchors[j].Path })
	}
	return snap, nil
}

// AnchorPathSet returns every anchor path across all kinds, for the
// resolver's anchor-exclusion rule.
func (s *Snapshot) AnchorPathSet() map[string]bool {
	set := make(map[string]bool)
	for _, anchors := range s.Anchors {
		for _, a := range anchors {
			set[a.Path] = true
		}
	}
	return set
}
