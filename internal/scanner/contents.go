package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
)

// Contents holds loaded file text plus a digest of the loaded state.
// Files that could not be read, or that exceed the size cap, are simply
// absent from ByPath; downstream budget math treats absence as "not yet
// fetched" and skips them.
type Contents struct {
	ByPath       map[string]string `json:"-"`
	DigestByPath map[string]string `json:"digest_by_path"`
	Digest       string            `json:"digest"`
	Errors       []string          `json:"errors,omitempty"`
}

// LoadContents reads the given repo-relative paths under root with bounded
// concurrency. maxFileBytes caps how much the scanner is willing to read
// per file (0 means no cap). The combined digest is stable for identical
// file states, so callers can detect a stale report without re-reading.
func LoadContents(root string, paths []string, workers int, maxFileBytes int64) (*Contents, error) {
	if workers <= 0 {
		workers = 1
	}

	res := &Contents{
		ByPath:       make(map[string]string, len(paths)),
		DigestByPath: make(map[string]string, len(paths)),
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(workers)

	for _, rel := range paths {
		rel := rel
		g.Go(func() error {
			full := filepath.Join(root, filepath.FromSlash(rel))

			if maxFileBytes > 0 {
				info, err := os.Stat(full)
				if err != nil {
					mu.Lock()
					res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", rel, err))
					mu.Unlock()
					return nil
				}
				if info.Size() > maxFileBytes {
					return nil
				}
			}

			data, err := os.ReadFile(full)
			if err != nil {
				mu.Lock()
				res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", rel, err))
				mu.Unlock()
				return nil
			}

			mu.Lock()
			res.ByPath[rel] = string(data)
			res.DigestByPath[rel] = fmt.Sprintf("%016x", xxhash.Sum64(data))
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Fold per-file digests into one snapshot digest, in path order.
	loaded := make([]string, 0, len(res.DigestByPath))
	for p := range res.DigestByPath {
		loaded = append(loaded, p)
	}
	sort.Strings(loaded)

	h := xxhash.New()
	for _, p := range loaded {
		h.WriteString(p)
		h.WriteString(":")
		h.WriteString(res.DigestByPath[p])
		h.WriteString("\n")
	}
	res.Digest = fmt.Sprintf("%016x", h.Sum64())

	sort.Strings(res.Errors)
	return res, nil
}
