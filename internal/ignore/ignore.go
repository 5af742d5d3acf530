// Package ignore loads the repository's ignore file and exposes it as a
// plain path predicate. Matching follows gitignore syntax, including
// negation, so teams can reuse patterns they already maintain.
package ignore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// Matcher answers whether a repo-relative path is excluded from coverage.
type Matcher struct {
	gi       *gitignore.GitIgnore
	patterns []string
}

// Load reads the named ignore file from the repo root. A missing file is
// not an error; it yields a matcher that excludes nothing.
func Load(root, fileName string) (*Matcher, error) {
	data, err := os.ReadFile(filepath.Join(root, fileName))
	if err != nil {
		if os.IsNotExist(err) {
			return &Matcher{}, nil
		}
		return nil, fmt.Errorf("failed to read ignore file: %w", err)
	}
	return FromLines(strings.Split(string(data), "\n")), nil
}

// FromLines builds a matcher from raw pattern lines. Blank lines and
// comments are handled by the gitignore compiler.
func FromLines(lines []string) *Matcher {
	patterns := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		patterns = append(patterns, l)
	}
	return &Matcher{
		gi:       gitignore.CompileIgnoreLines(patterns...),
		patterns: patterns,
	}
}

// Match reports whether the path is ignored.
func (m *Matcher) Match(path string) bool {
	if m == nil || m.gi == nil {
		return false
	}
	return m.gi.MatchesPath(path)
}

// Predicate returns the matcher as the plain function the coverage resolver
// consumes.
func (m *Matcher) Predicate() func(string) bool {
	return m.Match
}

// Patterns returns the loaded pattern lines, for reporting.
func (m *Matcher) Patterns() []string {
	if m == nil {
		return nil
	}
	return m.patterns
}
