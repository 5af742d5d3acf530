// Package repopath implements pure string operations on slash-separated,
// repo-relative paths. The empty string denotes the repository root.
package repopath

import "strings"

// DirOf returns the directory portion of a path: the substring before the
// last '/'. A path with no separator lives at the repository root and
// yields the empty string.
func DirOf(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

// Base returns the final path segment.
func Base(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}

// Join concatenates a directory and a name, omitting the separator when the
// directory is the repository root.
func Join(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

// IsAncestorDir reports whether b is strictly nested under a. The root
// (empty string) is an ancestor of every non-empty directory but not of
// itself. Otherwise b must start with a followed immediately by '/', so
// "src" never matches "src-old".
func IsAncestorDir(a, b string) bool {
	if a == "" {
		return b != ""
	}
	return strings.HasPrefix(b, a+"/")
}

// NearestAnchorDir walks from dir upward one segment at a time and returns
// the first ancestor directory present in have. It never returns dir itself;
// a dir at the root has no ancestors.
func NearestAnchorDir(dir string, have map[string]bool) (string, bool) {
	if dir == "" {
		return "", false
	}
	for {
		dir = DirOf(dir)
		if have[dir] {
			return dir, true
		}
		if dir == "" {
			return "", false
		}
	}
}
