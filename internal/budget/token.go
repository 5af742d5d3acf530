package budget

import "strings"

// CountTokens gives a rough token count using the ~4 chars/token heuristic.
// This is intentionally crude and model-agnostic: it exists to compare
// documentation size against code size, not to predict any real tokenizer.
func CountTokens(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + 3) / 4
}

// IsBinary reports whether text contains a NUL byte.
func IsBinary(text string) bool {
	return strings.IndexByte(text, 0) >= 0
}

// CountLines counts newline-delimited lines. A trailing terminator does not
// add an empty extra line, but a final non-empty line without one still
// counts.
func CountLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}
