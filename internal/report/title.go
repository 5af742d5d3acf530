package report

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ExtractTitle returns the text of the first heading in an anchor's
// markdown, for display in reports. Anchors without a heading yield the
// empty string.
func ExtractTitle(markdown string) string {
	src := []byte(markdown)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			return strings.TrimSpace(string(h.Text(src)))
		}
	}
	return ""
}
