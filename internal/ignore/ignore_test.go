package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromLines_BasicPatterns(t *testing.T) {
	m := FromLines([]string{"*.log", "dist/", "# comment", ""})

	if !m.Match("build/output.log") {
		t.Error("expected *.log to match nested log file")
	}
	if !m.Match("dist/bundle.js") {
		t.Error("expected dist/ to match files under dist")
	}
	if m.Match("src/main.go") {
		t.Error("unrelated file must not match")
	}
}

func TestFromLines_Negation(t *testing.T) {
	m := FromLines([]string{"*.log", "!keep.log"})

	if !m.Match("debug.log") {
		t.Error("expected debug.log ignored")
	}
	if m.Match("keep.log") {
		t.Error("negated pattern must re-include keep.log")
	}
}

func TestLoad_MissingFileMatchesNothing(t *testing.T) {
	m, err := Load(t.TempDir(), ".doccoverignore")
	if err != nil {
		t.Fatalf("missing ignore file must not be an error: %v", err)
	}
	if m.Match("anything.go") {
		t.Error("empty matcher must match nothing")
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	content := "vendor/\n*.min.js\n"
	if err := os.WriteFile(filepath.Join(dir, ".doccoverignore"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(dir, ".doccoverignore")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !m.Match("vendor/lib/util.go") {
		t.Error("expected vendor/ to match")
	}
	if !m.Match("assets/app.min.js") {
		t.Error("expected *.min.js to match")
	}
	if m.Match("internal/app.go") {
		t.Error("unrelated file must not match")
	}
	if len(m.Patterns()) != 2 {
		t.Errorf("expected 2 patterns, got %v", m.Patterns())
	}
}

func TestNilMatcherMatchesNothing(t *testing.T) {
	var m *Matcher
	if m.Match("a.go") {
		t.Error("nil matcher must match nothing")
	}
}
