package budget

import (
	"strings"
	"testing"
)

func TestCountTokens(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"abcd", 1},
		{"abcde", 2},
		{strings.Repeat("x", 40), 10},
		{strings.Repeat("x", 400), 100},
	}
	for _, c := range cases {
		if got := CountTokens(c.text); got != c.want {
			t.Errorf("CountTokens(%d chars): expected %d, got %d", len(c.text), c.want, got)
		}
	}
}

func TestIsBinary(t *testing.T) {
	if IsBinary("plain text") {
		t.Error("plain text misclassified as binary")
	}
	if !IsBinary("a\x00b") {
		t.Error("NUL byte not detected")
	}
	if IsBinary("") {
		t.Error("empty text is not binary")
	}
}

func TestCountLines(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"a\n", 1},
		{"a\nb", 2},
		{"a\nb\n", 2},
		{"\n", 1},
		{"\n\n", 2},
	}
	for _, c := range cases {
		if got := CountLines(c.text); got != c.want {
			t.Errorf("CountLines(%q): expected %d, got %d", c.text, c.want, got)
		}
	}
}

func TestClassifyForBudget_BinaryTakesPrecedenceOverSize(t *testing.T) {
	out := ClassifyForBudget("a\x00b", Options{SkipBinary: true, MaxLines: 1})
	if !out.Excluded || out.Reason != ExcludeBinary {
		t.Errorf("expected binary exclusion, got %+v", out)
	}
	if out.Tokens != 0 {
		t.Errorf("excluded file must have 0 tokens, got %d", out.Tokens)
	}
}

func TestClassifyForBudget_TooLarge(t *testing.T) {
	text := strings.Repeat("line\n", 10)
	out := ClassifyForBudget(text, Options{SkipBinary: true, MaxLines: 9})
	if !out.Excluded || out.Reason != ExcludeTooLarge {
		t.Errorf("expected too_large exclusion, got %+v", out)
	}
}

func TestClassifyForBudget_MaxLinesZeroDisablesSizeCheck(t *testing.T) {
	text := strings.Repeat("line\n", 100000)
	out := ClassifyForBudget(text, Options{SkipBinary: true, MaxLines: 0})
	if out.Excluded {
		t.Errorf("MaxLines=0 must disable the size check, got %+v", out)
	}
	if out.Tokens != CountTokens(text) {
		t.Errorf("expected %d tokens, got %d", CountTokens(text), out.Tokens)
	}
}

func TestClassifyForBudget_BinaryAllowedWhenSkipDisabled(t *testing.T) {
	out := ClassifyForBudget("a\x00b", Options{SkipBinary: false, MaxLines: 8000})
	if out.Excluded {
		t.Errorf("SkipBinary=false must not exclude binary content, got %+v", out)
	}
}

func TestClassifyForBudget_AtLimitNotExcluded(t *testing.T) {
	text := strings.Repeat("line\n", 9)
	out := ClassifyForBudget(text, Options{SkipBinary: true, MaxLines: 9})
	if out.Excluded {
		t.Errorf("file exactly at MaxLines must not be excluded, got %+v", out)
	}
}
