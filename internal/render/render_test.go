package render

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codalotl/textcompare/internal/comparison"
)

func lines(t *testing.T, a, b string) []comparison.LineFragment {
	t.Helper()
	fragments, err := comparison.CompareLinesInner(context.Background(), a, b, comparison.PolicyDefault)
	require.NoError(t, err)
	return fragments
}

func TestUnified(t *testing.T) {
	a := "a\nb\nc\n"
	b := "a\nx\nc\n"
	got := Unified(a, b, lines(t, a, b), Options{OldName: "old", NewName: "new", Context: 1})
	assert.Equal(t, "--- old\n+++ new\n@@ -1,3 +1,3 @@\n a\n-b\n+x\n c", got)

	assert.Equal(t, "", Unified(a, a, nil, Options{}))
}

func TestUnified_Hunks(t *testing.T) {
	a := "1\n2\n3\n4\n5\n6\n7\n8\n"
	b := "1\nX\n3\n4\n5\n6\nY\n8\n"
	fragments := lines(t, a, b)
	require.Len(t, fragments, 2)

	got := Unified(a, b, fragments, Options{OldName: "a", NewName: "b", Context: 1})
	assert.Equal(t, strings.Join([]string{
		"--- a", "+++ b",
		"@@ -1,3 +1,3 @@", " 1", "-2", "+X", " 3",
		"@@ -6,3 +6,3 @@", " 6", "-7", "+Y", " 8",
	}, "\n"), got)

	// The four lines between the changes fit in twice the context, so the hunks are merged.
	got = Unified(a, b, fragments, Options{OldName: "a", NewName: "b", Context: 2})
	assert.Equal(t, strings.Join([]string{
		"--- a", "+++ b",
		"@@ -1,8 +1,8 @@", " 1", "-2", "+X", " 3", " 4", " 5", " 6", "-7", "+Y", " 8",
	}, "\n"), got)
}

func TestUnified_Insertion(t *testing.T) {
	a := "a\nc\n"
	b := "a\nb\nc\n"
	got := Unified(a, b, lines(t, a, b), Options{OldName: "a", NewName: "b"})
	assert.Equal(t, "--- a\n+++ b\n@@ -1,0 +2,1 @@\n+b", got)
}

func TestUnified_Color(t *testing.T) {
	a, b := "a\n", "b\n"
	got := Unified(a, b, lines(t, a, b), Options{Color: true})
	assert.Contains(t, got, "\x1b[31m-a")
	assert.Contains(t, got, "\x1b[32m+b")
	assert.Contains(t, got, "\x1b[35m@@ -1,1 +1,1 @@")
}

func TestPretty(t *testing.T) {
	a := "a\nfoo bar\nc"
	b := "a\nfoo qux\nc"
	fragments := lines(t, a, b)

	got := Pretty(a, b, fragments, Options{OldName: "f.txt", NewName: "f.txt", Context: 1})
	assert.Equal(t, "f.txt:\n a\n-foo bar\n+foo qux\n c", got)

	got = Pretty(a, b, fragments, Options{Context: 0, Color: true})
	assert.Contains(t, got, "\x1b[30;48;5;224m-")
	assert.Contains(t, got, "\x1b[30;48;5;224mfoo ")
	assert.Contains(t, got, "\x1b[30;48;5;217mbar")
	assert.Contains(t, got, "\x1b[30;48;5;114mqux")
	assert.NotContains(t, got, "\x1b[30;48;5;217mfoo")
}

func TestPretty_Header(t *testing.T) {
	a, b := "old\n", "new\n"
	fragments := lines(t, a, b)
	cases := []struct {
		name       string
		from, to   string
		wantHeader string
	}{
		{name: "no filenames"},
		{name: "add file", to: "somefile.go", wantHeader: "add somefile.go:"},
		{name: "delete file", from: "somefile.go", wantHeader: "delete somefile.go:"},
		{name: "same name", from: "same.go", to: "same.go", wantHeader: "same.go:"},
		{name: "rename", from: "old.go", to: "new.go", wantHeader: "old.go -> new.go:"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			first, _, _ := strings.Cut(Pretty(a, b, fragments, Options{OldName: tc.from, NewName: tc.to}), "\n")
			if tc.wantHeader == "" {
				assert.Equal(t, "-old", first)
				return
			}
			assert.Equal(t, tc.wantHeader, first)
		})
	}
}

func TestSideBySide(t *testing.T) {
	a := "a\nb\nc\nd"
	b := "a\nB\nc"
	got := SideBySide(a, b, lines(t, a, b), Options{Context: 1, Width: 23})
	row := func(left, mark, right string) string {
		return strings.TrimRight(fmt.Sprintf("%-10s %s %s", left, mark, right), " ")
	}
	assert.Equal(t, strings.Join([]string{
		"@@ -1,4 +1,3 @@",
		row("a", " ", "a"),
		row("b", "|", "B"),
		row("c", " ", "c"),
		row("d", "<", ""),
	}, "\n"), got)
}

func TestSideBySide_Truncates(t *testing.T) {
	a, b := "abcdefgh", "x"
	got := SideBySide(a, b, lines(t, a, b), Options{Width: 13, OldName: "left", NewName: "right"})
	assert.Equal(t, "left    right\n@@ -1,1 +1,1 @@\nabcd… | x", got)
}

func TestInline(t *testing.T) {
	a, b := "foo bar baz", "foo qux baz!"
	fragments, err := comparison.CompareWords(context.Background(), a, b, comparison.PolicyDefault)
	require.NoError(t, err)
	assert.Equal(t, "foo [-bar-]{+qux+} baz{+!+}", Inline(a, b, fragments, Options{}))

	colored := Inline(a, b, fragments, Options{Color: true})
	assert.True(t, strings.HasPrefix(colored, "foo \x1b[30;48;5;217mbar"))
	assert.Contains(t, colored, "\x1b[30;48;5;114mqux")
	assert.Contains(t, colored, "\x1b[30;48;5;114m!")
	assert.NotContains(t, colored, "[-")
}
