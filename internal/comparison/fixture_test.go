package comparison

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// marked parses a string where changed ranges are written in brackets, ex: "ab[c]d" is the text "abcd" with the range [2, 3) marked. An empty pair "[]"
// marks an empty range. Brackets cannot be nested or escaped.
func marked(t *testing.T, s string) (string, [][2]int) {
	t.Helper()
	var b strings.Builder
	var ranges [][2]int
	start := -1
	for _, r := range s {
		switch r {
		case '[':
			require.Equal(t, -1, start, "nested [ in %q", s)
			start = b.Len()
		case ']':
			require.NotEqual(t, -1, start, "unbalanced ] in %q", s)
			ranges = append(ranges, [2]int{start, b.Len()})
			start = -1
		default:
			b.WriteRune(r)
		}
	}
	require.Equal(t, -1, start, "unbalanced [ in %q", s)
	return b.String(), ranges
}

// markedPair parses two marked strings into texts and the fragments pairing their ranges in order. Both strings must mark the same number of ranges.
func markedPair(t *testing.T, s1, s2 string) (string, string, []DiffFragment) {
	t.Helper()
	text1, r1 := marked(t, s1)
	text2, r2 := marked(t, s2)
	require.Len(t, r2, len(r1), "range count of %q and %q", s1, s2)
	var want []DiffFragment
	for i := range r1 {
		want = append(want, DiffFragment{Start1: r1[i][0], End1: r1[i][1], Start2: r2[i][0], End2: r2[i][1]})
	}
	return text1, text2, want
}

func TestMarked(t *testing.T) {
	text, ranges := marked(t, "a[bc]d[]e")
	require.Equal(t, "abcde", text)
	require.Equal(t, [][2]int{{1, 3}, {4, 4}}, ranges)

	text1, text2, want := markedPair(t, "x[?]y", "x[]y")
	require.Equal(t, "x?y", text1)
	require.Equal(t, "xy", text2)
	require.Equal(t, []DiffFragment{{Start1: 1, End1: 2, Start2: 1, End2: 1}}, want)
}
