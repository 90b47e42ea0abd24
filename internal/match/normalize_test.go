package match

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalized(t *testing.T, a, b string, boundary BoundaryFunc) []Range {
	t.Helper()
	al, err := Diff(context.Background(), ids(a), ids(b))
	require.NoError(t, err)
	norm := Normalize(al, ids(a), ids(b), nil, boundary)
	requireConsistent(t, norm, ids(a), ids(b))
	return norm.Unchanged
}

func TestNormalize_Earliest(t *testing.T) {
	// The extra '?' could be either of the two in the second text; the first one is reported.
	assert.Equal(t, []Range{{0, 1, 0, 1}, {1, 3, 2, 4}}, normalized(t, "x?y", "x??y", nil))
	assert.Equal(t, []Range{{0, 1, 0, 1}, {2, 4, 1, 3}}, normalized(t, "x??y", "x?y", nil))
}

func TestNormalize_LongerRuns(t *testing.T) {
	// "ab" inserted at the start keeps the matched "ab" in one piece, like inserting it at the end would; the earlier position wins the tie.
	assert.Equal(t, []Range{{0, 2, 2, 4}}, normalized(t, "ab", "abab", nil))
}

func TestNormalize_JoinsNeighborBlock(t *testing.T) {
	a, b := ids("Pab"), ids("Qaab")
	al := Alignment{Length1: 3, Length2: 4, Unchanged: []Range{{1, 2, 1, 2}, {2, 3, 3, 4}}}
	norm := Normalize(al, a, b, nil, nil)
	// The inserted 'a' slides left onto the P->Q replacement, leaving a single change block.
	assert.Equal(t, []Range{{1, 3, 2, 4}}, norm.Unchanged)
	assert.Len(t, norm.Changes(), 1)
}

func TestNormalize_Boundaries(t *testing.T) {
	text := []rune("foo baz bar")
	afterSpace := func(side, i int) int {
		if side == 2 && i > 0 && text[i-1] == ' ' {
			return 1
		}
		return 0
	}
	assert.Equal(t, []Range{{0, 3, 0, 3}, {3, 7, 7, 11}}, normalized(t, "foo bar", "foo baz bar", nil))
	assert.Equal(t, []Range{{0, 4, 0, 4}, {4, 7, 8, 11}}, normalized(t, "foo bar", "foo baz bar", afterSpace))
}

func TestNormalize_NonSlidable(t *testing.T) {
	al := Alignment{Length1: 3, Length2: 3, Unchanged: []Range{{0, 1, 0, 1}, {2, 3, 2, 3}}}
	assert.Equal(t, al, Normalize(al, ids("axc"), ids("ayc"), nil, nil))
}

func TestRules(t *testing.T) {
	x := Candidate{Pos: 1, Blocks: 1, Runs: 2, Boundary: 3}
	y := Candidate{Pos: 2, Blocks: 0, Runs: 1, Boundary: 5}

	assert.Positive(t, LongerRuns(x, y))
	assert.Positive(t, FewerBlocks(x, y))
	assert.Positive(t, BetterBoundaries(x, y))
	assert.Negative(t, Earliest(x, y))

	assert.Positive(t, Compare(DefaultRules, x, y))
	assert.Negative(t, Compare([]Rule{Earliest, LongerRuns}, x, y))
	assert.Zero(t, Compare(nil, x, y))
}

func TestRefine(t *testing.T) {
	// Stage one matches letters only; stage two matches the remaining punctuation inside the gaps.
	a, b := ids("a,b;c"), ids("a;b,;c")
	isLetter1 := func(i int) bool { return a[i] >= 'a' && a[i] <= 'z' }
	isLetter2 := func(i int) bool { return b[i] >= 'a' && b[i] <= 'z' }
	not := func(f func(int) bool) func(int) bool { return func(i int) bool { return !f(i) } }

	empty := Alignment{Length1: len(a), Length2: len(b)}
	words, err := Refine(context.Background(), empty, a, b, isLetter1, isLetter2, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []Range{{0, 1, 0, 1}, {2, 3, 2, 3}, {4, 5, 5, 6}}, words.Unchanged)

	full, err := Refine(context.Background(), words, a, b, not(isLetter1), not(isLetter2), nil, nil)
	require.NoError(t, err)
	requireConsistent(t, full, a, b)
	assert.Equal(t, []Range{{0, 1, 0, 1}, {2, 3, 2, 3}, {3, 5, 4, 6}}, full.Unchanged)
}
