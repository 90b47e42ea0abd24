package comparison

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var policies = []Policy{PolicyDefault, PolicyTrimWhitespaces, PolicyIgnoreWhitespaces}

// randomText returns a short text drawn from a small alphabet so that random pairs share plenty of content.
func randomText(rng *rand.Rand) string {
	pieces := []string{"a", "b", "foo", "bar", " ", "  ", "\n", "\t", ",", "(", ")", "é", "汉", "語"}
	var b strings.Builder
	for n := rng.IntN(16); n > 0; n-- {
		b.WriteString(pieces[rng.IntN(len(pieces))])
	}
	return b.String()
}

// requireCoverage checks that the gaps between fragments are identical in both texts, so that text1 with every fragment replaced by its counterpart is text2.
func requireCoverage(t *testing.T, fragments []DiffFragment, text1, text2 string) {
	t.Helper()
	var rebuilt strings.Builder
	p1, p2 := 0, 0
	for _, f := range fragments {
		require.Equal(t, text1[p1:f.Start1], text2[p2:f.Start2], "gap before %v", f)
		rebuilt.WriteString(text1[p1:f.Start1])
		rebuilt.WriteString(text2[f.Start2:f.End2])
		p1, p2 = f.End1, f.End2
	}
	require.Equal(t, text1[p1:], text2[p2:])
	rebuilt.WriteString(text1[p1:])
	require.Equal(t, text2, rebuilt.String())
}

func changedRunes(fragments []DiffFragment, text1, text2 string) int {
	n := 0
	for _, f := range fragments {
		n += utf8.RuneCountInString(text1[f.Start1:f.End1]) + utf8.RuneCountInString(text2[f.Start2:f.End2])
	}
	return n
}

func TestCompareChars_MinimalAgainstDiffMatchPatch(t *testing.T) {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	rng := rand.New(rand.NewPCG(7, 8))
	for iter := 0; iter < 300; iter++ {
		text1, text2 := randomText(rng), randomText(rng)
		got, err := CompareChars(context.Background(), text1, text2, PolicyDefault)
		require.NoError(t, err)
		requireCoverage(t, got, text1, text2)

		want := 0
		for _, d := range dmp.DiffMain(text1, text2, false) {
			if d.Type != diffmatchpatch.DiffEqual {
				want += utf8.RuneCountInString(d.Text)
			}
		}
		require.Equal(t, want, changedRunes(got, text1, text2), "%q vs %q", text1, text2)
	}
}

func TestCompareWords_Coverage(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 10))
	for iter := 0; iter < 300; iter++ {
		text1, text2 := randomText(rng), randomText(rng)
		got, err := CompareWords(context.Background(), text1, text2, PolicyDefault)
		require.NoError(t, err)
		requireCoverage(t, got, text1, text2)
	}
}

func TestCompareChars_EmptyIffEqual(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	for iter := 0; iter < 300; iter++ {
		text1 := randomText(rng)
		// Perturb whitespace only, half of the time.
		text2 := text1
		if rng.IntN(2) == 0 {
			text2 = strings.ReplaceAll(text2, " ", "\t")
			text2 = " " + text2 + "  "
		} else {
			text2 = randomText(rng)
		}
		for _, p := range policies {
			got, err := CompareChars(context.Background(), text1, text2, p)
			require.NoError(t, err)
			assert.Equal(t, IsEquals(text1, text2, p), len(got) == 0, "%q vs %q (%v): %v", text1, text2, p, got)
		}
	}
}

func TestIsEquals_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 14))
	for iter := 0; iter < 300; iter++ {
		a, b := randomText(rng), randomText(rng)
		for _, p := range policies {
			assert.True(t, IsEquals(a, a, p))
			assert.Equal(t, IsEquals(a, b, p), IsEquals(b, a, p))
		}
		// Equality under a stricter policy implies equality under a looser one.
		if IsEquals(a, b, PolicyDefault) {
			assert.True(t, IsEquals(a, b, PolicyTrimWhitespaces))
		}
		if IsEquals(a, b, PolicyTrimWhitespaces) {
			assert.True(t, IsEquals(a, b, PolicyIgnoreWhitespaces))
		}
	}
}

func TestLineComparisons_Valid(t *testing.T) {
	rng := rand.New(rand.NewPCG(15, 16))
	ctx := context.Background()
	for iter := 0; iter < 300; iter++ {
		text1, text2 := randomText(rng), randomText(rng)
		for _, p := range policies {
			// Results are validated internally; a violation panics.
			lines, err := CompareLinesInner(ctx, text1, text2, p)
			require.NoError(t, err)
			_, err = ProcessBlocks(lines, text1, text2, p, true, true)
			require.NoError(t, err)

			wordFirst, err := CompareLinesWordFirst(ctx, text1, text2, LineOffsetsFor(text1), LineOffsetsFor(text2), p)
			require.NoError(t, err)
			if p == PolicyDefault {
				assert.Equal(t, text1 == text2, len(wordFirst) == 0, "%q vs %q", text1, text2)
			}
		}
	}
}
