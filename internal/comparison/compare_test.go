package comparison

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareChars_LargeUnrelatedTexts(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a, b := strings.Repeat("ab", 40000), strings.Repeat("cd", 40000)
	got, err := CompareChars(ctx, a, b, PolicyDefault)
	require.NoError(t, err)
	assert.Equal(t, []DiffFragment{{Start1: 0, End1: len(a), Start2: 0, End2: len(b)}}, got)

	a, b = strings.Repeat("ab\n", 30000), strings.Repeat("cd\n", 30000)
	got, err = CompareChars(ctx, a, b, PolicyDefault)
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}

func TestCompareChars(t *testing.T) {
	tests := []struct {
		name   string
		a, b   string
		policy Policy
	}{
		{name: "identical", a: "abc", b: "abc"},
		{name: "empty", a: "", b: ""},
		{name: "insert all", a: "[]", b: "[abc]"},
		{name: "delete all", a: "[abc]", b: "[]"},
		{name: "disjoint", a: "[abc]", b: "[xyz]"},
		{name: "single deletion", a: "x[?]y", b: "x[]y"},
		{name: "earliest of equal candidates", a: "x[?]?y", b: "x[]?y"},
		{name: "multibyte", a: "h[é]llo", b: "h[e]llo"},
		{name: "trim ignores line edges", a: "  a\nb  ", b: "a\n\tb", policy: PolicyTrimWhitespaces},
		{name: "trim keeps inner space", a: "a [x]b", b: "a []b", policy: PolicyTrimWhitespaces},
		{name: "ignore", a: "a b\nc", b: "ab c\n", policy: PolicyIgnoreWhitespaces},
		{name: "ignore reports real change", a: "a [b]", b: "a  [c]", policy: PolicyIgnoreWhitespaces},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text1, text2, want := markedPair(t, tt.a, tt.b)
			got, err := CompareChars(context.Background(), text1, text2, tt.policy)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestCompareChars_TrimInnerWhitespace(t *testing.T) {
	got, err := CompareChars(context.Background(), "a b", "a  b", PolicyTrimWhitespaces)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsEmpty1())
	assert.Equal(t, 1, got[0].End2-got[0].Start2)
}

func TestCompareWords(t *testing.T) {
	tests := []struct {
		name   string
		a, b   string
		policy Policy
	}{
		{name: "identical", a: "foo bar", b: "foo bar"},
		{name: "changed word", a: "foo [bar] baz", b: "foo [qux] baz"},
		{name: "words are atomic", a: "[foobar]", b: "[foobaz]"},
		{name: "inserted word", a: "foo[] bar", b: "foo[ baz] bar"},
		{name: "deleted argument", a: "x = foo(a[, b])", b: "x = foo(a[])"},
		{name: "continuous script", a: "[]汉语漢[語]", b: "[語]汉语漢[]"},
		{name: "ignore whitespace", a: "a  b\n c", b: "a b c", policy: PolicyIgnoreWhitespaces},
		{name: "trim line edges", a: "  foo\nbar ", b: "foo\n bar", policy: PolicyTrimWhitespaces},
		{name: "trim keeps inner space", a: "a[ ] b", b: "a[] b", policy: PolicyTrimWhitespaces},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text1, text2, want := markedPair(t, tt.a, tt.b)
			got, err := CompareWords(context.Background(), text1, text2, tt.policy)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestCompareWords_ContinuousScriptGranularity(t *testing.T) {
	text1, text2 := "汉语漢語", "語汉语漢"
	got, err := CompareWords(context.Background(), text1, text2, PolicyDefault)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, f := range got {
		assert.LessOrEqual(t, utf8.RuneCountInString(text1[f.Start1:f.End1]), 1, "%v", f)
		assert.LessOrEqual(t, utf8.RuneCountInString(text2[f.Start2:f.End2]), 1, "%v", f)
	}
}

func TestCompare_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	chars, err := CompareChars(ctx, "abc", "abd", PolicyDefault)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, chars)

	words, err := CompareWords(ctx, "abc", "abd", PolicyIgnoreWhitespaces)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, words)

	lines, err := CompareLinesInner(ctx, "abc", "abd", PolicyDefault)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, lines)
}

func TestIsEquals(t *testing.T) {
	tests := []struct {
		a, b   string
		policy Policy
		want   bool
	}{
		{a: "", b: "", policy: PolicyDefault, want: true},
		{a: "a", b: "a ", policy: PolicyDefault, want: false},
		{a: "", b: "   ", policy: PolicyTrimWhitespaces, want: true},
		{a: "\n\n", b: "\n\n\n", policy: PolicyTrimWhitespaces, want: false},
		{a: " a \n\tb", b: "a\nb  ", policy: PolicyTrimWhitespaces, want: true},
		{a: "a b", b: "a  b", policy: PolicyTrimWhitespaces, want: false},
		{a: "a\nb", b: "ab", policy: PolicyTrimWhitespaces, want: false},
		{a: "a\nb", b: "ab", policy: PolicyIgnoreWhitespaces, want: true},
		{a: "\n\n", b: "\n\n\n", policy: PolicyIgnoreWhitespaces, want: true},
		{a: "a b", b: "a c", policy: PolicyIgnoreWhitespaces, want: false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsEquals(tt.a, tt.b, tt.policy), "%q vs %q (%v)", tt.a, tt.b, tt.policy)
		assert.Equal(t, tt.want, IsEquals(tt.b, tt.a, tt.policy), "%q vs %q (%v)", tt.b, tt.a, tt.policy)
	}
}

func TestParsePolicy(t *testing.T) {
	for _, p := range []Policy{PolicyDefault, PolicyTrimWhitespaces, PolicyIgnoreWhitespaces} {
		got, err := ParsePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	got, err := ParsePolicy("Ignore-Whitespaces")
	require.NoError(t, err)
	assert.Equal(t, PolicyIgnoreWhitespaces, got)

	_, err = ParsePolicy("loose")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
