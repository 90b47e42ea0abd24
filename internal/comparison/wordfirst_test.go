package comparison

import (
	"context"
	"testing"

	"github.com/codalotl/textcompare/internal/lineindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compareWordFirst(t *testing.T, a, b string, policy Policy) []LineFragment {
	t.Helper()
	got, err := CompareLinesWordFirst(context.Background(), a, b, LineOffsetsFor(a), LineOffsetsFor(b), policy)
	require.NoError(t, err)
	return got
}

func TestCompareLinesWordFirst(t *testing.T) {
	tests := []struct {
		name   string
		a, b   string
		policy Policy
		want   []LineFragment
	}{
		{name: "identical", a: "a b\nc", b: "a b\nc"},
		{name: "insert into empty", a: "", b: "x", want: []LineFragment{lf(0, 1, 0, 1, 0, 0, 0, 1)}},
		{
			name: "word inside line",
			a:    "foo bar\nbaz",
			b:    "foo qux\nbaz",
			want: []LineFragment{lf(0, 1, 0, 1, 0, 8, 0, 8, df(4, 7, 4, 7))},
		},
		{
			name: "inserted line",
			a:    "a\nc\n",
			b:    "a\nb\nc\n",
			want: []LineFragment{lf(1, 1, 1, 2, 2, 2, 2, 4)},
		},
		{
			name: "reflowed line keeps words",
			a:    "a b c\n",
			b:    "a b\nc\n",
			want: []LineFragment{lf(0, 1, 0, 2, 0, 6, 0, 6, df(3, 4, 3, 4))},
		},
		{
			name: "changes on separate lines",
			a:    "x1\nsame\nx2",
			b:    "y1\nsame\ny2",
			want: []LineFragment{lf(0, 1, 0, 1, 0, 3, 0, 3, df(0, 2, 0, 2)), lf(2, 3, 2, 3, 8, 10, 8, 10)},
		},
		{name: "ignore whitespace", a: "a  b\nc", b: "a b\nc", policy: PolicyIgnoreWhitespaces},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compareWordFirst(t, tt.a, tt.b, tt.policy))
		})
	}
}

func TestCompareLinesWordFirst_InconsistentIndex(t *testing.T) {
	_, err := CompareLinesWordFirst(context.Background(), "ab\n", "ab", lineindex.New("abc"), lineindex.New("ab"), PolicyDefault)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, lineindex.ErrInconsistent)

	_, err = CompareLinesWordFirst(context.Background(), "ab", "ab\n", lineindex.New("ab"), lineindex.New("ab"), PolicyDefault)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCompareLinesWordFirst_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := CompareLinesWordFirst(ctx, "a", "b", LineOffsetsFor("a"), LineOffsetsFor("b"), PolicyDefault)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, got)
}
