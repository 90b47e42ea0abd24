package uni

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextWidth(t *testing.T) {
	assert.Equal(t, 4, TextWidth("áb世", nil))
	assert.Equal(t, 0, TextWidth("", nil))

	star := "a☆"
	assert.Equal(t, 2, TextWidth(star, nil))
	assert.Equal(t, 3, TextWidth(star, &Options{EastAsianWidth: true}))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		width    int
		ellipsis string
		want     string
	}{
		{name: "fits", in: "abc", width: 3, want: "abc"},
		{name: "cut", in: "abcdef", width: 4, want: "abcd"},
		{name: "ellipsis", in: "abcdef", width: 4, ellipsis: "…", want: "abc…"},
		{name: "wide rune not split", in: "a世界", width: 4, want: "a世"},
		{name: "combining mark kept with base", in: "ééé", width: 2, want: "éé"},
		{name: "ellipsis wider than width", in: "abcdef", width: 1, ellipsis: "...", want: "a"},
		{name: "zero width", in: "abc", width: 0, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.width, tt.ellipsis, nil))
		})
	}
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab  ", Pad("ab", 4, nil))
	assert.Equal(t, "世 ", Pad("世", 3, nil))
	assert.Equal(t, "abcdef", Pad("abcdef", 3, nil))
}

func TestExpandTabs(t *testing.T) {
	assert.Equal(t, "a   b", ExpandTabs("a\tb", 4, nil))
	assert.Equal(t, "    x", ExpandTabs("\tx", 4, nil))
	assert.Equal(t, "世  x", ExpandTabs("世\tx", 4, nil))
	assert.Equal(t, "plain", ExpandTabs("plain", 4, nil))
}
