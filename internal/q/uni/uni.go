// Package uni measures and cuts text for display in monospace terminals, one grapheme cluster at a time.
package uni

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

// Options control width calculation. Currently only relevant for East Asian code points and their locale.
type Options struct {
	EastAsianWidth   bool // if true, treats certain East Asian code points as 2 wide (e.g., Chinese, Japanese, Korean). Use if the locale is one of CJK.
	TreatEmojiAsWide bool // Only considered if EastAsianWidth. If true, treats emoji as wide (2 columns).
}

// TextWidth returns the text width of str for monospace fonts in terminals. If opts is nil, locale is assumed to be non-East Asian.
func TextWidth(str string, opts *Options) int {
	return conditionFromOptions(opts).StringWidth(str)
}

// Truncate returns the longest prefix of str, cut at a grapheme cluster boundary, whose width is at most width. If str is cut and ellipsis is non-empty, the
// prefix is shortened further so that it ends with ellipsis and still fits.
func Truncate(str string, width int, ellipsis string, opts *Options) string {
	cond := conditionFromOptions(opts)
	if cond.StringWidth(str) <= width {
		return str
	}
	limit := width - cond.StringWidth(ellipsis)
	if limit < 0 {
		limit, ellipsis = width, ""
	}

	used := 0
	end := 0
	iter := graphemes.FromString(str)
	for iter.Next() {
		w := cond.StringWidth(iter.Value())
		if used+w > limit {
			break
		}
		used += w
		end = iter.End()
	}
	return str[:end] + ellipsis
}

// Pad appends spaces to str until it is width columns wide. str is returned unchanged if it is already at least that wide.
func Pad(str string, width int, opts *Options) string {
	w := TextWidth(str, opts)
	if w >= width {
		return str
	}
	return str + strings.Repeat(" ", width-w)
}

// ExpandTabs replaces each tab in str with spaces up to the next multiple of tabWidth columns.
func ExpandTabs(str string, tabWidth int, opts *Options) string {
	if !strings.Contains(str, "\t") {
		return str
	}
	cond := conditionFromOptions(opts)
	var b strings.Builder
	col := 0
	iter := graphemes.FromString(str)
	for iter.Next() {
		g := iter.Value()
		if g == "\t" {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteString(g)
		col += cond.StringWidth(g)
	}
	return b.String()
}

func conditionFromOptions(opts *Options) *runewidth.Condition {
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	cond.StrictEmojiNeutral = true

	if opts == nil {
		return cond
	}

	cond.EastAsianWidth = opts.EastAsianWidth
	if opts.EastAsianWidth && opts.TreatEmojiAsWide {
		cond.StrictEmojiNeutral = false
	}

	return cond
}
