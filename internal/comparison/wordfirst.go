package comparison

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/codalotl/textcompare/internal/lineindex"
	"github.com/codalotl/textcompare/internal/match"
)

// CompareLinesWordFirst compares text1 and text2 by words over the whole texts, then reports the lines touched by word changes. A line is unchanged only if
// every word on it was matched. Changes on consecutive or shared lines are merged into one LineFragment, whose Inner holds the word changes it covers.
//
// Unlike CompareLines, a small edit never turns a moved or reflowed line into a whole-line replacement if its words still match.
//
// x1 and x2 must be line indexes of text1 and text2 (see LineOffsetsFor); an inconsistent index is an error wrapping ErrInvalidInput.
func CompareLinesWordFirst(ctx context.Context, text1, text2 string, x1, x2 lineindex.Offsets, policy Policy) ([]LineFragment, error) {
	if err := lineindex.Validate(x1, text1); err != nil {
		return nil, fmt.Errorf("%w: first text: %w", ErrInvalidInput, err)
	}
	if err := lineindex.Validate(x2, text2); err != nil {
		return nil, fmt.Errorf("%w: second text: %w", ErrInvalidInput, err)
	}

	u1, u2 := newUnits(text1, policy), newUnits(text2, policy)
	al, err := wordAlignment(ctx, u1, u2)
	if err != nil {
		return nil, fmt.Errorf("compare lines word first: %w", err)
	}
	words := fragments(al, u1, u2)

	syncs := syncPoints(al, u1, u2, words, x1, x2)

	var result []LineFragment
	var group []DiffFragment
	var start, end int // sync indexes of the current group
	flush := func() {
		if len(group) == 0 {
			return
		}
		f := newLineFragment(x1, x2, syncs[start].line1, syncs[end].line1, syncs[start].line2, syncs[end].line2)
		inner := make([]DiffFragment, len(group))
		for i, w := range group {
			inner[i] = w.shift(-f.Start1, -f.Start2)
		}
		f.Inner = compactInner(inner, f.End1-f.Start1, f.End2-f.Start2)
		result = append(result, f)
		group = group[:0]
	}
	si := 0
	for _, w := range words {
		// Last sync point at or before the fragment. The end sentinel is never a start.
		for si+1 < len(syncs)-1 && syncs[si+1].offset1 <= w.Start1 && syncs[si+1].offset2 <= w.Start2 {
			si++
		}
		// First sync point at or after the fragment.
		ei := si + 1
		for ei < len(syncs)-1 && (syncs[ei].offset1 < w.End1 || syncs[ei].offset2 < w.End2) {
			ei++
		}
		if len(group) > 0 && si <= end {
			end = max(end, ei)
		} else {
			flush()
			start, end = si, ei
		}
		group = append(group, w)
	}
	flush()

	mustValidateLineFragments("CompareLinesWordFirst", result, x1, x2)
	return result, nil
}

// syncPoint is a pair of line starts, one per text, with their offsets.
type syncPoint struct {
	offset1, offset2 int
	line1, line2     int
}

// syncPoints returns the places where both texts start a line together, in order: the text starts, just after every pair of matched line breaks, and the
// edges of word fragments that fall on line starts in both texts. The last element is the pair of text ends, with the line counts as lines; it is only used
// as an end.
func syncPoints(al match.Alignment, u1, u2 *units, words []DiffFragment, x1, x2 lineindex.Offsets) []syncPoint {
	newSync := func(o1, o2 int) syncPoint {
		return syncPoint{offset1: o1, offset2: o2, line1: x1.LineNumber(o1), line2: x2.LineNumber(o2)}
	}
	syncs := []syncPoint{newSync(0, 0)}
	for _, r := range al.Unchanged {
		for k := 0; k < r.End1-r.Start1; k++ {
			if u1.rune(r.Start1+k) == '\n' {
				syncs = append(syncs, newSync(u1.offsets[r.Start1+k+1], u2.offsets[r.Start2+k+1]))
			}
		}
	}
	for _, w := range words {
		if isLineStart(x1, w.Start1) && isLineStart(x2, w.Start2) {
			syncs = append(syncs, newSync(w.Start1, w.Start2))
		}
		if isLineStart(x1, w.End1) && isLineStart(x2, w.End2) {
			syncs = append(syncs, newSync(w.End1, w.End2))
		}
	}
	slices.SortFunc(syncs, func(a, b syncPoint) int {
		return cmp.Or(cmp.Compare(a.offset1, b.offset1), cmp.Compare(a.offset2, b.offset2))
	})
	syncs = slices.CompactFunc(syncs, func(a, b syncPoint) bool {
		return a.offset1 == b.offset1 && a.offset2 == b.offset2
	})
	return append(syncs, syncPoint{offset1: x1.TextLength(), offset2: x2.TextLength(), line1: x1.LineCount(), line2: x2.LineCount()})
}

// isLineStart reports whether offset is the first byte of a line. The end of a text is a line start only if the text ends with a line break.
func isLineStart(x lineindex.Offsets, offset int) bool {
	return x.LineStart(x.LineNumber(offset)) == offset
}
