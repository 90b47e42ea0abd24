package comparison

import (
	"fmt"
	"strings"

	"github.com/codalotl/textcompare/internal/chars"
	"github.com/codalotl/textcompare/internal/lineindex"
)

// Squash merges line fragments that touch on both sides (one ends on the lines where the next starts), which can be produced by concatenating the results
// of separate comparisons. Inner fragments are carried over; a nil Inner merged with a non-nil one becomes a single inner fragment covering it.
//
// fragments must be ordered and non-overlapping; otherwise Squash returns an error wrapping ErrInvalidInput.
func Squash(fragments []LineFragment) ([]LineFragment, error) {
	if err := checkOrder(fragments); err != nil {
		return nil, err
	}
	return squashTouching(fragments), nil
}

func squashTouching(fragments []LineFragment) []LineFragment {
	var out []LineFragment
	for _, f := range fragments {
		if n := len(out); n > 0 && out[n-1].EndLine1 == f.StartLine1 && out[n-1].EndLine2 == f.StartLine2 {
			out[n-1] = joinLineFragments(out[n-1], f)
			continue
		}
		out = append(out, f)
	}
	return out
}

func joinLineFragments(a, b LineFragment) LineFragment {
	joined := LineFragment{
		DiffFragment: DiffFragment{Start1: a.Start1, End1: b.End1, Start2: a.Start2, End2: b.End2},
		StartLine1:   a.StartLine1,
		EndLine1:     b.EndLine1,
		StartLine2:   a.StartLine2,
		EndLine2:     b.EndLine2,
	}
	if a.Inner == nil && b.Inner == nil {
		return joined
	}
	inner := append([]DiffFragment(nil), innerOrWhole(a)...)
	d1, d2 := b.Start1-a.Start1, b.Start2-a.Start2
	for _, f := range innerOrWhole(b) {
		inner = append(inner, f.shift(d1, d2))
	}
	joined.Inner = SquashFragments(inner)
	return joined
}

// innerOrWhole returns f.Inner, or a fragment covering all of f if Inner is nil.
func innerOrWhole(f LineFragment) []DiffFragment {
	if f.Inner != nil {
		return f.Inner
	}
	if f.IsEmpty1() && f.IsEmpty2() {
		return nil
	}
	return []DiffFragment{{End1: f.End1 - f.Start1, End2: f.End2 - f.Start2}}
}

// SquashFragments merges ordered DiffFragments that touch on both sides.
func SquashFragments(fragments []DiffFragment) []DiffFragment {
	var out []DiffFragment
	for _, f := range fragments {
		if n := len(out); n > 0 && out[n-1].End1 == f.Start1 && out[n-1].End2 == f.Start2 {
			out[n-1].End1 = f.End1
			out[n-1].End2 = f.End2
			continue
		}
		out = append(out, f)
	}
	return out
}

// ProcessBlocks post-processes the line fragments of text1 and text2.
//
// If trim is set, each side of every fragment first loses its leading and trailing whitespace-only lines. A fragment left with no lines on either side is
// dropped, except under PolicyDefault where it is kept untrimmed. Inner fragments are clipped to the trimmed range. If squash is set, fragments that touch on
// both sides are then merged (see Squash).
//
// fragments must be ordered and lie within the texts; otherwise ProcessBlocks returns an error wrapping ErrInvalidInput.
func ProcessBlocks(fragments []LineFragment, text1, text2 string, policy Policy, squash, trim bool) ([]LineFragment, error) {
	if err := checkOrder(fragments); err != nil {
		return nil, err
	}
	x1, x2 := lineindex.New(text1), lineindex.New(text2)
	for i, f := range fragments {
		if f.EndLine1 > x1.LineCount() || f.EndLine2 > x2.LineCount() {
			return nil, fmt.Errorf("%w: fragment[%d] %v: line out of bounds", ErrInvalidInput, i, f)
		}
	}

	result := fragments
	if trim {
		result = nil
		for _, f := range fragments {
			t, ok := trimLineFragment(f, text1, text2, x1, x2)
			if !ok {
				if policy != PolicyDefault {
					continue
				}
				t = f
			}
			result = append(result, t)
		}
	}
	if squash {
		result = squashTouching(result)
	}
	return result, nil
}

// trimLineFragment strips blank lines from both ends of each side of f. ok is false if no line is left on either side.
func trimLineFragment(f LineFragment, text1, text2 string, x1, x2 *lineindex.Index) (LineFragment, bool) {
	s1, e1 := trimBlankLines(text1, x1, f.StartLine1, f.EndLine1)
	s2, e2 := trimBlankLines(text2, x2, f.StartLine2, f.EndLine2)
	if s1 == e1 && s2 == e2 {
		return LineFragment{}, false
	}
	t := newLineFragment(x1, x2, s1, e1, s2, e2)
	if f.Inner != nil {
		t.Inner = clipInner(f, t)
	}
	return t, true
}

func trimBlankLines(text string, x *lineindex.Index, start, end int) (int, int) {
	blank := func(line int) bool {
		return strings.TrimFunc(text[x.LineStart(line):x.LineEnd(line, false)], chars.IsWhitespace) == ""
	}
	for start < end && blank(start) {
		start++
	}
	for end > start && blank(end-1) {
		end--
	}
	return start, end
}

// clipInner moves the inner fragments of f into the coordinates of t, a sub-range of f, dropping what falls outside t.
func clipInner(f, t LineFragment) []DiffFragment {
	inner := []DiffFragment{}
	for _, in := range f.Inner {
		abs := in.shift(f.Start1, f.Start2)
		c := DiffFragment{
			Start1: clamp(abs.Start1, t.Start1, t.End1),
			End1:   clamp(abs.End1, t.Start1, t.End1),
			Start2: clamp(abs.Start2, t.Start2, t.End2),
			End2:   clamp(abs.End2, t.Start2, t.End2),
		}
		if c.IsEmpty1() && c.IsEmpty2() {
			continue
		}
		inner = append(inner, c.shift(-t.Start1, -t.Start2))
	}
	return inner
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// checkOrder verifies that fragments are well formed and ordered on both sides.
func checkOrder(fragments []LineFragment) error {
	prev := LineFragment{}
	for i, f := range fragments {
		if f.StartLine1 < 0 || f.StartLine2 < 0 || f.Start1 < 0 || f.Start2 < 0 {
			return fmt.Errorf("%w: fragment[%d] %v: negative position", ErrInvalidInput, i, f)
		}
		if f.StartLine1 > f.EndLine1 || f.StartLine2 > f.EndLine2 || f.Start1 > f.End1 || f.Start2 > f.End2 {
			return fmt.Errorf("%w: fragment[%d] %v: start after end", ErrInvalidInput, i, f)
		}
		if i > 0 && (f.StartLine1 < prev.EndLine1 || f.StartLine2 < prev.EndLine2 || f.Start1 < prev.End1 || f.Start2 < prev.End2) {
			return fmt.Errorf("%w: fragment[%d] %v: not ordered after %v", ErrInvalidInput, i, f, prev)
		}
		prev = f
	}
	return nil
}
