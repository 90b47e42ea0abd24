package comparison

import (
	"fmt"

	"github.com/codalotl/textcompare/internal/lineindex"
)

// DiffFragment is a changed region: [Start1, End1) of the first text was replaced by [Start2, End2) of the second. Offsets are bytes.
type DiffFragment struct {
	Start1 int
	End1   int
	Start2 int
	End2   int
}

// IsEmpty1 reports whether the fragment is a pure insertion (nothing on the first side).
func (f DiffFragment) IsEmpty1() bool {
	return f.Start1 == f.End1
}

// IsEmpty2 reports whether the fragment is a pure deletion (nothing on the second side).
func (f DiffFragment) IsEmpty2() bool {
	return f.Start2 == f.End2
}

func (f DiffFragment) String() string {
	return fmt.Sprintf("(%d, %d) - (%d, %d)", f.Start1, f.End1, f.Start2, f.End2)
}

// shift returns f moved by d1 on the first side and d2 on the second.
func (f DiffFragment) shift(d1, d2 int) DiffFragment {
	return DiffFragment{Start1: f.Start1 + d1, End1: f.End1 + d1, Start2: f.Start2 + d2, End2: f.End2 + d2}
}

// LineFragment is a changed range of whole lines: lines [StartLine1, EndLine1) of the first text were replaced by lines [StartLine2, EndLine2) of the second.
// The embedded DiffFragment holds the byte offsets of those lines (see the package doc for the exact rule).
//
// Inner, if non-nil, holds the word-level differences inside the fragment, with offsets relative to Start1 (first side) and Start2 (second side). A nil Inner
// means no finer information is available: the whole fragment is changed.
type LineFragment struct {
	DiffFragment
	StartLine1 int
	EndLine1   int
	StartLine2 int
	EndLine2   int
	Inner      []DiffFragment
}

func (f LineFragment) String() string {
	return fmt.Sprintf("lines (%d, %d) - (%d, %d), offsets %s, %d inner", f.StartLine1, f.EndLine1, f.StartLine2, f.EndLine2, f.DiffFragment, len(f.Inner))
}

// lineRangeOffsets returns the byte offsets of lines [start, end) per the line index rule.
func lineRangeOffsets(x lineindex.Offsets, start, end int) (int, int) {
	if start == end {
		if start < x.LineCount() {
			offset := x.LineStart(start)
			return offset, offset
		}
		return x.TextLength(), x.TextLength()
	}
	return x.LineStart(start), x.LineEnd(end-1, true)
}

// newLineFragment builds a LineFragment for the given line ranges, filling offsets from the indexes.
func newLineFragment(x1, x2 lineindex.Offsets, startLine1, endLine1, startLine2, endLine2 int) LineFragment {
	s1, e1 := lineRangeOffsets(x1, startLine1, endLine1)
	s2, e2 := lineRangeOffsets(x2, startLine2, endLine2)
	return LineFragment{
		DiffFragment: DiffFragment{Start1: s1, End1: e1, Start2: s2, End2: e2},
		StartLine1:   startLine1,
		EndLine1:     endLine1,
		StartLine2:   startLine2,
		EndLine2:     endLine2,
	}
}
