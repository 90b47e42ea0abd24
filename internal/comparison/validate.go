package comparison

import (
	"fmt"

	"github.com/codalotl/textcompare/internal/lineindex"
)

// validateFragments checks DiffFragment invariants against texts of length len1 and len2 and returns an error on the first violation.
func validateFragments(fragments []DiffFragment, len1, len2 int) error {
	p1, p2 := 0, 0
	for i, f := range fragments {
		if f.Start1 > f.End1 || f.Start2 > f.End2 {
			return fmt.Errorf("fragment[%d] %v: start after end", i, f)
		}
		if f.IsEmpty1() && f.IsEmpty2() {
			return fmt.Errorf("fragment[%d] %v: empty on both sides", i, f)
		}
		if f.Start1 < p1 || f.Start2 < p2 {
			return fmt.Errorf("fragment[%d] %v: overlaps or precedes the previous fragment", i, f)
		}
		if f.End1 > len1 || f.End2 > len2 {
			return fmt.Errorf("fragment[%d] %v: out of bounds (%d, %d)", i, f, len1, len2)
		}
		p1, p2 = f.End1, f.End2
	}
	return nil
}

// validateLineFragments checks LineFragment invariants against the two line indexes, including the nested inner fragments.
func validateLineFragments(fragments []LineFragment, x1, x2 lineindex.Offsets) error {
	prevLine1, prevLine2 := 0, 0
	p1, p2 := 0, 0
	for i, f := range fragments {
		if f.StartLine1 > f.EndLine1 || f.StartLine2 > f.EndLine2 {
			return fmt.Errorf("line fragment[%d] %v: start line after end line", i, f)
		}
		if f.StartLine1 == f.EndLine1 && f.StartLine2 == f.EndLine2 {
			return fmt.Errorf("line fragment[%d] %v: no lines on either side", i, f)
		}
		if f.StartLine1 < prevLine1 || f.StartLine2 < prevLine2 || f.Start1 < p1 || f.Start2 < p2 {
			return fmt.Errorf("line fragment[%d] %v: overlaps or precedes the previous fragment", i, f)
		}
		if i > 0 && f.StartLine1 == prevLine1 && f.StartLine2 == prevLine2 {
			return fmt.Errorf("line fragment[%d] %v: touches the previous fragment on both sides", i, f)
		}
		if f.EndLine1 > x1.LineCount() || f.EndLine2 > x2.LineCount() {
			return fmt.Errorf("line fragment[%d] %v: line out of bounds", i, f)
		}
		s1, e1 := lineRangeOffsets(x1, f.StartLine1, f.EndLine1)
		s2, e2 := lineRangeOffsets(x2, f.StartLine2, f.EndLine2)
		if s1 != f.Start1 || e1 != f.End1 || s2 != f.Start2 || e2 != f.End2 {
			return fmt.Errorf("line fragment[%d] %v: offsets do not match the line index (%d, %d) - (%d, %d)", i, f, s1, e1, s2, e2)
		}
		if f.Inner != nil {
			if err := validateFragments(f.Inner, f.End1-f.Start1, f.End2-f.Start2); err != nil {
				return fmt.Errorf("line fragment[%d] inner: %w", i, err)
			}
		}
		prevLine1, prevLine2 = f.EndLine1, f.EndLine2
		p1, p2 = f.End1, f.End2
	}
	return nil
}

func mustValidateFragments(op string, fragments []DiffFragment, len1, len2 int) {
	if err := validateFragments(fragments, len1, len2); err != nil {
		panic(fmt.Errorf("%s: internal invariant violated: %w", op, err))
	}
}

func mustValidateLineFragments(op string, fragments []LineFragment, x1, x2 lineindex.Offsets) {
	if err := validateLineFragments(fragments, x1, x2); err != nil {
		panic(fmt.Errorf("%s: internal invariant violated: %w", op, err))
	}
}
