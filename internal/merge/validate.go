package merge

import "fmt"

// validateRanges checks MergeRange invariants against side lengths (indexed by ThreeSide) and returns an error on the first violation.
func validateRanges(ranges []MergeRange, lengths [3]int) error {
	var prev MergeRange
	for i, r := range ranges {
		empty := true
		for _, side := range ThreeSides {
			if r.Start(side) > r.End(side) {
				return fmt.Errorf("range[%d] %v: start after end on %v", i, r, side)
			}
			if r.End(side) > lengths[side] {
				return fmt.Errorf("range[%d] %v: out of bounds on %v (%d)", i, r, side, lengths[side])
			}
			if i > 0 && r.Start(side) < prev.End(side) {
				return fmt.Errorf("range[%d] %v: overlaps or precedes the previous range on %v", i, r, side)
			}
			if !r.IsEmpty(side) {
				empty = false
			}
		}
		if empty {
			return fmt.Errorf("range[%d] %v: empty on all sides", i, r)
		}
		if i > 0 && r.Start1 == prev.End1 && r.Start2 == prev.End2 && r.Start3 == prev.End3 {
			return fmt.Errorf("range[%d] %v: touches the previous range on all sides", i, r)
		}
		prev = r
	}
	return nil
}

func mustValidateRanges(op string, ranges []MergeRange, lengths [3]int) {
	if err := validateRanges(ranges, lengths); err != nil {
		panic(fmt.Errorf("%s: internal invariant violated: %w", op, err))
	}
}
