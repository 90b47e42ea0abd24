package merge

import "fmt"

// MergeRange is a changed region of a three-way comparison: [Start1, End1) of LEFT, [Start2, End2) of BASE and [Start3, End3) of RIGHT correspond to each
// other. The unit (lines, bytes, or any token index) is the one of the diffs it was built from.
type MergeRange struct {
	Start1 int
	End1   int
	Start2 int
	End2   int
	Start3 int
	End3   int
}

// Start returns the start of the range on side.
func (r MergeRange) Start(side ThreeSide) int {
	return Select(side, r.Start1, r.Start2, r.Start3)
}

// End returns the end of the range on side.
func (r MergeRange) End(side ThreeSide) int {
	return Select(side, r.End1, r.End2, r.End3)
}

// IsEmpty reports whether the range has nothing on side.
func (r MergeRange) IsEmpty(side ThreeSide) bool {
	return r.Start(side) == r.End(side)
}

func (r MergeRange) String() string {
	return fmt.Sprintf("(%d, %d) - (%d, %d) - (%d, %d)", r.Start1, r.End1, r.Start2, r.End2, r.Start3, r.End3)
}

// MergeLineFragment is a MergeRange in 0-based line numbers.
type MergeLineFragment struct {
	MergeRange
}

// MergeWordFragment is a MergeRange in byte offsets.
type MergeWordFragment struct {
	MergeRange
}
