package merge

import "fmt"

// ThreeSide names one of the three texts of a merge.
type ThreeSide int

const (
	Left ThreeSide = iota
	Base
	Right
)

// ThreeSides lists the sides in the order ranges are stored.
var ThreeSides = []ThreeSide{Left, Base, Right}

func (s ThreeSide) String() string {
	switch s {
	case Left:
		return "left"
	case Base:
		return "base"
	case Right:
		return "right"
	}
	return fmt.Sprintf("ThreeSide(%d)", int(s))
}

// Select returns the value for side among left, base and right.
func Select[T any](side ThreeSide, left, base, right T) T {
	switch side {
	case Left:
		return left
	case Base:
		return base
	case Right:
		return right
	}
	panic(fmt.Sprintf("merge: invalid side %d", int(side)))
}
