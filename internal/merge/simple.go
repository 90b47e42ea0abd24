package merge

import (
	"context"
	"fmt"
	"math"

	"github.com/codalotl/textcompare/internal/comparison"
)

// pollInterval is the number of merge ranges built between two checks of the context.
const pollInterval = 1 << 10

// BuildSimpleMerge combines two diffs that both start from BASE into one list of MergeRange. In baseLeft and baseRight, side 1 of every fragment is BASE and
// side 2 is LEFT or RIGHT; fragments may be in any unit (lines, bytes) as long as both diffs use the same.
//
// Changes whose BASE ranges overlap or touch are combined into one range. A side with no change inside a range gets the BASE range shifted by the size
// difference accumulated by its earlier changes.
//
// The diffs must be ordered and non-overlapping; otherwise BuildSimpleMerge returns an error wrapping comparison.ErrInvalidInput.
func BuildSimpleMerge(ctx context.Context, baseLeft, baseRight []comparison.DiffFragment) ([]MergeRange, error) {
	if err := checkDiff(baseLeft); err != nil {
		return nil, fmt.Errorf("build simple merge: left: %w", err)
	}
	if err := checkDiff(baseRight); err != nil {
		return nil, fmt.Errorf("build simple merge: right: %w", err)
	}

	var result []MergeRange
	i, j := 0, 0
	deltaLeft, deltaRight := 0, 0 // offset difference between the side and BASE after the last range
	for n := 0; i < len(baseLeft) || j < len(baseRight); n++ {
		if n%pollInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("build simple merge: %w", err)
			}
		}

		left0, right0 := i, j
		var start, end int
		if j == len(baseRight) || (i < len(baseLeft) && baseLeft[i].Start1 <= baseRight[j].Start1) {
			start, end = baseLeft[i].Start1, baseLeft[i].End1
			i++
		} else {
			start, end = baseRight[j].Start1, baseRight[j].End1
			j++
		}
		for {
			if i < len(baseLeft) && baseLeft[i].Start1 <= end {
				end = max(end, baseLeft[i].End1)
				i++
				continue
			}
			if j < len(baseRight) && baseRight[j].Start1 <= end {
				end = max(end, baseRight[j].End1)
				j++
				continue
			}
			break
		}

		leftStart, leftEnd := sideRange(baseLeft[left0:i], start, end, deltaLeft)
		rightStart, rightEnd := sideRange(baseRight[right0:j], start, end, deltaRight)
		deltaLeft, deltaRight = leftEnd-end, rightEnd-end
		result = append(result, MergeRange{
			Start1: leftStart, End1: leftEnd,
			Start2: start, End2: end,
			Start3: rightStart, End3: rightEnd,
		})
	}

	mustValidateRanges("BuildSimpleMerge", result, [3]int{math.MaxInt, math.MaxInt, math.MaxInt})
	return result, nil
}

// sideRange maps the BASE range [start, end) to one side, given that side's changes inside the range and its offset difference before the range.
func sideRange(changes []comparison.DiffFragment, start, end, delta int) (int, int) {
	if len(changes) == 0 {
		return start + delta, end + delta
	}
	first, last := changes[0], changes[len(changes)-1]
	return first.Start2 - (first.Start1 - start), last.End2 + (end - last.End1)
}

func checkDiff(fragments []comparison.DiffFragment) error {
	p1, p2 := 0, 0
	for i, f := range fragments {
		if f.Start1 < p1 || f.Start2 < p2 || f.Start1 > f.End1 || f.Start2 > f.End2 || (f.IsEmpty1() && f.IsEmpty2()) {
			return fmt.Errorf("%w: fragment[%d] %v is malformed or out of order", comparison.ErrInvalidInput, i, f)
		}
		p1, p2 = f.End1, f.End2
	}
	return nil
}
