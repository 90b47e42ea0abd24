package match

import (
	"context"
	"math"
)

// pollInterval is the number of inner-loop steps between two checks of the context.
const pollInterval = 1 << 12

// minCostLimit is the smallest number of edit steps a bisection explores before it settles for an approximate split.
const minCostLimit = 256

// Diff computes an alignment of a and b. It is minimal (the matched runs form a longest common subsequence) unless the sequences are too different: once a
// bisection has explored max(minCostLimit, sqrt(len(a)+len(b))) edit steps in each direction, it splits at the furthest point reached instead, which bounds
// the running time to about O(N^1.5). Sequences without a common element are answered without searching. The returned alignment is not normalized; see
// Normalize.
//
// ctx is polled periodically; if it is done, Diff returns ctx.Err() and no alignment.
func Diff(ctx context.Context, a, b []int) (Alignment, error) {
	if err := ctx.Err(); err != nil {
		return Alignment{}, err
	}
	if disjoint(a, b) {
		return Alignment{Length1: len(a), Length2: len(b)}, nil
	}
	d := &differ{ctx: ctx, a: a, b: b, costLimit: costLimit(len(a) + len(b))}
	if err := d.compare(0, len(a), 0, len(b)); err != nil {
		return Alignment{}, err
	}
	return Alignment{Length1: len(a), Length2: len(b), Unchanged: d.runs}, nil
}

type differ struct {
	ctx       context.Context
	a         []int
	b         []int
	costLimit int // 0 means unlimited
	ticks     int
	runs      []Range
}

func costLimit(n int) int {
	return max(minCostLimit, int(math.Sqrt(float64(n))))
}

// disjoint reports whether a and b have no element in common.
func disjoint(a, b []int) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	seen := make(map[int]struct{}, len(a))
	for _, x := range a {
		seen[x] = struct{}{}
	}
	for _, y := range b {
		if _, ok := seen[y]; ok {
			return false
		}
	}
	return true
}

func (d *differ) tick(n int) error {
	d.ticks += n
	if d.ticks < pollInterval {
		return nil
	}
	d.ticks = 0
	return d.ctx.Err()
}

// compare aligns a[aLo:aHi] with b[bLo:bHi], appending matched runs in order.
func (d *differ) compare(aLo, aHi, bLo, bHi int) error {
	prefix := 0
	for aLo+prefix < aHi && bLo+prefix < bHi && d.a[aLo+prefix] == d.b[bLo+prefix] {
		prefix++
	}
	d.runs = AppendRun(d.runs, aLo, bLo, prefix)
	aLo += prefix
	bLo += prefix

	suffix := 0
	for aLo < aHi-suffix && bLo < bHi-suffix && d.a[aHi-1-suffix] == d.b[bHi-1-suffix] {
		suffix++
	}
	aHi -= suffix
	bHi -= suffix

	switch {
	case aLo == aHi || bLo == bHi:
	case aHi-aLo == 1:
		for j := bLo; j < bHi; j++ {
			if d.b[j] == d.a[aLo] {
				d.runs = AppendRun(d.runs, aLo, j, 1)
				break
			}
		}
	case bHi-bLo == 1:
		for i := aLo; i < aHi; i++ {
			if d.a[i] == d.b[bLo] {
				d.runs = AppendRun(d.runs, i, bLo, 1)
				break
			}
		}
	default:
		x, y, ok, err := d.bisect(aLo, aHi, bLo, bHi)
		if err != nil {
			return err
		}
		if ok {
			if err := d.compare(aLo, x, bLo, y); err != nil {
				return err
			}
			if err := d.compare(x, aHi, y, bHi); err != nil {
				return err
			}
		}
	}

	d.runs = AppendRun(d.runs, aHi, bHi, suffix)
	return nil
}

// bisect finds the middle snake of a[aLo:aHi] and b[bLo:bHi] and returns the absolute split point (x, y) on an optimal path. ok is false if the ranges share
// no element. Both ranges must be non-empty and must differ in their first and last elements.
//
// Past d.costLimit steps, bisect gives up on optimality and returns the point furthest from its corner reached by either path (see furthest).
func (d *differ) bisect(aLo, aHi, bLo, bHi int) (x, y int, ok bool, err error) {
	n := aHi - aLo
	m := bHi - bLo
	maxD := (n + m + 1) / 2
	vOffset := maxD
	vLength := 2 * maxD
	v1 := make([]int, vLength)
	v2 := make([]int, vLength)
	for i := range v1 {
		v1[i] = -1
		v2[i] = -1
	}
	v1[vOffset+1] = 0
	v2[vOffset+1] = 0

	delta := n - m
	// If the total number of elements is odd, the front path will collide with the reverse path.
	front := delta%2 != 0
	// Offsets for start and end of k loop; prevent mapping of space beyond the grid.
	k1start, k1end, k2start, k2end := 0, 0, 0, 0

	for dd := 0; dd < maxD; dd++ {
		if err := d.tick(2*dd + 1); err != nil {
			return 0, 0, false, err
		}

		// Walk the front path one step.
		for k1 := -dd + k1start; k1 <= dd-k1end; k1 += 2 {
			k1Offset := vOffset + k1
			var x1 int
			if k1 == -dd || (k1 != dd && v1[k1Offset-1] < v1[k1Offset+1]) {
				x1 = v1[k1Offset+1]
			} else {
				x1 = v1[k1Offset-1] + 1
			}
			y1 := x1 - k1
			for x1 < n && y1 < m && d.a[aLo+x1] == d.b[bLo+y1] {
				x1++
				y1++
			}
			v1[k1Offset] = x1
			switch {
			case x1 > n:
				// Ran off the right of the graph.
				k1end += 2
			case y1 > m:
				// Ran off the bottom of the graph.
				k1start += 2
			case front:
				k2Offset := vOffset + delta - k1
				if k2Offset >= 0 && k2Offset < vLength && v2[k2Offset] != -1 {
					// Mirror x2 onto top-left coordinate system.
					x2 := n - v2[k2Offset]
					if x1 >= x2 {
						return aLo + x1, bLo + y1, true, nil
					}
				}
			}
		}

		// Walk the reverse path one step.
		for k2 := -dd + k2start; k2 <= dd-k2end; k2 += 2 {
			k2Offset := vOffset + k2
			var x2 int
			if k2 == -dd || (k2 != dd && v2[k2Offset-1] < v2[k2Offset+1]) {
				x2 = v2[k2Offset+1]
			} else {
				x2 = v2[k2Offset-1] + 1
			}
			y2 := x2 - k2
			for x2 < n && y2 < m && d.a[aHi-1-x2] == d.b[bHi-1-y2] {
				x2++
				y2++
			}
			v2[k2Offset] = x2
			switch {
			case x2 > n:
				k2end += 2
			case y2 > m:
				k2start += 2
			case !front:
				k1Offset := vOffset + delta - k2
				if k1Offset >= 0 && k1Offset < vLength && v1[k1Offset] != -1 {
					x1 := v1[k1Offset]
					y1 := vOffset + x1 - k1Offset
					// Mirror x2 onto top-left coordinate system.
					x2 = n - x2
					if x1 >= x2 {
						return aLo + x1, bLo + y1, true, nil
					}
				}
			}
		}

		if d.costLimit > 0 && dd >= d.costLimit {
			fx, fy := furthest(v1, vOffset, -dd+k1start, dd-k1end, n, m, false)
			rx, ry := furthest(v2, vOffset, -dd+k2start, dd-k2end, n, m, true)
			x, y := fx, fy
			if rx >= 0 && (fx < 0 || (n-rx)+(m-ry) > fx+fy) {
				x, y = rx, ry
			}
			if x < 0 || (x == 0 && y == 0) || (x == n && y == m) {
				return 0, 0, false, nil
			}
			return aLo + x, bLo + y, true, nil
		}
	}
	return 0, 0, false, nil
}

// furthest returns the point of diagonals [kLo, kHi] of v that lies furthest along its path, in top-left coordinates relative to the subproblem. reverse
// selects the reverse path, whose v values count from the bottom-right corner. It returns (-1, -1) if no diagonal holds a point inside the n by m grid.
func furthest(v []int, vOffset, kLo, kHi, n, m int, reverse bool) (int, int) {
	bx, by, best := -1, -1, -1
	for k := kLo; k <= kHi; k += 2 {
		x := v[vOffset+k]
		y := x - k
		if x < 0 || y < 0 || x > n || y > m || x+y <= best {
			continue
		}
		best = x + y
		if reverse {
			bx, by = n-x, m-y
		} else {
			bx, by = x, y
		}
	}
	return bx, by
}
