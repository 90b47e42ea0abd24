// Package match computes order-preserving alignments between two sequences of interned tokens.
//
// Diff finds a minimal alignment with Myers' bisection algorithm (linear space, O((N+M)D) time) after stripping common prefixes and suffixes. Very different
// inputs hit a cost limit and get an approximate alignment instead. Among the many
// minimal alignments that usually exist, Normalize picks one deterministically by sliding pure insertions and deletions along runs of equal tokens and ranking
// the reachable positions with an ordered list of Rules.
//
// Sequences are []int: callers intern their tokens (see Interner) so that equal tokens have equal ids. Which tokens are "equal" is therefore decided entirely
// by the caller, which is how comparison policies are applied.
package match

import (
	"context"
	"fmt"
)

// Range is a pair of half-open index ranges, [Start1, End1) in the first sequence and [Start2, End2) in the second.
type Range struct {
	Start1 int
	End1   int
	Start2 int
	End2   int
}

// IsEmpty reports whether both sides are empty.
func (r Range) IsEmpty() bool {
	return r.Start1 == r.End1 && r.Start2 == r.End2
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d) - [%d, %d)", r.Start1, r.End1, r.Start2, r.End2)
}

// Alignment describes how a sequence of Length1 elements aligns with one of Length2 elements. Unchanged holds the matched runs in order; each run has equal
// length on both sides, and runs are neither overlapping nor adjacent on both sides at once. Everything outside the runs is changed.
type Alignment struct {
	Length1   int
	Length2   int
	Unchanged []Range
}

// Changes returns the changed ranges: the gaps between unchanged runs, in order, skipping empty gaps.
func (al Alignment) Changes() []Range {
	var out []Range
	p1, p2 := 0, 0
	for _, r := range al.Unchanged {
		if r.Start1 > p1 || r.Start2 > p2 {
			out = append(out, Range{Start1: p1, End1: r.Start1, Start2: p2, End2: r.Start2})
		}
		p1, p2 = r.End1, r.End2
	}
	if al.Length1 > p1 || al.Length2 > p2 {
		out = append(out, Range{Start1: p1, End1: al.Length1, Start2: p2, End2: al.Length2})
	}
	return out
}

// MatchedCount is the number of matched element pairs.
func (al Alignment) MatchedCount() int {
	n := 0
	for _, r := range al.Unchanged {
		n += r.End1 - r.Start1
	}
	return n
}

// Validate checks the structural invariants of al.
func (al Alignment) Validate() error {
	p1, p2 := 0, 0
	for i, r := range al.Unchanged {
		if r.End1-r.Start1 != r.End2-r.Start2 {
			return fmt.Errorf("unchanged[%d] %v: sides differ in length", i, r)
		}
		if r.End1 <= r.Start1 {
			return fmt.Errorf("unchanged[%d] %v: empty run", i, r)
		}
		if r.Start1 < p1 || r.Start2 < p2 {
			return fmt.Errorf("unchanged[%d] %v: overlaps or is out of order", i, r)
		}
		if i > 0 && r.Start1 == p1 && r.Start2 == p2 {
			return fmt.Errorf("unchanged[%d] %v: adjacent to the previous run", i, r)
		}
		p1, p2 = r.End1, r.End2
	}
	if p1 > al.Length1 || p2 > al.Length2 {
		return fmt.Errorf("unchanged runs exceed lengths %d, %d", al.Length1, al.Length2)
	}
	return nil
}

// AppendRun appends an unchanged run of length n starting at (s1, s2), joining it with the last run when contiguous on both sides.
func AppendRun(runs []Range, s1, s2, n int) []Range {
	if n <= 0 {
		return runs
	}
	if k := len(runs) - 1; k >= 0 && runs[k].End1 == s1 && runs[k].End2 == s2 {
		runs[k].End1 += n
		runs[k].End2 += n
		return runs
	}
	return append(runs, Range{Start1: s1, End1: s1 + n, Start2: s2, End2: s2 + n})
}

// Interner assigns dense ids to strings. The zero value is ready to use.
type Interner struct {
	ids map[string]int
}

// ID returns the id of s, assigning the next free id on first sight.
func (in *Interner) ID(s string) int {
	if in.ids == nil {
		in.ids = make(map[string]int)
	}
	id, ok := in.ids[s]
	if !ok {
		id = len(in.ids)
		in.ids[s] = id
	}
	return id
}

// Refine runs Diff inside every changed range of outer and merges the results into one alignment of the full sequences. sub1 and sub2 select, for each side,
// which elements of a changed range take part in the nested comparison: only elements for which they return true are compared, and the nested matches are
// mapped back to full-sequence indices. a and b are the full sequences.
//
// Refine implements staged matching: a first pass over a subset of tokens (ex: words), then a second pass over the leftovers (ex: punctuation).
func Refine(ctx context.Context, outer Alignment, a, b []int, sub1, sub2 func(i int) bool, rules []Rule, boundary BoundaryFunc) (Alignment, error) {
	if err := ctx.Err(); err != nil {
		return Alignment{}, err
	}
	var runs []Range
	p1, p2 := 0, 0
	refineGap := func(gap Range) error {
		var idx1, idx2 []int
		for i := gap.Start1; i < gap.End1; i++ {
			if sub1(i) {
				idx1 = append(idx1, i)
			}
		}
		for i := gap.Start2; i < gap.End2; i++ {
			if sub2(i) {
				idx2 = append(idx2, i)
			}
		}
		if len(idx1) == 0 || len(idx2) == 0 {
			return nil
		}
		seq1 := make([]int, len(idx1))
		for i, x := range idx1 {
			seq1[i] = a[x]
		}
		seq2 := make([]int, len(idx2))
		for i, x := range idx2 {
			seq2[i] = b[x]
		}
		var inner BoundaryFunc
		if boundary != nil {
			inner = func(side, i int) int {
				idx := idx1
				if side == 2 {
					idx = idx2
				}
				if i == len(idx) {
					return boundary(side, idx[i-1]+1)
				}
				return boundary(side, idx[i])
			}
		}
		al, err := Diff(ctx, seq1, seq2)
		if err != nil {
			return err
		}
		al = Normalize(al, seq1, seq2, rules, inner)
		for _, r := range al.Unchanged {
			// Nested runs are contiguous in the subsequence but not necessarily in the full sequence.
			for k := 0; k < r.End1-r.Start1; k++ {
				runs = AppendRun(runs, idx1[r.Start1+k], idx2[r.Start2+k], 1)
			}
		}
		return nil
	}
	for _, r := range outer.Unchanged {
		if err := refineGap(Range{Start1: p1, End1: r.Start1, Start2: p2, End2: r.Start2}); err != nil {
			return Alignment{}, err
		}
		runs = AppendRun(runs, r.Start1, r.Start2, r.End1-r.Start1)
		p1, p2 = r.End1, r.End2
	}
	if err := refineGap(Range{Start1: p1, End1: outer.Length1, Start2: p2, End2: outer.Length2}); err != nil {
		return Alignment{}, err
	}
	return Alignment{Length1: outer.Length1, Length2: outer.Length2, Unchanged: runs}, nil
}
