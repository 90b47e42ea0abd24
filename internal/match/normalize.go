package match

// BoundaryFunc scores the edge just before element i of one side (side is 1 or 2; i ranges over [0, len]). Higher scores are better places for a change to
// start or end. It only reads token metadata; it must not depend on the alignment.
type BoundaryFunc func(side, i int) int

// Candidate is one position a slidable change block can take. A block is slidable when it is a pure insertion or deletion surrounded by equal tokens: moving
// it by one step trades the last matched token before it for an equal token after it (or vice versa), keeping the alignment minimal.
type Candidate struct {
	Pos      int // start of the block in its own sequence
	Blocks   int // number of separate change blocks around the candidate: 1, or less if the block joins a neighbor
	Runs     int // number of non-empty matched runs adjacent to the block (0 to 2)
	Boundary int // sum of BoundaryFunc scores at both ends of the block
}

// Rule compares two candidate positions of the same block, returning a negative number if x is preferred, positive if y is preferred, and 0 if the rule has
// no preference.
type Rule func(x, y Candidate) int

// LongerRuns prefers positions that leave fewer, and therefore longer, matched runs: a block pushed against the end of the sequence or against another block
// no longer splits a run in two.
func LongerRuns(x, y Candidate) int {
	return x.Runs - y.Runs
}

// FewerBlocks prefers positions where the block joins an adjacent change block.
func FewerBlocks(x, y Candidate) int {
	return x.Blocks - y.Blocks
}

// BetterBoundaries prefers blocks whose edges score higher with the BoundaryFunc (ex: edges at whitespace or between words and punctuation).
func BetterBoundaries(x, y Candidate) int {
	return y.Boundary - x.Boundary
}

// Earliest prefers the leftmost position.
func Earliest(x, y Candidate) int {
	return x.Pos - y.Pos
}

// DefaultRules is the tie-break order used when nil rules are given to Normalize.
var DefaultRules = []Rule{LongerRuns, FewerBlocks, BetterBoundaries, Earliest}

// Compare applies rules in order and returns the first non-zero verdict.
func Compare(rules []Rule, x, y Candidate) int {
	for _, rule := range rules {
		if c := rule(x, y); c != 0 {
			return c
		}
	}
	return 0
}

// Normalize slides every pure insertion and deletion of al to its best position according to rules (DefaultRules if nil). a and b are the sequences al aligns;
// boundary may be nil. The number of matched pairs is unchanged.
func Normalize(al Alignment, a, b []int, rules []Rule, boundary BoundaryFunc) Alignment {
	if rules == nil {
		rules = DefaultRules
	}
	// Sentinel runs at both ends keep every gap between two runs.
	runs := make([]Range, 0, len(al.Unchanged)+2)
	runs = append(runs, Range{})
	runs = append(runs, al.Unchanged...)
	runs = append(runs, Range{Start1: al.Length1, End1: al.Length1, Start2: al.Length2, End2: al.Length2})

	for k := 1; k < len(runs); k++ {
		prev, next := runs[k-1], runs[k]
		del := next.Start1 > prev.End1 && next.Start2 == prev.End2
		ins := next.Start2 > prev.End2 && next.Start1 == prev.End1
		if !del && !ins {
			continue
		}

		seq, side := a, 1
		s, e := prev.End1, next.Start1
		prevLen, nextLen := prev.End1-prev.Start1, next.End1-next.Start1
		if ins {
			seq, side = b, 2
			s, e = prev.End2, next.Start2
		}

		up := 0
		for up < prevLen && seq[s-1-up] == seq[e-1-up] {
			up++
		}
		down := 0
		for down < nextLen && seq[s+down] == seq[e+down] {
			down++
		}
		if up == 0 && down == 0 {
			continue
		}

		// The block joins a neighbor only if a non-empty gap lies beyond the run it consumes.
		joinPrev := k >= 2 && (runs[k-2].End1 < prev.Start1 || runs[k-2].End2 < prev.Start2)
		joinNext := k+1 < len(runs) && (runs[k+1].Start1 > next.End1 || runs[k+1].Start2 > next.End2)
		candidate := func(shift int) Candidate {
			c := Candidate{Pos: s + shift, Blocks: 1}
			pl, nl := prevLen+shift, nextLen-shift
			if pl > 0 {
				c.Runs++
			} else if joinPrev {
				c.Blocks--
			}
			if nl > 0 {
				c.Runs++
			} else if joinNext {
				c.Blocks--
			}
			if boundary != nil {
				c.Boundary = boundary(side, s+shift) + boundary(side, e+shift)
			}
			return c
		}

		best := 0
		bestCandidate := candidate(0)
		for shift := -up; shift <= down; shift++ {
			if shift == 0 {
				continue
			}
			c := candidate(shift)
			if Compare(rules, c, bestCandidate) < 0 {
				best, bestCandidate = shift, c
			}
		}
		if best == 0 {
			continue
		}

		runs[k-1].End1 += best
		runs[k-1].End2 += best
		runs[k].Start1 += best
		runs[k].Start2 += best

		switch {
		case runs[k-1].End1 == runs[k-1].Start1 && k-1 > 0:
			// The block joined the previous gap; revisit the merged gap.
			runs = append(runs[:k-1], runs[k:]...)
			k -= 2
		case runs[k].End1 == runs[k].Start1 && k+1 < len(runs):
			runs = append(runs[:k], runs[k+1:]...)
			k--
		}
	}

	out := make([]Range, 0, len(runs))
	for _, r := range runs {
		if r.End1 > r.Start1 {
			out = AppendRun(out, r.Start1, r.Start2, r.End1-r.Start1)
		}
	}
	return Alignment{Length1: al.Length1, Length2: al.Length2, Unchanged: out}
}
