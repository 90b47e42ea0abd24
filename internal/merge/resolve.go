package merge

import (
	"strings"

	"github.com/codalotl/textcompare/internal/comparison"
)

// Conflict marker lines written by ResolveLines and ResolveWords.
const (
	MarkerLeft      = "<<<<<<< left"
	MarkerBase      = "||||||| base"
	MarkerSeparator = "======="
	MarkerRight     = ">>>>>>> right"
)

// Resolution is the result of applying a merge.
type Resolution struct {
	Text      string // merged text, with conflict markers around unresolved ranges
	Conflicts int    // number of ranges left unresolved
}

// ResolveLines applies the fragments returned by MergeLines for the same texts. Text outside the fragments is taken from left. A fragment changed on one side
// only takes that side's lines; a conflict is written as LEFT, BASE and RIGHT lines between conflict markers.
func ResolveLines(fragments []MergeLineFragment, left, base, right string, policy comparison.Policy) Resolution {
	lines := splitSides(left, base, right)
	var out []string
	var res Resolution
	p := 0 // next unwritten LEFT line
	for _, f := range fragments {
		out = append(out, lines[Left][p:f.Start1]...)
		p = f.End1

		l := lines[Left][f.Start1:f.End1]
		b := lines[Base][f.Start2:f.End2]
		r := lines[Right][f.Start3:f.End3]
		t := classifyLineRange(f.MergeRange, lines, policy)
		switch {
		case t.Kind == Conflict:
			res.Conflicts++
			out = append(out, MarkerLeft)
			out = append(out, l...)
			out = append(out, MarkerBase)
			out = append(out, b...)
			out = append(out, MarkerSeparator)
			out = append(out, r...)
			out = append(out, MarkerRight)
		case t.LeftChanged() || !t.RightChanged():
			out = append(out, l...)
		default:
			out = append(out, r...)
		}
	}
	out = append(out, lines[Left][p:]...)
	res.Text = strings.Join(out, "\n")
	return res
}

// ResolveWords applies the fragments returned by CompareWordsThreeWay for the same texts, like ResolveLines. Conflicts are not widened to whole lines:
// MarkerLeft is written right where the conflicting text starts, so text preceding it on the same line ends up before the marker, and each marker and
// conflicting text is followed by a newline.
func ResolveWords(fragments []MergeWordFragment, left, base, right string, policy comparison.Policy) Resolution {
	texts := [3]string{left, base, right}
	var b strings.Builder
	var res Resolution
	p := 0
	for _, f := range fragments {
		b.WriteString(left[p:f.Start1])
		p = f.End1

		t := classifyTextRange(f.MergeRange, texts, policy)
		switch {
		case t.Kind == Conflict:
			res.Conflicts++
			for _, part := range []string{
				MarkerLeft, "\n", left[f.Start1:f.End1], "\n",
				MarkerBase, "\n", base[f.Start2:f.End2], "\n",
				MarkerSeparator, "\n", right[f.Start3:f.End3], "\n",
				MarkerRight, "\n",
			} {
				b.WriteString(part)
			}
		case t.LeftChanged() || !t.RightChanged():
			b.WriteString(left[f.Start1:f.End1])
		default:
			b.WriteString(right[f.Start3:f.End3])
		}
	}
	b.WriteString(left[p:])
	res.Text = b.String()
	return res
}
