package render

import (
	"fmt"
	"strings"

	"github.com/codalotl/textcompare/internal/comparison"
	"github.com/codalotl/textcompare/internal/lineindex"
)

// document holds the two compared texts split into lines. Index 0 is the first text, 1 the second.
type document struct {
	text  [2]string
	lines [2][]string
	index [2]lineindex.Offsets

	// visible is the number of lines usable as context: the empty line after a final '\n' is left out.
	visible [2]int
}

func newDocument(text1, text2 string) *document {
	d := &document{text: [2]string{text1, text2}}
	for side, text := range d.text {
		d.lines[side] = strings.Split(text, "\n")
		d.index[side] = comparison.LineOffsetsFor(text)
		d.visible[side] = len(d.lines[side])
		if strings.HasSuffix(text, "\n") {
			d.visible[side]--
		}
	}
	return d
}

// contextLine returns the unchanged line shown for a context row. line1 or line2 is -1 when that side has no line in the row.
func (d *document) contextLine(line1, line2 int) string {
	if line1 >= 0 {
		return d.lines[0][line1]
	}
	return d.lines[1][line2]
}

type segment struct {
	text    string
	changed bool
}

// segments splits the content of line of side into runs inside and outside changed (absolute, sorted byte ranges).
func (d *document) segments(side, line int, changed [][2]int) []segment {
	text := d.text[side]
	ls, le := d.index[side].LineStart(line), d.index[side].LineEnd(line, false)
	var result []segment
	p := ls
	for _, r := range changed {
		a, b := max(r[0], p), min(r[1], le)
		if a >= b {
			continue
		}
		if p < a {
			result = append(result, segment{text: text[p:a]})
		}
		result = append(result, segment{text: text[a:b], changed: true})
		p = b
	}
	if p < le {
		result = append(result, segment{text: text[p:le]})
	}
	return result
}

// changedRanges returns the absolute byte ranges of side (0 or 1) changed by f. A fragment without Inner is changed as a whole.
func changedRanges(f comparison.LineFragment, side int) [][2]int {
	start, end := f.Start1, f.End1
	if side == 1 {
		start, end = f.Start2, f.End2
	}
	if f.Inner == nil {
		return [][2]int{{start, end}}
	}
	result := make([][2]int, 0, len(f.Inner))
	for _, in := range f.Inner {
		if side == 0 {
			result = append(result, [2]int{start + in.Start1, start + in.End1})
		} else {
			result = append(result, [2]int{start + in.Start2, start + in.End2})
		}
	}
	return result
}

// hunk is a group of nearby line fragments with the surrounding context: lines [start1, end1) of the first text and [start2, end2) of the second.
type hunk struct {
	start1, end1 int
	start2, end2 int
	fragments    []comparison.LineFragment
}

// hunks groups fragments separated by at most 2*context unchanged lines and extends each group by up to context lines on both ends.
func (d *document) hunks(fragments []comparison.LineFragment, context int) []hunk {
	context = max(context, 0)
	var result []hunk
	for _, f := range fragments {
		if n := len(result); n > 0 {
			last := result[n-1].fragments[len(result[n-1].fragments)-1]
			if f.StartLine1-last.EndLine1 <= 2*context && f.StartLine2-last.EndLine2 <= 2*context {
				result[n-1].fragments = append(result[n-1].fragments, f)
				continue
			}
		}
		result = append(result, hunk{fragments: []comparison.LineFragment{f}})
	}

	for i := range result {
		h := &result[i]
		first, last := h.fragments[0], h.fragments[len(h.fragments)-1]
		pre := min(context, first.StartLine1, first.StartLine2)
		post := max(0, min(context, d.visible[0]-last.EndLine1, d.visible[1]-last.EndLine2))
		h.start1, h.start2 = first.StartLine1-pre, first.StartLine2-pre
		h.end1, h.end2 = last.EndLine1+post, last.EndLine2+post
	}
	return result
}

// header returns the unified diff header of h, with 1-based line numbers.
func (h hunk) header() string {
	return fmt.Sprintf("@@ -%s +%s @@", rangeSpec(h.start1, h.end1), rangeSpec(h.start2, h.end2))
}

func rangeSpec(start, end int) string {
	if start == end {
		return fmt.Sprintf("%d,0", start)
	}
	return fmt.Sprintf("%d,%d", start+1, end-start)
}

// walk visits h in order: context is called for every unchanged row and change for every fragment. Unchanged gaps normally have the same length on both
// sides; when they do not (blank lines ignored by the policy), the shorter side passes -1 for the missing rows.
func (h hunk) walk(d *document, context func(line1, line2 int), change func(f comparison.LineFragment)) {
	gap := func(p1, e1, p2, e2 int) {
		for k := 0; k < max(e1-p1, e2-p2); k++ {
			line1, line2 := -1, -1
			if p1+k < e1 {
				line1 = p1 + k
			}
			if p2+k < e2 {
				line2 = p2 + k
			}
			context(line1, line2)
		}
	}
	p1, p2 := h.start1, h.start2
	for _, f := range h.fragments {
		gap(p1, f.StartLine1, p2, f.StartLine2)
		change(f)
		p1, p2 = f.EndLine1, f.EndLine2
	}
	gap(p1, h.end1, p2, h.end2)
}
