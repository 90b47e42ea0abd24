// Package render formats comparison results for terminals: unified diffs, pretty diffs with word-level highlighting, side-by-side views and inline
// char or word diffs.
//
// Renderers take the compared texts and the fragments computed for them; they never compare anything themselves. Line-oriented output uses "\n" as the line
// separator and has no trailing newline.
package render

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/codalotl/textcompare/internal/comparison"
)

// Options control rendering.
type Options struct {
	OldName string // name of the first text, shown in headers
	NewName string // name of the second text, shown in headers
	Context int    // unchanged lines shown around each group of changes
	Color   bool   // emit ANSI colors
	Width   int    // total width of a side-by-side view; DefaultWidth if <= 0
}

// DefaultWidth is the side-by-side width used when Options.Width is not set.
const DefaultWidth = 120

type palette struct {
	header  *color.Color
	hunk    *color.Color
	del     *color.Color
	add     *color.Color
	delLine *color.Color
	delSpan *color.Color
	addLine *color.Color
	addSpan *color.Color
}

func newPalette(enabled bool) *palette {
	p := &palette{
		header:  color.New(color.FgCyan, color.Bold),
		hunk:    color.New(color.FgMagenta),
		del:     color.New(color.FgRed),
		add:     color.New(color.FgGreen),
		delLine: color.New(color.FgBlack, 48, 5, 224), // light pink
		delSpan: color.New(color.FgBlack, 48, 5, 217), // darker pink
		addLine: color.New(color.FgBlack, 48, 5, 194), // light green
		addSpan: color.New(color.FgBlack, 48, 5, 114), // darker green
	}
	for _, c := range []*color.Color{p.header, p.hunk, p.del, p.add, p.delLine, p.delSpan, p.addLine, p.addSpan} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Unified returns a unified diff of text1 and text2 given their line fragments (as from comparison.CompareLines). Hunks are grouped with opts.Context lines of
// context and carry "@@ -a,b +c,d @@" headers. Returns "" if there are no fragments.
func Unified(text1, text2 string, fragments []comparison.LineFragment, opts Options) string {
	if len(fragments) == 0 {
		return ""
	}
	p := newPalette(opts.Color)
	d := newDocument(text1, text2)

	out := []string{
		p.header.Sprint("--- " + opts.OldName),
		p.header.Sprint("+++ " + opts.NewName),
	}
	for _, h := range d.hunks(fragments, opts.Context) {
		out = append(out, p.hunk.Sprint(h.header()))
		h.walk(d, func(line1, line2 int) {
			out = append(out, " "+d.contextLine(line1, line2))
		}, func(f comparison.LineFragment) {
			for _, line := range d.lines[0][f.StartLine1:f.EndLine1] {
				out = append(out, p.del.Sprint("-"+line))
			}
			for _, line := range d.lines[1][f.StartLine2:f.EndLine2] {
				out = append(out, p.add.Sprint("+"+line))
			}
		})
	}
	return strings.Join(out, "\n")
}

// Pretty returns a human-oriented rendering without hunk headers: lines are prefixed " ", "-" or "+" as in a unified diff, and the Inner fragments of each
// line fragment are highlighted inside changed lines.
//
// If opts.OldName and opts.NewName are both empty, no header is printed. Otherwise a single header line is emitted in one of these forms:
//   - "add <new>:" when only NewName is set
//   - "delete <old>:" when only OldName is set
//   - "<name>:" when both are equal
//   - "<old> -> <new>:" otherwise
func Pretty(text1, text2 string, fragments []comparison.LineFragment, opts Options) string {
	p := newPalette(opts.Color)
	d := newDocument(text1, text2)

	var out []string
	if header := Header(opts); header != "" {
		out = append(out, header)
	}
	for _, h := range d.hunks(fragments, opts.Context) {
		h.walk(d, func(line1, line2 int) {
			out = append(out, " "+d.contextLine(line1, line2))
		}, func(f comparison.LineFragment) {
			for line := f.StartLine1; line < f.EndLine1; line++ {
				out = append(out, d.prettyLine(0, line, f, "-", p.delLine, p.delSpan))
			}
			for line := f.StartLine2; line < f.EndLine2; line++ {
				out = append(out, d.prettyLine(1, line, f, "+", p.addLine, p.addSpan))
			}
		})
	}
	return strings.Join(out, "\n")
}

// prettyLine renders one changed line of side with its changed segments in spanColor.
func (d *document) prettyLine(side, line int, f comparison.LineFragment, tag string, lineColor, spanColor *color.Color) string {
	var b strings.Builder
	b.WriteString(lineColor.Sprint(tag))
	for _, seg := range d.segments(side, line, changedRanges(f, side)) {
		c := lineColor
		if seg.changed {
			c = spanColor
		}
		b.WriteString(c.Sprint(seg.text))
	}
	return b.String()
}

// Header returns the file header line used by Pretty, or "" if opts names no text.
func Header(opts Options) string {
	var header string
	switch {
	case opts.OldName == "" && opts.NewName == "":
		return ""
	case opts.OldName == "":
		header = fmt.Sprintf("add %s:", opts.NewName)
	case opts.NewName == "":
		header = fmt.Sprintf("delete %s:", opts.OldName)
	case opts.OldName == opts.NewName:
		header = fmt.Sprintf("%s:", opts.OldName)
	default:
		header = fmt.Sprintf("%s -> %s:", opts.OldName, opts.NewName)
	}
	return newPalette(opts.Color).header.Sprint(header)
}
