package render

import (
	"strings"

	"github.com/fatih/color"

	"github.com/codalotl/textcompare/internal/comparison"
	"github.com/codalotl/textcompare/internal/q/uni"
)

const tabWidth = 4

// SideBySide returns the hunks of a line diff as two columns, the first text on the left. The gutter between columns holds ' ' for unchanged rows, '|' for
// changed rows, '<' for lines only on the left and '>' for lines only on the right. Lines wider than their column are truncated at a grapheme boundary.
func SideBySide(text1, text2 string, fragments []comparison.LineFragment, opts Options) string {
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	col := max((width-3)/2, 1)
	p := newPalette(opts.Color)
	d := newDocument(text1, text2)

	cell := func(s string) string {
		return uni.Pad(uni.Truncate(uni.ExpandTabs(s, tabWidth, nil), col, "…", nil), col, nil)
	}
	row := func(left string, leftColor *color.Color, mark byte, right string, rightColor *color.Color) string {
		line := leftColor.Sprint(cell(left)) + " " + string(mark) + " " + rightColor.Sprint(strings.TrimRight(cell(right), " "))
		return strings.TrimRight(line, " ")
	}
	plain := color.New()
	plain.DisableColor()

	var out []string
	if opts.OldName != "" || opts.NewName != "" {
		out = append(out, p.header.Sprint(strings.TrimRight(cell(opts.OldName)+"   "+cell(opts.NewName), " ")))
	}
	for _, h := range d.hunks(fragments, opts.Context) {
		out = append(out, p.hunk.Sprint(h.header()))
		h.walk(d, func(line1, line2 int) {
			left, right := "", ""
			if line1 >= 0 {
				left = d.lines[0][line1]
			}
			if line2 >= 0 {
				right = d.lines[1][line2]
			}
			out = append(out, row(left, plain, ' ', right, plain))
		}, func(f comparison.LineFragment) {
			n1, n2 := f.EndLine1-f.StartLine1, f.EndLine2-f.StartLine2
			for k := 0; k < max(n1, n2); k++ {
				switch {
				case k < n1 && k < n2:
					out = append(out, row(d.lines[0][f.StartLine1+k], p.del, '|', d.lines[1][f.StartLine2+k], p.add))
				case k < n1:
					out = append(out, row(d.lines[0][f.StartLine1+k], p.del, '<', "", plain))
				default:
					out = append(out, row("", plain, '>', d.lines[1][f.StartLine2+k], p.add))
				}
			}
		})
	}
	return strings.Join(out, "\n")
}
