package render

import (
	"strings"

	"github.com/codalotl/textcompare/internal/comparison"
)

// Inline returns text1 with the fragments of a char or word comparison (comparison.CompareChars, comparison.CompareWords) marked in place: removed text as
// "[-text-]" and added text as "{+text+}". With opts.Color, removed and added text is highlighted instead of bracketed.
func Inline(text1, text2 string, fragments []comparison.DiffFragment, opts Options) string {
	p := newPalette(opts.Color)
	var b strings.Builder
	pos := 0
	for _, f := range fragments {
		b.WriteString(text1[pos:f.Start1])
		if !f.IsEmpty1() {
			if opts.Color {
				b.WriteString(p.delSpan.Sprint(text1[f.Start1:f.End1]))
			} else {
				b.WriteString("[-" + text1[f.Start1:f.End1] + "-]")
			}
		}
		if !f.IsEmpty2() {
			if opts.Color {
				b.WriteString(p.addSpan.Sprint(text2[f.Start2:f.End2]))
			} else {
				b.WriteString("{+" + text2[f.Start2:f.End2] + "+}")
			}
		}
		pos = f.End1
	}
	b.WriteString(text1[pos:])
	return b.String()
}
