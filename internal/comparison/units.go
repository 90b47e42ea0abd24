package comparison

import (
	"unicode/utf8"

	"github.com/codalotl/textcompare/internal/chars"
	"github.com/codalotl/textcompare/internal/match"
	"github.com/codalotl/textcompare/internal/tokens"
)

// units is a text split into runes. All alignments in this package are computed over rune indexes and converted to byte offsets at the end.
type units struct {
	text      string
	offsets   []int // offsets[i] is the byte offset of rune i; offsets[n] == len(text)
	ids       []int
	kinds     []tokens.Kind
	ignorable []bool // runes the policy ignores
}

func newUnits(text string, policy Policy) *units {
	toks := tokens.Chars(text)
	u := &units{
		text:      text,
		offsets:   make([]int, len(toks)+1),
		ids:       make([]int, len(toks)),
		kinds:     make([]tokens.Kind, len(toks)),
		ignorable: make([]bool, len(toks)),
	}
	for i, tok := range toks {
		u.offsets[i] = tok.Start
		r, size := utf8.DecodeRuneInString(text[tok.Start:])
		if r == utf8.RuneError && size == 1 {
			u.ids[i] = -1 - int(text[tok.Start]) // keep distinct invalid bytes distinct
		} else {
			u.ids[i] = int(r)
		}
		u.kinds[i] = tok.Kind
	}
	u.offsets[len(toks)] = len(text)

	switch policy {
	case PolicyIgnoreWhitespaces:
		for i, k := range u.kinds {
			u.ignorable[i] = k == tokens.KindWhitespace
		}
	case PolicyTrimWhitespaces:
		u.markLineEdges()
	}
	return u
}

func (u *units) len() int {
	return len(u.ids)
}

// rune returns rune i, or utf8.RuneError for an invalid byte.
func (u *units) rune(i int) rune {
	if u.ids[i] < 0 {
		return utf8.RuneError
	}
	return rune(u.ids[i])
}

func (u *units) isSpace(i int) bool {
	return u.kinds[i] == tokens.KindWhitespace && u.rune(i) != '\n'
}

// markLineEdges marks the whitespace before the first and after the last non-whitespace rune of every line, newlines excluded.
func (u *units) markLineEdges() {
	lineStart := 0
	for i := 0; i <= u.len(); i++ {
		if i < u.len() && u.rune(i) != '\n' {
			continue
		}
		j := lineStart
		for j < i && u.isSpace(j) {
			u.ignorable[j] = true
			j++
		}
		for k := i - 1; k >= j && u.isSpace(k); k-- {
			u.ignorable[k] = true
		}
		lineStart = i + 1
	}
}

// byteRange converts the rune range [s, e) to byte offsets.
func (u *units) byteRange(s, e int) (int, int) {
	return u.offsets[s], u.offsets[e]
}

// boundary scores the edge before rune i for match.Normalize. Text ends and line boundaries are the most readable places for a change to start or end,
// followed by edges next to whitespace.
func (u *units) boundary(i int) int {
	if i == 0 || i == u.len() {
		return 7
	}
	before, after := u.rune(i-1), u.rune(i)
	switch {
	case before == '\n' && i >= 2 && u.rune(i-2) == '\n', after == '\n' && i+1 < u.len() && u.rune(i+1) == '\n':
		return 6 // blank line
	case before == '\n':
		return 5 // start of a line
	case after == '\n':
		return 4
	case u.kinds[i-1] == tokens.KindPunctuation && u.kinds[i] == tokens.KindWhitespace:
		return 3 // end of a sentence or statement
	case u.kinds[i-1] == tokens.KindWhitespace || u.kinds[i] == tokens.KindWhitespace:
		return 2
	case chars.IsAlpha(before) != chars.IsAlpha(after):
		return 1
	}
	return 0
}

func boundaryFunc(u1, u2 *units) match.BoundaryFunc {
	return func(side, i int) int {
		if side == 1 {
			return u1.boundary(i)
		}
		return u2.boundary(i)
	}
}

// fragments converts the changes of al (an alignment of u1 and u2) into DiffFragments. Ignorable runes at the ends of a change are trimmed off, and changes made
// only of ignorable runes are dropped.
func fragments(al match.Alignment, u1, u2 *units) []DiffFragment {
	var out []DiffFragment
	for _, c := range al.Changes() {
		s1, e1 := u1.trim(c.Start1, c.End1)
		s2, e2 := u2.trim(c.Start2, c.End2)
		if s1 == e1 && s2 == e2 {
			continue
		}
		b1, be1 := u1.byteRange(s1, e1)
		b2, be2 := u2.byteRange(s2, e2)
		out = append(out, DiffFragment{Start1: b1, End1: be1, Start2: b2, End2: be2})
	}
	return out
}

// trim shrinks [s, e) by its ignorable leading and trailing runes. An entirely ignorable range collapses to the empty range at s.
func (u *units) trim(s, e int) (int, int) {
	for e > s && u.ignorable[e-1] {
		e--
	}
	for s < e && u.ignorable[s] {
		s++
	}
	return s, e
}
