package comparison

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/codalotl/textcompare/internal/chars"
	"github.com/codalotl/textcompare/internal/match"
	"github.com/codalotl/textcompare/internal/tokens"
)

// CompareChars compares text1 and text2 rune by rune and returns the changed ranges.
//
// With PolicyDefault the result is a minimal edit (no other alignment leaves fewer changed runes) unless the texts are so different that match.Diff settles
// for an approximation. With the other policies, ignored whitespace neither matches nor shows up in the result.
func CompareChars(ctx context.Context, text1, text2 string, policy Policy) ([]DiffFragment, error) {
	u1, u2 := newUnits(text1, policy), newUnits(text2, policy)

	var al match.Alignment
	var err error
	if policy == PolicyDefault {
		al, err = match.Diff(ctx, u1.ids, u2.ids)
		if err == nil {
			al = match.Normalize(al, u1.ids, u2.ids, nil, boundaryFunc(u1, u2))
		}
	} else {
		al, err = match.Refine(ctx, match.Alignment{Length1: u1.len(), Length2: u2.len()}, u1.ids, u2.ids,
			func(i int) bool { return !u1.ignorable[i] },
			func(i int) bool { return !u2.ignorable[i] },
			nil, boundaryFunc(u1, u2))
	}
	if err != nil {
		return nil, fmt.Errorf("compare chars: %w", err)
	}

	result := fragments(al, u1, u2)
	mustValidateFragments("CompareChars", result, len(text1), len(text2))
	return result, nil
}

// CompareWords compares text1 and text2 by words and returns the changed ranges. A word is changed or unchanged as a whole; punctuation and whitespace between
// words are then compared rune by rune.
//
// Matching is staged: words are aligned first, punctuation and symbols inside the remaining gaps next, and whitespace last. Runs of continuous-script text
// (ex: CJK) are compared one character at a time.
func CompareWords(ctx context.Context, text1, text2 string, policy Policy) ([]DiffFragment, error) {
	u1, u2 := newUnits(text1, policy), newUnits(text2, policy)
	al, err := wordAlignment(ctx, u1, u2)
	if err != nil {
		return nil, fmt.Errorf("compare words: %w", err)
	}

	result := fragments(al, u1, u2)
	mustValidateFragments("CompareWords", result, len(text1), len(text2))
	return result, nil
}

// AlignWords is CompareWords without whitespace trimming: every rune range left unmatched is reported, including ranges made only of whitespace the policy
// ignores. The text between fragments is therefore identical in both texts, which three-way merging relies on.
func AlignWords(ctx context.Context, text1, text2 string, policy Policy) ([]DiffFragment, error) {
	u1, u2 := newUnits(text1, policy), newUnits(text2, policy)
	al, err := wordAlignment(ctx, u1, u2)
	if err != nil {
		return nil, fmt.Errorf("align words: %w", err)
	}

	var result []DiffFragment
	for _, c := range al.Changes() {
		s1, e1 := u1.byteRange(c.Start1, c.End1)
		s2, e2 := u2.byteRange(c.Start2, c.End2)
		result = append(result, DiffFragment{Start1: s1, End1: e1, Start2: s2, End2: e2})
	}
	mustValidateFragments("AlignWords", result, len(text1), len(text2))
	return result, nil
}

// wordAlignment computes the staged word alignment of u1 and u2 over rune indexes.
func wordAlignment(ctx context.Context, u1, u2 *units) (match.Alignment, error) {
	var in match.Interner
	w1 := newWordSeq(u1, &in)
	w2 := newWordSeq(u2, &in)

	wal, err := match.Diff(ctx, w1.ids, w2.ids)
	if err != nil {
		return match.Alignment{}, err
	}
	wal = match.Normalize(wal, w1.ids, w2.ids, nil, func(side, i int) int {
		if side == 1 {
			return w1.boundary(i)
		}
		return w2.boundary(i)
	})

	// Expand matched words into runs of matched runes.
	al := match.Alignment{Length1: u1.len(), Length2: u2.len()}
	for _, r := range wal.Unchanged {
		for k := 0; k < r.End1-r.Start1; k++ {
			s1, e1 := w1.runes(r.Start1 + k)
			s2, _ := w2.runes(r.Start2 + k)
			al.Unchanged = match.AppendRun(al.Unchanged, s1, s2, e1-s1)
		}
	}

	boundary := boundaryFunc(u1, u2)
	isPunct := func(u *units) func(int) bool {
		return func(i int) bool {
			return u.kinds[i] == tokens.KindPunctuation || u.kinds[i] == tokens.KindSymbol
		}
	}
	al, err = match.Refine(ctx, al, u1.ids, u2.ids, isPunct(u1), isPunct(u2), nil, boundary)
	if err != nil {
		return match.Alignment{}, err
	}

	isSpace := func(u *units) func(int) bool {
		return func(i int) bool {
			return u.kinds[i] == tokens.KindWhitespace && !u.ignorable[i]
		}
	}
	return match.Refine(ctx, al, u1.ids, u2.ids, isSpace(u1), isSpace(u2), nil, boundary)
}

// wordSeq is the sequence of word tokens (see tokens.Kind.IsWordLike) of a text.
type wordSeq struct {
	u      *units
	toks   []tokens.Token
	ids    []int
	starts []int // rune index of each word's first rune
}

func newWordSeq(u *units, in *match.Interner) *wordSeq {
	w := &wordSeq{u: u}
	for _, tok := range tokens.Words(u.text) {
		if !tok.Kind.IsWordLike() {
			continue
		}
		w.toks = append(w.toks, tok)
		w.ids = append(w.ids, in.ID(tok.Text(u.text)))
		w.starts = append(w.starts, sort.SearchInts(u.offsets, tok.Start))
	}
	return w
}

// runes returns the rune range [s, e) of word i.
func (w *wordSeq) runes(i int) (int, int) {
	s := w.starts[i]
	return s, sort.SearchInts(w.u.offsets, w.toks[i].End)
}

// boundary scores the edge before word i: the text ends score highest, then edges separated from the previous word by a line break, then by other whitespace.
func (w *wordSeq) boundary(i int) int {
	if i == 0 || i == len(w.toks) {
		return 3
	}
	between := w.u.text[w.toks[i-1].End:w.toks[i].Start]
	switch {
	case strings.ContainsRune(between, '\n'):
		return 2
	case strings.IndexFunc(between, chars.IsWhitespace) >= 0:
		return 1
	}
	return 0
}

// IsEquals reports whether text1 and text2 are equal under policy:
//   - PolicyDefault: the texts are identical.
//   - PolicyTrimWhitespaces: the texts have the same number of lines, and corresponding lines are equal once leading and trailing whitespace is removed.
//   - PolicyIgnoreWhitespaces: the texts are identical once all whitespace, line breaks included, is removed.
func IsEquals(text1, text2 string, policy Policy) bool {
	switch policy {
	case PolicyTrimWhitespaces:
		if strings.Count(text1, "\n") != strings.Count(text2, "\n") {
			return false
		}
		lines1 := strings.Split(text1, "\n")
		lines2 := strings.Split(text2, "\n")
		for i := range lines1 {
			if trimLine(lines1[i]) != trimLine(lines2[i]) {
				return false
			}
		}
		return true
	case PolicyIgnoreWhitespaces:
		return removeWhitespace(text1) == removeWhitespace(text2)
	}
	return text1 == text2
}

// isLineSpace reports whether r is whitespace other than a line break.
func isLineSpace(r rune) bool {
	return r != '\n' && chars.IsWhitespace(r)
}

func trimLine(line string) string {
	return strings.TrimFunc(line, isLineSpace)
}

func removeWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if chars.IsWhitespace(r) {
			return -1
		}
		return r
	}, s)
}
