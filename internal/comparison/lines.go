package comparison

import (
	"context"
	"fmt"
	"strings"

	"github.com/codalotl/textcompare/internal/chars"
	"github.com/codalotl/textcompare/internal/lineindex"
	"github.com/codalotl/textcompare/internal/match"
)

// DefaultMaxInnerLength is the largest combined size, in bytes, of a line fragment for which CompareLinesInner computes inner fragments.
const DefaultMaxInnerLength = 500000

// LineOffsetsFor returns a line index of text suitable for CompareLinesWordFirst.
func LineOffsetsFor(text string) lineindex.Offsets {
	return lineindex.New(text)
}

// lineSeq is the sequence of lines of a text, keyed by their content under a policy.
type lineSeq struct {
	x     *lineindex.Index
	ids   []int
	alpha []bool // line contains a letter or digit
	blank []bool // line has no content under the policy
}

func newLineSeq(text string, policy Policy, in *match.Interner) *lineSeq {
	x := lineindex.New(text)
	s := &lineSeq{
		x:     x,
		ids:   make([]int, x.LineCount()),
		alpha: make([]bool, x.LineCount()),
		blank: make([]bool, x.LineCount()),
	}
	for i := range s.ids {
		key := text[x.LineStart(i):x.LineEnd(i, false)]
		switch policy {
		case PolicyTrimWhitespaces:
			key = trimLine(key)
		case PolicyIgnoreWhitespaces:
			key = removeWhitespace(key)
		}
		s.ids[i] = in.ID(key)
		s.alpha[i] = strings.IndexFunc(key, chars.IsAlpha) >= 0
		s.blank[i] = strings.TrimFunc(key, chars.IsWhitespace) == ""
	}
	return s
}

// boundary scores the edge before line i: text ends score 2, and the edge just after a blank line scores 1.
func (s *lineSeq) boundary(i int) int {
	if i == 0 || i == len(s.ids) {
		return 2
	}
	if s.blank[i-1] {
		return 1
	}
	return 0
}

// CompareLines compares text1 and text2 line by line. Lines are equal when their content, without the line break and normalized by policy, is equal. The
// returned fragments have no Inner fragments.
//
// Lines containing letters or digits are matched first, then other non-blank lines, then blank lines, so that a run of blank lines or braces never anchors the
// alignment at the expense of real content.
func CompareLines(ctx context.Context, text1, text2 string, policy Policy) ([]LineFragment, error) {
	result, _, _, err := compareLines(ctx, text1, text2, policy, false)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AlignLines is CompareLines without the final filtering: every line range left unmatched is reported, including inserted or deleted blank lines under
// PolicyIgnoreWhitespaces. The unchanged lines between fragments therefore pair up one to one, which three-way merging relies on.
func AlignLines(ctx context.Context, text1, text2 string, policy Policy) ([]LineFragment, error) {
	result, _, _, err := compareLines(ctx, text1, text2, policy, true)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func compareLines(ctx context.Context, text1, text2 string, policy Policy, keepIgnored bool) ([]LineFragment, *lineindex.Index, *lineindex.Index, error) {
	var in match.Interner
	s1 := newLineSeq(text1, policy, &in)
	s2 := newLineSeq(text2, policy, &in)
	boundary := func(side, i int) int {
		if side == 1 {
			return s1.boundary(i)
		}
		return s2.boundary(i)
	}

	al := match.Alignment{Length1: len(s1.ids), Length2: len(s2.ids)}
	stages := []func(s *lineSeq, i int) bool{
		func(s *lineSeq, i int) bool { return s.alpha[i] },
		func(s *lineSeq, i int) bool { return !s.alpha[i] && !s.blank[i] },
		func(s *lineSeq, i int) bool { return s.blank[i] },
	}
	for _, stage := range stages {
		var err error
		al, err = match.Refine(ctx, al, s1.ids, s2.ids,
			func(i int) bool { return stage(s1, i) },
			func(i int) bool { return stage(s2, i) },
			nil, boundary)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("compare lines: %w", err)
		}
	}

	var result []LineFragment
	for _, c := range al.Changes() {
		f := newLineFragment(s1.x, s2.x, c.Start1, c.End1, c.Start2, c.End2)
		// Under PolicyIgnoreWhitespaces, inserted or deleted blank lines are not a change.
		if !keepIgnored && policy == PolicyIgnoreWhitespaces && IsEquals(text1[f.Start1:f.End1], text2[f.Start2:f.End2], policy) {
			continue
		}
		result = append(result, f)
	}
	mustValidateLineFragments("CompareLines", result, s1.x, s2.x)
	return result, s1.x, s2.x, nil
}

// CompareLinesInner is CompareLines with Inner populated by a word comparison of each fragment's text. It is CompareLinesInnerLimit with
// DefaultMaxInnerLength.
func CompareLinesInner(ctx context.Context, text1, text2 string, policy Policy) ([]LineFragment, error) {
	return CompareLinesInnerLimit(ctx, text1, text2, policy, DefaultMaxInnerLength)
}

// CompareLinesInnerLimit is CompareLinesInner for fragments whose combined length is at most maxInnerLength bytes; larger fragments keep a nil Inner.
//
// Inner is also nil when the word comparison finds the whole fragment changed. When it finds no change at all (the lines differ only in ways the policy
// ignores), the fragment is dropped, except under PolicyDefault.
func CompareLinesInnerLimit(ctx context.Context, text1, text2 string, policy Policy, maxInnerLength int) ([]LineFragment, error) {
	fragments, x1, x2, err := compareLines(ctx, text1, text2, policy, false)
	if err != nil {
		return nil, err
	}

	var result []LineFragment
	for _, f := range fragments {
		if f.IsEmpty1() && f.IsEmpty2() {
			result = append(result, f)
			continue
		}
		if (f.End1-f.Start1)+(f.End2-f.Start2) > maxInnerLength {
			result = append(result, f)
			continue
		}
		inner, err := CompareWords(ctx, text1[f.Start1:f.End1], text2[f.Start2:f.End2], policy)
		if err != nil {
			return nil, fmt.Errorf("compare lines inner: %w", err)
		}
		if len(inner) == 0 && policy != PolicyDefault {
			continue
		}
		f.Inner = compactInner(inner, f.End1-f.Start1, f.End2-f.Start2)
		result = append(result, f)
	}
	mustValidateLineFragments("CompareLinesInner", result, x1, x2)
	return result, nil
}

// compactInner returns inner, or nil if it carries no information beyond "everything changed": it is empty, or it is one fragment covering both sides.
func compactInner(inner []DiffFragment, len1, len2 int) []DiffFragment {
	if len(inner) == 0 {
		return nil
	}
	if len(inner) == 1 && inner[0] == (DiffFragment{End1: len1, End2: len2}) {
		return nil
	}
	return inner
}
