package merge

import (
	"context"
	"fmt"
	"strings"

	"github.com/codalotl/textcompare/internal/comparison"
)

// MergeLines compares left and right with base line by line and returns the ranges where at least one side differs from base under policy. Lines are numbered
// as in comparison.CompareLines.
//
// A side whose lines differ from base only in whitespace the policy ignores is treated as unchanged; a range where neither side changed is omitted.
func MergeLines(ctx context.Context, left, base, right string, policy comparison.Policy) ([]MergeLineFragment, error) {
	baseLeft, err := comparison.AlignLines(ctx, base, left, policy)
	if err != nil {
		return nil, fmt.Errorf("merge lines: %w", err)
	}
	baseRight, err := comparison.AlignLines(ctx, base, right, policy)
	if err != nil {
		return nil, fmt.Errorf("merge lines: %w", err)
	}

	ranges, err := BuildSimpleMerge(ctx, lineChanges(baseLeft), lineChanges(baseRight))
	if err != nil {
		return nil, fmt.Errorf("merge lines: %w", err)
	}

	lines := splitSides(left, base, right)
	var kept []MergeRange
	var result []MergeLineFragment
	for _, r := range ranges {
		if !classifyLineRange(r, lines, policy).IsChange() {
			continue
		}
		kept = append(kept, r)
		result = append(result, MergeLineFragment{MergeRange: r})
	}
	mustValidateRanges("MergeLines", kept, [3]int{len(lines[Left]), len(lines[Base]), len(lines[Right])})
	return result, nil
}

// CompareWordsThreeWay compares left and right with base by words (see comparison.CompareWords) and returns the ranges, in byte offsets, where at least one
// side differs from base under policy.
func CompareWordsThreeWay(ctx context.Context, left, base, right string, policy comparison.Policy) ([]MergeWordFragment, error) {
	baseLeft, err := comparison.AlignWords(ctx, base, left, policy)
	if err != nil {
		return nil, fmt.Errorf("compare words three-way: %w", err)
	}
	baseRight, err := comparison.AlignWords(ctx, base, right, policy)
	if err != nil {
		return nil, fmt.Errorf("compare words three-way: %w", err)
	}

	ranges, err := BuildSimpleMerge(ctx, baseLeft, baseRight)
	if err != nil {
		return nil, fmt.Errorf("compare words three-way: %w", err)
	}

	texts := [3]string{left, base, right}
	var kept []MergeRange
	var result []MergeWordFragment
	for _, r := range ranges {
		if !classifyTextRange(r, texts, policy).IsChange() {
			continue
		}
		kept = append(kept, r)
		result = append(result, MergeWordFragment{MergeRange: r})
	}
	mustValidateRanges("CompareWordsThreeWay", kept, [3]int{len(left), len(base), len(right)})
	return result, nil
}

// lineChanges converts line fragments to DiffFragments over line numbers.
func lineChanges(fragments []comparison.LineFragment) []comparison.DiffFragment {
	result := make([]comparison.DiffFragment, len(fragments))
	for i, f := range fragments {
		result[i] = comparison.DiffFragment{Start1: f.StartLine1, End1: f.EndLine1, Start2: f.StartLine2, End2: f.EndLine2}
	}
	return result
}

// splitSides splits each text into lines without their line breaks, indexed by ThreeSide.
func splitSides(left, base, right string) [3][]string {
	return [3][]string{strings.Split(left, "\n"), strings.Split(base, "\n"), strings.Split(right, "\n")}
}
