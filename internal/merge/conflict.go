package merge

import (
	"fmt"
	"strings"

	"github.com/codalotl/textcompare/internal/comparison"
)

// ConflictKind is the kind of change a merge range holds.
type ConflictKind int

const (
	Inserted ConflictKind = iota // BASE is empty
	Deleted                      // the changed side is empty
	Modified                     // any other non-conflicting change
	Conflict                     // both sides changed, differently
)

func (k ConflictKind) String() string {
	switch k {
	case Inserted:
		return "inserted"
	case Deleted:
		return "deleted"
	case Modified:
		return "modified"
	case Conflict:
		return "conflict"
	}
	return fmt.Sprintf("ConflictKind(%d)", int(k))
}

// ConflictType describes a merge range: its kind and which sides changed relative to BASE.
type ConflictType struct {
	Kind ConflictKind

	leftChanged  bool
	rightChanged bool
}

// LeftChanged reports whether LEFT differs from BASE.
func (t ConflictType) LeftChanged() bool { return t.leftChanged }

// RightChanged reports whether RIGHT differs from BASE.
func (t ConflictType) RightChanged() bool { return t.rightChanged }

// IsChange reports whether either side differs from BASE.
func (t ConflictType) IsChange() bool { return t.leftChanged || t.rightChanged }

// Changed reports whether side differs from BASE. BASE counts as changed when either side did.
func (t ConflictType) Changed(side ThreeSide) bool {
	return Select(side, t.leftChanged, t.IsChange(), t.rightChanged)
}

func (t ConflictType) String() string {
	var sides []string
	if t.leftChanged {
		sides = append(sides, "left")
	}
	if t.rightChanged {
		sides = append(sides, "right")
	}
	if len(sides) == 0 {
		return "unchanged"
	}
	return fmt.Sprintf("%v (%s)", t.Kind, strings.Join(sides, ", "))
}

// Classify returns the ConflictType of one merge range given the text of each side within the range.
//
// Sides are compared with comparison.IsEquals under policy. When both sides changed to texts that are equal under policy, the range is not a conflict and is
// classified from LEFT.
func Classify(left, base, right string, policy comparison.Policy) ConflictType {
	leftChanged := !comparison.IsEquals(left, base, policy)
	rightChanged := !comparison.IsEquals(right, base, policy)
	conflicting := leftChanged && rightChanged && !comparison.IsEquals(left, right, policy)
	return classify(leftChanged, rightChanged, conflicting, left == "", base == "", right == "")
}

// ClassifyLines returns the ConflictType of each fragment as returned by MergeLines for the same texts.
func ClassifyLines(fragments []MergeLineFragment, left, base, right string, policy comparison.Policy) []ConflictType {
	lines := splitSides(left, base, right)
	result := make([]ConflictType, len(fragments))
	for i, f := range fragments {
		result[i] = classifyLineRange(f.MergeRange, lines, policy)
	}
	return result
}

// ClassifyWords returns the ConflictType of each fragment as returned by CompareWordsThreeWay for the same texts.
func ClassifyWords(fragments []MergeWordFragment, left, base, right string, policy comparison.Policy) []ConflictType {
	texts := [3]string{left, base, right}
	result := make([]ConflictType, len(fragments))
	for i, f := range fragments {
		result[i] = classifyTextRange(f.MergeRange, texts, policy)
	}
	return result
}

func classifyTextRange(r MergeRange, texts [3]string, policy comparison.Policy) ConflictType {
	return Classify(texts[Left][r.Start1:r.End1], texts[Base][r.Start2:r.End2], texts[Right][r.Start3:r.End3], policy)
}

// classifyLineRange classifies a range of line numbers. Line lists are compared rather than the joined text so that a range of zero lines differs from a range
// holding one empty line.
func classifyLineRange(r MergeRange, lines [3][]string, policy comparison.Policy) ConflictType {
	left := lines[Left][r.Start1:r.End1]
	base := lines[Base][r.Start2:r.End2]
	right := lines[Right][r.Start3:r.End3]
	leftChanged := !linesEqual(left, base, policy)
	rightChanged := !linesEqual(right, base, policy)
	conflicting := leftChanged && rightChanged && !linesEqual(left, right, policy)
	return classify(leftChanged, rightChanged, conflicting, len(left) == 0, len(base) == 0, len(right) == 0)
}

func linesEqual(a, b []string, policy comparison.Policy) bool {
	if policy != comparison.PolicyIgnoreWhitespaces && len(a) != len(b) {
		return false
	}
	return comparison.IsEquals(strings.Join(a, "\n"), strings.Join(b, "\n"), policy)
}

func classify(leftChanged, rightChanged, conflicting, leftEmpty, baseEmpty, rightEmpty bool) ConflictType {
	t := ConflictType{leftChanged: leftChanged, rightChanged: rightChanged}
	changedEmpty := rightEmpty
	if leftChanged {
		changedEmpty = leftEmpty
	}
	switch {
	case conflicting:
		t.Kind = Conflict
	case baseEmpty:
		t.Kind = Inserted
	case changedEmpty:
		t.Kind = Deleted
	default:
		t.Kind = Modified
	}
	return t
}
