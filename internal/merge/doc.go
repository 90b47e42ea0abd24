// Package merge compares three versions of a text (LEFT, BASE and RIGHT, where LEFT and RIGHT both derive from BASE) and resolves the non-conflicting changes.
//
// Representation: a MergeRange holds three half-open ranges, one per ThreeSide: [Start1, End1) for LEFT, [Start2, End2) for BASE and [Start3, End3) for RIGHT.
// MergeLineFragment ranges are in lines, MergeWordFragment ranges in bytes. Text between ranges is equal on all three sides under the comparison policy.
//
// Invariants (checked on every result; a violation panics):
//   - ranges are sorted and non-overlapping on all three sides.
//   - every range is non-empty on at least one side.
//   - two consecutive ranges never touch on all three sides (they would have been one range).
//
// Combining: BuildSimpleMerge interleaves two pairwise diffs that share BASE as their first side. Changes whose BASE ranges overlap or touch end up in the
// same MergeRange, diff3-style.
//
// Conflicts: Classify tells which sides changed a range relative to BASE under a comparison policy, and whether the changes conflict. ResolveLines and
// ResolveWords apply every non-conflicting change and emit git-style conflict markers for the rest.
package merge
