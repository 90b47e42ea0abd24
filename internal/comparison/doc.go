// Package comparison compares two texts at character, word, or line granularity and reports the differences as fragments of byte offsets.
//
// Representation: a DiffFragment is a pair of half-open byte ranges, [Start1, End1) in the first text and [Start2, End2) in the second. A LineFragment adds
// the 0-based line ranges the fragment spans and, optionally, finer Inner fragments whose offsets are relative to the LineFragment's Start1/Start2. Everything
// between fragments is unchanged.
//
// Invariants (checked on every result; a violation panics):
//   - fragments are sorted and non-overlapping on both sides: f[i].End1 <= f[i+1].Start1 and f[i].End2 <= f[i+1].Start2.
//   - a DiffFragment is never empty on both sides.
//   - a LineFragment spans at least one line on one side, and its offsets are exactly the line starts/ends of the line index (the end includes the
//     terminating '\n'). An empty line range at line l sits at the start of l, or at the text length when l equals the line count.
//
// Policies: PolicyDefault compares texts exactly. PolicyTrimWhitespaces ignores whitespace at the start and end of every line, but not line breaks.
// PolicyIgnoreWhitespaces ignores all whitespace, line breaks included.
//
// Matching: words (alphanumeric runs and single continuous-script characters) are aligned first; punctuation is then aligned inside the unmatched gaps, and
// whitespace last. This is what makes a word beat punctuation, and punctuation beat whitespace, when both could be matched. Ties between equally minimal
// alignments are broken by match.DefaultRules.
//
// Entry points take a context.Context, which is polled periodically. A canceled call returns an error wrapping ctx.Err() and no fragments.
//
// Line model: a text with N '\n' characters has N+1 lines, so "" has one empty line and "x\n" has two lines ("x" and an empty last line).
package comparison
