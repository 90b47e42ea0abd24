// Package tokens splits text into comparable units: one token per character, or word-level tokens (alphanumeric runs, single continuous-script characters,
// punctuation runs, whitespace runs, and single other symbols).
//
// Token offsets are byte offsets into the tokenized string. Tokens never split a rune.
package tokens

import (
	"unicode/utf8"

	"github.com/codalotl/textcompare/internal/chars"
)

// Kind classifies a token.
type Kind int

const (
	KindWord        Kind = iota // maximal run of non-continuous alphanumerics
	KindContinuous              // single continuous-script character
	KindPunctuation             // run of ASCII punctuation (a single character in char mode)
	KindWhitespace              // run of whitespace, newlines included
	KindSymbol                  // any other single character
)

func (k Kind) String() string {
	switch k {
	case KindWord:
		return "word"
	case KindContinuous:
		return "continuous"
	case KindPunctuation:
		return "punctuation"
	case KindWhitespace:
		return "whitespace"
	case KindSymbol:
		return "symbol"
	}
	return "unknown"
}

// IsWordLike reports whether tokens of kind k are matched in the first (word) stage of comparison.
func (k Kind) IsWordLike() bool {
	return k == KindWord || k == KindContinuous
}

// Token is a [Start, End) byte range of the tokenized text.
type Token struct {
	Start int
	End   int
	Kind  Kind
}

// Text returns the token's text within text, which must be the string the token was produced from.
func (t Token) Text(text string) string {
	return text[t.Start:t.End]
}

// Len is the token's length in bytes.
func (t Token) Len() int {
	return t.End - t.Start
}

// Classify returns the kind a single rune would have as its own token.
func Classify(r rune) Kind {
	switch {
	case chars.IsWhitespace(r):
		return KindWhitespace
	case chars.IsPunctuation(r):
		return KindPunctuation
	case chars.IsAlpha(r):
		if chars.IsContinuousScript(r) {
			return KindContinuous
		}
		return KindWord
	}
	return KindSymbol
}

// Chars returns one token per rune of text.
func Chars(text string) []Token {
	out := make([]Token, 0, len(text))
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		out = append(out, Token{Start: i, End: i + size, Kind: Classify(r)})
		i += size
	}
	return out
}

// Words returns the word-mode tokens of text. Consecutive runes of kind KindWord, KindPunctuation or KindWhitespace are joined into one token; KindContinuous
// and KindSymbol runes always stand alone.
func Words(text string) []Token {
	var out []Token
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		kind := Classify(r)
		end := i + size
		if kind == KindWord || kind == KindPunctuation || kind == KindWhitespace {
			for end < len(text) {
				next, nextSize := utf8.DecodeRuneInString(text[end:])
				if Classify(next) != kind {
					break
				}
				end += nextSize
			}
		}
		out = append(out, Token{Start: i, End: end, Kind: kind})
		i = end
	}
	return out
}
