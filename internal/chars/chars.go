// Package chars classifies code points for tokenization: alphanumerics, ASCII punctuation, whitespace, and continuous-script characters (scripts written without
// spaces between words).
package chars

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

const punctuation = "(){}[],./?`~!@#$%^&*-=+|\\;:'\"<>"

// continuousScripts holds every code point that IsContinuousScript accepts, except emoji (checked by range).
var continuousScripts = rangetable.Merge(
	unicode.Han,
	unicode.Hiragana,
	unicode.Katakana,
	unicode.Bopomofo,
	unicode.Thai,
	unicode.Lao,
	unicode.Khmer,
	unicode.Myanmar,
	unicode.Tibetan,
	unicode.Yi,
	unicode.Bidi_Control,
)

// IsPunctuation reports whether r is in the fixed ASCII punctuation set.
func IsPunctuation(r rune) bool {
	return r < 0x80 && strings.ContainsRune(punctuation, r)
}

// IsWhitespace reports whether r is an ASCII whitespace character. '\n' counts as whitespace.
func IsWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// IsAlpha reports whether r is a letter (of any script) or a digit. Combining marks count as alpha so that accented words are not split.
func IsAlpha(r rune) bool {
	if r < 0x80 {
		return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_'
	}
	if IsContinuousScript(r) {
		return !unicode.Is(unicode.Bidi_Control, r)
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// IsContinuousScript reports whether r belongs to a script that does not separate words with whitespace (CJK ideographs, kana, Thai and its neighbors, emoji),
// or is a bidi formatting mark.
func IsContinuousScript(r rune) bool {
	if r < 0x0600 {
		return false
	}
	return isEmoji(r) || unicode.Is(continuousScripts, r)
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF: // pictographs, emoticons, transport, supplemental symbols
		return true
	case r >= 0x1F1E6 && r <= 0x1F1FF: // regional indicators
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	}
	return false
}
