// Package lineindex maps between byte offsets and 0-based line numbers of a text.
//
// A text with N '\n' characters has N+1 lines; the empty text has one empty line. Line content excludes the '\n' terminator.
package lineindex

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Offsets is a line-offset index over a fixed text. Callers may supply their own implementation (ex: an editor document); Index is the default one.
type Offsets interface {
	// LineStart returns the offset of the first byte of line.
	LineStart(line int) int

	// LineEnd returns the offset just past the content of line. If includeNewline and line has a terminator, the terminator is included.
	LineEnd(line int, includeNewline bool) int

	// LineNumber returns the line containing offset. An offset equal to the text length belongs to the last line.
	LineNumber(offset int) int

	LineCount() int
	TextLength() int
}

// ErrInconsistent is returned by Validate when an index does not describe its text.
var ErrInconsistent = errors.New("line index inconsistent with text")

// Index is an immutable Offsets built from a string.
type Index struct {
	starts []int // starts[i] is the start offset of line i
	length int
}

// New indexes text.
func New(text string) *Index {
	starts := make([]int, 1, strings.Count(text, "\n")+1)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Index{starts: starts, length: len(text)}
}

func (x *Index) LineCount() int {
	return len(x.starts)
}

func (x *Index) TextLength() int {
	return x.length
}

func (x *Index) LineStart(line int) int {
	return x.starts[line]
}

func (x *Index) LineEnd(line int, includeNewline bool) int {
	if line == len(x.starts)-1 {
		return x.length
	}
	end := x.starts[line+1]
	if includeNewline {
		return end
	}
	return end - 1
}

func (x *Index) LineNumber(offset int) int {
	// First line whose start is > offset, minus one.
	return sort.SearchInts(x.starts, offset+1) - 1
}

// Validate checks that o describes text: matching length, line count equal to the number of '\n' plus one, and every line ending with '\n' except the last.
func Validate(o Offsets, text string) error {
	if o.TextLength() != len(text) {
		return fmt.Errorf("%w: text length %d, index length %d", ErrInconsistent, len(text), o.TextLength())
	}
	if want := strings.Count(text, "\n") + 1; o.LineCount() != want {
		return fmt.Errorf("%w: %d lines in text, %d in index", ErrInconsistent, want, o.LineCount())
	}
	prevEnd := 0
	for line := 0; line < o.LineCount(); line++ {
		start := o.LineStart(line)
		end := o.LineEnd(line, false)
		full := o.LineEnd(line, true)
		if start != prevEnd || end < start || full < end || full > len(text) {
			return fmt.Errorf("%w: bad bounds for line %d", ErrInconsistent, line)
		}
		if strings.Contains(text[start:end], "\n") {
			return fmt.Errorf("%w: line %d contains a newline", ErrInconsistent, line)
		}
		if line < o.LineCount()-1 && (full != end+1 || text[end] != '\n') {
			return fmt.Errorf("%w: line %d is not terminated", ErrInconsistent, line)
		}
		prevEnd = full
	}
	if prevEnd != len(text) {
		return fmt.Errorf("%w: lines do not cover the text", ErrInconsistent)
	}
	return nil
}
