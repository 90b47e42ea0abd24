// Package report encodes comparison results for machines: indented JSON, or a compact msgpack form where offsets are packed as uint32 quadruples.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/codalotl/textcompare/internal/comparison"
	"github.com/codalotl/textcompare/internal/merge"
)

// Format is an encoding of a report.
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat returns the Format named s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatMsgpack:
		return f, nil
	}
	return "", fmt.Errorf("unknown report format %q (want json or msgpack)", s)
}

// Report is a result that can be written by Write.
type Report interface {
	// packed returns the compact form encoded by FormatMsgpack.
	packed() (any, error)
}

// Write encodes r to w in format.
func Write(w io.Writer, format Format, r Report) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatMsgpack:
		p, err := r.packed()
		if err != nil {
			return err
		}
		return msgpack.NewEncoder(w).Encode(p)
	}
	return fmt.Errorf("unknown report format %q", format)
}

// Fragment is a changed range: [Start1, End1) of the first text and [Start2, End2) of the second, in bytes or lines.
type Fragment struct {
	Start1 int `json:"start1"`
	End1   int `json:"end1"`
	Start2 int `json:"start2"`
	End2   int `json:"end2"`
}

// LineFragment is a changed range of lines with its byte offsets and, when known, the word-level changes inside it (relative to the fragment start).
type LineFragment struct {
	Lines   Fragment   `json:"lines"`
	Offsets Fragment   `json:"offsets"`
	Inner   []Fragment `json:"inner,omitempty"`
}

// TwoWay is the result of comparing two texts.
type TwoWay struct {
	Old         string         `json:"old"`
	New         string         `json:"new"`
	Granularity string         `json:"granularity"`
	Policy      string         `json:"policy"`
	Equal       bool           `json:"equal"`
	Fragments   []Fragment     `json:"fragments,omitempty"`
	Lines       []LineFragment `json:"lines,omitempty"`
}

// NewTwoWay builds the report of a char or word comparison.
func NewTwoWay(oldName, newName, granularity string, policy comparison.Policy, fragments []comparison.DiffFragment) TwoWay {
	r := TwoWay{Old: oldName, New: newName, Granularity: granularity, Policy: policy.String(), Equal: len(fragments) == 0}
	for _, f := range fragments {
		r.Fragments = append(r.Fragments, fromDiff(f))
	}
	return r
}

// NewTwoWayLines builds the report of a line comparison.
func NewTwoWayLines(oldName, newName, granularity string, policy comparison.Policy, fragments []comparison.LineFragment) TwoWay {
	r := TwoWay{Old: oldName, New: newName, Granularity: granularity, Policy: policy.String(), Equal: len(fragments) == 0}
	for _, f := range fragments {
		lf := LineFragment{
			Lines:   Fragment{Start1: f.StartLine1, End1: f.EndLine1, Start2: f.StartLine2, End2: f.EndLine2},
			Offsets: fromDiff(f.DiffFragment),
		}
		for _, in := range f.Inner {
			lf.Inner = append(lf.Inner, fromDiff(in))
		}
		r.Lines = append(r.Lines, lf)
	}
	return r
}

func fromDiff(f comparison.DiffFragment) Fragment {
	return Fragment{Start1: f.Start1, End1: f.End1, Start2: f.Start2, End2: f.End2}
}

// Batch is a list of two-way results, in the order the pairs were given.
type Batch []TwoWay

// MergeFragment is one range of a three-way comparison. Ranges are [start, end) pairs in lines or bytes.
type MergeFragment struct {
	Left         [2]int `json:"left"`
	Base         [2]int `json:"base"`
	Right        [2]int `json:"right"`
	Kind         string `json:"kind"`
	LeftChanged  bool   `json:"left_changed"`
	RightChanged bool   `json:"right_changed"`
}

// ThreeWay is the result of merging LEFT and RIGHT over BASE.
type ThreeWay struct {
	Left        string          `json:"left"`
	Base        string          `json:"base"`
	Right       string          `json:"right"`
	Granularity string          `json:"granularity"`
	Policy      string          `json:"policy"`
	Fragments   []MergeFragment `json:"fragments,omitempty"`
	Conflicts   int             `json:"conflicts"`
	Text        string          `json:"text"`
}

// NewThreeWay builds the report of a merge. types[i] classifies ranges[i].
func NewThreeWay(names [3]string, granularity string, policy comparison.Policy, ranges []merge.MergeRange, types []merge.ConflictType, res merge.Resolution) ThreeWay {
	r := ThreeWay{
		Left: names[merge.Left], Base: names[merge.Base], Right: names[merge.Right],
		Granularity: granularity,
		Policy:      policy.String(),
		Conflicts:   res.Conflicts,
		Text:        res.Text,
	}
	for i, mr := range ranges {
		r.Fragments = append(r.Fragments, MergeFragment{
			Left:         [2]int{mr.Start1, mr.End1},
			Base:         [2]int{mr.Start2, mr.End2},
			Right:        [2]int{mr.Start3, mr.End3},
			Kind:         types[i].Kind.String(),
			LeftChanged:  types[i].LeftChanged(),
			RightChanged: types[i].RightChanged(),
		})
	}
	return r
}
