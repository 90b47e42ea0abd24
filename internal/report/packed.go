package report

import (
	"fmt"

	"fortio.org/safecast"
)

// quad is four offsets packed for the wire.
type quad [4]uint32

func pack(values ...int) (quad, error) {
	var q quad
	for i, v := range values {
		u, err := safecast.Conv[uint32](v)
		if err != nil {
			return quad{}, fmt.Errorf("pack offset %d: %w", v, err)
		}
		q[i] = u
	}
	return q, nil
}

func packFragment(f Fragment) (quad, error) {
	return pack(f.Start1, f.End1, f.Start2, f.End2)
}

type packedLine struct {
	Lines   quad   `msgpack:"l"`
	Offsets quad   `msgpack:"o"`
	Inner   []quad `msgpack:"i,omitempty"`
}

type packedTwoWay struct {
	Old         string       `msgpack:"old"`
	New         string       `msgpack:"new"`
	Granularity string       `msgpack:"granularity"`
	Policy      string       `msgpack:"policy"`
	Equal       bool         `msgpack:"equal"`
	Fragments   []quad       `msgpack:"f,omitempty"`
	Lines       []packedLine `msgpack:"lf,omitempty"`
}

func (r TwoWay) packed() (any, error) {
	return r.pack()
}

func (r TwoWay) pack() (packedTwoWay, error) {
	p := packedTwoWay{Old: r.Old, New: r.New, Granularity: r.Granularity, Policy: r.Policy, Equal: r.Equal}
	for _, f := range r.Fragments {
		q, err := packFragment(f)
		if err != nil {
			return packedTwoWay{}, err
		}
		p.Fragments = append(p.Fragments, q)
	}
	for _, lf := range r.Lines {
		var pl packedLine
		var err error
		if pl.Lines, err = packFragment(lf.Lines); err != nil {
			return packedTwoWay{}, err
		}
		if pl.Offsets, err = packFragment(lf.Offsets); err != nil {
			return packedTwoWay{}, err
		}
		for _, in := range lf.Inner {
			q, err := packFragment(in)
			if err != nil {
				return packedTwoWay{}, err
			}
			pl.Inner = append(pl.Inner, q)
		}
		p.Lines = append(p.Lines, pl)
	}
	return p, nil
}

func (b Batch) packed() (any, error) {
	result := make([]packedTwoWay, 0, len(b))
	for _, r := range b {
		p, err := r.pack()
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, nil
}

type packedMerge struct {
	Ranges       [6]uint32 `msgpack:"r"`
	Kind         string    `msgpack:"k"`
	LeftChanged  bool      `msgpack:"lc"`
	RightChanged bool      `msgpack:"rc"`
}

type packedThreeWay struct {
	Left        string        `msgpack:"left"`
	Base        string        `msgpack:"base"`
	Right       string        `msgpack:"right"`
	Granularity string        `msgpack:"granularity"`
	Policy      string        `msgpack:"policy"`
	Fragments   []packedMerge `msgpack:"f,omitempty"`
	Conflicts   int           `msgpack:"conflicts"`
	Text        string        `msgpack:"text"`
}

func (r ThreeWay) packed() (any, error) {
	p := packedThreeWay{
		Left: r.Left, Base: r.Base, Right: r.Right,
		Granularity: r.Granularity, Policy: r.Policy,
		Conflicts: r.Conflicts, Text: r.Text,
	}
	for _, f := range r.Fragments {
		lq, err := pack(f.Left[0], f.Left[1], f.Base[0], f.Base[1])
		if err != nil {
			return nil, err
		}
		rq, err := pack(f.Right[0], f.Right[1])
		if err != nil {
			return nil, err
		}
		p.Fragments = append(p.Fragments, packedMerge{
			Ranges:       [6]uint32{lq[0], lq[1], lq[2], lq[3], rq[0], rq[1]},
			Kind:         f.Kind,
			LeftChanged:  f.LeftChanged,
			RightChanged: f.RightChanged,
		})
	}
	return p, nil
}
