package solid

import (
	"fmt"
	"math"
	"sort"

	"enclosure-designer/internal/designer/models"
	"enclosure-designer/internal/designer/sketch"
)

// ============================================================
// Chamfer Engine
// ============================================================

type corner struct {
	ref EdgeRef
	in  models.Point
	out models.Point
}

// Chamfer снимает симметричную 45° фаску шириной length с боковых рёбер.
// Все фаски считаются по исходному телу и применяются разом; исходное тело не меняется.
func Chamfer(s *Solid, length float64, refs ...EdgeRef) (*Solid, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil solid", ErrUnknownEdge)
	}
	if length <= 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return nil, fmt.Errorf("%w: length %g", ErrInvalidChamfer, length)
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: no edges selected on %s", ErrUnknownEdge, s.ID)
	}

	profile := s.Profile
	n := profile.Len()

	// вершина v: дальняя вершина отрезка ref.Segment
	corners := make(map[int]corner)
	for _, ref := range refs {
		if _, err := s.Edge(ref); err != nil {
			return nil, err
		}
		if ref.Kind != EdgeSwept {
			return nil, fmt.Errorf("%w: only swept edges can be chamfered, got %s", ErrUnknownEdge, ref)
		}

		v := (ref.Segment + 1) % n
		if _, dup := corners[v]; dup {
			continue
		}

		incoming := profile.Segments[ref.Segment]
		outgoing := profile.Segments[v]
		for _, seg := range []sketch.Segment{incoming, outgoing} {
			if length > seg.Length()/2 {
				return nil, fmt.Errorf("%w: %g exceeds half of the %g face next to %s",
					ErrChamferTooLarge, length, seg.Length(), ref)
			}
		}

		vertex := incoming.To
		corners[v] = corner{
			ref: ref,
			in:  toward(vertex, incoming.From, length),
			out: toward(vertex, outgoing.To, length),
		}
	}

	// точки, в которых каждый исходный отрезок начинается и заканчивается после фасок
	starts := make([]models.Point, n)
	ends := make([]models.Point, n)
	for i, seg := range profile.Segments {
		starts[i], ends[i] = seg.From, seg.To
		if c, ok := corners[i]; ok {
			starts[i] = c.out
		}
		if c, ok := corners[(i+1)%n]; ok {
			ends[i] = c.in
		}
	}

	var segments []sketch.Segment
	var bevels []Bevel
	kept := make(map[int]int, n)
	for i, seg := range profile.Segments {
		if starts[i].Distance(ends[i]) > sketch.Epsilon {
			kept[i] = len(segments)
			segments = append(segments, sketch.Segment{
				Kind: seg.Kind,
				Tag:  seg.Tag,
				From: starts[i],
				To:   ends[i],
			})
		}

		c, ok := corners[(i+1)%n]
		if !ok {
			continue
		}
		segments = append(segments, sketch.Segment{
			Kind: sketch.KindChamfer,
			From: c.in,
			To:   c.out,
		})
		bevels = append(bevels, Bevel{
			Source:  c.ref,
			Length:  length,
			Segment: len(segments) - 1,
		})
	}

	// фаски предыдущих операций переносятся на новые индексы отрезков
	var history []Bevel
	for _, b := range s.Bevels {
		if idx, ok := kept[b.Segment]; ok {
			b.Segment = idx
			history = append(history, b)
		}
	}
	bevels = append(history, bevels...)
	sort.SliceStable(bevels, func(i, j int) bool { return bevels[i].Segment < bevels[j].Segment })

	chamfered, err := sketch.NewProfile(profile.ID+"/chamfer", profile.Frame, segments)
	if err != nil {
		return nil, fmt.Errorf("rebuild chamfered profile: %w", err)
	}

	return &Solid{
		ID:         s.ID,
		Profile:    chamfered,
		Length:     s.Length,
		Appearance: s.Appearance,
		Bevels:     bevels,
	}, nil
}

// toward точка на расстоянии d от from в сторону to.
func toward(from, to models.Point, d float64) models.Point {
	dir := to.Sub(from)
	l := math.Hypot(dir.X, dir.Y)
	return models.Point{X: from.X + dir.X/l*d, Y: from.Y + dir.Y/l*d}
}
