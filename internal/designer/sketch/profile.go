package sketch

import (
	"errors"
	"fmt"
	"math"

	"enclosure-designer/internal/designer/models"
)

// ============================================================
// Errors
// ============================================================

var (
	ErrOpenProfile       = errors.New("open profile")
	ErrUnreachableTarget = errors.New("unreachable target")
	ErrUnknownTag        = errors.New("unknown tag")
	ErrDuplicateTag      = errors.New("duplicate tag")
)

// Epsilon допуск совпадения точек эскиза.
const Epsilon = 1e-9

// ============================================================
// Segments
// ============================================================

type SegmentKind string

const (
	KindLineRelative SegmentKind = "lineRelative"
	KindLineAbsolute SegmentKind = "lineAbsolute"
	KindAngledToX    SegmentKind = "angledLineToX"
	KindAngledToY    SegmentKind = "angledLineToY"
	KindClose        SegmentKind = "close"
	KindChamfer      SegmentKind = "chamfer"
)

// Segment отрезок контура от From до To.
type Segment struct {
	Kind SegmentKind  `json:"kind"`
	Tag  string       `json:"tag,omitempty"`
	From models.Point `json:"from"`
	To   models.Point `json:"to"`
}

func (s Segment) Length() float64 {
	return s.From.Distance(s.To)
}

// Direction вектор From -> To (не нормирован).
func (s Segment) Direction() models.Point {
	return s.To.Sub(s.From)
}

// ============================================================
// Profile
// ============================================================

// Profile замкнутый простой контур на плоскости Frame.
type Profile struct {
	ID       string
	Frame    models.Frame
	Segments []Segment
	tags     map[string]int
}

// NewProfile проверяет, что отрезки образуют замкнутый простой многоугольник ненулевой площади.
func NewProfile(id string, frame models.Frame, segments []Segment) (*Profile, error) {
	if len(segments) < 3 {
		return nil, fmt.Errorf("%w: %d segments, need at least 3", ErrOpenProfile, len(segments))
	}

	segs := make([]Segment, len(segments))
	copy(segs, segments)

	tags := make(map[string]int)
	for i, seg := range segs {
		if seg.Length() <= Epsilon {
			return nil, fmt.Errorf("%w: segment %d has zero length", ErrOpenProfile, i)
		}
		next := segs[(i+1)%len(segs)]
		if seg.To.Distance(next.From) > Epsilon {
			if i == len(segs)-1 {
				return nil, fmt.Errorf("%w: pen at (%g, %g) does not return to start (%g, %g)",
					ErrOpenProfile, seg.To.X, seg.To.Y, next.From.X, next.From.Y)
			}
			return nil, fmt.Errorf("%w: segment %d does not start at the pen", ErrOpenProfile, i+1)
		}
		if seg.Tag == "" {
			continue
		}
		if _, dup := tags[seg.Tag]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTag, seg.Tag)
		}
		tags[seg.Tag] = i
	}

	if err := validateSimple(segs); err != nil {
		return nil, err
	}

	return &Profile{
		ID:       id,
		Frame:    frame,
		Segments: segs,
		tags:     tags,
	}, nil
}

func (p *Profile) Len() int {
	return len(p.Segments)
}

func (p *Profile) Start() models.Point {
	return p.Segments[0].From
}

// Vertices вершины в порядке обхода, вершина i: начало отрезка i.
func (p *Profile) Vertices() []models.Point {
	out := make([]models.Point, len(p.Segments))
	for i, seg := range p.Segments {
		out[i] = seg.From
	}
	return out
}

// TagIndex возвращает индекс отрезка с данным тегом.
func (p *Profile) TagIndex(tag string) (int, error) {
	i, ok := p.tags[tag]
	if !ok {
		return 0, fmt.Errorf("%w: %q in profile %s", ErrUnknownTag, tag, p.ID)
	}
	return i, nil
}

// Tags теги в порядке обхода.
func (p *Profile) Tags() []string {
	var out []string
	for _, seg := range p.Segments {
		if seg.Tag != "" {
			out = append(out, seg.Tag)
		}
	}
	return out
}

func (p *Profile) SegmentLength(tag string) (float64, error) {
	i, err := p.TagIndex(tag)
	if err != nil {
		return 0, err
	}
	return p.Segments[i].Length(), nil
}

// SignedArea площадь по формуле шнурков; отрицательная для обхода по часовой стрелке.
func (p *Profile) SignedArea() float64 {
	return signedArea(p.Vertices())
}

func (p *Profile) Area() float64 {
	return math.Abs(p.SignedArea())
}

func (p *Profile) Clockwise() bool {
	return p.SignedArea() < 0
}

func (p *Profile) Perimeter() float64 {
	var total float64
	for _, seg := range p.Segments {
		total += seg.Length()
	}
	return total
}

// OutwardNormal единичная внешняя нормаль отрезка i в плоскости эскиза.
func (p *Profile) OutwardNormal(i int) models.Point {
	d := p.Segments[i].Direction()
	l := math.Hypot(d.X, d.Y)
	if p.Clockwise() {
		return models.Point{X: -d.Y / l, Y: d.X / l}
	}
	return models.Point{X: d.Y / l, Y: -d.X / l}
}

// ContainsStrict истина, если точка лежит внутри контура дальше Epsilon от границы.
func (p *Profile) ContainsStrict(pt models.Point) bool {
	for _, seg := range p.Segments {
		if distanceToSegment(pt, seg.From, seg.To) <= Epsilon {
			return false
		}
	}
	return crossingNumber(p.Segments, pt)%2 == 1
}
