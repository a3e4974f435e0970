package sketch

import (
	"fmt"
	"math"

	"enclosure-designer/internal/designer/models"
)

// ============================================================
// Profile Builder
// ============================================================

// Builder накапливает контур из последовательных примитивов, двигая "перо".
// Первая ошибка запоминается, последующие вызовы игнорируются, а Close её возвращает.
type Builder struct {
	id       string
	frame    models.Frame
	start    models.Point
	pen      models.Point
	segments []Segment
	tags     map[string]int
	err      error
}

// StartProfile начинает контур на плоскости frame в точке start.
func StartProfile(frame models.Frame, start models.Point) *Builder {
	return &Builder{
		id:    "profile",
		frame: frame,
		start: start,
		pen:   start,
		tags:  make(map[string]int),
	}
}

// Named задает идентификатор профиля, который попадет в ссылки на рёбра.
func (b *Builder) Named(id string) *Builder {
	b.id = id
	return b
}

func (b *Builder) Start() models.Point { return b.start }
func (b *Builder) StartX() float64     { return b.start.X }
func (b *Builder) StartY() float64     { return b.start.Y }
func (b *Builder) Pen() models.Point   { return b.pen }
func (b *Builder) Err() error          { return b.err }

// LineRelative сдвигает перо на (dx, dy).
func (b *Builder) LineRelative(dx, dy float64) *Builder {
	return b.lineTo(KindLineRelative, b.pen.Add(dx, dy))
}

// LineAbsolute ведет перо в точку (x, y) эскиза.
func (b *Builder) LineAbsolute(x, y float64) *Builder {
	return b.lineTo(KindLineAbsolute, models.Point{X: x, Y: y})
}

// AngledLineToX ведет перо под углом angle до прямой x = target.
func (b *Builder) AngledLineToX(angle, target float64) *Builder {
	if b.err != nil {
		return b
	}
	dx, dy := Direction(angle)
	if !finite(angle, target) || math.Abs(dx) < crossEpsilon {
		b.err = fmt.Errorf("%w: line at %g° never reaches x = %g", ErrUnreachableTarget, angle, target)
		return b
	}
	t := (target - b.pen.X) / dx
	return b.lineTo(KindAngledToX, models.Point{X: target, Y: b.pen.Y + t*dy})
}

// AngledLineToY ведет перо под углом angle до прямой y = target.
func (b *Builder) AngledLineToY(angle, target float64) *Builder {
	if b.err != nil {
		return b
	}
	dx, dy := Direction(angle)
	if !finite(angle, target) || math.Abs(dy) < crossEpsilon {
		b.err = fmt.Errorf("%w: line at %g° never reaches y = %g", ErrUnreachableTarget, angle, target)
		return b
	}
	t := (target - b.pen.Y) / dy
	return b.lineTo(KindAngledToY, models.Point{X: b.pen.X + t*dx, Y: target})
}

// Tag привязывает имя к последнему отрезку.
func (b *Builder) Tag(name string) *Builder {
	if b.err != nil || name == "" {
		return b
	}
	if len(b.segments) == 0 {
		b.err = fmt.Errorf("%w: no segment to bind %q to", ErrUnknownTag, name)
		return b
	}
	last := len(b.segments) - 1
	if _, dup := b.tags[name]; dup {
		b.err = fmt.Errorf("%w: %q", ErrDuplicateTag, name)
		return b
	}
	if b.segments[last].Tag != "" {
		b.err = fmt.Errorf("%w: segment %d already tagged %q", ErrDuplicateTag, last, b.segments[last].Tag)
		return b
	}
	b.segments[last].Tag = name
	b.tags[name] = last
	return b
}

// SegmentLength длина уже нарисованного отрезка по тегу.
func (b *Builder) SegmentLength(tag string) (float64, error) {
	seg, err := b.segment(tag)
	if err != nil {
		return 0, err
	}
	return seg.Length(), nil
}

// SegmentStart начальная точка отрезка по тегу.
func (b *Builder) SegmentStart(tag string) (models.Point, error) {
	seg, err := b.segment(tag)
	if err != nil {
		return models.Point{}, err
	}
	return seg.From, nil
}

// SegmentEnd конечная точка отрезка по тегу.
func (b *Builder) SegmentEnd(tag string) (models.Point, error) {
	seg, err := b.segment(tag)
	if err != nil {
		return models.Point{}, err
	}
	return seg.To, nil
}

// Close замыкает контур. Если перо не в начальной точке, добавляется замыкающий отрезок;
// tag (может быть пустым) привязывается к последнему отрезку контура.
func (b *Builder) Close(tag string) (*Profile, error) {
	if b.err != nil {
		return nil, b.err
	}

	switch d := b.pen.Distance(b.start); {
	case d > Epsilon:
		b.lineTo(KindClose, b.start)
	case d > 0 && len(b.segments) > 0:
		b.segments[len(b.segments)-1].To = b.start
		b.pen = b.start
	}

	b.Tag(tag)
	if b.err != nil {
		return nil, b.err
	}

	return NewProfile(b.id, b.frame, b.segments)
}

func (b *Builder) lineTo(kind SegmentKind, to models.Point) *Builder {
	if b.err != nil {
		return b
	}
	if !finite(to.X, to.Y) {
		b.err = fmt.Errorf("%w: %s to non-finite point", ErrOpenProfile, kind)
		return b
	}
	b.segments = append(b.segments, Segment{
		Kind: kind,
		From: b.pen,
		To:   to,
	})
	b.pen = to
	return b
}

func (b *Builder) segment(tag string) (Segment, error) {
	i, ok := b.tags[tag]
	if !ok {
		return Segment{}, fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	return b.segments[i], nil
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
