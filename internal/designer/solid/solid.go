// Package solid реализует минимальное ядро построения: плоскости и грани как
// системы координат, выдавливание замкнутого профиля на знаковую длину и
// симметричную фаску вертикальных рёбер.
//
// Рёбра адресуются символически (EdgeRef: профиль + индекс отрезка + вид ребра)
// и разрешаются лениво по реализованной геометрии, поэтому выбор рёбер для фаски
// не зависит от конкретных координат.
package solid

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"enclosure-designer/internal/designer/models"
	"enclosure-designer/internal/designer/sketch"
)

// ============================================================
// Errors
// ============================================================

var (
	ErrUnknownFace         = errors.New("unknown face")
	ErrUnknownPlane        = errors.New("unknown plane")
	ErrDegenerateExtrusion = errors.New("degenerate extrusion")
	ErrChamferTooLarge     = errors.New("chamfer too large")
	ErrInvalidChamfer      = errors.New("invalid chamfer")
	ErrUnknownEdge         = errors.New("unknown edge")
)

// Имена торцевых граней.
const (
	FaceStart = "start"
	FaceEnd   = "end"
	// FaceFloor дно выемки, есть только у тела с отрицательной длиной.
	FaceFloor = "floor"
)

// ============================================================
// Edges
// ============================================================

type EdgeKind string

const (
	// EdgeStart ребро отрезка на стартовом торце (в плоскости эскиза).
	EdgeStart EdgeKind = "start"
	// EdgeEnd ребро отрезка на конечном торце.
	EdgeEnd EdgeKind = "end"
	// EdgeSwept боковое ребро, заметаемое дальней вершиной отрезка.
	EdgeSwept EdgeKind = "swept"
)

// EdgeRef символическая ссылка на ребро тела.
type EdgeRef struct {
	Profile string   `json:"profile"`
	Segment int      `json:"segment"`
	Kind    EdgeKind `json:"kind"`
}

func (r EdgeRef) String() string {
	return fmt.Sprintf("%s#%d/%s", r.Profile, r.Segment, r.Kind)
}

// Edge реализованное ребро в координатах модели.
type Edge struct {
	Ref  EdgeRef     `json:"ref"`
	Tag  string      `json:"tag,omitempty"`
	From models.Vec3 `json:"from"`
	To   models.Vec3 `json:"to"`
}

func (e Edge) Length() float64 {
	return e.To.Sub(e.From).Length()
}

// ============================================================
// Solid
// ============================================================

// Appearance косметический атрибут для рендера, на геометрию не влияет.
type Appearance struct {
	Color     string  `json:"color"`
	Metalness float64 `json:"metalness"`
	Roughness float64 `json:"roughness"`
}

// Bevel запись о снятой фаске.
type Bevel struct {
	Source  EdgeRef `json:"source"`
	Length  float64 `json:"length"`
	Segment int     `json:"segment"`
}

// Solid тело, полученное выдавливанием профиля вдоль нормали его плоскости.
type Solid struct {
	ID         string
	Profile    *sketch.Profile
	Length     float64
	Appearance *Appearance
	Bevels     []Bevel
}

// Direction вектор выдавливания (нормаль плоскости, умноженная на длину).
func (s *Solid) Direction() models.Vec3 {
	return s.Profile.Frame.Normal.Scale(s.Length)
}

func (s *Solid) sweepSign() float64 {
	if s.Length < 0 {
		return -1
	}
	return 1
}

// Face возвращает систему координат именованной грани: start, end, floor или тег бокового отрезка.
func (s *Solid) Face(name string) (models.Frame, error) {
	frame := s.Profile.Frame
	n := frame.Normal
	sign := s.sweepSign()

	switch strings.ToLower(name) {
	case FaceStart:
		return models.Frame{
			Name:   s.ID + ":" + FaceStart,
			Origin: frame.Origin,
			XAxis:  frame.XAxis,
			YAxis:  frame.YAxis,
			Normal: n.Scale(-sign),
		}, nil
	case FaceEnd:
		return models.Frame{
			Name:   s.ID + ":" + FaceEnd,
			Origin: frame.Origin.Add(s.Direction()),
			XAxis:  frame.XAxis,
			YAxis:  frame.YAxis,
			Normal: n.Scale(sign),
		}, nil
	case FaceFloor:
		if s.Length >= 0 {
			return models.Frame{}, fmt.Errorf("%w: %q on %s, not a cut", ErrUnknownFace, name, s.ID)
		}
		// нормаль смотрит из материала в выемку, отрицательная длина режет глубже
		floor := frame.Shift(s.Direction())
		floor.Name = s.ID + ":" + FaceFloor
		return floor, nil
	}

	i, err := s.Profile.TagIndex(name)
	if err != nil {
		return models.Frame{}, fmt.Errorf("%w: %q on %s", ErrUnknownFace, name, s.ID)
	}
	return s.sideFace(i), nil
}

// sideFace боковая грань отрезка i: X вдоль отрезка, Y вдоль выдавливания, нормаль наружу.
func (s *Solid) sideFace(i int) models.Frame {
	frame := s.Profile.Frame
	seg := s.Profile.Segments[i]
	out := s.Profile.OutwardNormal(i)

	from := frame.ToWorld(seg.From)
	to := frame.ToWorld(seg.To)

	return models.Frame{
		Name:   fmt.Sprintf("%s:%s", s.ID, seg.Tag),
		Origin: from,
		XAxis:  to.Sub(from).Unit(),
		YAxis:  frame.Normal.Scale(s.sweepSign()),
		Normal: frame.XAxis.Scale(out.X).Add(frame.YAxis.Scale(out.Y)),
	}
}

// Faces имена всех адресуемых граней.
func (s *Solid) Faces() []string {
	faces := []string{FaceStart, FaceEnd}
	if s.Length < 0 {
		faces = append(faces, FaceFloor)
	}
	return append(faces, s.Profile.Tags()...)
}

// Edge разрешает символическую ссылку в ребро.
func (s *Solid) Edge(ref EdgeRef) (Edge, error) {
	n := s.Profile.Len()
	if ref.Profile != s.Profile.ID || ref.Segment < 0 || ref.Segment >= n {
		return Edge{}, fmt.Errorf("%w: %s on %s", ErrUnknownEdge, ref, s.ID)
	}

	frame := s.Profile.Frame
	seg := s.Profile.Segments[ref.Segment]
	dir := s.Direction()

	from := frame.ToWorld(seg.From)
	to := frame.ToWorld(seg.To)

	switch ref.Kind {
	case EdgeStart:
		return Edge{Ref: ref, Tag: seg.Tag, From: from, To: to}, nil
	case EdgeEnd:
		return Edge{Ref: ref, Tag: seg.Tag, From: from.Add(dir), To: to.Add(dir)}, nil
	case EdgeSwept:
		return Edge{Ref: ref, From: to, To: to.Add(dir)}, nil
	}
	return Edge{}, fmt.Errorf("%w: %s on %s", ErrUnknownEdge, ref, s.ID)
}

// Edges все рёбра тела в стабильном порядке: для каждого отрезка start, end, swept.
func (s *Solid) Edges() []Edge {
	out := make([]Edge, 0, 3*s.Profile.Len())
	for i := 0; i < s.Profile.Len(); i++ {
		for _, kind := range []EdgeKind{EdgeStart, EdgeEnd, EdgeSwept} {
			e, _ := s.Edge(EdgeRef{Profile: s.Profile.ID, Segment: i, Kind: kind})
			out = append(out, e)
		}
	}
	return out
}

// TaggedEdge ребро отрезка с тегом на стартовом торце.
func (s *Solid) TaggedEdge(tag string) (EdgeRef, error) {
	i, err := s.Profile.TagIndex(tag)
	if err != nil {
		return EdgeRef{}, err
	}
	return EdgeRef{Profile: s.Profile.ID, Segment: i, Kind: EdgeStart}, nil
}

// NextAdjacentEdge боковое ребро в дальней вершине отрезка с тегом: следующее ребро
// по обходу контура. Именно его скругляет фаска угла корпуса.
func (s *Solid) NextAdjacentEdge(tag string) (EdgeRef, error) {
	i, err := s.Profile.TagIndex(tag)
	if err != nil {
		return EdgeRef{}, err
	}
	return EdgeRef{Profile: s.Profile.ID, Segment: i, Kind: EdgeSwept}, nil
}

// CapVertices вершины торца в координатах модели.
func (s *Solid) CapVertices(face string) []models.Vec3 {
	frame := s.Profile.Frame
	var shift models.Vec3
	if strings.ToLower(face) == FaceEnd {
		shift = s.Direction()
	}
	out := make([]models.Vec3, 0, s.Profile.Len())
	for _, p := range s.Profile.Vertices() {
		out = append(out, frame.ToWorld(p).Add(shift))
	}
	return out
}

func (s *Solid) Bounds() models.Bounds {
	b := models.EmptyBounds()
	for _, v := range s.CapVertices(FaceStart) {
		b = b.Extend(v)
	}
	for _, v := range s.CapVertices(FaceEnd) {
		b = b.Extend(v)
	}
	return b
}

// Volume объем призмы: площадь профиля на модуль длины.
func (s *Solid) Volume() float64 {
	return s.Profile.Area() * math.Abs(s.Length) * s.Profile.Frame.Normal.Length()
}

// WithAppearance возвращает копию тела с косметическим атрибутом.
func (s *Solid) WithAppearance(a Appearance) *Solid {
	cp := *s
	cp.Appearance = &a
	return &cp
}
