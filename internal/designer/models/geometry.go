package models

import "math"

// ============================================================
// Geometry primitives
// ============================================================

// Point точка в локальной 2-D системе координат эскиза.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Vec3 точка или направление в пространстве модели.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

func (v Vec3) Scale(k float64) Vec3 {
	return Vec3{X: v.X * k, Y: v.Y * k, Z: v.Z * k}
}

func (v Vec3) Neg() Vec3 {
	return Vec3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Unit возвращает вектор единичной длины; нулевой вектор остается нулевым.
func (v Vec3) Unit() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// ============================================================
// Frame
// ============================================================

// Frame локальная система координат эскиза: начало, оси X/Y и нормаль.
// Нормаль не обязана совпадать с X×Y: у граней она всегда смотрит наружу тела,
// а оси эскиза наследуются от исходной плоскости.
type Frame struct {
	Name   string `json:"name"`
	Origin Vec3   `json:"origin"`
	XAxis  Vec3   `json:"xAxis"`
	YAxis  Vec3   `json:"yAxis"`
	Normal Vec3   `json:"normal"`
}

// ToWorld переводит локальную точку эскиза в координаты модели.
func (f Frame) ToWorld(p Point) Vec3 {
	return f.Origin.Add(f.XAxis.Scale(p.X)).Add(f.YAxis.Scale(p.Y))
}

// Shift сдвигает начало системы координат вдоль вектора.
func (f Frame) Shift(v Vec3) Frame {
	f.Origin = f.Origin.Add(v)
	return f
}

// Bounds axis-aligned bounding box в координатах модели.
type Bounds struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

// EmptyBounds возвращает "вывернутый" box, который расширяется первой же точкой.
func EmptyBounds() Bounds {
	inf := math.Inf(1)
	return Bounds{
		Min: Vec3{X: inf, Y: inf, Z: inf},
		Max: Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

func (b Bounds) Extend(v Vec3) Bounds {
	b.Min = Vec3{X: math.Min(b.Min.X, v.X), Y: math.Min(b.Min.Y, v.Y), Z: math.Min(b.Min.Z, v.Z)}
	b.Max = Vec3{X: math.Max(b.Max.X, v.X), Y: math.Max(b.Max.Y, v.Y), Z: math.Max(b.Max.Z, v.Z)}
	return b
}

func (b Bounds) Union(o Bounds) Bounds {
	return b.Extend(o.Min).Extend(o.Max)
}

func (b Bounds) IsEmpty() bool {
	return b.Min.X > b.Max.X
}
