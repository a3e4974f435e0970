package sketch

import (
	"fmt"
	"math"

	"enclosure-designer/internal/designer/models"
)

// ============================================================
// Polygon helpers
// ============================================================

const crossEpsilon = 1e-12

func signedArea(points []models.Point) float64 {
	var sum float64
	for i, p := range points {
		q := points[(i+1)%len(points)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

func cross(a, b models.Point) float64 {
	return a.X*b.Y - a.Y*b.X
}

func dot(a, b models.Point) float64 {
	return a.X*b.X + a.Y*b.Y
}

func orientation(a, b, c models.Point) float64 {
	return cross(b.Sub(a), c.Sub(a))
}

func onSegment(a, b, p models.Point) bool {
	return p.X >= math.Min(a.X, b.X)-Epsilon && p.X <= math.Max(a.X, b.X)+Epsilon &&
		p.Y >= math.Min(a.Y, b.Y)-Epsilon && p.Y <= math.Max(a.Y, b.Y)+Epsilon
}

func opposite(a, b float64) bool {
	return (a > crossEpsilon && b < -crossEpsilon) || (a < -crossEpsilon && b > crossEpsilon)
}

// segmentsIntersect включает касание концами и коллинеарное перекрытие.
func segmentsIntersect(p1, p2, p3, p4 models.Point) bool {
	d1 := orientation(p3, p4, p1)
	d2 := orientation(p3, p4, p2)
	d3 := orientation(p1, p2, p3)
	d4 := orientation(p1, p2, p4)

	if opposite(d1, d2) && opposite(d3, d4) {
		return true
	}

	switch {
	case math.Abs(d1) <= crossEpsilon && onSegment(p3, p4, p1):
		return true
	case math.Abs(d2) <= crossEpsilon && onSegment(p3, p4, p2):
		return true
	case math.Abs(d3) <= crossEpsilon && onSegment(p1, p2, p3):
		return true
	case math.Abs(d4) <= crossEpsilon && onSegment(p1, p2, p4):
		return true
	}
	return false
}

// validateSimple отбрасывает вырожденные и самопересекающиеся контуры.
func validateSimple(segs []Segment) error {
	n := len(segs)

	points := make([]models.Point, n)
	for i, seg := range segs {
		points[i] = seg.From
	}
	if math.Abs(signedArea(points)) <= Epsilon {
		return fmt.Errorf("%w: profile encloses zero area", ErrOpenProfile)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := segs[i], segs[j]
			adjacent := j == i+1 || (i == 0 && j == n-1)
			if adjacent {
				// соседние отрезки не должны разворачиваться назад по той же прямой
				da, db := a.Direction(), b.Direction()
				if math.Abs(cross(da, db)) <= crossEpsilon && dot(da, db) < 0 {
					return fmt.Errorf("%w: segments %d and %d fold back on each other", ErrOpenProfile, i, j)
				}
				continue
			}
			if segmentsIntersect(a.From, a.To, b.From, b.To) {
				return fmt.Errorf("%w: segments %d and %d intersect", ErrOpenProfile, i, j)
			}
		}
	}
	return nil
}

func distanceToSegment(p, a, b models.Point) float64 {
	d := b.Sub(a)
	l2 := dot(d, d)
	if l2 == 0 {
		return p.Distance(a)
	}
	t := dot(p.Sub(a), d) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Distance(models.Point{X: a.X + t*d.X, Y: a.Y + t*d.Y})
}

func crossingNumber(segs []Segment, p models.Point) int {
	count := 0
	for _, seg := range segs {
		a, b := seg.From, seg.To
		if (a.Y > p.Y) == (b.Y > p.Y) {
			continue
		}
		x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
		if x > p.X {
			count++
		}
	}
	return count
}
