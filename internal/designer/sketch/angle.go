package sketch

import "math"

// NormalizeAngle приводит угол в градусах к диапазону [0, 360).
func NormalizeAngle(angle float64) float64 {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// Direction направление луча под углом angle от локальной оси X.
// Для углов, кратных 45°, компоненты точные (0 или ±1) и вектор не нормирован:
// так -135° и -225° дают ровно зеркальные шаги, и контур замыкается без погрешности.
func Direction(angle float64) (dx, dy float64) {
	switch NormalizeAngle(angle) {
	case 0:
		return 1, 0
	case 45:
		return 1, 1
	case 90:
		return 0, 1
	case 135:
		return -1, 1
	case 180:
		return -1, 0
	case 225:
		return -1, -1
	case 270:
		return 0, -1
	case 315:
		return 1, -1
	}
	rad := angle * math.Pi / 180
	return math.Cos(rad), math.Sin(rad)
}
