package solid

import (
	"fmt"
	"strings"

	"enclosure-designer/internal/designer/models"
)

// ============================================================
// Anchor Resolver
// ============================================================

// Базовые плоскости построения.
const (
	PlaneXY = "XY"
	PlaneXZ = "XZ"
	PlaneYZ = "YZ"
)

var basePlanes = map[string]models.Frame{
	PlaneXY: {
		Name:   PlaneXY,
		XAxis:  models.Vec3{X: 1},
		YAxis:  models.Vec3{Y: 1},
		Normal: models.Vec3{Z: 1},
	},
	PlaneXZ: {
		Name:   PlaneXZ,
		XAxis:  models.Vec3{X: 1},
		YAxis:  models.Vec3{Z: 1},
		Normal: models.Vec3{Y: -1},
	},
	PlaneYZ: {
		Name:   PlaneYZ,
		XAxis:  models.Vec3{Y: 1},
		YAxis:  models.Vec3{Z: 1},
		Normal: models.Vec3{X: 1},
	},
}

// AnchorPlane возвращает систему координат базовой плоскости.
// Префикс "-" разворачивает нормаль ("-XY").
func AnchorPlane(name string) (models.Frame, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	flip := strings.HasPrefix(key, "-")
	key = strings.TrimPrefix(key, "-")

	frame, ok := basePlanes[key]
	if !ok {
		return models.Frame{}, fmt.Errorf("%w: %q", ErrUnknownPlane, name)
	}
	if flip {
		frame.Name = "-" + frame.Name
		frame.Normal = frame.Normal.Neg()
	}
	return frame, nil
}

// AnchorFace возвращает систему координат грани ранее построенного тела.
func AnchorFace(s *Solid, face string) (models.Frame, error) {
	if s == nil {
		return models.Frame{}, fmt.Errorf("%w: %q on nil solid", ErrUnknownFace, face)
	}
	return s.Face(face)
}
