package solid

import (
	"fmt"
	"math"

	"enclosure-designer/internal/designer/sketch"
)

// ============================================================
// Extruder
// ============================================================

// Extrude выдавливает замкнутый профиль вдоль нормали его плоскости.
// Положительная длина идет по нормали, отрицательная против неё.
func Extrude(profile *sketch.Profile, length float64) (*Solid, error) {
	if profile == nil {
		return nil, fmt.Errorf("%w: nil profile", sketch.ErrOpenProfile)
	}
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return nil, fmt.Errorf("%w: length %g for %s", ErrDegenerateExtrusion, length, profile.ID)
	}
	if profile.Frame.Normal.Length() == 0 {
		return nil, fmt.Errorf("%w: plane of %s has no normal", ErrDegenerateExtrusion, profile.ID)
	}

	return &Solid{
		ID:      profile.ID,
		Profile: profile,
		Length:  length,
	}, nil
}
