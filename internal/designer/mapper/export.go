package mapper

import (
	"encoding/json"
	"fmt"

	"enclosure-designer/internal/designer/composer"
	"enclosure-designer/internal/designer/models"
	"enclosure-designer/internal/designer/sketch"
	"enclosure-designer/internal/designer/solid"
)

// ============================================================
// Assembly document
// ============================================================

type Document struct {
	Unit       string            `json:"unit"`
	Parameters models.Parameters `json:"parameters"`
	Features   []FeatureDoc      `json:"features"`
	Bounds     models.Bounds     `json:"bounds"`
	NetVolume  float64           `json:"netVolume"`
}

type FeatureDoc struct {
	Name       string            `json:"name"`
	Kind       composer.Kind     `json:"kind"`
	Anchor     string            `json:"anchor"`
	Profile    ProfileDoc        `json:"profile"`
	Length     float64           `json:"length"`
	Faces      []string          `json:"faces"`
	Bevels     []solid.Bevel     `json:"bevels,omitempty"`
	Appearance *solid.Appearance `json:"appearance,omitempty"`
	Bounds     models.Bounds     `json:"bounds"`
	Volume     float64           `json:"volume"`
}

type ProfileDoc struct {
	ID        string           `json:"id"`
	Frame     models.Frame     `json:"frame"`
	Segments  []sketch.Segment `json:"segments"`
	Area      float64          `json:"area"`
	Perimeter float64          `json:"perimeter"`
}

// Export переводит сборку в JSON-документ ответа и хранилища.
func Export(a *composer.Assembly) Document {
	doc := Document{
		Unit:       a.Parameters.Unit,
		Parameters: a.Parameters,
		Features:   make([]FeatureDoc, 0, len(a.Features)),
		Bounds:     a.Bounds(),
		NetVolume:  a.NetVolume(),
	}

	for _, f := range a.Features {
		s := f.Solid
		doc.Features = append(doc.Features, FeatureDoc{
			Name:   f.Name,
			Kind:   f.Kind,
			Anchor: f.Anchor,
			Profile: ProfileDoc{
				ID:        s.Profile.ID,
				Frame:     s.Profile.Frame,
				Segments:  s.Profile.Segments,
				Area:      s.Profile.Area(),
				Perimeter: s.Profile.Perimeter(),
			},
			Length:     s.Length,
			Faces:      s.Faces(),
			Bevels:     s.Bevels,
			Appearance: s.Appearance,
			Bounds:     s.Bounds(),
			Volume:     s.Volume(),
		})
	}
	return doc
}

// Marshal сериализует документ сборки для хранилища.
func Marshal(doc Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal assembly: %w", err)
	}
	return data, nil
}
