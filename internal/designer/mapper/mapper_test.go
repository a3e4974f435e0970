package mapper

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"enclosure-designer/internal/designer/composer"
	"enclosure-designer/internal/designer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenario(t *testing.T) *composer.Assembly {
	t.Helper()
	a, err := composer.Build(models.DefaultParameters())
	require.NoError(t, err)
	return a
}

func TestRender_TopView(t *testing.T) {
	svg, err := NewRenderer().Render(scenario(t))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(svg, `<?xml`))
	assert.Contains(t, svg, `viewBox="0 0 3.2 1.7"`)
	assert.Contains(t, svg, `data-unit="in"`)
	for _, name := range []string{"body", "indentation", "screen", "speaker"} {
		assert.Contains(t, svg, `<path id="`+name+`"`)
	}
	assert.Contains(t, svg, `fill="#1A1A1A"`)
	assert.Contains(t, svg, `data-kind="void"`)
	assert.Equal(t, 4, strings.Count(svg, "<path"))
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
}

func TestRender_EmptyAssembly(t *testing.T) {
	_, err := NewRenderer().Render(&composer.Assembly{})
	assert.Error(t, err)

	_, err = NewRenderer().Render(nil)
	assert.Error(t, err)
}

func TestExport_Document(t *testing.T) {
	a := scenario(t)
	doc := Export(a)

	assert.Equal(t, "in", doc.Unit)
	assert.Equal(t, a.NetVolume(), doc.NetVolume)
	require.Len(t, doc.Features, 4)

	body := doc.Features[0]
	assert.Equal(t, composer.FeatureBody, body.Name)
	assert.Len(t, body.Bevels, 4)
	assert.Len(t, body.Profile.Segments, 8)
	assert.Equal(t, 0.5, body.Length)
	assert.InDelta(t, 9-8*0.1+4*0.1*math.Sqrt2, body.Profile.Perimeter, 1e-12)
	assert.Contains(t, doc.Features[1].Faces, "floor")

	speaker := doc.Features[3]
	require.NotNil(t, speaker.Appearance)
	assert.Equal(t, "#1A1A1A", speaker.Appearance.Color)
	assert.Equal(t, -composer.SpeakerDepth, speaker.Length)
}

func TestMarshal_RoundTripsThroughJSON(t *testing.T) {
	data, err := Marshal(Export(scenario(t)))
	require.NoError(t, err)

	var doc struct {
		Unit     string `json:"unit"`
		Features []struct {
			Name    string `json:"name"`
			Kind    string `json:"kind"`
			Profile struct {
				Segments []struct {
					Kind string `json:"kind"`
					Tag  string `json:"tag"`
				} `json:"segments"`
			} `json:"profile"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "in", doc.Unit)
	require.Len(t, doc.Features, 4)
	assert.Equal(t, "void", doc.Features[2].Kind)
	assert.Equal(t, "screenTop", doc.Features[2].Profile.Segments[0].Tag)
	assert.Equal(t, "chamfer", doc.Features[0].Profile.Segments[1].Kind)
}
