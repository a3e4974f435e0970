package parser

import (
	"strings"
	"testing"

	"enclosure-designer/internal/designer/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParameters_Text(t *testing.T) {
	src := `
# walkie talkie
const height = 1.5
width = 3   // full width
thickness=0.5
unit = "MM"
`
	p, err := ParseParameters(strings.NewReader(src), FormatText, models.DefaultParameters())
	require.NoError(t, err)

	assert.Equal(t, "mm", p.Unit)
	assert.Equal(t, 1.5, p.Height)
	assert.Equal(t, 3.0, p.Width)
	assert.Equal(t, 0.5, p.Thickness)
	// не заданные имена берутся из base
	assert.Equal(t, models.DefaultParameters().ScreenWidth, p.ScreenWidth)
}

func TestParseParameters_JSON(t *testing.T) {
	src := `{"unit": "cm", "height": 4, "chamferLength": 0.25}`
	p, err := ParseParameters(strings.NewReader(src), FormatJSON, models.DefaultParameters())
	require.NoError(t, err)

	assert.Equal(t, "cm", p.Unit)
	assert.Equal(t, 4.0, p.Height)
	assert.Equal(t, 0.25, p.ChamferLength)
}

func TestParseParameters_YAML(t *testing.T) {
	src := "unit: in\nscreenWidth: 1.25\nspeakerBoxHeight: 1\n"
	p, err := ParseParameters(strings.NewReader(src), FormatYAML, models.DefaultParameters())
	require.NoError(t, err)

	assert.Equal(t, "in", p.Unit)
	assert.Equal(t, 1.25, p.ScreenWidth)
	assert.Equal(t, 1.0, p.SpeakerBoxHeight)
}

func TestParseParameters_EmptyBaseGetsDefaultUnit(t *testing.T) {
	p, err := ParseParameters(strings.NewReader("height = 2"), FormatText, models.Parameters{})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultUnit, p.Unit)
	assert.Equal(t, 2.0, p.Height)
}

func TestParseParameters_Errors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		format string
	}{
		{name: "unknown text name", src: "antenna = 2", format: FormatText},
		{name: "not an assignment", src: "height 2", format: FormatText},
		{name: "not a number", src: "height = tall", format: FormatText},
		{name: "assigned twice", src: "height = 1\nheight = 2", format: FormatText},
		{name: "unknown json name", src: `{"antenna": 2}`, format: FormatJSON},
		{name: "broken json", src: `{"height": }`, format: FormatJSON},
		{name: "json unit not a string", src: `{"unit": 3}`, format: FormatJSON},
		{name: "yaml list value", src: "height: [1, 2]", format: FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseParameters(strings.NewReader(tt.src), tt.format, models.DefaultParameters())
			assert.ErrorIs(t, err, models.ErrInvalidParameter)
		})
	}
}

func TestParseParameters_UnsupportedFormat(t *testing.T) {
	_, err := ParseParameters(strings.NewReader(""), "toml", models.DefaultParameters())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, DetectFormat("radio.JSON", ""))
	assert.Equal(t, FormatYAML, DetectFormat("radio.yml", ""))
	assert.Equal(t, FormatText, DetectFormat("radio.kcl", "application/json"))
	assert.Equal(t, FormatYAML, DetectFormat("", "application/x-yaml"))
	assert.Equal(t, FormatJSON, DetectFormat("blob", "application/json; charset=utf-8"))
	assert.Equal(t, FormatText, DetectFormat("", ""))
}
