package mapper

import (
	"fmt"
	"strconv"
	"strings"

	"enclosure-designer/internal/designer/composer"
	"enclosure-designer/internal/designer/models"
)

// ============================================================
// Renderer
// ============================================================

const (
	pixelsPerUnit = 100.0
	margin        = 0.1 // поле вокруг габарита, в единицах модели
)

// Цвета по виду элемента, если у тела нет своего Appearance.
var kindStyle = map[composer.Kind]struct{ fill, stroke string }{
	composer.KindAdditive: {fill: "#d9d9d9", stroke: "#333"},
	composer.KindVoid:     {fill: "none", stroke: "#1f77b4"},
}

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render собирает SVG вида сверху: контур каждого элемента в проекции на XY.
func (r *Renderer) Render(a *composer.Assembly) (string, error) {
	if a == nil || len(a.Features) == 0 {
		return "", fmt.Errorf("assembly is empty")
	}

	bounds := a.Bounds()
	minX := bounds.Min.X - margin
	maxY := bounds.Max.Y + margin
	width := bounds.Max.X - bounds.Min.X + 2*margin
	height := bounds.Max.Y - bounds.Min.Y + 2*margin

	// SVG ось Y направлена вниз
	project := func(v models.Vec3) models.Point {
		return models.Point{X: v.X - minX, Y: maxY - v.Y}
	}

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" data-unit="%s">`,
		formatFloat(width*pixelsPerUnit), formatFloat(height*pixelsPerUnit),
		formatFloat(width), formatFloat(height), a.Parameters.Unit))
	builder.WriteString("\n")

	for _, f := range a.Features {
		builder.WriteString("  ")
		builder.WriteString(r.renderFeature(f, project))
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String(), nil
}

func (r *Renderer) renderFeature(f composer.Feature, project func(models.Vec3) models.Point) string {
	style := kindStyle[f.Kind]
	if app := f.Solid.Appearance; app != nil {
		style.fill = app.Color
	}

	// верхний торец тела
	face := "end"
	if f.Kind == composer.KindVoid {
		face = "start"
	}
	points := f.Solid.CapVertices(face)

	var path strings.Builder
	path.WriteString(`<path id="`)
	path.WriteString(f.Name)
	path.WriteString(`" data-kind="`)
	path.WriteString(string(f.Kind))
	path.WriteString(`" d="M `)
	path.WriteString(formatPoint(project(points[0])))
	for _, p := range points[1:] {
		path.WriteString(" L ")
		path.WriteString(formatPoint(project(p)))
	}
	path.WriteString(fmt.Sprintf(` Z" fill="%s" stroke="%s" stroke-width="0.01" />`, style.fill, style.stroke))
	return path.String()
}

// ============================================================
// Helpers
// ============================================================

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}

func formatPoint(p models.Point) string {
	return formatFloat(p.X) + " " + formatFloat(p.Y)
}
