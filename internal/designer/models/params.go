package models

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

// ============================================================
// Design Parameters
// ============================================================

var ErrInvalidParameter = errors.New("invalid parameter")

// Имена параметров в порядке объявления.
const (
	ParamHeight           = "height"
	ParamWidth            = "width"
	ParamThickness        = "thickness"
	ParamChamferLength    = "chamferLength"
	ParamOffset           = "offset"
	ParamScreenWidth      = "screenWidth"
	ParamScreenHeight     = "screenHeight"
	ParamScreenYPosition  = "screenYPosition"
	ParamScreenDepth      = "screenDepth"
	ParamSpeakerBoxWidth  = "speakerBoxWidth"
	ParamSpeakerBoxHeight = "speakerBoxHeight"
)

// ParameterNames перечисляет все параметры корпуса.
var ParameterNames = []string{
	ParamHeight,
	ParamWidth,
	ParamThickness,
	ParamChamferLength,
	ParamOffset,
	ParamScreenWidth,
	ParamScreenHeight,
	ParamScreenYPosition,
	ParamScreenDepth,
	ParamSpeakerBoxWidth,
	ParamSpeakerBoxHeight,
}

// Units допустимые базовые единицы длины.
// Размеры не пересчитываются, единица только записывается вместе с проектом.
var Units = []string{"mm", "cm", "m", "in", "ft"}

const DefaultUnit = "in"

// Parameters набор именованных размеров, из которого строится весь корпус.
// Значения передаются по значению и не меняются после начала построения.
type Parameters struct {
	Unit             string  `json:"unit" yaml:"unit"`
	Height           float64 `json:"height" yaml:"height"`
	Width            float64 `json:"width" yaml:"width"`
	Thickness        float64 `json:"thickness" yaml:"thickness"`
	ChamferLength    float64 `json:"chamferLength" yaml:"chamferLength"`
	Offset           float64 `json:"offset" yaml:"offset"`
	ScreenWidth      float64 `json:"screenWidth" yaml:"screenWidth"`
	ScreenHeight     float64 `json:"screenHeight" yaml:"screenHeight"`
	ScreenYPosition  float64 `json:"screenYPosition" yaml:"screenYPosition"`
	ScreenDepth      float64 `json:"screenDepth" yaml:"screenDepth"`
	SpeakerBoxWidth  float64 `json:"speakerBoxWidth" yaml:"speakerBoxWidth"`
	SpeakerBoxHeight float64 `json:"speakerBoxHeight" yaml:"speakerBoxHeight"`
}

// DefaultParameters эталонная рация.
func DefaultParameters() Parameters {
	return Parameters{
		Unit:             DefaultUnit,
		Height:           1.5,
		Width:            3.0,
		Thickness:        0.5,
		ChamferLength:    0.1,
		Offset:           0.05,
		ScreenWidth:      1.0,
		ScreenHeight:     0.4,
		ScreenYPosition:  0.3,
		ScreenDepth:      0.05,
		SpeakerBoxWidth:  1.0,
		SpeakerBoxHeight: 0.3,
	}
}

func (p *Parameters) fields() map[string]*float64 {
	return map[string]*float64{
		ParamHeight:           &p.Height,
		ParamWidth:            &p.Width,
		ParamThickness:        &p.Thickness,
		ParamChamferLength:    &p.ChamferLength,
		ParamOffset:           &p.Offset,
		ParamScreenWidth:      &p.ScreenWidth,
		ParamScreenHeight:     &p.ScreenHeight,
		ParamScreenYPosition:  &p.ScreenYPosition,
		ParamScreenDepth:      &p.ScreenDepth,
		ParamSpeakerBoxWidth:  &p.SpeakerBoxWidth,
		ParamSpeakerBoxHeight: &p.SpeakerBoxHeight,
	}
}

// Get возвращает значение параметра по имени.
func (p Parameters) Get(name string) (float64, bool) {
	ptr, ok := p.fields()[name]
	if !ok {
		return 0, false
	}
	return *ptr, true
}

// Set присваивает значение параметру по имени.
func (p *Parameters) Set(name string, value float64) error {
	ptr, ok := p.fields()[name]
	if !ok {
		return fmt.Errorf("%w: unknown parameter %q", ErrInvalidParameter, name)
	}
	*ptr = value
	return nil
}

// Values возвращает плоскую карту name -> value.
func (p Parameters) Values() map[string]float64 {
	out := make(map[string]float64, len(ParameterNames))
	for name, ptr := range p.fields() {
		out[name] = *ptr
	}
	return out
}

// Validate проверяет структурные инварианты: известная единица и положительные конечные размеры.
// Геометрические ограничения (фаска, вписывание экрана) проверяет само построение.
func (p Parameters) Validate() error {
	unit := strings.ToLower(p.Unit)
	if !slices.Contains(Units, unit) {
		return fmt.Errorf("%w: unknown unit %q", ErrInvalidParameter, p.Unit)
	}

	for _, name := range ParameterNames {
		v, _ := p.Get(name)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidParameter, name)
		}
		if v <= 0 {
			if name == ParamOffset {
				return fmt.Errorf("%w: offset must be positive, zero-area inset", ErrInvalidParameter)
			}
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidParameter, name, v)
		}
	}
	return nil
}
