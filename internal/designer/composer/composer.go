package composer

import (
	"errors"
	"fmt"

	"enclosure-designer/internal/designer/models"
	"enclosure-designer/internal/designer/solid"
)

// ============================================================
// Feature Composer
// ============================================================

var ErrDoesNotFit = errors.New("feature does not fit")

// Имена элементов в порядке построения.
const (
	FeatureBody        = "body"
	FeatureIndentation = "indentation"
	FeatureScreen      = "screen"
	FeatureSpeaker     = "speaker"
)

// Шаги внутри элемента, попадают в BuildError.
const (
	StepValidate = "validate"
	StepAnchor   = "anchor"
	StepSketch   = "sketch"
	StepExtrude  = "extrude"
	StepChamfer  = "chamfer"
	StepFit      = "fit"
)

// Постоянные размеры, не входящие в параметры.
const (
	IndentationDepth = 0.0625
	SpeakerDepth     = 0.03125
	SpeakerMargin    = 0.1
)

// SpeakerAppearance цвет решетки динамика.
var SpeakerAppearance = solid.Appearance{
	Color:     "#1A1A1A",
	Metalness: 90,
	Roughness: 90,
}

// Kind тип элемента: материал корпуса или выемка в нём.
type Kind string

const (
	KindAdditive Kind = "additive"
	KindVoid     Kind = "void"
)

// Feature именованный шаг построения, владеющий одним телом.
type Feature struct {
	Name   string
	Kind   Kind
	Anchor string
	Solid  *solid.Solid
}

// Assembly итог построения: все элементы в порядке зависимостей.
type Assembly struct {
	Parameters models.Parameters
	Features   []Feature
}

// Feature возвращает элемент по имени.
func (a *Assembly) Feature(name string) (Feature, bool) {
	for _, f := range a.Features {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// NetVolume объем материала: тело минус выемки.
func (a *Assembly) NetVolume() float64 {
	var total float64
	for _, f := range a.Features {
		switch f.Kind {
		case KindAdditive:
			total += f.Solid.Volume()
		case KindVoid:
			total -= f.Solid.Volume()
		}
	}
	return total
}

// Bounds общий габарит сборки.
func (a *Assembly) Bounds() models.Bounds {
	b := models.EmptyBounds()
	for _, f := range a.Features {
		b = b.Union(f.Solid.Bounds())
	}
	return b
}

// ============================================================
// Errors
// ============================================================

// BuildError указывает, на каком элементе и шаге нарушено ограничение.
type BuildError struct {
	Feature string
	Step    string
	Err     error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build %s: %s: %v", e.Feature, e.Step, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

type stepError struct {
	step string
	err  error
}

func (e *stepError) Error() string { return e.step + ": " + e.err.Error() }
func (e *stepError) Unwrap() error { return e.err }

func fail(step string, err error) error {
	return &stepError{step: step, err: err}
}

// ============================================================
// Build
// ============================================================

type stage struct {
	name  string
	build func(*state) (Feature, error)
}

var stages = []stage{
	{name: FeatureBody, build: buildBody},
	{name: FeatureIndentation, build: buildIndentation},
	{name: FeatureScreen, build: buildScreen},
	{name: FeatureSpeaker, build: buildSpeaker},
}

// state то, что очередной элемент может взять у предыдущих.
type state struct {
	params   models.Parameters
	features map[string]Feature
}

func (s *state) solid(name string) *solid.Solid {
	return s.features[name].Solid
}

// Build строит корпус по параметрам. Первое же нарушение прерывает построение целиком,
// частичная сборка не возвращается.
func Build(params models.Parameters) (*Assembly, error) {
	if err := params.Validate(); err != nil {
		return nil, &BuildError{Feature: FeatureBody, Step: StepValidate, Err: err}
	}

	st := &state{
		params:   params,
		features: make(map[string]Feature, len(stages)),
	}
	assembly := &Assembly{Parameters: params}

	for _, stg := range stages {
		feature, err := stg.build(st)
		if err != nil {
			step := "build"
			var se *stepError
			if errors.As(err, &se) {
				step = se.step
				err = se.err
			}
			return nil, &BuildError{Feature: stg.name, Step: step, Err: err}
		}
		feature.Name = stg.name
		st.features[stg.name] = feature
		assembly.Features = append(assembly.Features, feature)
	}

	return assembly, nil
}
