package composer

import (
	"fmt"
	"math"

	"enclosure-designer/internal/designer/models"
	"enclosure-designer/internal/designer/sketch"
	"enclosure-designer/internal/designer/solid"
)

// Теги отрезков, на которые ссылаются следующие шаги.
const (
	tagChamfer1   = "chamfer1"
	tagChamfer2   = "chamfer2"
	tagChamfer3   = "chamfer3"
	tagChamfer4   = "chamfer4"
	tagScreenTop  = "screenTop"
	tagScreenSide = "screenSide"
)

// ============================================================
// Body
// ============================================================

// buildBody прямоугольник width × height на XY, выдавленный на thickness,
// с фасками на четырёх вертикальных рёбрах.
func buildBody(st *state) (Feature, error) {
	p := st.params

	plane, err := solid.AnchorPlane(solid.PlaneXY)
	if err != nil {
		return Feature{}, fail(StepAnchor, err)
	}

	w, h := p.Width/2, p.Height/2
	profile, err := sketch.StartProfile(plane, models.Point{X: -w, Y: h}).
		Named(FeatureBody).
		LineAbsolute(w, h).Tag(tagChamfer1).
		LineAbsolute(w, -h).Tag(tagChamfer2).
		LineAbsolute(-w, -h).Tag(tagChamfer3).
		Close(tagChamfer4)
	if err != nil {
		return Feature{}, fail(StepSketch, err)
	}

	body, err := solid.Extrude(profile, p.Thickness)
	if err != nil {
		return Feature{}, fail(StepExtrude, err)
	}

	var corners []solid.EdgeRef
	for _, tag := range []string{tagChamfer1, tagChamfer2, tagChamfer3, tagChamfer4} {
		ref, err := body.NextAdjacentEdge(tag)
		if err != nil {
			return Feature{}, fail(StepChamfer, err)
		}
		corners = append(corners, ref)
	}

	chamfered, err := solid.Chamfer(body, p.ChamferLength, corners...)
	if err != nil {
		return Feature{}, fail(StepChamfer, err)
	}

	return Feature{
		Kind:   KindAdditive,
		Anchor: solid.PlaneXY,
		Solid:  chamfered,
	}, nil
}

// ============================================================
// Indentation
// ============================================================

// IndentationCornerDepth расстояние от кромки корпуса до начала скоса углубления.
func IndentationCornerDepth(p models.Parameters) float64 {
	return p.ChamferLength + p.Offset/2*math.Cos(math.Pi/4)
}

// MaxIndentationOffset предел offset: при большем отступе скосы углубления
// разворачиваются и контур самопересекается.
func MaxIndentationOffset(chamferLength float64) float64 {
	return chamferLength / (1 - math.Cos(math.Pi/4)/2)
}

// buildIndentation восьмиугольная выемка на торце end корпуса, отступающая от кромок на offset.
// Скосы идут под 45° параллельно фаскам корпуса; шаги попарно зеркальны, поэтому
// контур симметричен относительно поворота на 180° точно, а не приближенно.
func buildIndentation(st *state) (Feature, error) {
	p := st.params
	body := st.solid(FeatureBody)

	frame, err := solid.AnchorFace(body, solid.FaceEnd)
	if err != nil {
		return Feature{}, fail(StepAnchor, err)
	}

	w, h, o := p.Width/2, p.Height/2, p.Offset
	d := IndentationCornerDepth(p)
	if d <= o {
		return Feature{}, fail(StepSketch, fmt.Errorf("%w: offset %g must be below %.6g for chamferLength %g",
			sketch.ErrOpenProfile, o, MaxIndentationOffset(p.ChamferLength), p.ChamferLength))
	}

	profile, err := sketch.StartProfile(frame, models.Point{X: -w + o, Y: h - d}).
		Named(FeatureIndentation).
		AngledLineToY(45, h-o).
		AngledLineToX(0, w-d).
		AngledLineToX(-45, w-o).
		AngledLineToY(-90, -h+d).
		AngledLineToY(-135, -h+o).
		AngledLineToX(180, -w+d).
		AngledLineToX(-225, -w+o).
		Close("")
	if err != nil {
		return Feature{}, fail(StepSketch, err)
	}

	if err := fits(body.Profile, profile, FeatureIndentation); err != nil {
		return Feature{}, err
	}
	if err := fitsDepth(IndentationDepth, p.Thickness, FeatureIndentation); err != nil {
		return Feature{}, err
	}

	recess, err := solid.Extrude(profile, -IndentationDepth)
	if err != nil {
		return Feature{}, fail(StepExtrude, err)
	}

	return Feature{
		Kind:   KindVoid,
		Anchor: FeatureBody + ":" + solid.FaceEnd,
		Solid:  recess,
	}, nil
}

// ============================================================
// Screen Pocket
// ============================================================

// buildScreen прямоугольный карман экрана на дне углубления. Нижняя сторона берет
// длину верхней по тегу, а контур возвращается в собственную стартовую точку эскиза.
func buildScreen(st *state) (Feature, error) {
	p := st.params
	indentation := st.solid(FeatureIndentation)

	frame, err := solid.AnchorFace(indentation, solid.FaceFloor)
	if err != nil {
		return Feature{}, fail(StepAnchor, err)
	}

	b := sketch.StartProfile(frame, models.Point{X: -p.ScreenWidth / 2, Y: p.ScreenYPosition}).
		Named(FeatureScreen).
		LineRelative(p.ScreenWidth, 0).Tag(tagScreenTop).
		LineRelative(0, -p.ScreenHeight).Tag(tagScreenSide)

	top, err := b.SegmentLength(tagScreenTop)
	if err != nil {
		return Feature{}, fail(StepSketch, err)
	}

	profile, err := b.
		LineRelative(-top, 0).
		LineAbsolute(b.StartX(), b.StartY()).
		Close("")
	if err != nil {
		return Feature{}, fail(StepSketch, err)
	}

	if err := fits(indentation.Profile, profile, FeatureScreen); err != nil {
		return Feature{}, err
	}
	if err := fitsDepth(p.ScreenDepth, floorThickness(p), FeatureScreen); err != nil {
		return Feature{}, err
	}

	pocket, err := solid.Extrude(profile, -p.ScreenDepth)
	if err != nil {
		return Feature{}, fail(StepExtrude, err)
	}

	return Feature{
		Kind:   KindVoid,
		Anchor: FeatureIndentation + ":" + solid.FaceFloor,
		Solid:  pocket,
	}, nil
}

// ============================================================
// Speaker Boss
// ============================================================

// buildSpeaker решетка динамика на дне углубления: по центру, нижняя кромка на
// SpeakerMargin выше нижней кромки углубления. Цвет задается только для рендера.
func buildSpeaker(st *state) (Feature, error) {
	p := st.params
	indentation := st.solid(FeatureIndentation)

	frame, err := solid.AnchorFace(indentation, solid.FaceFloor)
	if err != nil {
		return Feature{}, fail(StepAnchor, err)
	}

	profile, err := sketch.StartProfile(frame, models.Point{X: -p.SpeakerBoxWidth / 2, Y: SpeakerBottom(p) + p.SpeakerBoxHeight}).
		Named(FeatureSpeaker).
		LineRelative(p.SpeakerBoxWidth, 0).
		LineRelative(0, -p.SpeakerBoxHeight).
		LineRelative(-p.SpeakerBoxWidth, 0).
		Close("")
	if err != nil {
		return Feature{}, fail(StepSketch, err)
	}

	if err := fits(indentation.Profile, profile, FeatureSpeaker); err != nil {
		return Feature{}, err
	}
	if err := fitsDepth(SpeakerDepth, floorThickness(p), FeatureSpeaker); err != nil {
		return Feature{}, err
	}

	boss, err := solid.Extrude(profile, -SpeakerDepth)
	if err != nil {
		return Feature{}, fail(StepExtrude, err)
	}

	return Feature{
		Kind:   KindVoid,
		Anchor: FeatureIndentation + ":" + solid.FaceFloor,
		Solid:  boss.WithAppearance(SpeakerAppearance),
	}, nil
}

// SpeakerBottom нижняя кромка решетки в локальных координатах дна углубления.
// Отступ SpeakerMargin отсчитывается от нижней кромки углубления.
func SpeakerBottom(p models.Parameters) float64 {
	return -p.Height/2 + p.Offset + SpeakerMargin
}

// ============================================================
// Fit checks
// ============================================================

// floorThickness материал под дном углубления.
func floorThickness(p models.Parameters) float64 {
	return p.Thickness - IndentationDepth
}

// fits все вершины inner строго внутри outer. Внешние контуры здесь выпуклые,
// поэтому проверки вершин достаточно.
func fits(outer, inner *sketch.Profile, what string) error {
	for _, v := range inner.Vertices() {
		if !outer.ContainsStrict(v) {
			return fail(StepFit, fmt.Errorf("%w: %s corner (%g, %g) is not inside %s",
				ErrDoesNotFit, what, v.X, v.Y, outer.ID))
		}
	}
	return nil
}

func fitsDepth(depth, thickness float64, what string) error {
	if depth >= thickness {
		return fail(StepFit, fmt.Errorf("%w: %s depth %g cuts through %g of material",
			ErrDoesNotFit, what, depth, thickness))
	}
	return nil
}
