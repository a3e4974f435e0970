package solid

import (
	"math"
	"testing"

	"enclosure-designer/internal/designer/models"
	"enclosure-designer/internal/designer/sketch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box(t *testing.T, w, h, thickness float64) *Solid {
	t.Helper()
	plane, err := AnchorPlane(PlaneXY)
	require.NoError(t, err)

	profile, err := sketch.StartProfile(plane, models.Point{X: -w / 2, Y: h / 2}).
		Named("box").
		LineAbsolute(w/2, h/2).Tag("c1").
		LineAbsolute(w/2, -h/2).Tag("c2").
		LineAbsolute(-w/2, -h/2).Tag("c3").
		Close("c4")
	require.NoError(t, err)

	s, err := Extrude(profile, thickness)
	require.NoError(t, err)
	return s
}

func corners(t *testing.T, s *Solid) []EdgeRef {
	t.Helper()
	var refs []EdgeRef
	for _, tag := range []string{"c1", "c2", "c3", "c4"} {
		ref, err := s.NextAdjacentEdge(tag)
		require.NoError(t, err)
		refs = append(refs, ref)
	}
	return refs
}

func TestAnchorPlane(t *testing.T) {
	xz, err := AnchorPlane("xz")
	require.NoError(t, err)
	assert.Equal(t, models.Vec3{Y: -1}, xz.Normal)

	flipped, err := AnchorPlane("-XY")
	require.NoError(t, err)
	assert.Equal(t, models.Vec3{Z: -1}, flipped.Normal)

	_, err = AnchorPlane("UV")
	assert.ErrorIs(t, err, ErrUnknownPlane)
}

func TestExtrude_BoundsAndFaces(t *testing.T) {
	s := box(t, 3, 1.5, 0.5)

	b := s.Bounds()
	assert.Equal(t, models.Vec3{X: -1.5, Y: -0.75, Z: 0}, b.Min)
	assert.Equal(t, models.Vec3{X: 1.5, Y: 0.75, Z: 0.5}, b.Max)
	assert.InDelta(t, 2.25, s.Volume(), 1e-12)

	end, err := AnchorFace(s, "END")
	require.NoError(t, err)
	assert.Equal(t, models.Vec3{Z: 0.5}, end.Origin)
	assert.Equal(t, models.Vec3{Z: 1}, end.Normal)

	start, err := AnchorFace(s, FaceStart)
	require.NoError(t, err)
	assert.Equal(t, models.Vec3{Z: -1}, start.Normal)

	side, err := AnchorFace(s, "c1")
	require.NoError(t, err)
	assert.Equal(t, models.Vec3{X: 1}, side.XAxis)
	assert.Equal(t, models.Vec3{Y: 1}, side.Normal)

	_, err = AnchorFace(s, "lid")
	assert.ErrorIs(t, err, ErrUnknownFace)

	_, err = AnchorFace(s, FaceFloor)
	assert.ErrorIs(t, err, ErrUnknownFace)

	assert.Equal(t, []string{"start", "end", "c1", "c2", "c3", "c4"}, s.Faces())
	assert.Len(t, s.Edges(), 12)
}

func TestExtrude_NegativeLengthSweepsBackwards(t *testing.T) {
	s := box(t, 1, 1, 1)
	end, err := s.Face(FaceEnd)
	require.NoError(t, err)

	profile, err := sketch.StartProfile(end, models.Point{X: -0.25, Y: 0.25}).
		Named("pocket").
		LineRelative(0.5, 0).
		LineRelative(0, -0.5).
		LineRelative(-0.5, 0).
		Close("")
	require.NoError(t, err)

	pocket, err := Extrude(profile, -0.25)
	require.NoError(t, err)

	b := pocket.Bounds()
	assert.Equal(t, 0.75, b.Min.Z)
	assert.Equal(t, 1.0, b.Max.Z)

	start, err := pocket.Face(FaceStart)
	require.NoError(t, err)
	assert.Equal(t, models.Vec3{Z: 1}, start.Normal)
	assert.Equal(t, 1.0, start.Origin.Z)

	floor, err := AnchorFace(pocket, FaceFloor)
	require.NoError(t, err)
	assert.Equal(t, models.Vec3{Z: 0.75}, floor.Origin)
	assert.Equal(t, models.Vec3{Z: 1}, floor.Normal)
	assert.Equal(t, profile.Frame.XAxis, floor.XAxis)
	assert.Equal(t, []string{"start", "end", "floor"}, pocket.Faces())

	// карман на дне уходит в материал ниже выемки
	inner, err := sketch.StartProfile(floor, models.Point{X: -0.1, Y: 0.1}).
		Named("inner").
		LineRelative(0.2, 0).
		LineRelative(0, -0.2).
		LineRelative(-0.2, 0).
		Close("")
	require.NoError(t, err)
	deeper, err := Extrude(inner, -0.25)
	require.NoError(t, err)

	db := deeper.Bounds()
	assert.Equal(t, 0.5, db.Min.Z)
	assert.Equal(t, 0.75, db.Max.Z)
}

func TestExtrude_ZeroLength(t *testing.T) {
	s := box(t, 1, 1, 1)
	for _, l := range []float64{0, math.NaN(), math.Inf(1)} {
		_, err := Extrude(s.Profile, l)
		assert.ErrorIs(t, err, ErrDegenerateExtrusion)
	}
}

func TestNextAdjacentEdge_IsSweptCornerEdge(t *testing.T) {
	s := box(t, 3, 1.5, 0.5)

	ref, err := s.NextAdjacentEdge("c1")
	require.NoError(t, err)
	edge, err := s.Edge(ref)
	require.NoError(t, err)

	assert.Equal(t, models.Vec3{X: 1.5, Y: 0.75, Z: 0}, edge.From)
	assert.Equal(t, models.Vec3{X: 1.5, Y: 0.75, Z: 0.5}, edge.To)

	tagged, err := s.TaggedEdge("c1")
	require.NoError(t, err)
	planar, err := s.Edge(tagged)
	require.NoError(t, err)
	assert.Equal(t, 0.0, planar.From.Z)
	assert.Equal(t, 0.0, planar.To.Z)
	assert.Equal(t, 3.0, planar.Length())

	_, err = s.NextAdjacentEdge("c9")
	assert.ErrorIs(t, err, sketch.ErrUnknownTag)
}

func TestChamfer_FourCorners(t *testing.T) {
	s := box(t, 3, 1.5, 0.5)

	ch, err := Chamfer(s, 0.1, corners(t, s)...)
	require.NoError(t, err)

	require.Equal(t, 8, ch.Profile.Len())
	require.Len(t, ch.Bevels, 4)
	for _, b := range ch.Bevels {
		assert.Equal(t, 0.1, b.Length)
		seg := ch.Profile.Segments[b.Segment]
		assert.Equal(t, sketch.KindChamfer, seg.Kind)
		assert.InDelta(t, 0.1*math.Sqrt2, seg.Length(), 1e-12)
	}

	// фаска в вершине (1.5, 0.75): по 0.1 вдоль каждой стены
	bevel := ch.Profile.Segments[ch.Bevels[0].Segment]
	assert.InDelta(t, 1.4, bevel.From.X, 1e-12)
	assert.Equal(t, 0.75, bevel.From.Y)
	assert.Equal(t, 1.5, bevel.To.X)
	assert.InDelta(t, 0.65, bevel.To.Y, 1e-12)

	assert.InDelta(t, (4.5-4*0.005)*0.5, ch.Volume(), 1e-12)
	assert.Equal(t, []string{"c1", "c2", "c3", "c4"}, ch.Profile.Tags())

	// исходное тело не меняется
	assert.Equal(t, 4, s.Profile.Len())
	assert.Empty(t, s.Bevels)
}

func TestChamfer_TooLargeIffAboveHalfShortestWall(t *testing.T) {
	s := box(t, 3, 1.5, 0.5)

	ch, err := Chamfer(s, 0.75, corners(t, s)...)
	require.NoError(t, err)
	assert.Equal(t, 6, ch.Profile.Len())

	_, err = Chamfer(s, math.Nextafter(0.75, 1), corners(t, s)...)
	assert.ErrorIs(t, err, ErrChamferTooLarge)
}

func TestChamfer_RejectsBadSelections(t *testing.T) {
	s := box(t, 3, 1.5, 0.5)

	_, err := Chamfer(s, 0)
	assert.ErrorIs(t, err, ErrInvalidChamfer)

	_, err = Chamfer(s, 0.1)
	assert.ErrorIs(t, err, ErrUnknownEdge)

	planar, err := s.TaggedEdge("c1")
	require.NoError(t, err)
	_, err = Chamfer(s, 0.1, planar)
	assert.ErrorIs(t, err, ErrUnknownEdge)

	_, err = Chamfer(s, 0.1, EdgeRef{Profile: "other", Segment: 0, Kind: EdgeSwept})
	assert.ErrorIs(t, err, ErrUnknownEdge)
}

func TestChamfer_Twice(t *testing.T) {
	s := box(t, 2, 2, 1)
	refs := corners(t, s)

	once, err := Chamfer(s, 0.2, refs[0])
	require.NoError(t, err)

	ref, err := once.NextAdjacentEdge("c3")
	require.NoError(t, err)
	twice, err := Chamfer(once, 0.2, ref)
	require.NoError(t, err)

	require.Len(t, twice.Bevels, 2)
	for _, b := range twice.Bevels {
		assert.Equal(t, sketch.KindChamfer, twice.Profile.Segments[b.Segment].Kind)
	}
}

func TestWithAppearance(t *testing.T) {
	s := box(t, 1, 1, 1)
	painted := s.WithAppearance(Appearance{Color: "#1A1A1A"})

	assert.Nil(t, s.Appearance)
	require.NotNil(t, painted.Appearance)
	assert.Equal(t, s.Volume(), painted.Volume())
}
