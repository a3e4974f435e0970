package graph

import (
	"fmt"

	"enclosure-designer/internal/designer/composer"
	"enclosure-designer/internal/designer/models"
	"enclosure-designer/internal/designer/solid"
)

// ============================================================
// Graph Builder
// ============================================================

const tolerance = 1e-9 // Радиус склейки совпадающих вершин разных тел

type GraphBuilder struct {
	vertices map[string]models.Vertex
	lines    map[string]models.Line
	order    []string          // вершины в порядке создания, для стабильных ID
	pairs    map[string]string // "v1|v2" -> ID линии
	vertexID int
}

func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{
		vertices: make(map[string]models.Vertex),
		lines:    make(map[string]models.Line),
		pairs:    make(map[string]string),
	}
}

// BuildFromAssembly собирает рёбра всех тел сборки в один граф.
func (g *GraphBuilder) BuildFromAssembly(a *composer.Assembly) models.Wireframe {
	g.reset()

	for _, f := range a.Features {
		for _, edge := range f.Solid.Edges() {
			g.addEdge(f.Name, edge)
		}
	}

	return models.Wireframe{
		Unit:     a.Parameters.Unit,
		Vertices: g.vertices,
		Lines:    g.lines,
	}
}

func (g *GraphBuilder) addEdge(feature string, edge solid.Edge) {
	v1 := g.findOrCreateVertex(edge.From, feature)
	v2 := g.findOrCreateVertex(edge.To, feature)
	if v1 == v2 {
		return
	}

	key := pairKey(v1, v2)
	if id, ok := g.pairs[key]; ok {
		line := g.lines[id]
		line.Features = appendUnique(line.Features, feature)
		g.lines[id] = line
		return
	}

	id := fmt.Sprintf("%s:%d:%s", feature, edge.Ref.Segment, edge.Ref.Kind)
	g.lines[id] = models.Line{
		ID:       id,
		Kind:     string(edge.Ref.Kind),
		Vertices: []string{v1, v2},
		Features: []string{feature},
		Length:   edge.Length(),
	}
	g.pairs[key] = id
	g.attachLineToVertex(v1, id)
	g.attachLineToVertex(v2, id)
}

func (g *GraphBuilder) findOrCreateVertex(p models.Vec3, feature string) string {
	// Ищем существующую близкую точку
	for _, id := range g.order {
		v := g.vertices[id]
		if p.Sub(models.Vec3{X: v.X, Y: v.Y, Z: v.Z}).Length() <= tolerance {
			v.Features = appendUnique(v.Features, feature)
			g.vertices[id] = v
			return id
		}
	}

	g.vertexID++
	id := fmt.Sprintf("v%d", g.vertexID)
	g.vertices[id] = models.Vertex{
		ID:       id,
		X:        p.X,
		Y:        p.Y,
		Z:        p.Z,
		Lines:    []string{},
		Features: []string{feature},
	}
	g.order = append(g.order, id)
	return id
}

func (g *GraphBuilder) GetVertices() map[string]models.Vertex {
	return g.vertices
}

func (g *GraphBuilder) GetLines() map[string]models.Line {
	return g.lines
}

func (g *GraphBuilder) reset() {
	g.vertices = make(map[string]models.Vertex)
	g.lines = make(map[string]models.Line)
	g.pairs = make(map[string]string)
	g.order = g.order[:0]
	g.vertexID = 0
}

// ============================================================
// Helpers
// ============================================================

func (g *GraphBuilder) attachLineToVertex(vertexID, lineID string) {
	vertex := g.vertices[vertexID]
	vertex.Lines = appendUnique(vertex.Lines, lineID)
	g.vertices[vertexID] = vertex
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

func contains(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}

func appendUnique(dst []string, src ...string) []string {
	for _, s := range src {
		if !contains(dst, s) {
			dst = append(dst, s)
		}
	}
	return dst
}
