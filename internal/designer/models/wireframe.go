package models

// ============================================================
// Wireframe
// ============================================================

type Vertex struct {
	ID       string   `json:"id"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Z        float64  `json:"z"`
	Lines    []string `json:"lines"`
	Features []string `json:"features"`
}

type Line struct {
	ID       string   `json:"id"`
	Kind     string   `json:"kind"` // start, end, swept
	Vertices []string `json:"vertices"`
	Features []string `json:"features"`
	Length   float64  `json:"length"`
}

// Wireframe граф рёбер сборки с общими вершинами.
type Wireframe struct {
	Unit     string            `json:"unit"`
	Vertices map[string]Vertex `json:"vertices"`
	Lines    map[string]Line   `json:"lines"`
}
