// Package models loads 3D models and reduces them to the edge lists drawn by
// the wireframe overlay.
package models

import (
	"errors"
	"slices"

	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/raster"
	"github.com/taigrr/prism/pkg/render"
)

// ErrNoGeometry is returned when a model contains no drawable edges.
var ErrNoGeometry = errors.New("models: no geometry")

// Mesh is an indexed edge set.
type Mesh struct {
	Name      string
	Vertices  []math3d.Vec3
	Edges     [][2]int // Undirected, deduplicated, lower index first
	Triangles int      // Source triangle count, for diagnostics

	edgeSet map[[2]int]struct{}
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name, edgeSet: make(map[[2]int]struct{})}
}

// AddEdge records the edge a-b once regardless of direction. Degenerate and
// out of range edges are ignored.
func (m *Mesh) AddEdge(a, b int) {
	if a == b || a < 0 || b < 0 || a >= len(m.Vertices) || b >= len(m.Vertices) {
		return
	}
	if a > b {
		a, b = b, a
	}
	e := [2]int{a, b}
	if _, ok := m.edgeSet[e]; ok {
		return
	}
	m.edgeSet[e] = struct{}{}
	m.Edges = append(m.Edges, e)
}

// AddTriangle records the three edges of a triangle.
func (m *Mesh) AddTriangle(a, b, c int) {
	m.AddEdge(a, b)
	m.AddEdge(b, c)
	m.AddEdge(c, a)
	m.Triangles++
}

// EdgeCount returns the number of unique edges.
func (m *Mesh) EdgeCount() int {
	return len(m.Edges)
}

// Bounds returns the box around every vertex.
func (m *Mesh) Bounds() raster.AABB {
	b := raster.EmptyAABB()
	for _, v := range m.Vertices {
		b = b.Extend(v)
	}
	return b
}

// Transform applies mat to every vertex.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i, v := range m.Vertices {
		m.Vertices[i] = mat.MulVec3(v)
	}
}

// Normalize scales the mesh uniformly so its largest extent equals size and
// moves its bounding box centre to center.
func (m *Mesh) Normalize(size float64, center math3d.Vec3) {
	b := m.Bounds()
	if b.Empty() {
		return
	}
	ext := b.Size()
	largest := max(ext.X, ext.Y, ext.Z)
	scale := 1.0
	if largest > 0 {
		scale = size / largest
	}
	mat := math3d.Translate(center).
		Mul(math3d.Scale(math3d.V3(scale, scale, scale))).
		Mul(math3d.Translate(b.Center().Negate()))
	m.Transform(mat)
}

// Lines returns one overlay segment per edge.
func (m *Mesh) Lines(c render.Col) []raster.Line3D {
	lines := make([]raster.Line3D, 0, len(m.Edges))
	for _, e := range m.Edges {
		lines = append(lines, raster.L3(m.Vertices[e[0]], m.Vertices[e[1]], c))
	}
	return lines
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	c := NewMesh(m.Name)
	c.Vertices = slices.Clone(m.Vertices)
	c.Edges = slices.Clone(m.Edges)
	c.Triangles = m.Triangles
	for _, e := range c.Edges {
		c.edgeSet[e] = struct{}{}
	}
	return c
}
