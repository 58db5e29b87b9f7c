package models

import (
	"encoding/binary"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/prism/pkg/math3d"
)

// writeGLB saves a single-primitive model with float positions and uint16
// indices.
func writeGLB(t *testing.T, mode gltf.PrimitiveMode, positions [][3]float32, indices []uint16) string {
	t.Helper()

	var data []byte
	for _, p := range positions {
		for _, f := range p {
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(f))
		}
	}
	posLen := len(data)
	for _, i := range indices {
		data = binary.LittleEndian.AppendUint16(data, i)
	}
	for len(data)%4 != 0 {
		data = append(data, 0)
	}

	doc := gltf.NewDocument()
	doc.Buffers = []*gltf.Buffer{{ByteLength: len(data), Data: data}}
	doc.BufferViews = []*gltf.BufferView{
		{Buffer: 0, ByteOffset: 0, ByteLength: posLen},
		{Buffer: 0, ByteOffset: posLen, ByteLength: 2 * len(indices)},
	}
	doc.Accessors = []*gltf.Accessor{
		{BufferView: gltf.Index(0), ComponentType: gltf.ComponentFloat, Count: len(positions), Type: gltf.AccessorVec3},
		{BufferView: gltf.Index(1), ComponentType: gltf.ComponentUshort, Count: len(indices), Type: gltf.AccessorScalar},
	}
	doc.Meshes = []*gltf.Mesh{{
		Name: "test",
		Primitives: []*gltf.Primitive{{
			Attributes: map[string]int{gltf.POSITION: 0},
			Indices:    gltf.Index(1),
			Mode:       mode,
		}},
	}}

	path := filepath.Join(t.TempDir(), "model.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("save glb: %v", err)
	}
	return path
}

var quad = [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadTriangles(t *testing.T) {
	path := writeGLB(t, gltf.PrimitiveTriangles, quad, []uint16{0, 1, 2, 0, 2, 3})

	mesh, err := (&GLTFLoader{}).Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(mesh.Vertices) != 4 {
		t.Errorf("vertices = %d, want 4", len(mesh.Vertices))
	}
	// Two triangles share the diagonal.
	if mesh.EdgeCount() != 5 {
		t.Errorf("edges = %d, want 5", mesh.EdgeCount())
	}
	if mesh.Triangles != 2 {
		t.Errorf("triangles = %d, want 2", mesh.Triangles)
	}
	if mesh.Vertices[2] != math3d.V3(1, 1, 0) {
		t.Errorf("vertex 2 = %v", mesh.Vertices[2])
	}
}

func TestLoadLineLoop(t *testing.T) {
	path := writeGLB(t, gltf.PrimitiveLineLoop, quad, []uint16{0, 1, 2, 3})
	mesh, err := (&GLTFLoader{}).Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if mesh.EdgeCount() != 4 {
		t.Errorf("edges = %d, want 4", mesh.EdgeCount())
	}
}

func TestLoadPointsHasNoGeometry(t *testing.T) {
	path := writeGLB(t, gltf.PrimitivePoints, quad, []uint16{0, 1, 2, 3})
	if _, err := LoadGLB(path); !errors.Is(err, ErrNoGeometry) {
		t.Errorf("Load() = %v, want ErrNoGeometry", err)
	}
}

func TestLoadZUpAndNormalize(t *testing.T) {
	path := writeGLB(t, gltf.PrimitiveTriangles, [][3]float32{{0, 0, 0}, {2, 0, 0}, {0, 4, 0}}, []uint16{0, 1, 2})

	loader := &GLTFLoader{ZUp: true, Size: 2, Center: math3d.V3(0, 0, 1)}
	mesh, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	b := mesh.Bounds()
	size := b.Size()
	// The model's +Y axis becomes +Z and the 4 unit extent is scaled to 2.
	if math.Abs(size.Z-2) > 1e-9 || math.Abs(size.X-1) > 1e-9 || math.Abs(size.Y) > 1e-9 {
		t.Errorf("size = %v, want (1, 0, 2)", size)
	}
	if c := b.Center(); c.Sub(math3d.V3(0, 0, 1)).Len() > 1e-9 {
		t.Errorf("center = %v, want (0, 0, 1)", c)
	}
}
