package models

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/prism/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into edge meshes.
type GLTFLoader struct {
	// ZUp rotates the Y-up glTF frame into the scene's Z-up frame.
	ZUp bool
	// Size, when positive, normalizes the mesh to this extent around Center.
	Size   float64
	Center math3d.Vec3
}

// NewGLTFLoader creates a loader that converts to Z-up and keeps the
// model's own scale.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{ZUp: true}
}

// LoadGLB loads a GLTF or GLB file with the default loader.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load opens a GLTF or GLB file. Triangle primitives contribute their edges,
// line primitives their segments. Points and strips of triangles are
// skipped.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	for _, m := range doc.Meshes {
		if err := processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	if mesh.EdgeCount() == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoGeometry)
	}

	if l.ZUp {
		mesh.Transform(math3d.RotateX(math.Pi / 2))
	}
	if l.Size > 0 {
		mesh.Normalize(l.Size, l.Center)
	}

	logger.Infof("loaded %s: %d vertices, %d edges, %d triangles",
		mesh.Name, len(mesh.Vertices), mesh.EdgeCount(), mesh.Triangles)
	return mesh, nil
}

// processMesh extracts edges from a GLTF mesh.
func processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		var connect func(idx []int)
		switch prim.Mode {
		case gltf.PrimitiveTriangles:
			connect = func(idx []int) {
				for i := 0; i+2 < len(idx); i += 3 {
					mesh.AddTriangle(idx[i], idx[i+1], idx[i+2])
				}
			}
		case gltf.PrimitiveLines:
			connect = func(idx []int) {
				for i := 0; i+1 < len(idx); i += 2 {
					mesh.AddEdge(idx[i], idx[i+1])
				}
			}
		case gltf.PrimitiveLineStrip, gltf.PrimitiveLineLoop:
			loop := prim.Mode == gltf.PrimitiveLineLoop
			connect = func(idx []int) {
				for i := 0; i+1 < len(idx); i++ {
					mesh.AddEdge(idx[i], idx[i+1])
				}
				if loop && len(idx) > 2 {
					mesh.AddEdge(idx[len(idx)-1], idx[0])
				}
			}
		default:
			continue
		}

		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		base := len(mesh.Vertices)
		mesh.Vertices = append(mesh.Vertices, positions...)

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}
		for i := range indices {
			indices[i] += base
		}
		connect(indices)
	}
	return nil
}

// readVec3Accessor reads Vec3 data from a GLTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v/%v", accessor.Type, accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	out := make([]math3d.Vec3, accessor.Count)
	for i := range out {
		o := i * stride
		out[i] = math3d.V3(
			float64(readFloat32(data[o:])),
			float64(readFloat32(data[o+4:])),
			float64(readFloat32(data[o+8:])),
		)
	}
	return out, nil
}

// readIndices reads an unsigned scalar index accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	out := make([]int, accessor.Count)
	for i := range out {
		o := i * stride
		switch size {
		case 1:
			out[i] = int(data[o])
		case 2:
			out[i] = int(uint16(data[o]) | uint16(data[o+1])<<8)
		case 4:
			out[i] = int(readUint32(data[o:]))
		}
	}
	return out, nil
}

// accessorBytes returns the accessor's slice of its buffer, starting at the
// first element, and the element stride.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	if *accessor.BufferView >= len(doc.BufferViews) {
		return nil, 0, fmt.Errorf("buffer view %d out of range", *accessor.BufferView)
	}
	view := doc.BufferViews[*accessor.BufferView]
	if view.Buffer >= len(doc.Buffers) {
		return nil, 0, fmt.Errorf("buffer %d out of range", view.Buffer)
	}
	buffer := doc.Buffers[view.Buffer]
	if buffer.Data == nil {
		return nil, 0, fmt.Errorf("buffer has no data")
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	start := view.ByteOffset + accessor.ByteOffset
	if accessor.Count == 0 {
		return nil, stride, nil
	}
	end := start + (accessor.Count-1)*stride + elemSize
	if start < 0 || end > len(buffer.Data) {
		return nil, 0, fmt.Errorf("accessor reads past buffer end (%d > %d)", end, len(buffer.Data))
	}
	return buffer.Data[start:end], stride, nil
}

func readUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func readFloat32(b []byte) float32 {
	return math.Float32frombits(readUint32(b))
}
