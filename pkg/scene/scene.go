package scene

import (
	"errors"
	"fmt"

	"github.com/taigrr/prism/pkg/camera"
	"github.com/taigrr/prism/pkg/raster"
)

var (
	// ErrNoCamera is returned when a scene defines no camera.
	ErrNoCamera = errors.New("scene: no camera")
	// ErrInvalidSphere is returned for a sphere with a non-positive or
	// non-finite radius or centre.
	ErrInvalidSphere = errors.New("scene: invalid sphere")
)

// Scene is read-only during a frame. Cameras[0] is the active camera; the
// others only show up as overlay gizmos.
type Scene struct {
	Spheres    []Sphere
	Cameras    []*camera.Camera
	Wireframes []raster.Line3D
	Sky        Skybox
	Overlay    OverlayOptions
}

// Validate checks the invariants the renderer relies on.
func (s *Scene) Validate() error {
	if len(s.Cameras) == 0 || s.Cameras[0] == nil {
		return ErrNoCamera
	}
	for i, sp := range s.Spheres {
		if !sp.valid() {
			return fmt.Errorf("sphere %d (radius %v): %w", i, sp.Radius, ErrInvalidSphere)
		}
	}
	if s.Sky == nil {
		s.Sky = DefaultSky()
	}
	return nil
}

// Camera returns the active camera.
func (s *Scene) Camera() *camera.Camera {
	return s.Cameras[0]
}

// Lights returns the indices of emissive spheres.
func (s *Scene) Lights() []int {
	var out []int
	for i, sp := range s.Spheres {
		if sp.Material.Emissive() {
			out = append(out, i)
		}
	}
	return out
}

// Bounds returns the box holding every sphere.
func (s *Scene) Bounds() raster.AABB {
	b := raster.EmptyAABB()
	for _, sp := range s.Spheres {
		b = b.Union(sp.Bounds())
	}
	return b
}
