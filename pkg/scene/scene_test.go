package scene

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/prism/pkg/camera"
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/raster"
	"github.com/taigrr/prism/pkg/render"
)

func TestSphereIntersect(t *testing.T) {
	s := Sphere{Center: math3d.V3(0, 5, 0), Radius: 1}
	tests := []struct {
		name   string
		ray    math3d.Ray
		tMin   float64
		want   float64
		wantOK bool
	}{
		{"head on", math3d.NewRay(math3d.Zero3(), math3d.V3(0, 1, 0)), 0, 4, true},
		{"from inside", math3d.NewRay(math3d.V3(0, 5, 0), math3d.V3(0, 1, 0)), 1e-6, 1, true},
		{"pointing away", math3d.NewRay(math3d.Zero3(), math3d.V3(0, -1, 0)), 0, 0, false},
		{"miss", math3d.NewRay(math3d.Zero3(), math3d.V3(1, 0, 0)), 0, 0, false},
		{"tangent offset misses", math3d.NewRay(math3d.V3(1.01, 0, 0), math3d.V3(0, 1, 0)), 0, 0, false},
		{"near hit skipped by tMin", math3d.NewRay(math3d.Zero3(), math3d.V3(0, 1, 0)), 4.5, 6, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.Intersect(tt.ray, tt.tMin)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("t = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSphereNormal(t *testing.T) {
	s := Sphere{Center: math3d.V3(1, 1, 1), Radius: 2}
	if n := s.Normal(math3d.V3(1, 1, 3)); n != math3d.V3(0, 0, 1) {
		t.Errorf("Normal = %v", n)
	}
}

func TestValidate(t *testing.T) {
	cam := camera.Default()
	tests := []struct {
		name    string
		sc      Scene
		wantErr error
	}{
		{"ok", Scene{Cameras: []*camera.Camera{cam}, Spheres: []Sphere{{Radius: 1}}}, nil},
		{"no camera", Scene{Spheres: []Sphere{{Radius: 1}}}, ErrNoCamera},
		{"zero radius", Scene{Cameras: []*camera.Camera{cam}, Spheres: []Sphere{{Radius: 0}}}, ErrInvalidSphere},
		{"nan centre", Scene{Cameras: []*camera.Camera{cam}, Spheres: []Sphere{{Center: math3d.V3(math.NaN(), 0, 0), Radius: 1}}}, ErrInvalidSphere},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sc.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
			if err == nil && tt.sc.Sky == nil {
				t.Error("Validate did not default the sky")
			}
		})
	}
}

func TestParse(t *testing.T) {
	data := []byte(`{
		"cameras": [{"pos": [0, -4, 1], "rotDeg": [0, 0, 90], "fov": 70, "aperture": 0.1, "focalLength": 4}],
		"spheres": [
			{"center": [0, 0, 1], "radius": 1, "albedo": [1, 0, 0]},
			{"center": [0, 3, 4], "radius": 0.5, "emission": [4, 4, 4]}
		],
		"lines": [{"from": [0, 0, 0], "to": [1, 0, 0], "color": [1, 1, 0]}],
		"cubes": [{"center": [0, 0, 1], "size": 2, "color": [0, 1, 1]}],
		"sky": {"type": "solid", "color": [0.1, 0.2, 0.3]},
		"overlay": {"axes": true, "grid": 4}
	}`)
	sc, err := Parse(data, "")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cam := sc.Camera()
	if cam.FOV() != 70 || cam.ApertureRadius != 0.1 || cam.FocalLength != 4 {
		t.Errorf("camera = fov %v aperture %v focal %v", cam.FOV(), cam.ApertureRadius, cam.FocalLength)
	}
	if math.Abs(cam.Rot().Z-math.Pi/2) > 1e-12 {
		t.Errorf("rotation not converted to radians: %v", cam.Rot())
	}
	if len(sc.Spheres) != 2 || sc.Spheres[0].Material.Albedo != (render.Col{R: 1}) {
		t.Errorf("spheres = %+v", sc.Spheres)
	}
	if got := sc.Lights(); len(got) != 1 || got[0] != 1 {
		t.Errorf("Lights() = %v", got)
	}
	if len(sc.Wireframes) != 13 {
		t.Errorf("wireframes = %d, want 1 line + 12 cube edges", len(sc.Wireframes))
	}
	if got := sc.Sky.Sample(math3d.V3(0, 0, 1)); got != (render.Col{R: 0.1, G: 0.2, B: 0.3}) {
		t.Errorf("sky = %v", got)
	}
	if !sc.Overlay.Axes || sc.Overlay.Grid != 4 {
		t.Errorf("overlay = %+v", sc.Overlay)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"no camera", `{"spheres": [{"center": [0,0,0], "radius": 1}]}`, ErrNoCamera},
		{"bad sphere", `{"cameras": [{"pos": [0,0,0]}], "spheres": [{"center": [0,0,0], "radius": -1}]}`, ErrInvalidSphere},
		{"bad sky", `{"cameras": [{"pos": [0,0,0]}], "sky": {"type": "plasma"}}`, nil},
		{"bad json", `{"cameras": [`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), "")
			if err == nil {
				t.Fatal("Parse succeeded")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadImageSky(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for x := range 4 {
		img.Set(x, 0, color.RGBA{255, 255, 255, 255})
		img.Set(x, 1, color.RGBA{0, 0, 0, 255})
	}
	f, err := os.Create(filepath.Join(dir, "sky.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	path := filepath.Join(dir, "scene.json")
	scene := `{"cameras": [{"pos": [0,0,0]}], "sky": {"type": "image", "image": "sky.png", "intensity": 2}}`
	if err := os.WriteFile(path, []byte(scene), 0o644); err != nil {
		t.Fatal(err)
	}

	sc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := sc.Sky.Sample(math3d.V3(0, 0, 1)); got != (render.Col{R: 2, G: 2, B: 2}) {
		t.Errorf("sky up = %v, want white at intensity 2", got)
	}
	if got := sc.Sky.Sample(math3d.V3(0, 0, -1)); !got.IsBlack() {
		t.Errorf("sky down = %v, want black", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() = %v, want not-exist", err)
	}
}

func TestGradientSky(t *testing.T) {
	g := GradientSky{
		Zenith:  render.Col{B: 1},
		Horizon: render.Col{R: 1, G: 1, B: 1},
		Ground:  render.Col{},
	}
	tests := []struct {
		dir  math3d.Vec3
		want render.Col
	}{
		{math3d.V3(0, 0, 1), render.Col{B: 1}},
		{math3d.V3(1, 0, 0), render.Col{R: 1, G: 1, B: 1}},
		{math3d.V3(0, 0, -1), render.Col{}},
	}
	for _, tt := range tests {
		if got := g.Sample(tt.dir); got != tt.want {
			t.Errorf("Sample(%v) = %v, want %v", tt.dir, got, tt.want)
		}
	}
}

func TestOverlay(t *testing.T) {
	sc := Default()
	explicit := len(sc.Wireframes)

	tests := []struct {
		name string
		opts OverlayOptions
		want int
	}{
		{"explicit only", OverlayOptions{}, explicit},
		{"axes", OverlayOptions{Axes: true}, explicit + 3},
		{"grid", OverlayOptions{Grid: 2, GridStep: 1}, explicit + 6},
		{"bounds", OverlayOptions{Bounds: true}, explicit + 12*len(sc.Spheres)},
		{"gizmos", OverlayOptions{Gizmos: true}, explicit + 10*(len(sc.Cameras)-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(Overlay(sc, tt.opts)); got != tt.want {
				t.Errorf("Overlay() = %d lines, want %d", got, tt.want)
			}
		})
	}

	// Assembly must not alias the scene's own slice.
	lines := Overlay(sc, OverlayOptions{Axes: true})
	lines[0] = raster.Line3D{}
	if sc.Wireframes[0] == (raster.Line3D{}) {
		t.Error("Overlay modified the scene wireframes")
	}
}

func TestDefaultScene(t *testing.T) {
	sc := Default()
	if err := sc.Validate(); err != nil {
		t.Fatalf("default scene invalid: %v", err)
	}
	if len(sc.Lights()) == 0 {
		t.Error("default scene has no light")
	}
	if len(sc.Cameras) < 2 {
		t.Error("default scene has no gizmo camera")
	}
	if b := sc.Bounds(); b.Empty() {
		t.Error("default scene bounds empty")
	}
}
