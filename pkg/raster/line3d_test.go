package raster

import (
	"math"
	"math/rand"
	"testing"

	"github.com/taigrr/prism/pkg/camera"
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/render"
)

func testCamera() *camera.Camera {
	return camera.New(math3d.Zero3(), math3d.Zero3(), 90)
}

func count(l Line3D, cam *camera.Camera, w, h int) int {
	var n int
	for range l.Project(cam, w, h) {
		n++
	}
	return n
}

func TestLine3DScreen(t *testing.T) {
	tests := []struct {
		name   string
		cam    *camera.Camera
		line   Line3D
		want   Line2D
		wantOK bool
	}{
		{
			name:   "centre to the right",
			cam:    testCamera(),
			line:   L3(math3d.V3(0, 5, 0), math3d.V3(1, 5, 0), white),
			want:   Line2D{P1: Pt(200, 200), P2: Pt(160, 200)},
			wantOK: true,
		},
		{
			name:   "centre upwards",
			cam:    testCamera(),
			line:   L3(math3d.V3(0, 5, 0), math3d.V3(0, 5, 1), white),
			want:   Line2D{P1: Pt(200, 200), P2: Pt(200, 160)},
			wantOK: true,
		},
		{
			name:   "relative to camera position",
			cam:    camera.New(math3d.V3(0, -5, 0), math3d.Zero3(), 90),
			line:   L3(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), white),
			want:   Line2D{P1: Pt(200, 200), P2: Pt(160, 200)},
			wantOK: true,
		},
		{
			name:   "behind camera",
			cam:    testCamera(),
			line:   L3(math3d.V3(0, -5, 0), math3d.V3(1, -5, 0), white),
			wantOK: false,
		},
		{
			name:   "straddles camera",
			cam:    testCamera(),
			line:   L3(math3d.V3(0, -5, 0), math3d.V3(0, 5, 0), white),
			wantOK: false,
		},
		{
			name:   "endpoint on camera plane",
			cam:    testCamera(),
			line:   L3(math3d.V3(3, 0, 0), math3d.V3(0, 5, 0), white),
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.line.Screen(tt.cam, 400, 400)
			if ok != tt.wantOK {
				t.Fatalf("Screen ok = %v, want %v (got %v)", ok, tt.wantOK, got)
			}
			if ok && (got.P1 != tt.want.P1 || got.P2 != tt.want.P2) {
				t.Errorf("Screen = %v-%v, want %v-%v", got.P1, got.P2, tt.want.P1, tt.want.P2)
			}
		})
	}
}

func TestProjectCulledLineIsEmpty(t *testing.T) {
	cam := testCamera()
	l := L3(math3d.V3(-2, -1, 0), math3d.V3(2, -3, 1), white)
	c1, c2 := l.Clip(cam)
	if c1.W > 0 || c2.W > 0 {
		t.Fatalf("expected both w <= 0, got %v and %v", c1.W, c2.W)
	}
	if n := count(l, cam, 400, 400); n != 0 {
		t.Errorf("culled line produced %d points", n)
	}
}

func TestProjectFollowsRotation(t *testing.T) {
	// Yawed a quarter turn the camera looks along -X.
	cam := camera.New(math3d.Zero3(), math3d.V3(0, 0, math.Pi/2), 90)
	ahead := L3(math3d.V3(-5, 0, 0), math3d.V3(-5, 1, 0), white)
	if n := count(ahead, cam, 400, 400); n < 39 || n > 40 {
		t.Errorf("line ahead produced %d points, want about 40", n)
	}
	old := L3(math3d.V3(0, 5, 0), math3d.V3(1, 5, 0), white)
	if n := count(old, cam, 400, 400); n != 0 {
		t.Errorf("line beside the camera produced %d points", n)
	}
}

func TestRenderAll(t *testing.T) {
	cam := testCamera()
	fb := render.NewFramebuffer(400, 400)
	lines := []Line3D{
		L3(math3d.V3(0, 5, 0), math3d.V3(1, 5, 0), white),
		L3(math3d.V3(0, -5, 0), math3d.V3(1, -5, 0), white),
	}
	if n := RenderAll(fb, cam, lines); n != 1 {
		t.Errorf("RenderAll drew %d lines, want 1", n)
	}
	// x 160..199 on row 200, mirrored.
	for x := 160; x < 200; x++ {
		if fb.Pixels[400*200+(400-x)] != render.White {
			t.Fatalf("pixel x=%d not drawn", x)
		}
	}
}

func TestRenderAllCullingAgreesWithScreen(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	cam := camera.New(math3d.V3(0, -4, 1), math3d.V3(-0.2, 0, 0.3), 60)
	point := func() math3d.Vec3 {
		return math3d.V3(rng.Float64()*20-10, rng.Float64()*20-10, rng.Float64()*20-10)
	}
	for _, size := range [][2]int{{400, 400}, {400, 200}, {120, 300}, {40, 30}} {
		w, h := size[0], size[1]
		lines := make([]Line3D, 500)
		want := 0
		for i := range lines {
			lines[i] = L3(point(), point(), white)
			if _, ok := lines[i].Screen(cam, w, h); ok {
				want++
			}
		}
		if got := RenderAll(render.NewFramebuffer(w, h), cam, lines); got != want {
			t.Errorf("%dx%d: RenderAll drew %d lines, Screen accepts %d", w, h, got, want)
		}
	}
}

func TestWireframeBuilders(t *testing.T) {
	cam := camera.New(math3d.V3(1, 2, 3), math3d.V3(0.1, 0, 0.4), 60)
	tests := []struct {
		name  string
		lines []Line3D
		want  int
	}{
		{"cube", CubeLines(math3d.Zero3(), 2, white), 12},
		{"transformed cube", TransformedCubeLines(math3d.Translate(math3d.V3(1, 0, 0)), 1, white), 12},
		{"axes", AxesLines(math3d.Zero3(), 1), 3},
		{"grid", GridLines(4, 1, 0, white), 10},
		{"cross", CrossLines(math3d.Zero3(), 1, white), 3},
		{"gizmo", CameraGizmo(cam, 1, white), 10},
		{"empty box", EmptyAABB().Lines(white), 0},
		{"bad grid step", GridLines(4, 0, 0, white), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.lines) != tt.want {
				t.Errorf("got %d lines, want %d", len(tt.lines), tt.want)
			}
		})
	}
}

func TestCameraGizmoApex(t *testing.T) {
	cam := camera.New(math3d.V3(1, 2, 3), math3d.V3(0, 0, math.Pi/2), 90)
	lines := CameraGizmo(cam, 2, white)
	for i := 0; i < 8; i += 2 {
		if lines[i].P1 != cam.Pos() {
			t.Errorf("edge %d does not start at the camera", i)
		}
		// fov 90 at distance 2 puts the corners 2 units off axis.
		if d := lines[i].P2.Sub(cam.Pos()).Len(); math.Abs(d-math.Sqrt(12)) > 1e-9 {
			t.Errorf("corner %d at distance %v, want %v", i, d, math.Sqrt(12))
		}
	}
}

func TestAABB(t *testing.T) {
	b := EmptyAABB()
	if !b.Empty() {
		t.Fatal("EmptyAABB is not empty")
	}
	b = b.Extend(math3d.V3(1, -2, 3)).Extend(math3d.V3(-1, 2, 0))
	if b.Min != math3d.V3(-1, -2, 0) || b.Max != math3d.V3(1, 2, 3) {
		t.Errorf("bounds = %v..%v", b.Min, b.Max)
	}
	if b.Center() != math3d.V3(0, 0, 1.5) {
		t.Errorf("Center = %v", b.Center())
	}
	u := b.Union(AABB{Min: math3d.V3(0, 0, -1), Max: math3d.V3(5, 0, 0)})
	if u.Size() != math3d.V3(6, 4, 4) {
		t.Errorf("Union size = %v", u.Size())
	}
}

func BenchmarkProject(b *testing.B) {
	cam := camera.Default()
	lines := GridLines(10, 1, 0, white)
	fb := render.NewFramebuffer(320, 240)
	for b.Loop() {
		RenderAll(fb, cam, lines)
	}
}
