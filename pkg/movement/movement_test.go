package movement

import (
	"math"
	"testing"

	"github.com/taigrr/prism/pkg/camera"
	"github.com/taigrr/prism/pkg/math3d"
)

func TestIdleControllerDoesNotMove(t *testing.T) {
	c := NewController(30)
	cam := camera.Default()
	before := cam.Pos()
	if c.Update(cam) {
		t.Error("idle controller reported movement")
	}
	if cam.Pos() != before {
		t.Error("idle controller moved the camera")
	}
}

func TestPushMovesInCameraFrame(t *testing.T) {
	tests := []struct {
		name   string
		yaw    float64
		action Action
		want   math3d.Vec3 // Direction of travel
	}{
		{"forward", 0, Forward, math3d.V3(0, 1, 0)},
		{"back", 0, Back, math3d.V3(0, -1, 0)},
		{"right", 0, Right, math3d.V3(1, 0, 0)},
		{"up", 0, Up, math3d.V3(0, 0, 1)},
		{"forward when yawed", math.Pi / 2, Forward, math3d.V3(-1, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := camera.New(math3d.Zero3(), math3d.V3(0, 0, tt.yaw), 60)
			c := NewController(30)
			c.Push(tt.action)
			if !c.Update(cam) {
				t.Fatal("Update reported no movement")
			}
			dir := cam.Pos().Normalize()
			if dir.Sub(tt.want).Len() > 1e-9 {
				t.Errorf("moved along %v, want %v", dir, tt.want)
			}
		})
	}
}

func TestVelocityDecays(t *testing.T) {
	c := NewController(30)
	cam := camera.Default()
	c.Push(Forward)
	c.Push(YawLeft)

	var frames int
	for c.Moving() && frames < 1000 {
		c.Update(cam)
		frames++
	}
	if c.Moving() {
		t.Fatal("controller never settled")
	}
	if frames < 2 {
		t.Errorf("settled after %d frames, expected a gradual stop", frames)
	}
	if cam.Rot().Z <= 0 {
		t.Errorf("yaw left did not increase rot.Z: %v", cam.Rot())
	}
	if c.Update(cam) {
		t.Error("settled controller still reports movement")
	}
}

func TestPitchClamped(t *testing.T) {
	c := NewController(30)
	cam := camera.Default()
	for range 200 {
		c.Push(PitchUp)
		c.Update(cam)
	}
	if cam.Rot().X > maxPitch+1e-12 {
		t.Errorf("pitch %v exceeds %v", cam.Rot().X, maxPitch)
	}
}

func TestReset(t *testing.T) {
	c := NewController(30)
	c.Push(Down)
	c.Push(PitchDown)
	c.Reset()
	if c.Moving() {
		t.Error("Reset left velocity")
	}
}
