package scene

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/taigrr/prism/pkg/camera"
	"github.com/taigrr/prism/pkg/log"
	"github.com/taigrr/prism/pkg/math3d"
	"github.com/taigrr/prism/pkg/raster"
	"github.com/taigrr/prism/pkg/render"
)

var logger = log.New("scene")

// Triple is a JSON [x, y, z] or [r, g, b] array.
type Triple [3]float64

// Vec returns the triple as a vector.
func (t Triple) Vec() math3d.Vec3 { return math3d.V3(t[0], t[1], t[2]) }

// Col returns the triple as a colour.
func (t Triple) Col() render.Col { return render.Col{R: t[0], G: t[1], B: t[2]} }

// Radians converts a triple of degrees.
func (t Triple) Radians() math3d.Vec3 {
	return t.Vec().Scale(math.Pi / 180)
}

// CameraCfg is a camera as written in a scene file. Rotation is in degrees.
type CameraCfg struct {
	Name        string  `json:"name,omitempty"`
	Pos         Triple  `json:"pos"`
	RotDeg      Triple  `json:"rotDeg"`
	FOV         float64 `json:"fov,omitempty"`
	Aperture    float64 `json:"aperture,omitempty"`
	FocalLength float64 `json:"focalLength,omitempty"`
}

// SphereCfg is one sphere and its material.
type SphereCfg struct {
	Center       Triple  `json:"center"`
	Radius       float64 `json:"radius"`
	Albedo       Triple  `json:"albedo"`
	Emission     Triple  `json:"emission,omitempty"`
	Reflectivity float64 `json:"reflectivity,omitempty"`
	Roughness    float64 `json:"roughness,omitempty"`
}

// LineCfg is an explicit overlay segment.
type LineCfg struct {
	From  Triple `json:"from"`
	To    Triple `json:"to"`
	Color Triple `json:"color"`
}

// CubeCfg is an axis-aligned overlay cube of edge length Size.
type CubeCfg struct {
	Center Triple  `json:"center"`
	Size   float64 `json:"size"`
	Color  Triple  `json:"color"`
}

// SkyCfg selects the background. Type is "gradient" (default), "solid" or
// "image". Image paths are relative to the scene file.
type SkyCfg struct {
	Type      string  `json:"type,omitempty"`
	Zenith    *Triple `json:"zenith,omitempty"`
	Horizon   *Triple `json:"horizon,omitempty"`
	Ground    *Triple `json:"ground,omitempty"`
	Color     Triple  `json:"color,omitempty"`
	Image     string  `json:"image,omitempty"`
	Intensity float64 `json:"intensity,omitempty"`
	YawDeg    float64 `json:"yawDeg,omitempty"`
	Bilinear  bool    `json:"bilinear,omitempty"`
}

// OverlayCfg mirrors OverlayOptions field for field.
type OverlayCfg struct {
	Axes       bool    `json:"axes,omitempty"`
	AxesLength float64 `json:"axesLength,omitempty"`
	Grid       float64 `json:"grid,omitempty"`
	GridStep   float64 `json:"gridStep,omitempty"`
	GridHeight float64 `json:"gridHeight,omitempty"`
	Bounds     bool    `json:"bounds,omitempty"`
	Gizmos     bool    `json:"gizmos,omitempty"`
}

// Config is the JSON scene file.
type Config struct {
	Cameras []CameraCfg `json:"cameras"`
	Spheres []SphereCfg `json:"spheres"`
	Lines   []LineCfg   `json:"lines,omitempty"`
	Cubes   []CubeCfg   `json:"cubes,omitempty"`
	Sky     SkyCfg      `json:"sky"`
	Overlay OverlayCfg  `json:"overlay"`
}

// Load reads and builds a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	sc, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	logger.Infof("loaded %s: %d spheres, %d cameras, %d lines", path, len(sc.Spheres), len(sc.Cameras), len(sc.Wireframes))
	return sc, nil
}

// Parse builds a scene from JSON. dir resolves relative sky image paths.
func Parse(data []byte, dir string) (*Scene, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return cfg.Build(dir)
}

// Build converts the configuration into a validated scene.
func (c Config) Build(dir string) (*Scene, error) {
	sc := &Scene{
		Overlay: OverlayOptions(c.Overlay),
	}

	for _, cc := range c.Cameras {
		fov := cc.FOV
		if fov <= 0 {
			fov = 60
		}
		cam := camera.New(cc.Pos.Vec(), cc.RotDeg.Radians(), fov)
		cam.Name = cc.Name
		focal := cc.FocalLength
		if focal == 0 {
			focal = 1
		}
		cam.SetLens(cc.Aperture, focal)
		sc.Cameras = append(sc.Cameras, cam)
	}

	for _, s := range c.Spheres {
		sc.Spheres = append(sc.Spheres, Sphere{
			Center: s.Center.Vec(),
			Radius: s.Radius,
			Material: Material{
				Albedo:       s.Albedo.Col(),
				Emission:     s.Emission.Col(),
				Reflectivity: s.Reflectivity,
				Roughness:    s.Roughness,
			},
		})
	}

	for _, l := range c.Lines {
		sc.Wireframes = append(sc.Wireframes, raster.L3(l.From.Vec(), l.To.Vec(), l.Color.Col()))
	}
	for _, cube := range c.Cubes {
		sc.Wireframes = append(sc.Wireframes, raster.CubeLines(cube.Center.Vec(), cube.Size, cube.Color.Col())...)
	}

	sky, err := c.Sky.build(dir)
	if err != nil {
		return nil, err
	}
	sc.Sky = sky

	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s SkyCfg) build(dir string) (Skybox, error) {
	switch s.Type {
	case "", "gradient":
		g := DefaultSky()
		if s.Zenith != nil {
			g.Zenith = s.Zenith.Col()
		}
		if s.Horizon != nil {
			g.Horizon = s.Horizon.Col()
		}
		if s.Ground != nil {
			g.Ground = s.Ground.Col()
		}
		return g, nil
	case "solid":
		return SolidSky(s.Color.Col()), nil
	case "image":
		path := s.Image
		if !filepath.IsAbs(path) && dir != "" {
			path = filepath.Join(dir, path)
		}
		tex, err := render.LoadTexture(path)
		if err != nil {
			return nil, fmt.Errorf("load sky: %w", err)
		}
		if s.Bilinear {
			tex.Filter = render.FilterBilinear
		}
		intensity := s.Intensity
		if intensity <= 0 {
			intensity = 1
		}
		return ImageSky{Texture: tex, Intensity: intensity, Yaw: s.YawDeg * math.Pi / 180}, nil
	}
	return nil, fmt.Errorf("unknown sky type %q", s.Type)
}

// DefaultConfig is the built-in scene: a lit trio of spheres on a large
// ground sphere, seen by one camera with a second camera for the gizmo.
func DefaultConfig() Config {
	return Config{
		Cameras: []CameraCfg{
			{Name: "main", Pos: Triple{0, -6, 1.5}, RotDeg: Triple{-8, 0, 0}, FOV: 60, Aperture: 0.02, FocalLength: 6},
			{Name: "witness", Pos: Triple{4, -3, 3}, RotDeg: Triple{-30, 0, 50}, FOV: 45},
		},
		Spheres: []SphereCfg{
			{Center: Triple{0, 0, -1000}, Radius: 1000, Albedo: Triple{0.7, 0.7, 0.7}},
			{Center: Triple{0, 0, 1}, Radius: 1, Albedo: Triple{0.85, 0.25, 0.2}},
			{Center: Triple{2.2, 0.6, 0.8}, Radius: 0.8, Albedo: Triple{0.9, 0.9, 0.9}, Reflectivity: 0.9, Roughness: 0.05},
			{Center: Triple{-2, -0.6, 0.5}, Radius: 0.5, Albedo: Triple{0.2, 0.35, 0.85}, Reflectivity: 0.2, Roughness: 0.4},
			{Center: Triple{-1, 2.5, 5}, Radius: 1, Emission: Triple{6, 5.6, 5}},
		},
		Cubes: []CubeCfg{
			{Center: Triple{0, 0, 1}, Size: 2.2, Color: Triple{0, 1, 1}},
		},
		Overlay: OverlayCfg{Axes: true, Grid: 10, GridStep: 1, Gizmos: true},
	}
}

// Default builds DefaultConfig.
func Default() *Scene {
	sc, err := DefaultConfig().Build("")
	if err != nil {
		panic(fmt.Sprintf("default scene: %v", err))
	}
	return sc
}
