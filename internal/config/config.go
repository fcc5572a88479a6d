package config

import (
	"fmt"
	"os"
	"time"

	"github.com/san-kum/starfall/internal/dynamo"
	"github.com/san-kum/starfall/internal/physics"
	"github.com/san-kum/starfall/internal/scene"
	"github.com/san-kum/starfall/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt        = 1.0 / 60
	DefaultDuration  = 8.0
	DefaultCutoff    = 2.2
	DefaultThreshold = 6.0
	DefaultG         = 0.5
	DefaultEpsilon   = 0.1
	DefaultDrag      = 0.97
	DefaultSpin      = 0.01
	DefaultSeed      = 1
	DefaultTheme     = "ember"
)

type Config struct {
	Dt           float64        `yaml:"dt"`
	Duration     float64        `yaml:"duration"`
	Seed         int64          `yaml:"seed"`
	Cutoff       float64        `yaml:"cutoff"`
	Threshold    float64        `yaml:"threshold"`
	G            float64        `yaml:"g"`
	Epsilon      float64        `yaml:"epsilon"`
	Drag         float64        `yaml:"drag"`
	Spin         float64        `yaml:"spin"`
	StopWhenIdle bool           `yaml:"stop_when_idle"`
	BodyA        BodyConfig     `yaml:"body_a"`
	BodyB        BodyConfig     `yaml:"body_b"`
	Burst        BurstConfig    `yaml:"burst"`
	Flash        FlashConfig    `yaml:"flash"`
	Camera       CameraConfig   `yaml:"camera"`
	Backdrop     BackdropConfig `yaml:"backdrop"`
	Theme        string         `yaml:"theme"`
}

type BodyConfig struct {
	Position [3]float64 `yaml:"position,flow"`
	Velocity [3]float64 `yaml:"velocity,flow"`
}

type BurstConfig struct {
	Count    int      `yaml:"count"`
	Life     float64  `yaml:"life"`
	MinSpeed float64  `yaml:"min_speed"`
	MaxSpeed float64  `yaml:"max_speed"`
	Palette  []uint32 `yaml:"palette,flow"`
}

type FlashConfig struct {
	Color     uint32        `yaml:"color"`
	Intensity float64       `yaml:"intensity"`
	Range     float64       `yaml:"range"`
	Duration  time.Duration `yaml:"duration"`
}

type CameraConfig struct {
	Z    float64 `yaml:"z"`
	FOV  float64 `yaml:"fov"`
	Zoom float64 `yaml:"zoom"`
}

type BackdropConfig struct {
	Enabled bool    `yaml:"enabled"`
	Stars   int     `yaml:"stars"`
	Spin    float64 `yaml:"spin"`
}

func DefaultConfig() *Config {
	burst := physics.DefaultBurstConfig()
	return &Config{
		Dt:           DefaultDt,
		Duration:     DefaultDuration,
		Seed:         DefaultSeed,
		Cutoff:       DefaultCutoff,
		Threshold:    DefaultThreshold,
		G:            DefaultG,
		Epsilon:      DefaultEpsilon,
		Drag:         DefaultDrag,
		Spin:         DefaultSpin,
		StopWhenIdle: true,
		BodyA:        bodyConfig(physics.DefaultA()),
		BodyB:        bodyConfig(physics.DefaultB()),
		Burst: BurstConfig{
			Count:    burst.Count,
			Life:     burst.Life,
			MinSpeed: burst.MinSpeed,
			MaxSpeed: burst.MaxSpeed,
			Palette:  append([]uint32(nil), burst.Palette...),
		},
		Flash: FlashConfig{
			Color:     0xffaa00,
			Intensity: 10,
			Range:     100,
			Duration:  time.Second,
		},
		Camera: CameraConfig{
			Z:    scene.DefaultZ,
			FOV:  scene.DefaultFOV,
			Zoom: 1,
		},
		Backdrop: BackdropConfig{
			Enabled: true,
			Stars:   300,
			Spin:    0.002,
		},
		Theme: DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base. Keys missing from the file keep the
// base values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := base.SimConfig().Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SimConfig converts the file form into loop parameters.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Dt:        c.Dt,
		Cutoff:    c.Cutoff,
		Threshold: c.Threshold,
		G:         c.G,
		Epsilon:   c.Epsilon,
		Drag:      c.Drag,
		Spin:      c.Spin,
		A:         c.BodyA.State(),
		B:         c.BodyB.State(),
		Burst: physics.BurstConfig{
			Count:    c.Burst.Count,
			Life:     c.Burst.Life,
			MinSpeed: c.Burst.MinSpeed,
			MaxSpeed: c.Burst.MaxSpeed,
			Palette:  c.Burst.Palette,
		},
		Flash: sim.FlashConfig{
			Color:     c.Flash.Color,
			Intensity: c.Flash.Intensity,
			Range:     c.Flash.Range,
			Duration:  c.Flash.Duration,
		},
		Duration:      c.Duration,
		StopWhenIdle:  c.StopWhenIdle,
		ValidateState: true,
	}
}

func (c *Config) BackdropConfig() scene.BackdropConfig {
	b := scene.DefaultBackdropConfig()
	b.Stars = c.Backdrop.Stars
	b.Spin = c.Backdrop.Spin
	if !c.Backdrop.Enabled {
		b.Stars, b.Tubular = 0, 0
	}
	return b
}

// ApplyCamera positions cam as configured.
func (c *Config) ApplyCamera(cam *scene.Camera) {
	if c.Camera.Z != 0 {
		cam.Position = dynamo.Vec3{Z: c.Camera.Z}
	}
	if c.Camera.FOV > 0 {
		cam.FOV = c.Camera.FOV
	}
	if c.Camera.Zoom > 0 {
		cam.Zoom = c.Camera.Zoom
	}
}

// SetSpeed sets both stars moving toward each other along x at v units per tick.
func (c *Config) SetSpeed(v float64) {
	c.BodyA.Velocity = [3]float64{v, 0, 0}
	c.BodyB.Velocity = [3]float64{-v, 0, 0}
}

func (b BodyConfig) State() physics.BodyState {
	return physics.BodyState{
		Position: dynamo.Vec3{X: b.Position[0], Y: b.Position[1], Z: b.Position[2]},
		Velocity: dynamo.Vec3{X: b.Velocity[0], Y: b.Velocity[1], Z: b.Velocity[2]},
	}
}

func bodyConfig(s physics.BodyState) BodyConfig {
	return BodyConfig{
		Position: [3]float64{s.Position.X, s.Position.Y, s.Position.Z},
		Velocity: [3]float64{s.Velocity.X, s.Velocity.Y, s.Velocity.Z},
	}
}
