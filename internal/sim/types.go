package sim

import (
	"fmt"
	"time"

	"github.com/san-kum/starfall/internal/dynamo"
	"github.com/san-kum/starfall/internal/physics"
	"github.com/san-kum/starfall/internal/scene"
)

type Phase int

const (
	Approaching Phase = iota
	Exploding
	Decaying
)

func (p Phase) String() string {
	switch p {
	case Approaching:
		return "approaching"
	case Exploding:
		return "exploding"
	case Decaying:
		return "decaying"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Host is the rendering context a loop draws into.
type Host interface {
	Add(obj scene.Object)
	Remove(obj scene.Object)
	Render()
	Ready() bool
}

type FlashConfig struct {
	Color     uint32
	Intensity float64
	Range     float64
	Duration  time.Duration
}

type Config struct {
	Dt        float64
	Cutoff    float64
	Threshold float64
	G         float64
	Epsilon   float64
	Drag      float64
	Spin      float64
	A, B      physics.BodyState
	Burst     physics.BurstConfig
	Flash     FlashConfig

	// Headless runs only.
	Duration      float64
	StopWhenIdle  bool
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:        1.0 / 60,
		Cutoff:    2.2,
		Threshold: 6,
		G:         0.5,
		Epsilon:   0.1,
		Drag:      0.97,
		Spin:      0.01,
		A:         physics.DefaultA(),
		B:         physics.DefaultB(),
		Burst:     physics.DefaultBurstConfig(),
		Flash: FlashConfig{
			Color:     0xffaa00,
			Intensity: 10,
			Range:     100,
			Duration:  time.Second,
		},
		Duration:      8,
		StopWhenIdle:  true,
		ValidateState: true,
	}
}

func (c Config) Gravity() physics.Gravity {
	return physics.Gravity{G: c.G, Epsilon: c.Epsilon}
}

func (c Config) Validate() error {
	switch {
	case c.Dt <= 0:
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrInvalidConfig, c.Dt)
	case c.Threshold <= 0:
		return fmt.Errorf("%w: collision threshold must be positive, got %f", dynamo.ErrInvalidConfig, c.Threshold)
	case c.Epsilon < 0:
		return fmt.Errorf("%w: epsilon must not be negative, got %f", dynamo.ErrInvalidConfig, c.Epsilon)
	case c.Drag <= 0 || c.Drag > 1:
		return fmt.Errorf("%w: drag must be in (0, 1], got %f", dynamo.ErrInvalidConfig, c.Drag)
	case c.Burst.Count <= 0:
		return fmt.Errorf("%w: burst count must be positive, got %d", dynamo.ErrInvalidConfig, c.Burst.Count)
	case c.Burst.Life <= 0:
		return fmt.Errorf("%w: particle life must be positive, got %f", dynamo.ErrInvalidConfig, c.Burst.Life)
	case c.Burst.MinSpeed > c.Burst.MaxSpeed:
		return fmt.Errorf("%w: min speed %f above max speed %f", dynamo.ErrInvalidConfig, c.Burst.MinSpeed, c.Burst.MaxSpeed)
	case c.Flash.Duration < 0:
		return fmt.Errorf("%w: flash duration must not be negative", dynamo.ErrInvalidConfig)
	}
	return nil
}

// Clock is the simulated time since start and the moment of collision.
type Clock struct {
	Elapsed     float64
	CollisionAt *float64
}

func (c Clock) Collided() bool { return c.CollisionAt != nil }

// Frame is what one tick left behind.
type Frame struct {
	Tick       int
	Time       float64
	Phase      Phase
	Separation float64
	A, B       dynamo.Vec3
	ForceA     dynamo.Vec3
	ForceB     dynamo.Vec3
	Energy     float64
	Particles  int
	Flash      bool
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(f Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(f Frame)

func (fn ObserverFunc) OnTick(f Frame) { fn(f) }

type Result struct {
	Frames      []Frame
	Ticks       int
	Collided    bool
	CollisionAt float64
	IdleAt      float64
	Metrics     map[string]float64
}
