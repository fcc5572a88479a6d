package sim

import (
	"context"
	"errors"
	"math"
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/san-kum/starfall/internal/dynamo"
	"github.com/san-kum/starfall/internal/physics"
)

type countMetric struct {
	n int
}

func (m *countMetric) Name() string   { return "count" }
func (m *countMetric) Observe(Frame)  { m.n++ }
func (m *countMetric) Value() float64 { return float64(m.n) }
func (m *countMetric) Reset()         { m.n = 0 }

func TestRunDefault(t *testing.T) {
	m := &countMetric{n: 99}
	res, err := Run(context.Background(), DefaultConfig(), dynamo.NewRand(7), m)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Collided || res.CollisionAt <= 0 || res.CollisionAt >= 2.2 {
		t.Fatalf("unexpected collision: %+v", res)
	}
	if res.IdleAt <= res.CollisionAt {
		t.Errorf("idle at %f before collision at %f", res.IdleAt, res.CollisionAt)
	}
	if res.Ticks != len(res.Frames) {
		t.Errorf("ticks %d frames %d", res.Ticks, len(res.Frames))
	}
	if last := res.Frames[len(res.Frames)-1]; last.Particles != 0 {
		t.Errorf("run stopped with %d particles", last.Particles)
	}
	if res.Metrics["count"] != float64(res.Ticks) {
		t.Errorf("metric saw %v ticks, want %d", res.Metrics["count"], res.Ticks)
	}
}

func TestRunIsReproducible(t *testing.T) {
	a, err := Run(context.Background(), DefaultConfig(), dynamo.NewRand(3))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Run(context.Background(), DefaultConfig(), dynamo.NewRand(3))
	if err != nil {
		t.Fatal(err)
	}
	if len(a.Frames) != len(b.Frames) {
		t.Fatalf("frame counts differ: %d vs %d", len(a.Frames), len(b.Frames))
	}
	for i := range a.Frames {
		if a.Frames[i] != b.Frames[i] {
			t.Fatalf("frame %d differs", i)
		}
	}
}

func TestRunWithoutIdleStop(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StopWhenIdle = false
	cfg.Duration = 10
	res, err := Run(context.Background(), cfg, dynamo.NewRand(1))
	if err != nil {
		t.Fatal(err)
	}
	if res.Ticks != 600 {
		t.Errorf("expected 600 ticks, got %d", res.Ticks)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, DefaultConfig(), dynamo.NewRand(1))
	if !errors.Is(err, dynamo.ErrCanceled) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

func TestRunInvalidState(t *testing.T) {
	cfg := DefaultConfig()
	cfg.A.Velocity.X = math.NaN()
	_, err := Run(context.Background(), cfg, dynamo.NewRand(1))

	var simErr *dynamo.SimulationError
	if !errors.As(err, &simErr) || !errors.Is(err, dynamo.ErrInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
	if simErr.Tick != 1 {
		t.Errorf("expected failure on tick 1, got %d", simErr.Tick)
	}
}

func TestRunRejectsBadDuration(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Duration = 0
	if _, err := Run(context.Background(), cfg, nil); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Fatalf("got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"dt", func(c *Config) { c.Dt = -1 }},
		{"threshold", func(c *Config) { c.Threshold = 0 }},
		{"epsilon", func(c *Config) { c.Epsilon = -0.1 }},
		{"drag", func(c *Config) { c.Drag = 1.5 }},
		{"count", func(c *Config) { c.Burst.Count = 0 }},
		{"life", func(c *Config) { c.Burst.Life = 0 }},
		{"speed", func(c *Config) { c.Burst.MinSpeed = 30 }},
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSweep(t *testing.T) {
	speeds := []float64{0.05, 0.3, 0.5, 0.8}
	points, err := Sweep(context.Background(), DefaultConfig(), speeds, 1, 2)
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if len(points) != len(speeds) {
		t.Fatalf("expected %d points, got %d", len(speeds), len(points))
	}
	if points[0].Collided {
		t.Error("slowest approach should not collide before the cutoff")
	}
	for i, pt := range points[1:] {
		if !pt.Collided {
			t.Errorf("speed %f did not collide", pt.Speed)
		}
		if i > 0 && pt.CollisionAt >= points[i].CollisionAt {
			t.Errorf("faster approach at %f collided no earlier (%f >= %f)", pt.Speed, pt.CollisionAt, points[i].CollisionAt)
		}
	}
}

func TestBurstPoolReuse(t *testing.T) {
	p := NewBurstPool(300)
	s := p.Get()
	if len(s) != 0 || cap(s) < 300 {
		t.Fatalf("unexpected buffer len %d cap %d", len(s), cap(s))
	}
	s = append(s, &physics.Particle{Life: 1})
	p.Put(s)
	if r := p.Get(); len(r) != 0 {
		t.Errorf("recycled buffer not emptied: len %d", len(r))
	}

	// undersized buffers are dropped
	p.Put(make([]*physics.Particle, 0, 10))
}

func TestRunsShareBurstBuffer(t *testing.T) {
	if raceEnabled {
		t.Skip("sync.Pool drops buffers at random under the race detector")
	}
	defer debug.SetGCPercent(debug.SetGCPercent(-1))
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(1))

	cfg := DefaultConfig()
	cfg.Duration = cfg.Cutoff + cfg.Dt
	cfg.StopWhenIdle = true
	pool := NewBurstPool(cfg.Burst.Count)

	for i := 0; i < 3; i++ {
		res, err := run(context.Background(), cfg, dynamo.NewRand(int64(i)), pool, nil, nil)
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if !res.Collided {
			t.Fatalf("run %d did not collide", i)
		}
	}
	if n := pool.Allocated(); n != 1 {
		t.Errorf("expected one buffer shared by all runs, pool allocated %d", n)
	}
}

type cancelOnBurst struct {
	cancel context.CancelFunc
}

func (m *cancelOnBurst) Name() string   { return "cancel" }
func (m *cancelOnBurst) Value() float64 { return 0 }
func (m *cancelOnBurst) Reset()         {}
func (m *cancelOnBurst) Observe(f Frame) {
	if f.Particles > 0 {
		m.cancel()
	}
}

func TestCanceledRunReturnsBuffer(t *testing.T) {
	if raceEnabled {
		t.Skip("sync.Pool drops buffers at random under the race detector")
	}
	defer debug.SetGCPercent(debug.SetGCPercent(-1))
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(1))

	cfg := DefaultConfig()
	pool := NewBurstPool(cfg.Burst.Count)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stop := &cancelOnBurst{cancel: cancel}

	if _, err := run(ctx, cfg, dynamo.NewRand(1), pool, nil, []Metric{stop}); !errors.Is(err, dynamo.ErrCanceled) {
		t.Fatalf("expected ErrCanceled, got %v", err)
	}
	if _, err := run(context.Background(), cfg, dynamo.NewRand(1), pool, nil, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if n := pool.Allocated(); n != 1 {
		t.Errorf("pool allocated %d buffers", n)
	}
}
