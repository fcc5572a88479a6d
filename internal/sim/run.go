package sim

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/starfall/internal/dynamo"
	"github.com/san-kum/starfall/internal/scene"
)

// Run ticks a loop against a headless graph for cfg.Duration seconds of
// simulated time. The flash timer follows simulated time so runs are
// reproducible.
func Run(ctx context.Context, cfg Config, rng dynamo.Rand, metrics ...Metric) (*Result, error) {
	return run(ctx, cfg, rng, nil, nil, metrics)
}

// RunLogged is Run with a logger attached to the loop.
func RunLogged(ctx context.Context, cfg Config, rng dynamo.Rand, logger *log.Logger, metrics ...Metric) (*Result, error) {
	return run(ctx, cfg, rng, nil, logger, metrics)
}

func run(ctx context.Context, cfg Config, rng dynamo.Rand, pool *BurstPool, logger *log.Logger, metrics []Metric) (*Result, error) {
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %f", dynamo.ErrInvalidConfig, cfg.Duration)
	}

	graph := scene.NewGraph(&scene.Recorder{})
	l, err := New(cfg, graph, rng)
	if err != nil {
		return nil, err
	}

	clock := scene.NewManualClock(time.Unix(0, 0))
	l.SetClock(clock)
	l.SetPool(pool)
	defer l.Release()
	l.SetLogger(logger)
	for _, m := range metrics {
		m.Reset()
		l.AddMetric(m)
	}

	steps := int(math.Round(cfg.Duration / cfg.Dt))
	tickDur := time.Duration(cfg.Dt * float64(time.Second))
	result := &Result{
		Frames:  make([]Frame, 0, steps),
		Metrics: make(map[string]float64),
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("%w: %w", dynamo.ErrCanceled, ctx.Err())
		default:
		}

		clock.Advance(tickDur)
		f := l.Tick()

		if cfg.ValidateState && !l.pair.IsValid() {
			return result, &dynamo.SimulationError{Tick: f.Tick, Time: f.Time, Wrapped: dynamo.ErrInvalidState}
		}

		result.Frames = append(result.Frames, f)
		result.Ticks++

		if l.Idle() {
			if result.IdleAt == 0 {
				result.IdleAt = f.Time
			}
			if cfg.StopWhenIdle {
				break
			}
		}
	}

	if c := l.Clock(); c.Collided() {
		result.Collided = true
		result.CollisionAt = *c.CollisionAt
	}
	for _, m := range metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
