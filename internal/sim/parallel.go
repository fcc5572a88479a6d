package sim

import (
	"context"

	"github.com/san-kum/starfall/internal/dynamo"
	"golang.org/x/sync/errgroup"
)

// SweepPoint is the outcome of one headless run in a sweep.
type SweepPoint struct {
	Speed         float64
	Collided      bool
	CollisionAt   float64
	Ticks         int
	MinSeparation float64
}

// Sweep runs one headless loop per initial approach speed, each body moving
// toward the other at that speed. Runs stop at the cutoff; a point that did
// not collide by then never will.
func Sweep(ctx context.Context, cfg Config, speeds []float64, seed int64, workers int) ([]SweepPoint, error) {
	points := make([]SweepPoint, len(speeds))
	pool := NewBurstPool(cfg.Burst.Count)

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, speed := range speeds {
		g.Go(func() error {
			c := cfg
			c.A.Velocity = dynamo.Vec3{X: speed}
			c.B.Velocity = dynamo.Vec3{X: -speed}
			c.Duration = cfg.Cutoff + cfg.Dt
			c.StopWhenIdle = true

			res, err := run(ctx, c, dynamo.NewRand(seed+int64(i)), pool, nil, nil)
			if err != nil {
				return err
			}

			pt := SweepPoint{
				Speed:         speed,
				Collided:      res.Collided,
				CollisionAt:   res.CollisionAt,
				Ticks:         res.Ticks,
				MinSeparation: minSeparation(res.Frames),
			}
			points[i] = pt
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

func minSeparation(frames []Frame) float64 {
	if len(frames) == 0 {
		return 0
	}
	m := frames[0].Separation
	for _, f := range frames[1:] {
		if f.Separation < m {
			m = f.Separation
		}
	}
	return m
}
