package sim

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/starfall/internal/dynamo"
	"github.com/san-kum/starfall/internal/physics"
	"github.com/san-kum/starfall/internal/scene"
)

// Loop is the collision simulation. It is not safe for concurrent use; the
// host drives it from a single goroutine.
type Loop struct {
	cfg       Config
	host      Host
	rng       dynamo.Rand
	gravity   physics.Gravity
	pair      *physics.Pair
	particles []*physics.Particle
	flash     *scene.Light
	timers    *scene.Timers
	pool      *BurstPool
	clock     Clock
	phase     Phase
	tick      int
	force     [2]dynamo.Vec3
	logger    *log.Logger
	metrics   []Metric
	observers []Observer
}

// New builds a loop on host and places both bodies in it.
// It fails with dynamo.ErrNoSurface when the host cannot draw.
func New(cfg Config, host Host, rng dynamo.Rand) (*Loop, error) {
	if host == nil || !host.Ready() {
		return nil, dynamo.ErrNoSurface
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = dynamo.NewRand(time.Now().UnixNano())
	}

	l := &Loop{
		cfg:     cfg,
		host:    host,
		rng:     rng,
		gravity: cfg.Gravity(),
		pair:    physics.NewPair(cfg.A, cfg.B),
		timers:  scene.NewTimers(scene.SystemClock{}),
		logger:  log.New(io.Discard),
	}
	host.Add(l.pair.A)
	host.Add(l.pair.B)
	return l, nil
}

// Mount is New for hosts that may have no surface: it returns a nil loop and
// no error in that case. Every Loop method is a no-op on a nil loop.
func Mount(host Host, cfg Config, rng dynamo.Rand) (*Loop, error) {
	l, err := New(cfg, host, rng)
	if err == dynamo.ErrNoSurface {
		return nil, nil
	}
	return l, err
}

func (l *Loop) SetLogger(lg *log.Logger) {
	if l != nil && lg != nil {
		l.logger = lg
	}
}

// SetClock replaces the wall clock used for the collision flash. A pending
// flash removal keeps its remaining delay on the new clock.
func (l *Loop) SetClock(c scene.Clock) {
	if l != nil {
		l.timers.SetClock(c)
	}
}

func (l *Loop) SetPool(p *BurstPool) {
	if l != nil {
		l.pool = p
	}
}

func (l *Loop) AddMetric(m Metric) {
	if l != nil {
		l.metrics = append(l.metrics, m)
	}
}

func (l *Loop) AddObserver(o Observer) {
	if l != nil {
		l.observers = append(l.observers, o)
	}
}

// Tick advances the simulation by one fixed step and renders the frame.
func (l *Loop) Tick() Frame {
	if l == nil {
		return Frame{}
	}

	l.timers.RunDue()
	l.tick++
	l.clock.Elapsed += l.cfg.Dt

	switch l.phase {
	case Approaching:
		l.approach()
	case Exploding, Decaying:
		l.decay()
	}

	l.host.Render()

	f := l.Frame()
	for _, m := range l.metrics {
		m.Observe(f)
	}
	for _, o := range l.observers {
		o.OnTick(f)
	}
	return f
}

func (l *Loop) approach() {
	fa, fb := l.pair.Step(l.gravity, l.cfg.Dt, l.cfg.Spin)
	l.force = [2]dynamo.Vec3{fa, fb}

	if l.clock.Elapsed >= l.cfg.Cutoff {
		return
	}
	if sep := l.pair.Separation(); sep < l.cfg.Threshold {
		l.explode(sep)
	}
}

func (l *Loop) explode(sep float64) {
	at := l.clock.Elapsed
	l.clock.CollisionAt = &at
	origin := l.pair.Midpoint()

	var buf []*physics.Particle
	if l.pool != nil {
		buf = l.pool.Get()
	}
	l.particles = physics.Burst(buf, origin, l.cfg.Burst, l.rng)
	for _, p := range l.particles {
		l.host.Add(p)
	}

	flash := &scene.Light{
		Position:  origin,
		Color:     l.cfg.Flash.Color,
		Intensity: l.cfg.Flash.Intensity,
		Range:     l.cfg.Flash.Range,
	}
	l.flash = flash
	l.host.Add(flash)
	l.timers.After(l.cfg.Flash.Duration, func() {
		l.host.Remove(flash)
		if l.flash == flash {
			l.flash = nil
		}
	})

	l.pair.Hide()
	l.force = [2]dynamo.Vec3{}
	l.phase = Exploding

	l.logger.Debug("collision", "tick", l.tick, "t", at, "separation", sep, "particles", len(l.particles))
}

func (l *Loop) decay() {
	l.phase = Decaying
	if len(l.particles) == 0 {
		return
	}

	alive := l.particles[:0]
	for _, p := range l.particles {
		if p.Decay(l.cfg.Dt, l.cfg.Drag) {
			alive = append(alive, p)
			continue
		}
		l.host.Remove(p)
	}
	for i := len(alive); i < len(l.particles); i++ {
		l.particles[i] = nil
	}
	l.particles = alive

	if len(l.particles) == 0 {
		l.logger.Debug("debris cleared", "tick", l.tick, "t", l.clock.Elapsed)
		if l.pool != nil {
			l.pool.Put(l.particles)
		}
		l.particles = nil
	}
}

// Release detaches any live fragments from the host and hands their buffer
// back to the pool. The loop keeps ticking afterwards with no debris.
func (l *Loop) Release() {
	if l == nil || l.particles == nil {
		return
	}
	for _, p := range l.particles {
		l.host.Remove(p)
	}
	if l.pool != nil {
		l.pool.Put(l.particles)
	}
	l.particles = nil
}

// Frame snapshots the current state.
func (l *Loop) Frame() Frame {
	if l == nil {
		return Frame{}
	}
	f := Frame{
		Tick:       l.tick,
		Time:       l.clock.Elapsed,
		Phase:      l.phase,
		Separation: l.pair.Separation(),
		A:          l.pair.A.Position,
		B:          l.pair.B.Position,
		ForceA:     l.force[0],
		ForceB:     l.force[1],
		Particles:  len(l.particles),
		Flash:      l.flash != nil,
	}
	if l.phase == Approaching {
		f.Energy = physics.Energy(l.pair, l.gravity, l.cfg.Dt)
	}
	return f
}

func (l *Loop) Phase() Phase {
	if l == nil {
		return Approaching
	}
	return l.phase
}

func (l *Loop) Clock() Clock {
	if l == nil {
		return Clock{}
	}
	return l.clock
}

// Idle reports whether the explosion has fully burnt out.
func (l *Loop) Idle() bool {
	return l != nil && l.phase == Decaying && len(l.particles) == 0
}

func (l *Loop) Ticks() int {
	if l == nil {
		return 0
	}
	return l.tick
}

func (l *Loop) Pair() *physics.Pair {
	if l == nil {
		return nil
	}
	return l.pair
}

// Particles returns the live fragments. The slice is owned by the loop.
func (l *Loop) Particles() []*physics.Particle {
	if l == nil {
		return nil
	}
	return l.particles
}

func (l *Loop) Flash() *scene.Light {
	if l == nil {
		return nil
	}
	return l.flash
}

func (l *Loop) Config() Config {
	if l == nil {
		return Config{}
	}
	return l.cfg
}
