package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const SampleRate = beep.SampleRate(44100)

// noise is low-passed white noise: the crack of the burst.
type noise struct {
	rng    *rand.Rand
	cutoff float64
	dt     float64
	state  float64
}

func newNoise(rate beep.SampleRate, cutoff float64, seed int64) *noise {
	return &noise{
		rng:    rand.New(rand.NewSource(seed)),
		cutoff: cutoff,
		dt:     1 / float64(rate),
	}
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		var out float64
		out, n.state = lpf(n.rng.Float64()*2-1, n.cutoff, n.dt, n.state)
		samples[i][0] = out
		samples[i][1] = out
	}
	return len(samples), true
}

func (n *noise) Err() error { return nil }

// rumble is a sine whose pitch falls exponentially from start to end.
type rumble struct {
	start, end float64
	fall       float64 // seconds for the pitch to fall by 1/e
	rate       beep.SampleRate
	phase      float64
	pos        int
}

func (r *rumble) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		t := float64(r.pos) / float64(r.rate)
		freq := r.end + (r.start-r.end)*math.Exp(-t/r.fall)
		v := math.Sin(2 * math.Pi * r.phase)
		samples[i][0] = v
		samples[i][1] = v
		r.phase += freq / float64(r.rate)
		r.phase -= math.Floor(r.phase)
		r.pos++
	}
	return len(samples), true
}

func (r *rumble) Err() error { return nil }

// envelope shapes a stream with a linear attack and an exponential release
// and ends it after total samples.
type envelope struct {
	streamer beep.Streamer
	pos      int
	attack   int
	total    int
	decay    float64
}

func newEnvelope(s beep.Streamer, d, attack time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(d)
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		total:    total,
		decay:    5 / float64(total),
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	if e.pos >= e.total {
		return 0, false
	}
	if rest := e.total - e.pos; len(samples) > rest {
		samples = samples[:rest]
	}
	n, ok := e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := math.Exp(-float64(e.pos) * e.decay)
		if e.pos < e.attack {
			vol *= float64(e.pos) / float64(e.attack)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// One pole low pass.
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

// math.Log2(0) is -Inf, so zero volume is silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// ExplosionSound is the collision: a filtered noise crack over a falling sine
// rumble, both under an attack/release envelope. The stream ends after d.
func ExplosionSound(rate beep.SampleRate, d time.Duration, seed int64) beep.Streamer {
	crack := newEnvelope(newVolume(newNoise(rate, 1800, seed), 0.9), d/2, 5*time.Millisecond, rate)
	boom := newEnvelope(newVolume(&rumble{start: 140, end: 38, fall: 0.35, rate: rate}, 0.6), d, 20*time.Millisecond, rate)
	return beep.Take(rate.N(d), beep.Seq(beep.Mix(crack, boom), beep.Silence(-1)))
}
