package audio

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player plays sounds on the default output device. A Player whose device
// failed to open stays silent.
type Player struct {
	rate   beep.SampleRate
	ready  bool
	logger *log.Logger
}

// NewPlayer opens the speaker. Failure is logged, not returned: the
// animation runs without sound.
func NewPlayer(rate beep.SampleRate, logger *log.Logger) *Player {
	p := &Player{rate: rate, logger: logger}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		if logger != nil {
			logger.Warn("audio unavailable", "err", err)
		}
		return p
	}
	p.ready = true
	return p
}

func (p *Player) Ready() bool { return p != nil && p.ready }

func (p *Player) Rate() beep.SampleRate { return p.rate }

func (p *Player) Play(s beep.Streamer) {
	if !p.Ready() {
		return
	}
	speaker.Play(s)
}

// Boom plays the collision sound.
func (p *Player) Boom(seed int64) {
	if !p.Ready() {
		return
	}
	p.Play(ExplosionSound(p.rate, 1500*time.Millisecond, seed))
}

// PlayWait plays s and blocks until it ends or ctx is done.
func (p *Player) PlayWait(ctx context.Context, s beep.Streamer) error {
	if !p.Ready() {
		return nil
	}
	done := make(chan struct{})
	speaker.Play(beep.Seq(s, beep.Callback(func() { close(done) })))
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	}
}

func (p *Player) Close() {
	if p.Ready() {
		speaker.Close()
		p.ready = false
	}
}
