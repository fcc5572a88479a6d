package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/wav"
)

func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestExplosionSoundLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	samples := drain(ExplosionSound(rate, 500*time.Millisecond, 1))
	if len(samples) != rate.N(500*time.Millisecond) {
		t.Fatalf("expected %d samples, got %d", rate.N(500*time.Millisecond), len(samples))
	}

	peak := 0.0
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(s[0]))
		if math.IsNaN(s[0]) || math.Abs(s[0]) > 1.5 {
			t.Fatalf("sample out of range: %f", s[0])
		}
	}
	if peak < 0.05 {
		t.Errorf("sound is near silent, peak %f", peak)
	}

	tail := samples[len(samples)-10:]
	for _, s := range tail {
		if math.Abs(s[0]) > peak*0.05 {
			t.Errorf("tail not released: %f", s[0])
		}
	}
}

func TestExplosionSoundDeterministic(t *testing.T) {
	rate := beep.SampleRate(8000)
	a := drain(ExplosionSound(rate, 100*time.Millisecond, 7))
	b := drain(ExplosionSound(rate, 100*time.Millisecond, 7))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs", i)
		}
	}
}

func TestSpectrumFindsTone(t *testing.T) {
	rate := beep.SampleRate(8000)
	tone, err := generators.SineTone(rate, 500)
	if err != nil {
		t.Fatal(err)
	}
	const n = 1024
	mags := Spectrum(tone, n)
	if len(mags) != n/2 {
		t.Fatalf("expected %d bins, got %d", n/2, len(mags))
	}
	f := BinFrequency(Peak(mags), n, rate)
	if math.Abs(f-500) > float64(rate)/n {
		t.Errorf("peak at %.1f Hz, want 500", f)
	}

	low, mid, high := Bands(mags, rate)
	if mid <= low || mid <= high {
		t.Errorf("500 Hz should land in the mid band: %f %f %f", low, mid, high)
	}
}

func TestRumbleStaysLow(t *testing.T) {
	rate := beep.SampleRate(8000)
	const n = 4096
	mags := Spectrum(&rumble{start: 140, end: 38, fall: 0.35, rate: rate}, n)
	f := BinFrequency(Peak(mags), n, rate)
	if f < 30 || f > 150 {
		t.Errorf("rumble peak at %.1f Hz", f)
	}
	low, _, high := Bands(mags, rate)
	if low <= high {
		t.Errorf("expected more low than high energy: %f vs %f", low, high)
	}
}

func TestWriteWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boom.wav")
	rate := beep.SampleRate(8000)
	if err := WriteWAV(path, ExplosionSound(rate, 200*time.Millisecond, 1), rate); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	s, format, err := wav.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if format.SampleRate != rate || format.NumChannels != 2 {
		t.Errorf("format %+v", format)
	}
	if s.Len() != rate.N(200*time.Millisecond) {
		t.Errorf("expected %d frames, got %d", rate.N(200*time.Millisecond), s.Len())
	}
}

func TestSilentPlayer(t *testing.T) {
	var p *Player
	p.Play(nil)
	p.Boom(1)
	p.Close()
	if p.Ready() {
		t.Error("nil player reports ready")
	}
}
