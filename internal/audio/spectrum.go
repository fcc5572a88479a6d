package audio

import (
	"math/cmplx"

	"github.com/gopxl/beep"
	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// Spectrum reads up to n samples from s, mixes them to mono, applies a Hann
// window and returns the magnitudes of the first n/2 frequency bins.
func Spectrum(s beep.Streamer, n int) []float64 {
	if n < 2 {
		return nil
	}
	buf := make([][2]float64, n)
	read := 0
	for read < n {
		k, ok := s.Stream(buf[read:])
		read += k
		if !ok || k == 0 {
			break
		}
	}

	mono := make([]float64, n)
	for i := 0; i < read; i++ {
		mono[i] = (buf[i][0] + buf[i][1]) / 2
	}
	window.Apply(mono, window.Hann)

	bins := fft.FFTReal(mono)
	mags := make([]float64, n/2)
	for i := range mags {
		mags[i] = cmplx.Abs(bins[i])
	}
	return mags
}

// BinFrequency converts a bin index of an n-point spectrum to hertz.
func BinFrequency(bin, n int, rate beep.SampleRate) float64 {
	return float64(bin) * float64(rate) / float64(n)
}

// Peak returns the index of the loudest bin, skipping DC.
func Peak(mags []float64) int {
	best := 0
	for i := 1; i < len(mags); i++ {
		if best == 0 || mags[i] > mags[best] {
			best = i
		}
	}
	return best
}

// Bands sums the spectrum into low, mid and high energy below 250 Hz,
// up to 2 kHz, and above.
func Bands(mags []float64, rate beep.SampleRate) (low, mid, high float64) {
	n := len(mags) * 2
	for i, m := range mags {
		switch f := BinFrequency(i, n, rate); {
		case f < 250:
			low += m
		case f < 2000:
			mid += m
		default:
			high += m
		}
	}
	return low, mid, high
}
