package audio

import (
	"fmt"
	"os"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// WriteWAV encodes s as 16-bit stereo PCM at rate.
func WriteWAV(path string, s beep.Streamer, rate beep.SampleRate) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, s, format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
