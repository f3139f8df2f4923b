// Package audio is the tone collaborator: it turns cues from the runner into
// square-wave beeps on the speaker, terminal bells, or nothing.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Tone describes the row-clear beep. The defaults reproduce the buzzer on the
// original board: a 500 Hz square wave held for 20 cycles.
type Tone struct {
	Frequency  float64
	Cycles     int
	Gap        time.Duration
	Volume     float64
	SampleRate beep.SampleRate
}

// DefaultTone returns the board's beep.
func DefaultTone() Tone {
	return Tone{
		Frequency:  500,
		Cycles:     20,
		Gap:        60 * time.Millisecond,
		Volume:     0.5,
		SampleRate: 48000,
	}
}

// Duration is how long one beep sounds.
func (t Tone) Duration() time.Duration {
	if t.Frequency <= 0 {
		return 0
	}
	return time.Duration(float64(t.Cycles) / t.Frequency * float64(time.Second))
}

// Samples is the length of one beep in samples.
func (t Tone) Samples() int {
	if t.Frequency <= 0 {
		return 0
	}
	return int(math.Round(float64(t.SampleRate) * float64(t.Cycles) / t.Frequency))
}

// Beeps returns n beeps separated by the gap.
func (t Tone) Beeps(n int) beep.Streamer {
	if n <= 0 {
		return beep.Silence(0)
	}
	parts := make([]beep.Streamer, 0, 2*n-1)
	for i := range n {
		if i > 0 {
			parts = append(parts, beep.Silence(t.SampleRate.N(t.Gap)))
		}
		parts = append(parts, newSquare(t.Frequency, t.SampleRate, t.Samples()))
	}
	return withVolume(beep.Seq(parts...), t.Volume)
}

// GameOver returns the game-over tune: three descending, longer notes.
func (t Tone) GameOver() beep.Streamer {
	notes := []float64{t.Frequency, t.Frequency * 4 / 5, t.Frequency * 3 / 5}
	parts := make([]beep.Streamer, 0, 2*len(notes))
	for i, f := range notes {
		if i > 0 {
			parts = append(parts, beep.Silence(t.SampleRate.N(t.Gap)))
		}
		n := int(math.Round(float64(t.SampleRate) * float64(3*t.Cycles) / f))
		parts = append(parts, newSquare(f, t.SampleRate, n))
	}
	return withVolume(beep.Seq(parts...), t.Volume)
}

// square is a square-wave oscillator that stops after a fixed number of samples.
type square struct {
	step     float64
	phase    float64
	position int
	length   int
}

func newSquare(freq float64, rate beep.SampleRate, samples int) beep.Streamer {
	return &square{step: freq / float64(rate), length: samples}
}

func (s *square) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.length {
			return i, i > 0
		}
		val := 1.0
		if s.phase >= 0.5 {
			val = -1.0
		}
		samples[i][0] = val
		samples[i][1] = val

		s.phase += s.step
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *square) Err() error { return nil }

// withVolume scales a stream linearly; effects.Volume works in log space,
// so zero is mapped to silence.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
