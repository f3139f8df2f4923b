package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// ErrNotInitialized is returned when the speaker could not be opened.
var ErrNotInitialized = errors.New("audio: speaker not initialized")

// Sink plays cues. Calls block until the sound has finished or ctx is done.
type Sink interface {
	Beep(ctx context.Context, n int) error
	GameOver(ctx context.Context) error
}

// NopSink discards every cue.
type NopSink struct{}

func (NopSink) Beep(context.Context, int) error { return nil }
func (NopSink) GameOver(context.Context) error  { return nil }

var (
	speakerOnce sync.Once
	speakerRate beep.SampleRate
	speakerErr  error
)

// initSpeaker opens the output device once per process.
func initSpeaker(rate beep.SampleRate) error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(rate, rate.N(100*time.Millisecond))
		if speakerErr == nil {
			speakerRate = rate
		}
	})
	if speakerErr != nil {
		return fmt.Errorf("%w: %v", ErrNotInitialized, speakerErr)
	}
	return nil
}

// SpeakerSink plays synthesized tones on the default audio device.
type SpeakerSink struct {
	tone Tone
}

// NewSpeakerSink opens the speaker. The device stays open for the life of
// the process; later sinks reuse the first sample rate.
func NewSpeakerSink(t Tone) (*SpeakerSink, error) {
	if err := initSpeaker(t.SampleRate); err != nil {
		return nil, err
	}
	t.SampleRate = speakerRate
	return &SpeakerSink{tone: t}, nil
}

// Beep plays n row-clear beeps.
func (s *SpeakerSink) Beep(ctx context.Context, n int) error {
	if n <= 0 {
		return nil
	}
	return play(ctx, s.tone.Beeps(n))
}

// GameOver plays the game-over tune.
func (s *SpeakerSink) GameOver(ctx context.Context) error {
	return play(ctx, s.tone.GameOver())
}

func play(ctx context.Context, st beep.Streamer) error {
	done := make(chan struct{})
	speaker.Play(beep.Seq(st, beep.Callback(func() {
		close(done)
	})))
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	}
}

// BellSink rings the terminal bell. It is the only audible option for
// sessions served over SSH.
type BellSink struct {
	w   io.Writer
	gap time.Duration
}

// NewBellSink writes BEL characters to w, waiting gap between rings.
func NewBellSink(w io.Writer, gap time.Duration) *BellSink {
	return &BellSink{w: w, gap: gap}
}

// Beep rings the bell n times.
func (b *BellSink) Beep(ctx context.Context, n int) error {
	return b.ring(ctx, n, b.gap)
}

// GameOver rings three slow bells.
func (b *BellSink) GameOver(ctx context.Context) error {
	return b.ring(ctx, 3, 3*b.gap)
}

func (b *BellSink) ring(ctx context.Context, n int, gap time.Duration) error {
	for i := range n {
		if i > 0 && gap > 0 {
			select {
			case <-time.After(gap):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if _, err := io.WriteString(b.w, "\a"); err != nil {
			return fmt.Errorf("audio: ring bell: %w", err)
		}
	}
	return nil
}

// Backend names accepted by NewSink.
const (
	BackendSpeaker = "speaker"
	BackendBell    = "bell"
	BackendNone    = "none"
)

// NewSink builds the sink for a backend name. bell is where BEL characters go
// for the bell backend.
func NewSink(backend string, t Tone, bell io.Writer) (Sink, error) {
	switch strings.ToLower(backend) {
	case BackendSpeaker:
		return NewSpeakerSink(t)
	case BackendBell:
		return NewBellSink(bell, t.Gap), nil
	case BackendNone, "":
		return NopSink{}, nil
	default:
		return nil, fmt.Errorf("audio: unknown backend %q", backend)
	}
}
