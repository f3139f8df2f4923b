package audio

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/microtris/internal/core"
)

// Beeper plays cues from the runner on a sink, one at a time, on its own
// goroutine so sound never delays a tick.
type Beeper struct {
	sink   Sink
	logger *log.Logger
}

// NewBeeper creates a beeper. A nil logger discards output.
func NewBeeper(sink Sink, logger *log.Logger) *Beeper {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Beeper{sink: sink, logger: logger}
}

// Run consumes cues until ctx is done or cues is closed. Sink errors are
// logged and do not stop the loop.
func (b *Beeper) Run(ctx context.Context, cues <-chan core.Cue) {
	for {
		select {
		case <-ctx.Done():
			return
		case cue, ok := <-cues:
			if !ok {
				return
			}
			b.play(ctx, cue)
		}
	}
}

func (b *Beeper) play(ctx context.Context, cue core.Cue) {
	if cue.Rows > 0 {
		if err := b.sink.Beep(ctx, cue.Rows); err != nil && !errors.Is(err, context.Canceled) {
			b.logger.Warn("beep failed", "rows", cue.Rows, "err", err)
		}
	}
	if cue.GameOver {
		if err := b.sink.GameOver(ctx); err != nil && !errors.Is(err, context.Canceled) {
			b.logger.Warn("game over tune failed", "err", err)
		}
	}
}
