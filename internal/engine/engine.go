// Package engine runs a game on a fixed tick. It latches input between ticks,
// steps the game exactly once per tick from a single goroutine and publishes
// rendered frames and sound cues to the display and tone collaborators.
package engine

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/microtris/internal/core"
	"github.com/vovakirdan/microtris/internal/registry"
)

// ErrRunning is returned when Run is called on a runner that is already running.
var ErrRunning = errors.New("engine: already running")

// Frame is one rendered tick.
type Frame struct {
	Tick   uint64
	Screen *core.Screen
	Result core.StepResult
}

// Runner drives one game.
type Runner struct {
	game   registry.Game
	ticker Ticker
	logger *log.Logger
	onOver func(registry.Game)

	mu     sync.Mutex
	latch  core.InputFrame
	screen *core.Screen

	frames  chan Frame
	cues    chan core.Cue
	running atomic.Bool
	tick    uint64
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithScreenSize sets the initial render size.
func WithScreenSize(w, h int) Option {
	return func(r *Runner) {
		r.screen = core.NewScreen(w, h)
	}
}

// WithGameOverHook registers fn to run on the runner goroutine each time the
// game ends, before the final frame is published.
func WithGameOverHook(fn func(registry.Game)) Option {
	return func(r *Runner) {
		r.onOver = fn
	}
}

// New creates a runner for a game that has already been Reset.
func New(game registry.Game, ticker Ticker, opts ...Option) *Runner {
	cfg := core.DefaultConfig()
	r := &Runner{
		game:   game,
		ticker: ticker,
		logger: log.New(io.Discard),
		latch:  core.NewInputFrame(),
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		frames: make(chan Frame, 1),
		cues:   make(chan core.Cue, 8),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Frames delivers rendered ticks. Only the newest undelivered frame is kept.
func (r *Runner) Frames() <-chan Frame {
	return r.frames
}

// Cues delivers sound requests. Cues are dropped when the consumer lags.
func (r *Runner) Cues() <-chan core.Cue {
	return r.cues
}

// Press latches an action for the next tick. Safe to call from any goroutine.
func (r *Runner) Press(a core.Action) {
	if a == core.ActionNone {
		return
	}
	r.mu.Lock()
	r.latch.Set(a)
	r.mu.Unlock()
}

// Resize changes the render size from the next frame on.
func (r *Runner) Resize(w, h int) {
	r.mu.Lock()
	r.screen.Resize(w, h)
	r.mu.Unlock()
}

// Run steps the game on every tick until ctx is done. The first frame is
// published immediately so the display has something to show.
func (r *Runner) Run(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer r.running.Store(false)
	defer r.ticker.Stop()

	r.publish(core.StepResult{State: r.game.State()})
	r.logger.Debug("runner started", "game", r.game.ID())

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("runner stopped", "game", r.game.ID(), "ticks", r.tick)
			return ctx.Err()
		case <-r.ticker.C():
			r.step()
		}
	}
}

// step runs exactly one tick with the input latched since the previous one.
func (r *Runner) step() {
	r.mu.Lock()
	in := r.latch.Clone()
	r.latch.Clear()
	r.mu.Unlock()

	res := r.game.Step(in)
	r.tick++

	if res.Cleared > 0 {
		r.logger.Debug("rows cleared", "tick", r.tick, "rows", res.Cleared, "score", res.State.Score)
	}
	if cue, ok := core.CueFor(res); ok {
		select {
		case r.cues <- cue:
		default:
			r.logger.Warn("cue dropped", "tick", r.tick, "rows", cue.Rows)
		}
	}
	if res.Ended {
		r.logger.Info("game over", "game", r.game.ID(), "tick", r.tick, "score", res.State.Score)
		if r.onOver != nil {
			r.onOver(r.game)
		}
	}

	r.publish(res)
}

// publish renders and offers a frame, replacing any frame nobody has read yet.
func (r *Runner) publish(res core.StepResult) {
	r.mu.Lock()
	r.game.Render(r.screen)
	f := Frame{Tick: r.tick, Screen: r.screen.Clone(), Result: res}
	r.mu.Unlock()

	for {
		select {
		case r.frames <- f:
			return
		default:
		}
		select {
		case <-r.frames:
		default:
		}
	}
}
