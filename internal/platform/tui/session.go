package tui

import (
	"context"
	"encoding/binary"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/microtris/internal/audio"
	"github.com/vovakirdan/microtris/internal/core"
	"github.com/vovakirdan/microtris/internal/engine"
	"github.com/vovakirdan/microtris/internal/registry"
	"github.com/vovakirdan/microtris/internal/storage"
)

// SessionConfig describes one running game.
type SessionConfig struct {
	GameID  string
	Runtime core.RuntimeConfig

	// Sink plays cues. Nil means silence.
	Sink audio.Sink

	// Store records every finished game. Nil disables history.
	Store *storage.Store

	// Logger receives runner and audio diagnostics. Nil discards them.
	Logger *log.Logger

	// Ticker overrides the wall-clock ticker; used by tests.
	Ticker engine.Ticker
}

// statsReporter is implemented by games that expose counters for history.
type statsReporter interface {
	Stats() core.Stats
}

// Session owns the goroutines behind one game: the runner stepping it and
// the beeper playing its cues.
type Session struct {
	game   registry.Game
	runner *engine.Runner
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// StartSession creates the game, resets it and starts its runner and beeper.
// A zero seed is replaced by a random one. The session ends when ctx is done
// or Stop is called.
func StartSession(ctx context.Context, cfg SessionConfig) (*Session, error) {
	game, err := registry.Create(cfg.GameID)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	sink := cfg.Sink
	if sink == nil {
		sink = audio.NopSink{}
	}

	rc := cfg.Runtime
	if rc.TickInterval <= 0 {
		rc.TickInterval = core.DefaultTickInterval
	}
	if rc.SeedHi == 0 && rc.SeedLo == 0 {
		rc.SeedHi, rc.SeedLo = RandomSeed()
	}
	game.Reset(rc)

	ticker := cfg.Ticker
	if ticker == nil {
		ticker = engine.NewTicker(rc.TickInterval)
	}

	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithScreenSize(rc.ScreenW, rc.ScreenH),
	}
	if cfg.Store != nil {
		opts = append(opts, engine.WithGameOverHook(recordSession(cfg.Store, logger, rc.TickInterval)))
	}

	s := &Session{
		game:   game,
		runner: engine.New(game, ticker, opts...),
	}
	s.ctx, s.cancel = context.WithCancel(ctx)

	beeper := audio.NewBeeper(sink, logger)
	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		//nolint:errcheck // Run only returns the context error on shutdown
		s.runner.Run(s.ctx)
	}()
	go func() {
		defer s.wg.Done()
		beeper.Run(s.ctx, s.runner.Cues())
	}()

	logger.Debug("session started", "game", game.ID(), "seed_hi", rc.SeedHi, "seed_lo", rc.SeedLo)
	return s, nil
}

// Game returns the game being played.
func (s *Session) Game() registry.Game {
	return s.game
}

// Runner returns the runner stepping the game.
func (s *Session) Runner() *engine.Runner {
	return s.runner
}

// Done is closed when the session is stopping.
func (s *Session) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Stop ends the session and waits for its goroutines.
func (s *Session) Stop() {
	s.cancel()
	s.wg.Wait()
}

// recordSession returns a game-over hook that saves a history row.
func recordSession(store *storage.Store, logger *log.Logger, interval time.Duration) func(registry.Game) {
	return func(g registry.Game) {
		r, ok := g.(statsReporter)
		if !ok {
			return
		}
		st := r.Stats()
		id, err := store.SaveSession(storage.Session{
			GameID:   g.ID(),
			Rows:     st.Cleared,
			Pieces:   st.Pieces,
			Ticks:    st.Ticks,
			Seed:     st.Seed,
			Duration: time.Duration(st.Ticks) * interval,
		})
		if err != nil {
			logger.Warn("could not save session", "game", g.ID(), "error", err)
			return
		}
		logger.Debug("session saved", "id", id, "rows", st.Cleared)
	}
}

// RandomSeed draws a 128-bit seed from a random UUID.
func RandomSeed() (hi, lo uint64) {
	u := uuid.New()
	return binary.BigEndian.Uint64(u[:8]), binary.BigEndian.Uint64(u[8:])
}
