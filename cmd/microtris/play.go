package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/microtris/internal/core"
	"github.com/vovakirdan/microtris/internal/games/microtris"
	"github.com/vovakirdan/microtris/internal/platform/tui"
	"github.com/vovakirdan/microtris/internal/registry"
)

var flagMenu bool

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing. Without an argument the piece mix comes from game.table
in the config; --menu opens the picker instead.

Controls:
  Left/A, Right/D  - Move
  Up/W/Space       - Rotate
  P                - Pause
  R                - Restart (after game over)
  Esc/B            - Back to menu (paused or after game over)
  Q/Ctrl+C         - Quit

Examples:
  microtris play
  microtris play microtris_board
  microtris play --pace relaxed
  microtris play --seed 1:2 --log-file microtris.log --debug
  microtris play --menu`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMenu, "menu", false, "Open the game picker")
}

func runPlay(_ *cobra.Command, args []string) error {
	cfg, source, err := loadConfig()
	if err != nil {
		return err
	}

	gameID := cfg.Game.GameID()
	if len(args) == 1 {
		gameID = args[0]
	}
	if flagMenu {
		gameID = ""
	}
	if gameID != "" && !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'microtris list' to see available games)", gameID)
	}

	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("play needs an interactive terminal")
	}
	width, height := 80, 24
	if w, h, sizeErr := term.GetSize(fd); sizeErr == nil {
		width, height = w, h
	}

	// the UI owns the terminal, so logs only go to --log-file
	logger, closeLog, err := newLogger(io.Discard, "microtris")
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Debug("config loaded", "source", source, "game", gameID, "tick", cfg.Game.TickInterval)

	microtris.SetStyle(styleFrom(cfg.Display))

	store := openStore(cfg.Storage, logger)
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = tui.Run(ctx, tui.AppConfig{
		GameID: gameID,
		Runtime: core.RuntimeConfig{
			ScreenW:      width,
			ScreenH:      height,
			TickInterval: cfg.Game.TickInterval,
			SeedHi:       cfg.Game.SeedHi,
			SeedLo:       cfg.Game.SeedLo,
		},
		Store:  store,
		Sink:   newSink(cfg.Audio, os.Stdout, logger),
		Logger: logger,
	})
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
