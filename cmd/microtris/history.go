package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/microtris/internal/platform/tui"
	"github.com/vovakirdan/microtris/internal/registry"
	"github.com/vovakirdan/microtris/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryPlain bool
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [game]",
	Short: "Show finished games",
	Long: `Display finished games with rows cleared, pieces and length.

On a terminal the history opens as a table you can scroll, with Tab to
switch piece mix. With --plain, or when output is not a terminal, the
most recent games are printed as text.

Examples:
  microtris history
  microtris history microtris_board --plain
  microtris history --limit 5 --plain
  microtris history microtris --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of games to print with --plain")
	historyCmd.Flags().BoolVar(&flagHistoryPlain, "plain", false, "Print text instead of opening the table")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the history of the given game")
}

func runHistory(_ *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown game %q (run 'microtris list' to see available games)", gameID)
		}
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagHistoryClear {
		if gameID == "" {
			return errors.New("--clear needs a game")
		}
		if err := store.ClearSessions(gameID); err != nil {
			return err
		}
		fmt.Printf("History of %s cleared.\n", gameID)
		return nil
	}

	fd := int(os.Stdout.Fd())
	if !flagHistoryPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, sizeErr := term.GetSize(fd); sizeErr == nil {
			width, height = w, h
		}
		return tui.RunHistory(store, width, height)
	}

	return printHistory(os.Stdout, store, gameID, flagHistoryLimit)
}

// printHistory writes the most recent games and per-game totals as text.
// An empty gameID prints every game.
func printHistory(w io.Writer, store *storage.Store, gameID string, limit int) error {
	sessions, err := store.RecentSessions(gameID, limit)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		fmt.Fprintln(w, "No games recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'microtris play' and finish a game to see it here.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  Game\tRows\tPieces\tTicks\tSeed\tPlayed")
	fmt.Fprintln(tw, "  ----\t----\t------\t-----\t----\t------")
	for _, s := range sessions {
		fmt.Fprintf(tw, "  %s\t%d\t%d\t%d\t%s\t%s\n",
			s.GameID, s.Rows, s.Pieces, s.Ticks, s.Seed, s.EndedAt.Local().Format("2006-01-02 15:04"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	games := registry.List()
	fmt.Fprintln(w)
	for _, g := range games {
		if gameID != "" && g.ID != gameID {
			continue
		}
		best, err := store.BestSession(g.ID)
		if err != nil {
			return err
		}
		if best == nil {
			continue
		}
		total, err := store.TotalRows(g.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: best %d rows (seed %s), %d rows in total\n", g.Title, best.Rows, best.Seed, total)
	}
	return nil
}
