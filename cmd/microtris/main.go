// microtris is a 5×5 falling-block game for the terminal.
//
// Usage:
//
//	microtris play [game]    - Play the configured piece mix, or the named game
//	microtris serve          - Start SSH server for remote play
//	microtris history        - Show finished games
//	microtris list           - List available games
//	microtris config         - Print the effective configuration
//
// Global flags:
//
//	--config <path>    - Config file (default: search ~/.microtris, ./configs)
//	--seed <hi:lo>     - Generator seed for reproducible games
//	--pace <name>      - Gravity preset: relaxed, board, brisk
//	--db <path>        - History database path
//	--debug            - Debug logging
//	--log-file <path>  - Write logs to a file while playing
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/microtris/internal/games/microtris"
)

var (
	// Global flags
	flagConfig  string
	flagSeed    string
	flagPace    string
	flagDBPath  string
	flagDebug   bool
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "microtris",
	Short: "Microtris - falling blocks on a 5x5 board",
	Long: `Microtris is a tiny falling-block game played on a 5x5 grid, after the
LED matrix board it was first built for. Pieces fit in a 2x2 box, full
rows vanish with a beep, and the game ends when the stack reaches the top.

Available commands:
  play     - Play a game
  serve    - Start SSH server for remote play
  history  - View finished games
  list     - Show the available piece mixes
  config   - Print the effective configuration

Examples:
  microtris play
  microtris play microtris_board --pace brisk
  microtris play --seed 42:7
  microtris serve --ssh :2222
  microtris history`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagSeed, "seed", "", "Generator seed as hi:lo or a single number (default: random)")
	rootCmd.PersistentFlags().StringVar(&flagPace, "pace", "", "Gravity preset: relaxed, board, brisk")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to history database (overrides storage.path)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
}
