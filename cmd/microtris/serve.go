package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/microtris/internal/config"
	"github.com/vovakirdan/microtris/internal/games/microtris"
	"github.com/vovakirdan/microtris/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagNoBell      bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the microtris SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own game with a picker menu. Finished games
are stored in the server's history database, shared by all users. Cues
ring the client's terminal bell unless --no-bell is given.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.microtris/host_key

Examples:
  microtris serve                           # Listen on :23234 with auto-generated key
  microtris serve --ssh :2222               # Listen on port 2222
  microtris serve --host-key ./my_host_key  # Use specific host key
  microtris serve --pace brisk              # Faster gravity for every session

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagNoBell, "no-bell", false, "Do not ring the client's bell")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, source, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(os.Stderr, "microtris-ssh")
	if err != nil {
		return err
	}
	defer closeLog()

	microtris.SetStyle(styleFrom(cfg.Display))

	srvCfg := tui.DefaultSSHServerConfig()
	srvCfg.Logger = logger
	srvCfg.Address = flagSSHAddr
	srvCfg.HostKeyPath = flagHostKey
	srvCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	srvCfg.TickInterval = cfg.Game.TickInterval
	srvCfg.Bell = !flagNoBell && cfg.Audio.Backend != config.BackendNone
	srvCfg.Gap = cfg.Audio.Gap
	srvCfg.DBPath = ""
	if cfg.Storage.Enabled {
		srvCfg.DBPath = cfg.Storage.Path
	}

	server, err := tui.NewSSHServer(srvCfg)
	if err != nil {
		return err
	}

	fmt.Printf("Starting microtris SSH server on %s (config: %s)\n", srvCfg.Address, source)
	if _, port, splitErr := net.SplitHostPort(srvCfg.Address); splitErr == nil {
		fmt.Printf("Connect with: ssh localhost -p %s\n", port)
	}
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
