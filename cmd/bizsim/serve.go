package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bizsim/internal/platform/tui"
	"github.com/vovakirdan/bizsim/internal/session"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bizsim SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a business picker menu.
Saves are kept per SSH user and business. Scores are stored per-server
(all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.bizsim/host_key

Examples:
  bizsim serve                           # Listen on :23234 with auto-generated key
  bizsim serve --ssh :2222               # Listen on port 2222
  bizsim serve --host-key ./my_host_key  # Use specific host key
  bizsim serve --db ./bizsim.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	idle := time.Duration(flagIdleTimeout) * time.Minute
	if idle <= 0 {
		return fmt.Errorf("--idle-timeout must be positive, got %d", flagIdleTimeout)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	mcfg := session.DefaultConfig()
	mcfg.IdleTimeout = idle
	manager := session.NewManager(catalog, mcfg, logger.WithPrefix("sessions"))
	manager.SetResultSaver(store)
	manager.Start()
	defer manager.Stop()

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: idle,
		Seed:        flagSeed,
	}

	server, err := tui.NewSSHServer(cfg, manager, store, logger.WithPrefix("ssh"))
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting bizsim SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
