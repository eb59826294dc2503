package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/frame-arcade/internal/core"
	"github.com/vovakirdan/frame-arcade/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arcade SSH server",
	Long: `Start an SSH server that allows users to connect and play games.

Each SSH connection gets its own session with a game picker menu.
Scores are stored per server (all users share the same leaderboard).
The server never plays sound.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Examples:
  arcade serve                           # Listen on :23234 with auto-generated key
  arcade serve --ssh :2222               # Listen on port 2222
  arcade serve --host-key ./my_host_key  # Use specific host key
  arcade serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(defaults.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	bridge, closeStore := openBridge(logger)
	defer closeStore()

	rt := core.DefaultConfig()
	if flagFPS > 0 {
		rt.TickRate = flagFPS
	}
	rt.Seed = flagSeed

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Runtime:     rt,
	}

	server, err := tui.NewSSHServer(cfg, bridge, logger)
	if err != nil {
		return fmt.Errorf("cannot create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting arcade SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
