package tui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/frame-arcade/internal/core"
	"github.com/vovakirdan/frame-arcade/internal/scores"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.arcade/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Runtime is the base runtime of every session; the screen size comes
	// from the client's PTY.
	Runtime core.RuntimeConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		Runtime:     core.DefaultConfig(),
	}
}

// SSHServer serves the arcade menu to SSH clients. All clients share one
// score bridge; audio is never played on the server.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	bridge *scores.Bridge
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, bridge *scores.Bridge, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.WithPrefix("ssh")

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("ssh: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".arcade", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("ssh: cannot create host key directory: %w", err)
	}

	srv := &SSHServer{
		config: cfg,
		bridge: bridge,
		logger: logger,
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("ssh: cannot create server: %w", err)
	}
	srv.server = server
	return srv, nil
}

// teaHandler creates the arcade flow for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		wish.Fatalln(sess, "arcade needs a terminal: connect with ssh -t")
		return nil, nil
	}

	rt := s.config.Runtime
	rt.ScreenW = pty.Window.Width
	rt.ScreenH = pty.Window.Height

	model := NewAppModel(AppConfig{
		Context:  sess.Context(),
		Runtime:  rt,
		Bridge:   s.bridge,
		Logger:   s.logger.With("user", sess.User()),
		Renderer: bubbletea.MakeRenderer(sess),
	})
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started", "user", sess.User(), "remote", sess.RemoteAddr().String())
		next(sess)
		s.logger.Info("session ended", "user", sess.User(), "remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second))
	}
}

// Serve listens until ctx is cancelled, then shuts down gracefully.
func (s *SSHServer) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("ssh: cannot listen on %s: %w", s.config.Address, err)
	}
	s.logger.Info("starting SSH server", "address", ln.Addr().String())

	errc := make(chan error, 1)
	go func() {
		errc <- s.server.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
