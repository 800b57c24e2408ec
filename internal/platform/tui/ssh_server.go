package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.snake/host_key.
	HostKeyPath string

	// JournalPath enables replay recording of every session when set.
	JournalPath string

	// SpectateAddress starts the websocket spectator feed when set.
	SpectateAddress string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Seed fixes the seed of every session; 0 draws one per session.
	Seed int64

	// RuleSets holds the rule set YAML journaled with replays, by variant.
	RuleSets map[string]string
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves one independent simulation per SSH session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	hub    *SpectatorHub
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake-ssh",
	})

	srv := &SSHServer{
		config: cfg,
		logger: logger,
	}

	if cfg.JournalPath != "" {
		store, err := storage.Open(cfg.JournalPath)
		if err != nil {
			logger.Warn("could not open replay journal, sessions will not be recorded", "error", err)
		} else {
			srv.store = store
		}
	}
	if cfg.SpectateAddress != "" {
		srv.hub = NewSpectatorHub(logger.WithPrefix("snake-spectate"))
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".snake", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", mkdirErr)
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
		if srv.store != nil {
			srv.store.Close()
		}
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	seed := s.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := core.RuntimeConfig{
		ScreenW: pty.Window.Width,
		ScreenH: pty.Window.Height,
		Seed:    seed,
	}

	model := NewSessionModel(cfg, SessionDeps{
		Store:     s.store,
		Hub:       s.hub,
		Logger:    s.logger,
		User:      sshSession.User(),
		FixedSeed: s.config.Seed != 0,
		RuleSets:  s.config.RuleSets,
		Renderer:  bubbletea.MakeRenderer(sshSession),
	})
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server (and the spectator feed when
// configured) and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
			stop()
		}
	}()

	if s.hub != nil {
		go func() {
			if err := s.hub.ListenAndServe(ctx, s.config.SpectateAddress); err != nil {
				s.logger.Error("spectator feed error", "error", err)
			}
		}()
	}

	<-ctx.Done()
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionDeps are the shared services a session uses.
type SessionDeps struct {
	Store  *storage.Store // nil disables recording
	Hub    *SpectatorHub  // nil disables spectating
	Logger *log.Logger
	User   string

	FixedSeed bool               // keep the configured seed for every game
	RuleSets  map[string]string  // rule set YAML journaled per variant
	Renderer  *lipgloss.Renderer // the client's terminal
}

// SessionModel manages one SSH session: menu -> game -> menu.
// Every game it starts owns a fresh, independent simulation.
type SessionModel struct {
	deps      SessionDeps
	config    core.RuntimeConfig
	sessionID string
	logger    *log.Logger
	menu      MenuModel
	game      *Model
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg core.RuntimeConfig, deps SessionDeps) SessionModel {
	id := uuid.NewString()
	logger := deps.Logger
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	return SessionModel{
		deps:      deps,
		config:    cfg,
		sessionID: id,
		logger:    logger.With("session", shortID(id), "user", deps.User),
		menu:      NewMenuModel(cfg, false),
	}
}

// ID returns the session identifier.
func (m SessionModel) ID() string {
	return m.sessionID
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if m.game != nil {
		return m.updateGame(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	game, err := registry.Create(selected.ID)
	if err != nil {
		m.logger.Error("cannot create game", "game", selected.ID, "error", err)
		m.menu = NewMenuModel(m.config, false)
		return m, nil
	}

	opts := Options{
		Logger:    m.logger,
		Spectate:  m.deps.Hub,
		Session:   m.sessionID,
		AllowBack: true,
	}
	if m.deps.Store != nil {
		rec, recErr := m.deps.Store.NewRecorder(game.ID(), m.config.Seed, m.deps.RuleSets[game.ID()])
		if recErr != nil {
			m.logger.Warn("session will not be recorded", "error", recErr)
		} else {
			opts.Recorder = rec
		}
	}

	gm := NewModel(game, m.config, opts)
	m.game = &gm
	return m, m.game.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gm, ok := newModel.(Model); ok {
		m.game = &gm
	}

	if m.game.BackToMenu() {
		m.game = nil
		if !m.deps.FixedSeed {
			m.config.Seed = time.Now().UnixNano()
		}
		m.menu = NewMenuModel(m.config, false)
		return m, m.menu.Init()
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.game != nil {
		return m.game.View()
	}
	return m.menu.View()
}
