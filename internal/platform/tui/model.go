package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// Options wires optional collaborators into a game model.
type Options struct {
	Logger    *log.Logger        // nil discards
	Recorder  *storage.Recorder  // journals every step when set
	Spectate  *SpectatorHub      // receives a rendered board after every step
	Session   string             // session name for logs and spectators
	Script    []core.InputFrame  // playback: frames replace the keyboard
	AllowBack bool               // esc while paused leaves the game
	Renderer  *lipgloss.Renderer // terminal to style for; nil is the local one
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model that drives one game. The game reports its
// tick rate after every step and the model schedules the next tick from it.
type Model struct {
	clock      string
	game       registry.Game
	screen     *core.Screen
	render     *ScreenRenderer
	config     core.RuntimeConfig
	opts       Options
	logger     *log.Logger
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	ticks      uint64
	scriptPos  int
	scriptDone bool
	quitting   bool
	backToMenu bool
}

// NewModel creates a model for game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		clock:      uuid.NewString(),
		game:       game,
		config:     cfg,
		opts:       opts,
		logger:     logger,
		render:     NewScreenRenderer(opts.Renderer),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
	}
	m.screen = core.NewScreen(cfg.ScreenW, m.boardHeight())
	m.help.Width = cfg.ScreenW
	return m
}

// Init resets the game and starts the clock at the game's initial rate.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("game started", "game", m.game.ID(), "seed", m.config.Seed, "session", m.opts.Session)
	return tickCmd(m.clock, m.game.State().TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Clock != m.clock {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey collects actions into the frame for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.screen.Resize(m.config.ScreenW, m.boardHeight())
		return m, nil
	}

	action := m.keys.MapKey(msg)
	switch action {
	case core.ActionNone:
		return m, nil

	case core.ActionQuit:
		// The game answers quit with ErrQuit and leaves its state alone.
		quit := core.NewInputFrame()
		quit.Set(core.ActionQuit)
		if res := m.game.Step(quit); errors.Is(res.Err, core.ErrQuit) {
			m.finish("quit")
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case core.ActionBack:
		if m.opts.AllowBack && (m.gameState.Paused || m.scriptDone) {
			m.finish("back")
			m.backToMenu = true
			return m, tea.Quit
		}
		return m, nil
	}

	if m.opts.Script == nil {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize only changes the drawing surface; the simulation keeps going.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, m.boardHeight())
	m.help.Width = msg.Width
	return m, nil
}

// handleTick steps the game once and schedules the next tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu || m.scriptDone {
		return m, nil
	}

	// The pending frame is cleared after the step; the game and the
	// journal get their own copy.
	frame := m.inputFrame.Clone()
	if m.opts.Script != nil {
		if m.scriptPos >= len(m.opts.Script) {
			m.scriptDone = true
			m.logger.Info("playback finished", "game", m.game.ID(), "ticks", m.ticks)
			return m, nil
		}
		frame = m.opts.Script[m.scriptPos]
		m.scriptPos++
	}

	if m.opts.Recorder != nil {
		if err := m.opts.Recorder.Record(frame); err != nil {
			m.logger.Warn("replay recording stopped", "error", err)
			m.opts.Recorder = nil
		}
	}

	result := m.game.Step(frame)
	m.ticks++
	if errors.Is(result.Err, core.ErrQuit) {
		m.finish("quit")
		m.quitting = true
		return m, tea.Quit
	}
	m.gameState = result.State
	logEvents(m.logger, m.game.ID(), m.ticks, result.Events)
	m.publish()

	m.inputFrame.Clear()
	return m, tickCmd(m.clock, m.gameState.TickRate)
}

// publish sends the current board to spectators.
func (m *Model) publish() {
	if m.opts.Spectate == nil {
		return
	}
	m.game.Render(m.screen)
	m.opts.Spectate.Publish(SpectatorFrame{
		Session:  m.opts.Session,
		Game:     m.game.ID(),
		Tick:     m.ticks,
		Length:   m.gameState.Score,
		TickRate: m.gameState.TickRate,
		Screen:   m.screen.String(),
	})
}

// finish closes the journal entry once.
func (m *Model) finish(reason string) {
	m.logger.Info("game ended", "game", m.game.ID(), "reason", reason, "ticks", m.ticks, "length", m.gameState.Score)
	if m.opts.Spectate != nil {
		m.opts.Spectate.End(m.opts.Session)
	}
	if rec := m.opts.Recorder; rec != nil {
		m.opts.Recorder = nil
		if err := rec.Close(); err != nil {
			m.logger.Warn("could not finish replay", "error", err)
			return
		}
		m.logger.Info("replay saved", "id", rec.ID(), "ticks", rec.Ticks())
	}
}

// boardHeight is the screen height left after the help footer.
func (m Model) boardHeight() int {
	footer := 1
	if m.help.ShowAll {
		footer = 3
	}
	return max(m.config.ScreenH-footer, 1)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	dir := filepath.Join(home, ".snake", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	footer := m.help.View(m.keys)
	if m.scriptDone {
		footer = "playback finished - q to quit"
	}
	return m.render.Render(m.screen) + "\n" + helpStyle.Render(footer)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Ticks returns the number of steps taken.
func (m Model) Ticks() uint64 {
	return m.ticks
}

// Run starts a Bubble Tea program for game and blocks until it ends.
// Returns true when the player asked to go back to the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (backToMenu bool, err error) {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	if !ok {
		return false, nil
	}
	return m.backToMenu, nil
}
