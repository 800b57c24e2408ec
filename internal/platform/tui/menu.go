package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("209"))
	menuCursor     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// MenuModel is the Bubble Tea model for the variant picker.
type MenuModel struct {
	items       []registry.GameInfo
	cursor      int
	width       int
	height      int
	config      core.RuntimeConfig
	allowReplay bool
	quitting    bool
	selected    *registry.GameInfo
	openReplays bool
}

// NewMenuModel creates a menu over every registered variant.
// allowReplay enables the replay browser entry.
func NewMenuModel(cfg core.RuntimeConfig, allowReplay bool) MenuModel {
	return MenuModel{
		items:       registry.List(),
		width:       cfg.ScreenW,
		height:      cfg.ScreenH,
		config:      cfg,
		allowReplay: allowReplay,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionReplays:
		if m.allowReplay {
			m.openReplays = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("S N A K E"), m.width, 9))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a variant", m.width, 0))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("  %-18s", item.Title)
		if i == m.cursor {
			line = menuCursor.Render(fmt.Sprintf("> %-18s", item.Title))
		}
		b.WriteString(centerText(line, m.width, 20))
		b.WriteString("\n")
	}

	if m.cursor < len(m.items) {
		summary := m.items[m.cursor].Summary
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(centerText(summary, m.width, 0)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Q: Quit"
	if m.allowReplay {
		controls = "Up/Down: Navigate  |  Enter: Play  |  Tab: Replays  |  Q: Quit"
	}
	b.WriteString(helpStyle.Render(centerText(controls, m.width, 0)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected variant, or nil if none selected.
func (m MenuModel) Selected() *registry.GameInfo {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsReplays returns true if user opened the replay browser.
func (m MenuModel) WantsReplays() bool {
	return m.openReplays
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within width. visible is the printed width of
// text when it carries escape codes; 0 means len(text).
func centerText(text string, width, visible int) string {
	if visible == 0 {
		visible = len([]rune(text))
	}
	if visible >= width {
		return text
	}
	return strings.Repeat(" ", (width-visible)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID       string
	Config       core.RuntimeConfig
	WantsReplays bool
	Quit         bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig, allowReplay bool) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(cfg, allowReplay),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsReplays():
		result.WantsReplays = true
	case m.Selected() != nil:
		result.GameID = m.Selected().ID
	default:
		result.Quit = true
	}
	return result, nil
}
