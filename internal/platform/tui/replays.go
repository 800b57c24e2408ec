package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

// maxReplays is how many journal entries the browser loads.
const maxReplays = 100

// ReplayKeyMap defines the key bindings for the replay browser.
type ReplayKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Watch  key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Watch, k.Delete, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ReplayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Watch},
		{k.Delete, k.Back, k.Quit},
	}
}

// DefaultReplayKeyMap returns default key bindings.
func DefaultReplayKeyMap() ReplayKeyMap {
	return ReplayKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Watch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "watch"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplayBrowserModel lists journal entries and lets the player pick one.
type ReplayBrowserModel struct {
	store     *storage.Store
	replays   []storage.Replay
	loadErr   error
	table     table.Model
	help      help.Model
	keys      ReplayKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
	selected  string
}

// NewReplayBrowserModel creates a browser over the journal.
func NewReplayBrowserModel(store *storage.Store, width, height int) ReplayBrowserModel {
	m := ReplayBrowserModel{
		store:  store,
		keys:   DefaultReplayKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadReplays()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ReplayBrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Variant", Width: 14},
		{Title: "Seed", Width: 20},
		{Title: "Ticks", Width: 8},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // header, help and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadReplays reads the journal and refreshes the rows.
func (m *ReplayBrowserModel) loadReplays() {
	m.replays, m.loadErr = nil, nil
	if m.store != nil {
		m.replays, m.loadErr = m.store.ListReplays(maxReplays)
	}

	rows := make([]table.Row, len(m.replays))
	for i, r := range m.replays {
		rows[i] = table.Row{
			shortID(r.ID),
			r.Variant,
			fmt.Sprintf("%d", r.Seed),
			fmt.Sprintf("%d", r.Ticks),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// shortID abbreviates a replay ID; LoadReplay accepts the prefix.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Init initializes the browser.
func (m ReplayBrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m ReplayBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Watch):
			if r, ok := m.current(); ok {
				m.selected = r.ID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if r, ok := m.current(); ok && m.store != nil {
				if err := m.store.DeleteReplay(r.ID); err != nil {
					m.loadErr = err
					return m, nil
				}
				m.loadReplays()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.loadReplays()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ReplayBrowserModel) current() (storage.Replay, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.replays) {
		return storage.Replay{}, false
	}
	return m.replays[i], true
}

// View renders the browser.
func (m ReplayBrowserModel) View() string {
	if m.quitting || m.goingBack || m.selected != "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(menuTitleStyle.Render(centerText("REPLAYS", m.width, 0)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	switch {
	case m.loadErr != nil:
		b.WriteString(boxStyle.Render("Could not read the journal:\n" + m.loadErr.Error()))
	case len(m.replays) == 0:
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(boxStyle.Render(emptyStyle.Render("No replays recorded yet.\nPlay with --record to journal a session.")))
	default:
		b.WriteString(boxStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// RunReplayBrowser shows the journal. Returns the chosen replay ID, or ""
// with goBack reporting whether to return to the menu.
func RunReplayBrowser(store *storage.Store, width, height int) (id string, goBack bool, err error) {
	p := tea.NewProgram(
		NewReplayBrowserModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}

	m, ok := finalModel.(ReplayBrowserModel)
	if !ok {
		return "", false, nil
	}
	return m.selected, m.goingBack, nil
}
