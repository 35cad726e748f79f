package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/boards"
)

// PresetSelection holds the user's choice from the preset menu.
type PresetSelection struct {
	Preset config.DifficultyPreset
	Board  string // Builtin board ID or board file path, empty for random
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDescStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// PresetMenuModel lets users choose a difficulty preset or a fixed board.
type PresetMenuModel struct {
	cursor        int
	inBoardSelect bool
	boards        []boards.Board
	table         table.Model
	width         int
	height        int
	selection     PresetSelection
	choosing      bool
	quitting      bool
	back          bool
}

// presetDescriptions are shown next to each preset.
var presetDescriptions = map[config.DifficultyPreset]string{
	config.DifficultyEasy:   "8x8, 4 tile types, auto shuffle",
	config.DifficultyNormal: "8x8, 6 tile types, auto shuffle",
	config.DifficultyHard:   "9x9, 7 tile types, shuffle by hand",
}

// NewPresetMenuModel creates a new preset menu over the given boards.
func NewPresetMenuModel(width, height int, list []boards.Board) PresetMenuModel {
	m := PresetMenuModel{
		boards:   list,
		width:    width,
		height:   height,
		choosing: true,
	}
	m.table = m.createTable()
	return m
}

// createTable builds the board picker.
func (m *PresetMenuModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Board", Width: 20},
		{Title: "Size", Width: 6},
		{Title: "Types", Width: 5},
		{Title: "Description", Width: core.Clamp(m.width-45, 20, 60)},
	}

	rows := make([]table.Row, len(m.boards))
	for i, b := range m.boards {
		rows[i] = table.Row{
			b.ID,
			fmt.Sprintf("%dx%d", b.Width(), b.Height()),
			fmt.Sprintf("%d", b.ItemTypes),
			b.Description,
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(core.Clamp(m.height-8, 3, len(rows)+1)),
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

// Init initializes the model.
func (m PresetMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PresetMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.inBoardSelect {
			return m.handleBoardSelectKey(msg)
		}
		return m.handlePresetKey(MapKeyToMenuAction(msg))
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.table.SetCursor(cursor)
		return m, nil
	}
	return m, nil
}

// optionCount is the presets plus the board picker entry.
func optionCount() int {
	return len(config.Presets) + 1
}

func (m PresetMenuModel) handlePresetKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < optionCount()-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if m.cursor < len(config.Presets) {
			m.choosing = false
			m.selection = PresetSelection{Preset: config.Presets[m.cursor]}
			return m, tea.Quit
		}
		if len(m.boards) > 0 {
			m.inBoardSelect = true
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m PresetMenuModel) handleBoardSelectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionBack:
		m.inBoardSelect = false
		return m, nil
	case MenuActionSelect:
		b := m.boards[m.table.Cursor()]
		board := b.ID
		if b.FilePath != "" {
			board = b.FilePath
		}
		m.choosing = false
		m.selection = PresetSelection{Preset: config.DifficultyNormal, Board: board}
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the menu.
func (m PresetMenuModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inBoardSelect {
		return m.viewBoardSelect()
	}
	return m.viewPresetSelect()
}

func (m PresetMenuModel) viewPresetSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText("M A T C H - 3", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i := range optionCount() {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		var line string
		if i < len(config.Presets) {
			p := config.Presets[i]
			line = fmt.Sprintf("%s%-8s %s", cursor, titleCase(string(p)), presetDescriptions[p])
		} else {
			line = fmt.Sprintf("%sFixed board... (%d available)", cursor, len(m.boards))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(menuDescStyle.Render(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width)))

	return b.String()
}

func (m PresetMenuModel) viewBoardSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText("SELECT BOARD", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tableStyle.Render(m.table.View())))

	b.WriteString("\n\n")
	b.WriteString(menuDescStyle.Render(centerText("Enter: Play  |  Esc: Back  |  Q: Quit", m.width)))

	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Selected returns the selection, or nil if still choosing.
func (m PresetMenuModel) Selected() *PresetSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m PresetMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m PresetMenuModel) WantsBack() bool {
	return m.back
}

// RunPresetSelector runs the preset menu and returns the selection, or nil
// when the user backed out.
func RunPresetSelector(cfg core.RuntimeConfig, list []boards.Board) (*PresetSelection, core.RuntimeConfig, error) {
	model := NewPresetMenuModel(cfg.ScreenW, cfg.ScreenH, list)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(PresetMenuModel)
	if !ok {
		return nil, cfg, nil
	}

	if m.IsQuitting() || m.WantsBack() {
		return nil, cfg, nil
	}

	return m.Selected(), cfg, nil
}
