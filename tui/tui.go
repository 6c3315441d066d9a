// Package tui implements an interactive save editor: a filterable list
// of possessed qualities with in-place level editing.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nholt/zeelore/engine/save"
	"github.com/nholt/zeelore/engine/savestate"
)

// Model is the Bubble Tea model for the save editor.
type Model struct {
	sv       *savestate.Save
	savePath string

	filter   textinput.Model
	edit     textinput.Model
	viewport viewport.Model

	rows    []*savestate.SaveQuality
	cursor  int
	editing bool
	dirty   bool
	status  string

	width    int
	height   int
	ready    bool
	quitting bool
}

// New creates an editor over a loaded save. Ctrl+S writes back to
// savePath.
func New(sv *savestate.Save, savePath string) Model {
	filter := textinput.New()
	filter.Prompt = "filter: "
	filter.PromptStyle = styleFilterPrompt
	filter.CharLimit = 64
	filter.Focus()

	edit := textinput.New()
	edit.Prompt = "new value: "
	edit.CharLimit = 10

	m := Model{
		sv:       sv,
		savePath: savePath,
		filter:   filter,
		edit:     edit,
	}
	m.refilter()
	return m
}

// Run starts the Bubble Tea program.
func Run(sv *savestate.Save, savePath string) error {
	p := tea.NewProgram(New(sv, savePath), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init satisfies tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses, resizes and edit commits.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // status bar + filter/edit line
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			m.refreshViewport()
			return m, nil

		case "down":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
			m.refreshViewport()
			return m, nil

		case "+", "=":
			m.adjust(1)
			return m, nil

		case "-", "_":
			m.adjust(-1)
			return m, nil

		case "enter":
			if sq := m.current(); sq != nil {
				m.editing = true
				m.edit.SetValue(strconv.Itoa(sq.Value()))
				m.edit.CursorEnd()
				m.edit.Focus()
				m.filter.Blur()
			}
			return m, nil

		case "ctrl+s":
			if err := save.WriteFile(m.savePath, m.sv); err != nil {
				m.status = styleError.Render(err.Error())
			} else {
				m.dirty = false
				m.status = "written to " + m.savePath
			}
			return m, nil

		case "pgup", "pgdown", "ctrl+d", "ctrl+u":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refilter()
	m.refreshViewport()
	return m, cmd
}

// updateEditing handles keys while the value prompt is open.
func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.editing = false
		m.edit.Blur()
		m.filter.Focus()
		return m, nil

	case "enter":
		sq := m.current()
		v, err := strconv.Atoi(strings.TrimSpace(m.edit.Value()))
		switch {
		case sq == nil:
		case err != nil || v < 0:
			m.status = styleError.Render("not a valid level: " + m.edit.Value())
		default:
			sq.SetValue(v)
			m.dirty = true
			m.status = fmt.Sprintf("%s set to %d", sq.Quality().Name, sq.Value())
		}
		m.editing = false
		m.edit.Blur()
		m.filter.Focus()
		m.refreshViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	return m, cmd
}

// adjust changes the selected entry's level by delta.
func (m *Model) adjust(delta int) {
	sq := m.current()
	if sq == nil {
		return
	}
	sq.IncreaseBy(delta)
	m.dirty = true
	m.status = fmt.Sprintf("%s now %d", sq.Quality().Name, sq.Value())
	m.refreshViewport()
}

func (m *Model) current() *savestate.SaveQuality {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor]
}

// refilter rebuilds the visible rows from the filter text.
func (m *Model) refilter() {
	pattern := strings.TrimSpace(m.filter.Value())
	if pattern == "" {
		m.rows = m.sv.All()
	} else if found, err := m.sv.Find(pattern); err == nil {
		m.rows = found
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// formatRow renders one save entry as a fixed-width list line.
func formatRow(sq *savestate.SaveQuality) string {
	q := sq.Quality()
	level := strconv.Itoa(sq.Value())
	if sq.Modifier() != 0 {
		level = fmt.Sprintf("%d%+d", sq.Value(), sq.Modifier())
	}
	line := fmt.Sprintf("%8d  %-40.40s %8s", q.ID, q.Name, level)
	if q.UsePyramidNumbers {
		line += fmt.Sprintf("  xp %d", sq.XP())
	}
	if status := sq.Status(); status != "" {
		line += "  " + status
	}
	return line
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	lines := make([]string, 0, len(m.rows))
	for i, sq := range m.rows {
		line := formatRow(sq)
		if i == m.cursor {
			line = styleCursorRow.Render(line)
		} else {
			line = styleRow.Render(line)
		}
		lines = append(lines, line)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))

	// Keep the cursor row visible.
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m Model) statusBar() string {
	left := fmt.Sprintf(" %d/%d qualities", len(m.rows), m.sv.Len())
	if m.dirty {
		left += " " + styleDirty.Render("*modified*")
	}
	if m.status != "" {
		left += "  " + m.status
	}
	help := styleDim.Render("↑/↓ move  +/- adjust  enter edit  ctrl+s write  esc quit ")

	pad := m.width - lipgloss.Width(left) - lipgloss.Width(help)
	if pad < 1 {
		pad = 1
	}
	return styleStatusBar.Render(left + strings.Repeat(" ", pad) + help)
}

// View renders the list, status bar and input line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	input := m.filter.View()
	if m.editing {
		input = m.edit.View()
	}
	return m.viewport.View() + "\n" + m.statusBar() + "\n" + input
}

// viewportKeyMap disables Up/Down scrolling, which the cursor uses.
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
