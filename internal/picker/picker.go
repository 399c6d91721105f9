// Package picker lets the user choose one of several ambiguous occurrences in the terminal
package picker

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wrap"
	"github.com/timmattison/safefr/internal/report"
	"golang.design/x/clipboard"
)

var (
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true)
	offsetStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")) // darker grey
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Copy   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Copy, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "patch this one"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy sequence"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Copier puts text somewhere the user can paste it from
type Copier func(text string) error

type Model struct {
	lines    []report.Line
	cursor   int
	selected int
	quitting bool
	status   string
	width    int
	height   int
	help     help.Model
	copier   Copier
}

func New(lines []report.Line, copier Copier) Model {
	return Model{
		lines:    lines,
		selected: -1,
		help:     help.New(),
		copier:   copier,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(untypedMessage tea.Msg) (tea.Model, tea.Cmd) {
	switch typedMessage := untypedMessage.(type) {
	case tea.WindowSizeMsg:
		m.width = typedMessage.Width
		m.height = typedMessage.Height
		m.help.Width = typedMessage.Width
	case tea.KeyMsg:
		m.status = ""

		switch {
		case key.Matches(typedMessage, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(typedMessage, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(typedMessage, keys.Down):
			if m.cursor < len(m.lines)-1 {
				m.cursor++
			}
		case key.Matches(typedMessage, keys.Select):
			if len(m.lines) > 0 {
				m.selected = m.cursor
				m.quitting = true
				return m, tea.Quit
			}
		case key.Matches(typedMessage, keys.Copy):
			m.status = m.copy()
		}
	}

	return m, nil
}

func (m Model) copy() string {
	if len(m.lines) == 0 {
		return ""
	}

	if m.copier == nil {
		return "Clipboard is not available"
	}

	if err := m.copier(m.lines[m.cursor].Sequence); err != nil {
		return fmt.Sprintf("Couldn't copy to the clipboard: %v", err)
	}

	return "Copied " + m.lines[m.cursor].Sequence
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	indentAmount := 2
	width := m.width - indentAmount*2

	if width <= 0 {
		width = 80
	}

	var output strings.Builder

	output.WriteString(wrap.String(fmt.Sprintf("Found %d occurrences. Pick the one to patch:", len(m.lines)), width))
	output.WriteString("\n\n")

	first, last := m.window()

	if first > 0 {
		output.WriteString(statusStyle.Render(fmt.Sprintf("  ↑ %d more", first)) + "\n")
	}

	for i := first; i < last; i++ {
		line := m.lines[i]
		text := line.String()

		if i == m.cursor {
			output.WriteString(cursorStyle.Render("> ") + selectedStyle.Render(text))
		} else {
			output.WriteString("  " + text)
		}

		output.WriteString("  " + offsetStyle.Render(fmt.Sprintf("@ 0x%08x", line.Offset)))
		output.WriteString("\n")
	}

	if last < len(m.lines) {
		output.WriteString(statusStyle.Render(fmt.Sprintf("  ↓ %d more", len(m.lines)-last)) + "\n")
	}

	output.WriteString("\n")

	if m.status != "" {
		output.WriteString(statusStyle.Render(wrap.String(m.status, width)))
		output.WriteString("\n")
	}

	output.WriteString(m.help.View(keys))

	return indent.String(output.String(), uint(indentAmount)) + "\n"
}

// Lines taken by everything except the list: title, blank lines, scroll markers, status
// and help
const chromeHeight = 8

// window returns the range of lines that fits the terminal, keeping the cursor near the
// middle. Everything is shown until the terminal size is known.
func (m Model) window() (first int, last int) {
	rows := m.height - chromeHeight

	if m.height == 0 || len(m.lines) <= rows {
		return 0, len(m.lines)
	}

	rows = max(rows, 1)
	first = min(max(m.cursor-rows/2, 0), len(m.lines)-rows)

	return first, first + rows
}

// Choice returns the line that was picked with enter, if any
func (m Model) Choice() (report.Line, bool) {
	if m.selected < 0 || m.selected >= len(m.lines) {
		return report.Line{}, false
	}

	return m.lines[m.selected], true
}

// Run shows the picker and returns the chosen line. ok is false when the user quit
// without choosing.
func Run(lines []report.Line, copier Copier) (choice report.Line, ok bool, err error) {
	final, err := tea.NewProgram(New(lines, copier)).Run()

	if err != nil {
		return report.Line{}, false, err
	}

	choice, ok = final.(Model).Choice()

	return choice, ok, nil
}

var clipboardInit = sync.OnceValue(clipboard.Init)

// SystemClipboard copies text to the system clipboard
func SystemClipboard(text string) error {
	if err := clipboardInit(); err != nil {
		return err
	}

	// The returned channel only fires once something else replaces the clipboard content
	clipboard.Write(clipboard.FmtText, []byte(text))

	return nil
}
