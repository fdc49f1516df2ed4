// Package ui is the terminal form the launcher shows before the engine
// starts. It only edits records in memory; loading and saving happen around
// the program loop.
package ui

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("241"))

	activeTabStyle = tabStyle.
			Bold(true).
			Foreground(lipgloss.Color("205")).
			Underline(true)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	editStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// chrome is the number of lines taken by everything but the rows.
const chrome = 6

// Model is the bubbletea model for the form.
type Model struct {
	title string
	tabs  []Tab
	keys  KeyMap

	tab    int
	cursor int
	rows   []Row

	// edit buffer for the focused row, valid while editing is set
	editing bool
	buffer  string

	launch bool
	height int
}

// New returns a form over tabs with the first selectable row focused.
func New(title string, tabs []Tab) *Model {
	m := &Model{
		title: title,
		tabs:  tabs,
		keys:  DefaultKeyMap(),
	}
	m.selectTab(0)
	return m
}

// Launch reports whether the user asked to start the engine on exit.
func (m *Model) Launch() bool {
	return m.launch
}

// Run shows the form until the user quits.
func Run(ctx context.Context, m *Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

// handleKey applies one key press and returns tea.Quit when the form is done.
func (m *Model) handleKey(k fmt.Stringer) tea.Cmd {
	if key.Matches(k, m.keys.Abort) {
		m.editing = false
		return tea.Quit
	}
	if m.editing {
		m.handleEditKey(k)
		return nil
	}

	switch {
	case key.Matches(k, m.keys.Quit):
		return tea.Quit
	case key.Matches(k, m.keys.Launch):
		m.launch = true
		return tea.Quit
	case key.Matches(k, m.keys.NextTab):
		m.selectTab(m.tab + 1)
	case key.Matches(k, m.keys.PrevTab):
		m.selectTab(m.tab - 1)
	case key.Matches(k, m.keys.Up):
		m.move(-1)
	case key.Matches(k, m.keys.Down):
		m.move(1)
	case key.Matches(k, m.keys.Toggle):
		m.activate()
	case key.Matches(k, m.keys.Left):
		m.adjust(-1)
	case key.Matches(k, m.keys.Right):
		m.adjust(1)
	case key.Matches(k, m.keys.Remove):
		if r, ok := m.focused().(remover); ok {
			r.Remove()
			m.refresh()
		}
	}
	return nil
}

func (m *Model) handleEditKey(k fmt.Stringer) {
	switch {
	case key.Matches(k, m.keys.Confirm):
		if e, ok := m.focused().(editor); ok {
			e.Commit(m.buffer)
		}
		m.editing = false
		m.buffer = ""
		m.refresh()
	case key.Matches(k, m.keys.Cancel):
		m.editing = false
		m.buffer = ""
	case key.Matches(k, m.keys.Backspace):
		if _, size := utf8.DecodeLastRuneInString(m.buffer); size > 0 {
			m.buffer = m.buffer[:len(m.buffer)-size]
		}
	default:
		s := k.String()
		if s == "space" {
			s = " "
		}
		if utf8.RuneCountInString(s) == 1 {
			m.buffer += s
		}
	}
}

func (m *Model) focused() Row {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor]
}

func (m *Model) activate() {
	switch r := m.focused().(type) {
	case editor:
		m.editing = true
		m.buffer = r.Text()
	case toggler:
		r.Toggle()
		m.refresh()
	}
}

func (m *Model) adjust(delta int) {
	if r, ok := m.focused().(adjuster); ok {
		r.Adjust(delta)
		m.refresh()
	}
}

func (m *Model) selectTab(i int) {
	if len(m.tabs) == 0 {
		return
	}
	m.tab = (i%len(m.tabs) + len(m.tabs)) % len(m.tabs)
	m.rows = m.tabs[m.tab].Rows()
	m.cursor = -1
	m.move(1)
}

// refresh rebuilds the rows of the current tab and keeps the cursor on a
// selectable row.
func (m *Model) refresh() {
	m.rows = m.tabs[m.tab].Rows()
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	for _, dir := range []int{-1, 1} {
		if r := m.focused(); r != nil && selectable(r) {
			return
		}
		m.move(dir)
	}
}

// move steps the cursor to the next selectable row in direction dir. The
// cursor stays put when there is none.
func (m *Model) move(dir int) {
	for i := m.cursor + dir; i >= 0 && i < len(m.rows); i += dir {
		if selectable(m.rows[i]) {
			m.cursor = i
			return
		}
	}
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		m.cursor = -1
		for i, r := range m.rows {
			if selectable(r) {
				m.cursor = i
				return
			}
		}
	}
}

func (m *Model) View() tea.View {
	return tea.NewView(m.render())
}

func (m *Model) render() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	tabs := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.tab {
			tabs[i] = activeTabStyle.Render(t.Title)
		} else {
			tabs[i] = tabStyle.Render(t.Title)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	from, to := m.window()
	for i := from; i < to; i++ {
		b.WriteString(m.renderRow(i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help()))

	return b.String()
}

// window returns the range of rows that fits the terminal, keeping the
// cursor visible.
func (m *Model) window() (int, int) {
	n := len(m.rows)
	visible := m.height - chrome
	if m.height == 0 || visible >= n {
		return 0, n
	}
	visible = max(visible, 1)
	from := max(0, m.cursor-visible/2)
	to := min(n, from+visible)
	return to - visible, to
}

func (m *Model) renderRow(i int) string {
	r := m.rows[i]
	if h, ok := r.(Heading); ok {
		return headingStyle.Render(string(h))
	}

	value := valueStyle.Render(r.Value())
	if i != m.cursor {
		return "  " + labelStyle.Render(r.Label()) + ": " + value
	}
	if m.editing {
		value = editStyle.Render(m.buffer + "_")
	}
	return selectedStyle.Render("> "+r.Label()) + ": " + value
}

func (m *Model) help() string {
	bindings := m.keys.browsing()
	if m.editing {
		bindings = m.keys.editing()
	}
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
