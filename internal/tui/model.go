package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// frameMsg carries a frame from the engine goroutine to the program
type frameMsg Frame

// Model is the Bubble Tea side of a Screen. It only forwards keys and the
// terminal size to the engine and draws the last frame it was sent.
type Model struct {
	screen *Screen
	frame  Frame
	width  int
	height int
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.screen.setSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		for _, k := range translateKey(msg) {
			m.screen.push(k)
		}

	case frameMsg:
		m.frame = Frame(msg)
	}
	return m, nil
}

func (m Model) View() string {
	return Render(m.frame, m.width, m.height)
}
