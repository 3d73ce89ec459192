package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % SessionState(len(tabs))
		case key.Matches(msg, m.keys.Left):
			m.cursor = m.cursor.Add(-steps[m.step])
		case key.Matches(msg, m.keys.Right):
			m.cursor = m.cursor.Add(steps[m.step])
		case key.Matches(msg, m.keys.Up):
			if m.step < len(steps)-1 {
				m.step++
			}
		case key.Matches(msg, m.keys.Down):
			if m.step > 0 {
				m.step--
			}
		case key.Matches(msg, m.keys.Now):
			m.cursor = m.start
		case key.Matches(msg, m.keys.Sunrise):
			m.cursor = m.nextBoundary(m.sun.Sunrise)
		case key.Matches(msg, m.keys.Sunset):
			m.cursor = m.nextBoundary(m.sun.Sunset)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}

	return m, nil
}
