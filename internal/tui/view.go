package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/sundial/internal/screen"
	"github.com/julianstephens/sundial/internal/suntimes"
)

const barWidth = 30

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateCursor:
		content = m.viewCursor()
	case StateTimeline:
		content = m.viewTimeline()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(content),
		m.help.View(m.keys),
	)
}

func (m Model) viewTabs() string {
	var rendered []string
	for i, title := range tabs {
		if m.state == SessionState(i) {
			rendered = append(rendered, activeTabStyle.Render(title))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) viewCursor() string {
	st, pos := m.Screen()

	phase := pos.Phase.String()
	progress := 0.0
	switch pos.Phase {
	case screen.PhaseDay:
		progress = 1
	case screen.PhaseFadingToDay, screen.PhaseFadingToNight:
		phase = fmt.Sprintf("%s (%d/%d min)", phase, pos.Elapsed, m.cfg.FadeDurationMinutes)
		progress = float64(pos.Elapsed) / float64(m.cfg.FadeDurationMinutes)
		if pos.Phase == screen.PhaseFadingToNight {
			progress = 1 - progress
		}
	}

	lines := []string{
		field("Time", suntimes.TimeOfDayOf(m.cursor).String()+" UTC"),
		field("Sunrise", m.sun.Sunrise.String()+" UTC"),
		field("Sunset", m.sun.Sunset.String()+" UTC"),
		field("Source", m.source),
		"",
		field("Phase", phase),
		field("Temperature", st.TemperatureString()+" K"),
		field("Gamma", st.GammaString()+" %"),
		field("Daylight", Bar(progress, barWidth)),
		"",
		dimStyle.Render("step " + formatStep(m.Step())),
	}
	return strings.Join(lines, "\n")
}

// viewTimeline samples every hour of the cursor's UTC day.
func (m Model) viewTimeline() string {
	midnight := m.cursor.UTC().Truncate(24 * time.Hour)
	cursorHour := m.cursor.UTC().Hour()

	lines := make([]string, 0, 24)
	for h := 0; h < 24; h++ {
		at := midnight.Add(time.Duration(h) * time.Hour)
		st := screen.Compute(at, m.sun, m.cfg)
		pos := screen.Classify(at, m.sun, m.cfg)

		line := fmt.Sprintf("%02d:00  %-16s %5s K  %6s %%", h, pos.Phase, st.TemperatureString(), st.GammaString())
		if h == cursorHour {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func field(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

// Bar renders a width-cell gauge with fraction (clamped to [0, 1]) filled.
func Bar(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))
	return coolStyle.Render(strings.Repeat("█", filled)) + warmStyle.Render(strings.Repeat("░", width-filled))
}

func formatStep(d time.Duration) string {
	if d >= time.Hour {
		return fmt.Sprintf("%dh", int(d/time.Hour))
	}
	return fmt.Sprintf("%dm", int(d/time.Minute))
}
