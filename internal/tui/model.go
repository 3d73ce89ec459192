// Package tui is an interactive preview of the screen state across a day.
// It only computes states; nothing is sent to the display daemon.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/sundial/internal/config"
	"github.com/julianstephens/sundial/internal/screen"
	"github.com/julianstephens/sundial/internal/suntimes"
)

type SessionState int

const (
	StateCursor SessionState = iota
	StateTimeline
)

var tabs = []string{"Cursor", "Timeline"}

// steps are the cursor increments, smallest first.
var steps = []time.Duration{time.Minute, 5 * time.Minute, 15 * time.Minute, time.Hour}

type Model struct {
	sun      suntimes.SunTimes
	cfg      config.Screen
	source   string
	start    time.Time
	cursor   time.Time
	step     int
	state    SessionState
	keys     KeyMap
	help     help.Model
	quitting bool
	width    int
	height   int
}

func NewModel(sun suntimes.SunTimes, cfg config.Screen, source string, start time.Time) Model {
	start = start.Truncate(time.Minute)
	return Model{
		sun:    sun,
		cfg:    cfg,
		source: source,
		start:  start,
		cursor: start,
		step:   1,
		state:  StateCursor,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Cursor() time.Time {
	return m.cursor
}

func (m Model) Step() time.Duration {
	return steps[m.step]
}

func (m Model) State() SessionState {
	return m.state
}

// Screen returns the computed state and phase at the cursor.
func (m Model) Screen() (screen.State, screen.Position) {
	return screen.Compute(m.cursor, m.sun, m.cfg), screen.Classify(m.cursor, m.sun, m.cfg)
}

// nextBoundary returns the first instant strictly after the cursor whose UTC
// time of day equals boundary.
func (m Model) nextBoundary(boundary suntimes.TimeOfDay) time.Time {
	d := suntimes.TimeOfDayOf(m.cursor).Until(boundary)
	if d == 0 {
		d = 24 * time.Hour
	}
	return m.cursor.Add(d)
}
