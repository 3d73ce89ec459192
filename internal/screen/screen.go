// Package screen maps the current time and the day's sun times to the colour
// temperature and gamma the display should use.
package screen

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julianstephens/sundial/internal/config"
	"github.com/julianstephens/sundial/internal/suntimes"
)

// gammaPlaces is the number of decimal digits kept when interpolating gamma.
const gammaPlaces = 2

// State is the temperature/gamma pair handed to the display daemon.
type State struct {
	Temperature int
	Gamma       decimal.Decimal
}

func (s State) TemperatureString() string {
	return strconv.Itoa(s.Temperature)
}

func (s State) GammaString() string {
	return s.Gamma.String()
}

// Equal compares gamma numerically so 80 and 80.00 are the same state.
func (s State) Equal(o State) bool {
	return s.Temperature == o.Temperature && s.Gamma.Equal(o.Gamma)
}

// Phase describes where now falls relative to sunrise and sunset.
type Phase int

const (
	PhaseNight Phase = iota
	PhaseFadingToDay
	PhaseDay
	PhaseFadingToNight
)

func (p Phase) String() string {
	switch p {
	case PhaseNight:
		return "night"
	case PhaseFadingToDay:
		return "fading to day"
	case PhaseDay:
		return "day"
	case PhaseFadingToNight:
		return "fading to night"
	default:
		return "unknown"
	}
}

// Position is the result of classifying an instant. Elapsed is the number of
// whole minutes into the fade window and is only meaningful while fading.
type Position struct {
	Phase   Phase
	Elapsed int
}

// Classify places now (compared as a UTC time of day) relative to sun.
//
// Day is the half-open interval [sunrise, sunset). While it is day, the last
// FadeDurationMinutes before sunset fade towards night; while it is night, the
// last FadeDurationMinutes before sunrise fade towards day. The current
// day/night flag decides which window is checked, so overlapping windows
// resolve deterministically.
func Classify(now time.Time, sun suntimes.SunTimes, cfg config.Screen) Position {
	t := suntimes.TimeOfDayOf(now)
	isDay := !t.Before(sun.Sunrise) && t.Before(sun.Sunset)

	if isDay {
		if elapsed, ok := fadeElapsed(t, sun.Sunset, cfg.FadeDurationMinutes); ok {
			return Position{Phase: PhaseFadingToNight, Elapsed: elapsed}
		}
		return Position{Phase: PhaseDay}
	}
	if elapsed, ok := fadeElapsed(t, sun.Sunrise, cfg.FadeDurationMinutes); ok {
		return Position{Phase: PhaseFadingToDay, Elapsed: elapsed}
	}
	return Position{Phase: PhaseNight}
}

// fadeElapsed reports whether t lies in [boundary - fade, boundary) and, if
// so, how many whole minutes of the window have passed. The distance to the
// boundary wraps past midnight.
func fadeElapsed(t, boundary suntimes.TimeOfDay, fade int) (int, bool) {
	if fade <= 0 {
		return 0, false
	}
	remaining := t.Until(boundary)
	if remaining <= 0 || remaining > time.Duration(fade)*time.Minute {
		return 0, false
	}
	minutesRemaining := int(remaining / time.Minute)
	return fade - minutesRemaining, true
}

// Compute returns the screen state for now. It is pure and total.
func Compute(now time.Time, sun suntimes.SunTimes, cfg config.Screen) State {
	day := State{Temperature: cfg.DayTemperature, Gamma: cfg.DayGamma}
	night := State{Temperature: cfg.NightTemperature, Gamma: cfg.NightGamma}

	pos := Classify(now, sun, cfg)
	switch pos.Phase {
	case PhaseFadingToDay:
		return Interpolate(night, day, pos.Elapsed, cfg.FadeDurationMinutes)
	case PhaseFadingToNight:
		return Interpolate(day, night, pos.Elapsed, cfg.FadeDurationMinutes)
	case PhaseDay:
		return day
	default:
		return night
	}
}

// Interpolate moves linearly from `from` towards `to` over steps minutes.
//
// The per-minute temperature step is an integer division truncated toward
// zero, so the temperature stays integral. The gamma step and result are
// truncated to two decimals, which keeps small ranges (80 to 100 over 60
// minutes) from collapsing to a zero step. Neither value is rounded.
func Interpolate(from, to State, elapsed, steps int) State {
	if steps <= 0 || elapsed <= 0 {
		return from
	}

	tempStep := (to.Temperature - from.Temperature) / steps
	gammaStep := to.Gamma.Sub(from.Gamma).
		Div(decimal.NewFromInt(int64(steps))).
		Truncate(gammaPlaces)

	n := decimal.NewFromInt(int64(elapsed))
	return State{
		Temperature: from.Temperature + tempStep*elapsed,
		Gamma:       from.Gamma.Add(gammaStep.Mul(n)).Truncate(gammaPlaces),
	}
}
