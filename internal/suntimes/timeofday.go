package suntimes

import (
	"fmt"
	"time"

	"github.com/julianstephens/sundial/internal/constants"
)

const day = 24 * time.Hour

// TimeOfDay is a wall-clock time without a date, stored as the offset from
// midnight at second precision. Values are always in [0, 24h).
type TimeOfDay time.Duration

// Clock builds a TimeOfDay from hour, minute and second. Out-of-range
// components wrap around midnight.
func Clock(hour, minute, second int) TimeOfDay {
	d := time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute + time.Duration(second)*time.Second
	return normalize(d)
}

// TimeOfDayOf returns the UTC time of day of t, truncated to the second.
func TimeOfDayOf(t time.Time) TimeOfDay {
	u := t.UTC()
	return Clock(u.Hour(), u.Minute(), u.Second())
}

// ParseTimeOfDay parses an HH:MM:SS string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(constants.TimeOfDayFormat, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return Clock(t.Hour(), t.Minute(), t.Second()), nil
}

func normalize(d time.Duration) TimeOfDay {
	d = d.Truncate(time.Second) % day
	if d < 0 {
		d += day
	}
	return TimeOfDay(d)
}

func (t TimeOfDay) Hour() int   { return int(time.Duration(t) / time.Hour) }
func (t TimeOfDay) Minute() int { return int(time.Duration(t)%time.Hour) / int(time.Minute) }
func (t TimeOfDay) Second() int { return int(time.Duration(t)%time.Minute) / int(time.Second) }

// Before reports whether t is earlier in the day than u.
func (t TimeOfDay) Before(u TimeOfDay) bool {
	return t < u
}

// Until returns how long it takes to reach u from t going forward on the
// clock, wrapping past midnight. The result is in [0, 24h).
func (t TimeOfDay) Until(u TimeOfDay) time.Duration {
	return time.Duration(normalize(time.Duration(u) - time.Duration(t)))
}

// Sub returns t shifted back by d, wrapping past midnight.
func (t TimeOfDay) Sub(d time.Duration) TimeOfDay {
	return normalize(time.Duration(t) - d)
}

// On returns the instant at time of day t on the UTC calendar date of date.
func (t TimeOfDay) On(date time.Time) time.Time {
	y, m, d := date.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Add(time.Duration(t))
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
