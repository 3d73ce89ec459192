// Package suntimes holds the sunrise/sunset value type and the providers
// that produce it.
package suntimes

import (
	"context"
	"fmt"
	"time"
)

// SunTimes is one day's sunrise and sunset, as UTC times of day.
type SunTimes struct {
	Sunrise TimeOfDay `json:"sunrise"`
	Sunset  TimeOfDay `json:"sunset"`
}

// FromInstants converts absolute sunrise and sunset instants to SunTimes.
func FromInstants(sunrise, sunset time.Time) SunTimes {
	return SunTimes{
		Sunrise: TimeOfDayOf(sunrise),
		Sunset:  TimeOfDayOf(sunset),
	}
}

// Location is the observer position used to compute or request sun times.
type Location struct {
	Latitude  float64
	Longitude float64
}

func (l Location) String() string {
	return fmt.Sprintf("%.4f,%.4f", l.Latitude, l.Longitude)
}

// Provider returns the sun times for the calendar day containing date.
type Provider interface {
	Name() string
	SunTimes(ctx context.Context, loc Location, date time.Time) (SunTimes, error)
}
