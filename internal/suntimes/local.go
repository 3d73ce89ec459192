package suntimes

import (
	"context"
	"fmt"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/sixdouglas/suncalc"

	"github.com/julianstephens/sundial/internal/constants"
	apperrors "github.com/julianstephens/sundial/internal/errors"
)

// SuncalcProvider computes sun times locally with the suncalc port of the
// SunCalc algorithm. It needs no network access.
type SuncalcProvider struct{}

func (SuncalcProvider) Name() string {
	return constants.ProviderSuncalc
}

func (SuncalcProvider) SunTimes(_ context.Context, loc Location, date time.Time) (SunTimes, error) {
	// Noon keeps the computation on the requested calendar day
	y, m, d := date.Date()
	noon := time.Date(y, m, d, 12, 0, 0, 0, date.Location())

	times := suncalc.GetTimes(noon, loc.Latitude, loc.Longitude)
	rise, set := times[suncalc.Sunrise].Value, times[suncalc.Sunset].Value
	if !valid(rise) || !valid(set) {
		return SunTimes{}, apperrors.Wrapf(apperrors.ErrFetch, "no sunrise or sunset at %v on %s", loc, date.Format(constants.DateFormat))
	}
	return FromInstants(rise, set), nil
}

// NOAAProvider computes sun times locally with the NOAA solar equations.
type NOAAProvider struct{}

func (NOAAProvider) Name() string {
	return constants.ProviderNOAA
}

func (NOAAProvider) SunTimes(_ context.Context, loc Location, date time.Time) (SunTimes, error) {
	rise, set := sunrise.SunriseSunset(loc.Latitude, loc.Longitude, date.Year(), date.Month(), date.Day())
	if rise.IsZero() || set.IsZero() {
		return SunTimes{}, apperrors.Wrapf(apperrors.ErrFetch, "no sunrise or sunset at %v on %s", loc, date.Format(constants.DateFormat))
	}
	return FromInstants(rise, set), nil
}

// valid rejects the garbage instants suncalc yields when the sun never
// crosses the horizon (polar day or night).
func valid(t time.Time) bool {
	return !t.IsZero() && t.Year() > 1900 && t.Year() < 3000
}

// NewProvider returns the provider registered under name.
func NewProvider(name, apiURL string, timeout time.Duration) (Provider, error) {
	switch name {
	case "", constants.ProviderAPI:
		return NewAPIProvider(apiURL, timeout), nil
	case constants.ProviderSuncalc:
		return SuncalcProvider{}, nil
	case constants.ProviderNOAA:
		return NOAAProvider{}, nil
	default:
		return nil, fmt.Errorf("unknown sun times provider %q", name)
	}
}
