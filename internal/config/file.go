package config

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// file mirrors config.toml. Numeric screen and location values are decoded
// as any so that both numbers and numeric strings are accepted; pointers
// distinguish a missing key from a zero value.
type file struct {
	Location      fileLocation      `toml:"location"`
	Screen        fileScreen        `toml:"screen"`
	Cache         fileCache         `toml:"cache"`
	Sun           fileSun           `toml:"sun"`
	Display       fileDisplay       `toml:"display"`
	Notifications fileNotifications `toml:"notifications"`
	Log           fileLog           `toml:"log"`
}

type fileLocation struct {
	Latitude  any `toml:"latitude"`
	Longitude any `toml:"longitude"`
}

type fileScreen struct {
	DayTemperature      any    `toml:"day_temperature"`
	DayGamma            any    `toml:"day_gamma"`
	NightTemperature    any    `toml:"night_temperature"`
	NightGamma          any    `toml:"night_gamma"`
	FadeDurationMinutes *int64 `toml:"fade_duration_minutes"`
}

type fileCache struct {
	Enabled *bool `toml:"enabled"`
}

type fileSun struct {
	Provider       string  `toml:"provider,omitempty"`
	Fallback       *string `toml:"fallback"`
	APIURL         string  `toml:"api_url,omitempty"`
	TimeoutSeconds *int64  `toml:"timeout_seconds"`
}

type fileDisplay struct {
	Daemon      string `toml:"daemon,omitempty"`
	Command     string `toml:"command,omitempty"`
	StartDaemon *bool  `toml:"start_daemon"`
}

type fileNotifications struct {
	Enabled *bool `toml:"enabled"`
}

type fileLog struct {
	Level string `toml:"level,omitempty"`
}

func (f file) resolve() (Config, error) {
	cfg := Default()
	var err error

	if cfg.Location.Latitude, err = parseFloat("location.latitude", f.Location.Latitude, cfg.Location.Latitude); err != nil {
		return Config{}, err
	}
	if cfg.Location.Longitude, err = parseFloat("location.longitude", f.Location.Longitude, cfg.Location.Longitude); err != nil {
		return Config{}, err
	}

	s := &cfg.Screen
	if s.DayTemperature, err = parseInt("screen.day_temperature", f.Screen.DayTemperature, s.DayTemperature); err != nil {
		return Config{}, err
	}
	if s.NightTemperature, err = parseInt("screen.night_temperature", f.Screen.NightTemperature, s.NightTemperature); err != nil {
		return Config{}, err
	}
	if s.DayGamma, err = parseDecimal("screen.day_gamma", f.Screen.DayGamma, s.DayGamma); err != nil {
		return Config{}, err
	}
	if s.NightGamma, err = parseDecimal("screen.night_gamma", f.Screen.NightGamma, s.NightGamma); err != nil {
		return Config{}, err
	}
	if f.Screen.FadeDurationMinutes != nil {
		s.FadeDurationMinutes = int(*f.Screen.FadeDurationMinutes)
	}

	if f.Cache.Enabled != nil {
		cfg.Cache.Enabled = *f.Cache.Enabled
	}

	if f.Sun.Provider != "" {
		cfg.Sun.Provider = f.Sun.Provider
	}
	if f.Sun.Fallback != nil {
		cfg.Sun.Fallback = *f.Sun.Fallback
	}
	if f.Sun.APIURL != "" {
		cfg.Sun.APIURL = f.Sun.APIURL
	}
	if f.Sun.TimeoutSeconds != nil {
		cfg.Sun.TimeoutSeconds = int(*f.Sun.TimeoutSeconds)
	}

	if f.Display.Daemon != "" {
		cfg.Display.Daemon = f.Display.Daemon
	}
	if f.Display.Command != "" {
		cfg.Display.Command = f.Display.Command
	}
	if f.Display.StartDaemon != nil {
		cfg.Display.StartDaemon = *f.Display.StartDaemon
	}

	if f.Notifications.Enabled != nil {
		cfg.Notifications.Enabled = *f.Notifications.Enabled
	}
	if f.Log.Level != "" {
		cfg.Log.Level = f.Log.Level
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func fromConfig(cfg Config) file {
	fade := int64(cfg.Screen.FadeDurationMinutes)
	timeout := int64(cfg.Sun.TimeoutSeconds)
	fallback := cfg.Sun.Fallback
	cacheEnabled := cfg.Cache.Enabled
	startDaemon := cfg.Display.StartDaemon
	notify := cfg.Notifications.Enabled

	return file{
		Location: fileLocation{
			Latitude:  strconv.FormatFloat(cfg.Location.Latitude, 'f', -1, 64),
			Longitude: strconv.FormatFloat(cfg.Location.Longitude, 'f', -1, 64),
		},
		Screen: fileScreen{
			DayTemperature:      int64(cfg.Screen.DayTemperature),
			DayGamma:            gammaValue(cfg.Screen.DayGamma),
			NightTemperature:    int64(cfg.Screen.NightTemperature),
			NightGamma:          gammaValue(cfg.Screen.NightGamma),
			FadeDurationMinutes: &fade,
		},
		Cache: fileCache{Enabled: &cacheEnabled},
		Sun: fileSun{
			Provider:       cfg.Sun.Provider,
			Fallback:       &fallback,
			APIURL:         cfg.Sun.APIURL,
			TimeoutSeconds: &timeout,
		},
		Display: fileDisplay{
			Daemon:      cfg.Display.Daemon,
			Command:     cfg.Display.Command,
			StartDaemon: &startDaemon,
		},
		Notifications: fileNotifications{Enabled: &notify},
		Log:           fileLog{Level: cfg.Log.Level},
	}
}

// gammaValue writes integral gammas as TOML integers and the rest as
// strings so no precision is lost to float formatting.
func gammaValue(d decimal.Decimal) any {
	if d.IsInteger() {
		return d.IntPart()
	}
	return d.String()
}
