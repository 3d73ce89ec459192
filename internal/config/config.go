package config

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"

	"github.com/julianstephens/sundial/internal/constants"
	apperrors "github.com/julianstephens/sundial/internal/errors"
	"github.com/julianstephens/sundial/internal/suntimes"
)

// Config is the validated, typed configuration for one run.
type Config struct {
	Location      Location
	Screen        Screen
	Cache         Cache
	Sun           Sun
	Display       Display
	Notifications Notifications
	Log           Log
}

type Location struct {
	Latitude  float64
	Longitude float64
}

// Coordinates converts the location for the sun time providers.
func (l Location) Coordinates() suntimes.Location {
	return suntimes.Location{Latitude: l.Latitude, Longitude: l.Longitude}
}

// Screen holds the day and night presets and the fade window length.
// A FadeDurationMinutes of 0 switches presets instantly.
type Screen struct {
	DayTemperature      int
	DayGamma            decimal.Decimal
	NightTemperature    int
	NightGamma          decimal.Decimal
	FadeDurationMinutes int
}

type Cache struct {
	Enabled bool
}

// Sun selects where sunrise and sunset come from. Fallback names a local
// provider used when the primary one fails; empty disables the fallback.
type Sun struct {
	Provider       string
	Fallback       string
	APIURL         string
	TimeoutSeconds int
}

// Display names the colour daemon and the command used to control it.
type Display struct {
	Daemon      string
	Command     string
	StartDaemon bool
}

type Notifications struct {
	Enabled bool
}

type Log struct {
	Level string
}

// Default returns the configuration written on first run.
func Default() Config {
	lat, _ := strconv.ParseFloat(constants.DefaultLatitude, 64)
	lon, _ := strconv.ParseFloat(constants.DefaultLongitude, 64)
	return Config{
		Location: Location{Latitude: lat, Longitude: lon},
		Screen: Screen{
			DayTemperature:      constants.DefaultDayTemperature,
			DayGamma:            decimal.NewFromInt(constants.DefaultDayGamma),
			NightTemperature:    constants.DefaultNightTemperature,
			NightGamma:          decimal.NewFromInt(constants.DefaultNightGamma),
			FadeDurationMinutes: constants.DefaultFadeDurationMinutes,
		},
		Cache: Cache{Enabled: constants.DefaultCacheEnabled},
		Sun: Sun{
			Provider:       constants.ProviderAPI,
			Fallback:       constants.ProviderSuncalc,
			APIURL:         constants.DefaultAPIURL,
			TimeoutSeconds: constants.DefaultTimeoutSeconds,
		},
		Display: Display{
			Daemon:      constants.DefaultDaemon,
			Command:     constants.DefaultCommand,
			StartDaemon: constants.DefaultStartDaemon,
		},
		Notifications: Notifications{Enabled: constants.DefaultNotificationsEnabled},
		Log:           Log{Level: constants.DefaultLogLevel},
	}
}

// Load reads config.toml from configDir. When the file does not exist the
// default configuration is written there and returned. Any failure reading or
// validating an existing file is an ErrConfig; there is no fallback to
// defaults once a file exists.
func Load(configDir string) (Config, error) {
	path := filepath.Join(configDir, constants.ConfigFileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := Default()
		if err := Save(configDir, cfg); err != nil {
			return Config{}, err
		}
		return cfg, nil
	}
	if err != nil {
		return Config{}, apperrors.Wrap(apperrors.ErrConfig, fmt.Errorf("failed to read %s: %w", path, err))
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, apperrors.Wrap(apperrors.ErrConfig, fmt.Errorf("%s: %w", path, err))
	}
	return cfg, nil
}

// Parse decodes and validates TOML config data. Keys missing from data keep
// their default values.
func Parse(data []byte) (Config, error) {
	var f file
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return Config{}, err
	}
	return f.resolve()
}

// Save writes cfg to config.toml in configDir, creating the directory.
func Save(configDir string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return apperrors.Wrap(apperrors.ErrConfig, err)
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return apperrors.Wrap(apperrors.ErrConfig, fmt.Errorf("failed to create config dir: %w", err))
	}

	data, err := Encode(cfg)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrConfig, err)
	}

	path := filepath.Join(configDir, constants.ConfigFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.Wrap(apperrors.ErrConfig, fmt.Errorf("failed to write %s: %w", path, err))
	}
	return nil
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	return toml.Marshal(fromConfig(cfg))
}

// Validate checks value ranges and names that the TOML types cannot express.
func (c Config) Validate() error {
	if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
		return fmt.Errorf("location.latitude %v out of range [-90, 90]", c.Location.Latitude)
	}
	if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
		return fmt.Errorf("location.longitude %v out of range [-180, 180]", c.Location.Longitude)
	}
	if c.Screen.DayTemperature <= 0 {
		return fmt.Errorf("screen.day_temperature must be positive, got %d", c.Screen.DayTemperature)
	}
	if c.Screen.NightTemperature <= 0 {
		return fmt.Errorf("screen.night_temperature must be positive, got %d", c.Screen.NightTemperature)
	}
	if c.Screen.DayGamma.IsNegative() {
		return fmt.Errorf("screen.day_gamma must not be negative, got %s", c.Screen.DayGamma)
	}
	if c.Screen.NightGamma.IsNegative() {
		return fmt.Errorf("screen.night_gamma must not be negative, got %s", c.Screen.NightGamma)
	}
	if c.Screen.FadeDurationMinutes < 0 {
		return fmt.Errorf("screen.fade_duration_minutes must not be negative, got %d", c.Screen.FadeDurationMinutes)
	}
	if !validProvider(c.Sun.Provider) {
		return fmt.Errorf("sun.provider %q must be one of api, suncalc, noaa", c.Sun.Provider)
	}
	if c.Sun.Fallback != "" && !validProvider(c.Sun.Fallback) {
		return fmt.Errorf("sun.fallback %q must be empty or one of api, suncalc, noaa", c.Sun.Fallback)
	}
	if c.Sun.TimeoutSeconds <= 0 {
		return fmt.Errorf("sun.timeout_seconds must be positive, got %d", c.Sun.TimeoutSeconds)
	}
	if strings.TrimSpace(c.Display.Daemon) == "" {
		return fmt.Errorf("display.daemon must not be empty")
	}
	if strings.TrimSpace(c.Display.Command) == "" {
		return fmt.Errorf("display.command must not be empty")
	}
	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}
	return nil
}

func validProvider(name string) bool {
	switch name {
	case constants.ProviderAPI, constants.ProviderSuncalc, constants.ProviderNOAA:
		return true
	}
	return false
}

// parseInt accepts TOML integers, integral floats and numeric strings.
func parseInt(key string, v any, def int) (int, error) {
	switch x := v.(type) {
	case nil:
		return def, nil
	case int64:
		return int(x), nil
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("%s must be an integer, got %v", key, x)
		}
		return int(x), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, fmt.Errorf("%s must be an integer, got %q", key, x)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%s has unsupported type %T", key, v)
	}
}

func parseDecimal(key string, v any, def decimal.Decimal) (decimal.Decimal, error) {
	switch x := v.(type) {
	case nil:
		return def, nil
	case int64:
		return decimal.NewFromInt(x), nil
	case float64:
		return decimal.NewFromFloat(x), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(x))
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%s must be a number, got %q", key, x)
		}
		return d, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%s has unsupported type %T", key, v)
	}
}

func parseFloat(key string, v any, def float64) (float64, error) {
	switch x := v.(type) {
	case nil:
		return def, nil
	case int64:
		return float64(x), nil
	case float64:
		return x, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("%s must be a decimal coordinate, got %q", key, x)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%s has unsupported type %T", key, v)
	}
}
