package constants

import "time"

const (
	AppName = "sundial"
	Version = "v0.3.0"

	// DateFormat is the date format used for cache keys (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeOfDayFormat is the format used to persist sunrise and sunset (HH:MM:SS)
	TimeOfDayFormat = "15:04:05"

	// File and directory names
	ConfigFileName  = "config.toml"
	CacheDirName    = "cache"
	CacheFilePrefix = "cache-"
	CacheFileSuffix = ".json"
	LogDirName      = "logs"
	LogFileName     = "sundial.log"

	// Sun time providers
	ProviderAPI     = "api"
	ProviderSuncalc = "suncalc"
	ProviderNOAA    = "noaa"

	DefaultAPIURL         = "https://api.sunrisesunset.io"
	DefaultTimeoutSeconds = 10

	// Display daemon control
	DefaultDaemon  = "hyprsunset"
	DefaultCommand = "hyprctl"

	// Notification constants
	NotificationTimeout = 5 * time.Second
	NotificationIcon    = "weather-clear-night"
)
