package constants

const (
	// Default location (Berlin)
	DefaultLatitude  = "52.56"
	DefaultLongitude = "13.39"

	// Default screen presets
	DefaultDayTemperature      = 6000
	DefaultDayGamma            = 100
	DefaultNightTemperature    = 2800
	DefaultNightGamma          = 80
	DefaultFadeDurationMinutes = 60

	DefaultCacheEnabled         = true
	DefaultNotificationsEnabled = true
	DefaultStartDaemon          = true
	DefaultLogLevel             = "warn"
)
