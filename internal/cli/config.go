package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"github.com/julianstephens/sundial/internal/backup"
	"github.com/julianstephens/sundial/internal/config"
	"github.com/julianstephens/sundial/internal/constants"
)

var runFormFunc = func(form *huh.Form) error { return form.Run() }

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(ctx *Context) error {
	data, err := config.Encode(ctx.Config)
	if err != nil {
		return err
	}
	ctx.Printf("# %s\n%s", ctx.Paths.ConfigFile(), data)
	return nil
}

type ConfigPathCmd struct{}

func (c *ConfigPathCmd) Run(ctx *Context) error {
	ctx.Printf("%s\n", ctx.Paths.ConfigFile())
	return nil
}

type ConfigInitCmd struct {
	Force    bool `help:"Overwrite an existing config file."`
	Defaults bool `help:"Write the default configuration without prompting."`
}

func (c *ConfigInitCmd) Run(ctx *Context) error {
	path := ctx.Paths.ConfigFile()
	_, statErr := os.Stat(path)
	exists := statErr == nil
	if exists && !c.Force {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	} else if statErr != nil && !os.IsNotExist(statErr) {
		return fmt.Errorf("failed to access %s: %w", path, statErr)
	}

	cfg := config.Default()
	if !c.Defaults {
		if err := promptConfig(&cfg); err != nil {
			return err
		}
	}

	if exists {
		saved, err := backup.NewManager(path).CreateBackup()
		if err != nil {
			return fmt.Errorf("failed to back up existing config: %w", err)
		}
		ctx.Printf("Backed up previous config to %s\n", saved)
	}

	if err := config.Save(ctx.Paths.ConfigDir, cfg); err != nil {
		return err
	}
	ctx.Printf("Wrote %s\n", path)
	return nil
}

type ConfigBackupsCmd struct{}

func (c *ConfigBackupsCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Paths.ConfigFile())
	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		ctx.Printf("No config backups in %s\n", mgr.GetBackupDir())
		return nil
	}
	for _, b := range backups {
		ctx.Printf("%s  %s  %d bytes\n", b.Timestamp.Format("2006-01-02 15:04:05"), b.Path, b.Size)
	}
	return nil
}

type ConfigRestoreCmd struct {
	Path string `arg:"" optional:"" help:"Backup file to restore. Defaults to the newest backup." type:"path"`
}

func (c *ConfigRestoreCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Paths.ConfigFile())

	path := c.Path
	if path == "" {
		backups, err := mgr.ListBackups()
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			return fmt.Errorf("no config backups in %s", mgr.GetBackupDir())
		}
		path = backups[0].Path
	}

	previous, err := mgr.RestoreBackup(path)
	if err != nil {
		return err
	}
	if previous != "" {
		ctx.Printf("Backed up previous config to %s\n", previous)
	}
	ctx.Printf("Restored %s from %s\n", ctx.Paths.ConfigFile(), path)
	return nil
}

// promptConfig asks for the location, presets and toggles, starting from
// the values already in cfg.
func promptConfig(cfg *config.Config) error {
	lat := strconv.FormatFloat(cfg.Location.Latitude, 'f', -1, 64)
	lon := strconv.FormatFloat(cfg.Location.Longitude, 'f', -1, 64)
	dayTemp := strconv.Itoa(cfg.Screen.DayTemperature)
	nightTemp := strconv.Itoa(cfg.Screen.NightTemperature)
	dayGamma := cfg.Screen.DayGamma.String()
	nightGamma := cfg.Screen.NightGamma.String()
	fade := strconv.Itoa(cfg.Screen.FadeDurationMinutes)
	provider := cfg.Sun.Provider
	cacheEnabled := cfg.Cache.Enabled
	notify := cfg.Notifications.Enabled

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Latitude").Value(&lat).Validate(validateRange(-90, 90)),
			huh.NewInput().Title("Longitude").Value(&lon).Validate(validateRange(-180, 180)),
			huh.NewSelect[string]().
				Title("Sunrise/sunset source").
				Options(
					huh.NewOption("sunrisesunset.io API", constants.ProviderAPI),
					huh.NewOption("Computed locally (suncalc)", constants.ProviderSuncalc),
					huh.NewOption("Computed locally (NOAA)", constants.ProviderNOAA),
				).
				Value(&provider),
		),
		huh.NewGroup(
			huh.NewInput().Title("Day temperature (K)").Value(&dayTemp).Validate(validatePositiveInt),
			huh.NewInput().Title("Day gamma (%)").Value(&dayGamma).Validate(validateGamma),
			huh.NewInput().Title("Night temperature (K)").Value(&nightTemp).Validate(validatePositiveInt),
			huh.NewInput().Title("Night gamma (%)").Value(&nightGamma).Validate(validateGamma),
			huh.NewInput().Title("Fade duration (minutes, 0 to switch instantly)").Value(&fade).Validate(validateNonNegativeInt),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Cache sun times for the day?").Value(&cacheEnabled),
			huh.NewConfirm().Title("Show a desktop notification when a run fails?").Value(&notify),
		),
	)

	if err := runFormFunc(form); err != nil {
		return fmt.Errorf("interactive form error: %w", err)
	}

	cfg.Location.Latitude, _ = strconv.ParseFloat(lat, 64)
	cfg.Location.Longitude, _ = strconv.ParseFloat(lon, 64)
	cfg.Screen.DayTemperature, _ = strconv.Atoi(dayTemp)
	cfg.Screen.NightTemperature, _ = strconv.Atoi(nightTemp)
	cfg.Screen.DayGamma, _ = decimal.NewFromString(dayGamma)
	cfg.Screen.NightGamma, _ = decimal.NewFromString(nightGamma)
	cfg.Screen.FadeDurationMinutes, _ = strconv.Atoi(fade)
	cfg.Sun.Provider = provider
	cfg.Cache.Enabled = cacheEnabled
	cfg.Notifications.Enabled = notify
	return nil
}

func validateRange(lo, hi float64) func(string) error {
	return func(s string) error {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("enter a decimal number")
		}
		if f < lo || f > hi {
			return fmt.Errorf("must be between %v and %v", lo, hi)
		}
		return nil
	}
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive whole number")
	}
	return nil
}

func validateNonNegativeInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("enter zero or a positive whole number")
	}
	return nil
}

func validateGamma(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}
