package main

import (
	"github.com/alecthomas/kong"

	"github.com/julianstephens/sundial/internal/cli"
	"github.com/julianstephens/sundial/internal/config"
	"github.com/julianstephens/sundial/internal/constants"
	"github.com/julianstephens/sundial/internal/errors"
	"github.com/julianstephens/sundial/internal/logger"
)

var CLI struct {
	Version   kong.VersionFlag
	Debug     bool   `help:"Log at debug level and mirror the log to stderr." env:"SUNDIAL_DEBUG"`
	ConfigDir string `help:"Directory holding config.toml." type:"path" env:"SUNDIAL_CONFIG_DIR"`
	DataDir   string `help:"Directory holding the cache and logs." type:"path" env:"SUNDIAL_DATA_DIR"`

	Apply   cli.ApplyCmd   `cmd:"" help:"Set the screen temperature and gamma for the current time." default:"withargs"`
	Status  cli.StatusCmd  `cmd:"" help:"Show sun times, the current phase and the computed screen state."`
	Preview cli.PreviewCmd `cmd:"" help:"Scrub through the day interactively without touching the display."`
	Config  struct {
		Show    cli.ConfigShowCmd    `cmd:"" help:"Print the effective configuration." default:"1"`
		Path    cli.ConfigPathCmd    `cmd:"" help:"Print the config file path."`
		Init    cli.ConfigInitCmd    `cmd:"" help:"Create the config file interactively."`
		Backups cli.ConfigBackupsCmd `cmd:"" help:"List config backups."`
		Restore cli.ConfigRestoreCmd `cmd:"" help:"Restore the config file from a backup."`
	} `cmd:"" help:"Manage the configuration."`
	Cache struct {
		Show  cli.CacheShowCmd  `cmd:"" help:"Show cached sun times." default:"1"`
		Clear cli.CacheClearCmd `cmd:"" help:"Remove all cached sun times."`
	} `cmd:"" help:"Manage the sun times cache."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Adjusts screen colour temperature and gamma to the local sunrise and sunset"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	paths, err := config.DefaultPaths()
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.ConfigDir != "" {
		paths.ConfigDir = CLI.ConfigDir
	}
	if CLI.DataDir != "" {
		paths.DataDir = CLI.DataDir
	}

	// These must work without a readable config file
	cfg := config.Default()
	switch ctx.Command() {
	case "config init", "config path", "config backups", "config restore", "config restore <path>":
	default:
		cfg, err = config.Load(paths.ConfigDir)
		if err != nil {
			errors.Fatal(err)
		}
	}

	if err := logger.Init(logger.Config{
		Debug: CLI.Debug,
		Level: cfg.Log.Level,
		Dir:   paths.DataDir,
	}); err != nil {
		errors.Fatal(err)
	}
	logger.Debug("Starting", "command", ctx.Command(), "config", paths.ConfigFile(), "data", paths.DataDir)

	appCtx, err := cli.NewContext(paths, cfg)
	if err != nil {
		errors.Fatal(err)
	}

	errors.Fatal(ctx.Run(appCtx))
}
