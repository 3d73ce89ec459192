package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/julianstephens/sundial/internal/constants"
)

var (
	doctorLookPath = exec.LookPath
	doctorGetenv   = os.Getenv
)

type DoctorCmd struct {
	Offline bool `help:"Skip the sun times provider check."`
}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.Printf("Running diagnostics...\n\n")

	hasError := false

	// Check 1: Configuration
	if err := ctx.Config.Validate(); err != nil {
		ctx.fail("Configuration", err)
		hasError = true
	} else {
		ctx.ok("Configuration")
	}

	// Check 2: Data directory writable
	if err := checkWritable(ctx.Paths.DataDir); err != nil {
		ctx.fail("Data directory", err)
		hasError = true
	} else {
		ctx.ok("Data directory")
	}

	// Check 3: Cache (warning only)
	if err := checkCache(ctx); err != nil {
		ctx.warn("Sun times cache", err)
	} else {
		ctx.ok("Sun times cache")
	}

	// Check 4: Provider
	if cmd.Offline {
		ctx.skip("Sun times provider", "offline")
	} else if err := checkProvider(ctx); err != nil {
		ctx.fail("Sun times provider", err)
		hasError = true
	} else {
		ctx.ok("Sun times provider")
	}

	// Check 5: Control command
	commandFound := true
	if _, err := doctorLookPath(ctx.Display.Command()); err != nil {
		ctx.fail("Control command", err)
		hasError = true
		commandFound = false
	} else {
		ctx.ok("Control command")
	}

	// Check 6: Daemon (warning only, apply starts it when allowed)
	if !commandFound {
		ctx.skip("Display daemon", "control command missing")
	} else if err := checkDaemon(ctx); err != nil {
		ctx.warn("Display daemon", err)
	} else {
		ctx.ok("Display daemon")
	}

	// Check 7: Notifications (warning only)
	if !ctx.Config.Notifications.Enabled {
		ctx.skip("Notifications", "disabled")
	} else if doctorGetenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		ctx.warn("Notifications", fmt.Errorf("DBUS_SESSION_BUS_ADDRESS is not set"))
	} else {
		ctx.ok("Notifications")
	}

	ctx.Printf("\n")
	if hasError {
		ctx.Printf("%s\n", failStyle.Render("Diagnostics completed with errors."))
		return fmt.Errorf("one or more diagnostic checks failed")
	}

	ctx.Printf("%s\n", okStyle.Render("All diagnostics passed!"))
	return nil
}

func (c *Context) ok(name string) {
	c.Printf("%s %s: OK\n", okStyle.Render("✓"), name)
}

func (c *Context) fail(name string, err error) {
	c.Printf("%s %s: FAIL\n", failStyle.Render("❌"), name)
	c.Printf("   Error: %v\n", err)
}

func (c *Context) warn(name string, err error) {
	c.Printf("%s %s: WARNING\n", warnStyle.Render("⚠"), name)
	c.Printf("   %v\n", err)
}

func (c *Context) skip(name, reason string) {
	c.Printf("⊘ %s: SKIPPED (%s)\n", name, reason)
}

func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create %s: %w", dir, err)
	}
	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return fmt.Errorf("%s is not writable: %w", dir, err)
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

func checkCache(ctx *Context) error {
	if !ctx.Cache.Enabled() {
		return nil
	}
	names, err := ctx.Cache.Entries()
	if err != nil {
		return err
	}
	today := filepath.Base(ctx.Cache.Path())
	for _, name := range names {
		if name != today {
			return fmt.Errorf("stale entry %s (run 'sundial cache clear')", name)
		}
	}
	if len(names) > 0 {
		if _, ok := ctx.Cache.Load(); !ok {
			return fmt.Errorf("today's entry %s is unreadable", today)
		}
	}
	return nil
}

func checkProvider(ctx *Context) error {
	fetchCtx, cancel := context.WithTimeout(context.Background(), ctx.timeout())
	defer cancel()

	st, err := ctx.Provider.SunTimes(fetchCtx, ctx.Config.Location.Coordinates(), ctx.Now())
	if err != nil {
		return fmt.Errorf("%s: %w", ctx.Provider.Name(), err)
	}
	if st.Sunrise == st.Sunset {
		return fmt.Errorf("%s returned identical sunrise and sunset (%s)", ctx.Provider.Name(), st.Sunrise)
	}
	return nil
}

func checkDaemon(ctx *Context) error {
	_, running, err := ctx.Display.DaemonPID()
	if err != nil {
		return err
	}
	if running {
		return nil
	}
	if ctx.Config.Display.StartDaemon {
		return fmt.Errorf("%s is not running, '%s apply' will start it", ctx.Display.Daemon(), constants.AppName)
	}
	return fmt.Errorf("%s is not running and start_daemon is off", ctx.Display.Daemon())
}
