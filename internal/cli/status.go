package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/sundial/internal/screen"
	"github.com/julianstephens/sundial/internal/suntimes"
)

type StatusCmd struct {
	At string `help:"Show the state at this time instead of now (HH:MM[:SS] today, or RFC 3339)."`
}

func (c *StatusCmd) Run(ctx *Context) error {
	now, err := ParseAt(c.At, ctx.Now())
	if err != nil {
		return err
	}

	sun, source, err := ctx.ResolveSunTimes(context.Background())
	if err != nil {
		return err
	}

	cfg := ctx.Config.Screen
	pos := screen.Classify(now, sun, cfg)
	st := screen.Compute(now, sun, cfg)

	phase := pos.Phase.String()
	if pos.Phase == screen.PhaseFadingToDay || pos.Phase == screen.PhaseFadingToNight {
		phase = fmt.Sprintf("%s (%d/%d min)", phase, pos.Elapsed, cfg.FadeDurationMinutes)
	}

	nextName, next := "sunrise", sun.Sunrise
	if pos.Phase == screen.PhaseDay || pos.Phase == screen.PhaseFadingToNight {
		nextName, next = "sunset", sun.Sunset
	}
	tod := suntimes.TimeOfDayOf(now)

	ctx.Printf("%s\n", titleStyle.Render("sundial status"))
	ctx.Printf("%s\n", row("Now", tod.String()+" UTC"))
	ctx.Printf("%s\n", row("Sunrise", sun.Sunrise.String()+" UTC"))
	ctx.Printf("%s\n", row("Sunset", sun.Sunset.String()+" UTC"))
	ctx.Printf("%s\n", row("Source", source))
	ctx.Printf("%s\n", row("Phase", phase))
	ctx.Printf("%s\n", row("Next", fmt.Sprintf("%s in %s", nextName, tod.Until(next).Truncate(time.Minute))))
	ctx.Printf("%s\n", row("State", fmt.Sprintf("%s K, gamma %s", st.TemperatureString(), st.GammaString())))
	ctx.Printf("%s\n", row("Daemon", daemonStatus(ctx)))
	return nil
}

func daemonStatus(ctx *Context) string {
	pid, running, err := ctx.Display.DaemonPID()
	switch {
	case err != nil:
		return warnStyle.Render(fmt.Sprintf("%s (unknown: %v)", ctx.Display.Daemon(), err))
	case running:
		return okStyle.Render(fmt.Sprintf("%s (pid %d)", ctx.Display.Daemon(), pid))
	default:
		return warnStyle.Render(fmt.Sprintf("%s (not running)", ctx.Display.Daemon()))
	}
}
