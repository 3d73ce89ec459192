package cli

import (
	"context"
	"fmt"

	"github.com/julianstephens/sundial/internal/logger"
	"github.com/julianstephens/sundial/internal/screen"
)

type ApplyCmd struct {
	DryRun bool   `help:"Compute the screen state without touching the display daemon."`
	At     string `help:"Evaluate at this time instead of now (HH:MM[:SS] today, or RFC 3339)."`
}

func (c *ApplyCmd) Run(ctx *Context) error {
	st, err := c.apply(context.Background(), ctx)
	if err != nil {
		if nerr := ctx.Notifier.Notify("sundial failed", err.Error()); nerr != nil {
			logger.Warn("Failed to send notification", "error", nerr)
		}
		return err
	}

	if c.DryRun {
		ctx.Printf("temperature=%s gamma=%s\n", st.TemperatureString(), st.GammaString())
	}
	return nil
}

func (c *ApplyCmd) apply(goCtx context.Context, ctx *Context) (screen.State, error) {
	now, err := ParseAt(c.At, ctx.Now())
	if err != nil {
		return screen.State{}, err
	}

	sun, source, err := ctx.ResolveSunTimes(goCtx)
	if err != nil {
		return screen.State{}, err
	}

	pos := screen.Classify(now, sun, ctx.Config.Screen)
	st := screen.Compute(now, sun, ctx.Config.Screen)
	logger.Info("Computed screen state",
		"sunrise", sun.Sunrise, "sunset", sun.Sunset, "source", source,
		"phase", pos.Phase, "temperature", st.Temperature, "gamma", st.GammaString())

	if c.DryRun {
		return st, nil
	}

	if err := ctx.Display.EnsureRunning(goCtx); err != nil {
		return screen.State{}, err
	}
	if err := ctx.Display.Apply(goCtx, st); err != nil {
		return screen.State{}, fmt.Errorf("failed to apply screen state: %w", err)
	}
	return st, nil
}
