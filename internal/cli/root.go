package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/sundial/internal/cache"
	"github.com/julianstephens/sundial/internal/config"
	"github.com/julianstephens/sundial/internal/display"
	"github.com/julianstephens/sundial/internal/logger"
	"github.com/julianstephens/sundial/internal/notifier"
	"github.com/julianstephens/sundial/internal/screen"
	"github.com/julianstephens/sundial/internal/suntimes"
)

// SourceCache is reported as the source of sun times read from the cache.
const SourceCache = "cache"

// Display is the part of the display controller the commands use.
type Display interface {
	Daemon() string
	Command() string
	DaemonPID() (int, bool, error)
	EnsureRunning(ctx context.Context) error
	Apply(ctx context.Context, st screen.State) error
}

type Notifier interface {
	Notify(summary, body string) error
}

// Context carries everything a command needs for one run. Nothing in it is
// global; main builds it from flags and the loaded configuration.
type Context struct {
	Paths    config.Paths
	Config   config.Config
	Cache    *cache.Cache
	Provider suntimes.Provider
	// Fallback is consulted when Provider fails. Nil disables it.
	Fallback suntimes.Provider
	Display  Display
	Notifier Notifier
	Now      func() time.Time
	Out      io.Writer
}

// NewContext wires the components described by cfg.
func NewContext(paths config.Paths, cfg config.Config) (*Context, error) {
	timeout := time.Duration(cfg.Sun.TimeoutSeconds) * time.Second

	provider, err := suntimes.NewProvider(cfg.Sun.Provider, cfg.Sun.APIURL, timeout)
	if err != nil {
		return nil, err
	}

	var fallback suntimes.Provider
	if cfg.Sun.Fallback != "" && cfg.Sun.Fallback != cfg.Sun.Provider {
		fallback, err = suntimes.NewProvider(cfg.Sun.Fallback, cfg.Sun.APIURL, timeout)
		if err != nil {
			return nil, err
		}
	}

	return &Context{
		Paths:    paths,
		Config:   cfg,
		Cache:    cache.New(cfg.Cache, paths.CacheDir()),
		Provider: provider,
		Fallback: fallback,
		Display:  display.New(cfg.Display),
		Notifier: notifier.New(cfg.Notifications.Enabled),
		Now:      time.Now,
		Out:      os.Stdout,
	}, nil
}

func (c *Context) timeout() time.Duration {
	if c.Config.Sun.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.Config.Sun.TimeoutSeconds) * time.Second
}

// ResolveSunTimes returns today's sun times and where they came from.
//
// A cache hit is returned directly. On a miss the primary provider is asked;
// if it fails and a fallback is configured, the fallback's answer is used but
// not cached, so the next run retries the primary provider. A failed cache
// write is logged and does not fail the run.
func (c *Context) ResolveSunTimes(ctx context.Context) (suntimes.SunTimes, string, error) {
	if st, ok := c.Cache.Load(); ok {
		return st, SourceCache, nil
	}

	loc := c.Config.Location.Coordinates()
	now := c.Now()

	fetchCtx, cancel := context.WithTimeout(ctx, c.timeout())
	defer cancel()

	st, err := c.Provider.SunTimes(fetchCtx, loc, now)
	if err != nil {
		if c.Fallback == nil {
			return suntimes.SunTimes{}, "", err
		}
		logger.Warn("Sun times provider failed, using fallback",
			"provider", c.Provider.Name(), "fallback", c.Fallback.Name(), "error", err)

		fbCtx, fbCancel := context.WithTimeout(ctx, c.timeout())
		defer fbCancel()
		fst, ferr := c.Fallback.SunTimes(fbCtx, loc, now)
		if ferr != nil {
			return suntimes.SunTimes{}, "", errors.Join(err, ferr)
		}
		return fst, c.Fallback.Name(), nil
	}

	if _, err := c.Cache.Store(st); err != nil {
		logger.Warn("Failed to cache sun times", "error", err)
	}
	return st, c.Provider.Name(), nil
}

// Printf writes to the command output.
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

// ParseAt interprets a --at value: RFC 3339, or HH:MM[:SS] today in the
// local time zone. Empty means now.
func ParseAt(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return now, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.ParseInLocation(layout, value, now.Location()); err == nil {
			y, m, d := now.Date()
			return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, now.Location()), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q, use HH:MM, HH:MM:SS or RFC 3339", value)
}
