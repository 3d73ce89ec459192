// Package display drives the external colour daemon (hyprsunset by default)
// with one-shot control commands.
package display

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/sundial/internal/config"
	"github.com/julianstephens/sundial/internal/logger"
	"github.com/julianstephens/sundial/internal/screen"
)

// Linux truncates process names to 15 bytes in /proc/<pid>/stat.
const commLen = 15

var (
	processesFunc = ps.Processes
	lookPathFunc  = exec.LookPath
	runFunc       = runCommand
	startFunc     = startDetached
)

// ErrDaemonNotRunning is returned when the daemon is absent and starting it
// is disabled.
var ErrDaemonNotRunning = errors.New("display daemon is not running")

type Controller struct {
	daemon      string
	command     string
	startDaemon bool
	// StartupDelay is how long to wait after launching the daemon before
	// sending commands to it.
	StartupDelay time.Duration
}

func New(cfg config.Display) *Controller {
	return &Controller{
		daemon:       cfg.Daemon,
		command:      cfg.Command,
		startDaemon:  cfg.StartDaemon,
		StartupDelay: 500 * time.Millisecond,
	}
}

func (c *Controller) Daemon() string {
	return c.daemon
}

func (c *Controller) Command() string {
	return c.command
}

// DaemonPID returns the PID of the first running process whose executable
// matches the daemon name.
func (c *Controller) DaemonPID() (int, bool, error) {
	procs, err := processesFunc()
	if err != nil {
		return 0, false, fmt.Errorf("failed to list processes: %w", err)
	}

	want := filepath.Base(c.daemon)
	for _, p := range procs {
		if matchesExecutable(p.Executable(), want) {
			return p.Pid(), true, nil
		}
	}
	return 0, false, nil
}

func matchesExecutable(exe, want string) bool {
	if exe == want {
		return true
	}
	return len(exe) == commLen && strings.HasPrefix(want, exe)
}

// EnsureRunning starts the daemon when it is not running and starting is
// enabled.
func (c *Controller) EnsureRunning(ctx context.Context) error {
	pid, running, err := c.DaemonPID()
	if err != nil {
		return err
	}
	if running {
		logger.Debug("Display daemon running", "daemon", c.daemon, "pid", pid)
		return nil
	}
	if !c.startDaemon {
		return fmt.Errorf("%w: %s", ErrDaemonNotRunning, c.daemon)
	}

	path, err := lookPathFunc(c.daemon)
	if err != nil {
		return fmt.Errorf("cannot start %s: %w", c.daemon, err)
	}
	pid, err = startFunc(path)
	if err != nil {
		return fmt.Errorf("failed to start %s: %w", c.daemon, err)
	}
	logger.Info("Started display daemon", "daemon", c.daemon, "pid", pid)

	if c.StartupDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.StartupDelay):
		}
	}
	return nil
}

// Apply sends the temperature and gamma as two separate invocations. Both
// are attempted; their failures are joined.
func (c *Controller) Apply(ctx context.Context, st screen.State) error {
	errTemp := c.set(ctx, "temperature", st.TemperatureString())
	errGamma := c.set(ctx, "gamma", st.GammaString())
	return errors.Join(errTemp, errGamma)
}

func (c *Controller) set(ctx context.Context, property, value string) error {
	args := []string{c.daemon, property, value}
	logger.Debug("Running display command", "command", c.command, "args", args)

	out, err := runFunc(ctx, c.command, args...)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", c.command, strings.Join(args, " "), err)
	}

	// hyprctl exits 0 even when the daemon rejects a request
	if msg := strings.TrimSpace(string(out)); msg != "" && !strings.EqualFold(msg, "ok") {
		return fmt.Errorf("%s %s: %s", c.command, strings.Join(args, " "), msg)
	}
	return nil
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return out, fmt.Errorf("%w: %s", err, msg)
		}
		return out, err
	}
	return out, nil
}

func startDetached(path string) (int, error) {
	cmd := exec.Command(path)
	if err := cmd.Start(); err != nil {
		return 0, err
	}
	pid := cmd.Process.Pid
	// The daemon outlives this run
	if err := cmd.Process.Release(); err != nil {
		return pid, err
	}
	return pid, nil
}
