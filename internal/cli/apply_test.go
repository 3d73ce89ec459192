package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/julianstephens/sundial/internal/errors"
)

func TestApplyCmd_DryRun(t *testing.T) {
	env := newTestEnv(t)

	cmd := &ApplyCmd{DryRun: true}
	require.NoError(t, cmd.Run(env.ctx))

	assert.Equal(t, "temperature=4390 gamma=89.9\n", env.out.String())
	assert.Zero(t, env.display.ensured)
	assert.Empty(t, env.display.applied)
}

func TestApplyCmd_DryRunAt(t *testing.T) {
	tests := []struct {
		at   string
		want string
	}{
		{"02:00", "temperature=2800 gamma=80\n"},
		{"06:00", "temperature=6000 gamma=100\n"},
		{"12:00", "temperature=6000 gamma=100\n"},
		{"17:30", "temperature=4410 gamma=90.1\n"},
		{"18:00", "temperature=2800 gamma=80\n"},
	}

	for _, tt := range tests {
		t.Run(tt.at, func(t *testing.T) {
			env := newTestEnv(t)
			require.NoError(t, (&ApplyCmd{DryRun: true, At: tt.at}).Run(env.ctx))
			assert.Equal(t, tt.want, env.out.String())
		})
	}
}

func TestApplyCmd_AppliesState(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, (&ApplyCmd{}).Run(env.ctx))

	assert.Equal(t, 1, env.display.ensured)
	require.Len(t, env.display.applied, 1)
	assert.Equal(t, 4390, env.display.applied[0].Temperature)
	assert.Equal(t, "89.9", env.display.applied[0].GammaString())
	assert.Empty(t, env.out.String())
	assert.Empty(t, env.notifier.summaries)
}

func TestApplyCmd_DaemonFailureNotifies(t *testing.T) {
	env := newTestEnv(t)
	env.display.ensureErr = errors.New("display daemon is not running: hyprsunset")

	err := (&ApplyCmd{}).Run(env.ctx)
	require.Error(t, err)
	assert.Empty(t, env.display.applied)
	require.Len(t, env.notifier.summaries, 1)
	assert.Equal(t, "sundial failed", env.notifier.summaries[0])
	assert.Contains(t, env.notifier.bodies[0], "hyprsunset")
}

func TestApplyCmd_ApplyFailure(t *testing.T) {
	env := newTestEnv(t)
	env.display.applyErr = errors.New("hyprctl hyprsunset gamma 89.9: invalid")

	err := (&ApplyCmd{}).Run(env.ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to apply screen state")
	assert.Len(t, env.notifier.summaries, 1)
}

func TestApplyCmd_FetchErrorPropagates(t *testing.T) {
	env := newTestEnv(t)
	env.provider.err = apperrors.Wrap(apperrors.ErrFetch, errors.New("HTTP 500"))

	err := (&ApplyCmd{}).Run(env.ctx)
	assert.ErrorIs(t, err, apperrors.ErrFetch)
	assert.Zero(t, env.display.ensured)
	assert.Len(t, env.notifier.summaries, 1)
}

func TestApplyCmd_NotifyFailureKeepsOriginalError(t *testing.T) {
	env := newTestEnv(t)
	env.provider.err = apperrors.Wrap(apperrors.ErrFetch, errors.New("HTTP 500"))
	env.notifier.err = errors.New("no session bus")

	err := (&ApplyCmd{}).Run(env.ctx)
	assert.ErrorIs(t, err, apperrors.ErrFetch)
	assert.NotContains(t, err.Error(), "session bus")
}

func TestApplyCmd_InvalidAt(t *testing.T) {
	env := newTestEnv(t)

	err := (&ApplyCmd{DryRun: true, At: "teatime"}).Run(env.ctx)
	assert.Error(t, err)
	assert.Zero(t, env.provider.calls)
}
