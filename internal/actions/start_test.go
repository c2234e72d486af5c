package actions_test

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"

	"quati.dev/quati/internal/actions"
	"quati.dev/quati/internal/config"
	quatierrors "quati.dev/quati/internal/errors"
	"quati.dev/quati/internal/git"
	"quati.dev/quati/internal/output"
	"quati.dev/quati/internal/runtime"
)

var ok = git.Result{Succeeded: true}

func onBranch(name string) git.Result {
	return git.Result{Succeeded: true, Stdout: []byte(name + "\n")}
}

func failed(stderr string) git.Result {
	return git.Result{Succeeded: false, Stderr: []byte(stderr)}
}

type testEnv struct {
	exec   *git.FixedExecutor
	rt     *runtime.Context
	stderr *bytes.Buffer
}

func newTestEnv(t *testing.T, cfg config.Config, currentBranch string) *testEnv {
	t.Helper()
	var stdout, stderr bytes.Buffer
	splog, err := output.NewSplogWithConfig(output.Options{Out: &stdout, Err: &stderr})
	require.NoError(t, err)

	fixed := git.NewFixedExecutor(ok).
		On(onBranch(currentBranch), "rev-parse", "--abbrev-ref", "HEAD")

	return &testEnv{
		exec:   fixed,
		rt:     runtime.NewContext(git.New(fixed), splog, cfg),
		stderr: &stderr,
	}
}

func (e *testEnv) args() [][]string {
	var all [][]string
	for _, call := range e.exec.Calls {
		all = append(all, call.Args)
	}
	return all
}

func TestStartAction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("defaults to prefixed current branch and pushes it", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, config.Default(), "main")

		result, err := actions.StartAction(ctx, env.rt, actions.StartOptions{})
		require.NoError(t, err)
		require.Equal(t, "wip/main", result.Branch)
		require.False(t, result.Created)
		require.True(t, result.Pushed)
		require.NoError(t, result.PushErr)

		require.Equal(t, [][]string{
			{"rev-parse", "--abbrev-ref", "HEAD"},
			{"checkout", "wip/main"},
			{"push", "-u", "origin", "wip/main"},
		}, env.args())
		for _, call := range env.exec.Calls {
			require.Equal(t, "git", call.Program)
		}
	})

	t.Run("uses explicit branch name", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, config.Default(), "main")

		result, err := actions.StartAction(ctx, env.rt, actions.StartOptions{BranchName: "feature/login"})
		require.NoError(t, err)
		require.Equal(t, "wip/feature/login", result.Branch)
	})

	t.Run("strips whitespace from current branch output", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, config.Default(), "feature/test")

		result, err := actions.StartAction(ctx, env.rt, actions.StartOptions{NoPush: true})
		require.NoError(t, err)
		require.Equal(t, "wip/feature/test", result.Branch)
	})

	t.Run("remove prefix ignores QUATI_PREFIX", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.LoadWithEnv("", func(key string) (string, bool) {
			return "user/", key == config.PrefixEnvVar
		})
		require.NoError(t, err)
		env := newTestEnv(t, cfg, "main")

		result, err := actions.StartAction(ctx, env.rt, actions.StartOptions{BranchName: "feature/x", RemovePrefix: true})
		require.NoError(t, err)
		require.Equal(t, "feature/x", result.Branch)
	})

	t.Run("env prefix is applied", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.LoadWithEnv("", func(key string) (string, bool) {
			return "user/", key == config.PrefixEnvVar
		})
		require.NoError(t, err)
		env := newTestEnv(t, cfg, "main")

		result, err := actions.StartAction(ctx, env.rt, actions.StartOptions{})
		require.NoError(t, err)
		require.Equal(t, "user/main", result.Branch)
	})

	t.Run("halts without side effects when already on target branch", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, config.Default(), "wip/main")

		result, err := actions.StartAction(ctx, env.rt, actions.StartOptions{BranchName: "main"})
		require.Error(t, err)
		require.Nil(t, result)
		require.True(t, errors.Is(err, quatierrors.ErrAlreadyOnBranch))
		require.Contains(t, err.Error(), "already on branch 'wip/main'")
		require.Len(t, env.exec.Calls, 1)
		require.False(t, env.exec.Called("checkout"))
		require.False(t, env.exec.Called("push"))
	})

	t.Run("remove prefix on current branch is already on branch", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, config.Default(), "main")

		_, err := actions.StartAction(ctx, env.rt, actions.StartOptions{RemovePrefix: true})
		require.ErrorIs(t, err, quatierrors.ErrAlreadyOnBranch)
		require.Len(t, env.exec.Calls, 1)
	})

	t.Run("whitespace prefix trims to the current branch", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.LoadWithEnv("", func(key string) (string, bool) {
			return " ", key == config.PrefixEnvVar
		})
		require.NoError(t, err)
		env := newTestEnv(t, cfg, "main")

		result, err := actions.StartAction(ctx, env.rt, actions.StartOptions{})
		require.Nil(t, result)
		require.ErrorIs(t, err, quatierrors.ErrAlreadyOnBranch)
		require.Contains(t, err.Error(), "already on branch 'main'")
		require.False(t, env.exec.Called("checkout"))
		require.False(t, env.exec.Called("push"))
	})

	t.Run("target branch is trimmed before checkout", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.LoadWithEnv("", func(key string) (string, bool) {
			return "\tuser/", key == config.PrefixEnvVar
		})
		require.NoError(t, err)
		env := newTestEnv(t, cfg, "main")

		result, err := actions.StartAction(ctx, env.rt, actions.StartOptions{NoPush: true})
		require.NoError(t, err)
		require.Equal(t, "user/main", result.Branch)
		require.True(t, env.exec.Called("checkout", "user/main"))
	})

	t.Run("creates branch when checkout fails", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, config.Default(), "main")
		env.exec.On(failed("error: pathspec 'wip/main' did not match"), "checkout", "wip/main")

		result, err := actions.StartAction(ctx, env.rt, actions.StartOptions{})
		require.NoError(t, err)
		require.True(t, result.Created)
		require.True(t, result.Pushed)
		require.Equal(t, [][]string{
			{"rev-parse", "--abbrev-ref", "HEAD"},
			{"checkout", "wip/main"},
			{"checkout", "-b", "wip/main"},
			{"push", "-u", "origin", "wip/main"},
		}, env.args())
	})

	t.Run("fails when branch can be neither checked out nor created", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, config.Default(), "main")
		env.exec.
			On(failed("error: pathspec 'wip/main' did not match"), "checkout", "wip/main").
			On(failed("fatal: cannot lock ref"), "checkout", "-b", "wip/main")

		result, err := actions.StartAction(ctx, env.rt, actions.StartOptions{})
		require.Nil(t, result)
		require.ErrorIs(t, err, quatierrors.ErrBranchCreate)
		require.Contains(t, err.Error(), "failed to create branch 'wip/main'")
		require.Contains(t, err.Error(), "pathspec")
		require.Contains(t, err.Error(), "cannot lock ref")
		require.False(t, env.exec.Called("push"))
	})

	t.Run("no push skips push regardless of skip hooks", func(t *testing.T) {
		t.Parallel()
		for _, skipHooks := range []bool{false, true} {
			env := newTestEnv(t, config.Default(), "main")

			result, err := actions.StartAction(ctx, env.rt, actions.StartOptions{NoPush: true, SkipHooks: skipHooks})
			require.NoError(t, err)
			require.False(t, result.Pushed)
			require.False(t, env.exec.Called("push"))
		}
	})

	t.Run("skip hooks passes no-verify to push", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, config.Default(), "main")

		_, err := actions.StartAction(ctx, env.rt, actions.StartOptions{SkipHooks: true})
		require.NoError(t, err)
		require.True(t, env.exec.Called("push", "-u", "origin", "wip/main", "--no-verify"))
	})

	t.Run("push omits no-verify without skip hooks", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, config.Default(), "main")

		_, err := actions.StartAction(ctx, env.rt, actions.StartOptions{})
		require.NoError(t, err)
		last := env.exec.Calls[len(env.exec.Calls)-1]
		require.Equal(t, []string{"push", "-u", "origin", "wip/main"}, last.Args)
		require.NotContains(t, last.Args, "--no-verify")
		require.NotContains(t, last.Args, "")
	})

	t.Run("pushes to configured remote", func(t *testing.T) {
		t.Parallel()
		cfg := config.Default()
		cfg.Remote = "upstream"
		env := newTestEnv(t, cfg, "main")

		_, err := actions.StartAction(ctx, env.rt, actions.StartOptions{})
		require.NoError(t, err)
		require.True(t, env.exec.Called("push", "-u", "upstream", "wip/main"))
	})

	t.Run("push failure is reported but not fatal", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, config.Default(), "main")
		env.exec.On(failed("fatal: 'origin' does not appear to be a git repository"), "push", "-u", "origin", "wip/main")

		result, err := actions.StartAction(ctx, env.rt, actions.StartOptions{})
		require.NoError(t, err)
		require.False(t, result.Pushed)
		require.ErrorIs(t, result.PushErr, quatierrors.ErrCommandFailure)
		require.Contains(t, env.stderr.String(), "Could not push wip/main to origin")
		require.Contains(t, env.stderr.String(), "does not appear to be a git repository")
	})

	t.Run("current branch failure halts with stderr", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, config.Default(), "main")
		env.exec.On(failed("fatal: not a git repository"), "rev-parse", "--abbrev-ref", "HEAD")

		result, err := actions.StartAction(ctx, env.rt, actions.StartOptions{BranchName: "x"})
		require.Nil(t, result)
		require.ErrorIs(t, err, quatierrors.ErrCommandFailure)
		require.Contains(t, err.Error(), "not a git repository")
		require.Len(t, env.exec.Calls, 1)
	})

	t.Run("launch failure halts immediately", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, config.Default(), "main")
		env.exec.OnError(exec.ErrNotFound, "rev-parse", "--abbrev-ref", "HEAD")

		_, err := actions.StartAction(ctx, env.rt, actions.StartOptions{})
		require.ErrorIs(t, err, quatierrors.ErrLaunchFailure)
		require.ErrorIs(t, err, exec.ErrNotFound)
		require.Len(t, env.exec.Calls, 1)
	})

	t.Run("launch failure during checkout does not try to create", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, config.Default(), "main")
		env.exec.OnError(exec.ErrNotFound, "checkout", "wip/main")

		_, err := actions.StartAction(ctx, env.rt, actions.StartOptions{})
		require.ErrorIs(t, err, quatierrors.ErrLaunchFailure)
		require.False(t, env.exec.Called("checkout", "-b"))
	})

	t.Run("launch failure during push is fatal", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, config.Default(), "main")
		env.exec.OnError(exec.ErrNotFound, "push", "-u", "origin", "wip/main")

		result, err := actions.StartAction(ctx, env.rt, actions.StartOptions{})
		require.ErrorIs(t, err, quatierrors.ErrLaunchFailure)
		require.NotNil(t, result)
		require.False(t, result.Pushed)
	})

	t.Run("empty target branch is rejected", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, config.Default(), "")

		_, err := actions.StartAction(ctx, env.rt, actions.StartOptions{RemovePrefix: true})
		require.ErrorIs(t, err, quatierrors.ErrEmptyBranchName)
		require.Len(t, env.exec.Calls, 1)
	})
}
