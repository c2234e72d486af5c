// Package actions provides the high-level operations behind quati commands.
package actions

import (
	"context"
	"errors"
	"strings"

	"quati.dev/quati/internal/config"
	quatierrors "quati.dev/quati/internal/errors"
	"quati.dev/quati/internal/git"
	"quati.dev/quati/internal/output"
	"quati.dev/quati/internal/runtime"
)

// StartOptions contains options for the start command
type StartOptions struct {
	// BranchName is the base name of the branch. Empty means the current branch.
	BranchName   string
	SkipHooks    bool
	RemovePrefix bool
	NoPush       bool
}

// StartResult describes what StartAction did
type StartResult struct {
	Branch string
	// Created is true when the branch did not exist and was created
	Created bool
	// Pushed is true when the push step ran and succeeded
	Pushed bool
	// PushErr holds the push failure, which does not fail the action
	PushErr error
}

// StartAction checks out (or creates) a prefixed branch and pushes it upstream.
//
// The current branch is resolved first. Nothing is checked out or pushed when
// the target branch is the current branch.
func StartAction(ctx context.Context, rt *runtime.Context, opts StartOptions) (*StartResult, error) {
	g := rt.Git
	splog := rt.Splog
	cfg := rt.Config.WithFlags(configFlags(opts))

	splog.Debug("prefix %q (%s), remote %q (%s)", cfg.Prefix, cfg.PrefixSource, cfg.Remote, cfg.RemoteSource)

	currentBranch, err := g.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}

	base := git.TrimBranchName(opts.BranchName)
	if base == "" {
		base = currentBranch
	}
	branchName := git.TrimBranchName(cfg.BranchName(base))

	if branchName == "" {
		return nil, quatierrors.NewEmptyBranchNameError()
	}
	if branchName == currentBranch {
		return nil, quatierrors.NewAlreadyOnBranchError(branchName)
	}

	result := &StartResult{Branch: branchName}

	created, err := checkoutOrCreate(ctx, g, branchName)
	if err != nil {
		return nil, err
	}
	result.Created = created
	if created {
		splog.Info("Created branch %s.", output.ColorBranchName(branchName))
	} else {
		splog.Info("Switched to branch %s.", output.ColorBranchName(branchName))
	}

	if cfg.NoPush {
		splog.Debug("Skipping push of %s", branchName)
		return result, nil
	}

	if err := g.PushBranch(ctx, cfg.Remote, branchName, cfg.SkipHooks); err != nil {
		if errors.Is(err, quatierrors.ErrLaunchFailure) {
			return result, err
		}
		result.PushErr = err
		splog.Warn("Could not push %s to %s: %v", branchName, cfg.Remote, output.ColorYellow(err.Error()))
		return result, nil
	}

	result.Pushed = true
	splog.Info("Pushed %s to %s.", output.ColorBranchName(branchName), cfg.Remote)
	return result, nil
}

// checkoutOrCreate checks out branchName, creating it when the checkout fails.
// It reports whether the branch was created.
func checkoutOrCreate(ctx context.Context, g *git.Git, branchName string) (bool, error) {
	checkoutErr := g.CheckoutBranch(ctx, branchName)
	if checkoutErr == nil {
		return false, nil
	}
	if errors.Is(checkoutErr, quatierrors.ErrLaunchFailure) {
		return false, checkoutErr
	}

	createErr := g.CreateAndCheckoutBranch(ctx, branchName)
	if createErr == nil {
		return true, nil
	}
	if errors.Is(createErr, quatierrors.ErrLaunchFailure) {
		return false, createErr
	}

	stderr := strings.TrimSpace(strings.Join([]string{stderrOf(checkoutErr), stderrOf(createErr)}, "\n"))
	return false, quatierrors.NewBranchCreateError(branchName, stderr)
}

func configFlags(opts StartOptions) config.Flags {
	return config.Flags{
		SkipHooks:    opts.SkipHooks,
		RemovePrefix: opts.RemovePrefix,
		NoPush:       opts.NoPush,
	}
}

func stderrOf(err error) string {
	var cmdErr *quatierrors.CommandError
	if errors.As(err, &cmdErr) {
		return strings.TrimSpace(cmdErr.Stderr)
	}
	return ""
}
