package git

import (
	"context"
	"fmt"
	"strings"

	quatierrors "quati.dev/quati/internal/errors"
)

const (
	// DefaultProgram is the git executable looked up on PATH
	DefaultProgram = "git"

	// DefaultRemote is the remote branches are pushed to
	DefaultRemote = "origin"

	// MainBranch is never deleted by DeleteBranch
	MainBranch = "main"
)

const asciiSpace = " \t\n\v\f\r"

// Git runs git subcommands through an Executor.
type Git struct {
	executor Executor
	program  string
}

// New creates a Git that runs commands through executor
func New(executor Executor) *Git {
	return &Git{executor: executor, program: DefaultProgram}
}

// NewWithDir creates a Git backed by real processes running in dir
func NewWithDir(dir string) *Git {
	return New(NewShellExecutor(dir))
}

// WithProgram returns a copy of g that runs program instead of git
func (g *Git) WithProgram(program string) *Git {
	return &Git{executor: g.executor, program: program}
}

// run executes a git command and converts a non-zero exit into a CommandError.
// The Result is returned in both cases so callers can inspect the streams.
func (g *Git) run(ctx context.Context, args ...string) (Result, error) {
	result, err := g.executor.Execute(ctx, g.program, args...)
	if err != nil {
		return Result{}, err
	}
	if !result.Succeeded {
		return result, quatierrors.NewCommandError(g.program, args, string(result.Stdout), string(result.Stderr))
	}
	return result, nil
}

// CurrentBranch returns the name of the checked out branch
func (g *Git) CurrentBranch(ctx context.Context) (string, error) {
	result, err := g.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return DecodeOutput(result.Stdout), nil
}

// CheckoutBranch checks out an existing branch
func (g *Git) CheckoutBranch(ctx context.Context, branchName string) error {
	if _, err := g.run(ctx, "checkout", branchName); err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", branchName, err)
	}
	return nil
}

// CreateAndCheckoutBranch creates and checks out a new branch
func (g *Git) CreateAndCheckoutBranch(ctx context.Context, branchName string) error {
	if _, err := g.run(ctx, "checkout", "-b", branchName); err != nil {
		return fmt.Errorf("failed to create and checkout branch %s: %w", branchName, err)
	}
	return nil
}

// PushArgs returns the arguments used to push branchName to remote.
// --no-verify is only present when skipHooks is set.
func PushArgs(remote, branchName string, skipHooks bool) []string {
	args := []string{"push", "-u", remote, branchName}
	if skipHooks {
		args = append(args, "--no-verify")
	}
	return args
}

// PushBranch pushes branchName to remote and sets it as upstream
func (g *Git) PushBranch(ctx context.Context, remote, branchName string, skipHooks bool) error {
	if remote == "" {
		remote = DefaultRemote
	}
	if _, err := g.run(ctx, PushArgs(remote, branchName, skipHooks)...); err != nil {
		return fmt.Errorf("failed to push branch %s: %w", branchName, err)
	}
	return nil
}

// DeleteBranch force-deletes a local branch. The main branch is refused.
func (g *Git) DeleteBranch(ctx context.Context, branchName string) error {
	if branchName == MainBranch {
		return fmt.Errorf("cannot delete branch %s: %w", branchName, quatierrors.ErrProtectedBranch)
	}
	if _, err := g.run(ctx, "branch", "-D", branchName); err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", branchName, err)
	}
	return nil
}

// DecodeOutput converts raw command output into a trimmed string.
// Invalid UTF-8 is replaced with U+FFFD.
func DecodeOutput(output []byte) string {
	return strings.Trim(strings.ToValidUTF8(string(output), "�"), asciiSpace)
}

// TrimBranchName trims surrounding ASCII whitespace from a branch name
func TrimBranchName(name string) string {
	return strings.Trim(name, asciiSpace)
}
