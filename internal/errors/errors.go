// Package errors provides sentinel errors and custom error types for the quati application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrLaunchFailure indicates that a program could not be started at all
	ErrLaunchFailure = errors.New("failed to launch command")

	// ErrCommandFailure indicates that a command ran but exited non-zero
	ErrCommandFailure = errors.New("command failed")

	// ErrAlreadyOnBranch indicates that the target branch is the current branch
	ErrAlreadyOnBranch = errors.New("already on branch")

	// ErrEmptyBranchName indicates that the computed branch name is empty
	ErrEmptyBranchName = errors.New("branch name is empty")

	// ErrBranchCreate indicates that a branch could neither be checked out nor created
	ErrBranchCreate = errors.New("failed to create branch")

	// ErrProtectedBranch indicates an operation that is not allowed on a protected branch
	ErrProtectedBranch = errors.New("operation not allowed on protected branch")
)

// LaunchError represents a program that could not be spawned (not found, permission denied)
type LaunchError struct {
	Program string
	Args    []string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Program, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrLaunchFailure
func (e *LaunchError) Is(target error) bool {
	return target == ErrLaunchFailure
}

// NewLaunchError creates a new LaunchError
func NewLaunchError(program string, args []string, err error) *LaunchError {
	return &LaunchError{
		Program: program,
		Args:    args,
		Err:     err,
	}
}

// CommandError represents a command that ran and exited with a non-zero status
type CommandError struct {
	Program string
	Args    []string
	Stdout  string
	Stderr  string
}

func (e *CommandError) Error() string {
	msg := "command failed: " + e.Program
	if len(e.Args) > 0 {
		msg += " " + strings.Join(e.Args, " ")
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += "\n" + stderr
	}
	return msg
}

// Is returns true if the target error is ErrCommandFailure
func (e *CommandError) Is(target error) bool {
	return target == ErrCommandFailure
}

// NewCommandError creates a new CommandError
func NewCommandError(program string, args []string, stdout, stderr string) *CommandError {
	return &CommandError{
		Program: program,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
	}
}

// PreconditionError represents a check that failed before any repository state was touched
type PreconditionError struct {
	BranchName string
	Reason     error
}

func (e *PreconditionError) Error() string {
	if errors.Is(e.Reason, ErrAlreadyOnBranch) {
		return fmt.Sprintf("you are already on branch '%s'", e.BranchName)
	}
	return e.Reason.Error()
}

func (e *PreconditionError) Unwrap() error {
	return e.Reason
}

// NewAlreadyOnBranchError creates a PreconditionError for a branch that is already checked out
func NewAlreadyOnBranchError(branchName string) *PreconditionError {
	return &PreconditionError{BranchName: branchName, Reason: ErrAlreadyOnBranch}
}

// NewEmptyBranchNameError creates a PreconditionError for an empty branch name
func NewEmptyBranchNameError() *PreconditionError {
	return &PreconditionError{Reason: ErrEmptyBranchName}
}

// BranchCreateError represents a branch that could be neither checked out nor created
type BranchCreateError struct {
	BranchName string
	Stderr     string
}

func (e *BranchCreateError) Error() string {
	msg := fmt.Sprintf("failed to create branch '%s'", e.BranchName)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// Is returns true if the target error is ErrBranchCreate
func (e *BranchCreateError) Is(target error) bool {
	return target == ErrBranchCreate
}

// NewBranchCreateError creates a new BranchCreateError
func NewBranchCreateError(branchName string, stderr string) *BranchCreateError {
	return &BranchCreateError{
		BranchName: branchName,
		Stderr:     stderr,
	}
}
