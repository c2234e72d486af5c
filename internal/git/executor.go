package git

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"slices"
	"strings"

	quatierrors "quati.dev/quati/internal/errors"
)

// Result is the outcome of a command that was launched.
// Stdout and Stderr hold the raw streams exactly as the process wrote them.
type Result struct {
	Succeeded bool
	Stdout    []byte
	Stderr    []byte
}

// Executor runs an external program and captures its result.
//
// A non-zero exit is reported as Result.Succeeded == false with a nil error.
// The error return is reserved for programs that could not be launched at all,
// and always matches quatierrors.ErrLaunchFailure.
type Executor interface {
	Execute(ctx context.Context, program string, args ...string) (Result, error)
}

// ShellExecutor spawns real processes.
type ShellExecutor struct {
	// Dir is the working directory for spawned processes. Empty means the
	// current directory.
	Dir string

	// Env is appended to the current environment when non-empty.
	Env []string
}

// NewShellExecutor creates a ShellExecutor that runs commands in dir
func NewShellExecutor(dir string) *ShellExecutor {
	return &ShellExecutor{Dir: dir}
}

// Execute runs program synchronously and blocks until it exits.
func (e *ShellExecutor) Execute(ctx context.Context, program string, args ...string) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cmd := exec.CommandContext(ctx, program, args...)
	if e.Dir != "" {
		cmd.Dir = e.Dir
	}
	if len(e.Env) > 0 {
		cmd.Env = append(os.Environ(), e.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{
				Succeeded: false,
				Stdout:    stdout.Bytes(),
				Stderr:    stderr.Bytes(),
			}, nil
		}
		return Result{}, quatierrors.NewLaunchError(program, args, err)
	}

	return Result{
		Succeeded: true,
		Stdout:    stdout.Bytes(),
		Stderr:    stderr.Bytes(),
	}, nil
}

// Call is a command recorded by FixedExecutor
type Call struct {
	Program string
	Args    []string
}

// String returns the call as a command line
func (c Call) String() string {
	return strings.TrimSpace(c.Program + " " + strings.Join(c.Args, " "))
}

type fixedResponse struct {
	result Result
	err    error
}

// FixedExecutor returns pre-configured results without touching the system.
// Every call is recorded in Calls.
//
// Result (or Err, when set) is returned for any command without an override.
// Overrides registered with On and OnError match on the exact argument list.
type FixedExecutor struct {
	Result Result
	Err    error
	Calls  []Call

	responses map[string]fixedResponse
}

// NewFixedExecutor creates a FixedExecutor that answers every command with result
func NewFixedExecutor(result Result) *FixedExecutor {
	return &FixedExecutor{Result: result}
}

// On registers result for the command with exactly these arguments
func (f *FixedExecutor) On(result Result, args ...string) *FixedExecutor {
	f.setResponse(args, fixedResponse{result: result})
	return f
}

// OnError registers a launch failure for the command with exactly these arguments
func (f *FixedExecutor) OnError(err error, args ...string) *FixedExecutor {
	f.setResponse(args, fixedResponse{err: err})
	return f
}

func (f *FixedExecutor) setResponse(args []string, resp fixedResponse) {
	if f.responses == nil {
		f.responses = make(map[string]fixedResponse)
	}
	f.responses[responseKey(args)] = resp
}

// Execute records the call and returns the configured result.
func (f *FixedExecutor) Execute(_ context.Context, program string, args ...string) (Result, error) {
	f.Calls = append(f.Calls, Call{Program: program, Args: slices.Clone(args)})

	resp, ok := f.responses[responseKey(args)]
	if !ok {
		resp = fixedResponse{result: f.Result, err: f.Err}
	}
	if resp.err != nil {
		return Result{}, quatierrors.NewLaunchError(program, args, resp.err)
	}
	return Result{
		Succeeded: resp.result.Succeeded,
		Stdout:    bytes.Clone(resp.result.Stdout),
		Stderr:    bytes.Clone(resp.result.Stderr),
	}, nil
}

// Called reports whether a command whose arguments start with prefix was executed
func (f *FixedExecutor) Called(prefix ...string) bool {
	for _, call := range f.Calls {
		if len(call.Args) >= len(prefix) && slices.Equal(call.Args[:len(prefix)], prefix) {
			return true
		}
	}
	return false
}

// Reset clears the call log
func (f *FixedExecutor) Reset() {
	f.Calls = nil
}

func responseKey(args []string) string {
	return strings.Join(args, "\x00")
}
