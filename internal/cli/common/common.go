// Package common provides shared helper functions for CLI commands.
package common

import (
	"context"

	"github.com/spf13/cobra"

	"quati.dev/quati/internal/output"
	"quati.dev/quati/internal/runtime"
)

// Persistent flag names defined on the root command
const (
	FlagQuiet   = "quiet"
	FlagLogFile = "log-file"
)

// NewSplog creates the logger for a command from the root's persistent flags
func NewSplog(cmd *cobra.Command) (*output.Splog, error) {
	quiet, _ := cmd.Flags().GetBool(FlagQuiet)
	logFile, _ := cmd.Flags().GetString(FlagLogFile)
	if logFile == "" {
		logFile = output.GetLogFilePath()
	}

	return output.NewSplogWithConfig(output.Options{
		Out:         cmd.OutOrStdout(),
		Err:         cmd.ErrOrStderr(),
		LogFilePath: logFile,
		Quiet:       quiet,
	})
}

// Run is a helper that provides a runtime context to a command's execution function.
// Git commands run in the current working directory.
func Run(cmd *cobra.Command, fn func(ctx context.Context, rt *runtime.Context) error) error {
	splog, err := NewSplog(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = splog.Close() }()

	rt, err := runtime.NewContextForDir("", splog)
	if err != nil {
		return err
	}
	if rt.RepoRoot != "" {
		splog.Debug("repository root: %s", rt.RepoRoot)
	}

	return fn(cmd.Context(), rt)
}
