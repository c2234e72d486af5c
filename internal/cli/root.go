package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"quati.dev/quati/internal/cli/common"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "quati",
		Short: "CLI to manage git changes with AI assistance",
		Long: `CLI to manage git changes with AI assistance.

Start a work-in-progress branch from the current one and push it upstream
in a single step:

  quati start            # wip/<current branch>
  quati start login      # wip/login
  quati start login -P   # login`,
		Version:      fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolP(common.FlagQuiet, "q", false, "Run in quiet mode")
	rootCmd.PersistentFlags().String(common.FlagLogFile, "", "Write a debug log to this file (default $QUATI_LOG_FILE)")

	rootCmd.AddCommand(newStartCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}
