package cli

import (
	"context"

	"github.com/spf13/cobra"

	"quati.dev/quati/internal/actions"
	"quati.dev/quati/internal/cli/common"
	"quati.dev/quati/internal/runtime"
)

// newStartCmd creates the start command
func newStartCmd() *cobra.Command {
	var opts actions.StartOptions

	cmd := &cobra.Command{
		Use:   "start [branch]",
		Short: "Start a new branch locally and remotely",
		Long: `Check out a prefixed branch, creating it if needed, and push it to origin.

If no branch name is specified, the current branch name is used. The prefix
defaults to "wip/" and can be changed with the QUATI_PREFIX environment
variable or the "prefix" key in .quati.yaml at the repository root.

A failed push is reported but does not fail the command.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.BranchName = args[0]
			}
			return common.Run(cmd, func(ctx context.Context, rt *runtime.Context) error {
				_, err := actions.StartAction(ctx, rt, opts)
				return err
			})
		},
	}

	cmd.Flags().BoolVarP(&opts.SkipHooks, "no-verify", "N", false, "Skip git hooks when pushing")
	cmd.Flags().BoolVarP(&opts.RemovePrefix, "no-prefix", "P", false, "Do not prepend the branch prefix")
	cmd.Flags().BoolVarP(&opts.NoPush, "no-push", "S", false, "Do not push the branch")

	return cmd
}
