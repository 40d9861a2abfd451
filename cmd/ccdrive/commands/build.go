package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/ccdrive/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Run every build step of the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noCache, _ := cmd.Flags().GetBool("no-cache")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			return c.app.Build(cmd.Context(), app.BuildOptions{
				Paths:   paths(cmd),
				NoCache: noCache,
				DryRun:  dryRun,
				Out:     cmd.OutOrStdout(),
			})
		},
	}
	cmd.Flags().BoolP("no-cache", "n", false, "Recompile every object even when its record matches")
	cmd.Flags().Bool("dry-run", false, "Print the commands without running them")
	return cmd
}
