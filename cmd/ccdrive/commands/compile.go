package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/ccdrive/internal/app"
)

func (c *CLI) newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile <source>",
		Short: "Compile one source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			object, _ := cmd.Flags().GetString("output")
			extra, _ := cmd.Flags().GetStringArray("arg")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			return c.app.Compile(cmd.Context(), app.CompileOptions{
				Paths:        paths(cmd),
				Source:       args[0],
				Object:       object,
				CompilerArgs: append([]string{"-c"}, extra...),
				DryRun:       dryRun,
				Out:          cmd.OutOrStdout(),
			})
		},
	}
	cmd.Flags().StringP("output", "o", "", "Object file (defaults to the build temp directory)")
	cmd.Flags().StringArray("arg", nil, "Extra compiler argument, repeatable")
	cmd.Flags().Bool("dry-run", false, "Print the command without running it")
	return cmd
}
