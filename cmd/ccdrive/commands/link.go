package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/ccdrive/internal/app"
	"go.trai.ch/ccdrive/internal/core/domain"
)

func (c *CLI) newLinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link -o <output> <objects...>",
		Short: "Link objects into an executable, a library or an archive",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kindName, _ := cmd.Flags().GetString("kind")
			kind, err := domain.ParseTargetKind(kindName)
			if err != nil {
				return err
			}

			output, _ := cmd.Flags().GetString("output")
			libs, _ := cmd.Flags().GetStringArray("library")
			dirs, _ := cmd.Flags().GetStringArray("library-dir")
			rdirs, _ := cmd.Flags().GetStringArray("runtime-dir")
			pre, _ := cmd.Flags().GetStringArray("pre-arg")
			post, _ := cmd.Flags().GetStringArray("post-arg")
			narrow, _ := cmd.Flags().GetBool("narrow")
			lang, _ := cmd.Flags().GetString("lang")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			return c.app.Link(cmd.Context(), app.LinkOptions{
				Paths:              paths(cmd),
				Kind:               kind,
				Output:             output,
				Objects:            args,
				Libraries:          libs,
				LibraryDirs:        dirs,
				RuntimeLibraryDirs: rdirs,
				PreArgs:            pre,
				PostArgs:           post,
				Narrow:             narrow,
				Language:           lang,
				DryRun:             dryRun,
				Out:                cmd.OutOrStdout(),
			})
		},
	}
	cmd.Flags().StringP("kind", "k", "exe", "Target kind: exe, shared, static, or generic")
	cmd.Flags().StringP("output", "o", "", "Output file")
	cmd.Flags().StringArrayP("library", "l", nil, "Library to link, repeatable")
	cmd.Flags().StringArrayP("library-dir", "L", nil, "Library search directory, repeatable")
	cmd.Flags().StringArrayP("runtime-dir", "R", nil, "Runtime library directory, repeatable")
	cmd.Flags().StringArray("pre-arg", nil, "Linker argument placed before the objects, repeatable")
	cmd.Flags().StringArray("post-arg", nil, "Linker argument placed last, repeatable; %s is the bundle name on darwin")
	cmd.Flags().Bool("narrow", false, "Search only the configured link directories")
	cmd.Flags().String("lang", "c++", "Target language selecting the linker: c or c++")
	cmd.Flags().Bool("dry-run", false, "Print the commands without running them")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
