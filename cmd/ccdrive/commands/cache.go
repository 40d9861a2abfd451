package commands

import "github.com/spf13/cobra"

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the library and object caches",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the cached library search paths and names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.CacheShow(cmd.OutOrStdout(), paths(cmd))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clean",
		Short: "Remove the library caches and the object records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.CacheClean(cmd.Context(), paths(cmd))
		},
	})

	return cmd
}
