// Package commands implements the CLI commands for the ccdrive build driver.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/ccdrive/internal/app"
	"go.trai.ch/ccdrive/internal/build"
)

// CLI represents the command line interface for ccdrive.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	ConfigureLogging(opts app.LogOptions)
	Build(ctx context.Context, opts app.BuildOptions) error
	Compile(ctx context.Context, opts app.CompileOptions) error
	Link(ctx context.Context, opts app.LinkOptions) error
	CacheShow(w io.Writer, paths app.Paths) error
	CacheClean(ctx context.Context, paths app.Paths) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "ccdrive",
		Short:         "A compile and link driver for mixed C, C++ and Fortran builds",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.String("toolchain", "toolchain.yaml", "Path to the toolchain properties file")
	flags.String("manifest", "ccdrive.yaml", "Path to the build manifest")
	flags.String("cache-tag", "", "Override the runtime tag of the library cache files")
	flags.Bool("log-json", false, "Emit logs as JSON")
	flags.String("color", "auto", "Colorize output: auto, always, or never")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		logJSON, _ := cmd.Flags().GetBool("log-json")
		color, _ := cmd.Flags().GetString("color")
		c.app.ConfigureLogging(app.LogOptions{JSON: logJSON, Color: color})
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newCompileCmd())
	rootCmd.AddCommand(c.newLinkCmd())
	rootCmd.AddCommand(c.newCacheCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func paths(cmd *cobra.Command) app.Paths {
	toolchain, _ := cmd.Flags().GetString("toolchain")
	manifest, _ := cmd.Flags().GetString("manifest")
	tag, _ := cmd.Flags().GetString("cache-tag")
	return app.Paths{Toolchain: toolchain, Manifest: manifest, CacheTag: tag}
}
