// Package commands implements the CLI commands for prerender.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/prerender/internal/app"
	"go.trai.ch/prerender/internal/build"
)

// CLI represents the command line interface for prerender.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, outputDir string, opts app.RunOptions) error
	Clean(ctx context.Context, outputDir string, opts app.CleanOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:   "prerender [output-dir]",
		Short: "Render XML pages to HTML with a cached XSLT stylesheet",
		Long: `Compiles the XSLT stylesheet in the output directory (reusing the cached
compilation while the stylesheet sources are unchanged) and transforms every
<dir>/index.xml below it into <dir>/index.html concurrently.

The output directory defaults to the current working directory.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE:          c.runRoot,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	// -v belongs to --verbose, so --version is registered without a shorthand.
	rootCmd.Flags().Bool("version", false, "Print the application version")
	rootCmd.InitDefaultVersionFlag()

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a prerender.yaml config file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("json", false, "Emit logs as JSON")

	rootCmd.Flags().BoolP("force", "f", false, "Recompile the stylesheet even when the cache is current")
	rootCmd.Flags().IntP("jobs", "j", 0, "Maximum concurrent transforms (0 = unlimited)")
	rootCmd.Flags().Bool("skip-unchanged", false, "Leave output files with identical content untouched")

	c.rootCmd = rootCmd
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) runRoot(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	force, _ := cmd.Flags().GetBool("force")
	skipUnchanged, _ := cmd.Flags().GetBool("skip-unchanged")

	opts := app.RunOptions{
		ConfigPath:    configPath,
		Force:         force,
		SkipUnchanged: skipUnchanged,
		Verbose:       verbose,
		JSON:          jsonLogs,
	}

	// Only an explicit --jobs overrides the config file.
	if cmd.Flags().Changed("jobs") {
		jobs, _ := cmd.Flags().GetInt("jobs")
		opts.Jobs = &jobs
	}

	return c.app.Run(cmd.Context(), outputDirArg(args), opts)
}

func outputDirArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
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
