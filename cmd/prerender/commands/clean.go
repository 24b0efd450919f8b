package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/prerender/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean [output-dir]",
		Short: "Remove the stylesheet cache and leftover working files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			verbose, _ := cmd.Flags().GetBool("verbose")
			jsonLogs, _ := cmd.Flags().GetBool("json")

			return c.app.Clean(cmd.Context(), outputDirArg(args), app.CleanOptions{
				ConfigPath: configPath,
				Verbose:    verbose,
				JSON:       jsonLogs,
			})
		},
	}
}
