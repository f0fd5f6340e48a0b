package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/coffer/internal/cli/render"
)

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration and data location",
		Long: `Show configuration after merging coffer.toml, .env files, COFFER_*
environment variables and flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowConfig.Run(cmd.Context())
			if err != nil {
				return err
			}
			return render.NewConfigRenderer(cmd.OutOrStdout(), app.Config.JSON).RenderConfig(result)
		},
	}

	cmd.AddCommand(show)
	return cmd
}
