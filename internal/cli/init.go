package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/coffer/internal/cli/render"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	var params usecase.InitProjectParams

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize coffer in the current directory",
		Long: `Create coffer.toml and the .coffer data directory, then seed the data
store with demo treasuries, proposals, policies and members. Use --seed to
load your own YAML file instead. Existing data is kept unless --force is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.SeedPath, "seed", "", "YAML seed file (default: built-in demo data)")
	cmd.Flags().BoolVar(&params.Force, "force", false, "Overwrite coffer.toml and reseed existing data")

	return cmd
}

// runInit executes the init command
func runInit(cmd *cobra.Command, params usecase.InitProjectParams) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	result, err := app.InitProject.Run(cmd.Context(), params)
	if err != nil {
		// Still render partial results even on error
		if result != nil && !app.Config.JSON {
			_ = render.NewInitRenderer(cmd.OutOrStdout()).Render(result)
		}
		return err
	}

	if app.Config.JSON {
		return render.RenderJSON(cmd.OutOrStdout(), result)
	}
	return render.NewInitRenderer(cmd.OutOrStdout()).Render(result)
}
