package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/coffer/internal/cli/render"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

// NewTreasuryCmd creates the treasury command group
func NewTreasuryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "treasury",
		Aliases: []string{"treasuries", "t"},
		Short:   "Manage multi-signature treasuries",
	}

	cmd.AddCommand(
		newTreasuryCreateCmd(),
		newTreasuryListCmd(),
		newTreasuryShowCmd(),
		newTreasuryPauseCmd(),
	)
	return cmd
}

func newTreasuryCreateCmd() *cobra.Command {
	var (
		name        string
		description string
		threshold   int
		signers     []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a treasury with an M-of-N approval threshold",
		Long: `Create a new treasury. The threshold is the number of approvals a
proposal needs before it can be executed and must not exceed the number of
signers. When --signers is omitted in an interactive terminal, signers are
picked from the member list.`,
		Example: `  # Create a 2-of-3 treasury
  coffer treasury create --name Ops --description "Operations budget" \
    --threshold 2 --signers 0xA1..,0xB2..,0xC3..`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if len(signers) == 0 && !app.Config.NonInteractive && !app.Config.JSON {
				members, err := app.ListMembers.Run(cmd.Context())
				if err != nil {
					return err
				}
				signers, err = SelectSigners(members.Members, "Select treasury signers:")
				if err != nil {
					return err
				}
			}

			result, err := app.CreateTreasury.Run(cmd.Context(), usecase.CreateTreasuryParams{
				Name:        name,
				Description: description,
				Threshold:   threshold,
				Signers:     signers,
			})
			if err != nil {
				return err
			}
			return render.NewTreasuryRenderer(cmd.OutOrStdout(), app.Config.JSON).RenderCreated(result)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Treasury name")
	cmd.Flags().StringVar(&description, "description", "", "Treasury description")
	cmd.Flags().IntVar(&threshold, "threshold", 1, "Approvals required to execute a proposal")
	cmd.Flags().StringSliceVar(&signers, "signers", nil, "Comma separated signer addresses")

	return cmd
}

func newTreasuryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List treasuries with balances",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListTreasuries.Run(cmd.Context())
			if err != nil {
				return err
			}
			return render.NewTreasuryRenderer(cmd.OutOrStdout(), app.Config.JSON).RenderList(result)
		},
	}
}

func newTreasuryShowCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "show [treasury]",
		Short: "Show a treasury with its proposals, policies and balance history",
		Long: `Show a treasury. The reference is an ID, a unique ID prefix or a name;
without one an interactive picker is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowTreasury.Run(cmd.Context(), usecase.ShowTreasuryParams{
				TreasuryRef: argOrEmpty(args),
				HistoryDays: days,
			})
			if err != nil {
				return err
			}
			return render.NewTreasuryRenderer(cmd.OutOrStdout(), app.Config.JSON).RenderDetail(result)
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "Length of the balance history in days")
	return cmd
}

func newTreasuryPauseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pause [treasury]",
		Short: "Toggle the emergency pause of one treasury",
		Long: `Toggle the emergency pause flag. A paused treasury refuses new
proposals, votes, executions and policy changes. Running the command again
resumes it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.TogglePause.Run(cmd.Context(), usecase.TogglePauseParams{TreasuryRef: argOrEmpty(args)})
			if err != nil {
				return err
			}
			return render.NewTreasuryRenderer(cmd.OutOrStdout(), app.Config.JSON).RenderTogglePause(result)
		},
	}
}

// NewEmergencyCmd creates the emergency command group
func NewEmergencyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emergency",
		Short: "Pause or resume every treasury at once",
	}

	run := func(pause bool) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.EmergencyPause.Run(cmd.Context(), usecase.EmergencyPauseParams{Pause: pause})
			if err != nil {
				return err
			}
			return render.NewTreasuryRenderer(cmd.OutOrStdout(), app.Config.JSON).RenderEmergency(result)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "pause",
			Short: "Emergency pause all treasuries",
			Args:  cobra.NoArgs,
			RunE:  run(true),
		},
		&cobra.Command{
			Use:   "resume",
			Short: "Lift the emergency pause on all treasuries",
			Args:  cobra.NoArgs,
			RunE:  run(false),
		},
	)
	return cmd
}

// argOrEmpty returns the first positional argument, if any
func argOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// requireArg returns the first positional argument or a usage error
func requireArg(args []string, what string) (string, error) {
	if len(args) == 0 || args[0] == "" {
		return "", fmt.Errorf("%s is required", what)
	}
	return args[0], nil
}
