package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/coffer/internal/cli/render"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

// NewTxCmd creates the transaction ledger command
func NewTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transactions"},
		Short:   "Inspect the transaction ledger",
	}

	var params usecase.ListTransactionsParams
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List ledger entries, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListTransactions.Run(cmd.Context(), params)
			if err != nil {
				return err
			}
			return render.NewLedgerRenderer(cmd.OutOrStdout(), app.Config.JSON).RenderTransactions(result)
		},
	}
	list.Flags().StringVarP(&params.TreasuryRef, "treasury", "t", "", "Filter by treasury ID or name")
	list.Flags().StringVar(&params.Type, "type", "", "Filter by type (deposit, withdrawal, transfer)")
	list.Flags().StringVar(&params.Status, "status", "", "Filter by status (pending, completed, failed)")

	cmd.AddCommand(list)
	return cmd
}

// NewMembersCmd creates the members command
func NewMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "members",
		Short: "List DAO members and their roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListMembers.Run(cmd.Context())
			if err != nil {
				return err
			}
			return render.NewLedgerRenderer(cmd.OutOrStdout(), app.Config.JSON).RenderMembers(result)
		},
	}
}

// NewDashboardCmd creates the dashboard command
func NewDashboardCmd() *cobra.Command {
	var treasury string

	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Show balances, open proposals and spending at a glance",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.GetDashboard.Run(cmd.Context(), usecase.DashboardParams{
				TreasuryRef: treasury,
				ActorRef:    app.Config.ActorID,
			})
			if err != nil {
				return err
			}
			return render.NewDashboardRenderer(cmd.OutOrStdout(), app.Config.JSON).Render(result)
		},
	}

	cmd.Flags().StringVarP(&treasury, "treasury", "t", "", "Limit figures to one treasury")
	return cmd
}
