package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/coffer/internal/cli/render"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

// NewExpenseCmd creates the personal expense ledger commands
func NewExpenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expense",
		Aliases: []string{"expenses"},
		Short:   "Track personal expenses alongside the treasuries",
	}

	cmd.AddCommand(
		newExpenseAddCmd(),
		newExpenseRemoveCmd(),
		newExpenseListCmd(false),
		newExpenseListCmd(true),
	)
	return cmd
}

func newExpenseAddCmd() *cobra.Command {
	var params usecase.AddExpenseParams

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Record an expense",
		Example: `  coffer expense add --amount 12.50 --category Food --description Lunch --date 2024-03-01`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			expense, err := app.AddExpense.Run(cmd.Context(), params)
			if err != nil {
				return err
			}
			return render.NewExpenseRenderer(cmd.OutOrStdout(), app.Config.JSON).RenderAdded(expense)
		},
	}

	cmd.Flags().StringVar(&params.Amount, "amount", "", "Amount spent")
	cmd.Flags().StringVar(&params.Category, "category", "", "Expense category")
	cmd.Flags().StringVar(&params.Description, "description", "", "What it was for")
	cmd.Flags().StringVar(&params.Date, "date", "", "Date as YYYY-MM-DD (default today)")

	return cmd
}

func newExpenseRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete an expense",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := requireArg(args, "expense id")
			if err != nil {
				return err
			}

			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if err := app.DeleteExpense.Run(cmd.Context(), id); err != nil {
				return err
			}
			return render.NewExpenseRenderer(cmd.OutOrStdout(), app.Config.JSON).RenderDeleted(id)
		},
	}
}

func newExpenseListCmd(summary bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List expenses, newest first",
		Args:    cobra.NoArgs,
	}
	if summary {
		cmd.Use = "summary"
		cmd.Aliases = nil
		cmd.Short = "Show expense totals per category"
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		app, err := getApp(cmd)
		if err != nil {
			return err
		}

		result, err := app.ListExpenses.Run(cmd.Context())
		if err != nil {
			return err
		}
		renderer := render.NewExpenseRenderer(cmd.OutOrStdout(), app.Config.JSON)
		if summary {
			return renderer.RenderSummary(result)
		}
		return renderer.RenderList(result)
	}
	return cmd
}
