package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/coffer/internal/cli/render"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

// NewProposalCmd creates the proposal command group
func NewProposalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "proposal",
		Aliases: []string{"proposals", "p"},
		Short:   "Create, vote on and execute spending proposals",
	}

	cmd.AddCommand(
		newProposalCreateCmd(),
		newProposalListCmd(),
		newProposalShowCmd(),
		newProposalVoteCmd(),
		newProposalExecuteCmd(),
	)
	return cmd
}

func newProposalCreateCmd() *cobra.Command {
	var params usecase.CreateProposalParams

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Propose a payment from a treasury",
		Long: `Create a pending spending proposal. The number of approvals it needs is
fixed to the treasury threshold at creation time. The proposal cannot be
voted on or executed until its time-lock has elapsed.`,
		Example: `  coffer proposal create --treasury Ops --title "Security audit" \
    --description "Q3 audit of the vault contracts" --amount 25000 \
    --recipient 0xAuditor.. --category Security --lock-days 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params.ActorRef = app.Config.ActorID
			result, err := app.CreateProposal.Run(cmd.Context(), params)
			if err != nil {
				return err
			}
			return render.NewProposalRenderer(cmd.OutOrStdout(), app.Config.JSON).RenderCreated(result)
		},
	}

	cmd.Flags().StringVarP(&params.TreasuryRef, "treasury", "t", "", "Treasury ID or name")
	cmd.Flags().StringVar(&params.Title, "title", "", "Proposal title")
	cmd.Flags().StringVar(&params.Description, "description", "", "What the payment is for")
	cmd.Flags().StringVar(&params.Amount, "amount", "", "Amount to pay, e.g. 2500 or 1,250.50")
	cmd.Flags().StringVar(&params.Recipient, "recipient", "", "Recipient address")
	cmd.Flags().StringVar(&params.Category, "category", "", "Spending category")
	cmd.Flags().IntVar(&params.LockDays, "lock-days", 0, "Time-lock in days (default from coffer.toml)")

	return cmd
}

func newProposalListCmd() *cobra.Command {
	var params usecase.ListProposalsParams

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List proposals, newest first",
		Example: `  # Pending proposals of one treasury
  coffer proposal list --status pending --treasury Ops`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListProposals.Run(cmd.Context(), params)
			if err != nil {
				return err
			}
			return render.NewProposalRenderer(cmd.OutOrStdout(), app.Config.JSON).RenderList(result)
		},
	}

	cmd.Flags().StringVarP(&params.TreasuryRef, "treasury", "t", "", "Filter by treasury ID or name")
	cmd.Flags().StringVar(&params.Status, "status", "", "Filter by status (pending, approved, rejected, executed, expired)")
	cmd.Flags().StringVar(&params.Category, "category", "", "Filter by category")

	return cmd
}

func newProposalShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [proposal]",
		Short: "Show a proposal with its votes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowProposal.Run(cmd.Context(), usecase.ShowProposalParams{ProposalRef: argOrEmpty(args)})
			if err != nil {
				return err
			}
			return render.NewProposalRenderer(cmd.OutOrStdout(), app.Config.JSON).RenderDetail(result)
		},
	}
}

func newProposalVoteCmd() *cobra.Command {
	var approve, reject bool

	cmd := &cobra.Command{
		Use:   "vote [proposal] --approve|--reject",
		Short: "Approve or reject a pending proposal",
		Long: `Record a vote by the acting member (--as, COFFER_AS or actor.user_id in
coffer.toml). The proposal becomes approved once the number of approvals
reaches the threshold captured when it was created. Rejections are recorded
but never move the proposal out of pending.`,
		Example: `  coffer proposal vote 3f2a --approve --as bob`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if approve == reject {
				return fmt.Errorf("exactly one of --approve or --reject is required")
			}

			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.CastVote.Run(cmd.Context(), usecase.CastVoteParams{
				ProposalRef: argOrEmpty(args),
				Approved:    approve,
				VoterRef:    app.Config.ActorID,
			})
			if err != nil {
				return err
			}
			return render.NewProposalRenderer(cmd.OutOrStdout(), app.Config.JSON).RenderVote(result)
		},
	}

	cmd.Flags().BoolVar(&approve, "approve", false, "Vote to approve")
	cmd.Flags().BoolVar(&reject, "reject", false, "Vote to reject")
	cmd.MarkFlagsMutuallyExclusive("approve", "reject")

	return cmd
}

func newProposalExecuteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "execute [proposal]",
		Short: "Pay out an approved proposal",
		Long: `Execute an approved proposal once its time-lock has elapsed: the
treasury is debited and a completed withdrawal is added to the ledger.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ExecuteProposal.Run(cmd.Context(), usecase.ExecuteProposalParams{ProposalRef: argOrEmpty(args)})
			if err != nil {
				return err
			}
			return render.NewProposalRenderer(cmd.OutOrStdout(), app.Config.JSON).RenderExecuted(result)
		},
	}
}
