package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/coffer/internal/cli/render"
	"github.com/trebuchet-org/coffer/internal/domain/models"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

// policyFlags maps CLI flags to the policy form fields
var policyFlags = []struct {
	flag, field, usage string
}{
	{"daily-limit", models.FormDailyLimit, "Daily spending limit (spending_limit)"},
	{"monthly-limit", models.FormMonthlyLimit, "Monthly spending limit (spending_limit)"},
	{"per-tx-limit", models.FormPerTransactionLimit, "Per transaction limit (spending_limit)"},
	{"addresses", models.FormAddresses, "Comma separated addresses (whitelist, blacklist)"},
	{"categories", models.FormCategories, "Category limits as name=limit,... (category_limit)"},
	{"category", models.FormCategoryName, "Single category name (category_limit)"},
	{"category-limit", models.FormCategoryLimit, "Single category limit (category_limit)"},
}

// NewPolicyCmd creates the policy command group
func NewPolicyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "policy",
		Aliases: []string{"policies"},
		Short:   "Manage treasury spending policies",
	}

	cmd.AddCommand(
		newPolicyCreateCmd(),
		newPolicyListCmd(),
		newPolicyToggleCmd(),
	)
	return cmd
}

func newPolicyCreateCmd() *cobra.Command {
	var (
		treasury   string
		name       string
		policyType string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Attach a spending policy to a treasury",
		Long: `Create an enabled policy. Which rule flags are read depends on --type:

  spending_limit   --daily-limit, --monthly-limit, --per-tx-limit
  whitelist        --addresses
  blacklist        --addresses
  category_limit   --categories, or --category with --category-limit`,
		Example: `  coffer policy create --treasury Ops --name "Daily cap" --type spending_limit \
    --daily-limit 10000 --monthly-limit 100000 --per-tx-limit 5000

  coffer policy create --treasury Ops --name Budgets --type category_limit \
    --categories Marketing=50000,Events=20000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			raw := make(map[string]string)
			for _, pf := range policyFlags {
				if f := cmd.Flags().Lookup(pf.flag); f != nil && f.Changed {
					raw[pf.field] = f.Value.String()
				}
			}

			result, err := app.CreatePolicy.Run(cmd.Context(), usecase.CreatePolicyParams{
				TreasuryRef: treasury,
				Name:        name,
				Type:        policyType,
				Raw:         raw,
			})
			if err != nil {
				return err
			}
			return render.NewPolicyRenderer(cmd.OutOrStdout(), app.Config.JSON).RenderCreated(result)
		},
	}

	cmd.Flags().StringVarP(&treasury, "treasury", "t", "", "Treasury ID or name")
	cmd.Flags().StringVar(&name, "name", "", "Policy name")
	cmd.Flags().StringVar(&policyType, "type", "", "Policy type (spending_limit, whitelist, blacklist, category_limit)")
	for _, pf := range policyFlags {
		cmd.Flags().String(pf.flag, "", pf.usage)
	}

	return cmd
}

func newPolicyListCmd() *cobra.Command {
	var params usecase.ListPoliciesParams

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List policies",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListPolicies.Run(cmd.Context(), params)
			if err != nil {
				return err
			}
			return render.NewPolicyRenderer(cmd.OutOrStdout(), app.Config.JSON).RenderList(result)
		},
	}

	cmd.Flags().StringVarP(&params.TreasuryRef, "treasury", "t", "", "Filter by treasury ID or name")
	cmd.Flags().StringVar(&params.Type, "type", "", "Filter by policy type")
	cmd.Flags().BoolVar(&params.EnabledOnly, "enabled", false, "Only show enabled policies")

	return cmd
}

func newPolicyToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <policy>",
		Short: "Enable or disable a policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.TogglePolicy.Run(cmd.Context(), usecase.TogglePolicyParams{PolicyRef: args[0]})
			if err != nil {
				return err
			}
			return render.NewPolicyRenderer(cmd.OutOrStdout(), app.Config.JSON).RenderToggled(result)
		},
	}
}
