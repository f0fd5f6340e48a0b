//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/coffer/internal/adapters"
	"github.com/trebuchet-org/coffer/internal/config"
	"github.com/trebuchet-org/coffer/internal/logging"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewResolveEntity,
		usecase.NewCreateTreasury,
		usecase.NewListTreasuries,
		usecase.NewShowTreasury,
		usecase.NewTogglePause,
		usecase.NewEmergencyPause,
		usecase.NewCreateProposal,
		usecase.NewListProposals,
		usecase.NewShowProposal,
		usecase.NewCastVote,
		usecase.NewExecuteProposal,
		usecase.NewCreatePolicy,
		usecase.NewListPolicies,
		usecase.NewTogglePolicy,
		usecase.NewListTransactions,
		usecase.NewListMembers,
		usecase.NewGetDashboard,
		usecase.NewAddExpense,
		usecase.NewDeleteExpense,
		usecase.NewListExpenses,
		usecase.NewInitProject,
		usecase.NewShowConfig,

		// App
		NewApp,
	)
	return nil, nil
}
