package app

import (
	"log/slog"

	"github.com/trebuchet-org/coffer/internal/domain/config"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Logger *slog.Logger

	// Treasury registry
	CreateTreasury *usecase.CreateTreasury
	ListTreasuries *usecase.ListTreasuries
	ShowTreasury   *usecase.ShowTreasury
	TogglePause    *usecase.TogglePause
	EmergencyPause *usecase.EmergencyPause

	// Voting engine
	CreateProposal  *usecase.CreateProposal
	ListProposals   *usecase.ListProposals
	ShowProposal    *usecase.ShowProposal
	CastVote        *usecase.CastVote
	ExecuteProposal *usecase.ExecuteProposal

	// Policies
	CreatePolicy *usecase.CreatePolicy
	ListPolicies *usecase.ListPolicies
	TogglePolicy *usecase.TogglePolicy

	// Views
	ListTransactions *usecase.ListTransactions
	ListMembers      *usecase.ListMembers
	GetDashboard     *usecase.GetDashboard

	// Expense ledger
	AddExpense    *usecase.AddExpense
	DeleteExpense *usecase.DeleteExpense
	ListExpenses  *usecase.ListExpenses

	// Project
	InitProject *usecase.InitProject
	ShowConfig  *usecase.ShowConfig
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	logger *slog.Logger,
	createTreasury *usecase.CreateTreasury,
	listTreasuries *usecase.ListTreasuries,
	showTreasury *usecase.ShowTreasury,
	togglePause *usecase.TogglePause,
	emergencyPause *usecase.EmergencyPause,
	createProposal *usecase.CreateProposal,
	listProposals *usecase.ListProposals,
	showProposal *usecase.ShowProposal,
	castVote *usecase.CastVote,
	executeProposal *usecase.ExecuteProposal,
	createPolicy *usecase.CreatePolicy,
	listPolicies *usecase.ListPolicies,
	togglePolicy *usecase.TogglePolicy,
	listTransactions *usecase.ListTransactions,
	listMembers *usecase.ListMembers,
	getDashboard *usecase.GetDashboard,
	addExpense *usecase.AddExpense,
	deleteExpense *usecase.DeleteExpense,
	listExpenses *usecase.ListExpenses,
	initProject *usecase.InitProject,
	showConfig *usecase.ShowConfig,
) *App {
	return &App{
		Config:           cfg,
		Logger:           logger,
		CreateTreasury:   createTreasury,
		ListTreasuries:   listTreasuries,
		ShowTreasury:     showTreasury,
		TogglePause:      togglePause,
		EmergencyPause:   emergencyPause,
		CreateProposal:   createProposal,
		ListProposals:    listProposals,
		ShowProposal:     showProposal,
		CastVote:         castVote,
		ExecuteProposal:  executeProposal,
		CreatePolicy:     createPolicy,
		ListPolicies:     listPolicies,
		TogglePolicy:     togglePolicy,
		ListTransactions: listTransactions,
		ListMembers:      listMembers,
		GetDashboard:     getDashboard,
		AddExpense:       addExpense,
		DeleteExpense:    deleteExpense,
		ListExpenses:     listExpenses,
		InitProject:      initProject,
		ShowConfig:       showConfig,
	}
}
