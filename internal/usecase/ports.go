package usecase

import (
	"context"
	"time"

	"github.com/trebuchet-org/coffer/internal/domain/models"
)

// TreasuryRepository reads treasuries
type TreasuryRepository interface {
	GetTreasury(ctx context.Context, id string) (*models.Treasury, error)
	ListTreasuries(ctx context.Context) ([]*models.Treasury, error)
}

// ProposalRepository reads proposals
type ProposalRepository interface {
	GetProposal(ctx context.Context, id string) (*models.Proposal, error)
	ListProposals(ctx context.Context, filter ProposalFilter) ([]*models.Proposal, error)
}

// PolicyRepository reads policies
type PolicyRepository interface {
	GetPolicy(ctx context.Context, id string) (*models.Policy, error)
	ListPolicies(ctx context.Context, filter PolicyFilter) ([]*models.Policy, error)
}

// TransactionRepository reads the ledger
type TransactionRepository interface {
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]*models.Transaction, error)
}

// UserRepository reads members
type UserRepository interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// ExpenseRepository reads the expense ledger
type ExpenseRepository interface {
	ListExpenses(ctx context.Context) ([]*models.Expense, error)
}

// Tx is the mutable view handed to a unit of work. Entities returned by a
// Tx are private copies; changes become visible only through the Save
// methods and only once the surrounding Atomic call commits.
type Tx interface {
	Treasury(id string) (*models.Treasury, error)
	Treasuries() []*models.Treasury
	Proposal(id string) (*models.Proposal, error)
	Policy(id string) (*models.Policy, error)
	User(id string) (*models.User, error)

	SaveTreasury(t *models.Treasury)
	SaveProposal(p *models.Proposal)
	SavePolicy(p *models.Policy)
	AppendTransaction(tx *models.Transaction)
	SaveExpense(e *models.Expense)
	DeleteExpense(id string) error
}

// UnitOfWork applies multi-entity changes atomically: either every change
// made through the Tx is committed and persisted, or none is.
type UnitOfWork interface {
	Atomic(ctx context.Context, fn func(tx Tx) error) error
}

// StateStore replaces or exports the whole state at once
type StateStore interface {
	Replace(ctx context.Context, snapshot *models.Snapshot) error
	Export(ctx context.Context) (*models.Snapshot, error)
}

// SnapshotStore persists complete snapshots
type SnapshotStore interface {
	// Load returns domain.ErrNotInitialized when nothing was saved yet
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, snapshot *models.Snapshot) error
	Exists(ctx context.Context) (bool, error)
	Location() string
}

// SeedSource provides initial data for a new project
type SeedSource interface {
	// Load reads the seed at path, or the built-in demo data when path is empty
	Load(ctx context.Context, path string) (*models.Snapshot, error)
}

// ProjectConfigWriter writes the project configuration file
type ProjectConfigWriter interface {
	Exists() bool
	Write(force bool) (string, error)
}

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// IDGenerator supplies identities for new entities
type IDGenerator interface {
	NewID() string
}

// Signer produces the placeholder signatures attached to votes and
// executed transactions.
type Signer interface {
	SignVote(proposalID, voterID string, approved bool, at time.Time) string
	TransactionHash(tx *models.Transaction) string
}

// Selector handles interactive disambiguation when no identifier is given
type Selector interface {
	SelectTreasury(ctx context.Context, treasuries []*models.Treasury, prompt string) (*models.Treasury, error)
	SelectProposal(ctx context.Context, proposals []*models.Proposal, prompt string) (*models.Proposal, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Current int
	Total   int
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
