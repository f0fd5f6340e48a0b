package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/coffer/internal/adapters/repository/memory"
	"github.com/trebuchet-org/coffer/internal/adapters/signer"
	"github.com/trebuchet-org/coffer/internal/domain"
	"github.com/trebuchet-org/coffer/internal/domain/config"
	"github.com/trebuchet-org/coffer/internal/domain/models"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("new-%d", g.n)
}

// snapshotStub is an in-memory SnapshotStore
type snapshotStub struct {
	mu      sync.Mutex
	snap    *models.Snapshot
	saves   int
	saveErr error
}

func (s *snapshotStub) Load(ctx context.Context) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		return nil, domain.ErrNotInitialized
	}
	return s.snap, nil
}

func (s *snapshotStub) Save(ctx context.Context, snapshot *models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.snap = snapshot
	s.saves++
	return nil
}

func (s *snapshotStub) Exists(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap != nil, nil
}

func (s *snapshotStub) Location() string { return "stub" }

// recordingSink collects progress stages
type recordingSink struct {
	mu     sync.Mutex
	stages []string
}

func (r *recordingSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages = append(r.stages, event.Stage)
}
func (r *recordingSink) Info(string)  {}
func (r *recordingSink) Error(string) {}

type mockSelector struct {
	mock.Mock
}

func (m *mockSelector) SelectTreasury(ctx context.Context, treasuries []*models.Treasury, prompt string) (*models.Treasury, error) {
	args := m.Called(ctx, treasuries, prompt)
	t, _ := args.Get(0).(*models.Treasury)
	return t, args.Error(1)
}

func (m *mockSelector) SelectProposal(ctx context.Context, proposals []*models.Proposal, prompt string) (*models.Proposal, error) {
	args := m.Called(ctx, proposals, prompt)
	p, _ := args.Get(0).(*models.Proposal)
	return p, args.Error(1)
}

// fixture builds a small but complete state:
//
//	t1 Ops     2-of-3, balance 1000
//	t2 Grants  1-of-1, balance 500
//	p-open     pending on t1, lock elapsed, no votes
//	p-locked   pending on t1, locked for another day
//	p-ready    approved on t1, lock elapsed, amount 300
//	p-paid     executed on t2, amount 200
func fixture() *models.Snapshot {
	gas := decimal.RequireFromString("0.002")
	paidAt := now.Add(-48 * time.Hour)
	return &models.Snapshot{
		Version: models.SnapshotVersion,
		Users: []models.User{
			{ID: "u1", Name: "Alice", Address: "0xa1", Role: models.UserRoleManager},
			{ID: "u2", Name: "Bob", Address: "0xb2", Role: models.UserRoleVoter},
			{ID: "u3", Name: "Carol", Address: "0xc3", Role: models.UserRoleCreator},
		},
		Treasuries: []models.Treasury{
			{ID: "t1", Name: "Ops", Description: "Operations", Balance: decimal.NewFromInt(1000), Threshold: 2, Signers: []string{"0xa1", "0xb2", "0xc3"}, CreatedAt: now.AddDate(0, 0, -30)},
			{ID: "t2", Name: "Grants", Description: "Grants", Balance: decimal.NewFromInt(500), Threshold: 1, Signers: []string{"0xa1"}, CreatedAt: now.AddDate(0, 0, -30)},
		},
		Proposals: []models.Proposal{
			{
				ID: "p-open", TreasuryID: "t1", Title: "Audit", Description: "Audit", Amount: decimal.NewFromInt(100),
				Recipient: "0xaudit", Category: "Security", Status: models.ProposalStatusPending, CreatedBy: "u3",
				CreatedAt: now.Add(-72 * time.Hour), LockUntil: now.Add(-time.Hour), RequiredVotes: 2, Votes: []models.Vote{},
			},
			{
				ID: "p-locked", TreasuryID: "t1", Title: "Offsite", Description: "Team offsite", Amount: decimal.NewFromInt(50),
				Recipient: "0xhotel", Category: "Events", Status: models.ProposalStatusPending, CreatedBy: "u3",
				CreatedAt: now.Add(-time.Hour), LockUntil: now.Add(24 * time.Hour), RequiredVotes: 2, Votes: []models.Vote{},
			},
			{
				ID: "p-ready", TreasuryID: "t1", Title: "Servers", Description: "Hosting", Amount: decimal.NewFromInt(300),
				Recipient: "0xhost", Category: "Infrastructure", Status: models.ProposalStatusApproved, CreatedBy: "u1",
				CreatedAt: now.Add(-96 * time.Hour), LockUntil: now.Add(-2 * time.Hour), RequiredVotes: 2,
				Votes: []models.Vote{
					{UserID: "u1", UserName: "Alice", Approved: true, Timestamp: now.Add(-3 * time.Hour)},
					{UserID: "u2", UserName: "Bob", Approved: true, Timestamp: now.Add(-3 * time.Hour)},
				},
			},
			{
				ID: "p-paid", TreasuryID: "t2", Title: "Grant", Description: "Grant round", Amount: decimal.NewFromInt(200),
				Recipient: "0xgrantee", Category: "Grants", Status: models.ProposalStatusExecuted, CreatedBy: "u1",
				CreatedAt: now.Add(-120 * time.Hour), LockUntil: now.Add(-100 * time.Hour), ExecutedAt: &paidAt, RequiredVotes: 1,
				Votes: []models.Vote{{UserID: "u1", UserName: "Alice", Approved: true, Timestamp: now.Add(-110 * time.Hour)}},
			},
		},
		Policies: []models.Policy{
			{ID: "pol-1", TreasuryID: "t1", Name: "Caps", Type: models.PolicyTypeWhitelist, Enabled: true,
				Config: models.PolicyConfig{Addresses: []string{"0xaudit"}}, CreatedAt: now},
		},
		Transactions: []models.Transaction{
			{ID: "tx-1", TreasuryID: "t1", Type: models.TransactionTypeDeposit, Amount: decimal.NewFromInt(1000), From: "dao", To: "t1",
				Status: models.TransactionStatusCompleted, Timestamp: now.AddDate(0, 0, -10), TxHash: "0x01"},
			{ID: "tx-2", TreasuryID: "t2", ProposalID: "p-paid", Type: models.TransactionTypeWithdrawal, Amount: decimal.NewFromInt(200),
				From: "t2", To: "0xgrantee", Status: models.TransactionStatusCompleted, Timestamp: paidAt, GasUsed: &gas, TxHash: "0x02"},
			{ID: "tx-3", TreasuryID: "t2", Type: models.TransactionTypeDeposit, Amount: decimal.NewFromInt(700), From: "dao", To: "t2",
				Status: models.TransactionStatusCompleted, Timestamp: now.AddDate(0, 0, -5), TxHash: "0x03"},
		},
		Expenses: []models.Expense{},
	}
}

// env wires the use cases against a memory store seeded with fixture()
type env struct {
	cfg      *config.RuntimeConfig
	store    *memory.Store
	backend  *snapshotStub
	clock    *fixedClock
	ids      *seqIDs
	sink     *recordingSink
	selector *mockSelector
	resolver *usecase.ResolveEntity
	log      *slog.Logger
}

func newEnv(t *testing.T) *env {
	t.Helper()

	e := &env{
		cfg: &config.RuntimeConfig{
			NonInteractive:    true,
			Guards:            domain.DefaultGuards(),
			ExpenseCategories: config.DefaultExpenseCategories,
			DefaultLockDays:   3,
		},
		backend:  &snapshotStub{snap: fixture()},
		clock:    &fixedClock{now: now},
		ids:      &seqIDs{},
		sink:     &recordingSink{},
		selector: &mockSelector{},
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	require.NoError(t, e.backend.snap.Validate())

	e.store = memory.NewStore(e.backend, e.log)
	e.resolver = usecase.NewResolveEntity(e.cfg, e.store, e.store, e.store, e.store, e.selector)
	return e
}

func (e *env) castVote() *usecase.CastVote {
	return usecase.NewCastVote(e.cfg, e.resolver, e.store, signer.NewKeccakSigner(), e.clock, e.log)
}

func (e *env) createProposal() *usecase.CreateProposal {
	return usecase.NewCreateProposal(e.cfg, e.resolver, e.store, e.ids, e.clock, e.log)
}

func (e *env) executeProposal() *usecase.ExecuteProposal {
	return usecase.NewExecuteProposal(e.cfg, e.resolver, e.store, e.ids, signer.NewKeccakSigner(), e.clock, e.sink, e.log)
}

func (e *env) proposal(t *testing.T, id string) *models.Proposal {
	t.Helper()
	p, err := e.store.GetProposal(context.Background(), id)
	require.NoError(t, err)
	return p
}

func (e *env) treasury(t *testing.T, id string) *models.Treasury {
	t.Helper()
	tr, err := e.store.GetTreasury(context.Background(), id)
	require.NoError(t, err)
	return tr
}
