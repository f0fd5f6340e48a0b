package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/trebuchet-org/coffer/internal/domain"
	"github.com/trebuchet-org/coffer/internal/domain/models"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

// Store is the in-process source of truth for all entities. It loads the
// persisted snapshot on first use, serves reads from an immutable state
// version and applies writes as copy-on-write transactions: a change is
// built on a private copy, persisted, and only then published.
type Store struct {
	mu      sync.RWMutex
	backend usecase.SnapshotStore
	log     *slog.Logger
	state   *state
}

// NewStore creates a store backed by the given snapshot store
func NewStore(backend usecase.SnapshotStore, log *slog.Logger) *Store {
	return &Store{backend: backend, log: log}
}

// current returns the committed state, loading it on first use
func (s *Store) current(ctx context.Context) (*state, error) {
	s.mu.RLock()
	st := s.state
	s.mu.RUnlock()
	if st != nil {
		return st, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *Store) loadLocked(ctx context.Context) (*state, error) {
	if s.state != nil {
		return s.state, nil
	}

	snap, err := s.backend.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("invalid data in %s: %w", s.backend.Location(), err)
	}

	s.state = newState(snap)
	s.log.Debug("store loaded",
		"location", s.backend.Location(),
		"treasuries", len(snap.Treasuries),
		"proposals", len(snap.Proposals),
	)
	return s.state, nil
}

// Atomic runs fn against a private copy of the state. The copy is persisted
// and published only when fn returns nil and the context is still live; on
// any failure the committed state is left exactly as it was.
func (s *Store) Atomic(ctx context.Context, fn func(tx usecase.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	base, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}

	tx := &stagedTx{next: base.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	if !tx.dirty {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.backend.Save(ctx, tx.next.snapshot()); err != nil {
		s.log.Debug("change discarded", "error", err)
		return fmt.Errorf("failed to persist changes: %w", err)
	}

	s.state = tx.next
	return nil
}

// Replace validates and persists snapshot, then makes it the current state.
// The store takes ownership of snapshot.
func (s *Store) Replace(ctx context.Context, snapshot *models.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := newState(snapshot)
	if err := s.backend.Save(ctx, next.snapshot()); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}
	s.state = next
	return nil
}

// Export returns a deep copy of the current state
func (s *Store) Export(ctx context.Context) (*models.Snapshot, error) {
	st, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return st.snapshot(), nil
}

// GetTreasury returns a copy of the treasury with the given ID
func (s *Store) GetTreasury(ctx context.Context, id string) (*models.Treasury, error) {
	st, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	t, ok := st.treasuries.get(id)
	if !ok {
		return nil, fmt.Errorf("treasury %s: %w", id, domain.ErrNotFound)
	}
	return t.Clone(), nil
}

// ListTreasuries returns copies of all treasuries in creation order
func (s *Store) ListTreasuries(ctx context.Context) ([]*models.Treasury, error) {
	st, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Treasury, 0, len(st.treasuries.ids))
	for _, t := range st.treasuries.values() {
		out = append(out, t.Clone())
	}
	return out, nil
}

// GetProposal returns a copy of the proposal with the given ID
func (s *Store) GetProposal(ctx context.Context, id string) (*models.Proposal, error) {
	st, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := st.proposals.get(id)
	if !ok {
		return nil, fmt.Errorf("proposal %s: %w", id, domain.ErrNotFound)
	}
	return p.Clone(), nil
}

// ListProposals returns copies of the proposals matching filter
func (s *Store) ListProposals(ctx context.Context, filter usecase.ProposalFilter) ([]*models.Proposal, error) {
	st, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	var out []*models.Proposal
	for _, p := range st.proposals.values() {
		if filter.Matches(p) {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

// GetPolicy returns a copy of the policy with the given ID
func (s *Store) GetPolicy(ctx context.Context, id string) (*models.Policy, error) {
	st, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := st.policies.get(id)
	if !ok {
		return nil, fmt.Errorf("policy %s: %w", id, domain.ErrNotFound)
	}
	return p.Clone(), nil
}

// ListPolicies returns copies of the policies matching filter
func (s *Store) ListPolicies(ctx context.Context, filter usecase.PolicyFilter) ([]*models.Policy, error) {
	st, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	var out []*models.Policy
	for _, p := range st.policies.values() {
		if filter.Matches(p) {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

// ListTransactions returns copies of the ledger entries matching filter
func (s *Store) ListTransactions(ctx context.Context, filter usecase.TransactionFilter) ([]*models.Transaction, error) {
	st, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	var out []*models.Transaction
	for _, tx := range st.transactions.values() {
		if filter.Matches(tx) {
			out = append(out, tx.Clone())
		}
	}
	return out, nil
}

// GetUser returns a copy of the member with the given ID
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	st, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	u, ok := st.users.get(id)
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return u.Clone(), nil
}

// ListUsers returns copies of all members in seed order
func (s *Store) ListUsers(ctx context.Context) ([]*models.User, error) {
	st, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*models.User, 0, len(st.users.ids))
	for _, u := range st.users.values() {
		out = append(out, u.Clone())
	}
	return out, nil
}

// ListExpenses returns copies of all expenses in insertion order
func (s *Store) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	st, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*models.Expense, 0, len(st.expenses.ids))
	for _, e := range st.expenses.values() {
		out = append(out, e.Clone())
	}
	return out, nil
}

// stagedTx is the usecase.Tx handed to Atomic callbacks
type stagedTx struct {
	next  *state
	dirty bool
}

func (tx *stagedTx) Treasury(id string) (*models.Treasury, error) {
	t, ok := tx.next.treasuries.get(id)
	if !ok {
		return nil, fmt.Errorf("treasury %s: %w", id, domain.ErrNotFound)
	}
	return t.Clone(), nil
}

func (tx *stagedTx) Treasuries() []*models.Treasury {
	out := make([]*models.Treasury, 0, len(tx.next.treasuries.ids))
	for _, t := range tx.next.treasuries.values() {
		out = append(out, t.Clone())
	}
	return out
}

func (tx *stagedTx) Proposal(id string) (*models.Proposal, error) {
	p, ok := tx.next.proposals.get(id)
	if !ok {
		return nil, fmt.Errorf("proposal %s: %w", id, domain.ErrNotFound)
	}
	return p.Clone(), nil
}

func (tx *stagedTx) Policy(id string) (*models.Policy, error) {
	p, ok := tx.next.policies.get(id)
	if !ok {
		return nil, fmt.Errorf("policy %s: %w", id, domain.ErrNotFound)
	}
	return p.Clone(), nil
}

func (tx *stagedTx) User(id string) (*models.User, error) {
	u, ok := tx.next.users.get(id)
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return u.Clone(), nil
}

func (tx *stagedTx) SaveTreasury(t *models.Treasury) {
	tx.next.treasuries.put(t.ID, t.Clone())
	tx.dirty = true
}

func (tx *stagedTx) SaveProposal(p *models.Proposal) {
	tx.next.proposals.put(p.ID, p.Clone())
	tx.dirty = true
}

func (tx *stagedTx) SavePolicy(p *models.Policy) {
	tx.next.policies.put(p.ID, p.Clone())
	tx.dirty = true
}

func (tx *stagedTx) AppendTransaction(t *models.Transaction) {
	tx.next.transactions.put(t.ID, t.Clone())
	tx.dirty = true
}

func (tx *stagedTx) SaveExpense(e *models.Expense) {
	tx.next.expenses.put(e.ID, e.Clone())
	tx.dirty = true
}

func (tx *stagedTx) DeleteExpense(id string) error {
	if !tx.next.expenses.remove(id) {
		return fmt.Errorf("expense %s: %w", id, domain.ErrNotFound)
	}
	tx.dirty = true
	return nil
}

// Ensure the store implements the ports
var (
	_ usecase.UnitOfWork            = (*Store)(nil)
	_ usecase.StateStore            = (*Store)(nil)
	_ usecase.TreasuryRepository    = (*Store)(nil)
	_ usecase.ProposalRepository    = (*Store)(nil)
	_ usecase.PolicyRepository      = (*Store)(nil)
	_ usecase.TransactionRepository = (*Store)(nil)
	_ usecase.UserRepository        = (*Store)(nil)
	_ usecase.ExpenseRepository     = (*Store)(nil)
	_ usecase.Tx                    = (*stagedTx)(nil)
)
