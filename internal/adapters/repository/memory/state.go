package memory

import (
	"slices"

	"github.com/trebuchet-org/coffer/internal/domain/models"
)

// collection keeps entities keyed by ID in insertion order. A committed
// collection is never mutated; writers work on a clone.
type collection[T any] struct {
	ids   []string
	items map[string]*T
}

func newCollection[T any](items []T, id func(*T) string) collection[T] {
	c := collection[T]{
		ids:   make([]string, 0, len(items)),
		items: make(map[string]*T, len(items)),
	}
	for i := range items {
		item := items[i]
		c.put(id(&item), &item)
	}
	return c
}

func (c collection[T]) get(id string) (*T, bool) {
	item, ok := c.items[id]
	return item, ok
}

func (c collection[T]) values() []*T {
	out := make([]*T, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.items[id])
	}
	return out
}

func (c *collection[T]) put(id string, item *T) {
	if _, ok := c.items[id]; !ok {
		c.ids = append(c.ids, id)
	}
	c.items[id] = item
}

func (c *collection[T]) remove(id string) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	c.ids = slices.DeleteFunc(c.ids, func(v string) bool { return v == id })
	return true
}

func (c collection[T]) clone() collection[T] {
	items := make(map[string]*T, len(c.items))
	for k, v := range c.items {
		items[k] = v
	}
	return collection[T]{ids: slices.Clone(c.ids), items: items}
}

// state is one immutable version of every collection
type state struct {
	treasuries   collection[models.Treasury]
	proposals    collection[models.Proposal]
	policies     collection[models.Policy]
	transactions collection[models.Transaction]
	users        collection[models.User]
	expenses     collection[models.Expense]
}

func newState(s *models.Snapshot) *state {
	return &state{
		treasuries:   newCollection(s.Treasuries, func(t *models.Treasury) string { return t.ID }),
		proposals:    newCollection(s.Proposals, func(p *models.Proposal) string { return p.ID }),
		policies:     newCollection(s.Policies, func(p *models.Policy) string { return p.ID }),
		transactions: newCollection(s.Transactions, func(tx *models.Transaction) string { return tx.ID }),
		users:        newCollection(s.Users, func(u *models.User) string { return u.ID }),
		expenses:     newCollection(s.Expenses, func(e *models.Expense) string { return e.ID }),
	}
}

func (s *state) clone() *state {
	return &state{
		treasuries:   s.treasuries.clone(),
		proposals:    s.proposals.clone(),
		policies:     s.policies.clone(),
		transactions: s.transactions.clone(),
		users:        s.users.clone(),
		expenses:     s.expenses.clone(),
	}
}

// snapshot returns a deep copy of the state in persisted form
func (s *state) snapshot() *models.Snapshot {
	snap := &models.Snapshot{
		Version:      models.SnapshotVersion,
		Treasuries:   make([]models.Treasury, 0, len(s.treasuries.ids)),
		Proposals:    make([]models.Proposal, 0, len(s.proposals.ids)),
		Policies:     make([]models.Policy, 0, len(s.policies.ids)),
		Transactions: make([]models.Transaction, 0, len(s.transactions.ids)),
		Users:        make([]models.User, 0, len(s.users.ids)),
		Expenses:     make([]models.Expense, 0, len(s.expenses.ids)),
	}
	for _, t := range s.treasuries.values() {
		snap.Treasuries = append(snap.Treasuries, *t.Clone())
	}
	for _, p := range s.proposals.values() {
		snap.Proposals = append(snap.Proposals, *p.Clone())
	}
	for _, p := range s.policies.values() {
		snap.Policies = append(snap.Policies, *p.Clone())
	}
	for _, tx := range s.transactions.values() {
		snap.Transactions = append(snap.Transactions, *tx.Clone())
	}
	for _, u := range s.users.values() {
		snap.Users = append(snap.Users, *u.Clone())
	}
	for _, e := range s.expenses.values() {
		snap.Expenses = append(snap.Expenses, *e.Clone())
	}
	return snap
}
