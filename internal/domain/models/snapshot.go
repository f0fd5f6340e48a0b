package models

import (
	"errors"
	"fmt"
)

// SnapshotVersion is the current on-disk format version.
const SnapshotVersion = 1

// Snapshot is the complete persisted state of a project.
type Snapshot struct {
	Version      int           `json:"version"`
	Treasuries   []Treasury    `json:"treasuries"`
	Proposals    []Proposal    `json:"proposals"`
	Policies     []Policy      `json:"policies"`
	Transactions []Transaction `json:"transactions"`
	Users        []User        `json:"users"`
	Expenses     []Expense     `json:"expenses"`
}

// Validate checks every entity plus identity uniqueness and the references
// from proposals, policies and transactions to treasuries.
func (s *Snapshot) Validate() error {
	if s.Version > SnapshotVersion {
		return fmt.Errorf("snapshot version %d is newer than supported version %d", s.Version, SnapshotVersion)
	}

	var errs []error
	treasuries := make(map[string]struct{}, len(s.Treasuries))

	seen := map[string]map[string]struct{}{}
	checkUnique := func(kind, id string) {
		if seen[kind] == nil {
			seen[kind] = map[string]struct{}{}
		}
		if _, ok := seen[kind][id]; ok {
			errs = append(errs, fmt.Errorf("duplicate %s id %q", kind, id))
		}
		seen[kind][id] = struct{}{}
	}
	checkTreasury := func(kind, id, treasuryID string) {
		if _, ok := treasuries[treasuryID]; !ok {
			errs = append(errs, fmt.Errorf("%s %q references unknown treasury %q", kind, id, treasuryID))
		}
	}

	for i := range s.Treasuries {
		t := &s.Treasuries[i]
		checkUnique("treasury", t.ID)
		treasuries[t.ID] = struct{}{}
		if err := t.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for i := range s.Proposals {
		p := &s.Proposals[i]
		checkUnique("proposal", p.ID)
		checkTreasury("proposal", p.ID, p.TreasuryID)
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for i := range s.Policies {
		p := &s.Policies[i]
		checkUnique("policy", p.ID)
		checkTreasury("policy", p.ID, p.TreasuryID)
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for i := range s.Transactions {
		tx := &s.Transactions[i]
		checkUnique("transaction", tx.ID)
		checkTreasury("transaction", tx.ID, tx.TreasuryID)
		if err := tx.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for i := range s.Users {
		checkUnique("user", s.Users[i].ID)
		if err := s.Users[i].Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	for i := range s.Expenses {
		checkUnique("expense", s.Expenses[i].ID)
		if err := s.Expenses[i].Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
