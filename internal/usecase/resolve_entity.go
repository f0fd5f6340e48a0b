package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/trebuchet-org/coffer/internal/domain"
	"github.com/trebuchet-org/coffer/internal/domain/config"
	"github.com/trebuchet-org/coffer/internal/domain/models"
)

// ResolveEntity turns user supplied references into entities. A reference
// is an exact ID, a unique ID prefix, or a case-insensitive name. An empty
// reference falls back to interactive selection when allowed.
type ResolveEntity struct {
	config     *config.RuntimeConfig
	treasuries TreasuryRepository
	proposals  ProposalRepository
	policies   PolicyRepository
	users      UserRepository
	selector   Selector
}

// NewResolveEntity creates a new ResolveEntity use case
func NewResolveEntity(
	cfg *config.RuntimeConfig,
	treasuries TreasuryRepository,
	proposals ProposalRepository,
	policies PolicyRepository,
	users UserRepository,
	selector Selector,
) *ResolveEntity {
	return &ResolveEntity{
		config:     cfg,
		treasuries: treasuries,
		proposals:  proposals,
		policies:   policies,
		users:      users,
		selector:   selector,
	}
}

// ResolveTreasury resolves a treasury by ID, ID prefix or name
func (uc *ResolveEntity) ResolveTreasury(ctx context.Context, ref string) (*models.Treasury, error) {
	all, err := uc.treasuries.ListTreasuries(ctx)
	if err != nil {
		return nil, err
	}

	ref = strings.TrimSpace(ref)
	if ref == "" {
		if len(all) == 1 {
			return all[0], nil
		}
		if !uc.interactive() || len(all) == 0 {
			return nil, domain.NewValidationError("treasury", "is required")
		}
		selected, err := uc.selector.SelectTreasury(ctx, all, "Select a treasury:")
		if err != nil {
			return nil, fmt.Errorf("treasury selection failed: %w", err)
		}
		return selected, nil
	}

	matches := matchRef(all, ref,
		func(t *models.Treasury) string { return t.ID },
		func(t *models.Treasury) string { return t.Name })
	var selectFn func(context.Context, []*models.Treasury, string) (*models.Treasury, error)
	if uc.interactive() {
		selectFn = uc.selector.SelectTreasury
	}
	return pickOne(ctx, "treasury", ref, matches, selectFn)
}

// ResolveProposal resolves a proposal by ID, ID prefix or title.
// An empty reference offers the pending proposals for selection.
func (uc *ResolveEntity) ResolveProposal(ctx context.Context, ref string) (*models.Proposal, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		pending, err := uc.proposals.ListProposals(ctx, ProposalFilter{Status: models.ProposalStatusPending})
		if err != nil {
			return nil, err
		}
		if !uc.interactive() || len(pending) == 0 {
			return nil, domain.NewValidationError("proposal", "is required")
		}
		selected, err := uc.selector.SelectProposal(ctx, pending, "Select a proposal:")
		if err != nil {
			return nil, fmt.Errorf("proposal selection failed: %w", err)
		}
		return selected, nil
	}

	all, err := uc.proposals.ListProposals(ctx, ProposalFilter{})
	if err != nil {
		return nil, err
	}
	matches := matchRef(all, ref,
		func(p *models.Proposal) string { return p.ID },
		func(p *models.Proposal) string { return p.Title })
	var selectFn func(context.Context, []*models.Proposal, string) (*models.Proposal, error)
	if uc.interactive() {
		selectFn = uc.selector.SelectProposal
	}
	return pickOne(ctx, "proposal", ref, matches, selectFn)
}

// ResolvePolicy resolves a policy by ID, ID prefix or name
func (uc *ResolveEntity) ResolvePolicy(ctx context.Context, ref string) (*models.Policy, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, domain.NewValidationError("policy", "is required")
	}

	all, err := uc.policies.ListPolicies(ctx, PolicyFilter{})
	if err != nil {
		return nil, err
	}
	matches := matchRef(all, ref,
		func(p *models.Policy) string { return p.ID },
		func(p *models.Policy) string { return p.Name })
	return pickOne[*models.Policy](ctx, "policy", ref, matches, nil)
}

// ResolveActor returns the acting user: ref when given, else the configured
// actor, else the first member.
func (uc *ResolveEntity) ResolveActor(ctx context.Context, ref string) (*models.User, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		ref = uc.config.ActorID
	}

	users, err := uc.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if ref == "" {
		if len(users) == 0 {
			return nil, fmt.Errorf("no members defined: %w", domain.ErrNotFound)
		}
		return users[0], nil
	}

	matches := matchRef(users, ref,
		func(u *models.User) string { return u.ID },
		func(u *models.User) string { return u.Name })
	return pickOne[*models.User](ctx, "user", ref, matches, nil)
}

func (uc *ResolveEntity) interactive() bool {
	return uc.selector != nil && !uc.config.NonInteractive
}

// matchRef returns the exact ID match, else the case-insensitive name
// matches, else the ID prefix matches.
func matchRef[T any](items []T, ref string, id, name func(T) string) []T {
	var byName, byPrefix []T
	for _, item := range items {
		if id(item) == ref {
			return []T{item}
		}
		if strings.EqualFold(name(item), ref) {
			byName = append(byName, item)
		}
		if strings.HasPrefix(id(item), ref) {
			byPrefix = append(byPrefix, item)
		}
	}
	if len(byName) > 0 {
		return byName
	}
	return byPrefix
}

func pickOne[T any](
	ctx context.Context,
	kind, ref string,
	matches []T,
	selectFn func(context.Context, []T, string) (T, error),
) (T, error) {
	var zero T
	switch len(matches) {
	case 0:
		return zero, fmt.Errorf("%s '%s': %w", kind, ref, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	}
	if selectFn == nil {
		return zero, domain.NewValidationError(kind, "'%s' is ambiguous (%d matches)", ref, len(matches))
	}
	selected, err := selectFn(ctx, matches, fmt.Sprintf("Multiple %s entries match '%s'. Select one:", kind, ref))
	if err != nil {
		return zero, fmt.Errorf("%s selection failed: %w", kind, err)
	}
	return selected, nil
}
