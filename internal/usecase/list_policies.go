package usecase

import (
	"context"
	"strings"

	"github.com/trebuchet-org/coffer/internal/domain"
	"github.com/trebuchet-org/coffer/internal/domain/models"
)

// ListPoliciesParams contains parameters for listing policies
type ListPoliciesParams struct {
	TreasuryRef string
	Type        string
	EnabledOnly bool
}

// PolicyListResult contains policies and the names of their treasuries
type PolicyListResult struct {
	Policies      []*models.Policy
	TreasuryNames map[string]string
	Enabled       int
}

// ListPolicies is the use case for listing policies
type ListPolicies struct {
	resolver   *ResolveEntity
	policies   PolicyRepository
	treasuries TreasuryRepository
}

// NewListPolicies creates a new ListPolicies use case
func NewListPolicies(resolver *ResolveEntity, policies PolicyRepository, treasuries TreasuryRepository) *ListPolicies {
	return &ListPolicies{resolver: resolver, policies: policies, treasuries: treasuries}
}

// Run lists matching policies in creation order
func (uc *ListPolicies) Run(ctx context.Context, params ListPoliciesParams) (*PolicyListResult, error) {
	filter := PolicyFilter{EnabledOnly: params.EnabledOnly}

	if params.Type != "" {
		t := models.PolicyType(strings.ToLower(strings.TrimSpace(params.Type)))
		if !t.IsValid() {
			return nil, domain.NewValidationError("type", "must be one of: spending_limit, whitelist, blacklist, category_limit")
		}
		filter.Type = t
	}

	if params.TreasuryRef != "" {
		treasury, err := uc.resolver.ResolveTreasury(ctx, params.TreasuryRef)
		if err != nil {
			return nil, err
		}
		filter.TreasuryID = treasury.ID
	}

	policies, err := uc.policies.ListPolicies(ctx, filter)
	if err != nil {
		return nil, err
	}

	treasuries, err := uc.treasuries.ListTreasuries(ctx)
	if err != nil {
		return nil, err
	}

	result := &PolicyListResult{
		Policies:      policies,
		TreasuryNames: make(map[string]string, len(treasuries)),
	}
	for _, t := range treasuries {
		result.TreasuryNames[t.ID] = t.Name
	}
	for _, p := range policies {
		if p.Enabled {
			result.Enabled++
		}
	}
	return result, nil
}
