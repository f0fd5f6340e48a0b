package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/trebuchet-org/coffer/internal/domain"
	"github.com/trebuchet-org/coffer/internal/domain/config"
	"github.com/trebuchet-org/coffer/internal/domain/models"
)

// CreatePolicyParams contains the untyped form of a policy request
type CreatePolicyParams struct {
	TreasuryRef string
	Name        string
	Type        string
	// Raw holds the form values keyed as in models.Form* constants
	Raw map[string]string
}

// CreatePolicyResult contains the created policy
type CreatePolicyResult struct {
	Policy   *models.Policy
	Treasury *models.Treasury
}

// CreatePolicy attaches a spending-control rule to a treasury
type CreatePolicy struct {
	config   *config.RuntimeConfig
	resolver *ResolveEntity
	uow      UnitOfWork
	ids      IDGenerator
	clock    Clock
	log      *slog.Logger
}

// NewCreatePolicy creates a new CreatePolicy use case
func NewCreatePolicy(
	cfg *config.RuntimeConfig,
	resolver *ResolveEntity,
	uow UnitOfWork,
	ids IDGenerator,
	clock Clock,
	log *slog.Logger,
) *CreatePolicy {
	return &CreatePolicy{
		config:   cfg,
		resolver: resolver,
		uow:      uow,
		ids:      ids,
		clock:    clock,
		log:      log,
	}
}

// Run parses the raw config for the requested type, validates it and stores
// an enabled policy.
func (uc *CreatePolicy) Run(ctx context.Context, params CreatePolicyParams) (*CreatePolicyResult, error) {
	policyType := models.PolicyType(strings.ToLower(strings.TrimSpace(params.Type)))
	cfg, err := models.ParsePolicyConfig(policyType, params.Raw)
	if err != nil {
		return nil, err
	}

	target, err := uc.resolver.ResolveTreasury(ctx, params.TreasuryRef)
	if err != nil {
		return nil, err
	}

	policy, err := models.NewPolicy(uc.ids.NewID(), models.CreatePolicyInput{
		TreasuryID: target.ID,
		Name:       params.Name,
		Type:       policyType,
		Config:     cfg,
	}, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	result := &CreatePolicyResult{Policy: policy}
	err = uc.uow.Atomic(ctx, func(tx Tx) error {
		treasury, err := tx.Treasury(target.ID)
		if err != nil {
			return err
		}
		if uc.config.Guards.EnforcePause && treasury.IsEmergencyPaused {
			return fmt.Errorf("cannot add policy to %s: %w", treasury.Name, domain.ErrTreasuryPaused)
		}
		tx.SavePolicy(policy)
		result.Treasury = treasury
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Debug("policy created", "policy", policy.ID, "type", policy.Type, "treasury", target.ID)
	return result, nil
}
