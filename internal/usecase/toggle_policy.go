package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/coffer/internal/domain"
	"github.com/trebuchet-org/coffer/internal/domain/config"
	"github.com/trebuchet-org/coffer/internal/domain/models"
)

// TogglePolicyParams contains parameters for toggling a policy
type TogglePolicyParams struct {
	PolicyRef string
}

// TogglePolicyResult contains the policy after the toggle
type TogglePolicyResult struct {
	Policy  *models.Policy
	Enabled bool
}

// TogglePolicy enables or disables a policy
type TogglePolicy struct {
	config   *config.RuntimeConfig
	resolver *ResolveEntity
	uow      UnitOfWork
	log      *slog.Logger
}

// NewTogglePolicy creates a new TogglePolicy use case
func NewTogglePolicy(cfg *config.RuntimeConfig, resolver *ResolveEntity, uow UnitOfWork, log *slog.Logger) *TogglePolicy {
	return &TogglePolicy{config: cfg, resolver: resolver, uow: uow, log: log}
}

// Run flips Enabled unless the owning treasury is paused
func (uc *TogglePolicy) Run(ctx context.Context, params TogglePolicyParams) (*TogglePolicyResult, error) {
	target, err := uc.resolver.ResolvePolicy(ctx, params.PolicyRef)
	if err != nil {
		return nil, err
	}

	result := &TogglePolicyResult{}
	err = uc.uow.Atomic(ctx, func(tx Tx) error {
		policy, err := tx.Policy(target.ID)
		if err != nil {
			return err
		}
		treasury, err := tx.Treasury(policy.TreasuryID)
		if err != nil {
			return err
		}
		if uc.config.Guards.EnforcePause && treasury.IsEmergencyPaused {
			return fmt.Errorf("cannot change policy %s: %w", policy.Name, domain.ErrTreasuryPaused)
		}
		result.Enabled = policy.Toggle()
		result.Policy = policy
		tx.SavePolicy(policy)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Debug("policy toggled", "policy", result.Policy.ID, "enabled", result.Enabled)
	return result, nil
}
