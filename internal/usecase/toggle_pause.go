package usecase

import (
	"context"
	"log/slog"

	"github.com/trebuchet-org/coffer/internal/domain/models"
)

// TogglePauseParams contains parameters for toggling a treasury pause
type TogglePauseParams struct {
	TreasuryRef string
}

// TogglePauseResult contains the treasury after the toggle
type TogglePauseResult struct {
	Treasury *models.Treasury
	Paused   bool
}

// TogglePause flips the emergency pause flag of one treasury
type TogglePause struct {
	resolver *ResolveEntity
	uow      UnitOfWork
	log      *slog.Logger
}

// NewTogglePause creates a new TogglePause use case
func NewTogglePause(resolver *ResolveEntity, uow UnitOfWork, log *slog.Logger) *TogglePause {
	return &TogglePause{resolver: resolver, uow: uow, log: log}
}

// Run toggles the pause flag. Applying it twice restores the original state.
func (uc *TogglePause) Run(ctx context.Context, params TogglePauseParams) (*TogglePauseResult, error) {
	target, err := uc.resolver.ResolveTreasury(ctx, params.TreasuryRef)
	if err != nil {
		return nil, err
	}

	result := &TogglePauseResult{}
	err = uc.uow.Atomic(ctx, func(tx Tx) error {
		treasury, err := tx.Treasury(target.ID)
		if err != nil {
			return err
		}
		result.Paused = treasury.TogglePause()
		result.Treasury = treasury
		tx.SaveTreasury(treasury)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Debug("treasury pause toggled", "treasury", result.Treasury.ID, "paused", result.Paused)
	return result, nil
}
