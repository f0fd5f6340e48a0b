package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/coffer/internal/domain/config"
	"github.com/trebuchet-org/coffer/internal/domain/models"
)

// CreateTreasuryParams contains parameters for creating a treasury
type CreateTreasuryParams struct {
	Name        string
	Description string
	Threshold   int
	Signers     []string
}

// CreateTreasuryResult contains the created treasury
type CreateTreasuryResult struct {
	Treasury *models.Treasury
}

// CreateTreasury registers a new treasury
type CreateTreasury struct {
	config *config.RuntimeConfig
	uow    UnitOfWork
	ids    IDGenerator
	clock  Clock
	sink   ProgressSink
	log    *slog.Logger
}

// NewCreateTreasury creates a new CreateTreasury use case
func NewCreateTreasury(
	cfg *config.RuntimeConfig,
	uow UnitOfWork,
	ids IDGenerator,
	clock Clock,
	sink ProgressSink,
	log *slog.Logger,
) *CreateTreasury {
	return &CreateTreasury{
		config: cfg,
		uow:    uow,
		ids:    ids,
		clock:  clock,
		sink:   sink,
		log:    log,
	}
}

// Run validates the input and stores the treasury
func (uc *CreateTreasury) Run(ctx context.Context, params CreateTreasuryParams) (*CreateTreasuryResult, error) {
	treasury, err := models.NewTreasury(uc.ids.NewID(), models.CreateTreasuryInput{
		Name:        params.Name,
		Description: params.Description,
		Threshold:   params.Threshold,
		Signers:     params.Signers,
	}, uc.config.StrictAddresses, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "saving", Message: "Saving treasury", Spinner: true})
	err = uc.uow.Atomic(ctx, func(tx Tx) error {
		tx.SaveTreasury(treasury)
		return nil
	})
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "complete"})
	if err != nil {
		return nil, fmt.Errorf("failed to save treasury: %w", err)
	}

	uc.log.Debug("treasury created", "treasury", treasury.ID, "threshold", treasury.Threshold, "signers", len(treasury.Signers))

	return &CreateTreasuryResult{Treasury: treasury}, nil
}
