package usecase

import (
	"context"
	"log/slog"

	"github.com/trebuchet-org/coffer/internal/domain/models"
)

// EmergencyPauseParams contains parameters for a system-wide pause
type EmergencyPauseParams struct {
	// Pause sets the flag when true and clears it when false
	Pause bool
}

// EmergencyPauseResult lists the treasuries whose flag changed
type EmergencyPauseResult struct {
	Changed []*models.Treasury
	Total   int
	Paused  bool
}

// EmergencyPause pauses or resumes every treasury at once
type EmergencyPause struct {
	uow  UnitOfWork
	sink ProgressSink
	log  *slog.Logger
}

// NewEmergencyPause creates a new EmergencyPause use case
func NewEmergencyPause(uow UnitOfWork, sink ProgressSink, log *slog.Logger) *EmergencyPause {
	return &EmergencyPause{uow: uow, sink: sink, log: log}
}

// Run applies the pause flag to all treasuries in one atomic change
func (uc *EmergencyPause) Run(ctx context.Context, params EmergencyPauseParams) (*EmergencyPauseResult, error) {
	result := &EmergencyPauseResult{Paused: params.Pause}

	err := uc.uow.Atomic(ctx, func(tx Tx) error {
		treasuries := tx.Treasuries()
		result.Total = len(treasuries)
		result.Changed = result.Changed[:0]
		for i, treasury := range treasuries {
			uc.sink.OnProgress(ctx, ProgressEvent{
				Stage:   "pausing",
				Current: i + 1,
				Total:   len(treasuries),
				Message: treasury.Name,
			})
			if treasury.IsEmergencyPaused == params.Pause {
				continue
			}
			treasury.IsEmergencyPaused = params.Pause
			tx.SaveTreasury(treasury)
			result.Changed = append(result.Changed, treasury)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Debug("emergency pause applied", "paused", params.Pause, "changed", len(result.Changed), "total", result.Total)
	return result, nil
}
