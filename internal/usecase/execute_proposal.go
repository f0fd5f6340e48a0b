package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/coffer/internal/domain"
	"github.com/trebuchet-org/coffer/internal/domain/config"
	"github.com/trebuchet-org/coffer/internal/domain/models"
)

// ExecuteProposalParams contains parameters for executing a proposal
type ExecuteProposalParams struct {
	ProposalRef string
}

// ExecuteProposalResult contains the entities changed by the execution
type ExecuteProposalResult struct {
	Proposal    *models.Proposal
	Treasury    *models.Treasury
	Transaction *models.Transaction
}

// ExecuteProposal pays out an approved proposal
type ExecuteProposal struct {
	config   *config.RuntimeConfig
	resolver *ResolveEntity
	uow      UnitOfWork
	ids      IDGenerator
	signer   Signer
	clock    Clock
	sink     ProgressSink
	log      *slog.Logger
}

// NewExecuteProposal creates a new ExecuteProposal use case
func NewExecuteProposal(
	cfg *config.RuntimeConfig,
	resolver *ResolveEntity,
	uow UnitOfWork,
	ids IDGenerator,
	signer Signer,
	clock Clock,
	sink ProgressSink,
	log *slog.Logger,
) *ExecuteProposal {
	return &ExecuteProposal{
		config:   cfg,
		resolver: resolver,
		uow:      uow,
		ids:      ids,
		signer:   signer,
		clock:    clock,
		sink:     sink,
		log:      log,
	}
}

// Run moves an approved proposal to executed, debits the treasury and
// appends a completed withdrawal to the ledger, all in one atomic update.
func (uc *ExecuteProposal) Run(ctx context.Context, params ExecuteProposalParams) (*ExecuteProposalResult, error) {
	target, err := uc.resolver.ResolveProposal(ctx, params.ProposalRef)
	if err != nil {
		return nil, err
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "executing",
		Message: fmt.Sprintf("Executing proposal %s", target.Title),
		Spinner: true,
	})

	result := &ExecuteProposalResult{}
	err = uc.uow.Atomic(ctx, func(tx Tx) error {
		proposal, err := tx.Proposal(target.ID)
		if err != nil {
			return err
		}
		treasury, err := tx.Treasury(proposal.TreasuryID)
		if err != nil {
			return err
		}

		now := uc.clock.Now()
		if !proposal.Status.CanTransitionTo(models.ProposalStatusExecuted) {
			return &domain.InvalidTransitionError{
				ProposalID: proposal.ID,
				From:       string(proposal.Status),
				To:         string(models.ProposalStatusExecuted),
			}
		}
		if uc.config.Guards.EnforcePause && treasury.IsEmergencyPaused {
			return fmt.Errorf("cannot execute proposal %s: %w", proposal.ID, domain.ErrTreasuryPaused)
		}
		if uc.config.Guards.EnforceTimeLock && proposal.IsLocked(now) {
			return fmt.Errorf("proposal %s is locked until %s: %w",
				proposal.ID, proposal.LockUntil.Format("2006-01-02 15:04"), domain.ErrProposalLocked)
		}
		if err := treasury.Debit(proposal.Amount); err != nil {
			return err
		}
		if err := proposal.MarkExecuted(now); err != nil {
			return err
		}

		ledgerEntry := &models.Transaction{
			ID:         uc.ids.NewID(),
			TreasuryID: treasury.ID,
			ProposalID: proposal.ID,
			Type:       models.TransactionTypeWithdrawal,
			Amount:     proposal.Amount,
			From:       treasury.ID,
			To:         proposal.Recipient,
			Status:     models.TransactionStatusCompleted,
			Timestamp:  now,
		}
		ledgerEntry.TxHash = uc.signer.TransactionHash(ledgerEntry)

		tx.SaveTreasury(treasury)
		tx.SaveProposal(proposal)
		tx.AppendTransaction(ledgerEntry)

		result.Proposal = proposal
		result.Treasury = treasury
		result.Transaction = ledgerEntry
		return nil
	})

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "complete", Message: "Execution finished"})
	if err != nil {
		return nil, err
	}

	uc.log.Debug("proposal executed",
		"proposal", result.Proposal.ID,
		"treasury", result.Treasury.ID,
		"amount", result.Proposal.Amount.String(),
		"balance", result.Treasury.Balance.String(),
	)
	return result, nil
}
