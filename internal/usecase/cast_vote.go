package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/trebuchet-org/coffer/internal/domain"
	"github.com/trebuchet-org/coffer/internal/domain/config"
	"github.com/trebuchet-org/coffer/internal/domain/models"
)

// CastVoteParams contains parameters for voting on a proposal
type CastVoteParams struct {
	ProposalRef string
	Approved    bool
	// VoterRef names the voter; empty uses the configured actor
	VoterRef string
}

// CastVoteResult contains the proposal after the vote
type CastVoteResult struct {
	Proposal      *models.Proposal
	Vote          models.Vote
	StatusChanged bool
	Progress      models.ApprovalProgress
}

// CastVote records a signer's vote and re-evaluates the proposal status
type CastVote struct {
	config   *config.RuntimeConfig
	resolver *ResolveEntity
	uow      UnitOfWork
	signer   Signer
	clock    Clock
	log      *slog.Logger
}

// NewCastVote creates a new CastVote use case
func NewCastVote(
	cfg *config.RuntimeConfig,
	resolver *ResolveEntity,
	uow UnitOfWork,
	signer Signer,
	clock Clock,
	log *slog.Logger,
) *CastVote {
	return &CastVote{
		config:   cfg,
		resolver: resolver,
		uow:      uow,
		signer:   signer,
		clock:    clock,
		log:      log,
	}
}

// Run checks the enabled guards in order (pause, pending, time-lock,
// duplicate), appends the vote and approves the proposal once approvals
// reach RequiredVotes. The read, the checks and the write happen in a
// single atomic update, so a failed guard leaves the proposal untouched.
func (uc *CastVote) Run(ctx context.Context, params CastVoteParams) (*CastVoteResult, error) {
	target, err := uc.resolver.ResolveProposal(ctx, params.ProposalRef)
	if err != nil {
		return nil, err
	}

	voter, err := uc.resolver.ResolveActor(ctx, params.VoterRef)
	if err != nil {
		return nil, err
	}

	guards := uc.config.Guards
	result := &CastVoteResult{}
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
		if guards.EnforcePause && treasury.IsEmergencyPaused {
			return fmt.Errorf("cannot vote on proposal %s: %w", proposal.ID, domain.ErrTreasuryPaused)
		}
		if guards.RequirePending && proposal.Status != models.ProposalStatusPending {
			return &domain.InvalidTransitionError{
				ProposalID: proposal.ID,
				From:       string(proposal.Status),
				To:         "voted",
			}
		}
		if guards.EnforceTimeLock && proposal.IsLocked(now) {
			return fmt.Errorf("proposal %s is locked until %s: %w",
				proposal.ID, proposal.LockUntil.Format("2006-01-02 15:04"), domain.ErrProposalLocked)
		}
		if guards.RejectDuplicateVotes && proposal.HasVoted(voter.ID) {
			return fmt.Errorf("%s on proposal %s: %w", voter.Name, proposal.ID, domain.ErrDuplicateVote)
		}

		vote := models.Vote{
			UserID:    voter.ID,
			UserName:  voter.Name,
			Approved:  params.Approved,
			Timestamp: now,
			Signature: uc.signer.SignVote(proposal.ID, voter.ID, params.Approved, now),
		}
		result.StatusChanged = proposal.RecordVote(vote)
		tx.SaveProposal(proposal)

		result.Proposal = proposal
		result.Vote = vote
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Progress = result.Proposal.Progress()
	uc.log.Debug("vote recorded",
		"proposal", result.Proposal.ID,
		"voter", voter.ID,
		"approved", params.Approved,
		"status", result.Proposal.Status,
	)
	if result.StatusChanged {
		uc.log.Debug("proposal approved", "proposal", result.Proposal.ID, "approvals", result.Progress.Approved)
	}
	return result, nil
}
