package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/trebuchet-org/coffer/internal/domain"
	"github.com/trebuchet-org/coffer/internal/domain/config"
	"github.com/trebuchet-org/coffer/internal/domain/models"
)

// CreateProposalParams contains the raw fields of a proposal request
type CreateProposalParams struct {
	TreasuryRef string
	Title       string
	Description string
	Amount      string
	Recipient   string
	Category    string
	// LockDays overrides the configured default time-lock when positive
	LockDays int
	// ActorRef names the creator; empty uses the configured actor
	ActorRef string
}

// CreateProposalResult contains the created proposal
type CreateProposalResult struct {
	Proposal *models.Proposal
	Treasury *models.Treasury
}

// CreateProposal opens a new spending proposal against a treasury
type CreateProposal struct {
	config   *config.RuntimeConfig
	resolver *ResolveEntity
	uow      UnitOfWork
	ids      IDGenerator
	clock    Clock
	log      *slog.Logger
}

// NewCreateProposal creates a new CreateProposal use case
func NewCreateProposal(
	cfg *config.RuntimeConfig,
	resolver *ResolveEntity,
	uow UnitOfWork,
	ids IDGenerator,
	clock Clock,
	log *slog.Logger,
) *CreateProposal {
	return &CreateProposal{
		config:   cfg,
		resolver: resolver,
		uow:      uow,
		ids:      ids,
		clock:    clock,
		log:      log,
	}
}

// Run parses and validates the request, then stores a pending proposal whose
// RequiredVotes is the treasury threshold at this moment.
func (uc *CreateProposal) Run(ctx context.Context, params CreateProposalParams) (*CreateProposalResult, error) {
	var parseErrs domain.ValidationErrors
	amount, err := models.ParseAmount("amount", params.Amount)
	if err != nil {
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			return nil, err
		}
		parseErrs = append(parseErrs, ve)
	}

	target, err := uc.resolver.ResolveTreasury(ctx, params.TreasuryRef)
	if err != nil {
		return nil, err
	}

	creator, err := uc.resolver.ResolveActor(ctx, params.ActorRef)
	if err != nil {
		return nil, err
	}

	lock := uc.config.DefaultLockDuration()
	if params.LockDays > 0 {
		lock = time.Duration(params.LockDays) * 24 * time.Hour
	}

	input := models.CreateProposalInput{
		TreasuryID:   target.ID,
		Title:        params.Title,
		Description:  params.Description,
		Amount:       amount,
		Recipient:    params.Recipient,
		Category:     params.Category,
		LockDuration: lock,
	}

	result := &CreateProposalResult{}
	err = uc.uow.Atomic(ctx, func(tx Tx) error {
		treasury, err := tx.Treasury(target.ID)
		if err != nil {
			return err
		}
		if uc.config.Guards.EnforcePause && treasury.IsEmergencyPaused {
			return fmt.Errorf("cannot create proposal on %s: %w", treasury.Name, domain.ErrTreasuryPaused)
		}

		proposal, err := models.NewProposal(uc.ids.NewID(), input, treasury, creator.ID, uc.config.StrictAddresses, uc.clock.Now())
		if len(parseErrs) > 0 {
			return mergeValidation(parseErrs, err)
		}
		if err != nil {
			return err
		}
		tx.SaveProposal(proposal)

		result.Proposal = proposal
		result.Treasury = treasury
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Debug("proposal created", "proposal", result.Proposal.ID, "treasury", target.ID, "requiredVotes", result.Proposal.RequiredVotes)
	return result, nil
}

// mergeValidation reports parse failures together with the field errors of
// the model. A parse failure replaces the model's message for the same field.
func mergeValidation(parsed domain.ValidationErrors, err error) error {
	var fieldErrs domain.ValidationErrors
	if err != nil && !errors.As(err, &fieldErrs) {
		return err
	}
	merged := slices.Clone(parsed)
	for _, fe := range fieldErrs {
		if !slices.ContainsFunc(parsed, func(p *domain.ValidationError) bool { return p.Field == fe.Field }) {
			merged = append(merged, fe)
		}
	}
	return merged.Err()
}
