package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/coffer/internal/domain"
	"github.com/trebuchet-org/coffer/internal/domain/models"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

func vote(t *testing.T, e *env, proposal, voter string, approved bool) (*usecase.CastVoteResult, error) {
	t.Helper()
	return e.castVote().Run(context.Background(), usecase.CastVoteParams{
		ProposalRef: proposal,
		VoterRef:    voter,
		Approved:    approved,
	})
}

func TestCastVote_TwoOfThreeApproval(t *testing.T) {
	e := newEnv(t)

	first, err := vote(t, e, "p-open", "Alice", true)
	require.NoError(t, err)
	assert.False(t, first.StatusChanged)
	assert.Equal(t, models.ProposalStatusPending, first.Proposal.Status)
	assert.Equal(t, models.ApprovalProgress{Approved: 1, Required: 2, Fraction: 0.5}, first.Progress)
	assert.NotEmpty(t, first.Vote.Signature)
	assert.Equal(t, now, first.Vote.Timestamp)

	second, err := vote(t, e, "p-open", "Bob", true)
	require.NoError(t, err)
	assert.True(t, second.StatusChanged)
	assert.Equal(t, models.ProposalStatusApproved, second.Proposal.Status)

	stored := e.proposal(t, "p-open")
	assert.Equal(t, models.ProposalStatusApproved, stored.Status)
	assert.Len(t, stored.Votes, 2)
	assert.Equal(t, 2, e.backend.saves)
}

func TestCastVote_RejectionsDoNotBlockApproval(t *testing.T) {
	e := newEnv(t)

	res, err := vote(t, e, "p-open", "Alice", false)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusPending, res.Proposal.Status)
	assert.Equal(t, 1, res.Progress.Rejected)

	_, err = vote(t, e, "p-open", "Bob", true)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusPending, e.proposal(t, "p-open").Status)

	res, err = vote(t, e, "p-open", "Carol", true)
	require.NoError(t, err)
	assert.True(t, res.StatusChanged)
	assert.Equal(t, models.ProposalStatusApproved, res.Proposal.Status)
	assert.Equal(t, 2, res.Progress.Approved)
	assert.Equal(t, 1, res.Progress.Rejected)
}

func TestCastVote_RequiredVotesFixedAtCreation(t *testing.T) {
	e := newEnv(t)

	// lowering the threshold afterwards must not change the requirement
	require.NoError(t, e.store.Atomic(context.Background(), func(tx usecase.Tx) error {
		tr, err := tx.Treasury("t1")
		if err != nil {
			return err
		}
		tr.Threshold = 1
		tx.SaveTreasury(tr)
		return nil
	}))

	res, err := vote(t, e, "p-open", "Alice", true)
	require.NoError(t, err)
	assert.Equal(t, models.ProposalStatusPending, res.Proposal.Status)
	assert.Equal(t, 2, res.Progress.Required)
}

func TestCastVote_Guards(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, e *env)
		disable  func(g *domain.Guards)
		proposal string
		wantErr  error
	}{
		{
			name: "duplicate vote",
			setup: func(t *testing.T, e *env) {
				_, err := vote(t, e, "p-open", "Carol", false)
				require.NoError(t, err)
			},
			disable:  func(g *domain.Guards) { g.RejectDuplicateVotes = false },
			proposal: "p-open",
			wantErr:  domain.ErrDuplicateVote,
		},
		{
			name:     "proposal not pending",
			disable:  func(g *domain.Guards) { g.RequirePending = false },
			proposal: "p-ready",
			wantErr:  domain.ErrInvalidStateTransition,
		},
		{
			name:     "time-lock running",
			disable:  func(g *domain.Guards) { g.EnforceTimeLock = false },
			proposal: "p-locked",
			wantErr:  domain.ErrProposalLocked,
		},
		{
			name: "treasury paused",
			setup: func(t *testing.T, e *env) {
				_, err := usecase.NewTogglePause(e.resolver, e.store, e.log).
					Run(context.Background(), usecase.TogglePauseParams{TreasuryRef: "t1"})
				require.NoError(t, err)
			},
			disable:  func(g *domain.Guards) { g.EnforcePause = false },
			proposal: "p-open",
			wantErr:  domain.ErrTreasuryPaused,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/enforced", func(t *testing.T) {
			e := newEnv(t)
			if tt.setup != nil {
				tt.setup(t, e)
			}
			before := e.proposal(t, tt.proposal)

			_, err := vote(t, e, tt.proposal, "Carol", true)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, domain.IsUserError(err))

			after := e.proposal(t, tt.proposal)
			assert.Equal(t, before.Votes, after.Votes)
			assert.Equal(t, before.Status, after.Status)
		})

		t.Run(tt.name+"/disabled", func(t *testing.T) {
			e := newEnv(t)
			if tt.setup != nil {
				tt.setup(t, e)
			}
			tt.disable(&e.cfg.Guards)
			before := e.proposal(t, tt.proposal)

			res, err := vote(t, e, tt.proposal, "Carol", true)
			require.NoError(t, err)
			assert.Len(t, res.Proposal.Votes, len(before.Votes)+1)
		})
	}
}

func TestCastVote_ApprovedProposalKeepsStatusWithoutPendingGuard(t *testing.T) {
	e := newEnv(t)
	e.cfg.Guards.RequirePending = false

	res, err := vote(t, e, "p-ready", "Carol", false)
	require.NoError(t, err)
	assert.False(t, res.StatusChanged)
	assert.Equal(t, models.ProposalStatusApproved, res.Proposal.Status)
}

func TestCastVote_Resolution(t *testing.T) {
	t.Run("unknown proposal", func(t *testing.T) {
		e := newEnv(t)
		_, err := vote(t, e, "nope", "Alice", true)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown voter", func(t *testing.T) {
		e := newEnv(t)
		_, err := vote(t, e, "p-open", "Mallory", true)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("configured actor votes by default", func(t *testing.T) {
		e := newEnv(t)
		e.cfg.ActorID = "u2"

		res, err := vote(t, e, "p-open", "", true)
		require.NoError(t, err)
		assert.Equal(t, "u2", res.Vote.UserID)
		assert.Equal(t, "Bob", res.Vote.UserName)
	})

	t.Run("proposal by title", func(t *testing.T) {
		e := newEnv(t)
		res, err := vote(t, e, "audit", "u1", true)
		require.NoError(t, err)
		assert.Equal(t, "p-open", res.Proposal.ID)
	})
}

func TestCastVote_LockExpiresWithTime(t *testing.T) {
	e := newEnv(t)

	_, err := vote(t, e, "p-locked", "Alice", true)
	require.ErrorIs(t, err, domain.ErrProposalLocked)

	e.clock.now = now.Add(25 * time.Hour)
	res, err := vote(t, e, "p-locked", "Alice", true)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Progress.Approved)
}
