package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/coffer/internal/domain"
)

func twoOfThree() *Treasury {
	return &Treasury{ID: "t1", Name: "Ops", Threshold: 2, Signers: []string{"a", "b", "c"}, Balance: decimal.NewFromInt(1000)}
}

func validProposalInput() CreateProposalInput {
	return CreateProposalInput{
		TreasuryID:   "t1",
		Title:        "Audit",
		Description:  "Pay for the audit",
		Amount:       decimal.NewFromInt(250),
		Recipient:    "auditor",
		Category:     "Security",
		LockDuration: 48 * time.Hour,
	}
}

func TestNewProposal(t *testing.T) {
	t.Run("snapshots threshold and lock", func(t *testing.T) {
		treasury := twoOfThree()
		p, err := NewProposal("p1", validProposalInput(), treasury, "u1", false, testNow)
		require.NoError(t, err)

		assert.Equal(t, ProposalStatusPending, p.Status)
		assert.Equal(t, 2, p.RequiredVotes)
		assert.Equal(t, testNow.Add(48*time.Hour), p.LockUntil)
		assert.Equal(t, "u1", p.CreatedBy)
		assert.Empty(t, p.Votes)

		treasury.Threshold = 3
		assert.Equal(t, 2, p.RequiredVotes)
	})

	tests := []struct {
		name       string
		mutate     func(*CreateProposalInput)
		treasury   *Treasury
		wantFields []string
	}{
		{"zero amount", func(in *CreateProposalInput) { in.Amount = decimal.Zero }, twoOfThree(), []string{"amount"}},
		{"negative amount", func(in *CreateProposalInput) { in.Amount = decimal.NewFromInt(-5) }, twoOfThree(), []string{"amount"}},
		{"blank title", func(in *CreateProposalInput) { in.Title = "   " }, twoOfThree(), []string{"title"}},
		{"missing recipient and category", func(in *CreateProposalInput) { in.Recipient, in.Category = "", "" }, twoOfThree(), []string{"recipient", "category"}},
		{"missing lock", func(in *CreateProposalInput) { in.LockDuration = 0 }, twoOfThree(), []string{"lockDuration"}},
		{"unknown treasury", func(in *CreateProposalInput) {}, nil, []string{"treasury"}},
		{"missing treasury", func(in *CreateProposalInput) { in.TreasuryID = "" }, nil, []string{"treasury"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validProposalInput()
			tt.mutate(&input)
			p, err := NewProposal("p1", input, tt.treasury, "u1", false, testNow)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.ElementsMatch(t, tt.wantFields, invalidFields(t, err))
		})
	}
}

func TestProposalStatus_Transitions(t *testing.T) {
	tests := []struct {
		from, to ProposalStatus
		allowed  bool
	}{
		{ProposalStatusPending, ProposalStatusApproved, true},
		{ProposalStatusPending, ProposalStatusRejected, true},
		{ProposalStatusPending, ProposalStatusExpired, true},
		{ProposalStatusPending, ProposalStatusExecuted, false},
		{ProposalStatusApproved, ProposalStatusExecuted, true},
		{ProposalStatusApproved, ProposalStatusPending, false},
		{ProposalStatusExecuted, ProposalStatusApproved, false},
		{ProposalStatusRejected, ProposalStatusApproved, false},
		{ProposalStatusExpired, ProposalStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))

			p := &Proposal{ID: "p1", Status: tt.from}
			err := p.TransitionTo(tt.to)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, p.Status)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
				assert.Equal(t, tt.from, p.Status)
			}
		})
	}
}

func TestProposal_RecordVote(t *testing.T) {
	vote := func(user string, approved bool) Vote {
		return Vote{UserID: user, Approved: approved, Timestamp: testNow}
	}

	t.Run("approves at threshold", func(t *testing.T) {
		p := &Proposal{ID: "p1", Status: ProposalStatusPending, RequiredVotes: 2}

		assert.False(t, p.RecordVote(vote("u1", true)))
		assert.Equal(t, ProposalStatusPending, p.Status)

		assert.True(t, p.RecordVote(vote("u2", true)))
		assert.Equal(t, ProposalStatusApproved, p.Status)
	})

	t.Run("rejections do not block approval", func(t *testing.T) {
		p := &Proposal{ID: "p1", Status: ProposalStatusPending, RequiredVotes: 2}

		p.RecordVote(vote("u1", false))
		p.RecordVote(vote("u2", true))
		assert.Equal(t, ProposalStatusPending, p.Status)
		p.RecordVote(vote("u3", true))

		assert.Equal(t, ProposalStatusApproved, p.Status)
		assert.Equal(t, 2, p.ApprovalCount())
		assert.Equal(t, 1, p.RejectionCount())
	})

	t.Run("non pending status is left alone", func(t *testing.T) {
		p := &Proposal{ID: "p1", Status: ProposalStatusExecuted, RequiredVotes: 1}

		assert.False(t, p.RecordVote(vote("u1", true)))
		assert.Equal(t, ProposalStatusExecuted, p.Status)
		assert.Len(t, p.Votes, 1)
	})

	t.Run("tracks voters", func(t *testing.T) {
		p := &Proposal{ID: "p1", Status: ProposalStatusPending, RequiredVotes: 3}
		p.RecordVote(vote("u1", true))

		assert.True(t, p.HasVoted("u1"))
		assert.False(t, p.HasVoted("u2"))
	})
}

func TestProposal_IsLocked(t *testing.T) {
	p := &Proposal{LockUntil: testNow}

	assert.True(t, p.IsLocked(testNow.Add(-time.Second)))
	assert.False(t, p.IsLocked(testNow))
	assert.False(t, p.IsLocked(testNow.Add(time.Second)))
}

func TestProposal_MarkExecuted(t *testing.T) {
	p := &Proposal{ID: "p1", Status: ProposalStatusPending}
	assert.ErrorIs(t, p.MarkExecuted(testNow), domain.ErrInvalidStateTransition)
	assert.Nil(t, p.ExecutedAt)

	p.Status = ProposalStatusApproved
	require.NoError(t, p.MarkExecuted(testNow))
	assert.Equal(t, ProposalStatusExecuted, p.Status)
	require.NotNil(t, p.ExecutedAt)
	assert.Equal(t, testNow, *p.ExecutedAt)
}

func TestProposal_Progress(t *testing.T) {
	p := &Proposal{RequiredVotes: 4, Votes: []Vote{{UserID: "a", Approved: true}, {UserID: "b"}, {UserID: "c", Approved: true}}}

	assert.Equal(t, ApprovalProgress{Approved: 2, Rejected: 1, Required: 4, Fraction: 0.5}, p.Progress())
}

func TestParseProposalStatus(t *testing.T) {
	s, err := ParseProposalStatus(" Approved ")
	require.NoError(t, err)
	assert.Equal(t, ProposalStatusApproved, s)

	_, err = ParseProposalStatus("cancelled")
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "status", ve.Field)
}
