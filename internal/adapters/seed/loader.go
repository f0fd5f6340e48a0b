// Package seed loads demo or user supplied project data from YAML.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/trebuchet-org/coffer/internal/domain"
	"github.com/trebuchet-org/coffer/internal/domain/models"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

//go:embed default.yaml
var defaultSeed []byte

// Loader converts seed YAML into a validated snapshot
type Loader struct {
	clock usecase.Clock
}

// NewLoader creates a seed loader. Relative timestamps resolve against clock.
func NewLoader(clock usecase.Clock) *Loader {
	return &Loader{clock: clock}
}

var _ usecase.SeedSource = (*Loader)(nil)

// Load reads the seed at path, or the embedded demo data when path is empty
func (l *Loader) Load(ctx context.Context, path string) (*models.Snapshot, error) {
	data := defaultSeed
	source := "built-in seed"
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading seed file: %w", err)
		}
		data = raw
		source = path
	}

	snapshot, err := Parse(data, l.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return snapshot, nil
}

// Parse decodes seed YAML and resolves timestamps against now.
func Parse(data []byte, now time.Time) (*models.Snapshot, error) {
	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshaling YAML: %w", err)
	}

	c := &converter{now: now.UTC(), userNames: map[string]string{}}
	snapshot := &models.Snapshot{
		Version:      models.SnapshotVersion,
		Treasuries:   []models.Treasury{},
		Proposals:    []models.Proposal{},
		Policies:     []models.Policy{},
		Transactions: []models.Transaction{},
		Users:        []models.User{},
		Expenses:     []models.Expense{},
	}

	for _, u := range file.Users {
		c.userNames[u.ID] = u.Name
		snapshot.Users = append(snapshot.Users, models.User{ID: u.ID, Name: u.Name, Address: u.Address, Role: models.UserRole(u.Role)})
	}
	for i, t := range file.Treasuries {
		treasury, err := c.treasury(t)
		if err != nil {
			return nil, fmt.Errorf("treasuries[%d]: %w", i, err)
		}
		snapshot.Treasuries = append(snapshot.Treasuries, treasury)
	}
	for i, p := range file.Proposals {
		proposal, err := c.proposal(p)
		if err != nil {
			return nil, fmt.Errorf("proposals[%d]: %w", i, err)
		}
		snapshot.Proposals = append(snapshot.Proposals, proposal)
	}
	for i, p := range file.Policies {
		policy, err := c.policy(p)
		if err != nil {
			return nil, fmt.Errorf("policies[%d]: %w", i, err)
		}
		snapshot.Policies = append(snapshot.Policies, policy)
	}
	for i, t := range file.Transactions {
		tx, err := c.transaction(t)
		if err != nil {
			return nil, fmt.Errorf("transactions[%d]: %w", i, err)
		}
		snapshot.Transactions = append(snapshot.Transactions, tx)
	}
	for i, e := range file.Expenses {
		expense, err := c.expense(e)
		if err != nil {
			return nil, fmt.Errorf("expenses[%d]: %w", i, err)
		}
		snapshot.Expenses = append(snapshot.Expenses, expense)
	}

	if err := snapshot.Validate(); err != nil {
		return nil, err
	}
	return snapshot, nil
}

type converter struct {
	now       time.Time
	userNames map[string]string
}

func (c *converter) treasury(t treasuryEntry) (models.Treasury, error) {
	balance, err := amount("balance", t.Balance, true)
	if err != nil {
		return models.Treasury{}, err
	}
	createdAt, err := c.time("created_at", t.CreatedAt)
	if err != nil {
		return models.Treasury{}, err
	}
	return models.Treasury{
		ID:                t.ID,
		Name:              t.Name,
		Description:       t.Description,
		Balance:           balance,
		Threshold:         t.Threshold,
		Signers:           append([]string{}, t.Signers...),
		CreatedAt:         createdAt,
		IsEmergencyPaused: t.Paused,
	}, nil
}

func (c *converter) proposal(p proposalEntry) (models.Proposal, error) {
	amt, err := amount("amount", p.Amount, false)
	if err != nil {
		return models.Proposal{}, err
	}
	status, err := models.ParseProposalStatus(defaultString(p.Status, string(models.ProposalStatusPending)))
	if err != nil {
		return models.Proposal{}, err
	}
	createdAt, err := c.time("created_at", p.CreatedAt)
	if err != nil {
		return models.Proposal{}, err
	}
	lockUntil, err := c.time("lock_until", p.LockUntil)
	if err != nil {
		return models.Proposal{}, err
	}

	proposal := models.Proposal{
		ID:            p.ID,
		TreasuryID:    p.Treasury,
		Title:         p.Title,
		Description:   p.Description,
		Amount:        amt,
		Recipient:     p.Recipient,
		Category:      p.Category,
		Status:        status,
		CreatedBy:     p.CreatedBy,
		CreatedAt:     createdAt,
		LockUntil:     lockUntil,
		Votes:         []models.Vote{},
		RequiredVotes: p.RequiredVotes,
	}
	if p.ExecutedAt != "" {
		executedAt, err := c.time("executed_at", p.ExecutedAt)
		if err != nil {
			return models.Proposal{}, err
		}
		proposal.ExecutedAt = &executedAt
	}

	for i, v := range p.Votes {
		at, err := c.time(fmt.Sprintf("votes[%d].at", i), v.At)
		if err != nil {
			return models.Proposal{}, err
		}
		name := v.Name
		if name == "" {
			name = c.userNames[v.User]
		}
		proposal.Votes = append(proposal.Votes, models.Vote{
			UserID:    v.User,
			UserName:  name,
			Approved:  v.Approved,
			Timestamp: at,
			Signature: v.Signature,
		})
	}
	return proposal, nil
}

func (c *converter) policy(p policyEntry) (models.Policy, error) {
	policyType := models.PolicyType(p.Type)
	cfg, err := models.ParsePolicyConfig(policyType, p.Config)
	if err != nil {
		return models.Policy{}, err
	}
	createdAt, err := c.time("created_at", p.CreatedAt)
	if err != nil {
		return models.Policy{}, err
	}
	enabled := true
	if p.Enabled != nil {
		enabled = *p.Enabled
	}
	return models.Policy{
		ID:         p.ID,
		TreasuryID: p.Treasury,
		Name:       p.Name,
		Type:       policyType,
		Enabled:    enabled,
		Config:     cfg.Normalize(),
		CreatedAt:  createdAt,
	}, nil
}

func (c *converter) transaction(t transactionEntry) (models.Transaction, error) {
	amt, err := amount("amount", t.Amount, false)
	if err != nil {
		return models.Transaction{}, err
	}
	txType, err := models.ParseTransactionType(t.Type)
	if err != nil {
		return models.Transaction{}, err
	}
	status, err := models.ParseTransactionStatus(defaultString(t.Status, string(models.TransactionStatusCompleted)))
	if err != nil {
		return models.Transaction{}, err
	}
	at, err := c.time("at", t.At)
	if err != nil {
		return models.Transaction{}, err
	}

	tx := models.Transaction{
		ID:         t.ID,
		TreasuryID: t.Treasury,
		ProposalID: t.Proposal,
		Type:       txType,
		Amount:     amt,
		From:       t.From,
		To:         t.To,
		Status:     status,
		Timestamp:  at,
		TxHash:     t.TxHash,
	}
	if t.GasUsed != "" {
		gas, err := amount("gas_used", t.GasUsed, true)
		if err != nil {
			return models.Transaction{}, err
		}
		tx.GasUsed = &gas
	}
	return tx, nil
}

func (c *converter) expense(e expenseEntry) (models.Expense, error) {
	amt, err := amount("amount", e.Amount, false)
	if err != nil {
		return models.Expense{}, err
	}
	date, err := c.time("date", e.Date)
	if err != nil {
		return models.Expense{}, err
	}
	return models.Expense{ID: e.ID, Amount: amt, Category: e.Category, Description: e.Description, Date: date}, nil
}

// time accepts RFC 3339, a YYYY-MM-DD date, or an offset from now written
// as a Go duration or a whole number of days ("-14d"). Empty means now.
func (c *converter) time(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return c.now, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	if days, ok := strings.CutSuffix(raw, "d"); ok {
		n, err := strconv.Atoi(days)
		if err == nil {
			return c.now.AddDate(0, 0, n), nil
		}
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return c.now.Add(d), nil
	}
	return time.Time{}, domain.NewValidationError(field, "invalid time %q", raw)
}

func amount(field, raw string, allowZero bool) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(raw), "_", ""))
	if err != nil {
		return decimal.Decimal{}, domain.NewValidationError(field, "invalid amount %q", raw)
	}
	if d.IsNegative() || (!allowZero && d.IsZero()) {
		return decimal.Decimal{}, domain.NewValidationError(field, "must be greater than 0, got %s", raw)
	}
	return d, nil
}

func defaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
