package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/trebuchet-org/coffer/internal/domain"
)

// TransactionType represents the direction of a ledger entry
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
	TransactionTypeTransfer   TransactionType = "transfer"
)

// TransactionStatus represents the settlement status of a ledger entry
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction is an entry in a treasury's ledger. Seeded entries are never
// modified; executing a proposal appends a new withdrawal.
type Transaction struct {
	ID         string            `json:"id"`
	TreasuryID string            `json:"treasuryId"`
	ProposalID string            `json:"proposalId,omitempty"`
	Type       TransactionType   `json:"type"`
	Amount     decimal.Decimal   `json:"amount"`
	From       string            `json:"from"`
	To         string            `json:"to"`
	Status     TransactionStatus `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	GasUsed    *decimal.Decimal  `json:"gasUsed,omitempty"`
	TxHash     string            `json:"txHash"`
}

// ParseTransactionType converts user input into a transaction type.
func ParseTransactionType(raw string) (TransactionType, error) {
	switch t := TransactionType(raw); t {
	case TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypeTransfer:
		return t, nil
	}
	return "", domain.NewValidationError("type", "must be one of: deposit, withdrawal, transfer")
}

// ParseTransactionStatus converts user input into a transaction status.
func ParseTransactionStatus(raw string) (TransactionStatus, error) {
	switch s := TransactionStatus(raw); s {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusFailed:
		return s, nil
	}
	return "", domain.NewValidationError("status", "must be one of: pending, completed, failed")
}

// SignedAmount returns the effect of the transaction on its treasury balance.
// Only completed transactions move funds.
func (tx *Transaction) SignedAmount() decimal.Decimal {
	if tx.Status != TransactionStatusCompleted {
		return decimal.Zero
	}
	if tx.Type == TransactionTypeDeposit {
		return tx.Amount
	}
	return tx.Amount.Neg()
}

// Validate checks a transaction loaded from seed or persisted data.
func (tx *Transaction) Validate() error {
	var errs domain.ValidationErrors
	if tx.ID == "" {
		errs.Add("id", "is required")
	}
	if tx.TreasuryID == "" {
		errs.Add("treasuryId", "is required")
	}
	if _, err := ParseTransactionType(string(tx.Type)); err != nil {
		errs.Add("type", "unknown transaction type %q", tx.Type)
	}
	if _, err := ParseTransactionStatus(string(tx.Status)); err != nil {
		errs.Add("status", "unknown transaction status %q", tx.Status)
	}
	if tx.Amount.IsNegative() {
		errs.Add("amount", "must not be negative")
	}
	if err := errs.Err(); err != nil {
		return fmt.Errorf("transaction %q: %w", tx.ID, err)
	}
	return nil
}

// Clone returns a deep copy of the transaction.
func (tx *Transaction) Clone() *Transaction {
	clone := *tx
	if tx.GasUsed != nil {
		gas := *tx.GasUsed
		clone.GasUsed = &gas
	}
	return &clone
}
