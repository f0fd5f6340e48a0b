package usecase

import (
	"context"

	"github.com/trebuchet-org/coffer/internal/domain/models"
)

// ListTransactionsParams contains parameters for listing the ledger
type ListTransactionsParams struct {
	TreasuryRef string
	Type        string
	Status      string
}

// TransactionListResult contains ledger entries and their summary
type TransactionListResult struct {
	Transactions []*models.Transaction
	Summary      TransactionSummary
}

// ListTransactions is the use case for listing ledger entries
type ListTransactions struct {
	resolver     *ResolveEntity
	transactions TransactionRepository
}

// NewListTransactions creates a new ListTransactions use case
func NewListTransactions(resolver *ResolveEntity, transactions TransactionRepository) *ListTransactions {
	return &ListTransactions{resolver: resolver, transactions: transactions}
}

// Run lists matching ledger entries, newest first
func (uc *ListTransactions) Run(ctx context.Context, params ListTransactionsParams) (*TransactionListResult, error) {
	var filter TransactionFilter

	if params.Type != "" {
		t, err := models.ParseTransactionType(params.Type)
		if err != nil {
			return nil, err
		}
		filter.Type = t
	}
	if params.Status != "" {
		s, err := models.ParseTransactionStatus(params.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = s
	}
	if params.TreasuryRef != "" {
		treasury, err := uc.resolver.ResolveTreasury(ctx, params.TreasuryRef)
		if err != nil {
			return nil, err
		}
		filter.TreasuryID = treasury.ID
	}

	transactions, err := uc.transactions.ListTransactions(ctx, filter)
	if err != nil {
		return nil, err
	}
	sortTransactionsNewestFirst(transactions)

	return &TransactionListResult{
		Transactions: transactions,
		Summary:      SummarizeTransactions(transactions),
	}, nil
}
