package repositories

import (
	"context"

	"github.com/budgetdash/budget_dash_app/internal/core/domain"
)

// TransactionReader defines read operations for ledger entries
type TransactionReader interface {
	// FindTransactionByID retrieves a specific ledger entry by its ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByProject retrieves entries of a project ordered by
	// date descending, windowed by limit/offset.
	ListTransactionsByProject(ctx context.Context, projectID string, limit int, offset int) ([]domain.Transaction, error)

	// ListAllTransactionsByProject retrieves every entry of a project ordered
	// by date descending. Used for summaries and CSV export.
	ListAllTransactionsByProject(ctx context.Context, projectID string) ([]domain.Transaction, error)

	// CountTransactionsByProject returns the number of entries of a project.
	CountTransactionsByProject(ctx context.Context, projectID string) (int, error)
}

// TransactionWriter defines write operations for ledger entries
type TransactionWriter interface {
	// SaveTransaction persists a new ledger entry.
	SaveTransaction(ctx context.Context, transaction domain.Transaction) error

	// UpdateTransaction updates an existing ledger entry.
	UpdateTransaction(ctx context.Context, transaction domain.Transaction) error

	// DeleteTransaction removes a ledger entry.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all ledger-entry repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
