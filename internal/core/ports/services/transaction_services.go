package services

import (
	"context"

	"github.com/budgetdash/budget_dash_app/internal/core/domain"
	"github.com/budgetdash/budget_dash_app/internal/dto"
)

// TransactionPage is one page of a project's ledger, with paging metadata.
type TransactionPage struct {
	Transactions []domain.Transaction
	Page         int
	TotalPages   int
	TotalCount   int
}

// TransactionReaderSvc defines read operations for ledger entries
type TransactionReaderSvc interface {
	// ListTransactions retrieves one fixed-size page of a project's entries,
	// date descending. The page number is clamped into the valid range.
	ListTransactions(ctx context.Context, actor domain.Actor, projectID string, page int) (*TransactionPage, error)
}

// TransactionWriterSvc defines write operations for ledger entries
type TransactionWriterSvc interface {
	// CreateTransaction records a new ledger entry. Any project member may.
	// An optional receipt is stored and its path recorded.
	CreateTransaction(ctx context.Context, actor domain.Actor, projectID string, req dto.CreateTransactionRequest, receipt *dto.ReceiptUpload) (*domain.Transaction, error)

	// UpdateTransaction updates an entry. Owner or admin only. The existing
	// receipt path is kept unless a replacement file is supplied.
	UpdateTransaction(ctx context.Context, actor domain.Actor, transactionID string, req dto.UpdateTransactionRequest, receipt *dto.ReceiptUpload) (*domain.Transaction, error)

	// DeleteTransaction removes an entry. Owner or admin only.
	DeleteTransaction(ctx context.Context, actor domain.Actor, transactionID string) error
}

// TransactionSvcFacade combines all ledger-entry service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
