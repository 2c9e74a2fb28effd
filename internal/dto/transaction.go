package dto

import (
	"io"
	"time"

	"github.com/budgetdash/budget_dash_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Transaction DTOs ---

// CreateTransactionRequest defines data for recording a new ledger entry.
// Sent as multipart form fields so a receipt file can ride along.
type CreateTransactionRequest struct {
	Amount      decimal.Decimal `form:"amount" json:"amount"`
	Type        string          `form:"type" json:"type"` // DEBIT or CREDIT, defaults to DEBIT
	Category    string          `form:"category" json:"category" binding:"required"`
	Description string          `form:"description" json:"description"`
	Notes       string          `form:"notes" json:"notes"`
	Date        string          `form:"date" json:"date"` // YYYY-MM-DD, defaults to now when absent or unparseable
}

// UpdateTransactionRequest defines data for updating an existing ledger entry.
type UpdateTransactionRequest struct {
	Amount      decimal.Decimal `form:"amount" json:"amount"`
	Type        string          `form:"type" json:"type" binding:"required,oneof=DEBIT CREDIT"`
	Category    string          `form:"category" json:"category" binding:"required"`
	Description string          `form:"description" json:"description"`
	Notes       string          `form:"notes" json:"notes"`
	Date        string          `form:"date" json:"date"`
}

// ReceiptUpload carries an optional receipt file alongside a create/update.
type ReceiptUpload struct {
	Filename string
	Content  io.Reader
}

// ListTransactionsParams defines query parameters for paginated listing.
type ListTransactionsParams struct {
	Page int `form:"page,default=1"`
}

// TransactionResponse defines data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	ProjectID     string                 `json:"projectID"`
	Amount        decimal.Decimal        `json:"amount"`
	Type          domain.TransactionType `json:"type"`
	Category      string                 `json:"category"`
	Description   string                 `json:"description"`
	Notes         string                 `json:"notes"`
	Date          time.Time              `json:"date"`
	ReceiptPath   *string                `json:"receiptPath,omitempty"`
	CreatedBy     string                 `json:"createdBy"`
	CreatedByName string                 `json:"createdByName"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// ToTransactionResponse converts domain.Transaction to DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		ProjectID:     t.ProjectID,
		Amount:        t.Amount,
		Type:          t.TransactionType,
		Category:      t.Category,
		Description:   t.Description,
		Notes:         t.Notes,
		Date:          t.Date,
		ReceiptPath:   t.ReceiptPath,
		CreatedBy:     t.CreatedBy,
		CreatedByName: t.CreatedByName,
		CreatedAt:     t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to DTOs.
func ToTransactionResponses(ts []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(ts))
	for i, t := range ts {
		out[i] = ToTransactionResponse(&t)
	}
	return out
}

// ListTransactionsResponse wraps a page of ledger entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Page         int                   `json:"page"`
	TotalPages   int                   `json:"totalPages"`
	TotalCount   int                   `json:"totalCount"`
}
