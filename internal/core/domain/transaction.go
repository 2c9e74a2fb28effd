package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a ledger entry consumes or returns budget.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// Transaction represents a single ledger entry recorded against a project.
type Transaction struct {
	TransactionID   string          `json:"transactionID"` // Primary Key (UUID)
	ProjectID       string          `json:"projectID"`     // FK -> projects.project_id (Not Null)
	Amount          decimal.Decimal `json:"amount"`        // Positive value
	TransactionType TransactionType `json:"transactionType"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	Notes           string          `json:"notes"`
	Date            time.Time       `json:"date"`
	ReceiptPath     *string         `json:"receiptPath,omitempty"` // Path returned by the receipt store
	CreatedByName   string          `json:"createdByName"`         // Name of the creating user (joined)
	AuditFields
}
