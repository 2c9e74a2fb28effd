package repositories

import (
	"context"
	"time"

	"github.com/budgetdash/budget_dash_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SpendTotals holds debit-minus-credit sums computed by the store.
type SpendTotals struct {
	TotalSpend   decimal.Decimal
	MonthlySpend decimal.Decimal
}

// ReportingRepository defines aggregate read operations for dashboards.
type ReportingRepository interface {
	// SumProjectBudgets sums the budgets of the given projects.
	SumProjectBudgets(ctx context.Context, projectIDs []string) (decimal.Decimal, error)

	// SumSpend computes total and since-monthStart debit-minus-credit spend
	// across the transactions of the given projects.
	SumSpend(ctx context.Context, projectIDs []string, monthStart time.Time) (SpendTotals, error)

	// ListTransactionsForExport retrieves a project's entries with creator
	// names, ordered by date descending.
	ListTransactionsForExport(ctx context.Context, projectID string) ([]domain.Transaction, error)
}
