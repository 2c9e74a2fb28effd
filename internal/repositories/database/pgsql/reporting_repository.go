package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/budgetdash/budget_dash_app/internal/apperrors"
	"github.com/budgetdash/budget_dash_app/internal/core/domain"
	portsrepo "github.com/budgetdash/budget_dash_app/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Every given project counts toward the budget total, whatever its
// lifecycle status.
const sumProjectBudgetsQuery = `
	SELECT COALESCE(SUM(budget), 0)
	FROM projects
	WHERE project_id = ANY($1);
`

// SumProjectBudgets sums the budgets of the given projects.
func (r *reportingRepository) SumProjectBudgets(ctx context.Context, projectIDs []string) (decimal.Decimal, error) {
	if len(projectIDs) == 0 {
		return decimal.Zero, nil
	}

	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, sumProjectBudgetsQuery, projectIDs).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("error querying budget totals: %w", err)
	}
	return total, nil
}

// SumSpend computes all-time and since-monthStart net spend across the given
// projects. Credits reduce spend.
func (r *reportingRepository) SumSpend(ctx context.Context, projectIDs []string, monthStart time.Time) (portsrepo.SpendTotals, error) {
	totals := portsrepo.SpendTotals{
		TotalSpend:   decimal.Zero,
		MonthlySpend: decimal.Zero,
	}
	if len(projectIDs) == 0 {
		return totals, nil
	}

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN t.transaction_type = 'CREDIT' THEN -t.amount ELSE t.amount END), 0) AS total_spend,
			COALESCE(SUM(CASE WHEN t.transaction_date >= $2
				THEN CASE WHEN t.transaction_type = 'CREDIT' THEN -t.amount ELSE t.amount END
				ELSE 0 END), 0) AS monthly_spend
		FROM transactions t
		WHERE t.project_id = ANY($1);
	`
	if err := r.Pool.QueryRow(ctx, query, projectIDs, monthStart).Scan(&totals.TotalSpend, &totals.MonthlySpend); err != nil {
		return totals, fmt.Errorf("error querying spend totals: %w", err)
	}
	return totals, nil
}

// ListTransactionsForExport retrieves a project's entries with creator names,
// ordered by date descending.
func (r *reportingRepository) ListTransactionsForExport(ctx context.Context, projectID string) ([]domain.Transaction, error) {
	query := `
		SELECT
			t.transaction_id, t.project_id, t.amount, t.transaction_type, t.category,
			t.description, t.notes, t.transaction_date, t.receipt_path,
			u.name AS created_by_name,
			t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
		FROM transactions t
		JOIN users u ON t.created_by = u.user_id
		WHERE t.project_id = $1
		ORDER BY t.transaction_date DESC, t.created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions for export", err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan export row", err)
		}
		transactions = append(transactions, *txn)
	}

	if rows.Err() != nil {
		return nil, apperrors.NewAppError(500, "error iterating export rows", rows.Err())
	}

	return transactions, nil
}
