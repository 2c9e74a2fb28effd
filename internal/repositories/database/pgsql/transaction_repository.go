package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/budgetdash/budget_dash_app/internal/apperrors"
	"github.com/budgetdash/budget_dash_app/internal/core/domain"
	portsrepo "github.com/budgetdash/budget_dash_app/internal/core/ports/repositories"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger entries.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionSelectColumns = `
	t.transaction_id, t.project_id, t.amount, t.transaction_type, t.category,
	t.description, t.notes, t.transaction_date, t.receipt_path,
	u.name AS created_by_name,
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.TransactionID,
		&t.ProjectID,
		&t.Amount,
		&t.TransactionType,
		&t.Category,
		&t.Description,
		&t.Notes,
		&t.Date,
		&t.ReceiptPath,
		&t.CreatedByName,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PgxTransactionRepository) getTransactions(ctx context.Context, filterQuery string, args ...any) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionSelectColumns + `
		FROM transactions t
		JOIN users u ON t.created_by = u.user_id
	` + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		transactions = append(transactions, *txn)
	}

	if rows.Err() != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", rows.Err())
	}

	return transactions, nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, transaction domain.Transaction) error {
	query := `
		INSERT INTO transactions (
			transaction_id, project_id, amount, transaction_type, category,
			description, notes, transaction_date, receipt_path,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		transaction.TransactionID,
		transaction.ProjectID,
		transaction.Amount,
		transaction.TransactionType,
		transaction.Category,
		transaction.Description,
		transaction.Notes,
		transaction.Date,
		transaction.ReceiptPath,
		transaction.CreatedAt,
		transaction.CreatedBy,
		transaction.LastUpdatedAt,
		transaction.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.NewNotFoundError("project not found")
		}
		return apperrors.NewAppError(500, "failed to save transaction "+transaction.TransactionID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionSelectColumns + `
		FROM transactions t
		JOIN users u ON t.created_by = u.user_id
		WHERE t.transaction_id = $1;
	`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction "+transactionID, err)
	}
	return txn, nil
}

func (r *PgxTransactionRepository) ListTransactionsByProject(ctx context.Context, projectID string, limit int, offset int) ([]domain.Transaction, error) {
	filter := `
		WHERE t.project_id = $1
		ORDER BY t.transaction_date DESC, t.created_at DESC
		LIMIT $2 OFFSET $3;
	`
	return r.getTransactions(ctx, filter, projectID, limit, offset)
}

func (r *PgxTransactionRepository) ListAllTransactionsByProject(ctx context.Context, projectID string) ([]domain.Transaction, error) {
	filter := `
		WHERE t.project_id = $1
		ORDER BY t.transaction_date DESC, t.created_at DESC;
	`
	return r.getTransactions(ctx, filter, projectID)
}

func (r *PgxTransactionRepository) CountTransactionsByProject(ctx context.Context, projectID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE project_id = $1;`, projectID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count transactions for project "+projectID, err)
	}
	return count, nil
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, transaction domain.Transaction) error {
	query := `
		UPDATE transactions
		SET amount = $1, transaction_type = $2, category = $3, description = $4,
			notes = $5, transaction_date = $6, receipt_path = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE transaction_id = $10;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		transaction.Amount,
		transaction.TransactionType,
		transaction.Category,
		transaction.Description,
		transaction.Notes,
		transaction.Date,
		transaction.ReceiptPath,
		transaction.LastUpdatedAt,
		transaction.LastUpdatedBy,
		transaction.TransactionID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+transaction.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction not found")
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction not found")
	}
	return nil
}
