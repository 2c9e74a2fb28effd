package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/budgetdash/budget_dash_app/internal/apperrors"
	"github.com/budgetdash/budget_dash_app/internal/core/domain"
	portsrepo "github.com/budgetdash/budget_dash_app/internal/core/ports/repositories"
)

type PgxAccessRequestRepository struct {
	BaseRepository
}

// newPgxAccessRequestRepository creates a new repository for access requests.
func newPgxAccessRequestRepository(pool *pgxpool.Pool) portsrepo.AccessRequestRepositoryWithTx {
	return &PgxAccessRequestRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAccessRequestRepository implements portsrepo.AccessRequestRepositoryWithTx
var _ portsrepo.AccessRequestRepositoryWithTx = (*PgxAccessRequestRepository)(nil)

const accessRequestSelectColumns = `
	ar.request_id, ar.project_id, ar.user_id, ar.status,
	p.name AS project_name, u.name AS user_name, u.email AS user_email,
	ar.created_at, ar.resolved_at, ar.resolved_by
`

func scanAccessRequest(row pgx.Row) (*domain.AccessRequest, error) {
	var ar domain.AccessRequest
	err := row.Scan(
		&ar.RequestID,
		&ar.ProjectID,
		&ar.UserID,
		&ar.Status,
		&ar.ProjectName,
		&ar.UserName,
		&ar.UserEmail,
		&ar.CreatedAt,
		&ar.ResolvedAt,
		&ar.ResolvedBy,
	)
	if err != nil {
		return nil, err
	}
	return &ar, nil
}

func (r *PgxAccessRequestRepository) getRequests(ctx context.Context, filterQuery string, args ...any) ([]domain.AccessRequest, error) {
	query := `
		SELECT ` + accessRequestSelectColumns + `
		FROM access_requests ar
		JOIN projects p ON ar.project_id = p.project_id
		JOIN users u ON ar.user_id = u.user_id
	` + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query access requests", err)
	}
	defer rows.Close()

	requests := []domain.AccessRequest{}
	for rows.Next() {
		request, err := scanAccessRequest(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan access request row", err)
		}
		requests = append(requests, *request)
	}

	if rows.Err() != nil {
		return nil, apperrors.NewAppError(500, "error iterating access request rows", rows.Err())
	}

	return requests, nil
}

func (r *PgxAccessRequestRepository) SaveRequest(ctx context.Context, request domain.AccessRequest) error {
	query := `
		INSERT INTO access_requests (request_id, project_id, user_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query,
		request.RequestID,
		request.ProjectID,
		request.UserID,
		request.Status,
		request.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("an access request for this project already exists")
		}
		return apperrors.NewAppError(500, "failed to save access request "+request.RequestID, err)
	}
	return nil
}

func (r *PgxAccessRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.AccessRequest, error) {
	query := `
		SELECT ` + accessRequestSelectColumns + `
		FROM access_requests ar
		JOIN projects p ON ar.project_id = p.project_id
		JOIN users u ON ar.user_id = u.user_id
		WHERE ar.request_id = $1;
	`
	request, err := scanAccessRequest(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find access request "+requestID, err)
	}
	return request, nil
}

func (r *PgxAccessRequestRepository) FindRequestByProjectAndUser(ctx context.Context, projectID, userID string) (*domain.AccessRequest, error) {
	query := `
		SELECT ` + accessRequestSelectColumns + `
		FROM access_requests ar
		JOIN projects p ON ar.project_id = p.project_id
		JOIN users u ON ar.user_id = u.user_id
		WHERE ar.project_id = $1 AND ar.user_id = $2;
	`
	request, err := scanAccessRequest(r.Pool.QueryRow(ctx, query, projectID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find access request for project "+projectID, err)
	}
	return request, nil
}

func (r *PgxAccessRequestRepository) ListPendingRequests(ctx context.Context) ([]domain.AccessRequest, error) {
	filter := `
		WHERE ar.status = $1
		ORDER BY ar.created_at DESC;
	`
	return r.getRequests(ctx, filter, domain.RequestPending)
}

func (r *PgxAccessRequestRepository) ListPendingRequestsByOwner(ctx context.Context, ownerID string) ([]domain.AccessRequest, error) {
	filter := `
		WHERE ar.status = $1 AND p.owner_id = $2
		ORDER BY ar.created_at DESC;
	`
	return r.getRequests(ctx, filter, domain.RequestPending, ownerID)
}

// ResolveRequest flips a PENDING request to the given terminal status.
// A request already resolved yields a conflict.
func (r *PgxAccessRequestRepository) ResolveRequest(ctx context.Context, requestID string, status domain.AccessRequestStatus, resolvedBy string, resolvedAt time.Time) error {
	query := `
		UPDATE access_requests
		SET status = $1, resolved_at = $2, resolved_by = $3
		WHERE request_id = $4 AND status = $5;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, status, resolvedAt, resolvedBy, requestID, domain.RequestPending)
	if err != nil {
		return apperrors.NewAppError(500, "failed to resolve access request "+requestID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewConflictError("access request is already resolved")
	}
	return nil
}

// ApproveRequestAndAddMember approves a PENDING request and inserts the
// membership row within a single database transaction. Either both effects
// commit or neither does.
func (r *PgxAccessRequestRepository) ApproveRequestAndAddMember(ctx context.Context, request domain.AccessRequest, resolvedBy string, resolvedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	resolveQuery := `
		UPDATE access_requests
		SET status = $1, resolved_at = $2, resolved_by = $3
		WHERE request_id = $4 AND status = $5;
	`
	cmdTag, err := tx.Exec(ctx, resolveQuery,
		domain.RequestApproved, resolvedAt, resolvedBy, request.RequestID, domain.RequestPending,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to approve access request "+request.RequestID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewConflictError("access request is already resolved")
	}

	memberQuery := `
		INSERT INTO project_members (project_id, user_id, joined_at)
		VALUES ($1, $2, $3);
	`
	if _, err := tx.Exec(ctx, memberQuery, request.ProjectID, request.UserID, resolvedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("user is already a member of this project")
		}
		return apperrors.NewAppError(500, "failed to add member for approved request "+request.RequestID, err)
	}

	return r.Commit(ctx, tx)
}
