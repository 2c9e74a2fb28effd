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

type PgxProjectRepository struct {
	BaseRepository
}

// newPgxProjectRepository creates a new repository for project data.
func newPgxProjectRepository(pool *pgxpool.Pool) portsrepo.ProjectRepositoryWithTx {
	return &PgxProjectRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxProjectRepository implements portsrepo.ProjectRepositoryWithTx
var _ portsrepo.ProjectRepositoryWithTx = (*PgxProjectRepository)(nil)

const projectSelectColumns = `
	p.project_id, p.name, p.description, p.budget, p.start_date, p.end_date,
	p.status, p.invite_code, p.owner_id,
	(SELECT COUNT(*) FROM project_members pm WHERE pm.project_id = p.project_id) AS member_count,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
`

func scanProject(row pgx.Row) (*domain.Project, error) {
	var p domain.Project
	err := row.Scan(
		&p.ProjectID,
		&p.Name,
		&p.Description,
		&p.Budget,
		&p.StartDate,
		&p.EndDate,
		&p.Status,
		&p.InviteCode,
		&p.OwnerID,
		&p.MemberCount,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// getProjects runs the shared select query with the given filter clause.
func (r *PgxProjectRepository) getProjects(ctx context.Context, filterQuery string, args ...any) ([]domain.Project, error) {
	query := `SELECT ` + projectSelectColumns + ` FROM projects p ` + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query projects", err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan project row", err)
		}
		projects = append(projects, *project)
	}

	if rows.Err() != nil {
		return nil, apperrors.NewAppError(500, "error iterating project rows", rows.Err())
	}

	return projects, nil
}

// SaveProject inserts the project together with the owner's membership row.
// Both rows commit or neither does.
func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	projectQuery := `
		INSERT INTO projects (
			project_id, name, description, budget, start_date, end_date,
			status, invite_code, owner_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, projectQuery,
		project.ProjectID,
		project.Name,
		project.Description,
		project.Budget,
		project.StartDate,
		project.EndDate,
		project.Status,
		project.InviteCode,
		project.OwnerID,
		project.CreatedAt,
		project.CreatedBy,
		project.LastUpdatedAt,
		project.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			if pgErr.ConstraintName == "projects_invite_code_key" {
				return apperrors.ErrDuplicate
			}
			return apperrors.NewConflictError("project ID " + project.ProjectID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save project "+project.ProjectID, err)
	}

	memberQuery := `
		INSERT INTO project_members (project_id, user_id, joined_at)
		VALUES ($1, $2, $3);
	`
	if _, err := tx.Exec(ctx, memberQuery, project.ProjectID, project.OwnerID, project.CreatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to add owner membership for project "+project.ProjectID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `SELECT ` + projectSelectColumns + ` FROM projects p WHERE p.project_id = $1;`
	project, err := scanProject(r.Pool.QueryRow(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find project "+projectID, err)
	}
	return project, nil
}

func (r *PgxProjectRepository) FindProjectByInviteCode(ctx context.Context, inviteCode string) (*domain.Project, error) {
	query := `SELECT ` + projectSelectColumns + ` FROM projects p WHERE p.invite_code = $1;`
	project, err := scanProject(r.Pool.QueryRow(ctx, query, inviteCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find project by invite code", err)
	}
	return project, nil
}

func (r *PgxProjectRepository) ListProjectsByMember(ctx context.Context, userID string) ([]domain.Project, error) {
	filter := `
		JOIN project_members pm ON p.project_id = pm.project_id
		WHERE pm.user_id = $1
		ORDER BY p.created_at DESC;
	`
	return r.getProjects(ctx, filter, userID)
}

func (r *PgxProjectRepository) ListAllProjects(ctx context.Context) ([]domain.Project, error) {
	return r.getProjects(ctx, `ORDER BY p.created_at DESC;`)
}

func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	query := `
		UPDATE projects
		SET name = $1, description = $2, budget = $3, start_date = $4, end_date = $5,
			status = $6, last_updated_at = $7, last_updated_by = $8
		WHERE project_id = $9;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		project.Name,
		project.Description,
		project.Budget,
		project.StartDate,
		project.EndDate,
		project.Status,
		project.LastUpdatedAt,
		project.LastUpdatedBy,
		project.ProjectID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update project "+project.ProjectID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("project not found")
	}
	return nil
}

// DeleteProject removes the project row. Memberships, transactions and
// access requests are removed by ON DELETE CASCADE.
func (r *PgxProjectRepository) DeleteProject(ctx context.Context, projectID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM projects WHERE project_id = $1;`, projectID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete project "+projectID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("project not found")
	}
	return nil
}

func (r *PgxProjectRepository) AddProjectMember(ctx context.Context, membership domain.ProjectMember) error {
	query := `
		INSERT INTO project_members (project_id, user_id, joined_at)
		VALUES ($1, $2, $3);
	`
	_, err := r.Pool.Exec(ctx, query,
		membership.ProjectID,
		membership.UserID,
		membership.JoinedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("user is already a member of this project")
		}
		return apperrors.NewAppError(500, "failed to add user "+membership.UserID+" to project "+membership.ProjectID, err)
	}
	return nil
}

func (r *PgxProjectRepository) RemoveProjectMember(ctx context.Context, projectID, userID string) error {
	query := `DELETE FROM project_members WHERE project_id = $1 AND user_id = $2;`
	cmdTag, err := r.Pool.Exec(ctx, query, projectID, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to remove user "+userID+" from project "+projectID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("membership not found")
	}
	return nil
}

func (r *PgxProjectRepository) FindProjectMember(ctx context.Context, projectID, userID string) (*domain.ProjectMember, error) {
	query := `
		SELECT pm.project_id, pm.user_id, u.name AS user_name, u.email AS user_email, pm.joined_at
		FROM project_members pm
		JOIN users u ON pm.user_id = u.user_id
		WHERE pm.project_id = $1 AND pm.user_id = $2;
	`
	var pm domain.ProjectMember
	err := r.Pool.QueryRow(ctx, query, projectID, userID).Scan(
		&pm.ProjectID,
		&pm.UserID,
		&pm.UserName,
		&pm.UserEmail,
		&pm.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find membership of user "+userID+" in project "+projectID, err)
	}
	return &pm, nil
}

func (r *PgxProjectRepository) ListProjectMembers(ctx context.Context, projectID string) ([]domain.ProjectMember, error) {
	query := `
		SELECT pm.project_id, pm.user_id, u.name AS user_name, u.email AS user_email, pm.joined_at
		FROM project_members pm
		JOIN users u ON pm.user_id = u.user_id
		WHERE pm.project_id = $1
		ORDER BY pm.joined_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query members for project "+projectID, err)
	}
	defer rows.Close()

	members := []domain.ProjectMember{}
	for rows.Next() {
		var pm domain.ProjectMember
		err := rows.Scan(
			&pm.ProjectID,
			&pm.UserID,
			&pm.UserName,
			&pm.UserEmail,
			&pm.JoinedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan project member row", err)
		}
		members = append(members, pm)
	}

	if rows.Err() != nil {
		return nil, apperrors.NewAppError(500, "error iterating project member rows", rows.Err())
	}

	return members, nil
}

func (r *PgxProjectRepository) CountProjectMembers(ctx context.Context, projectID string) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM project_members WHERE project_id = $1;`, projectID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count members for project "+projectID, err)
	}
	return count, nil
}
