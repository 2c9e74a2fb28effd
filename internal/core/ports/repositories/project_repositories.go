package repositories

import (
	"context"

	"github.com/budgetdash/budget_dash_app/internal/core/domain"
)

// ProjectReader defines read operations for project data
type ProjectReader interface {
	// FindProjectByID retrieves a specific project by its ID.
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// FindProjectByInviteCode retrieves a project by its unique invite code.
	FindProjectByInviteCode(ctx context.Context, inviteCode string) (*domain.Project, error)

	// ListProjectsByMember retrieves all projects the user is a member of,
	// ordered by creation time descending.
	ListProjectsByMember(ctx context.Context, userID string) ([]domain.Project, error)

	// ListAllProjects retrieves every project, ordered by creation time
	// descending. Admin visibility only.
	ListAllProjects(ctx context.Context) ([]domain.Project, error)
}

// ProjectWriter defines write operations for project data
type ProjectWriter interface {
	// SaveProject persists a new project and its owner membership atomically.
	SaveProject(ctx context.Context, project domain.Project) error

	// UpdateProject updates an existing project's details.
	UpdateProject(ctx context.Context, project domain.Project) error

	// DeleteProject removes a project. Transactions and memberships cascade.
	DeleteProject(ctx context.Context, projectID string) error
}

// ProjectMembershipManager defines operations for managing project memberships
type ProjectMembershipManager interface {
	// AddProjectMember adds a user to a project.
	AddProjectMember(ctx context.Context, membership domain.ProjectMember) error

	// RemoveProjectMember removes a user from a project.
	RemoveProjectMember(ctx context.Context, projectID, userID string) error

	// FindProjectMember retrieves a membership row, or apperrors.ErrNotFound.
	FindProjectMember(ctx context.Context, projectID, userID string) (*domain.ProjectMember, error)

	// ListProjectMembers retrieves all members of a project with user details.
	ListProjectMembers(ctx context.Context, projectID string) ([]domain.ProjectMember, error)

	// CountProjectMembers returns the number of members of a project.
	CountProjectMembers(ctx context.Context, projectID string) (int, error)
}

// ProjectRepositoryFacade combines all project-related repository interfaces
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
	ProjectMembershipManager
}

// ProjectRepositoryWithTx extends ProjectRepositoryFacade with transaction capabilities
type ProjectRepositoryWithTx interface {
	ProjectRepositoryFacade
	TransactionManager
}
