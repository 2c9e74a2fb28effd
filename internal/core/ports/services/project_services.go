package services

import (
	"context"

	"github.com/budgetdash/budget_dash_app/internal/core/domain"
	"github.com/budgetdash/budget_dash_app/internal/dto"
)

// ProjectReaderSvc defines read operations for project data
type ProjectReaderSvc interface {
	// ListProjects retrieves projects visible to the actor: all of them for
	// an admin, member-of for everyone else. Newest first.
	ListProjects(ctx context.Context, actor domain.Actor) ([]domain.Project, error)

	// GetProjectDetail retrieves a project with owner, members, transactions
	// (date descending) and the derived budget summary.
	GetProjectDetail(ctx context.Context, actor domain.Actor, projectID string) (*domain.ProjectDetail, error)

	// GetProjectForMember retrieves a project if the actor may see it.
	GetProjectForMember(ctx context.Context, actor domain.Actor, projectID string) (*domain.Project, error)
}

// ProjectWriterSvc defines write operations for project data
type ProjectWriterSvc interface {
	// CreateProject persists a new project owned by the actor, with a fresh
	// unique invite code and the actor as initial member.
	CreateProject(ctx context.Context, actor domain.Actor, req dto.CreateProjectRequest) (*domain.Project, error)

	// UpdateProject updates a project. Owner or admin only.
	UpdateProject(ctx context.Context, actor domain.Actor, projectID string, req dto.UpdateProjectRequest) (*domain.Project, error)

	// DeleteProject deletes a project after exact name confirmation.
	// Transactions and memberships cascade.
	DeleteProject(ctx context.Context, actor domain.Actor, projectID, confirmName string) error
}

// ProjectMembershipSvc defines operations for managing project membership
type ProjectMembershipSvc interface {
	// AddMember adds a registered user (looked up by email) to the project.
	AddMember(ctx context.Context, actor domain.Actor, projectID, email string) error

	// RemoveMember removes a user from the project. The owner can never be
	// removed.
	RemoveMember(ctx context.Context, actor domain.Actor, projectID, targetUserID string) error
}

// ProjectSvcFacade combines all project-related service interfaces
type ProjectSvcFacade interface {
	ProjectReaderSvc
	ProjectWriterSvc
	ProjectMembershipSvc
}
