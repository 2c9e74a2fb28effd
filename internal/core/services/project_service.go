package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/budgetdash/budget_dash_app/internal/apperrors"
	"github.com/budgetdash/budget_dash_app/internal/core/domain"
	portsrepo "github.com/budgetdash/budget_dash_app/internal/core/ports/repositories"
	portssvc "github.com/budgetdash/budget_dash_app/internal/core/ports/services"
	"github.com/budgetdash/budget_dash_app/internal/dto"
	"github.com/budgetdash/budget_dash_app/internal/middleware"
	"github.com/budgetdash/budget_dash_app/internal/utils"
)

// inviteCodeMaxAttempts bounds invite code regeneration when a freshly
// generated code collides with an existing one.
const inviteCodeMaxAttempts = 5

// projectDateLayout is the wire format for project start/end dates.
const projectDateLayout = "2006-01-02"

// ProjectService handles business logic related to projects and memberships.
type ProjectService struct {
	projectRepo     portsrepo.ProjectRepositoryWithTx
	userRepo        portsrepo.UserRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
}

// NewProjectService creates a new ProjectService.
func NewProjectService(pr portsrepo.ProjectRepositoryWithTx, ur portsrepo.UserRepositoryFacade, tr portsrepo.TransactionRepositoryFacade) portssvc.ProjectSvcFacade {
	return &ProjectService{
		projectRepo:     pr,
		userRepo:        ur,
		transactionRepo: tr,
	}
}

// Ensure ProjectService implements the portssvc.ProjectSvcFacade interface
var _ portssvc.ProjectSvcFacade = (*ProjectService)(nil)

// parseOptionalDate parses a YYYY-MM-DD string, returning nil for empty input.
func parseOptionalDate(value, field string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(projectDateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must use the YYYY-MM-DD format", apperrors.ErrValidation, field)
	}
	return &t, nil
}

// validateProjectFields checks the shared constraints of create and update.
func validateProjectFields(name string, budgetNegative bool, startDate, endDate *time.Time) error {
	if name == "" {
		return fmt.Errorf("%w: project name is required", apperrors.ErrValidation)
	}
	if budgetNegative {
		return fmt.Errorf("%w: budget must not be negative", apperrors.ErrValidation)
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return fmt.Errorf("%w: end date must not be before start date", apperrors.ErrValidation)
	}
	return nil
}

// CreateProject persists a new project owned by the actor, with a fresh
// unique invite code and the actor as initial member.
func (s *ProjectService) CreateProject(ctx context.Context, actor domain.Actor, req dto.CreateProjectRequest) (*domain.Project, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !domain.CanCreateProject(actor) {
		return nil, apperrors.ErrForbidden
	}

	startDate, err := parseOptionalDate(req.StartDate, "start date")
	if err != nil {
		return nil, err
	}
	endDate, err := parseOptionalDate(req.EndDate, "end date")
	if err != nil {
		return nil, err
	}
	if err := validateProjectFields(req.Name, req.Budget.IsNegative(), startDate, endDate); err != nil {
		return nil, err
	}

	status := domain.StatusActive
	if req.Status != "" {
		status = domain.ProjectStatus(req.Status)
		if !domain.IsValidProjectStatus(status) {
			return nil, fmt.Errorf("%w: unknown project status %q", apperrors.ErrValidation, req.Status)
		}
	}

	now := time.Now()
	project := domain.Project{
		ProjectID:   uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Budget:      req.Budget,
		StartDate:   startDate,
		EndDate:     endDate,
		Status:      status,
		OwnerID:     actor.UserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	// The invite code is random; regenerate on the rare collision.
	for attempt := 0; attempt < inviteCodeMaxAttempts; attempt++ {
		code, err := utils.GenerateInviteCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate invite code: %w", err)
		}
		project.InviteCode = code

		err = s.projectRepo.SaveProject(ctx, project)
		if err == nil {
			logger.Info("Project created successfully", slog.String("project_id", project.ProjectID))
			return &project, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save project in repository", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to create project: %w", err)
		}
		logger.Warn("Invite code collision, regenerating", slog.Int("attempt", attempt+1))
	}

	return nil, apperrors.NewAppError(500, "could not generate a unique invite code", nil)
}

// ListProjects retrieves projects visible to the actor: all of them for an
// admin, member-of for everyone else.
func (s *ProjectService) ListProjects(ctx context.Context, actor domain.Actor) ([]domain.Project, error) {
	if actor.IsAdmin() {
		return s.projectRepo.ListAllProjects(ctx)
	}
	return s.projectRepo.ListProjectsByMember(ctx, actor.UserID)
}

// GetProjectForMember retrieves a project if the actor may see it.
func (s *ProjectService) GetProjectForMember(ctx context.Context, actor domain.Actor, projectID string) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() {
		if _, err := s.projectRepo.FindProjectMember(ctx, projectID, actor.UserID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewForbiddenError("not a member of this project")
			}
			return nil, fmt.Errorf("failed to check project membership: %w", err)
		}
	}

	return project, nil
}

// GetProjectDetail retrieves a project with owner, members, transactions and
// the derived budget summary.
func (s *ProjectService) GetProjectDetail(ctx context.Context, actor domain.Actor, projectID string) (*domain.ProjectDetail, error) {
	project, err := s.GetProjectForMember(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}

	owner, err := s.userRepo.FindUserByID(ctx, project.OwnerID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load project owner: %w", err)
	}

	members, err := s.projectRepo.ListProjectMembers(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project members: %w", err)
	}

	transactions, err := s.transactionRepo.ListAllTransactionsByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project transactions: %w", err)
	}

	return &domain.ProjectDetail{
		Project:      *project,
		Owner:        owner,
		Members:      members,
		Transactions: transactions,
		Summary:      domain.SummarizeProject(project.Budget, transactions),
	}, nil
}

// UpdateProject updates a project. Owner or admin only.
func (s *ProjectService) UpdateProject(ctx context.Context, actor domain.Actor, projectID string, req dto.UpdateProjectRequest) (*domain.Project, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !domain.CanManageProject(actor, project) {
		return nil, apperrors.NewForbiddenError("only the project owner or an admin may update the project")
	}

	startDate, err := parseOptionalDate(req.StartDate, "start date")
	if err != nil {
		return nil, err
	}
	endDate, err := parseOptionalDate(req.EndDate, "end date")
	if err != nil {
		return nil, err
	}
	if err := validateProjectFields(req.Name, req.Budget.IsNegative(), startDate, endDate); err != nil {
		return nil, err
	}

	status := domain.ProjectStatus(req.Status)
	if !domain.IsValidProjectStatus(status) {
		return nil, fmt.Errorf("%w: unknown project status %q", apperrors.ErrValidation, req.Status)
	}

	project.Name = req.Name
	project.Description = req.Description
	project.Budget = req.Budget
	project.StartDate = startDate
	project.EndDate = endDate
	project.Status = status
	project.LastUpdatedAt = time.Now()
	project.LastUpdatedBy = actor.UserID

	if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
		logger.Error("Failed to update project in repository", slog.String("error", err.Error()), slog.String("project_id", projectID))
		return nil, fmt.Errorf("failed to update project %s: %w", projectID, err)
	}

	return project, nil
}

// DeleteProject deletes a project after exact name confirmation. The
// comparison is case sensitive.
func (s *ProjectService) DeleteProject(ctx context.Context, actor domain.Actor, projectID, confirmName string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return err
	}

	if !domain.CanManageProject(actor, project) {
		return apperrors.NewForbiddenError("only the project owner or an admin may delete the project")
	}

	if confirmName != project.Name {
		return fmt.Errorf("%w: confirmation name does not match the project name", apperrors.ErrValidation)
	}

	if err := s.projectRepo.DeleteProject(ctx, projectID); err != nil {
		logger.Error("Failed to delete project in repository", slog.String("error", err.Error()), slog.String("project_id", projectID))
		return fmt.Errorf("failed to delete project %s: %w", projectID, err)
	}

	logger.Info("Project deleted", slog.String("project_id", projectID))
	return nil
}

// AddMember adds a registered user (looked up by email) to the project.
func (s *ProjectService) AddMember(ctx context.Context, actor domain.Actor, projectID, email string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return err
	}

	if !domain.CanManageProject(actor, project) {
		return apperrors.NewForbiddenError("only the project owner or an admin may add members")
	}

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("no registered user with that email; they must register first")
		}
		return fmt.Errorf("failed to look up user by email: %w", err)
	}

	membership := domain.ProjectMember{
		ProjectID: projectID,
		UserID:    user.UserID,
		JoinedAt:  time.Now(),
	}
	if err := s.projectRepo.AddProjectMember(ctx, membership); err != nil {
		return err
	}

	logger.Info("Member added to project", slog.String("project_id", projectID), slog.String("member_user_id", user.UserID))
	return nil
}

// RemoveMember removes a user from the project. The owner can never be
// removed.
func (s *ProjectService) RemoveMember(ctx context.Context, actor domain.Actor, projectID, targetUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return err
	}

	if !domain.CanRemoveMember(actor, project, targetUserID) {
		if targetUserID == project.OwnerID {
			return apperrors.NewForbiddenError("the project owner cannot be removed")
		}
		return apperrors.NewForbiddenError("only the project owner or an admin may remove members")
	}

	if err := s.projectRepo.RemoveProjectMember(ctx, projectID, targetUserID); err != nil {
		return err
	}

	logger.Info("Member removed from project", slog.String("project_id", projectID), slog.String("member_user_id", targetUserID))
	return nil
}
