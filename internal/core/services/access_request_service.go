package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/budgetdash/budget_dash_app/internal/apperrors"
	"github.com/budgetdash/budget_dash_app/internal/core/domain"
	portsrepo "github.com/budgetdash/budget_dash_app/internal/core/ports/repositories"
	portssvc "github.com/budgetdash/budget_dash_app/internal/core/ports/services"
	"github.com/budgetdash/budget_dash_app/internal/middleware"
)

// AccessRequestService handles the request-to-join workflow.
type AccessRequestService struct {
	requestRepo portsrepo.AccessRequestRepositoryWithTx
	projectRepo portsrepo.ProjectRepositoryFacade
}

// NewAccessRequestService creates a new AccessRequestService.
func NewAccessRequestService(ar portsrepo.AccessRequestRepositoryWithTx, pr portsrepo.ProjectRepositoryFacade) portssvc.AccessRequestSvcFacade {
	return &AccessRequestService{
		requestRepo: ar,
		projectRepo: pr,
	}
}

// Ensure AccessRequestService implements the portssvc.AccessRequestSvcFacade interface
var _ portssvc.AccessRequestSvcFacade = (*AccessRequestService)(nil)

// RequestAccess creates a PENDING request for the project matching the
// invite code. Codes are case-normalized on input.
func (s *AccessRequestService) RequestAccess(ctx context.Context, actor domain.Actor, inviteCode string) (*domain.AccessRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	code := strings.ToUpper(strings.TrimSpace(inviteCode))
	if code == "" {
		return nil, fmt.Errorf("%w: invite code is required", apperrors.ErrValidation)
	}

	project, err := s.projectRepo.FindProjectByInviteCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("no project matches that invite code")
		}
		return nil, fmt.Errorf("failed to look up invite code: %w", err)
	}

	if _, err := s.projectRepo.FindProjectMember(ctx, project.ProjectID, actor.UserID); err == nil {
		return nil, apperrors.NewConflictError("already a member of this project")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check project membership: %w", err)
	}

	if existing, err := s.requestRepo.FindRequestByProjectAndUser(ctx, project.ProjectID, actor.UserID); err == nil {
		return nil, apperrors.NewConflictError("an access request for this project already exists with status " + string(existing.Status))
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing access request: %w", err)
	}

	request := domain.AccessRequest{
		RequestID:   uuid.NewString(),
		ProjectID:   project.ProjectID,
		UserID:      actor.UserID,
		Status:      domain.RequestPending,
		ProjectName: project.Name,
		CreatedAt:   time.Now(),
	}

	if err := s.requestRepo.SaveRequest(ctx, request); err != nil {
		logger.Error("Failed to save access request in repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create access request: %w", err)
	}

	logger.Info("Access request created", slog.String("request_id", request.RequestID), slog.String("project_id", project.ProjectID))
	return &request, nil
}

// ResolveRequest approves or declines a PENDING request. Approval adds the
// requester to the project membership atomically with the status change.
func (s *AccessRequestService) ResolveRequest(ctx context.Context, actor domain.Actor, requestID string, approve bool) (*domain.AccessRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindProjectByID(ctx, request.ProjectID)
	if err != nil {
		return nil, err
	}
	if !domain.CanManageProject(actor, project) {
		return nil, apperrors.NewForbiddenError("only the project owner or an admin may resolve access requests")
	}

	if request.IsResolved() {
		return nil, apperrors.NewConflictError("access request is already resolved")
	}

	now := time.Now()
	if approve {
		if err := s.requestRepo.ApproveRequestAndAddMember(ctx, *request, actor.UserID, now); err != nil {
			logger.Error("Failed to approve access request", slog.String("error", err.Error()), slog.String("request_id", requestID))
			return nil, err
		}
		request.Status = domain.RequestApproved
	} else {
		if err := s.requestRepo.ResolveRequest(ctx, requestID, domain.RequestRejected, actor.UserID, now); err != nil {
			logger.Error("Failed to reject access request", slog.String("error", err.Error()), slog.String("request_id", requestID))
			return nil, err
		}
		request.Status = domain.RequestRejected
	}

	resolvedBy := actor.UserID
	request.ResolvedAt = &now
	request.ResolvedBy = &resolvedBy

	logger.Info("Access request resolved", slog.String("request_id", requestID), slog.String("status", string(request.Status)))
	return request, nil
}

// ListPendingForActor lists pending requests the actor may resolve: all of
// them for an admin, otherwise those of projects the actor owns.
func (s *AccessRequestService) ListPendingForActor(ctx context.Context, actor domain.Actor) ([]domain.AccessRequest, error) {
	if actor.IsAdmin() {
		return s.requestRepo.ListPendingRequests(ctx)
	}
	return s.requestRepo.ListPendingRequestsByOwner(ctx, actor.UserID)
}
