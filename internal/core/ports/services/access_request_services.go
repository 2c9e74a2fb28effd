package services

import (
	"context"

	"github.com/budgetdash/budget_dash_app/internal/core/domain"
)

// AccessRequestSvcFacade manages the request-to-join workflow.
type AccessRequestSvcFacade interface {
	// RequestAccess creates a PENDING request for the project matching the
	// invite code. Conflicts if the actor is already a member or a request
	// for the pair already exists (the error names its current status).
	RequestAccess(ctx context.Context, actor domain.Actor, inviteCode string) (*domain.AccessRequest, error)

	// ResolveRequest approves or declines a PENDING request. Approval adds
	// the requester to the project membership atomically with the status
	// change. A second resolution attempt fails with a conflict.
	ResolveRequest(ctx context.Context, actor domain.Actor, requestID string, approve bool) (*domain.AccessRequest, error)

	// ListPendingForActor lists pending requests the actor may resolve:
	// all of them for an admin, otherwise those of projects the actor owns.
	ListPendingForActor(ctx context.Context, actor domain.Actor) ([]domain.AccessRequest, error)
}
