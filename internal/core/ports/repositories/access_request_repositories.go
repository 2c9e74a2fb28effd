package repositories

import (
	"context"
	"time"

	"github.com/budgetdash/budget_dash_app/internal/core/domain"
)

// AccessRequestReader defines read operations for access requests
type AccessRequestReader interface {
	// FindRequestByID retrieves a specific access request by its ID.
	FindRequestByID(ctx context.Context, requestID string) (*domain.AccessRequest, error)

	// FindRequestByProjectAndUser retrieves the request of a (project, user)
	// pair, or apperrors.ErrNotFound. At most one exists.
	FindRequestByProjectAndUser(ctx context.Context, projectID, userID string) (*domain.AccessRequest, error)

	// ListPendingRequests retrieves pending requests across all projects,
	// newest first. Admin visibility only.
	ListPendingRequests(ctx context.Context) ([]domain.AccessRequest, error)

	// ListPendingRequestsByOwner retrieves pending requests for every project
	// owned by the given user, newest first.
	ListPendingRequestsByOwner(ctx context.Context, ownerID string) ([]domain.AccessRequest, error)
}

// AccessRequestWriter defines write operations for access requests
type AccessRequestWriter interface {
	// SaveRequest persists a new PENDING access request.
	SaveRequest(ctx context.Context, request domain.AccessRequest) error

	// ResolveRequest transitions a PENDING request to REJECTED.
	ResolveRequest(ctx context.Context, requestID string, status domain.AccessRequestStatus, resolvedBy string, resolvedAt time.Time) error

	// ApproveRequestAndAddMember transitions a PENDING request to APPROVED
	// and inserts the membership row inside a single database transaction.
	// Either both effects commit or neither does.
	ApproveRequestAndAddMember(ctx context.Context, request domain.AccessRequest, resolvedBy string, resolvedAt time.Time) error
}

// AccessRequestRepositoryFacade combines all access-request repository interfaces
type AccessRequestRepositoryFacade interface {
	AccessRequestReader
	AccessRequestWriter
}

// AccessRequestRepositoryWithTx extends the facade with transaction capabilities
type AccessRequestRepositoryWithTx interface {
	AccessRequestRepositoryFacade
	TransactionManager
}
