package domain

import "time"

// AccessRequestStatus enumerates the states of an access request.
// PENDING is the only non-terminal state.
type AccessRequestStatus string

const (
	RequestPending  AccessRequestStatus = "PENDING"
	RequestApproved AccessRequestStatus = "APPROVED"
	RequestRejected AccessRequestStatus = "REJECTED"
)

// AccessRequest is a user's pending ask to join a project, resolved exactly
// once by the project owner or an admin.
type AccessRequest struct {
	RequestID   string              `json:"requestID"` // Primary Key (UUID)
	ProjectID   string              `json:"projectID"` // FK -> projects.project_id
	UserID      string              `json:"userID"`    // FK -> users.user_id
	Status      AccessRequestStatus `json:"status"`
	ProjectName string              `json:"projectName"` // Joined for listings
	UserName    string              `json:"userName"`    // Joined for listings
	UserEmail   string              `json:"userEmail"`   // Joined for listings
	CreatedAt   time.Time           `json:"createdAt"`
	ResolvedAt  *time.Time          `json:"resolvedAt,omitempty"`
	ResolvedBy  *string             `json:"resolvedBy,omitempty"` // UserID of the resolver
}

// IsResolved reports whether the request has reached a terminal state.
func (r *AccessRequest) IsResolved() bool {
	return r.Status != RequestPending
}
