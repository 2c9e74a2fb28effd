package dto

import (
	"time"

	"github.com/budgetdash/budget_dash_app/internal/core/domain"
)

// --- Access Request DTOs ---

// RequestAccessRequest carries the invite code a user wants to redeem.
type RequestAccessRequest struct {
	InviteCode string `json:"inviteCode" binding:"required,invitecode"`
}

// ResolveAccessRequestRequest carries the approve/decline decision.
type ResolveAccessRequestRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// AccessRequestResponse defines data returned for an access request.
type AccessRequestResponse struct {
	RequestID   string                     `json:"requestID"`
	ProjectID   string                     `json:"projectID"`
	ProjectName string                     `json:"projectName"`
	UserID      string                     `json:"userID"`
	UserName    string                     `json:"userName"`
	UserEmail   string                     `json:"userEmail"`
	Status      domain.AccessRequestStatus `json:"status"`
	CreatedAt   time.Time                  `json:"createdAt"`
	ResolvedAt  *time.Time                 `json:"resolvedAt,omitempty"`
}

// ToAccessRequestResponse converts domain.AccessRequest to DTO.
func ToAccessRequestResponse(r *domain.AccessRequest) AccessRequestResponse {
	return AccessRequestResponse{
		RequestID:   r.RequestID,
		ProjectID:   r.ProjectID,
		ProjectName: r.ProjectName,
		UserID:      r.UserID,
		UserName:    r.UserName,
		UserEmail:   r.UserEmail,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		ResolvedAt:  r.ResolvedAt,
	}
}

// ListAccessRequestsResponse wraps a list of access requests.
type ListAccessRequestsResponse struct {
	Requests []AccessRequestResponse `json:"requests"`
}

// ToListAccessRequestsResponse converts a slice of domain.AccessRequest to DTO.
func ToListAccessRequestsResponse(rs []domain.AccessRequest) ListAccessRequestsResponse {
	list := make([]AccessRequestResponse, len(rs))
	for i, r := range rs {
		list[i] = ToAccessRequestResponse(&r)
	}
	return ListAccessRequestsResponse{Requests: list}
}
