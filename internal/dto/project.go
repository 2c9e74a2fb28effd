package dto

import (
	"time"

	"github.com/budgetdash/budget_dash_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Project DTOs ---

// CreateProjectRequest defines data for creating a new project.
// Dates use the YYYY-MM-DD form and are parsed by the service.
type CreateProjectRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Budget      decimal.Decimal `json:"budget"`
	StartDate   string          `json:"startDate"`
	EndDate     string          `json:"endDate"`
	Status      string          `json:"status"` // Defaults to ACTIVE when empty
}

// UpdateProjectRequest defines data for updating an existing project.
type UpdateProjectRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Budget      decimal.Decimal `json:"budget"`
	StartDate   string          `json:"startDate"`
	EndDate     string          `json:"endDate"`
	Status      string          `json:"status" binding:"required,oneof=ACTIVE COMPLETED ON_HOLD"`
}

// DeleteProjectRequest carries the confirmation name for deletion.
// The supplied name must exactly match the stored project name.
type DeleteProjectRequest struct {
	ConfirmName string `json:"confirmName" binding:"required"`
}

// AddMemberRequest identifies the user to add by their registered email.
type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ProjectResponse defines data returned for a project.
type ProjectResponse struct {
	ProjectID     string               `json:"projectID"`
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	Budget        decimal.Decimal      `json:"budget"`
	StartDate     *time.Time           `json:"startDate,omitempty"`
	EndDate       *time.Time           `json:"endDate,omitempty"`
	Status        domain.ProjectStatus `json:"status"`
	InviteCode    string               `json:"inviteCode"`
	OwnerID       string               `json:"ownerID"`
	MemberCount   int                  `json:"memberCount"`
	CreatedAt     time.Time            `json:"createdAt"`
	CreatedBy     string               `json:"createdBy"`
	LastUpdatedAt time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy string               `json:"lastUpdatedBy"`
}

// ToProjectResponse converts domain.Project to DTO.
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:     p.ProjectID,
		Name:          p.Name,
		Description:   p.Description,
		Budget:        p.Budget,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		Status:        p.Status,
		InviteCode:    p.InviteCode,
		OwnerID:       p.OwnerID,
		MemberCount:   p.MemberCount,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
		LastUpdatedAt: p.LastUpdatedAt,
		LastUpdatedBy: p.LastUpdatedBy,
	}
}

// ListProjectsResponse wraps a list of projects.
type ListProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

// ToListProjectsResponse converts a slice of domain.Project to DTO.
func ToListProjectsResponse(ps []domain.Project) ListProjectsResponse {
	list := make([]ProjectResponse, len(ps))
	for i, p := range ps {
		list[i] = ToProjectResponse(&p)
	}
	return ListProjectsResponse{Projects: list}
}

// --- Membership DTOs ---

// ProjectMemberResponse defines data returned about a project member.
type ProjectMemberResponse struct {
	UserID   string    `json:"userID"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	JoinedAt time.Time `json:"joinedAt"`
}

// ToProjectMemberResponse converts domain.ProjectMember to DTO.
func ToProjectMemberResponse(m *domain.ProjectMember) ProjectMemberResponse {
	return ProjectMemberResponse{
		UserID:   m.UserID,
		Name:     m.UserName,
		Email:    m.UserEmail,
		JoinedAt: m.JoinedAt,
	}
}

// ProjectDetailResponse is the full view of a project: members, recent
// transactions and the derived budget summary.
type ProjectDetailResponse struct {
	ProjectResponse
	OwnerName    string                  `json:"ownerName,omitempty"`
	Members      []ProjectMemberResponse `json:"members"`
	Transactions []TransactionResponse   `json:"transactions"`
	Summary      domain.ProjectSummary   `json:"summary"`
}

// ToProjectDetailResponse converts domain.ProjectDetail to DTO.
func ToProjectDetailResponse(d *domain.ProjectDetail) ProjectDetailResponse {
	members := make([]ProjectMemberResponse, len(d.Members))
	for i, m := range d.Members {
		members[i] = ToProjectMemberResponse(&m)
	}
	resp := ProjectDetailResponse{
		ProjectResponse: ToProjectResponse(&d.Project),
		Members:         members,
		Transactions:    ToTransactionResponses(d.Transactions),
		Summary:         d.Summary,
	}
	if d.Owner != nil {
		resp.OwnerName = d.Owner.Name
	}
	return resp
}
