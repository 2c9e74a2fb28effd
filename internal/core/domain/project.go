package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectStatus enumerates the lifecycle states of a project.
type ProjectStatus string

const (
	StatusActive    ProjectStatus = "ACTIVE"
	StatusCompleted ProjectStatus = "COMPLETED"
	StatusOnHold    ProjectStatus = "ON_HOLD"
)

// IsValidProjectStatus reports whether s is one of the known project statuses.
func IsValidProjectStatus(s ProjectStatus) bool {
	switch s {
	case StatusActive, StatusCompleted, StatusOnHold:
		return true
	}
	return false
}

// Project represents a budgeted project owned by a user and shared with members.
type Project struct {
	ProjectID   string          `json:"projectID"` // Primary Key (UUID)
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Budget      decimal.Decimal `json:"budget"` // Non-negative
	StartDate   *time.Time      `json:"startDate,omitempty"`
	EndDate     *time.Time      `json:"endDate,omitempty"`
	Status      ProjectStatus   `json:"status"`
	InviteCode  string          `json:"inviteCode"`  // Unique, 6-8 uppercase alphanumeric chars
	OwnerID     string          `json:"ownerID"`     // FK -> users.user_id
	MemberCount int             `json:"memberCount"` // Derived on read, never written
	AuditFields
}

// ProjectDetail is the fully expanded view of a project: members, all
// transactions ordered by date descending, and the derived budget summary.
type ProjectDetail struct {
	Project      Project
	Owner        *User
	Members      []ProjectMember
	Transactions []Transaction
	Summary      ProjectSummary
}

// ProjectMember represents the membership of a User in a Project.
// The owner is always a member.
type ProjectMember struct {
	ProjectID string    `json:"projectID"` // FK -> projects.project_id
	UserID    string    `json:"userID"`    // FK -> users.user_id
	UserName  string    `json:"userName"`  // Name of the user (joined)
	UserEmail string    `json:"userEmail"` // Email of the user (joined)
	JoinedAt  time.Time `json:"joinedAt"`
}
