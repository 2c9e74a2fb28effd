package services

import (
	"context"

	"github.com/budgetdash/budget_dash_app/internal/core/domain"
)

// ReportingSvcFacade computes derived aggregates on demand. Nothing is
// persisted or cached.
type ReportingSvcFacade interface {
	// DashboardStats aggregates figures over the projects visible to the actor.
	DashboardStats(ctx context.Context, actor domain.Actor) (*domain.DashboardStats, error)

	// ExportTransactionsCSV renders a project's ledger as a CSV document.
	// Membership required.
	ExportTransactionsCSV(ctx context.Context, actor domain.Actor, projectID string) ([]byte, error)
}
