package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"github.com/budgetdash/budget_dash_app/internal/apperrors"
	"github.com/budgetdash/budget_dash_app/internal/core/domain"
	portsrepo "github.com/budgetdash/budget_dash_app/internal/core/ports/repositories"
	portssvc "github.com/budgetdash/budget_dash_app/internal/core/ports/services"
)

// csvDateLayout is the date format used in exported ledgers.
const csvDateLayout = "2006-01-02"

// csvHeader is the column set of exported ledgers.
var csvHeader = []string{"Date", "Category", "Description", "Amount", "CreatedBy", "Notes"}

// ReportingService computes dashboard aggregates and ledger exports on
// demand. Nothing is persisted or cached.
type ReportingService struct {
	reportingRepo portsrepo.ReportingRepository
	projectRepo   portsrepo.ProjectRepositoryFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(rr portsrepo.ReportingRepository, pr portsrepo.ProjectRepositoryFacade) portssvc.ReportingSvcFacade {
	return &ReportingService{
		reportingRepo: rr,
		projectRepo:   pr,
	}
}

// Ensure ReportingService implements the portssvc.ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*ReportingService)(nil)

// visibleProjectIDs returns the IDs of projects the actor can see.
func (s *ReportingService) visibleProjects(ctx context.Context, actor domain.Actor) ([]domain.Project, error) {
	if actor.IsAdmin() {
		return s.projectRepo.ListAllProjects(ctx)
	}
	return s.projectRepo.ListProjectsByMember(ctx, actor.UserID)
}

// DashboardStats aggregates figures over the projects visible to the actor.
func (s *ReportingService) DashboardStats(ctx context.Context, actor domain.Actor) (*domain.DashboardStats, error) {
	projects, err := s.visibleProjects(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("failed to list visible projects: %w", err)
	}

	projectIDs := make([]string, len(projects))
	for i, p := range projects {
		projectIDs[i] = p.ProjectID
	}

	activeBudget, err := s.reportingRepo.SumProjectBudgets(ctx, projectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to sum project budgets: %w", err)
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	totals, err := s.reportingRepo.SumSpend(ctx, projectIDs, monthStart)
	if err != nil {
		return nil, fmt.Errorf("failed to sum spend: %w", err)
	}

	return &domain.DashboardStats{
		TotalProjects: len(projects),
		ActiveBudget:  activeBudget,
		TotalSpend:    totals.TotalSpend,
		MonthlySpend:  totals.MonthlySpend,
	}, nil
}

// ExportTransactionsCSV renders a project's ledger as a CSV document, newest
// entry first. Membership required.
func (s *ReportingService) ExportTransactionsCSV(ctx context.Context, actor domain.Actor, projectID string) ([]byte, error) {
	if _, err := s.projectRepo.FindProjectByID(ctx, projectID); err != nil {
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

	transactions, err := s.reportingRepo.ListTransactionsForExport(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for export: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, txn := range transactions {
		record := []string{
			txn.Date.Format(csvDateLayout),
			txn.Category,
			txn.Description,
			txn.Amount.String(),
			txn.CreatedByName,
			txn.Notes,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV output: %w", err)
	}

	return buf.Bytes(), nil
}
