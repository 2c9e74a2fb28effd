package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/budgetdash/budget_dash_app/internal/apperrors"
	"github.com/budgetdash/budget_dash_app/internal/core/domain"
	portsrepo "github.com/budgetdash/budget_dash_app/internal/core/ports/repositories"
	portssvc "github.com/budgetdash/budget_dash_app/internal/core/ports/services"
	"github.com/budgetdash/budget_dash_app/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockProjectRepo   *MockProjectRepository
	service           portssvc.ReportingSvcFacade

	member domain.Actor
	admin  domain.Actor
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockProjectRepo)

	suite.member = domain.Actor{UserID: "member-1", Role: domain.RoleUser}
	suite.admin = domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}
}

// --- DashboardStats Tests ---

func (suite *ReportingServiceTestSuite) TestDashboardStats_MemberScope() {
	ctx := context.Background()
	projects := []domain.Project{{ProjectID: "p1"}, {ProjectID: "p2"}}
	ids := []string{"p1", "p2"}

	suite.mockProjectRepo.On("ListProjectsByMember", ctx, suite.member.UserID).Return(projects, nil).Once()
	suite.mockReportingRepo.On("SumProjectBudgets", ctx, ids).Return(decimal.NewFromInt(5000), nil).Once()
	suite.mockReportingRepo.On("SumSpend", ctx, ids, mock.MatchedBy(func(monthStart time.Time) bool {
		return monthStart.Day() == 1
	})).Return(portsrepo.SpendTotals{
		TotalSpend:   decimal.NewFromInt(1200),
		MonthlySpend: decimal.NewFromInt(300),
	}, nil).Once()

	stats, err := suite.service.DashboardStats(ctx, suite.member)

	suite.Require().NoError(err)
	suite.Equal(2, stats.TotalProjects)
	suite.True(stats.ActiveBudget.Equal(decimal.NewFromInt(5000)))
	suite.True(stats.TotalSpend.Equal(decimal.NewFromInt(1200)))
	suite.True(stats.MonthlySpend.Equal(decimal.NewFromInt(300)))
}

func (suite *ReportingServiceTestSuite) TestDashboardStats_AdminScope() {
	ctx := context.Background()

	suite.mockProjectRepo.On("ListAllProjects", ctx).Return([]domain.Project{}, nil).Once()
	suite.mockReportingRepo.On("SumProjectBudgets", ctx, []string{}).Return(decimal.Zero, nil).Once()
	suite.mockReportingRepo.On("SumSpend", ctx, []string{}, mock.AnythingOfType("time.Time")).Return(portsrepo.SpendTotals{
		TotalSpend:   decimal.Zero,
		MonthlySpend: decimal.Zero,
	}, nil).Once()

	stats, err := suite.service.DashboardStats(ctx, suite.admin)

	suite.Require().NoError(err)
	suite.Equal(0, stats.TotalProjects)
	suite.mockProjectRepo.AssertNotCalled(suite.T(), "ListProjectsByMember", mock.Anything, mock.Anything)
}

// --- ExportTransactionsCSV Tests ---

func (suite *ReportingServiceTestSuite) expectExportAccess(projectID string) {
	ctx := context.Background()
	suite.mockProjectRepo.On("FindProjectByID", ctx, projectID).Return(&domain.Project{ProjectID: projectID}, nil).Once()
	suite.mockProjectRepo.On("FindProjectMember", ctx, projectID, suite.member.UserID).Return(&domain.ProjectMember{}, nil).Once()
}

func (suite *ReportingServiceTestSuite) TestExportTransactionsCSV_HeaderAndRows() {
	ctx := context.Background()
	projectID := uuid.NewString()
	suite.expectExportAccess(projectID)

	date := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	transactions := []domain.Transaction{
		{
			Amount:          decimal.NewFromFloat(42.50),
			TransactionType: domain.Debit,
			Category:        "Materials",
			Description:     "Lumber",
			Notes:           "pickup",
			Date:            date,
			CreatedByName:   "Alex Doe",
		},
	}
	suite.mockReportingRepo.On("ListTransactionsForExport", ctx, projectID).Return(transactions, nil).Once()

	out, err := suite.service.ExportTransactionsCSV(ctx, suite.member, projectID)

	suite.Require().NoError(err)
	suite.Equal("Date,Category,Description,Amount,CreatedBy,Notes\n2026-03-15,Materials,Lumber,42.5,Alex Doe,pickup\n", string(out))
}

func (suite *ReportingServiceTestSuite) TestExportTransactionsCSV_QuotesSpecialCharacters() {
	ctx := context.Background()
	projectID := uuid.NewString()
	suite.expectExportAccess(projectID)

	transactions := []domain.Transaction{
		{
			Amount:          decimal.NewFromInt(10),
			TransactionType: domain.Debit,
			Category:        "Misc",
			Description:     `He said "hi", bye`,
			Date:            time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
			CreatedByName:   "Alex Doe",
		},
	}
	suite.mockReportingRepo.On("ListTransactionsForExport", ctx, projectID).Return(transactions, nil).Once()

	out, err := suite.service.ExportTransactionsCSV(ctx, suite.member, projectID)

	suite.Require().NoError(err)
	suite.Contains(string(out), `"He said ""hi"", bye"`)
}

func (suite *ReportingServiceTestSuite) TestExportTransactionsCSV_EmptyLedgerStillHasHeader() {
	ctx := context.Background()
	projectID := uuid.NewString()
	suite.expectExportAccess(projectID)

	suite.mockReportingRepo.On("ListTransactionsForExport", ctx, projectID).Return([]domain.Transaction{}, nil).Once()

	out, err := suite.service.ExportTransactionsCSV(ctx, suite.member, projectID)

	suite.Require().NoError(err)
	suite.Equal("Date,Category,Description,Amount,CreatedBy,Notes\n", string(out))
}

func (suite *ReportingServiceTestSuite) TestExportTransactionsCSV_NonMemberForbidden() {
	ctx := context.Background()
	projectID := uuid.NewString()

	suite.mockProjectRepo.On("FindProjectByID", ctx, projectID).Return(&domain.Project{ProjectID: projectID}, nil).Once()
	suite.mockProjectRepo.On("FindProjectMember", ctx, projectID, suite.member.UserID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ExportTransactionsCSV(ctx, suite.member, projectID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "ListTransactionsForExport", mock.Anything, mock.Anything)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
