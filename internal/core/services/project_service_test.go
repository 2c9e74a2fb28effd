package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/budgetdash/budget_dash_app/internal/apperrors"
	"github.com/budgetdash/budget_dash_app/internal/core/domain"
	portssvc "github.com/budgetdash/budget_dash_app/internal/core/ports/services"
	"github.com/budgetdash/budget_dash_app/internal/core/services"
	"github.com/budgetdash/budget_dash_app/internal/dto"
)

type ProjectServiceTestSuite struct {
	suite.Suite
	mockProjectRepo *MockProjectRepository
	mockUserRepo    *MockUserRepository
	mockTxnRepo     *MockTransactionRepository
	service         portssvc.ProjectSvcFacade

	owner  domain.Actor
	member domain.Actor
	admin  domain.Actor
}

func (suite *ProjectServiceTestSuite) SetupTest() {
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewProjectService(suite.mockProjectRepo, suite.mockUserRepo, suite.mockTxnRepo)

	suite.owner = domain.Actor{UserID: "owner-1", Role: domain.RoleUser}
	suite.member = domain.Actor{UserID: "member-1", Role: domain.RoleUser}
	suite.admin = domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}
}

func (suite *ProjectServiceTestSuite) storedProject() *domain.Project {
	return &domain.Project{
		ProjectID:  uuid.NewString(),
		Name:       "Kitchen Remodel",
		Budget:     decimal.NewFromInt(1000),
		Status:     domain.StatusActive,
		InviteCode: "ABC123",
		OwnerID:    suite.owner.UserID,
	}
}

// --- CreateProject Tests ---

func (suite *ProjectServiceTestSuite) TestCreateProject_Success() {
	ctx := context.Background()
	req := dto.CreateProjectRequest{
		Name:   "Kitchen Remodel",
		Budget: decimal.NewFromInt(1000),
	}

	suite.mockProjectRepo.On("SaveProject", ctx, mock.MatchedBy(func(p domain.Project) bool {
		return p.Name == req.Name && p.OwnerID == suite.owner.UserID &&
			p.Status == domain.StatusActive && len(p.InviteCode) == 6
	})).Return(nil).Once()

	project, err := suite.service.CreateProject(ctx, suite.owner, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(project)
	suite.NotEmpty(project.ProjectID)
	suite.NotEmpty(project.InviteCode)
	suite.mockProjectRepo.AssertExpectations(suite.T())
}

func (suite *ProjectServiceTestSuite) TestCreateProject_RetriesOnInviteCodeCollision() {
	ctx := context.Background()
	req := dto.CreateProjectRequest{Name: "P", Budget: decimal.NewFromInt(10)}

	suite.mockProjectRepo.On("SaveProject", ctx, mock.AnythingOfType("domain.Project")).Return(apperrors.ErrDuplicate).Twice()
	suite.mockProjectRepo.On("SaveProject", ctx, mock.AnythingOfType("domain.Project")).Return(nil).Once()

	project, err := suite.service.CreateProject(ctx, suite.owner, req)

	suite.Require().NoError(err)
	suite.NotNil(project)
	suite.mockProjectRepo.AssertNumberOfCalls(suite.T(), "SaveProject", 3)
}

func (suite *ProjectServiceTestSuite) TestCreateProject_NegativeBudget() {
	ctx := context.Background()
	req := dto.CreateProjectRequest{Name: "P", Budget: decimal.NewFromInt(-5)}

	project, err := suite.service.CreateProject(ctx, suite.owner, req)

	suite.Require().Error(err)
	suite.Nil(project)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ProjectServiceTestSuite) TestCreateProject_EndDateBeforeStartDate() {
	ctx := context.Background()
	req := dto.CreateProjectRequest{
		Name:      "P",
		Budget:    decimal.NewFromInt(10),
		StartDate: "2026-06-01",
		EndDate:   "2026-05-01",
	}

	_, err := suite.service.CreateProject(ctx, suite.owner, req)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Visibility Tests ---

func (suite *ProjectServiceTestSuite) TestListProjects_AdminSeesAll() {
	ctx := context.Background()
	all := []domain.Project{{ProjectID: "p1"}, {ProjectID: "p2"}}
	suite.mockProjectRepo.On("ListAllProjects", ctx).Return(all, nil).Once()

	projects, err := suite.service.ListProjects(ctx, suite.admin)

	suite.Require().NoError(err)
	suite.Len(projects, 2)
	suite.mockProjectRepo.AssertNotCalled(suite.T(), "ListProjectsByMember", mock.Anything, mock.Anything)
}

func (suite *ProjectServiceTestSuite) TestListProjects_UserSeesMemberOf() {
	ctx := context.Background()
	mine := []domain.Project{{ProjectID: "p1"}}
	suite.mockProjectRepo.On("ListProjectsByMember", ctx, suite.member.UserID).Return(mine, nil).Once()

	projects, err := suite.service.ListProjects(ctx, suite.member)

	suite.Require().NoError(err)
	suite.Len(projects, 1)
}

func (suite *ProjectServiceTestSuite) TestGetProjectForMember_NonMemberForbidden() {
	ctx := context.Background()
	project := suite.storedProject()

	suite.mockProjectRepo.On("FindProjectByID", ctx, project.ProjectID).Return(project, nil).Once()
	suite.mockProjectRepo.On("FindProjectMember", ctx, project.ProjectID, "stranger").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetProjectForMember(ctx, domain.Actor{UserID: "stranger", Role: domain.RoleUser}, project.ProjectID)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ProjectServiceTestSuite) TestGetProjectDetail_IncludesSummary() {
	ctx := context.Background()
	project := suite.storedProject()
	transactions := []domain.Transaction{
		{TransactionID: "t1", Amount: decimal.NewFromInt(600), TransactionType: domain.Debit},
		{TransactionID: "t2", Amount: decimal.NewFromInt(200), TransactionType: domain.Credit},
	}

	suite.mockProjectRepo.On("FindProjectByID", ctx, project.ProjectID).Return(project, nil).Once()
	suite.mockProjectRepo.On("FindProjectMember", ctx, project.ProjectID, suite.owner.UserID).Return(&domain.ProjectMember{}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, project.OwnerID).Return(&domain.User{UserID: project.OwnerID}, nil).Once()
	suite.mockProjectRepo.On("ListProjectMembers", ctx, project.ProjectID).Return([]domain.ProjectMember{{UserID: suite.owner.UserID}}, nil).Once()
	suite.mockTxnRepo.On("ListAllTransactionsByProject", ctx, project.ProjectID).Return(transactions, nil).Once()

	detail, err := suite.service.GetProjectDetail(ctx, suite.owner, project.ProjectID)

	suite.Require().NoError(err)
	suite.True(detail.Summary.TotalDebit.Equal(decimal.NewFromInt(600)))
	suite.True(detail.Summary.RemainingBudget.Equal(decimal.NewFromInt(800)))
	suite.Equal(60, detail.Summary.PercentUsed)
}

// --- UpdateProject Tests ---

func (suite *ProjectServiceTestSuite) TestUpdateProject_MemberForbidden() {
	ctx := context.Background()
	project := suite.storedProject()

	suite.mockProjectRepo.On("FindProjectByID", ctx, project.ProjectID).Return(project, nil).Once()

	req := dto.UpdateProjectRequest{Name: "New", Budget: decimal.NewFromInt(10), Status: "ACTIVE"}
	_, err := suite.service.UpdateProject(ctx, suite.member, project.ProjectID, req)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ProjectServiceTestSuite) TestUpdateProject_AdminAllowed() {
	ctx := context.Background()
	project := suite.storedProject()

	suite.mockProjectRepo.On("FindProjectByID", ctx, project.ProjectID).Return(project, nil).Once()
	suite.mockProjectRepo.On("UpdateProject", ctx, mock.MatchedBy(func(p domain.Project) bool {
		return p.Name == "Renamed" && p.Status == domain.StatusCompleted && p.LastUpdatedBy == suite.admin.UserID
	})).Return(nil).Once()

	req := dto.UpdateProjectRequest{Name: "Renamed", Budget: decimal.NewFromInt(500), Status: "COMPLETED"}
	updated, err := suite.service.UpdateProject(ctx, suite.admin, project.ProjectID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, updated.Status)
	// The invite code is never touched by updates.
	suite.Equal("ABC123", updated.InviteCode)
}

// --- DeleteProject Tests ---

func (suite *ProjectServiceTestSuite) TestDeleteProject_ConfirmNameMismatch() {
	ctx := context.Background()
	project := suite.storedProject()

	suite.mockProjectRepo.On("FindProjectByID", ctx, project.ProjectID).Return(project, nil).Once()

	err := suite.service.DeleteProject(ctx, suite.owner, project.ProjectID, "kitchen remodel")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProjectRepo.AssertNotCalled(suite.T(), "DeleteProject", mock.Anything, mock.Anything)
}

func (suite *ProjectServiceTestSuite) TestDeleteProject_Success() {
	ctx := context.Background()
	project := suite.storedProject()

	suite.mockProjectRepo.On("FindProjectByID", ctx, project.ProjectID).Return(project, nil).Once()
	suite.mockProjectRepo.On("DeleteProject", ctx, project.ProjectID).Return(nil).Once()

	err := suite.service.DeleteProject(ctx, suite.owner, project.ProjectID, "Kitchen Remodel")

	suite.Require().NoError(err)
	suite.mockProjectRepo.AssertExpectations(suite.T())
}

// --- Membership Tests ---

func (suite *ProjectServiceTestSuite) TestAddMember_UnregisteredEmail() {
	ctx := context.Background()
	project := suite.storedProject()

	suite.mockProjectRepo.On("FindProjectByID", ctx, project.ProjectID).Return(project, nil).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.AddMember(ctx, suite.owner, project.ProjectID, "nobody@example.com")

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockProjectRepo.AssertNotCalled(suite.T(), "AddProjectMember", mock.Anything, mock.Anything)
}

func (suite *ProjectServiceTestSuite) TestAddMember_Success() {
	ctx := context.Background()
	project := suite.storedProject()
	target := &domain.User{UserID: "new-member", Email: "new@example.com"}

	suite.mockProjectRepo.On("FindProjectByID", ctx, project.ProjectID).Return(project, nil).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, target.Email).Return(target, nil).Once()
	suite.mockProjectRepo.On("AddProjectMember", ctx, mock.MatchedBy(func(m domain.ProjectMember) bool {
		return m.ProjectID == project.ProjectID && m.UserID == target.UserID
	})).Return(nil).Once()

	err := suite.service.AddMember(ctx, suite.owner, project.ProjectID, target.Email)
	suite.Require().NoError(err)
}

func (suite *ProjectServiceTestSuite) TestRemoveMember_OwnerNeverRemovable() {
	ctx := context.Background()
	project := suite.storedProject()

	// Even an admin cannot remove the owner.
	suite.mockProjectRepo.On("FindProjectByID", ctx, project.ProjectID).Return(project, nil).Once()

	err := suite.service.RemoveMember(ctx, suite.admin, project.ProjectID, project.OwnerID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockProjectRepo.AssertNotCalled(suite.T(), "RemoveProjectMember", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProjectServiceTestSuite) TestRemoveMember_OwnerRemovesMember() {
	ctx := context.Background()
	project := suite.storedProject()

	suite.mockProjectRepo.On("FindProjectByID", ctx, project.ProjectID).Return(project, nil).Once()
	suite.mockProjectRepo.On("RemoveProjectMember", ctx, project.ProjectID, suite.member.UserID).Return(nil).Once()

	err := suite.service.RemoveMember(ctx, suite.owner, project.ProjectID, suite.member.UserID)
	suite.Require().NoError(err)
}

func TestProjectServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}
