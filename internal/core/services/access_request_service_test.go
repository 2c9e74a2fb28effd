package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/budgetdash/budget_dash_app/internal/apperrors"
	"github.com/budgetdash/budget_dash_app/internal/core/domain"
	portssvc "github.com/budgetdash/budget_dash_app/internal/core/ports/services"
	"github.com/budgetdash/budget_dash_app/internal/core/services"
)

type AccessRequestServiceTestSuite struct {
	suite.Suite
	mockRequestRepo *MockAccessRequestRepository
	mockProjectRepo *MockProjectRepository
	service         portssvc.AccessRequestSvcFacade

	owner     domain.Actor
	requester domain.Actor
	admin     domain.Actor

	project *domain.Project
}

func (suite *AccessRequestServiceTestSuite) SetupTest() {
	suite.mockRequestRepo = new(MockAccessRequestRepository)
	suite.mockProjectRepo = new(MockProjectRepository)
	suite.service = services.NewAccessRequestService(suite.mockRequestRepo, suite.mockProjectRepo)

	suite.owner = domain.Actor{UserID: "owner-1", Role: domain.RoleUser}
	suite.requester = domain.Actor{UserID: "requester-1", Role: domain.RoleUser}
	suite.admin = domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}

	suite.project = &domain.Project{
		ProjectID:  uuid.NewString(),
		Name:       "Shared Project",
		InviteCode: "XYZ789",
		OwnerID:    suite.owner.UserID,
	}
}

// --- RequestAccess Tests ---

func (suite *AccessRequestServiceTestSuite) TestRequestAccess_Success() {
	ctx := context.Background()

	suite.mockProjectRepo.On("FindProjectByInviteCode", ctx, "XYZ789").Return(suite.project, nil).Once()
	suite.mockProjectRepo.On("FindProjectMember", ctx, suite.project.ProjectID, suite.requester.UserID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRequestRepo.On("FindRequestByProjectAndUser", ctx, suite.project.ProjectID, suite.requester.UserID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRequestRepo.On("SaveRequest", ctx, mock.MatchedBy(func(r domain.AccessRequest) bool {
		return r.ProjectID == suite.project.ProjectID &&
			r.UserID == suite.requester.UserID &&
			r.Status == domain.RequestPending
	})).Return(nil).Once()

	request, err := suite.service.RequestAccess(ctx, suite.requester, "XYZ789")

	suite.Require().NoError(err)
	suite.Equal(domain.RequestPending, request.Status)
	suite.mockRequestRepo.AssertExpectations(suite.T())
}

func (suite *AccessRequestServiceTestSuite) TestRequestAccess_CodeIsCaseNormalized() {
	ctx := context.Background()

	suite.mockProjectRepo.On("FindProjectByInviteCode", ctx, "XYZ789").Return(suite.project, nil).Once()
	suite.mockProjectRepo.On("FindProjectMember", ctx, suite.project.ProjectID, suite.requester.UserID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRequestRepo.On("FindRequestByProjectAndUser", ctx, suite.project.ProjectID, suite.requester.UserID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRequestRepo.On("SaveRequest", ctx, mock.AnythingOfType("domain.AccessRequest")).Return(nil).Once()

	_, err := suite.service.RequestAccess(ctx, suite.requester, "  xyz789 ")
	suite.Require().NoError(err)
}

func (suite *AccessRequestServiceTestSuite) TestRequestAccess_UnknownCode() {
	ctx := context.Background()
	suite.mockProjectRepo.On("FindProjectByInviteCode", ctx, "NOPE99").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.RequestAccess(ctx, suite.requester, "NOPE99")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccessRequestServiceTestSuite) TestRequestAccess_AlreadyMember() {
	ctx := context.Background()

	suite.mockProjectRepo.On("FindProjectByInviteCode", ctx, "XYZ789").Return(suite.project, nil).Once()
	suite.mockProjectRepo.On("FindProjectMember", ctx, suite.project.ProjectID, suite.requester.UserID).Return(&domain.ProjectMember{}, nil).Once()

	_, err := suite.service.RequestAccess(ctx, suite.requester, "XYZ789")
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *AccessRequestServiceTestSuite) TestRequestAccess_ExistingRequestNamesStatus() {
	ctx := context.Background()
	existing := &domain.AccessRequest{Status: domain.RequestRejected}

	suite.mockProjectRepo.On("FindProjectByInviteCode", ctx, "XYZ789").Return(suite.project, nil).Once()
	suite.mockProjectRepo.On("FindProjectMember", ctx, suite.project.ProjectID, suite.requester.UserID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRequestRepo.On("FindRequestByProjectAndUser", ctx, suite.project.ProjectID, suite.requester.UserID).Return(existing, nil).Once()

	_, err := suite.service.RequestAccess(ctx, suite.requester, "XYZ789")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Contains(err.Error(), "REJECTED")
}

// --- ResolveRequest Tests ---

func (suite *AccessRequestServiceTestSuite) pendingRequest() *domain.AccessRequest {
	return &domain.AccessRequest{
		RequestID: uuid.NewString(),
		ProjectID: suite.project.ProjectID,
		UserID:    suite.requester.UserID,
		Status:    domain.RequestPending,
	}
}

func (suite *AccessRequestServiceTestSuite) TestResolveRequest_ApproveAtomically() {
	ctx := context.Background()
	request := suite.pendingRequest()

	suite.mockRequestRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.project.ProjectID).Return(suite.project, nil).Once()
	suite.mockRequestRepo.On("ApproveRequestAndAddMember", ctx, *request, suite.owner.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	resolved, err := suite.service.ResolveRequest(ctx, suite.owner, request.RequestID, true)

	suite.Require().NoError(err)
	suite.Equal(domain.RequestApproved, resolved.Status)
	suite.NotNil(resolved.ResolvedAt)
	suite.Equal(suite.owner.UserID, *resolved.ResolvedBy)
	// Membership goes through the combined repository call, never separately.
	suite.mockProjectRepo.AssertNotCalled(suite.T(), "AddProjectMember", mock.Anything, mock.Anything)
}

func (suite *AccessRequestServiceTestSuite) TestResolveRequest_Reject() {
	ctx := context.Background()
	request := suite.pendingRequest()

	suite.mockRequestRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.project.ProjectID).Return(suite.project, nil).Once()
	suite.mockRequestRepo.On("ResolveRequest", ctx, request.RequestID, domain.RequestRejected, suite.owner.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	resolved, err := suite.service.ResolveRequest(ctx, suite.owner, request.RequestID, false)

	suite.Require().NoError(err)
	suite.Equal(domain.RequestRejected, resolved.Status)
	suite.mockRequestRepo.AssertNotCalled(suite.T(), "ApproveRequestAndAddMember", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccessRequestServiceTestSuite) TestResolveRequest_NonOwnerForbidden() {
	ctx := context.Background()
	request := suite.pendingRequest()

	suite.mockRequestRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.project.ProjectID).Return(suite.project, nil).Once()

	_, err := suite.service.ResolveRequest(ctx, suite.requester, request.RequestID, true)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AccessRequestServiceTestSuite) TestResolveRequest_AlreadyResolvedConflicts() {
	ctx := context.Background()
	request := suite.pendingRequest()
	request.Status = domain.RequestApproved

	suite.mockRequestRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.project.ProjectID).Return(suite.project, nil).Once()

	_, err := suite.service.ResolveRequest(ctx, suite.owner, request.RequestID, true)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRequestRepo.AssertNotCalled(suite.T(), "ApproveRequestAndAddMember", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockRequestRepo.AssertNotCalled(suite.T(), "ResolveRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccessRequestServiceTestSuite) TestResolveRequest_ApprovalFailureLeavesRequestPending() {
	ctx := context.Background()
	request := suite.pendingRequest()
	storeErr := apperrors.NewAppError(500, "tx failed", nil)

	suite.mockRequestRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockProjectRepo.On("FindProjectByID", ctx, suite.project.ProjectID).Return(suite.project, nil).Once()
	suite.mockRequestRepo.On("ApproveRequestAndAddMember", ctx, *request, suite.owner.UserID, mock.AnythingOfType("time.Time")).Return(storeErr).Once()

	resolved, err := suite.service.ResolveRequest(ctx, suite.owner, request.RequestID, true)

	suite.Require().Error(err)
	suite.Nil(resolved)
	// The repository call is atomic: on failure neither the status change
	// nor the membership landed.
	suite.mockProjectRepo.AssertNotCalled(suite.T(), "AddProjectMember", mock.Anything, mock.Anything)
}

// --- ListPendingForActor Tests ---

func (suite *AccessRequestServiceTestSuite) TestListPendingForActor_AdminSeesAll() {
	ctx := context.Background()
	all := []domain.AccessRequest{{RequestID: "r1"}, {RequestID: "r2"}}
	suite.mockRequestRepo.On("ListPendingRequests", ctx).Return(all, nil).Once()

	requests, err := suite.service.ListPendingForActor(ctx, suite.admin)

	suite.Require().NoError(err)
	suite.Len(requests, 2)
	suite.mockRequestRepo.AssertNotCalled(suite.T(), "ListPendingRequestsByOwner", mock.Anything, mock.Anything)
}

func (suite *AccessRequestServiceTestSuite) TestListPendingForActor_OwnerSeesOwn() {
	ctx := context.Background()
	mine := []domain.AccessRequest{{RequestID: "r1"}}
	suite.mockRequestRepo.On("ListPendingRequestsByOwner", ctx, suite.owner.UserID).Return(mine, nil).Once()

	requests, err := suite.service.ListPendingForActor(ctx, suite.owner)

	suite.Require().NoError(err)
	suite.Len(requests, 1)
}

func TestAccessRequestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccessRequestServiceTestSuite))
}
