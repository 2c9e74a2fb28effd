package services_test

import (
	"context"
	"io"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/budgetdash/budget_dash_app/internal/core/domain"
	portsrepo "github.com/budgetdash/budget_dash_app/internal/core/ports/repositories"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderDetails(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerUserID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Mock ProjectRepository ---

type MockProjectRepository struct {
	mock.Mock
}

var _ portsrepo.ProjectRepositoryWithTx = (*MockProjectRepository)(nil)

func (m *MockProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	var project *domain.Project
	if args.Get(0) != nil {
		project = args.Get(0).(*domain.Project)
	}
	return project, args.Error(1)
}

func (m *MockProjectRepository) FindProjectByInviteCode(ctx context.Context, inviteCode string) (*domain.Project, error) {
	args := m.Called(ctx, inviteCode)
	var project *domain.Project
	if args.Get(0) != nil {
		project = args.Get(0).(*domain.Project)
	}
	return project, args.Error(1)
}

func (m *MockProjectRepository) ListProjectsByMember(ctx context.Context, userID string) ([]domain.Project, error) {
	args := m.Called(ctx, userID)
	var projects []domain.Project
	if args.Get(0) != nil {
		projects = args.Get(0).([]domain.Project)
	}
	return projects, args.Error(1)
}

func (m *MockProjectRepository) ListAllProjects(ctx context.Context) ([]domain.Project, error) {
	args := m.Called(ctx)
	var projects []domain.Project
	if args.Get(0) != nil {
		projects = args.Get(0).([]domain.Project)
	}
	return projects, args.Error(1)
}

func (m *MockProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) DeleteProject(ctx context.Context, projectID string) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

func (m *MockProjectRepository) AddProjectMember(ctx context.Context, membership domain.ProjectMember) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockProjectRepository) RemoveProjectMember(ctx context.Context, projectID, userID string) error {
	args := m.Called(ctx, projectID, userID)
	return args.Error(0)
}

func (m *MockProjectRepository) FindProjectMember(ctx context.Context, projectID, userID string) (*domain.ProjectMember, error) {
	args := m.Called(ctx, projectID, userID)
	var member *domain.ProjectMember
	if args.Get(0) != nil {
		member = args.Get(0).(*domain.ProjectMember)
	}
	return member, args.Error(1)
}

func (m *MockProjectRepository) ListProjectMembers(ctx context.Context, projectID string) ([]domain.ProjectMember, error) {
	args := m.Called(ctx, projectID)
	var members []domain.ProjectMember
	if args.Get(0) != nil {
		members = args.Get(0).([]domain.ProjectMember)
	}
	return members, args.Error(1)
}

func (m *MockProjectRepository) CountProjectMembers(ctx context.Context, projectID string) (int, error) {
	args := m.Called(ctx, projectID)
	return args.Int(0), args.Error(1)
}

func (m *MockProjectRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	var tx pgx.Tx
	if args.Get(0) != nil {
		tx = args.Get(0).(pgx.Tx)
	}
	return tx, args.Error(1)
}

func (m *MockProjectRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockProjectRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, transaction domain.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByProject(ctx context.Context, projectID string, limit, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, projectID, limit, offset)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) ListAllTransactionsByProject(ctx context.Context, projectID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, projectID)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) CountTransactionsByProject(ctx context.Context, projectID string) (int, error) {
	args := m.Called(ctx, projectID)
	return args.Int(0), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, transaction domain.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

// --- Mock AccessRequestRepository ---

type MockAccessRequestRepository struct {
	mock.Mock
}

var _ portsrepo.AccessRequestRepositoryWithTx = (*MockAccessRequestRepository)(nil)

func (m *MockAccessRequestRepository) SaveRequest(ctx context.Context, request domain.AccessRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockAccessRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.AccessRequest, error) {
	args := m.Called(ctx, requestID)
	var request *domain.AccessRequest
	if args.Get(0) != nil {
		request = args.Get(0).(*domain.AccessRequest)
	}
	return request, args.Error(1)
}

func (m *MockAccessRequestRepository) FindRequestByProjectAndUser(ctx context.Context, projectID, userID string) (*domain.AccessRequest, error) {
	args := m.Called(ctx, projectID, userID)
	var request *domain.AccessRequest
	if args.Get(0) != nil {
		request = args.Get(0).(*domain.AccessRequest)
	}
	return request, args.Error(1)
}

func (m *MockAccessRequestRepository) ListPendingRequests(ctx context.Context) ([]domain.AccessRequest, error) {
	args := m.Called(ctx)
	var requests []domain.AccessRequest
	if args.Get(0) != nil {
		requests = args.Get(0).([]domain.AccessRequest)
	}
	return requests, args.Error(1)
}

func (m *MockAccessRequestRepository) ListPendingRequestsByOwner(ctx context.Context, ownerID string) ([]domain.AccessRequest, error) {
	args := m.Called(ctx, ownerID)
	var requests []domain.AccessRequest
	if args.Get(0) != nil {
		requests = args.Get(0).([]domain.AccessRequest)
	}
	return requests, args.Error(1)
}

func (m *MockAccessRequestRepository) ResolveRequest(ctx context.Context, requestID string, status domain.AccessRequestStatus, resolvedBy string, resolvedAt time.Time) error {
	args := m.Called(ctx, requestID, status, resolvedBy, resolvedAt)
	return args.Error(0)
}

func (m *MockAccessRequestRepository) ApproveRequestAndAddMember(ctx context.Context, request domain.AccessRequest, resolvedBy string, resolvedAt time.Time) error {
	args := m.Called(ctx, request, resolvedBy, resolvedAt)
	return args.Error(0)
}

func (m *MockAccessRequestRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	var tx pgx.Tx
	if args.Get(0) != nil {
		tx = args.Get(0).(pgx.Tx)
	}
	return tx, args.Error(1)
}

func (m *MockAccessRequestRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccessRequestRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) SumProjectBudgets(ctx context.Context, projectIDs []string) (decimal.Decimal, error) {
	args := m.Called(ctx, projectIDs)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) SumSpend(ctx context.Context, projectIDs []string, monthStart time.Time) (portsrepo.SpendTotals, error) {
	args := m.Called(ctx, projectIDs, monthStart)
	return args.Get(0).(portsrepo.SpendTotals), args.Error(1)
}

func (m *MockReportingRepository) ListTransactionsForExport(ctx context.Context, projectID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, projectID)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

// --- Mock ReceiptStore ---

type MockReceiptStore struct {
	mock.Mock
}

var _ portsrepo.ReceiptStore = (*MockReceiptStore)(nil)

func (m *MockReceiptStore) SaveReceipt(ctx context.Context, originalName string, content io.Reader) (string, error) {
	args := m.Called(ctx, originalName, content)
	return args.String(0), args.Error(1)
}

func (m *MockReceiptStore) RemoveReceipt(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}
