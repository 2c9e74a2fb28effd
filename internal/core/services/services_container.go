package services

import (
	portsrepo "github.com/budgetdash/budget_dash_app/internal/core/ports/repositories"
	portssvc "github.com/budgetdash/budget_dash_app/internal/core/ports/services"
	"github.com/budgetdash/budget_dash_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, receiptStore portsrepo.ReceiptStore) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Project = NewProjectService(repos.ProjectRepo, repos.UserRepo, repos.TransactionRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.ProjectRepo, receiptStore)
	container.AccessRequest = NewAccessRequestService(repos.AccessRequestRepo, repos.ProjectRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.ProjectRepo)
	container.TokenService = NewTokenService(cfg)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
