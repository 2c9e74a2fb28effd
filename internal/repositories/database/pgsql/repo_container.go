package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/budgetdash/budget_dash_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	projectRepo := newPgxProjectRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool)
	accessRequestRepo := newPgxAccessRequestRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:          userRepo,
		ProjectRepo:       projectRepo,
		TransactionRepo:   transactionRepo,
		AccessRequestRepo: accessRequestRepo,
		ReportingRepo:     reportingRepo,
	}
}
