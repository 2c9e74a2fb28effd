package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/budgetdash/budget_dash_app/internal/apperrors"
	"github.com/budgetdash/budget_dash_app/internal/core/domain"
	portsrepo "github.com/budgetdash/budget_dash_app/internal/core/ports/repositories"
	portssvc "github.com/budgetdash/budget_dash_app/internal/core/ports/services"
	"github.com/budgetdash/budget_dash_app/internal/dto"
	"github.com/budgetdash/budget_dash_app/internal/middleware"
	"github.com/budgetdash/budget_dash_app/internal/utils/pagination"
)

// minTransactionAmount is the smallest amount a ledger entry may carry.
var minTransactionAmount = decimal.NewFromFloat(0.01)

// transactionDateLayout is the wire format for ledger entry dates.
const transactionDateLayout = "2006-01-02"

// TransactionService handles business logic for project ledger entries.
type TransactionService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
	projectRepo     portsrepo.ProjectRepositoryFacade
	receiptStore    portsrepo.ReceiptStore
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(tr portsrepo.TransactionRepositoryFacade, pr portsrepo.ProjectRepositoryFacade, rs portsrepo.ReceiptStore) portssvc.TransactionSvcFacade {
	return &TransactionService{
		transactionRepo: tr,
		projectRepo:     pr,
		receiptStore:    rs,
	}
}

// Ensure TransactionService implements the portssvc.TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*TransactionService)(nil)

// requireMembership loads the project and checks the actor can see it.
func (s *TransactionService) requireMembership(ctx context.Context, actor domain.Actor, projectID string) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
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
	return project, nil
}

// parseEntryDate parses the entry date, falling back to the current time for
// an absent or unparseable value.
func parseEntryDate(value string) time.Time {
	if value == "" {
		return time.Now()
	}
	t, err := time.Parse(transactionDateLayout, value)
	if err != nil {
		return time.Now()
	}
	return t
}

// normalizeType maps the request type string onto a TransactionType,
// defaulting to DEBIT.
func normalizeType(value string) (domain.TransactionType, error) {
	switch domain.TransactionType(value) {
	case "":
		return domain.Debit, nil
	case domain.Debit:
		return domain.Debit, nil
	case domain.Credit:
		return domain.Credit, nil
	}
	return "", fmt.Errorf("%w: transaction type must be DEBIT or CREDIT", apperrors.ErrValidation)
}

// CreateTransaction records a new ledger entry. Any project member may.
func (s *TransactionService) CreateTransaction(ctx context.Context, actor domain.Actor, projectID string, req dto.CreateTransactionRequest, receipt *dto.ReceiptUpload) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.requireMembership(ctx, actor, projectID); err != nil {
		return nil, err
	}

	if req.Amount.LessThan(minTransactionAmount) {
		return nil, fmt.Errorf("%w: amount must be at least 0.01", apperrors.ErrValidation)
	}
	if req.Category == "" {
		return nil, fmt.Errorf("%w: category is required", apperrors.ErrValidation)
	}
	txnType, err := normalizeType(req.Type)
	if err != nil {
		return nil, err
	}

	var receiptPath *string
	if receipt != nil {
		path, err := s.receiptStore.SaveReceipt(ctx, receipt.Filename, receipt.Content)
		if err != nil {
			logger.Error("Failed to store receipt", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to store receipt: %w", err)
		}
		receiptPath = &path
	}

	now := time.Now()
	transaction := domain.Transaction{
		TransactionID:   uuid.NewString(),
		ProjectID:       projectID,
		Amount:          req.Amount,
		TransactionType: txnType,
		Category:        req.Category,
		Description:     req.Description,
		Notes:           req.Notes,
		Date:            parseEntryDate(req.Date),
		ReceiptPath:     receiptPath,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.transactionRepo.SaveTransaction(ctx, transaction); err != nil {
		// The entry was not recorded; remove the stored file so it doesn't
		// leak. Removal is best effort.
		if receiptPath != nil {
			if rmErr := s.receiptStore.RemoveReceipt(ctx, *receiptPath); rmErr != nil {
				logger.Warn("Failed to clean up receipt after save failure", slog.String("error", rmErr.Error()))
			}
		}
		logger.Error("Failed to save transaction in repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	logger.Info("Transaction recorded", slog.String("transaction_id", transaction.TransactionID), slog.String("project_id", projectID))
	return &transaction, nil
}

// ListTransactions retrieves one fixed-size page of a project's entries.
// The page number is clamped into the valid range.
func (s *TransactionService) ListTransactions(ctx context.Context, actor domain.Actor, projectID string, page int) (*portssvc.TransactionPage, error) {
	if _, err := s.requireMembership(ctx, actor, projectID); err != nil {
		return nil, err
	}

	count, err := s.transactionRepo.CountTransactionsByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	window := pagination.ClampPage(page, count, pagination.DefaultPageSize)

	transactions, err := s.transactionRepo.ListTransactionsByProject(ctx, projectID, window.Size, window.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &portssvc.TransactionPage{
		Transactions: transactions,
		Page:         window.Number,
		TotalPages:   window.TotalPages,
		TotalCount:   window.TotalCount,
	}, nil
}

// UpdateTransaction updates an entry. Owner or admin only. The existing
// receipt path is kept unless a replacement file is supplied.
func (s *TransactionService) UpdateTransaction(ctx context.Context, actor domain.Actor, transactionID string, req dto.UpdateTransactionRequest, receipt *dto.ReceiptUpload) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	transaction, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindProjectByID(ctx, transaction.ProjectID)
	if err != nil {
		return nil, err
	}
	if !domain.CanEditTransactions(actor, project) {
		return nil, apperrors.NewForbiddenError("only the project owner or an admin may edit transactions")
	}

	if req.Amount.LessThan(minTransactionAmount) {
		return nil, fmt.Errorf("%w: amount must be at least 0.01", apperrors.ErrValidation)
	}
	if req.Category == "" {
		return nil, fmt.Errorf("%w: category is required", apperrors.ErrValidation)
	}
	txnType, err := normalizeType(req.Type)
	if err != nil {
		return nil, err
	}

	oldReceiptPath := transaction.ReceiptPath
	if receipt != nil {
		path, err := s.receiptStore.SaveReceipt(ctx, receipt.Filename, receipt.Content)
		if err != nil {
			logger.Error("Failed to store replacement receipt", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to store receipt: %w", err)
		}
		transaction.ReceiptPath = &path
	}

	transaction.Amount = req.Amount
	transaction.TransactionType = txnType
	transaction.Category = req.Category
	transaction.Description = req.Description
	transaction.Notes = req.Notes
	if req.Date != "" {
		transaction.Date = parseEntryDate(req.Date)
	}
	transaction.LastUpdatedAt = time.Now()
	transaction.LastUpdatedBy = actor.UserID

	if err := s.transactionRepo.UpdateTransaction(ctx, *transaction); err != nil {
		if receipt != nil && transaction.ReceiptPath != nil {
			if rmErr := s.receiptStore.RemoveReceipt(ctx, *transaction.ReceiptPath); rmErr != nil {
				logger.Warn("Failed to clean up receipt after update failure", slog.String("error", rmErr.Error()))
			}
		}
		logger.Error("Failed to update transaction in repository", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}

	// The row now points at the replacement; drop the superseded file.
	if receipt != nil && oldReceiptPath != nil {
		if rmErr := s.receiptStore.RemoveReceipt(ctx, *oldReceiptPath); rmErr != nil {
			logger.Warn("Failed to remove superseded receipt", slog.String("error", rmErr.Error()))
		}
	}

	return transaction, nil
}

// DeleteTransaction removes an entry. Owner or admin only.
func (s *TransactionService) DeleteTransaction(ctx context.Context, actor domain.Actor, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	transaction, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}

	project, err := s.projectRepo.FindProjectByID(ctx, transaction.ProjectID)
	if err != nil {
		return err
	}
	if !domain.CanEditTransactions(actor, project) {
		return apperrors.NewForbiddenError("only the project owner or an admin may delete transactions")
	}

	if err := s.transactionRepo.DeleteTransaction(ctx, transactionID); err != nil {
		return err
	}

	// The entry is gone; its receipt is no longer reachable.
	if transaction.ReceiptPath != nil {
		if rmErr := s.receiptStore.RemoveReceipt(ctx, *transaction.ReceiptPath); rmErr != nil {
			logger.Warn("Failed to remove receipt of deleted transaction", slog.String("error", rmErr.Error()))
		}
	}

	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}
