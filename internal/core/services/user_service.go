package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/budgetdash/budget_dash_app/internal/apperrors"
	"github.com/budgetdash/budget_dash_app/internal/core/domain"
	portsrepo "github.com/budgetdash/budget_dash_app/internal/core/ports/repositories"
	portssvc "github.com/budgetdash/budget_dash_app/internal/core/ports/services"
	"github.com/budgetdash/budget_dash_app/internal/dto"
	"github.com/budgetdash/budget_dash_app/internal/middleware"
	"github.com/budgetdash/budget_dash_app/internal/utils"
)

// UserService handles business logic related to users and credentials.
type UserService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new UserService.
func NewUserService(ur portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &UserService{
		userRepo: ur,
	}
}

// Ensure UserService implements the portssvc.UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*UserService)(nil)

// RegisterUser creates a new local user with a hashed password.
func (s *UserService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Duplicate email check up front for a friendly error; the unique index
	// still backstops races.
	_, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err == nil {
		logger.Warn("Registration attempted with existing email")
		return nil, apperrors.NewConflictError("email is already registered")
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check email uniqueness", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	newUserID := uuid.NewString()

	user := domain.User{
		UserID:       newUserID,
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: &hash,
		Role:         domain.RoleUser,
		AuthProvider: domain.ProviderLocal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     newUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: newUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		logger.Error("Failed to save user in repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	logger.Info("User registered successfully", slog.String("user_id", newUserID))
	return &user, nil
}

// AuthenticateUser checks email and password and returns the user on success.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same error as a wrong password so the response doesn't leak
			// which emails are registered.
			return nil, apperrors.ErrUnauthorized
		}
		logger.Error("Failed to look up user for authentication", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}

	if user.PasswordHash == nil {
		logger.Warn("Password login attempted for OAuth-provisioned account", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}

	if !utils.CheckPasswordHash(password, *user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}

	return user, nil
}

// FindOrCreateOAuthUser looks up a user by provider identity, creating a
// USER-role account on first sign-in.
func (s *UserService) FindOrCreateOAuthUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !info.EmailVerified {
		return nil, apperrors.NewValidationFailedError("google account email is not verified")
	}

	user, err := s.userRepo.FindUserByProviderDetails(ctx, domain.ProviderGoogle, info.Subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to look up OAuth user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up OAuth user: %w", err)
	}

	// First sign-in: if the email already belongs to a local account, link
	// rather than duplicate.
	if existing, err := s.userRepo.FindUserByEmail(ctx, info.Email); err == nil {
		logger.Info("Google sign-in for existing local account", slog.String("user_id", existing.UserID))
		return existing, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email for OAuth user: %w", err)
	}

	now := time.Now()
	newUserID := uuid.NewString()
	subject := info.Subject

	user = &domain.User{
		UserID:         newUserID,
		Email:          info.Email,
		Name:           info.Name,
		Role:           domain.RoleUser,
		AuthProvider:   domain.ProviderGoogle,
		ProviderUserID: &subject,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     newUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: newUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, *user); err != nil {
		logger.Error("Failed to provision OAuth user", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to provision OAuth user: %w", err)
	}

	logger.Info("OAuth user provisioned", slog.String("user_id", newUserID))
	return user, nil
}

// GetUserByID retrieves a specific user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by their unique email.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// ListUsers retrieves a paginated list of users. Admin only.
func (s *UserService) ListUsers(ctx context.Context, actor domain.Actor, limit, offset int) ([]domain.User, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.NewForbiddenError("only admins may list users")
	}

	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateUser updates a user's own details.
func (s *UserService) UpdateUser(ctx context.Context, actor domain.Actor, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if actor.UserID != userID && !actor.IsAdmin() {
		return nil, apperrors.NewForbiddenError("users may only update their own details")
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find user %s for update: %w", userID, err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = actor.UserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		logger.Error("Failed to update user in repository", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user %s: %w", userID, err)
	}

	return user, nil
}

// DeactivateUser soft-deletes an account. The deleted_at mark keeps the row
// for audit while the finders stop returning it.
func (s *UserService) DeactivateUser(ctx context.Context, actor domain.Actor, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if actor.UserID != userID && !actor.IsAdmin() {
		return apperrors.NewForbiddenError("users may only deactivate their own account")
	}

	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now(), actor.UserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		logger.Error("Failed to mark user as deleted", slog.String("error", err.Error()), slog.String("user_id", userID))
		return fmt.Errorf("failed to deactivate user %s: %w", userID, err)
	}

	logger.Info("User deactivated", slog.String("user_id", userID))
	return nil
}
