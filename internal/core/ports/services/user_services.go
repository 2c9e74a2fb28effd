package services

import (
	"context"

	"github.com/budgetdash/budget_dash_app/internal/core/domain"
	"github.com/budgetdash/budget_dash_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a specific user by their ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a user by their unique email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users. Admin only.
	ListUsers(ctx context.Context, actor domain.Actor, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// RegisterUser creates a new local user with a hashed password.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// FindOrCreateOAuthUser looks up a user by provider identity, creating a
	// USER-role account on first sign-in.
	FindOrCreateOAuthUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error)

	// UpdateUser updates a user's own details.
	UpdateUser(ctx context.Context, actor domain.Actor, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// DeactivateUser soft-deletes an account. Self or admin only; finders
	// stop returning the user once marked.
	DeactivateUser(ctx context.Context, actor domain.Actor, userID string) error
}

// AuthenticatorSvc verifies login credentials.
type AuthenticatorSvc interface {
	// AuthenticateUser checks email+password and returns the user on success.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	AuthenticatorSvc
}
