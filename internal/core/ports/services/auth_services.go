package services

import (
	"context"
	"time"

	"github.com/budgetdash/budget_dash_app/internal/core/domain"
	"golang.org/x/oauth2"
)

// TokenSvcFacade issues access tokens for authenticated users.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT carrying the user's ID and
	// role, returning the token and its expiry time.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// GoogleOAuthHandlerSvcFacade drives the Google sign-in redirect flow.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates a CSRF token for the OAuth round trip.
	GenerateStateString(ctx context.Context) (string, error)

	// GetGoogleLoginURL returns the URL to redirect the user to.
	GetGoogleLoginURL(ctx context.Context, state string) string

	// ExchangeCodeForToken exchanges an authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)

	// ValidateIDToken verifies the ID token and extracts the user identity.
	ValidateIDToken(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
}
