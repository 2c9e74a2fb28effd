package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/budgetdash/budget_dash_app/internal/core/domain"
)

// userIDKey is the key used to store the authenticated user's ID in the
// request context.
const userIDKey = contextKey("userID")

// userRoleKey is the key used to store the authenticated user's role in the
// request context.
const userRoleKey = contextKey("userRole")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal := c.Request.Context().Value(userIDKey)
	if userIDVal == nil {
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}

// GetActorFromContext assembles the acting user from the request context.
// The boolean is false when the request carries no authenticated user.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return domain.Actor{}, false
	}

	role := domain.RoleUser
	if roleVal, ok := c.Request.Context().Value(userRoleKey).(domain.UserRole); ok {
		role = roleVal
	}

	return domain.Actor{UserID: userID, Role: role}, true
}
