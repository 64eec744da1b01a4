package utils

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExtractToken pulls the raw JWT from a request: auth cookie first, then
// the Authorization header. The original clients carry the token in a
// cookie; the header form exists for CLI and test traffic.
func ExtractToken(c *gin.Context, cookieName string) (string, error) {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token, nil
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", errors.New("missing auth cookie and authorization header")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}

// CurrentUserID returns the authenticated user's ID stored in the request
// context by the auth middleware.
func CurrentUserID(c *gin.Context) (uuid.UUID, error) {
	value, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, errors.New("no authenticated user in context")
	}

	userID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("invalid user ID in context")
	}

	return userID, nil
}
