package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"agrolink/pkg/errors"
	"agrolink/pkg/response"
)

const (
	// ContextUserID holds the authenticated user id (int64).
	ContextUserID = "uid"
	// ContextToken holds the raw bearer token.
	ContextToken = "token"
)

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (int64, error)
}

type AuthMiddleware struct {
	tokens TokenVerifier
}

func NewAuthMiddleware(tokens TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
	}
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := BearerToken(c)
		if err != nil {
			return response.Error(c, err)
		}

		userID, err := m.tokens.Verify(c.Request().Context(), token)
		if err != nil {
			return response.Error(c, err)
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextToken, token)

		return next(c)
	}
}

// VerifyToken checks a token outside the header flow, e.g. a websocket query parameter.
func (m *AuthMiddleware) VerifyToken(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, errors.Unauthorized("Token is required", nil)
	}
	return m.tokens.Verify(ctx, token)
}

func BearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", errors.Unauthorized("Authorization header is required", nil)
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.Unauthorized("Invalid authorization format", nil)
	}

	return parts[1], nil
}
