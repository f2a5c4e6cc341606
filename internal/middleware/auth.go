package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"estatehub/internal/auth"
	apperrors "estatehub/internal/errors"
	"estatehub/internal/handlers"

	"github.com/gin-gonic/gin"
)

func unauthenticated(reason string, err error) *apperrors.AppError {
	return apperrors.NewAppError(
		reason,
		apperrors.MsgUnauthenticated,
		apperrors.ErrCodeUnauthenticated,
		http.StatusUnauthorized,
		err,
	)
}

// AuthMiddleware requires a valid bearer token signed with secret.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			_ = c.Error(unauthenticated("authorization header required", nil))
			c.Abort()
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			_ = c.Error(unauthenticated("invalid authorization header format", nil))
			c.Abort()
			return
		}

		claims, err := auth.ValidateJWT(parts[1], secret)
		if err != nil {
			_ = c.Error(unauthenticated(fmt.Sprintf("token rejected: %v", err), err))
			c.Abort()
			return
		}

		// Set user info in context
		c.Set(handlers.UserIDKey, claims.UserID)
		c.Set("name", claims.Name)
		c.Set("email", claims.Email)
		c.Next()
	}
}
