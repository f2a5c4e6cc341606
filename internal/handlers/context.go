package handlers

import (
	"fmt"
	"net/http"

	apperrors "estatehub/internal/errors"

	"github.com/gin-gonic/gin"
)

// UserIDKey is where the auth middleware stores the authenticated user's id.
const UserIDKey = "user_id"

var errUnauthenticated = apperrors.NewAppError(
	"no authenticated user in request context",
	apperrors.MsgUnauthenticated,
	apperrors.ErrCodeUnauthenticated,
	http.StatusUnauthorized,
	nil,
)

// currentUserID returns the authenticated user's id, recording an error on c when absent.
func currentUserID(c *gin.Context) (string, bool) {
	id := c.GetString(UserIDKey)
	if id == "" {
		_ = c.Error(errUnauthenticated)
		return "", false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(fmt.Errorf("%w: invalid request body: %v", apperrors.ErrValidation, err))
		return false
	}
	return true
}
