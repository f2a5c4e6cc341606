package middleware

import (
	"estatehub/internal/errors"
	"estatehub/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler catches errors and returns standardized responses.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		appErr := errors.MapError(err)

		// Log technical details
		if appErr.HTTPStatus >= 500 {
			logger.GlobalLogger.Errorf("Request failed: path=%s, method=%s, client_ip=%s, request_id=%s, error=%s",
				c.Request.URL.Path,
				c.Request.Method,
				c.ClientIP(),
				c.GetString(RequestIDKey),
				appErr.TechnicalMessage)
		} else {
			logger.GlobalLogger.Debugf("Request rejected: path=%s, method=%s, status=%d, error=%s",
				c.Request.URL.Path,
				c.Request.Method,
				appErr.HTTPStatus,
				appErr.TechnicalMessage)
		}

		c.JSON(appErr.HTTPStatus, gin.H{
			"error": gin.H{
				"message": appErr.UserMessage,
				"code":    appErr.Code,
			},
		})
	}
}
