package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/logger"
)

// ErrorHandler renders the last error a handler attached with c.Error as
// the standard {"error":{"code","message"}} body, unless a response has
// already been written.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		writeError(c, c.Errors.Last().Err)
	}
}

// writeError maps err to an AppError. Anything that is not an AppError is
// reported as INTERNAL_ERROR and only its text goes to the log.
func writeError(c *gin.Context, err error) {
	appErr := apperrors.ErrInternalServer
	if !errors.As(err, &appErr) {
		logger.Get().Errorw("unexpected error",
			"error", err,
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
	} else if appErr.Internal != nil {
		logger.Get().Errorw("request failed",
			"code", appErr.Code,
			"internal", appErr.Internal,
			"request_id", c.GetString(requestIDKey),
			"path", c.Request.URL.Path,
		)
	}

	c.JSON(appErr.StatusCode, errorBody(appErr))
}

func errorBody(e *apperrors.AppError) gin.H {
	return gin.H{"error": gin.H{"code": e.Code, "message": e.Message}}
}

func abortWithError(c *gin.Context, err error) {
	writeError(c, err)
	c.Abort()
}
