package middleware

import (
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "raffle-tool-backend/internal/common/errors"
	"raffle-tool-backend/internal/common/logger"
)

// RequestID attaches a request id to the context and the response headers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// ErrorHandler recovers panics and responds with a typed internal error.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error().
			Str("request_id", requestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Interface("panic", recovered).
			Str("stack", string(debug.Stack())).
			Msg("Panic recovered")

		RespondError(c, apperrors.New(apperrors.ErrCodeInternal, "Internal server error"))
	})
}

// ErrorResponse is the JSON error envelope of the API.
type ErrorResponse struct {
	Success   bool                `json:"success"`
	Error     *apperrors.AppError `json:"error"`
	Timestamp time.Time           `json:"timestamp"`
	RequestID string              `json:"request_id"`
}

// RespondError terminates the request with the status mapped from err.
// Non-AppError values are reported as opaque internal failures so raw
// storage errors never leak to clients.
func RespondError(c *gin.Context, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.Wrap(err, apperrors.ErrCodeInternal, "Internal server error")
	}

	if appErr.IsDomain() {
		logger.Debug().
			Str("request_id", requestID(c)).
			Str("path", c.Request.URL.Path).
			Str("code", string(appErr.Code)).
			Msg(appErr.Message)
	} else {
		logger.Error().
			Err(appErr.Cause).
			Str("request_id", requestID(c)).
			Str("path", c.Request.URL.Path).
			Str("code", string(appErr.Code)).
			Msg(appErr.Message)
	}

	c.AbortWithStatusJSON(apperrors.HTTPStatus(appErr), ErrorResponse{
		Success:   false,
		Error:     appErr,
		Timestamp: time.Now(),
		RequestID: requestID(c),
	})
}

func requestID(c *gin.Context) string {
	if id, exists := c.Get("request_id"); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return "unknown"
}
