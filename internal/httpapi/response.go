package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIError is the body of every error response.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope wraps APIError as {"error": {...}}.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Error codes.
const (
	CodeTopicNotFound     = "topic_not_found"
	CodeLessonNotFound    = "lesson_not_found"
	CodeExerciseNotFound  = "exercise_not_found"
	CodeInvalidDifficulty = "invalid_difficulty"
	CodeInvalidHint       = "invalid_hint"
	CodeUnauthorized      = "unauthorized"
	CodeInternal          = "internal_error"
)

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	if status >= http.StatusInternalServerError {
		if err != nil {
			_ = c.Error(err)
		}
		msg = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func respondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
