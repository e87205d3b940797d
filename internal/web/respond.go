package web

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// Error codes returned in the error envelope.
const (
	codeBadRequest      = "bad_request"
	codeInputIncomplete = "input_incomplete"
	codeInProgress      = "analysis_in_progress"
	codeInputsLocked    = "inputs_locked"
	codeUnsupportedFile = "unsupported_file"
	codeAnalysisFailed  = "analysis_failed"
	codeInternal        = "internal"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// respondError aborts the request with the standard error envelope.
func respondError(c *gin.Context, logger *slog.Logger, status int, code, message string) {
	logger.Warn("http error",
		"status", status,
		"code", code,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"request_id", requestIDFromContext(c),
	)
	c.AbortWithStatusJSON(status, errorResponse{
		Error: errorBody{Code: code, Message: message},
	})
}
