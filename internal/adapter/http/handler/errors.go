package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"unitoken/internal/domain"
	"unitoken/internal/port"
	"unitoken/internal/usecase"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
}

// MapUsecaseError maps usecase errors to HTTP error responses. Validation
// errors keep their message, which carries the detected language or score.
func MapUsecaseError(err error) ErrorResponse {
	switch {
	case errors.Is(err, usecase.ErrBelowThreshold):
		return ErrorResponse{
			StatusCode: http.StatusUnprocessableEntity,
			Code:       "BELOW_THRESHOLD",
			Message:    err.Error(),
		}
	case errors.Is(err, usecase.ErrUnsupportedLanguage):
		return ErrorResponse{
			StatusCode: http.StatusUnprocessableEntity,
			Code:       "UNSUPPORTED_LANGUAGE",
			Message:    err.Error(),
		}
	case errors.Is(err, usecase.ErrMissingCapability), errors.Is(err, usecase.ErrInvalidModel):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "INVALID_REQUEST",
			Message:    err.Error(),
		}
	case errors.Is(err, port.ErrRunNotFound):
		return ErrorResponse{
			StatusCode: http.StatusNotFound,
			Code:       "NOT_FOUND",
			Message:    "run not found",
		}
	default:
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       "INTERNAL_ERROR",
			Message:    "internal server error",
		}
	}
}

// HandleUsecaseError sends the mapped error response.
func HandleUsecaseError(c *gin.Context, err error) {
	errResp := MapUsecaseError(err)
	if errResp.StatusCode >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	respondError(c, errResp.StatusCode, ErrorInfo{Code: errResp.Code, Message: errResp.Message})
}

// HandleDetectionError is HandleUsecaseError for single-text requests. A
// threshold or language rejection carries the detection that caused it.
func HandleDetectionError(c *gin.Context, err error, result domain.LanguageResult) {
	if !errors.Is(err, usecase.ErrBelowThreshold) && !errors.Is(err, usecase.ErrUnsupportedLanguage) {
		HandleUsecaseError(c, err)
		return
	}
	errResp := MapUsecaseError(err)
	respondError(c, errResp.StatusCode, ErrorInfo{
		Code:      errResp.Code,
		Message:   errResp.Message,
		Detection: &result,
	})
}

// HandleInvalidRequest handles a generic invalid request error.
func HandleInvalidRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, ErrorInfo{Code: "INVALID_REQUEST", Message: message})
}
