package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"unitoken/internal/port"
	"unitoken/internal/usecase"
)

func TestMapUsecaseError(t *testing.T) {
	tests := []struct {
		name               string
		err                error
		expectedStatusCode int
		expectedCode       string
		expectedMessage    string
	}{
		{
			name:               "below threshold",
			err:                fmt.Errorf("%w: score 0.5000, threshold 0.9000", usecase.ErrBelowThreshold),
			expectedStatusCode: http.StatusUnprocessableEntity,
			expectedCode:       "BELOW_THRESHOLD",
			expectedMessage:    "language score below threshold: score 0.5000, threshold 0.9000",
		},
		{
			name:               "unsupported language",
			err:                fmt.Errorf("%w: %q", usecase.ErrUnsupportedLanguage, "xx"),
			expectedStatusCode: http.StatusUnprocessableEntity,
			expectedCode:       "UNSUPPORTED_LANGUAGE",
			expectedMessage:    `unsupported language: "xx"`,
		},
		{
			name:               "missing capability",
			err:                usecase.ErrMissingCapability,
			expectedStatusCode: http.StatusBadRequest,
			expectedCode:       "INVALID_REQUEST",
			expectedMessage:    "pipeline lacks sentence segmentation",
		},
		{
			name:               "nil pipeline",
			err:                fmt.Errorf("%w: the supplied pipeline for %q is nil", usecase.ErrInvalidModel, "en"),
			expectedStatusCode: http.StatusBadRequest,
			expectedCode:       "INVALID_REQUEST",
			expectedMessage:    `invalid pipeline: the supplied pipeline for "en" is nil`,
		},
		{
			name:               "run not found",
			err:                fmt.Errorf("%w: abc", port.ErrRunNotFound),
			expectedStatusCode: http.StatusNotFound,
			expectedCode:       "NOT_FOUND",
			expectedMessage:    "run not found",
		},
		{
			name:               "unknown error",
			err:                errors.New("some unknown error"),
			expectedStatusCode: http.StatusInternalServerError,
			expectedCode:       "INTERNAL_ERROR",
			expectedMessage:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := MapUsecaseError(tt.err)
			assert.Equal(t, tt.expectedStatusCode, resp.StatusCode)
			assert.Equal(t, tt.expectedCode, resp.Code)
			assert.Equal(t, tt.expectedMessage, resp.Message)
		})
	}
}

func TestHandleUsecaseError_RecordsInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleUsecaseError(c, errors.New("internal"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Len(t, c.Errors, 1)
}

func TestHandleInvalidRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleInvalidRequest(c, "bad input")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"INVALID_REQUEST"`)
	assert.Contains(t, w.Body.String(), "bad input")
}
