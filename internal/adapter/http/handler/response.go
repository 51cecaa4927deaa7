package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"unitoken/internal/domain"
)

// Response is the envelope every endpoint writes. Data is set on success,
// Error on failure.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    MetaInfo    `json:"meta"`
}

// ErrorInfo describes a failed request. Detection is set when the text was
// classified before it was rejected, so callers can see the language and
// score that failed validation.
type ErrorInfo struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Detection *domain.LanguageResult `json:"detection,omitempty"`
}

type MetaInfo struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}

func newMeta(c *gin.Context) MetaInfo {
	requestID := c.GetString("request_id")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return MetaInfo{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID,
	}
}

func respondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Data:    data,
		Meta:    newMeta(c),
	})
}

func respondError(c *gin.Context, status int, info ErrorInfo) {
	c.JSON(status, Response{
		Success: false,
		Error:   &info,
		Meta:    newMeta(c),
	})
}
