package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CacheInspector reports the pipelines built so far.
type CacheInspector interface {
	CachedLanguages() []string
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	cache CacheInspector
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(cache CacheInspector) *HealthHandler {
	return &HealthHandler{cache: cache}
}

type HealthResponse struct {
	Status       string   `json:"status"`
	CachedModels int      `json:"cached_models"`
	Languages    []string `json:"languages"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	langs := h.cache.CachedLanguages()
	c.JSON(http.StatusOK, HealthResponse{
		Status:       "ok",
		CachedModels: len(langs),
		Languages:    langs,
	})
}
