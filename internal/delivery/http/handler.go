package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fragancia/backend/internal/domain"
	"github.com/fragancia/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	syncService *usecase.SyncService
}

// NewHandler creates a new HTTP handler
func NewHandler(syncService *usecase.SyncService) *Handler {
	return &Handler{syncService: syncService}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "fragancia-backend",
		"version": "1.0.0",
	})
}

// RunSync triggers a full supplier sync run. With ?debug=true it fetches and
// parses a sample from each catalog instead of running the pipeline.
func (h *Handler) RunSync(c *gin.Context) {
	if h.syncService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "sync service not configured",
		})
		return
	}

	if c.Query("debug") == "true" {
		report, err := h.syncService.RunDebug(c.Request.Context())
		if err != nil {
			h.renderSyncError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
		return
	}

	summary, err := h.syncService.Run(c.Request.Context())
	if err != nil {
		h.renderSyncError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// SyncStatus returns the summary of the most recent sync run.
func (h *Handler) SyncStatus(c *gin.Context) {
	if h.syncService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "sync service not configured",
		})
		return
	}

	summary, err := h.syncService.LastRun(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "no sync run recorded",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ListMatches returns the matches staged by the latest sync run.
func (h *Handler) ListMatches(c *gin.Context) {
	if h.syncService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "sync service not configured",
		})
		return
	}

	matches, err := h.syncService.Matches(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"matches": matches,
		"count":   len(matches),
	})
}

// ListOrphans returns the orphans staged by the latest sync run, each with
// its suggestion when one exists.
func (h *Handler) ListOrphans(c *gin.Context) {
	if h.syncService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "sync service not configured",
		})
		return
	}

	orphans, err := h.syncService.Orphans(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"orphans": orphans,
		"count":   len(orphans),
	})
}

func (h *Handler) renderSyncError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSyncInProgress):
		c.JSON(http.StatusConflict, gin.H{
			"error": "a sync run is already in progress",
		})
	case errors.Is(err, domain.ErrSupplierNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrScrapeFailed):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "supplier site temporarily unavailable",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
