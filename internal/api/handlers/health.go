package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/td-scout/internal/services"
	"github.com/jstittsworth/td-scout/pkg/database"
)

type HealthHandler struct {
	db      *database.DB
	fetcher *services.DataFetcherService
}

func NewHealthHandler(db *database.DB, fetcher *services.DataFetcherService) *HealthHandler {
	return &HealthHandler{
		db:      db,
		fetcher: fetcher,
	}
}

// GetHealth returns basic health status - always returns 200 if server is running
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"service":   "td-scout",
	})
}

// GetReady returns readiness status - 200 only when the database answers
func (h *HealthHandler) GetReady(c *gin.Context) {
	sqlDB, err := h.db.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// GetFetchStatus reports the background schedule fetcher state
func (h *HealthHandler) GetFetchStatus(c *gin.Context) {
	if h.fetcher == nil {
		c.JSON(http.StatusOK, gin.H{"is_running": false, "enabled": false})
		return
	}
	c.JSON(http.StatusOK, h.fetcher.GetFetchStatus())
}
