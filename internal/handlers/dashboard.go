package handlers

import (
	"net/http"
	"time"

	"business-hub/backend/internal/middleware"
	"business-hub/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	db        *gorm.DB
	dashboard services.DashboardService
}

func NewDashboardHandler(db *gorm.DB, dashboard services.DashboardService) *DashboardHandler {
	return &DashboardHandler{db: db, dashboard: dashboard}
}

// GetDashboard recomputes the hub's counters from storage for every render.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	hubID, ok := middleware.HubID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "hub scope not resolved"})
		return
	}

	summary, err := h.dashboard.Summary(h.db, hubID, time.Now())
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
