package handlers

import (
	"net/http"

	"business-hub/backend/internal/middleware"
	"business-hub/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SettingsHandler struct {
	db       *gorm.DB
	settings services.SettingsService
}

func NewSettingsHandler(db *gorm.DB, settings services.SettingsService) *SettingsHandler {
	return &SettingsHandler{db: db, settings: settings}
}

// GetSettings returns the hub's settings, creating the row with defaults on
// first access.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	hubID, ok := middleware.HubID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "hub scope not resolved"})
		return
	}

	settings, err := h.settings.GetOrCreate(h.db, hubID)
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	hubID, ok := middleware.HubID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "hub scope not resolved"})
		return
	}

	var input services.SettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.settings.Update(h.db, hubID, input)
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
