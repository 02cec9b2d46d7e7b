package handlers

import (
	"net/http"
	"strconv"
	"time"

	"business-hub/backend/internal/middleware"
	"business-hub/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CalendarHandler struct {
	db       *gorm.DB
	calendar services.CalendarService
}

func NewCalendarHandler(db *gorm.DB, calendar services.CalendarService) *CalendarHandler {
	return &CalendarHandler{db: db, calendar: calendar}
}

// GetMonth returns the hub's tasks for a month grouped by local date.
// Unparseable year/month fall back to the current month.
func (h *CalendarHandler) GetMonth(c *gin.Context) {
	hubID, ok := middleware.HubID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "hub scope not resolved"})
		return
	}

	now := time.Now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		year = now.Year()
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil {
		month = int(now.Month())
	}

	entries, err := h.calendar.MonthEntries(h.db, hubID, year, month)
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": month,
		"tasks": entries,
	})
}
