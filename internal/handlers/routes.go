package handlers

import (
	"time"

	"business-hub/backend/internal/config"
	"business-hub/backend/internal/middleware"
	"business-hub/backend/internal/monitoring"
	"business-hub/backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes wires the task module's API surface onto the router.
func RegisterRoutes(router *gin.Engine, cfg *config.Config, db *gorm.DB,
	taskService services.TaskService,
	dashboardService services.DashboardService,
	calendarService services.CalendarService,
	settingsService services.SettingsService,
) {
	router.Use(middleware.RecoveryWithLog())
	router.Use(monitoring.MetricsMiddleware())
	router.Use(middleware.RateLimit(cfg.RateLimit))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", monitoring.HealthHandler())
	router.GET("/metrics", monitoring.MetricsHandler())

	taskHandler := NewTaskHandler(db, taskService)
	dashboardHandler := NewDashboardHandler(db, dashboardService)
	calendarHandler := NewCalendarHandler(db, calendarService)
	settingsHandler := NewSettingsHandler(db, settingsService)

	api := router.Group("/api/v1")
	api.Use(middleware.Session(cfg.Auth.JWTSecret))
	{
		api.GET("/tasks", taskHandler.GetTasks)
		api.POST("/tasks", taskHandler.CreateTask)
		api.GET("/tasks/:id", taskHandler.GetTaskByID)
		api.PUT("/tasks/:id", taskHandler.UpdateTask)
		api.DELETE("/tasks/:id", taskHandler.DeleteTask)
		api.POST("/tasks/:id/complete", taskHandler.CompleteTask)
		api.POST("/tasks/:id/reopen", taskHandler.ReopenTask)
		api.POST("/tasks/bulk", taskHandler.BulkAction)

		api.GET("/dashboard", dashboardHandler.GetDashboard)
		api.GET("/calendar", calendarHandler.GetMonth)

		api.GET("/settings", settingsHandler.GetSettings)
		api.PUT("/settings", settingsHandler.UpdateSettings)
	}
}
