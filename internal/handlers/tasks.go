package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"business-hub/backend/internal/middleware"
	"business-hub/backend/internal/models"
	"business-hub/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type TaskHandler struct {
	db          *gorm.DB
	taskService services.TaskService
}

func NewTaskHandler(db *gorm.DB, taskService services.TaskService) *TaskHandler {
	return &TaskHandler{db: db, taskService: taskService}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	hubID, ok := middleware.HubID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "hub scope not resolved"})
		return
	}

	var input services.CreateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskService.CreateTask(h.db, hubID, middleware.UserID(c), input)
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	hubID, ok := middleware.HubID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "hub scope not resolved"})
		return
	}
	id := uuid.FromStringOrNil(c.Param("id"))

	var task *models.Task
	var err error
	if c.Query("include_deleted") == "true" {
		task, err = h.taskService.GetTaskByIDAny(h.db, hubID, id)
	} else {
		task, err = h.taskService.GetTaskByID(h.db, hubID, id)
	}
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) GetTasks(c *gin.Context) {
	hubID, ok := middleware.HubID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "hub scope not resolved"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	input := services.ListTasksInput{
		Search:    c.Query("q"),
		Type:      models.TaskType(c.Query("type")),
		Status:    models.TaskStatus(c.Query("status")),
		Priority:  models.TaskPriority(c.Query("priority")),
		SortField: c.Query("sort"),
		SortDir:   c.DefaultQuery("dir", "desc"),
		Page:      page,
		PerPage:   perPage,
	}

	tasks, total, err := h.taskService.GetTasksPaginated(h.db, hubID, input)
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"total": total,
	})
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	hubID, ok := middleware.HubID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "hub scope not resolved"})
		return
	}
	id := uuid.FromStringOrNil(c.Param("id"))

	var input services.UpdateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskService.UpdateTask(h.db, hubID, id, middleware.UserID(c), input)
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) CompleteTask(c *gin.Context) {
	hubID, ok := middleware.HubID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "hub scope not resolved"})
		return
	}
	id := uuid.FromStringOrNil(c.Param("id"))

	task, err := h.taskService.CompleteTask(h.db, hubID, id, middleware.UserID(c))
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) ReopenTask(c *gin.Context) {
	hubID, ok := middleware.HubID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "hub scope not resolved"})
		return
	}
	id := uuid.FromStringOrNil(c.Param("id"))

	task, err := h.taskService.ReopenTask(h.db, hubID, id, middleware.UserID(c))
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	hubID, ok := middleware.HubID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "hub scope not resolved"})
		return
	}
	id := uuid.FromStringOrNil(c.Param("id"))

	if err := h.taskService.DeleteTask(h.db, hubID, id); err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusNoContent, nil)
}

func (h *TaskHandler) BulkAction(c *gin.Context) {
	hubID, ok := middleware.HubID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "hub scope not resolved"})
		return
	}

	var input struct {
		IDs    []uuid.UUID         `json:"ids" binding:"required"`
		Action services.BulkAction `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	affected, err := h.taskService.BulkApply(h.db, hubID, input.IDs, input.Action)
	if err != nil {
		handleTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"affected": affected})
}

func handleTaskError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "task not found",
		})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": validationErr.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to process task request",
		})
	}
}
