package services

import (
	"errors"
	"strings"
	"time"

	"business-hub/backend/internal/models"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// followUpOffset is the fixed delay between completing a call or meeting and
// the due date of the follow-up it spawns.
const followUpOffset = 72 * time.Hour

var perPageChoices = map[int]bool{10: true, 25: true, 50: true, 100: true}

// taskSortFields whitelists caller-supplied sort fields to column names.
var taskSortFields = map[string]string{
	"title":    "title",
	"due_date": "due_date",
	"priority": "priority",
	"status":   "status",
	"type":     "task_type",
	"created":  "created_at",
}

type CreateTaskInput struct {
	Title                 string              `json:"title" binding:"required"`
	Description           string              `json:"description"`
	TaskType              models.TaskType     `json:"task_type"`
	Priority              models.TaskPriority `json:"priority"`
	DueDate               *time.Time          `json:"due_date"`
	AssignedTo            *uuid.UUID          `json:"assigned_to"`
	CustomerID            *uuid.UUID          `json:"customer_id"`
	DurationMinutes       *int                `json:"duration_minutes"`
	Location              string              `json:"location"`
	ReminderBeforeMinutes *int                `json:"reminder_before_minutes"`
	IsRecurring           bool                `json:"is_recurring"`
	RecurrenceRule        string              `json:"recurrence_rule"`
}

type UpdateTaskInput struct {
	Title                 string              `json:"title" binding:"required"`
	Description           string              `json:"description"`
	TaskType              models.TaskType     `json:"task_type"`
	Priority              models.TaskPriority `json:"priority"`
	Status                models.TaskStatus   `json:"status"`
	DueDate               *time.Time          `json:"due_date"`
	AssignedTo            *uuid.UUID          `json:"assigned_to"`
	CustomerID            *uuid.UUID          `json:"customer_id"`
	DurationMinutes       *int                `json:"duration_minutes"`
	Result                string              `json:"result"`
	Location              string              `json:"location"`
	ReminderBeforeMinutes *int                `json:"reminder_before_minutes"`
}

type ListTasksInput struct {
	Search    string
	Type      models.TaskType
	Status    models.TaskStatus
	Priority  models.TaskPriority
	SortField string
	SortDir   string
	Page      int
	PerPage   int
}

type BulkAction string

const (
	BulkComplete BulkAction = "complete"
	BulkDelete   BulkAction = "delete"
)

type TaskService interface {
	CreateTask(db *gorm.DB, hubID uuid.UUID, actor *uuid.UUID, in CreateTaskInput) (*models.Task, error)
	GetTaskByID(db *gorm.DB, hubID, taskID uuid.UUID) (*models.Task, error)
	GetTaskByIDAny(db *gorm.DB, hubID, taskID uuid.UUID) (*models.Task, error)
	GetTasksPaginated(db *gorm.DB, hubID uuid.UUID, in ListTasksInput) ([]models.Task, int64, error)
	UpdateTask(db *gorm.DB, hubID, taskID uuid.UUID, actor *uuid.UUID, in UpdateTaskInput) (*models.Task, error)
	CompleteTask(db *gorm.DB, hubID, taskID uuid.UUID, actor *uuid.UUID) (*models.Task, error)
	ReopenTask(db *gorm.DB, hubID, taskID uuid.UUID, actor *uuid.UUID) (*models.Task, error)
	DeleteTask(db *gorm.DB, hubID, taskID uuid.UUID) error
	BulkApply(db *gorm.DB, hubID uuid.UUID, taskIDs []uuid.UUID, action BulkAction) (int64, error)
}

type TaskServiceImpl struct {
	settings  SettingsService
	customers CustomerDirectory
	log       *zap.Logger
	now       func() time.Time
}

func NewTaskService(settings SettingsService, customers CustomerDirectory, log *zap.Logger) *TaskServiceImpl {
	return &TaskServiceImpl{
		settings:  settings,
		customers: customers,
		log:       log,
		now:       time.Now,
	}
}

// WithClock overrides the service clock. Tests use it to pin "now".
func (s *TaskServiceImpl) WithClock(now func() time.Time) *TaskServiceImpl {
	s.now = now
	return s
}

func (s *TaskServiceImpl) CreateTask(db *gorm.DB, hubID uuid.UUID, actor *uuid.UUID, in CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalidField("title", "must not be empty")
	}
	if in.TaskType == "" {
		in.TaskType = models.TypeTask
	}
	if !in.TaskType.Valid() {
		return nil, invalidField("task_type", "unknown value")
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	if !in.Priority.Valid() {
		return nil, invalidField("priority", "unknown value")
	}
	if in.DurationMinutes != nil && *in.DurationMinutes < 0 {
		return nil, invalidField("duration_minutes", "must not be negative")
	}
	reminder := 30
	if in.ReminderBeforeMinutes != nil {
		if *in.ReminderBeforeMinutes < 0 {
			return nil, invalidField("reminder_before_minutes", "must not be negative")
		}
		reminder = *in.ReminderBeforeMinutes
	}

	task := models.Task{
		ID:                    uuid.Must(uuid.NewV4()),
		HubID:                 hubID,
		Title:                 title,
		Description:           strings.TrimSpace(in.Description),
		TaskType:              in.TaskType,
		Priority:              in.Priority,
		Status:                models.StatusPending,
		DueDate:               in.DueDate,
		AssignedTo:            in.AssignedTo,
		CustomerID:            s.resolveCustomer(db, hubID, in.CustomerID),
		DurationMinutes:       in.DurationMinutes,
		Location:              strings.TrimSpace(in.Location),
		IsRecurring:           in.IsRecurring,
		RecurrenceRule:        in.RecurrenceRule,
		ReminderBeforeMinutes: reminder,
		CreatedBy:             actor,
		UpdatedBy:             actor,
	}
	if err := db.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// resolveCustomer nullifies references that do not resolve inside the hub.
// Directory failures never abort the task operation.
func (s *TaskServiceImpl) resolveCustomer(db *gorm.DB, hubID uuid.UUID, customerID *uuid.UUID) *uuid.UUID {
	if customerID == nil {
		return nil
	}
	customer, err := s.customers.Lookup(db, hubID, *customerID)
	if err != nil {
		s.log.Warn("customer lookup failed, dropping reference",
			zap.String("customer_id", customerID.String()), zap.Error(err))
		return nil
	}
	if customer == nil {
		return nil
	}
	return customerID
}

func (s *TaskServiceImpl) GetTaskByID(db *gorm.DB, hubID, taskID uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := db.Where("hub_id = ? AND id = ?", hubID, taskID).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTaskByIDAny also returns soft-deleted rows. Administrative use only.
func (s *TaskServiceImpl) GetTaskByIDAny(db *gorm.DB, hubID, taskID uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := db.Unscoped().Where("hub_id = ? AND id = ?", hubID, taskID).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *TaskServiceImpl) GetTasksPaginated(db *gorm.DB, hubID uuid.UUID, in ListTasksInput) ([]models.Task, int64, error) {
	query := db.Model(&models.Task{}).Where("hub_id = ?", hubID)

	if in.Type != "" {
		query = query.Where("task_type = ?", in.Type)
	}
	if in.Status != "" {
		query = query.Where("status = ?", in.Status)
	}
	if in.Priority != "" {
		query = query.Where("priority = ?", in.Priority)
	}
	if search := strings.TrimSpace(in.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if column, ok := taskSortFields[in.SortField]; ok {
		direction := "ASC"
		if in.SortDir == "desc" {
			direction = "DESC"
		}
		query = query.Order(column + " " + direction)
	} else {
		query = query.Order("due_date DESC").Order("created_at DESC")
	}

	page := in.Page
	if page < 1 {
		page = 1
	}
	perPage := in.PerPage
	if !perPageChoices[perPage] {
		perPage = 10
	}

	var tasks []models.Task
	err := query.Offset((page - 1) * perPage).Limit(perPage).Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

func (s *TaskServiceImpl) UpdateTask(db *gorm.DB, hubID, taskID uuid.UUID, actor *uuid.UUID, in UpdateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalidField("title", "must not be empty")
	}
	if in.TaskType != "" && !in.TaskType.Valid() {
		return nil, invalidField("task_type", "unknown value")
	}
	if in.Priority != "" && !in.Priority.Valid() {
		return nil, invalidField("priority", "unknown value")
	}
	if in.Status != "" && !in.Status.Valid() {
		return nil, invalidField("status", "unknown value")
	}
	if in.DurationMinutes != nil && *in.DurationMinutes < 0 {
		return nil, invalidField("duration_minutes", "must not be negative")
	}
	if in.ReminderBeforeMinutes != nil && *in.ReminderBeforeMinutes < 0 {
		return nil, invalidField("reminder_before_minutes", "must not be negative")
	}

	task, err := s.GetTaskByID(db, hubID, taskID)
	if err != nil {
		return nil, err
	}

	task.Title = title
	task.Description = strings.TrimSpace(in.Description)
	if in.TaskType != "" {
		task.TaskType = in.TaskType
	}
	if in.Priority != "" {
		task.Priority = in.Priority
	}
	task.DueDate = in.DueDate
	task.AssignedTo = in.AssignedTo
	task.CustomerID = s.resolveCustomer(db, hubID, in.CustomerID)
	task.DurationMinutes = in.DurationMinutes
	task.Result = strings.TrimSpace(in.Result)
	task.Location = strings.TrimSpace(in.Location)
	if in.ReminderBeforeMinutes != nil {
		task.ReminderBeforeMinutes = *in.ReminderBeforeMinutes
	}
	task.UpdatedBy = actor

	// Status and completed_at always move together.
	if in.Status != "" && in.Status != task.Status {
		if in.Status == models.StatusCompleted {
			now := s.now()
			task.CompletedAt = &now
		} else {
			task.CompletedAt = nil
		}
		task.Status = in.Status
	}

	if err := db.Save(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

// CompleteTask stamps the task completed, then best-effort schedules a
// follow-up per the hub's settings. Scheduling failures are logged and
// swallowed: completion is the primary operation and always wins.
func (s *TaskServiceImpl) CompleteTask(db *gorm.DB, hubID, taskID uuid.UUID, actor *uuid.UUID) (*models.Task, error) {
	task, err := s.GetTaskByID(db, hubID, taskID)
	if err != nil {
		return nil, err
	}

	wasOpen := task.Status.Open()
	now := s.now()
	task.Status = models.StatusCompleted
	task.CompletedAt = &now
	task.UpdatedBy = actor
	err = db.Model(task).Updates(map[string]interface{}{
		"status":       task.Status,
		"completed_at": task.CompletedAt,
		"updated_by":   task.UpdatedBy,
	}).Error
	if err != nil {
		return nil, err
	}

	// Only a genuine open -> completed transition schedules a follow-up;
	// re-completing an already-completed task does not.
	if wasOpen {
		if err := s.scheduleFollowUp(db, hubID, task, actor, now); err != nil {
			s.log.Warn("follow-up scheduling failed",
				zap.String("hub_id", hubID.String()),
				zap.String("task_id", task.ID.String()),
				zap.Error(err))
		}
	}
	return task, nil
}

func (s *TaskServiceImpl) scheduleFollowUp(db *gorm.DB, hubID uuid.UUID, completed *models.Task, actor *uuid.UUID, now time.Time) error {
	settings, err := s.settings.GetOrCreate(db, hubID)
	if err != nil {
		return err
	}
	if !settings.AutoCreateFollowUp {
		return nil
	}
	if completed.TaskType != models.TypeCall && completed.TaskType != models.TypeMeeting {
		return nil
	}

	due := now.Add(followUpOffset)
	followUp := models.Task{
		ID:                    uuid.Must(uuid.NewV4()),
		HubID:                 hubID,
		Title:                 "Follow-up: " + completed.Title,
		TaskType:              models.TypeFollowUp,
		Priority:              models.PriorityMedium,
		Status:                models.StatusPending,
		DueDate:               &due,
		CustomerID:            completed.CustomerID,
		ReminderBeforeMinutes: settings.DefaultReminderMinutes,
		CreatedBy:             actor,
		UpdatedBy:             actor,
	}
	if err := db.Create(&followUp).Error; err != nil {
		return err
	}
	s.log.Info("follow-up created",
		zap.String("hub_id", hubID.String()),
		zap.String("source_task_id", completed.ID.String()),
		zap.String("follow_up_id", followUp.ID.String()))
	return nil
}

// ReopenTask moves a task back to pending and clears completed_at. Any
// follow-up spawned by the earlier completion is left alone.
func (s *TaskServiceImpl) ReopenTask(db *gorm.DB, hubID, taskID uuid.UUID, actor *uuid.UUID) (*models.Task, error) {
	task, err := s.GetTaskByID(db, hubID, taskID)
	if err != nil {
		return nil, err
	}
	task.Status = models.StatusPending
	task.CompletedAt = nil
	task.UpdatedBy = actor
	err = db.Model(task).Updates(map[string]interface{}{
		"status":       models.StatusPending,
		"completed_at": nil,
		"updated_by":   actor,
	}).Error
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskServiceImpl) DeleteTask(db *gorm.DB, hubID, taskID uuid.UUID) error {
	result := db.Where("hub_id = ?", hubID).Delete(&models.Task{}, "id = ?", taskID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// BulkApply runs one set-oriented update over the hub's non-deleted rows.
// The batch is not transactional; partially applied batches are acceptable.
func (s *TaskServiceImpl) BulkApply(db *gorm.DB, hubID uuid.UUID, taskIDs []uuid.UUID, action BulkAction) (int64, error) {
	if len(taskIDs) == 0 {
		return 0, nil
	}
	scope := db.Model(&models.Task{}).Where("hub_id = ? AND id IN ?", hubID, taskIDs)

	switch action {
	case BulkComplete:
		now := s.now()
		result := scope.Updates(map[string]interface{}{
			"status":       models.StatusCompleted,
			"completed_at": now,
		})
		return result.RowsAffected, result.Error
	case BulkDelete:
		result := db.Where("hub_id = ? AND id IN ?", hubID, taskIDs).Delete(&models.Task{})
		return result.RowsAffected, result.Error
	default:
		return 0, invalidField("action", "must be complete or delete")
	}
}
