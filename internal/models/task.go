package models

import (
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type TaskType string

const (
	TypeTask     TaskType = "task"
	TypeCall     TaskType = "call"
	TypeMeeting  TaskType = "meeting"
	TypeEmail    TaskType = "email"
	TypeFollowUp TaskType = "follow_up"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

func (t TaskType) Valid() bool {
	switch t {
	case TypeTask, TypeCall, TypeMeeting, TypeEmail, TypeFollowUp:
		return true
	}
	return false
}

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Open reports whether the status still counts toward due/overdue stats.
func (s TaskStatus) Open() bool {
	return s == StatusPending || s == StatusInProgress
}

type Task struct {
	ID          uuid.UUID    `json:"id" gorm:"primaryKey;type:uuid"`
	HubID       uuid.UUID    `json:"hub_id" gorm:"type:uuid;not null;index:idx_tasks_hub_status_due,priority:1"`
	Title       string       `json:"title" gorm:"not null"`
	Description string       `json:"description"`
	TaskType    TaskType     `json:"task_type" gorm:"not null;default:'task';index"`
	Priority    TaskPriority `json:"priority" gorm:"not null;default:'medium';index"`
	Status      TaskStatus   `json:"status" gorm:"not null;default:'pending';index:idx_tasks_hub_status_due,priority:2"`

	DueDate     *time.Time `json:"due_date" gorm:"index:idx_tasks_hub_status_due,priority:3"`
	CompletedAt *time.Time `json:"completed_at"`

	AssignedTo *uuid.UUID `json:"assigned_to" gorm:"type:uuid;index"`
	CustomerID *uuid.UUID `json:"customer_id" gorm:"type:uuid;index"`

	DurationMinutes *int   `json:"duration_minutes"`
	Result          string `json:"result"`
	Location        string `json:"location"`

	// Stored for future recurrence support, never expanded into instances.
	IsRecurring    bool   `json:"is_recurring" gorm:"default:false"`
	RecurrenceRule string `json:"recurrence_rule,omitempty"`

	ReminderBeforeMinutes int `json:"reminder_before_minutes" gorm:"default:30"`

	CreatedAt time.Time      `json:"created_at"`
	CreatedBy *uuid.UUID     `json:"created_by" gorm:"type:uuid"`
	UpdatedAt time.Time      `json:"updated_at"`
	UpdatedBy *uuid.UUID     `json:"updated_by" gorm:"type:uuid"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Task) TableName() string {
	return "tasks"
}

// IsOverdue reports whether the task is past its due date and still open.
// Completed and cancelled tasks are never overdue.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || !t.Status.Open() {
		return false
	}
	return t.DueDate.Before(now)
}

// IsDueToday reports whether the due date falls on today's calendar day in
// the given location, regardless of status.
func (t *Task) IsDueToday(now time.Time, loc *time.Location) bool {
	if t.DueDate == nil {
		return false
	}
	dy, dm, dd := t.DueDate.In(loc).Date()
	ny, nm, nd := now.In(loc).Date()
	return dy == ny && dm == nm && dd == nd
}

func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// PriorityRank returns the sort rank of the task's priority, lower meaning
// more urgent. Unknown values rank as medium so rows written before the
// enum was enforced still sort sensibly.
func (t *Task) PriorityRank() int {
	switch t.Priority {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityLow:
		return 3
	default:
		return 2
	}
}

// TypeIcon returns the icon name the UI renders for the task type.
func (t *Task) TypeIcon() string {
	switch t.TaskType {
	case TypeCall:
		return "call-outline"
	case TypeMeeting:
		return "people-outline"
	case TypeEmail:
		return "mail-outline"
	case TypeFollowUp:
		return "arrow-redo-outline"
	default:
		return "checkbox-outline"
	}
}

// PriorityColor returns the color class for the priority level.
func (t *Task) PriorityColor() string {
	switch t.Priority {
	case PriorityLow:
		return "success"
	case PriorityHigh:
		return "warning"
	case PriorityUrgent:
		return "error"
	default:
		return "primary"
	}
}

// StatusColor returns the color class for the status.
func (t *Task) StatusColor() string {
	switch t.Status {
	case StatusPending:
		return "warning"
	case StatusInProgress:
		return "primary"
	case StatusCompleted:
		return "success"
	default:
		return ""
	}
}

// DueDateColor returns the color class for due date proximity: error when
// overdue, warning when due today, success when completed.
func (t *Task) DueDateColor(now time.Time, loc *time.Location) string {
	if t.DueDate == nil {
		return ""
	}
	if !t.Status.Open() {
		if t.Status == StatusCompleted {
			return "success"
		}
		return ""
	}
	if t.IsOverdue(now) {
		return "error"
	}
	if t.IsDueToday(now, loc) {
		return "warning"
	}
	return ""
}
