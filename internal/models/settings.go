package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// TaskSettings is the per-hub task module configuration. One row per hub,
// created lazily on first access and never deleted.
type TaskSettings struct {
	ID    uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	HubID uuid.UUID `json:"hub_id" gorm:"type:uuid;not null;uniqueIndex"`

	DefaultReminderMinutes int    `json:"default_reminder_minutes" gorm:"default:30"`
	AutoCreateFollowUp     bool   `json:"auto_create_follow_up" gorm:"default:false"`
	WorkingHoursStart      string `json:"working_hours_start" gorm:"default:'09:00'"`
	WorkingHoursEnd        string `json:"working_hours_end" gorm:"default:'18:00'"`

	// IANA zone name used for day and week boundaries.
	Timezone string `json:"timezone" gorm:"default:'UTC'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TaskSettings) TableName() string {
	return "task_settings"
}

// Location resolves the hub's timezone, falling back to UTC when the stored
// name is empty or unknown.
func (s *TaskSettings) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
