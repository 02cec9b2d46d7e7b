package services

import (
	"errors"
	"time"

	"business-hub/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type SettingsInput struct {
	DefaultReminderMinutes *int    `json:"default_reminder_minutes"`
	AutoCreateFollowUp     *bool   `json:"auto_create_follow_up"`
	WorkingHoursStart      *string `json:"working_hours_start"`
	WorkingHoursEnd        *string `json:"working_hours_end"`
	Timezone               *string `json:"timezone"`
}

type SettingsService interface {
	GetOrCreate(db *gorm.DB, hubID uuid.UUID) (*models.TaskSettings, error)
	Update(db *gorm.DB, hubID uuid.UUID, in SettingsInput) (*models.TaskSettings, error)
}

type SettingsServiceImpl struct{}

func NewSettingsService() *SettingsServiceImpl {
	return &SettingsServiceImpl{}
}

// GetOrCreate returns the hub's settings row, creating it with defaults on
// first access. Concurrent first access is resolved by the unique index on
// hub_id: the loser of the insert race re-reads the winner's row.
func (s *SettingsServiceImpl) GetOrCreate(db *gorm.DB, hubID uuid.UUID) (*models.TaskSettings, error) {
	var settings models.TaskSettings
	err := db.Where("hub_id = ?", hubID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = models.TaskSettings{
		ID:                     uuid.Must(uuid.NewV4()),
		HubID:                  hubID,
		DefaultReminderMinutes: 30,
		AutoCreateFollowUp:     false,
		WorkingHoursStart:      "09:00",
		WorkingHoursEnd:        "18:00",
		Timezone:               "UTC",
	}
	if err := db.Create(&settings).Error; err != nil {
		// Lost the creation race; the row exists now.
		var existing models.TaskSettings
		if readErr := db.Where("hub_id = ?", hubID).First(&existing).Error; readErr == nil {
			return &existing, nil
		}
		return nil, err
	}
	return &settings, nil
}

func (s *SettingsServiceImpl) Update(db *gorm.DB, hubID uuid.UUID, in SettingsInput) (*models.TaskSettings, error) {
	if in.DefaultReminderMinutes != nil && *in.DefaultReminderMinutes < 0 {
		return nil, invalidField("default_reminder_minutes", "must not be negative")
	}
	if in.Timezone != nil && *in.Timezone != "" {
		if _, err := time.LoadLocation(*in.Timezone); err != nil {
			return nil, invalidField("timezone", "unknown IANA zone name")
		}
	}
	for _, hours := range []*string{in.WorkingHoursStart, in.WorkingHoursEnd} {
		if hours != nil && *hours != "" {
			if _, err := time.Parse("15:04", *hours); err != nil {
				return nil, invalidField("working_hours", "expected HH:MM")
			}
		}
	}

	settings, err := s.GetOrCreate(db, hubID)
	if err != nil {
		return nil, err
	}

	if in.DefaultReminderMinutes != nil {
		settings.DefaultReminderMinutes = *in.DefaultReminderMinutes
	}
	if in.AutoCreateFollowUp != nil {
		settings.AutoCreateFollowUp = *in.AutoCreateFollowUp
	}
	if in.WorkingHoursStart != nil && *in.WorkingHoursStart != "" {
		settings.WorkingHoursStart = *in.WorkingHoursStart
	}
	if in.WorkingHoursEnd != nil && *in.WorkingHoursEnd != "" {
		settings.WorkingHoursEnd = *in.WorkingHoursEnd
	}
	if in.Timezone != nil && *in.Timezone != "" {
		settings.Timezone = *in.Timezone
	}

	if err := db.Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}
