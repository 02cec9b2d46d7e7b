package services

import (
	"time"

	"business-hub/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// DashboardCounts is recomputed from storage on every request. There is no
// cache in front of it.
type DashboardCounts struct {
	DueToday          int64                     `json:"due_today"`
	Overdue           int64                     `json:"overdue"`
	CompletedThisWeek int64                     `json:"completed_this_week"`
	CallsToday        int64                     `json:"calls_today"`
	MeetingsToday     int64                     `json:"meetings_today"`
	TypeCounts        map[models.TaskType]int64 `json:"type_counts"`
}

type Dashboard struct {
	Counts   DashboardCounts `json:"counts"`
	Upcoming []models.Task   `json:"upcoming_tasks"`
	Overdue  []models.Task   `json:"overdue_tasks"`
}

const (
	upcomingWindowDays = 7
	upcomingListLimit  = 15
	overdueListLimit   = 10
)

type DashboardService interface {
	Summary(db *gorm.DB, hubID uuid.UUID, now time.Time) (*Dashboard, error)
}

type DashboardServiceImpl struct {
	settings SettingsService
}

func NewDashboardService(settings SettingsService) *DashboardServiceImpl {
	return &DashboardServiceImpl{settings: settings}
}

// StartOfDay returns midnight of now's calendar day in loc.
func StartOfDay(now time.Time, loc *time.Location) time.Time {
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// StartOfWeek returns midnight of the Monday of now's week in loc.
func StartOfWeek(now time.Time, loc *time.Location) time.Time {
	day := StartOfDay(now, loc)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func openScope(db *gorm.DB, hubID uuid.UUID) *gorm.DB {
	return db.Model(&models.Task{}).
		Where("hub_id = ?", hubID).
		Where("status NOT IN ?", []models.TaskStatus{models.StatusCompleted, models.StatusCancelled})
}

func (s *DashboardServiceImpl) Summary(db *gorm.DB, hubID uuid.UUID, now time.Time) (*Dashboard, error) {
	settings, err := s.settings.GetOrCreate(db, hubID)
	if err != nil {
		return nil, err
	}
	loc := settings.Location()

	todayStart := StartOfDay(now, loc)
	todayEnd := todayStart.AddDate(0, 0, 1)
	weekStart := StartOfWeek(now, loc)
	weekEnd := weekStart.AddDate(0, 0, 7)
	horizon := todayStart.AddDate(0, 0, upcomingWindowDays)

	dashboard := &Dashboard{
		Counts: DashboardCounts{TypeCounts: map[models.TaskType]int64{}},
	}

	err = openScope(db, hubID).
		Where("due_date >= ? AND due_date < ?", todayStart, todayEnd).
		Count(&dashboard.Counts.DueToday).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.Task{}).
		Where("hub_id = ?", hubID).
		Where("due_date < ?", now).
		Where("status IN ?", []models.TaskStatus{models.StatusPending, models.StatusInProgress}).
		Count(&dashboard.Counts.Overdue).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.Task{}).
		Where("hub_id = ? AND status = ?", hubID, models.StatusCompleted).
		Where("completed_at >= ? AND completed_at < ?", weekStart, weekEnd).
		Count(&dashboard.Counts.CompletedThisWeek).Error
	if err != nil {
		return nil, err
	}

	err = openScope(db, hubID).
		Where("task_type = ?", models.TypeCall).
		Where("due_date >= ? AND due_date < ?", todayStart, todayEnd).
		Count(&dashboard.Counts.CallsToday).Error
	if err != nil {
		return nil, err
	}

	err = openScope(db, hubID).
		Where("task_type = ?", models.TypeMeeting).
		Where("due_date >= ? AND due_date < ?", todayStart, todayEnd).
		Count(&dashboard.Counts.MeetingsToday).Error
	if err != nil {
		return nil, err
	}

	var typeRows []struct {
		TaskType models.TaskType
		Count    int64
	}
	err = openScope(db, hubID).
		Select("task_type, COUNT(*) as count").
		Group("task_type").
		Scan(&typeRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range typeRows {
		dashboard.Counts.TypeCounts[row.TaskType] = row.Count
	}

	err = openScope(db, hubID).
		Where("due_date >= ? AND due_date < ?", todayStart, horizon).
		Order("due_date ASC").
		Limit(upcomingListLimit).
		Find(&dashboard.Upcoming).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.Task{}).
		Where("hub_id = ?", hubID).
		Where("due_date < ?", now).
		Where("status IN ?", []models.TaskStatus{models.StatusPending, models.StatusInProgress}).
		Order("due_date ASC").
		Limit(overdueListLimit).
		Find(&dashboard.Overdue).Error
	if err != nil {
		return nil, err
	}

	return dashboard, nil
}
