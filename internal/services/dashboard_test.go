package services_test

import (
	"testing"
	"time"

	"business-hub/backend/internal/models"
	"business-hub/backend/internal/services"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedTask(t *testing.T, db *gorm.DB, hubID uuid.UUID, taskType models.TaskType, status models.TaskStatus, due, completed *time.Time) models.Task {
	t.Helper()
	task := models.Task{
		ID:          uuid.Must(uuid.NewV4()),
		HubID:       hubID,
		Title:       "seed",
		TaskType:    taskType,
		Priority:    models.PriorityMedium,
		Status:      status,
		DueDate:     due,
		CompletedAt: completed,
	}
	require.NoError(t, db.Create(&task).Error)
	return task
}

func timePtr(v time.Time) *time.Time { return &v }

func TestDashboardSummary(t *testing.T) {
	db := setupTestDB(t)
	hubID := uuid.Must(uuid.NewV4())
	svc := services.NewDashboardService(services.NewSettingsService())

	// Thursday 2024-03-14 10:00 UTC; the week started Monday 2024-03-11.
	now := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)

	// Due today: one open call, one open meeting, one open plain task.
	seedTask(t, db, hubID, models.TypeCall, models.StatusPending,
		timePtr(time.Date(2024, 3, 14, 14, 0, 0, 0, time.UTC)), nil)
	seedTask(t, db, hubID, models.TypeMeeting, models.StatusInProgress,
		timePtr(time.Date(2024, 3, 14, 16, 0, 0, 0, time.UTC)), nil)
	seedTask(t, db, hubID, models.TypeTask, models.StatusPending,
		timePtr(time.Date(2024, 3, 14, 17, 0, 0, 0, time.UTC)), nil)

	// Due today but completed: excluded from due_today.
	seedTask(t, db, hubID, models.TypeCall, models.StatusCompleted,
		timePtr(time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)),
		timePtr(time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)))

	// Overdue: open and past due. Cancelled past-due is not overdue.
	seedTask(t, db, hubID, models.TypeTask, models.StatusPending,
		timePtr(time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)), nil)
	seedTask(t, db, hubID, models.TypeTask, models.StatusCancelled,
		timePtr(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)), nil)

	// Completed this week vs last Sunday night.
	seedTask(t, db, hubID, models.TypeTask, models.StatusCompleted, nil,
		timePtr(time.Date(2024, 3, 12, 14, 0, 0, 0, time.UTC)))
	seedTask(t, db, hubID, models.TypeTask, models.StatusCompleted, nil,
		timePtr(time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)))

	// Upcoming within 7 days, outside today.
	seedTask(t, db, hubID, models.TypeEmail, models.StatusPending,
		timePtr(time.Date(2024, 3, 18, 10, 0, 0, 0, time.UTC)), nil)
	// Beyond the 7-day horizon.
	seedTask(t, db, hubID, models.TypeTask, models.StatusPending,
		timePtr(time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC)), nil)

	// Another hub's data never leaks in.
	seedTask(t, db, uuid.Must(uuid.NewV4()), models.TypeCall, models.StatusPending,
		timePtr(time.Date(2024, 3, 14, 11, 0, 0, 0, time.UTC)), nil)

	summary, err := svc.Summary(db, hubID, now)
	require.NoError(t, err)

	assert.Equal(t, int64(3), summary.Counts.DueToday)
	assert.Equal(t, int64(1), summary.Counts.Overdue)
	assert.Equal(t, int64(2), summary.Counts.CompletedThisWeek)
	assert.Equal(t, int64(1), summary.Counts.CallsToday)
	assert.Equal(t, int64(1), summary.Counts.MeetingsToday)

	assert.Equal(t, int64(3), summary.Counts.TypeCounts[models.TypeTask])
	assert.Equal(t, int64(1), summary.Counts.TypeCounts[models.TypeCall])
	assert.Equal(t, int64(1), summary.Counts.TypeCounts[models.TypeMeeting])
	assert.Equal(t, int64(1), summary.Counts.TypeCounts[models.TypeEmail])

	// Upcoming: the overdue 03-12 task is inside [today, +7d)? No, it is
	// before today's start, so it stays out. Expect the three due today
	// plus the 03-18 email, ascending.
	require.Len(t, summary.Upcoming, 4)
	for i := 1; i < len(summary.Upcoming); i++ {
		assert.False(t, summary.Upcoming[i].DueDate.Before(*summary.Upcoming[i-1].DueDate))
	}

	require.Len(t, summary.Overdue, 1)
	assert.Equal(t, models.StatusPending, summary.Overdue[0].Status)
}

func TestDashboardSummary_SoftDeletedExcluded(t *testing.T) {
	db := setupTestDB(t)
	hubID := uuid.Must(uuid.NewV4())
	svc := services.NewDashboardService(services.NewSettingsService())
	now := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)

	task := seedTask(t, db, hubID, models.TypeCall, models.StatusPending,
		timePtr(time.Date(2024, 3, 14, 14, 0, 0, 0, time.UTC)), nil)
	require.NoError(t, db.Delete(&task).Error)

	summary, err := svc.Summary(db, hubID, now)
	require.NoError(t, err)
	assert.Zero(t, summary.Counts.DueToday)
	assert.Zero(t, summary.Counts.CallsToday)
	assert.Empty(t, summary.Upcoming)
}

func TestStartOfWeek_MondayStart(t *testing.T) {
	loc := time.UTC
	cases := []struct {
		now  time.Time
		want time.Time
	}{
		{time.Date(2024, 3, 14, 10, 0, 0, 0, loc), time.Date(2024, 3, 11, 0, 0, 0, 0, loc)},
		{time.Date(2024, 3, 11, 0, 0, 0, 0, loc), time.Date(2024, 3, 11, 0, 0, 0, 0, loc)},
		{time.Date(2024, 3, 10, 23, 59, 0, 0, loc), time.Date(2024, 3, 4, 0, 0, 0, 0, loc)},
		{time.Date(2024, 3, 17, 12, 0, 0, 0, loc), time.Date(2024, 3, 11, 0, 0, 0, 0, loc)},
	}
	for _, tc := range cases {
		got := services.StartOfWeek(tc.now, loc)
		assert.True(t, got.Equal(tc.want), "StartOfWeek(%v) = %v, want %v", tc.now, got, tc.want)
	}
}

func TestStartOfDay_TenantLocal(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 23:30 UTC on the 13th is already the 14th in Berlin.
	now := time.Date(2024, 3, 13, 23, 30, 0, 0, time.UTC)
	got := services.StartOfDay(now, loc)
	assert.True(t, got.Equal(time.Date(2024, 3, 14, 0, 0, 0, 0, loc)))
}
