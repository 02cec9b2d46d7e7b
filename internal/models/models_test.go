package models_test

import (
	"testing"
	"time"

	"business-hub/backend/internal/models"
)

func datePtr(v time.Time) *time.Time { return &v }

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)
	past := datePtr(now.Add(-time.Hour))
	future := datePtr(now.Add(time.Hour))

	tests := []struct {
		name    string
		status  models.TaskStatus
		dueDate *time.Time
		want    bool
	}{
		{"pending past due", models.StatusPending, past, true},
		{"in progress past due", models.StatusInProgress, past, true},
		{"completed past due", models.StatusCompleted, past, false},
		{"cancelled past due", models.StatusCancelled, past, false},
		{"pending future due", models.StatusPending, future, false},
		{"pending no due date", models.StatusPending, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := models.Task{Status: tt.status, DueDate: tt.dueDate}
			if got := task.IsOverdue(now); got != tt.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTask_IsDueToday(t *testing.T) {
	now := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)

	task := models.Task{
		Status:  models.StatusCompleted,
		DueDate: datePtr(time.Date(2024, 3, 14, 23, 0, 0, 0, time.UTC)),
	}
	if !task.IsDueToday(now, time.UTC) {
		t.Error("completed task due today should still report due-today")
	}

	task.DueDate = datePtr(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	if task.IsDueToday(now, time.UTC) {
		t.Error("task due tomorrow should not report due-today")
	}

	task.DueDate = nil
	if task.IsDueToday(now, time.UTC) {
		t.Error("task without due date should not report due-today")
	}
}

func TestTask_IsDueToday_TenantLocal(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 23:30 UTC on the 13th is 00:30 on the 14th in Berlin.
	now := time.Date(2024, 3, 13, 23, 30, 0, 0, time.UTC)
	task := models.Task{
		Status:  models.StatusPending,
		DueDate: datePtr(time.Date(2024, 3, 14, 8, 0, 0, 0, berlin)),
	}

	if task.IsDueToday(now, time.UTC) {
		t.Error("should not be due-today in UTC")
	}
	if !task.IsDueToday(now, berlin) {
		t.Error("should be due-today in Berlin")
	}
}

func TestTask_PriorityRank(t *testing.T) {
	ranks := map[models.TaskPriority]int{
		models.PriorityUrgent: 0,
		models.PriorityHigh:   1,
		models.PriorityMedium: 2,
		models.PriorityLow:    3,
	}
	for priority, want := range ranks {
		task := models.Task{Priority: priority}
		if got := task.PriorityRank(); got != want {
			t.Errorf("PriorityRank(%s) = %d, want %d", priority, got, want)
		}
	}

	// Rows written before the enum was enforced rank as medium.
	unknown := models.Task{Priority: "asap"}
	if got := unknown.PriorityRank(); got != 2 {
		t.Errorf("PriorityRank(unknown) = %d, want 2", got)
	}
}

func TestTask_DisplayClassification(t *testing.T) {
	task := models.Task{TaskType: models.TypeCall, Priority: models.PriorityUrgent, Status: models.StatusInProgress}

	if got := task.TypeIcon(); got != "call-outline" {
		t.Errorf("TypeIcon() = %q", got)
	}
	if got := task.PriorityColor(); got != "error" {
		t.Errorf("PriorityColor() = %q", got)
	}
	if got := task.StatusColor(); got != "primary" {
		t.Errorf("StatusColor() = %q", got)
	}

	unknownType := models.Task{TaskType: "fax"}
	if got := unknownType.TypeIcon(); got != "checkbox-outline" {
		t.Errorf("TypeIcon(unknown) = %q", got)
	}
}

func TestTask_DueDateColor(t *testing.T) {
	now := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		status  models.TaskStatus
		dueDate *time.Time
		want    string
	}{
		{"overdue open", models.StatusPending, datePtr(now.Add(-time.Hour)), "error"},
		{"due today open", models.StatusInProgress, datePtr(now.Add(2 * time.Hour)), "warning"},
		{"future open", models.StatusPending, datePtr(now.AddDate(0, 0, 3)), ""},
		{"completed", models.StatusCompleted, datePtr(now.Add(-time.Hour)), "success"},
		{"cancelled", models.StatusCancelled, datePtr(now.Add(-time.Hour)), ""},
		{"no due date", models.StatusPending, nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := models.Task{Status: tt.status, DueDate: tt.dueDate}
			if got := task.DueDateColor(now, time.UTC); got != tt.want {
				t.Errorf("DueDateColor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatus_Open(t *testing.T) {
	open := []models.TaskStatus{models.StatusPending, models.StatusInProgress}
	closed := []models.TaskStatus{models.StatusCompleted, models.StatusCancelled}

	for _, status := range open {
		if !status.Open() {
			t.Errorf("%s should be open", status)
		}
	}
	for _, status := range closed {
		if status.Open() {
			t.Errorf("%s should not be open", status)
		}
	}
}

func TestEnums_Valid(t *testing.T) {
	if models.TaskType("appointment").Valid() {
		t.Error("unexpected valid task type")
	}
	if models.TaskPriority("critical").Valid() {
		t.Error("unexpected valid priority")
	}
	if models.TaskStatus("archived").Valid() {
		t.Error("unexpected valid status")
	}
	if !models.TypeFollowUp.Valid() || !models.PriorityUrgent.Valid() || !models.StatusInProgress.Valid() {
		t.Error("expected enum values to be valid")
	}
}

func TestSettings_Location(t *testing.T) {
	settings := models.TaskSettings{Timezone: "Europe/Berlin"}
	if settings.Location().String() != "Europe/Berlin" {
		t.Errorf("Location() = %q", settings.Location())
	}

	settings.Timezone = "Nowhere/Invalid"
	if settings.Location() != time.UTC {
		t.Error("invalid zone should fall back to UTC")
	}

	settings.Timezone = ""
	if settings.Location() != time.UTC {
		t.Error("empty zone should fall back to UTC")
	}
}
