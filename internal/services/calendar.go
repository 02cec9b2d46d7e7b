package services

import (
	"time"

	"business-hub/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// CalendarEntry carries one task with its display classification, ready for
// the calendar grid.
type CalendarEntry struct {
	ID            uuid.UUID           `json:"id"`
	Title         string              `json:"title"`
	Type          models.TaskType     `json:"type"`
	TypeIcon      string              `json:"type_icon"`
	Priority      models.TaskPriority `json:"priority"`
	PriorityColor string              `json:"priority_color"`
	Status        models.TaskStatus   `json:"status"`
	StatusColor   string              `json:"status_color"`
	DueTime       string              `json:"due_time"`
	CustomerName  string              `json:"customer_name"`
	IsCompleted   bool                `json:"is_completed"`
}

type CalendarService interface {
	MonthEntries(db *gorm.DB, hubID uuid.UUID, year, month int) (map[string][]CalendarEntry, error)
}

type CalendarServiceImpl struct {
	settings  SettingsService
	customers CustomerDirectory
}

func NewCalendarService(settings SettingsService, customers CustomerDirectory) *CalendarServiceImpl {
	return &CalendarServiceImpl{settings: settings, customers: customers}
}

// MonthEntries returns the hub's tasks due during the given month, grouped
// by local calendar date and ordered by due date within each day.
func (s *CalendarServiceImpl) MonthEntries(db *gorm.DB, hubID uuid.UUID, year, month int) (map[string][]CalendarEntry, error) {
	if month < 1 || month > 12 {
		return nil, invalidField("month", "must be 1-12")
	}

	settings, err := s.settings.GetOrCreate(db, hubID)
	if err != nil {
		return nil, err
	}
	loc := settings.Location()

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var tasks []models.Task
	err = db.Where("hub_id = ?", hubID).
		Where("due_date >= ? AND due_date < ?", monthStart, monthEnd).
		Order("due_date ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	names := s.customerNames(db, hubID, tasks)

	entries := make(map[string][]CalendarEntry)
	for i := range tasks {
		task := &tasks[i]
		local := task.DueDate.In(loc)
		key := local.Format("2006-01-02")
		entries[key] = append(entries[key], CalendarEntry{
			ID:            task.ID,
			Title:         task.Title,
			Type:          task.TaskType,
			TypeIcon:      task.TypeIcon(),
			Priority:      task.Priority,
			PriorityColor: task.PriorityColor(),
			Status:        task.Status,
			StatusColor:   task.StatusColor(),
			DueTime:       local.Format("15:04"),
			CustomerName:  names[taskCustomer(task)],
			IsCompleted:   task.IsCompleted(),
		})
	}
	return entries, nil
}

func taskCustomer(task *models.Task) uuid.UUID {
	if task.CustomerID == nil {
		return uuid.Nil
	}
	return *task.CustomerID
}

// customerNames resolves customer display names in one pass. A directory
// failure leaves names empty rather than failing the calendar.
func (s *CalendarServiceImpl) customerNames(db *gorm.DB, hubID uuid.UUID, tasks []models.Task) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string)
	for i := range tasks {
		if id := tasks[i].CustomerID; id != nil {
			if _, seen := names[*id]; !seen {
				customer, err := s.customers.Lookup(db, hubID, *id)
				if err != nil || customer == nil {
					names[*id] = ""
					continue
				}
				names[*id] = customer.Name
			}
		}
	}
	return names
}
