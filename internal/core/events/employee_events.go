package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeEmployeeCreated        = "employee.created"
	EventTypeEmployeeUpdated        = "employee.updated"
	EventTypeEmployeeDeleted        = "employee.deleted"
	EventTypeHolidaysCached         = "holiday.cached"
	EventTypeUpcomingHolidaysReport = "holiday.upcoming_report"
)

type EmployeeCreatedEvent struct {
	BaseEvent
	EmployeeID string `json:"employee_id"`
	Email      string `json:"email"`
	Country    string `json:"country"`
}

func NewEmployeeCreatedEvent(employeeID, email, country string) *EmployeeCreatedEvent {
	return &EmployeeCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeEmployeeCreated,
			Timestamp: time.Now().UTC(),
			Data: map[string]interface{}{
				"employee_id": employeeID,
				"email":       email,
				"country":     country,
			},
		},
		EmployeeID: employeeID,
		Email:      email,
		Country:    country,
	}
}

type EmployeeUpdatedEvent struct {
	BaseEvent
	EmployeeID    string   `json:"employee_id"`
	ChangedFields []string `json:"changed_fields"`
}

func NewEmployeeUpdatedEvent(employeeID string, changedFields []string) *EmployeeUpdatedEvent {
	return &EmployeeUpdatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeEmployeeUpdated,
			Timestamp: time.Now().UTC(),
			Data: map[string]interface{}{
				"employee_id":    employeeID,
				"changed_fields": changedFields,
			},
		},
		EmployeeID:    employeeID,
		ChangedFields: changedFields,
	}
}

type EmployeeDeletedEvent struct {
	BaseEvent
	EmployeeID string `json:"employee_id"`
}

func NewEmployeeDeletedEvent(employeeID string) *EmployeeDeletedEvent {
	return &EmployeeDeletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeEmployeeDeleted,
			Timestamp: time.Now().UTC(),
			Data: map[string]interface{}{
				"employee_id": employeeID,
			},
		},
		EmployeeID: employeeID,
	}
}

type HolidaysCachedEvent struct {
	BaseEvent
	Country string `json:"country"`
	Year    int    `json:"year"`
	Count   int    `json:"count"`
}

func NewHolidaysCachedEvent(country string, year, count int) *HolidaysCachedEvent {
	return &HolidaysCachedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeHolidaysCached,
			Timestamp: time.Now().UTC(),
			Data: map[string]interface{}{
				"country": country,
				"year":    year,
				"count":   count,
			},
		},
		Country: country,
		Year:    year,
		Count:   count,
	}
}

// UpcomingEmployee is the reporting view of an employee inside an upcoming-holidays report.
type UpcomingEmployee struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Position   string `json:"position"`
	Country    string `json:"country"`
}

type UpcomingHolidaysReportEvent struct {
	BaseEvent
	WindowStart time.Time          `json:"window_start"`
	WindowEnd   time.Time          `json:"window_end"`
	Employees   []UpcomingEmployee `json:"employees"`
}

func NewUpcomingHolidaysReportEvent(windowStart, windowEnd time.Time, employees []UpcomingEmployee) *UpcomingHolidaysReportEvent {
	return &UpcomingHolidaysReportEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeUpcomingHolidaysReport,
			Timestamp: time.Now().UTC(),
			Data: map[string]interface{}{
				"window_start":   windowStart,
				"window_end":     windowEnd,
				"employee_count": len(employees),
			},
		},
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		Employees:   employees,
	}
}
