package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/employee-management/internal/core/events"
)

// LogReporter prints upcoming-holidays reports, one line per employee.
type LogReporter struct {
	logger *slog.Logger
}

func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{logger: logger}
}

func (r *LogReporter) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeUpcomingHolidaysReport, r.Handle)
}

func (r *LogReporter) Handle(ctx context.Context, event events.Event) error {
	report, ok := event.(*events.UpcomingHolidaysReportEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T", event)
	}

	if len(report.Employees) == 0 {
		r.logger.Info("No employees with upcoming public holidays found.",
			"window_start", report.WindowStart.Format("2006-01-02"),
			"window_end", report.WindowEnd.Format("2006-01-02"))
		return nil
	}

	for _, e := range report.Employees {
		r.logger.Info("employee with upcoming public holiday",
			"name", e.Name,
			"email", e.Email,
			"position", e.Position,
			"country", e.Country)
	}
	return nil
}
