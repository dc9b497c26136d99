package cmd

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/employee-management/internal/core/events"
	"github.com/frahmantamala/employee-management/internal/scheduler"
)

// registerEventHandlers attaches the process-wide subscribers to bus.
func registerEventHandlers(bus *events.EventBus, logger *slog.Logger) {
	audit := func(ctx context.Context, event events.Event) error {
		logger.Info("domain event",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}

	for _, eventType := range []string{
		events.EventTypeEmployeeCreated,
		events.EventTypeEmployeeUpdated,
		events.EventTypeEmployeeDeleted,
		events.EventTypeHolidaysCached,
	} {
		bus.Subscribe(eventType, audit)
	}

	scheduler.NewLogReporter(logger).Register(bus)
}
