package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/frahmantamala/employee-management/internal/core/events"
	"github.com/frahmantamala/employee-management/internal/employee"
	"github.com/robfig/cron/v3"
)

// Aggregator finds employees with holidays in a rolling window.
type Aggregator interface {
	EmployeesWithUpcomingHolidays(ctx context.Context) ([]*employee.Employee, error)
	Window() (time.Time, time.Time)
}

type Config struct {
	Interval time.Duration
	Timeout  time.Duration
}

// Scheduler runs the upcoming-holidays aggregation on a fixed interval and
// publishes every result as a report event. A failed tick is logged and the
// next tick runs as usual.
type Scheduler struct {
	cron       *cron.Cron
	aggregator Aggregator
	publisher  events.Publisher
	interval   time.Duration
	timeout    time.Duration
	logger     *slog.Logger

	mu      sync.Mutex
	started bool
}

func New(cfg Config, aggregator Aggregator, publisher events.Publisher, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	interval := cfg.Interval
	if interval < time.Second {
		interval = time.Second
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = interval
	}

	cronLogger := cronLogAdapter{logger: logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		aggregator: aggregator,
		publisher:  publisher,
		interval:   interval,
		timeout:    timeout,
		logger:     logger,
	}
}

func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return errors.New("scheduler already started")
	}

	s.cron.Schedule(cron.Every(s.interval), cron.FuncJob(s.tick))
	s.cron.Start()
	s.started = true

	s.logger.Info("upcoming holidays scheduler started", "interval", s.interval.String())
	return nil
}

// Stop halts new ticks and waits for a running one until ctx ends.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = false
	s.mu.Unlock()

	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("upcoming holidays scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.RunOnce(ctx); err != nil {
		s.logger.Error("upcoming holidays tick failed", "error", err)
	}
}

// RunOnce performs a single aggregation and publishes the report.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	found, err := s.aggregator.EmployeesWithUpcomingHolidays(ctx)
	if err != nil {
		return fmt.Errorf("aggregate upcoming holidays: %w", err)
	}

	from, to := s.aggregator.Window()
	report := make([]events.UpcomingEmployee, 0, len(found))
	for _, e := range found {
		report = append(report, events.UpcomingEmployee{
			EmployeeID: e.ID,
			Name:       e.Name,
			Email:      e.Email,
			Position:   e.Position,
			Country:    e.Country(),
		})
	}

	if s.publisher == nil {
		return nil
	}
	return s.publisher.PublishSync(ctx, events.NewUpcomingHolidaysReportEvent(from, to, report))
}

type cronLogAdapter struct {
	logger *slog.Logger
}

func (a cronLogAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Debug("cron: "+msg, keysAndValues...)
}

func (a cronLogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	a.logger.Error("cron: "+msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
