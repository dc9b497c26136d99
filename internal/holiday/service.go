package holiday

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/frahmantamala/employee-management/internal"
	employeeDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/employee"
	holidayDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/holiday"
	sourcetypes "github.com/frahmantamala/employee-management/internal/core/datamodel/holidaysource"
	"github.com/frahmantamala/employee-management/internal/core/events"
	"github.com/frahmantamala/employee-management/internal/employee"
	"golang.org/x/sync/singleflight"
)

// RepositoryAPI is the holiday cache store. Every method joins the transaction carried by ctx.
type RepositoryAPI interface {
	GetByCountryAndYear(ctx context.Context, country string, year int) ([]*holidayDatamodel.Holiday, error)
	BulkCreate(ctx context.Context, holidays []*holidayDatamodel.Holiday) error
	GetBetween(ctx context.Context, from, to time.Time) ([]*holidayDatamodel.Holiday, error)
}

// EmployeeFinder is the slice of the employee store the holiday features read.
type EmployeeFinder interface {
	GetByID(ctx context.Context, id string) (*employeeDatamodel.Employee, error)
	GetByCountries(ctx context.Context, countries []string) ([]*employeeDatamodel.Employee, error)
}

// Source never fails: an unavailable source yields an empty slice.
type Source interface {
	PublicHolidays(ctx context.Context, country string, year int) []sourcetypes.PublicHoliday
}

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Service struct {
	repo       RepositoryAPI
	employees  EmployeeFinder
	source     Source
	tx         Transactor
	publisher  events.Publisher
	clock      internal.Clock
	windowDays int
	flights    singleflight.Group
	logger     *slog.Logger
}

type Options struct {
	WindowDays int
	Publisher  events.Publisher
	Clock      internal.Clock
	Logger     *slog.Logger
}

func NewService(repo RepositoryAPI, employees EmployeeFinder, source Source, tx Transactor, opts Options) *Service {
	if opts.WindowDays <= 0 {
		opts.WindowDays = internal.DefaultWindowDays
	}
	if opts.Clock == nil {
		opts.Clock = internal.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Service{
		repo:       repo,
		employees:  employees,
		source:     source,
		tx:         tx,
		publisher:  opts.Publisher,
		clock:      opts.Clock,
		windowDays: opts.WindowDays,
		logger:     opts.Logger,
	}
}

// ResolveHolidaysForEmployee returns the holidays of the employee's country in
// year. A cached (country, year) is returned as stored; otherwise the source is
// asked once and a non-empty answer is cached before being re-read.
func (s *Service) ResolveHolidaysForEmployee(ctx context.Context, employeeID string, year int) ([]*Holiday, error) {
	if err := ValidateYear(year); err != nil {
		return nil, err
	}

	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		s.logger.Error("failed to load employee for holidays", "employee_id", employeeID, "error", err)
		return nil, err
	}
	if emp == nil {
		return nil, ErrEmployeeNotFound
	}
	if emp.Address == nil || emp.Address.Country == "" {
		return nil, ErrNoCountry
	}
	country := emp.Address.Country

	cached, err := s.repo.GetByCountryAndYear(ctx, country, year)
	if err != nil {
		s.logger.Error("failed to read holiday cache", "country", country, "year", year, "error", err)
		return nil, err
	}
	if len(cached) > 0 {
		return FromDataModels(cached), nil
	}

	// Concurrent misses for the same key share one population.
	key := fmt.Sprintf("%s:%d", country, year)
	v, err, shared := s.flights.Do(key, func() (interface{}, error) {
		return s.populate(context.WithoutCancel(ctx), country, year)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("holiday population shared", "country", country, "year", year)
	}
	return v.([]*Holiday), nil
}

func (s *Service) populate(ctx context.Context, country string, year int) ([]*Holiday, error) {
	cached, err := s.repo.GetByCountryAndYear(ctx, country, year)
	if err != nil {
		return nil, err
	}
	if len(cached) > 0 {
		return FromDataModels(cached), nil
	}

	records := s.source.PublicHolidays(ctx, country, year)
	if len(records) == 0 {
		s.logger.Info("holiday source returned nothing, not caching", "country", country, "year", year)
		return []*Holiday{}, nil
	}

	rows := make([]*holidayDatamodel.Holiday, 0, len(records))
	for _, rec := range records {
		h, err := NewFromSource(country, year, rec)
		if err != nil {
			s.logger.Warn("skipping holiday with bad date", "country", country, "date", rec.Date, "error", err)
			continue
		}
		rows = append(rows, ToDataModel(h))
	}
	if len(rows) == 0 {
		return []*Holiday{}, nil
	}

	if err := s.repo.BulkCreate(ctx, rows); err != nil {
		s.logger.Error("failed to cache holidays", "country", country, "year", year, "error", err)
		return nil, err
	}

	stored, err := s.repo.GetByCountryAndYear(ctx, country, year)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events.NewHolidaysCachedEvent(country, year, len(stored))); err != nil {
			s.logger.Warn("failed to publish event", "event_type", events.EventTypeHolidaysCached, "error", err)
		}
	}

	s.logger.Info("holidays cached", "country", country, "year", year, "count", len(stored))
	return FromDataModels(stored), nil
}

// Window returns the inclusive [today, today+N days] range at UTC midnight.
func (s *Service) Window() (time.Time, time.Time) {
	now := s.clock.Now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 0, s.windowDays)
}

// EmployeesWithUpcomingHolidays returns the employees located in a country
// with a cached holiday inside Window. Both reads share one transaction.
func (s *Service) EmployeesWithUpcomingHolidays(ctx context.Context) ([]*employee.Employee, error) {
	from, to := s.Window()

	var found []*employeeDatamodel.Employee
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		holidays, err := s.repo.GetBetween(ctx, from, to)
		if err != nil {
			return err
		}
		if len(holidays) == 0 {
			return nil
		}

		found, err = s.employees.GetByCountries(ctx, distinctCountries(holidays))
		return err
	})
	if err != nil {
		s.logger.Error("failed to find employees with upcoming holidays", "error", err)
		return nil, err
	}

	return employee.FromDataModels(found), nil
}

func distinctCountries(holidays []*holidayDatamodel.Holiday) []string {
	seen := make(map[string]struct{}, len(holidays))
	out := make([]string, 0, len(holidays))
	for _, h := range holidays {
		if _, ok := seen[h.Country]; ok {
			continue
		}
		seen[h.Country] = struct{}{}
		out = append(out, h.Country)
	}
	sort.Strings(out)
	return out
}
