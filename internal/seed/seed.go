package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	holidayDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/holiday"
	sourcetypes "github.com/frahmantamala/employee-management/internal/core/datamodel/holidaysource"
	"github.com/frahmantamala/employee-management/internal/employee"
	"github.com/frahmantamala/employee-management/internal/holiday"
)

// HolidayRecord is one entry of holidays.json.
type HolidayRecord struct {
	Country string `json:"country"`
	Year    int    `json:"year"`
	sourcetypes.PublicHoliday
}

type EmployeeCreator interface {
	CreateEmployeeWithAddress(ctx context.Context, dto employee.CreateEmployeeDTO) (*employee.Employee, error)
}

type HolidayWriter interface {
	BulkCreate(ctx context.Context, holidays []*holidayDatamodel.Holiday) error
}

type Seeder struct {
	employees EmployeeCreator
	holidays  HolidayWriter
	logger    *slog.Logger
}

func NewSeeder(employees EmployeeCreator, holidays HolidayWriter, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{employees: employees, holidays: holidays, logger: logger}
}

// SeedHolidays loads holiday cache entries from r. The whole file is rejected
// when any record is malformed.
func (s *Seeder) SeedHolidays(ctx context.Context, r io.Reader) (int, error) {
	var records []HolidayRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return 0, fmt.Errorf("decode holidays: %w", err)
	}

	rows := make([]*holidayDatamodel.Holiday, 0, len(records))
	for i, rec := range records {
		if rec.Country == "" {
			return 0, fmt.Errorf("holiday %d: country is required", i)
		}
		if err := rec.Validate(); err != nil {
			return 0, fmt.Errorf("holiday %d: %w", i, err)
		}

		year := rec.Year
		if year == 0 {
			date, err := rec.ParsedDate()
			if err != nil {
				return 0, fmt.Errorf("holiday %d: %w", i, err)
			}
			year = date.Year()
		}

		h, err := holiday.NewFromSource(rec.Country, year, rec.PublicHoliday)
		if err != nil {
			return 0, fmt.Errorf("holiday %d: %w", i, err)
		}
		rows = append(rows, holiday.ToDataModel(h))
	}

	if err := s.holidays.BulkCreate(ctx, rows); err != nil {
		return 0, fmt.Errorf("insert holidays: %w", err)
	}

	s.logger.Info("holidays seeded", "count", len(rows))
	return len(rows), nil
}

// SeedEmployees creates every employee in r with its address. Emails that
// already exist are skipped so the command can be re-run.
func (s *Seeder) SeedEmployees(ctx context.Context, r io.Reader) (int, error) {
	var records []employee.CreateEmployeeDTO
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return 0, fmt.Errorf("decode employees: %w", err)
	}

	created := 0
	for _, rec := range records {
		_, err := s.employees.CreateEmployeeWithAddress(ctx, rec)
		if errors.Is(err, employee.ErrDuplicateEmail) {
			s.logger.Warn("employee already exists, skipping", "email", rec.Email)
			continue
		}
		if err != nil {
			return created, fmt.Errorf("seed employee %s: %w", rec.Email, err)
		}
		created++
	}

	s.logger.Info("employees seeded", "count", created, "skipped", len(records)-created)
	return created, nil
}
