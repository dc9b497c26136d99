package employee

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/frahmantamala/employee-management/internal"
	employeeDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-management/internal/core/events"
	"github.com/frahmantamala/employee-management/internal/database"
	"github.com/google/uuid"
)

// RepositoryAPI is the employee/address store. Lookups return (nil, nil) when
// the row does not exist. Every method joins the transaction carried by ctx.
type RepositoryAPI interface {
	Create(ctx context.Context, e *employeeDatamodel.Employee) error
	CreateAddress(ctx context.Context, a *employeeDatamodel.Address) error
	GetAll(ctx context.Context) ([]*employeeDatamodel.Employee, error)
	GetByID(ctx context.Context, id string) (*employeeDatamodel.Employee, error)
	GetByIDForUpdate(ctx context.Context, id string) (*employeeDatamodel.Employee, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	UpdateAddress(ctx context.Context, employeeID string, fields map[string]interface{}) error
	DeleteAddress(ctx context.Context, employeeID string) error
	Delete(ctx context.Context, id string) error
	GetByCountries(ctx context.Context, countries []string) ([]*employeeDatamodel.Employee, error)
}

type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Service struct {
	repo      RepositoryAPI
	tx        Transactor
	publisher events.Publisher
	clock     internal.Clock
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, tx Transactor, publisher events.Publisher, clock internal.Clock, logger *slog.Logger) *Service {
	if clock == nil {
		clock = internal.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:      repo,
		tx:        tx,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// CreateEmployeeWithAddress stores the employee and its address atomically.
func (s *Service) CreateEmployeeWithAddress(ctx context.Context, dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("create employee validation failed", "error", err)
		return nil, err
	}

	now := s.clock.Now().UTC()
	employee := &Employee{
		ID:         uuid.NewString(),
		Name:       dto.Name,
		Position:   dto.Position,
		Email:      dto.Email,
		Salary:     dto.Salary,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	address := &Address{
		ID:          uuid.NewString(),
		Street:      dto.Address.Street,
		HouseNumber: dto.Address.HouseNumber,
		Country:     dto.Address.Country,
		State:       dto.Address.State,
		Zipcode:     dto.Address.Zipcode,
		EmployeeID:  employee.ID,
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, ToDataModel(employee)); err != nil {
			return err
		}
		return s.repo.CreateAddress(ctx, AddressToDataModel(address))
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			s.logger.Warn("create employee rejected: duplicate email", "email", dto.Email)
			return nil, ErrDuplicateEmail.WithCause(err)
		}
		s.logger.Error("failed to create employee", "error", err)
		return nil, err
	}

	employee.Address = address
	s.publish(ctx, events.NewEmployeeCreatedEvent(employee.ID, employee.Email, address.Country))

	s.logger.Info("employee created", "employee_id", employee.ID, "country", address.Country)
	return employee, nil
}

// UpdateEmployeeWithAddress applies both deltas under a row lock on the
// employee. It returns 0 when the employee does not exist.
func (s *Service) UpdateEmployeeWithAddress(ctx context.Context, id string, dto UpdateEmployeeDTO) (int64, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("update employee validation failed", "employee_id", id, "error", err)
		return 0, err
	}

	employeeFields := dto.EmployeeFields()
	addressFields := dto.AddressFields()
	employeeFields["modified_at"] = s.clock.Now().UTC()

	var affected int64
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return nil
		}

		if err := s.repo.Update(ctx, id, employeeFields); err != nil {
			return err
		}
		if len(addressFields) > 0 {
			if err := s.repo.UpdateAddress(ctx, id, addressFields); err != nil {
				return err
			}
		}
		affected = 1
		return nil
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			s.logger.Warn("update employee rejected: duplicate email", "employee_id", id)
			return 0, ErrDuplicateEmail.WithCause(err)
		}
		s.logger.Error("failed to update employee", "employee_id", id, "error", err)
		return 0, err
	}

	if affected == 0 {
		s.logger.Info("update employee: not found", "employee_id", id)
		return 0, nil
	}

	s.publish(ctx, events.NewEmployeeUpdatedEvent(id, changedFields(employeeFields, addressFields)))
	return affected, nil
}

// DeleteEmployeeWithAddress removes the address and then the employee. It
// returns 0 when the employee does not exist.
func (s *Service) DeleteEmployeeWithAddress(ctx context.Context, id string) (int64, error) {
	var affected int64
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return nil
		}

		if err := s.repo.DeleteAddress(ctx, id); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			return err
		}
		affected = 1
		return nil
	})
	if err != nil {
		s.logger.Error("failed to delete employee", "employee_id", id, "error", err)
		return 0, err
	}

	if affected == 0 {
		s.logger.Info("delete employee: not found", "employee_id", id)
		return 0, nil
	}

	s.publish(ctx, events.NewEmployeeDeletedEvent(id))
	s.logger.Info("employee deleted", "employee_id", id)
	return affected, nil
}

func (s *Service) GetAll(ctx context.Context) ([]*Employee, error) {
	list, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, err
	}
	return FromDataModels(list), nil
}

// GetByID returns ErrEmployeeNotFound when no employee has the id.
func (s *Service) GetByID(ctx context.Context, id string) (*Employee, error) {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get employee", "employee_id", id, "error", err)
		return nil, err
	}
	if found == nil {
		return nil, ErrEmployeeNotFound
	}
	return FromDataModel(found), nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}

func changedFields(employeeFields, addressFields map[string]interface{}) []string {
	out := make([]string, 0, len(employeeFields)+len(addressFields))
	for k := range employeeFields {
		if k == "modified_at" {
			continue
		}
		out = append(out, k)
	}
	for k := range addressFields {
		out = append(out, fmt.Sprintf("address.%s", k))
	}
	sort.Strings(out)
	return out
}
