package postgres

import (
	"context"
	"errors"

	employeeDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-management/internal/database"
	"github.com/frahmantamala/employee-management/internal/employee"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) conn(ctx context.Context) *gorm.DB {
	return database.FromContext(ctx, r.db)
}

func (r *EmployeeRepository) Create(ctx context.Context, e *employeeDatamodel.Employee) error {
	return r.conn(ctx).Omit(clause.Associations).Create(e).Error
}

func (r *EmployeeRepository) CreateAddress(ctx context.Context, a *employeeDatamodel.Address) error {
	return r.conn(ctx).Create(a).Error
}

func (r *EmployeeRepository) GetAll(ctx context.Context) ([]*employeeDatamodel.Employee, error) {
	var employees []*employeeDatamodel.Employee
	err := r.conn(ctx).Preload("Address").Order("created_at ASC").Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*employeeDatamodel.Employee, error) {
	var e employeeDatamodel.Employee
	err := r.conn(ctx).Preload("Address").Where("employee_id = ?", id).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// GetByIDForUpdate reads the employee row with SELECT ... FOR UPDATE. It only
// serializes writers when called inside a transaction.
func (r *EmployeeRepository) GetByIDForUpdate(ctx context.Context, id string) (*employeeDatamodel.Employee, error) {
	var e employeeDatamodel.Employee
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ?", id).
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.conn(ctx).Model(&employeeDatamodel.Employee{}).Where("employee_id = ?", id).Updates(fields).Error
}

func (r *EmployeeRepository) UpdateAddress(ctx context.Context, employeeID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.conn(ctx).Model(&employeeDatamodel.Address{}).Where("employee_id = ?", employeeID).Updates(fields).Error
}

func (r *EmployeeRepository) DeleteAddress(ctx context.Context, employeeID string) error {
	return r.conn(ctx).Where("employee_id = ?", employeeID).Delete(&employeeDatamodel.Address{}).Error
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Where("employee_id = ?", id).Delete(&employeeDatamodel.Employee{}).Error
}

// GetByCountries returns the employees whose address country is in countries.
func (r *EmployeeRepository) GetByCountries(ctx context.Context, countries []string) ([]*employeeDatamodel.Employee, error) {
	var employees []*employeeDatamodel.Employee
	if len(countries) == 0 {
		return employees, nil
	}

	db := r.conn(ctx)
	located := db.Session(&gorm.Session{NewDB: true}).
		Model(&employeeDatamodel.Address{}).
		Select("employee_id").
		Where("country IN ?", countries)

	err := db.Preload("Address").
		Where("employee_id IN (?)", located).
		Order("created_at ASC").
		Find(&employees).Error
	return employees, err
}
