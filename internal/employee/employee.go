package employee

import (
	"time"

	employeeDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/employee"
)

type Employee struct {
	ID         string
	Name       string
	Position   string
	Email      string
	Salary     float64
	CreatedAt  time.Time
	ModifiedAt time.Time
	Address    *Address
}

type Address struct {
	ID          string
	Street      string
	HouseNumber string
	Country     string
	State       string
	Zipcode     string
	EmployeeID  string
}

// Country returns the holiday lookup key, empty when the employee has no address.
func (e *Employee) Country() string {
	if e.Address == nil {
		return ""
	}
	return e.Address.Country
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	if e == nil {
		return nil
	}
	return &employeeDatamodel.Employee{
		EmployeeID: e.ID,
		Name:       e.Name,
		Position:   e.Position,
		Email:      e.Email,
		Salary:     e.Salary,
		CreatedAt:  e.CreatedAt,
		ModifiedAt: e.ModifiedAt,
		Address:    AddressToDataModel(e.Address),
	}
}

func AddressToDataModel(a *Address) *employeeDatamodel.Address {
	if a == nil {
		return nil
	}
	return &employeeDatamodel.Address{
		AddressID:   a.ID,
		Street:      a.Street,
		HouseNumber: a.HouseNumber,
		Country:     a.Country,
		State:       a.State,
		Zipcode:     a.Zipcode,
		EmployeeID:  a.EmployeeID,
	}
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	if e == nil {
		return nil
	}
	return &Employee{
		ID:         e.EmployeeID,
		Name:       e.Name,
		Position:   e.Position,
		Email:      e.Email,
		Salary:     e.Salary,
		CreatedAt:  e.CreatedAt,
		ModifiedAt: e.ModifiedAt,
		Address:    AddressFromDataModel(e.Address),
	}
}

func AddressFromDataModel(a *employeeDatamodel.Address) *Address {
	if a == nil {
		return nil
	}
	return &Address{
		ID:          a.AddressID,
		Street:      a.Street,
		HouseNumber: a.HouseNumber,
		Country:     a.Country,
		State:       a.State,
		Zipcode:     a.Zipcode,
		EmployeeID:  a.EmployeeID,
	}
}

func FromDataModels(list []*employeeDatamodel.Employee) []*Employee {
	out := make([]*Employee, 0, len(list))
	for _, e := range list {
		out = append(out, FromDataModel(e))
	}
	return out
}
