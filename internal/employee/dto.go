package employee

import (
	"time"

	errors "github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/core/common/validation"
)

type AddressDTO struct {
	Street      string `json:"street"`
	HouseNumber string `json:"house_number"`
	Country     string `json:"country"`
	State       string `json:"state"`
	Zipcode     string `json:"zipcode"`
}

// CreateEmployeeDTO is the POST /employees payload.
type CreateEmployeeDTO struct {
	Name     string      `json:"name"`
	Position string      `json:"position"`
	Email    string      `json:"email"`
	Salary   float64     `json:"salary"`
	Address  *AddressDTO `json:"address"`
}

// Validate checks the email first so a malformed address is reported on its own.
func (dto CreateEmployeeDTO) Validate() error {
	if appErr := validation.ValidateEmail(dto.Email); appErr != nil {
		return appErr
	}
	if dto.Address == nil {
		return errors.ErrAddressRequired
	}

	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(255)
	v.Field("position", dto.Position).MaxLength(255)
	v.Field("salary", dto.Salary).NonNegative(errors.ErrCodeInvalidSalary)
	v.Field("address.country", dto.Address.Country).Required().MaxLength(100)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

type UpdateAddressDTO struct {
	Street      *string `json:"street,omitempty"`
	HouseNumber *string `json:"house_number,omitempty"`
	Country     *string `json:"country,omitempty"`
	State       *string `json:"state,omitempty"`
	Zipcode     *string `json:"zipcode,omitempty"`
}

// UpdateEmployeeDTO is a partial update; nil fields are left untouched.
type UpdateEmployeeDTO struct {
	Name     *string           `json:"name,omitempty"`
	Position *string           `json:"position,omitempty"`
	Email    *string           `json:"email,omitempty"`
	Salary   *float64          `json:"salary,omitempty"`
	Address  *UpdateAddressDTO `json:"address,omitempty"`
}

func (dto UpdateEmployeeDTO) Validate() error {
	if dto.Email != nil {
		if appErr := validation.ValidateEmail(*dto.Email); appErr != nil {
			return appErr
		}
	}

	v := validation.NewValidator()
	if dto.Name != nil {
		v.Field("name", dto.Name).Required()
	}
	if dto.Salary != nil {
		v.Field("salary", *dto.Salary).NonNegative(errors.ErrCodeInvalidSalary)
	}
	if dto.Address != nil && dto.Address.Country != nil {
		v.Field("address.country", dto.Address.Country).Required()
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// EmployeeFields maps the present employee fields to their columns.
func (dto UpdateEmployeeDTO) EmployeeFields() map[string]interface{} {
	fields := make(map[string]interface{})
	if dto.Name != nil {
		fields["name"] = *dto.Name
	}
	if dto.Position != nil {
		fields["position"] = *dto.Position
	}
	if dto.Email != nil {
		fields["email"] = *dto.Email
	}
	if dto.Salary != nil {
		fields["salary"] = *dto.Salary
	}
	return fields
}

func (dto UpdateEmployeeDTO) AddressFields() map[string]interface{} {
	fields := make(map[string]interface{})
	if dto.Address == nil {
		return fields
	}
	a := dto.Address
	if a.Street != nil {
		fields["street"] = *a.Street
	}
	if a.HouseNumber != nil {
		fields["house_number"] = *a.HouseNumber
	}
	if a.Country != nil {
		fields["country"] = *a.Country
	}
	if a.State != nil {
		fields["state"] = *a.State
	}
	if a.Zipcode != nil {
		fields["zipcode"] = *a.Zipcode
	}
	return fields
}

type AddressResponse struct {
	AddressID   string `json:"address_id"`
	Street      string `json:"street"`
	HouseNumber string `json:"house_number"`
	Country     string `json:"country"`
	State       string `json:"state"`
	Zipcode     string `json:"zipcode"`
	EmployeeID  string `json:"employee_id"`
}

type EmployeeResponse struct {
	EmployeeID string           `json:"employee_id"`
	Name       string           `json:"name"`
	Position   string           `json:"position"`
	Email      string           `json:"email"`
	Salary     float64          `json:"salary"`
	CreatedAt  string           `json:"created_at"`
	ModifiedAt string           `json:"modified_at"`
	Address    *AddressResponse `json:"address,omitempty"`
}

// ToResponse renders timestamps in loc, or UTC when loc is nil.
func (e *Employee) ToResponse(loc *time.Location) EmployeeResponse {
	if loc == nil {
		loc = time.UTC
	}
	resp := EmployeeResponse{
		EmployeeID: e.ID,
		Name:       e.Name,
		Position:   e.Position,
		Email:      e.Email,
		Salary:     e.Salary,
		CreatedAt:  e.CreatedAt.In(loc).Format(time.RFC3339),
		ModifiedAt: e.ModifiedAt.In(loc).Format(time.RFC3339),
	}
	if a := e.Address; a != nil {
		resp.Address = &AddressResponse{
			AddressID:   a.ID,
			Street:      a.Street,
			HouseNumber: a.HouseNumber,
			Country:     a.Country,
			State:       a.State,
			Zipcode:     a.Zipcode,
			EmployeeID:  a.EmployeeID,
		}
	}
	return resp
}

func ToResponses(list []*Employee, loc *time.Location) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, e.ToResponse(loc))
	}
	return out
}

// Domain errors
var (
	ErrEmployeeNotFound = errors.ErrEmployeeNotFound
	ErrDuplicateEmail   = errors.ErrDuplicateEmail
	ErrInvalidEmail     = errors.ErrInvalidEmail
	ErrAddressRequired  = errors.ErrAddressRequired
)
