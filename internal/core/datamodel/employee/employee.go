package employee

import "time"

type Employee struct {
	EmployeeID string    `gorm:"column:employee_id;primaryKey;type:uuid"`
	Name       string    `gorm:"column:name;not null"`
	Position   string    `gorm:"column:position;not null"`
	Email      string    `gorm:"column:email;uniqueIndex;not null"`
	Salary     float64   `gorm:"column:salary;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
	ModifiedAt time.Time `gorm:"column:modified_at;not null"`
	Address    *Address  `gorm:"foreignKey:EmployeeID;references:EmployeeID"`
}

func (Employee) TableName() string {
	return "employees"
}

// Address is owned by exactly one Employee and shares its lifecycle.
type Address struct {
	AddressID   string `gorm:"column:address_id;primaryKey;type:uuid"`
	Street      string `gorm:"column:street;not null"`
	HouseNumber string `gorm:"column:house_number;not null"`
	Country     string `gorm:"column:country;not null;index"`
	State       string `gorm:"column:state;not null"`
	Zipcode     string `gorm:"column:zipcode;not null"`
	EmployeeID  string `gorm:"column:employee_id;type:uuid;not null;uniqueIndex"`
}

func (Address) TableName() string {
	return "addresses"
}
