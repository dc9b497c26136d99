package postgres_test

import (
	"context"
	"testing"
	"time"

	employeeDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/employee-management/internal/database"
	"github.com/frahmantamala/employee-management/internal/database/sqlitetest"
	"github.com/frahmantamala/employee-management/internal/employee"
	employeePostgres "github.com/frahmantamala/employee-management/internal/employee/postgres"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func TestEmployeePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee Postgres Suite")
}

var _ = Describe("Employee Repository", func() {
	var (
		db   *gorm.DB
		repo employee.RepositoryAPI
		ctx  context.Context
	)

	seed := func(email, country string) *employeeDatamodel.Employee {
		now := time.Now().UTC()
		e := &employeeDatamodel.Employee{
			EmployeeID: uuid.NewString(),
			Name:       "Name " + email,
			Position:   "Engineer",
			Email:      email,
			Salary:     100,
			CreatedAt:  now,
			ModifiedAt: now,
		}
		Expect(repo.Create(ctx, e)).To(Succeed())
		if country != "" {
			Expect(repo.CreateAddress(ctx, &employeeDatamodel.Address{
				AddressID:   uuid.NewString(),
				Street:      "Street",
				HouseNumber: "1",
				Country:     country,
				State:       "State",
				Zipcode:     "0000",
				EmployeeID:  e.EmployeeID,
			})).To(Succeed())
		}
		return e
	}

	BeforeEach(func() {
		var err error
		db, err = sqlitetest.Open()
		Expect(err).NotTo(HaveOccurred())
		repo = employeePostgres.NewEmployeeRepository(db)
		ctx = context.Background()
	})

	Describe("GetByID", func() {
		It("preloads the address", func() {
			e := seed("a@example.com", "US")

			found, err := repo.GetByID(ctx, e.EmployeeID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).NotTo(BeNil())
			Expect(found.Address).NotTo(BeNil())
			Expect(found.Address.Country).To(Equal("US"))
		})

		It("returns nil for a missing row", func() {
			found, err := repo.GetByID(ctx, uuid.NewString())
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeNil())
		})
	})

	Describe("GetByIDForUpdate", func() {
		It("reads the row inside a transaction", func() {
			e := seed("a@example.com", "US")

			err := database.NewTxManager(db).WithinTransaction(ctx, func(ctx context.Context) error {
				found, err := repo.GetByIDForUpdate(ctx, e.EmployeeID)
				Expect(err).NotTo(HaveOccurred())
				Expect(found).NotTo(BeNil())
				return nil
			})
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("CreateAddress", func() {
		It("allows only one address per employee", func() {
			e := seed("a@example.com", "US")
			err := repo.CreateAddress(ctx, &employeeDatamodel.Address{
				AddressID:  uuid.NewString(),
				Country:    "DE",
				EmployeeID: e.EmployeeID,
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Update", func() {
		It("changes only the given columns", func() {
			e := seed("a@example.com", "US")

			Expect(repo.Update(ctx, e.EmployeeID, map[string]interface{}{"name": "Renamed"})).To(Succeed())
			Expect(repo.UpdateAddress(ctx, e.EmployeeID, map[string]interface{}{"state": "TX"})).To(Succeed())

			found, err := repo.GetByID(ctx, e.EmployeeID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Name).To(Equal("Renamed"))
			Expect(found.Email).To(Equal("a@example.com"))
			Expect(found.Address.State).To(Equal("TX"))
			Expect(found.Address.Country).To(Equal("US"))
		})
	})

	Describe("Delete", func() {
		It("removes the address and then the employee", func() {
			e := seed("a@example.com", "US")

			Expect(repo.DeleteAddress(ctx, e.EmployeeID)).To(Succeed())
			Expect(repo.Delete(ctx, e.EmployeeID)).To(Succeed())

			found, err := repo.GetByID(ctx, e.EmployeeID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeNil())
		})
	})

	Describe("GetByCountries", func() {
		It("returns only employees located in the given countries", func() {
			seed("us@example.com", "US")
			seed("de@example.com", "DE")
			seed("fr@example.com", "FR")
			seed("nowhere@example.com", "")

			found, err := repo.GetByCountries(ctx, []string{"US", "DE"})
			Expect(err).NotTo(HaveOccurred())

			emails := make([]string, 0, len(found))
			for _, e := range found {
				Expect(e.Address).NotTo(BeNil())
				emails = append(emails, e.Email)
			}
			Expect(emails).To(ConsistOf("us@example.com", "de@example.com"))
		})

		It("returns nothing for an empty country set", func() {
			seed("us@example.com", "US")
			found, err := repo.GetByCountries(ctx, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeEmpty())
		})
	})
})
