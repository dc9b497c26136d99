package employee_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/database"
	"github.com/frahmantamala/employee-management/internal/database/sqlitetest"
	"github.com/frahmantamala/employee-management/internal/employee"
	employeePostgres "github.com/frahmantamala/employee-management/internal/employee/postgres"
	"github.com/frahmantamala/employee-management/internal/transport"
	"github.com/frahmantamala/employee-management/internal/transport/middleware"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Employee Handler Integration", func() {
	var router *chi.Mux

	BeforeEach(func() {
		db, err := sqlitetest.Open()
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := employee.NewService(
			employeePostgres.NewEmployeeRepository(db),
			database.NewTxManager(db),
			nil,
			internal.SystemClock{},
			slogger,
		)
		handler := employee.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		router.Post("/employees", handler.CreateEmployee)
		router.Get("/employees", handler.GetEmployees)
		router.With(middleware.Timezone).Get("/employees/{id}", handler.GetEmployee)
		router.Put("/employees/{id}", handler.UpdateEmployee)
		router.Delete("/employees/{id}", handler.DeleteEmployee)
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var reader *bytes.Reader
		if body != "" {
			reader = bytes.NewReader([]byte(body))
		} else {
			reader = bytes.NewReader(nil)
		}
		req := httptest.NewRequest(method, path, reader)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	errorCode := func(w *httptest.ResponseRecorder) string {
		var resp struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		return resp.Error.Code
	}

	const johnDoe = `{
		"name": "John Doe",
		"email": "john.doe@example.com",
		"salary": 60000,
		"address": {"street": "Main St", "house_number": "1", "country": "US", "state": "NY", "zipcode": "10001"}
	}`

	It("runs the create, read, bad update, delete lifecycle", func() {
		w := do(http.MethodPost, "/employees", johnDoe)
		Expect(w.Code).To(Equal(http.StatusCreated))

		var created employee.EmployeeResponse
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		Expect(created.EmployeeID).NotTo(BeEmpty())
		Expect(created.Address).NotTo(BeNil())
		Expect(created.Address.Country).To(Equal("US"))

		w = do(http.MethodGet, "/employees/"+created.EmployeeID, "")
		Expect(w.Code).To(Equal(http.StatusOK))
		var fetched employee.EmployeeResponse
		Expect(json.NewDecoder(w.Body).Decode(&fetched)).To(Succeed())
		Expect(fetched.Name).To(Equal("John Doe"))
		Expect(fetched.Email).To(Equal("john.doe@example.com"))
		Expect(fetched.Salary).To(Equal(60000.0))

		w = do(http.MethodPut, "/employees/"+created.EmployeeID, `{"email":"not-an-email"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(errorCode(w)).To(Equal(string(internal.ErrCodeInvalidEmail)))

		w = do(http.MethodGet, "/employees/"+created.EmployeeID, "")
		Expect(json.NewDecoder(w.Body).Decode(&fetched)).To(Succeed())
		Expect(fetched.Email).To(Equal("john.doe@example.com"))

		w = do(http.MethodDelete, "/employees/"+created.EmployeeID, "")
		Expect(w.Code).To(Equal(http.StatusNoContent))

		w = do(http.MethodGet, "/employees/"+created.EmployeeID, "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("returns 409 for a duplicate email", func() {
		Expect(do(http.MethodPost, "/employees", johnDoe).Code).To(Equal(http.StatusCreated))

		w := do(http.MethodPost, "/employees", johnDoe)
		Expect(w.Code).To(Equal(http.StatusConflict))
		Expect(errorCode(w)).To(Equal(string(internal.ErrCodeDuplicateEmail)))
	})

	It("returns 400 for a malformed email on create", func() {
		w := do(http.MethodPost, "/employees", strings.Replace(johnDoe, "john.doe@example.com", "nope", 1))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 400 for an unreadable body", func() {
		w := do(http.MethodPost, "/employees", `{"name":`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(errorCode(w)).To(Equal(string(internal.ErrCodeInvalidBody)))
	})

	It("returns the updated employee after a PUT", func() {
		w := do(http.MethodPost, "/employees", johnDoe)
		var created employee.EmployeeResponse
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())

		w = do(http.MethodPut, "/employees/"+created.EmployeeID, `{"position":"Manager","address":{"zipcode":"10002"}}`)
		Expect(w.Code).To(Equal(http.StatusOK))
		var updated employee.EmployeeResponse
		Expect(json.NewDecoder(w.Body).Decode(&updated)).To(Succeed())
		Expect(updated.Position).To(Equal("Manager"))
		Expect(updated.Address.Zipcode).To(Equal("10002"))
	})

	It("returns 404 for unknown and malformed ids", func() {
		Expect(do(http.MethodGet, "/employees/6f1a0c1e-8b9e-4c55-9d6f-1d2c3b4a5e6f", "").Code).To(Equal(http.StatusNotFound))
		Expect(do(http.MethodGet, "/employees/not-a-uuid", "").Code).To(Equal(http.StatusNotFound))
		Expect(do(http.MethodPut, "/employees/6f1a0c1e-8b9e-4c55-9d6f-1d2c3b4a5e6f", `{"name":"x"}`).Code).To(Equal(http.StatusNotFound))
		Expect(do(http.MethodDelete, "/employees/6f1a0c1e-8b9e-4c55-9d6f-1d2c3b4a5e6f", "").Code).To(Equal(http.StatusNotFound))
	})

	It("lists employees", func() {
		Expect(do(http.MethodPost, "/employees", johnDoe).Code).To(Equal(http.StatusCreated))

		w := do(http.MethodGet, "/employees", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		var list []employee.EmployeeResponse
		Expect(json.NewDecoder(w.Body).Decode(&list)).To(Succeed())
		Expect(list).To(HaveLen(1))
	})

	It("renders timestamps in the requested timezone", func() {
		w := do(http.MethodPost, "/employees", johnDoe)
		var created employee.EmployeeResponse
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		Expect(created.CreatedAt).To(HaveSuffix("Z"))

		w = do(http.MethodGet, "/employees/"+created.EmployeeID+"?timezone=Asia/Jakarta", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		var local employee.EmployeeResponse
		Expect(json.NewDecoder(w.Body).Decode(&local)).To(Succeed())
		Expect(local.CreatedAt).To(HaveSuffix("+07:00"))
		Expect(local.ModifiedAt).To(HaveSuffix("+07:00"))

		Expect(do(http.MethodGet, "/employees/"+created.EmployeeID+"?timezone=Bad/Zone", "").Code).To(Equal(http.StatusBadRequest))
	})
})
