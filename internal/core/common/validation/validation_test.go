package validation_test

import (
	"testing"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/frahmantamala/employee-management/internal/core/common/validation"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestValidation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Validation Suite")
}

var _ = Describe("Validation", func() {
	DescribeTable("IsValidEmail",
		func(email string, valid bool) {
			Expect(validation.IsValidEmail(email)).To(Equal(valid))
		},
		Entry("plain address", "john.doe@example.com", true),
		Entry("subdomain", "ops@mail.example.co.id", true),
		Entry("missing at", "not-an-email", false),
		Entry("missing domain", "john@", false),
		Entry("blank", "   ", false),
	)

	It("returns ErrInvalidEmail for a malformed email", func() {
		err := validation.ValidateEmail("not-an-email")
		Expect(err).To(MatchError(internal.ErrInvalidEmail))
		Expect(err.Code).To(Equal(internal.ErrCodeInvalidEmail))
	})

	It("collects every failing field", func() {
		v := validation.NewValidator()
		v.Field("name", "").Required()
		v.Field("salary", float64(-1)).NonNegative(internal.ErrCodeInvalidSalary)
		v.Field("position", "Engineer").MaxLength(4)

		err := v.Validate()
		Expect(err).NotTo(BeNil())
		details, ok := err.Details.(internal.ValidationErrors)
		Expect(ok).To(BeTrue())
		Expect(details.Errors).To(HaveLen(3))
		Expect(details.Errors[1].Code).To(Equal(string(internal.ErrCodeInvalidSalary)))
	})

	It("treats a nil string pointer as missing", func() {
		var name *string
		v := validation.NewValidator()
		v.Field("name", name).Required()
		Expect(v.Validate()).NotTo(BeNil())
	})

	It("passes valid input", func() {
		v := validation.NewValidator()
		v.Field("name", "John Doe").Required().MaxLength(255)
		v.Field("email", "john.doe@example.com").Email()
		Expect(v.Validate()).To(BeNil())
	})
})
