package main_test

import (
	"context"
	"testing"

	"github.com/frahmantamala/employee-management/internal"
	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/viper"
)

func TestEmployeeManagement(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "EmployeeManagement Suite")
}

var _ = Describe("shipped configuration", func() {
	It("loads config.yml into a valid Config", func() {
		v := viper.New()
		v.SetConfigFile("config.yml")
		Expect(v.ReadInConfig()).To(Succeed())

		var cfg internal.Config
		Expect(v.Unmarshal(&cfg)).To(Succeed())
		cfg.ApplyDefaults()

		Expect(cfg.Validate()).To(Succeed())
		Expect(cfg.Server.Port).To(Equal(3000))
		Expect(cfg.Scheduler.WindowDays).To(Equal(7))
	})

	It("ships a valid OpenAPI document", func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromFile("api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Validate(context.Background())).To(Succeed())
		Expect(doc.Paths.Find("/api/employees/{id}/holidays/{year}")).NotTo(BeNil())
	})
})
