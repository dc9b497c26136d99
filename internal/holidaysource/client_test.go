package holidaysource_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/frahmantamala/employee-management/internal/holidaysource"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestHolidaySource(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Holiday Source Suite")
}

var _ = Describe("Holiday source client", func() {
	var (
		server   *httptest.Server
		hits     int32
		respond  func(w http.ResponseWriter, r *http.Request)
		client   *holidaysource.Client
		lastPath atomic.Value
	)

	BeforeEach(func() {
		atomic.StoreInt32(&hits, 0)
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			lastPath.Store(r.URL.Path)
			respond(w, r)
		}))
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		client = holidaysource.NewClient(holidaysource.Config{
			BaseURL:      server.URL + "/api/v3/PublicHolidays",
			Timeout:      time.Second,
			MaxRetries:   2,
			RetryBackoff: time.Millisecond,
		}, logger)
	})

	AfterEach(func() {
		server.Close()
	})

	It("requests /{year}/{country} and decodes the records", func() {
		respond = func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[
				{"date":"2024-01-01","localName":"New Year's Day","name":"New Year's Day","countryCode":"US"},
				{"date":"2024-07-04","localName":"Independence Day","name":"Independence Day","countryCode":"US"}
			]`))
		}

		holidays := client.PublicHolidays(context.Background(), "US", 2024)
		Expect(holidays).To(HaveLen(2))
		Expect(holidays[1].LocalName).To(Equal("Independence Day"))
		Expect(lastPath.Load()).To(Equal("/api/v3/PublicHolidays/2024/US"))
	})

	It("retries server errors and then succeeds", func() {
		respond = func(w http.ResponseWriter, r *http.Request) {
			if atomic.LoadInt32(&hits) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(`[{"date":"2024-12-25","localName":"Christmas","name":"Christmas Day"}]`))
		}

		holidays := client.PublicHolidays(context.Background(), "US", 2024)
		Expect(holidays).To(HaveLen(1))
		Expect(atomic.LoadInt32(&hits)).To(Equal(int32(3)))
	})

	It("degrades to an empty result when retries are exhausted", func() {
		respond = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}

		holidays := client.PublicHolidays(context.Background(), "US", 2024)
		Expect(holidays).NotTo(BeNil())
		Expect(holidays).To(BeEmpty())
		Expect(atomic.LoadInt32(&hits)).To(Equal(int32(3)))
	})

	It("does not retry client errors", func() {
		respond = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}

		Expect(client.PublicHolidays(context.Background(), "XX", 2024)).To(BeEmpty())
		Expect(atomic.LoadInt32(&hits)).To(Equal(int32(1)))
	})

	It("treats an unknown country as no holidays", func() {
		respond = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}

		Expect(client.PublicHolidays(context.Background(), "ZZ", 2024)).To(BeEmpty())
	})

	It("treats malformed JSON as no holidays", func() {
		respond = func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"not":"a list"`))
		}

		Expect(client.PublicHolidays(context.Background(), "US", 2024)).To(BeEmpty())
	})

	It("skips records without a usable date", func() {
		respond = func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"date":"garbage","name":"Bad"},{"date":"2024-05-01","name":"Labour Day","localName":"Labour Day"}]`))
		}

		holidays := client.PublicHolidays(context.Background(), "DE", 2024)
		Expect(holidays).To(HaveLen(1))
		Expect(holidays[0].Name).To(Equal("Labour Day"))
	})

	It("gives up when the server is unreachable", func() {
		server.Close()
		Expect(client.PublicHolidays(context.Background(), "US", 2024)).To(BeEmpty())
	})
})
