package middleware

import (
	"encoding/json"
	"net/http"
	"time"
	_ "time/tzdata" // zone database for images without /usr/share/zoneinfo

	"github.com/frahmantamala/employee-management/internal"
)

// Timezone reads the optional ?timezone= query parameter (an IANA zone name)
// and stores the location for response rendering. Unknown zones are rejected
// with 400.
func Timezone(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("timezone")
		if name == "" {
			next.ServeHTTP(w, r)
			return
		}

		loc, err := time.LoadLocation(name)
		if err != nil {
			appErr := internal.ErrInvalidTimezone.WithDetails(internal.ValidationErrors{
				Errors: []internal.ValidationError{
					{Field: "timezone", Message: "unknown timezone " + name, Code: string(internal.ErrCodeInvalidTimezone)},
				},
			})
			status, body := appErr.ToHTTPResponse()
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(body)
			return
		}

		next.ServeHTTP(w, r.WithContext(internal.ContextWithTimezone(r.Context(), loc)))
	})
}
