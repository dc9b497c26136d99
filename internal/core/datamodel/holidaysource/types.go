package holidaysource

import (
	"errors"
	"time"
)

const dateLayout = "2006-01-02"

// PublicHoliday is one record as returned by the public holiday API.
type PublicHoliday struct {
	Date        string `json:"date"`
	LocalName   string `json:"localName"`
	Name        string `json:"name"`
	CountryCode string `json:"countryCode,omitempty"`
}

func (p PublicHoliday) Validate() error {
	if p.Date == "" {
		return errors.New("date is required")
	}
	if p.Name == "" && p.LocalName == "" {
		return errors.New("name is required")
	}
	return nil
}

// ParsedDate returns the holiday date at UTC midnight.
func (p PublicHoliday) ParsedDate() (time.Time, error) {
	return time.ParseInLocation(dateLayout, p.Date, time.UTC)
}
