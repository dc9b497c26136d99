package holiday

import (
	errors "github.com/frahmantamala/employee-management/internal"
)

const dateLayout = "2006-01-02"

type HolidayResponse struct {
	HolidayID string `json:"holiday_id"`
	Country   string `json:"country"`
	Year      int    `json:"year"`
	Date      string `json:"date"`
	LocalName string `json:"localName"`
	Name      string `json:"name"`
}

func (h *Holiday) ToResponse() HolidayResponse {
	return HolidayResponse{
		HolidayID: h.ID,
		Country:   h.Country,
		Year:      h.Year,
		Date:      h.Date.Format(dateLayout),
		LocalName: h.LocalName,
		Name:      h.Name,
	}
}

func ToResponses(list []*Holiday) []HolidayResponse {
	out := make([]HolidayResponse, 0, len(list))
	for _, h := range list {
		out = append(out, h.ToResponse())
	}
	return out
}

const (
	MinYear = 1900
	MaxYear = 2200
)

func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return errors.ErrInvalidYear
	}
	return nil
}

// Domain errors
var (
	ErrEmployeeNotFound = errors.ErrEmployeeNotFound
	ErrNoCountry        = errors.ErrNoCountry
	ErrInvalidYear      = errors.ErrInvalidYear
)
