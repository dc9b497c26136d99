package holiday

import (
	"time"

	holidayDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/holiday"
	sourcetypes "github.com/frahmantamala/employee-management/internal/core/datamodel/holidaysource"
	"github.com/google/uuid"
)

type Holiday struct {
	ID        string
	Country   string
	Year      int
	Date      time.Time
	LocalName string
	Name      string
}

// NewFromSource turns a source record into a cache entry with a fresh id.
func NewFromSource(country string, year int, src sourcetypes.PublicHoliday) (*Holiday, error) {
	date, err := src.ParsedDate()
	if err != nil {
		return nil, err
	}
	name := src.Name
	if name == "" {
		name = src.LocalName
	}
	localName := src.LocalName
	if localName == "" {
		localName = name
	}
	return &Holiday{
		ID:        uuid.NewString(),
		Country:   country,
		Year:      year,
		Date:      date,
		LocalName: localName,
		Name:      name,
	}, nil
}

func ToDataModel(h *Holiday) *holidayDatamodel.Holiday {
	return &holidayDatamodel.Holiday{
		HolidayID: h.ID,
		Country:   h.Country,
		Year:      h.Year,
		Date:      h.Date,
		LocalName: h.LocalName,
		Name:      h.Name,
	}
}

func FromDataModel(h *holidayDatamodel.Holiday) *Holiday {
	return &Holiday{
		ID:        h.HolidayID,
		Country:   h.Country,
		Year:      h.Year,
		Date:      h.Date.UTC(),
		LocalName: h.LocalName,
		Name:      h.Name,
	}
}

func FromDataModels(list []*holidayDatamodel.Holiday) []*Holiday {
	out := make([]*Holiday, 0, len(list))
	for _, h := range list {
		out = append(out, FromDataModel(h))
	}
	return out
}
