package postgres

import (
	"context"
	"time"

	holidayDatamodel "github.com/frahmantamala/employee-management/internal/core/datamodel/holiday"
	"github.com/frahmantamala/employee-management/internal/database"
	"github.com/frahmantamala/employee-management/internal/holiday"
	"gorm.io/gorm"
)

const batchSize = 100

type HolidayRepository struct {
	db *gorm.DB
}

func NewHolidayRepository(db *gorm.DB) holiday.RepositoryAPI {
	return &HolidayRepository{db: db}
}

func (r *HolidayRepository) GetByCountryAndYear(ctx context.Context, country string, year int) ([]*holidayDatamodel.Holiday, error) {
	var holidays []*holidayDatamodel.Holiday
	err := database.FromContext(ctx, r.db).
		Where("country = ? AND year = ?", country, year).
		Order("holiday_date ASC").
		Find(&holidays).Error
	return holidays, err
}

func (r *HolidayRepository) BulkCreate(ctx context.Context, holidays []*holidayDatamodel.Holiday) error {
	if len(holidays) == 0 {
		return nil
	}
	return database.FromContext(ctx, r.db).CreateInBatches(holidays, batchSize).Error
}

// GetBetween returns holidays dated within [from, to], both ends inclusive.
func (r *HolidayRepository) GetBetween(ctx context.Context, from, to time.Time) ([]*holidayDatamodel.Holiday, error) {
	var holidays []*holidayDatamodel.Holiday
	err := database.FromContext(ctx, r.db).
		Where("holiday_date BETWEEN ? AND ?", from, to).
		Order("holiday_date ASC").
		Find(&holidays).Error
	return holidays, err
}
