package holiday

import "time"

// Holiday is an append-only cache entry of the external holiday source.
type Holiday struct {
	HolidayID string    `gorm:"column:holiday_id;primaryKey;type:uuid"`
	Country   string    `gorm:"column:country;not null;index:idx_holidays_country_year"`
	Year      int       `gorm:"column:year;not null;index:idx_holidays_country_year"`
	Date      time.Time `gorm:"column:holiday_date;type:date;not null;index"`
	LocalName string    `gorm:"column:local_name;not null"`
	Name      string    `gorm:"column:name;not null"`
}

func (Holiday) TableName() string {
	return "holidays"
}
