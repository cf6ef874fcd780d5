package models

import "time"

// Material is one entry of the process-wide material master: market price
// and emission factor per kilogram. Entries are upserted, never deleted
// through the API; nodes referencing a missing material rate at zero.
type Material struct {
	Name       string    `gorm:"primaryKey;type:varchar(64)" json:"name" validate:"required"`
	PricePerKg float64   `gorm:"not null;default:0" json:"price_per_kg" validate:"gte=0"`
	CO2PerKg   float64   `gorm:"column:co2_per_kg;not null;default:0" json:"co2_per_kg" validate:"gte=0"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
