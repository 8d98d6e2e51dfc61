package models

import "time"

// Service is a catalog entry (chimney sweep, inspection, repair, ...)
// referenced by job lines, estimate items and appointments for pricing.
type Service struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index" json:"tenant_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	BasePrice   float64 `json:"base_price"`
	HourlyRate  float64 `json:"hourly_rate"`
	DurationMin int     `gorm:"default:60" json:"duration_min"`

	Category string `gorm:"size:50" json:"category"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
