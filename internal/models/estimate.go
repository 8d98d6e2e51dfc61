package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Estimate struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	TenantID   uint `gorm:"index" json:"tenant_id"`
	CustomerID uint `gorm:"index" json:"customer_id"`

	Reference string `gorm:"size:50;uniqueIndex" json:"reference"`
	Title     string `gorm:"size:150" json:"title"`

	// draft | pending | sent | accepted | rejected | expired
	Status string `gorm:"size:20;default:'draft'" json:"status"`

	Subtotal       float64 `json:"subtotal"`
	TaxAmount      float64 `json:"tax_amount"`
	DiscountAmount float64 `json:"discount_amount"`

	ValidUntil *time.Time `json:"valid_until"`
	SentAt     *time.Time `json:"sent_at"`
	AcceptedAt *time.Time `json:"accepted_at"`

	Items []EstimateItem `gorm:"foreignKey:EstimateID" json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TotalAmount is recomputed from its components on every read and is
// clamped at zero when the discount exceeds subtotal plus tax.
func (e *Estimate) TotalAmount() float64 {
	total := e.Subtotal + e.TaxAmount - e.DiscountAmount
	if total < 0 {
		return 0
	}
	return total
}

func (e *Estimate) BeforeCreate(tx *gorm.DB) error {
	if e.Reference == "" {
		e.Reference = "EST-" + uuid.NewString()
	}
	return nil
}

type EstimateItem struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	EstimateID uint `gorm:"index" json:"estimate_id"`

	ServiceID *uint    `json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`

	Description string  `gorm:"size:255" json:"description"`
	Quantity    int     `gorm:"default:1" json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *EstimateItem) TotalPrice() float64 {
	return float64(i.Quantity) * i.UnitPrice
}
