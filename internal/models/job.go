package models

import "time"

type Job struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	TenantID   uint `gorm:"index" json:"tenant_id"`
	CustomerID uint `gorm:"index" json:"customer_id"`

	Title       string `gorm:"size:150;not null" json:"title"`
	Description string `gorm:"size:500" json:"description"`

	// scheduled | in_progress | completed | cancelled | on_hold
	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	MaterialsCost float64 `json:"materials_cost"`
	LaborCost     float64 `json:"labor_cost"`

	ScheduledDate *time.Time `json:"scheduled_date"`
	CompletedAt   *time.Time `json:"completed_at"`

	AssignedTo *uint `json:"assigned_to"`

	JobServices []JobService `gorm:"foreignKey:JobID" json:"job_services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TotalCost is always derived; it is never stored as its own column so it
// cannot drift from its components.
func (j *Job) TotalCost() float64 {
	return j.MaterialsCost + j.LaborCost
}

type JobService struct {
	ID    uint `gorm:"primaryKey" json:"id"`
	JobID uint `gorm:"index" json:"job_id"`

	ServiceID *uint    `json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`

	Quantity  int     `gorm:"default:1" json:"quantity"`
	UnitPrice float64 `json:"unit_price"`

	// when set together with an hourly-rated service, the line is billed
	// by hours instead of quantity x unit price
	HoursWorked *float64 `json:"hours_worked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (js *JobService) TotalPrice() float64 {
	if js.HoursWorked != nil && js.Service != nil && js.Service.HourlyRate > 0 {
		return *js.HoursWorked * js.Service.HourlyRate
	}
	return float64(js.Quantity) * js.UnitPrice
}
