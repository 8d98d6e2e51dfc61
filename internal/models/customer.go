package models

import "time"

type Customer struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index" json:"tenant_id"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`
	Email     string `gorm:"size:100" json:"email"`
	Phone     string `gorm:"size:20" json:"phone"`

	Address string `gorm:"size:255" json:"address"`
	City    string `gorm:"size:100" json:"city"`
	State   string `gorm:"size:50" json:"state"`
	Zip     string `gorm:"size:20" json:"zip"`

	// active | inactive | prospect
	Status string `gorm:"size:20;default:'active'" json:"status"`

	AssignedTo *uint  `json:"assigned_to"`
	CreatedBy  *uint  `json:"created_by"`
	Notes      string `gorm:"size:500" json:"notes"`

	Jobs         []Job         `gorm:"foreignKey:CustomerID" json:"jobs,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:CustomerID" json:"appointments,omitempty"`
	Estimates    []Estimate    `gorm:"foreignKey:CustomerID" json:"estimates,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
