package appointment

import (
	"context"
	"time"

	"github.com/fluepoint/service-crm/internal/models"
)

type Repository interface {
	// -------- Tenant --------
	GetTenantByID(
		ctx context.Context,
		id uint,
	) (*models.Tenant, error)

	// -------- Service catalog --------
	GetService(
		ctx context.Context,
		tenantID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Customer --------
	GetCustomer(
		ctx context.Context,
		tenantID uint,
		customerID uint,
	) (*models.Customer, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	CountConflicting(
		ctx context.Context,
		f ConflictFilter,
	) (int64, error)

	// -------- Appointment (state change) --------
	GetAppointmentForTenant(
		ctx context.Context,
		appointmentID uint,
		tenantID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		tenantID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
