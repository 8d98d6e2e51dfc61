package appointment

import (
	"context"
	"time"

	"github.com/fluepoint/service-crm/internal/audit"
	domain "github.com/fluepoint/service-crm/internal/domain/appointment"
	"github.com/fluepoint/service-crm/internal/httperr"
	"github.com/fluepoint/service-crm/internal/models"
	"github.com/fluepoint/service-crm/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	TenantID uint
	UserID   uint

	CustomerID uint
	ServiceID  *uint
	AssignedTo *uint

	Date string
	Time string

	// overrides the service's default duration when > 0
	DurationMinutes int

	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	tenant, err := uc.repo.GetTenantByID(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(tenant.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if _, err := uc.repo.GetCustomer(ctx, in.TenantID, in.CustomerID); err != nil {
		return nil, httperr.ErrBusiness("customer_not_found")
	}

	duration := in.DurationMinutes
	if duration <= 0 && in.ServiceID != nil {
		svc, err := uc.repo.GetService(ctx, in.TenantID, *in.ServiceID)
		if err != nil {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		duration = svc.DurationMin
	}
	if duration <= 0 {
		duration = 60
	}

	end := start.Add(time.Duration(duration) * time.Minute)

	count, err := uc.repo.CountConflicting(ctx, domain.ConflictFilter{
		TenantID:   in.TenantID,
		Start:      start,
		End:        end,
		AssignedTo: in.AssignedTo,
	})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, httperr.ErrField("time_slot", "time_conflict")
	}

	ap := &models.Appointment{
		TenantID:        in.TenantID,
		CustomerID:      &in.CustomerID,
		ServiceID:       in.ServiceID,
		AssignedTo:      in.AssignedTo,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: duration,
		Status:          string(domain.InitialStatus()),
		Notes:           in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: in.TenantID,
		UserID:   &in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
