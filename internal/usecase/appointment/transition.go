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

// TransitionAppointment covers the lighter status moves (confirm, no-show)
// that share one shape: load, guard, save, audit.
type TransitionAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewTransitionAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *TransitionAppointment {
	return &TransitionAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *TransitionAppointment) Confirm(
	ctx context.Context,
	tenantID uint,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.apply(ctx, tenantID, userID, appointmentID, "appointment_confirmed", domain.Confirm)
}

func (uc *TransitionAppointment) MarkNoShow(
	ctx context.Context,
	tenantID uint,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.apply(ctx, tenantID, userID, appointmentID, "appointment_no_show", domain.MarkNoShow)
}

func (uc *TransitionAppointment) apply(
	ctx context.Context,
	tenantID uint,
	userID uint,
	appointmentID uint,
	action string,
	transition func(*models.Appointment, time.Time) error,
) (*models.Appointment, error) {

	tenant, err := uc.repo.GetTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForTenant(ctx, appointmentID, tenantID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(tenant.Timezone)
	if err := transition(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   &userID,
		Action:   action,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
