package appointment

import (
	"context"
	"time"

	domain "github.com/fluepoint/service-crm/internal/domain/appointment"
)

// ======================================================
// INPUT
// ======================================================

type CheckAvailabilityInput struct {
	TenantID uint

	StartTime time.Time
	EndTime   time.Time

	// supports "does my own update still fit"
	ExcludeAppointmentID *uint

	// nil means tenant-wide: the window must be free for everyone
	AssignedTo *uint
}

// ======================================================
// USE CASE
// ======================================================

type CheckAvailability struct {
	repo domain.Repository
}

func NewCheckAvailability(repo domain.Repository) *CheckAvailability {
	return &CheckAvailability{repo: repo}
}

// Execute reports whether the candidate window is free. Read-only; callers
// that create afterwards accept the check-then-insert race.
func (uc *CheckAvailability) Execute(
	ctx context.Context,
	in CheckAvailabilityInput,
) (bool, error) {

	count, err := uc.repo.CountConflicting(ctx, domain.ConflictFilter{
		TenantID:   in.TenantID,
		Start:      in.StartTime,
		End:        in.EndTime,
		ExcludeID:  in.ExcludeAppointmentID,
		AssignedTo: in.AssignedTo,
	})
	if err != nil {
		return false, err
	}

	return count == 0, nil
}
