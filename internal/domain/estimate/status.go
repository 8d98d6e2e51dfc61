package estimate

import (
	"time"

	"github.com/fluepoint/service-crm/internal/httperr"
	"github.com/fluepoint/service-crm/internal/models"
)

// ===============================
// Estimate Status
// ===============================

type Status string

const (
	StatusDraft    Status = "draft"
	StatusPending  Status = "pending"
	StatusSent     Status = "sent"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusExpired  Status = "expired"
)

// PendingStatuses is the single source of truth for every "pending
// estimate" aggregate and filter: not yet accepted, rejected or expired.
var PendingStatuses = []Status{StatusDraft, StatusSent, StatusPending}

func IsPending(s Status) bool {
	for _, p := range PendingStatuses {
		if s == p {
			return true
		}
	}
	return false
}

// IsExpired checks the validity window, not the stored status: an estimate
// whose valid_until has passed reads as expired even before the nightly
// status sweep flips it.
func IsExpired(e *models.Estimate, now time.Time) bool {
	return e.ValidUntil != nil && e.ValidUntil.Before(now)
}

// ===============================
// Validations
// ===============================

func CanMarkSent(current Status) error {
	if current != StatusDraft && current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanMarkAccepted(current Status) error {
	if current != StatusSent && current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanMarkRejected(current Status) error {
	if current != StatusSent && current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// ===============================
// Domain Actions
// ===============================

func MarkSent(e *models.Estimate, now time.Time) error {
	if err := CanMarkSent(Status(e.Status)); err != nil {
		return err
	}
	e.Status = string(StatusSent)
	e.SentAt = &now
	return nil
}

func MarkAccepted(e *models.Estimate, now time.Time) error {
	if err := CanMarkAccepted(Status(e.Status)); err != nil {
		return err
	}
	e.Status = string(StatusAccepted)
	e.AcceptedAt = &now
	return nil
}

func MarkRejected(e *models.Estimate, _ time.Time) error {
	if err := CanMarkRejected(Status(e.Status)); err != nil {
		return err
	}
	e.Status = string(StatusRejected)
	return nil
}
