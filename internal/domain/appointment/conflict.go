package appointment

import (
	"time"

	"github.com/fluepoint/service-crm/internal/models"
)

// ConflictFilter narrows which existing appointments a candidate window is
// checked against. AssignedTo nil means tenant-wide; ExcludeID supports
// "does my own update still fit".
type ConflictFilter struct {
	TenantID   uint
	Start      time.Time
	End        time.Time
	ExcludeID  *uint
	AssignedTo *uint
}

// OverlapsWindow reports whether an existing appointment [apStart, apEnd]
// collides with a candidate window [start, end]. Boundaries are inclusive:
// an appointment ending exactly at the candidate start still conflicts, so
// back-to-back slots must be offset by at least a minute.
func OverlapsWindow(apStart, apEnd, start, end time.Time) bool {
	if !apStart.Before(start) && !apStart.After(end) {
		return true
	}
	if !apEnd.Before(start) && !apEnd.After(end) {
		return true
	}
	// the appointment fully contains the candidate window
	return !apStart.After(start) && !apEnd.Before(end)
}

// ConflictsWith applies the full conflict rule to a single appointment:
// cancelled appointments never block, assignee scoping is exact (a
// different or absent assignee never conflicts when one is requested),
// and the excluded id is skipped.
func ConflictsWith(ap *models.Appointment, f ConflictFilter) bool {
	if ap.TenantID != f.TenantID {
		return false
	}
	if ap.Status == string(StatusCancelled) {
		return false
	}
	if f.ExcludeID != nil && ap.ID == *f.ExcludeID {
		return false
	}
	if f.AssignedTo != nil {
		if ap.AssignedTo == nil || *ap.AssignedTo != *f.AssignedTo {
			return false
		}
	}
	return OverlapsWindow(ap.StartTime, ap.EndTime, f.Start, f.End)
}
