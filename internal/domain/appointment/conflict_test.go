package appointment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domain "github.com/fluepoint/service-crm/internal/domain/appointment"
	"github.com/fluepoint/service-crm/internal/models"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func at(hour, min int) time.Time {
	return time.Date(2026, time.March, 10, hour, min, 0, 0, time.UTC)
}

func appointment(id uint, start, end time.Time) models.Appointment {
	return models.Appointment{
		ID:        id,
		TenantID:  1,
		StartTime: start,
		EndTime:   end,
		Status:    string(domain.StatusScheduled),
	}
}

func uintPtr(v uint) *uint { return &v }

// =============================================================================
// WINDOW OVERLAP
// =============================================================================

func TestOverlapsWindow_PartialOverlapConflicts(t *testing.T) {
	// GIVEN: an existing appointment 10:30-11:30
	// WHEN: checking the window 10:00-11:00
	// THEN: the windows conflict

	assert.True(t, domain.OverlapsWindow(at(10, 30), at(11, 30), at(10, 0), at(11, 0)))
}

func TestOverlapsWindow_TouchingBoundariesConflict(t *testing.T) {
	// GIVEN: an existing appointment that ends exactly when the candidate
	// starts, and one that starts exactly when the candidate ends
	// WHEN: checking the candidate window 10:00-11:00
	// THEN: both still conflict (boundaries are inclusive)

	assert.True(t, domain.OverlapsWindow(at(9, 0), at(10, 0), at(10, 0), at(11, 0)))
	assert.True(t, domain.OverlapsWindow(at(11, 0), at(12, 0), at(10, 0), at(11, 0)))
}

func TestOverlapsWindow_ContainmentConflicts(t *testing.T) {
	// existing appointment fully contains the candidate window
	assert.True(t, domain.OverlapsWindow(at(9, 0), at(13, 0), at(10, 0), at(11, 0)))

	// candidate window fully contains the existing appointment
	assert.True(t, domain.OverlapsWindow(at(10, 15), at(10, 45), at(10, 0), at(11, 0)))
}

func TestOverlapsWindow_DisjointWindowsAreFree(t *testing.T) {
	// one minute past the boundary is enough
	assert.False(t, domain.OverlapsWindow(at(11, 1), at(12, 0), at(10, 0), at(11, 0)))
	assert.False(t, domain.OverlapsWindow(at(8, 0), at(9, 59), at(10, 0), at(11, 0)))
}

// =============================================================================
// FULL CONFLICT RULE
// =============================================================================

func TestConflictsWith_CancelledNeverBlocks(t *testing.T) {
	ap := appointment(1, at(10, 0), at(11, 0))
	ap.Status = string(domain.StatusCancelled)

	f := domain.ConflictFilter{TenantID: 1, Start: at(10, 0), End: at(11, 0)}

	assert.False(t, domain.ConflictsWith(&ap, f))
}

func TestConflictsWith_OtherTenantNeverBlocks(t *testing.T) {
	ap := appointment(1, at(10, 0), at(11, 0))
	ap.TenantID = 2

	f := domain.ConflictFilter{TenantID: 1, Start: at(10, 0), End: at(11, 0)}

	assert.False(t, domain.ConflictsWith(&ap, f))
}

func TestConflictsWith_ExcludedIDIsSkipped(t *testing.T) {
	// GIVEN: an appointment being rescheduled onto its own slot
	// WHEN: the conflict filter excludes that appointment's id
	// THEN: it does not block itself

	ap := appointment(7, at(10, 0), at(11, 0))

	f := domain.ConflictFilter{
		TenantID:  1,
		Start:     at(10, 0),
		End:       at(11, 0),
		ExcludeID: uintPtr(7),
	}

	assert.False(t, domain.ConflictsWith(&ap, f))

	f.ExcludeID = uintPtr(8)
	assert.True(t, domain.ConflictsWith(&ap, f))
}

func TestConflictsWith_AssigneeScopingIsExact(t *testing.T) {
	ap := appointment(1, at(10, 0), at(11, 0))
	ap.AssignedTo = uintPtr(3)

	f := domain.ConflictFilter{
		TenantID:   1,
		Start:      at(10, 0),
		End:        at(11, 0),
		AssignedTo: uintPtr(3),
	}
	assert.True(t, domain.ConflictsWith(&ap, f))

	// a different technician's booking does not block this one
	f.AssignedTo = uintPtr(4)
	assert.False(t, domain.ConflictsWith(&ap, f))

	// an unassigned appointment never blocks an assignee-scoped check
	ap.AssignedTo = nil
	assert.False(t, domain.ConflictsWith(&ap, f))

	// tenant-wide checks still catch everything
	f.AssignedTo = nil
	assert.True(t, domain.ConflictsWith(&ap, f))
}

// =============================================================================
// STATUS TRANSITIONS
// =============================================================================

func TestStatusTransitions(t *testing.T) {
	assert.NoError(t, domain.CanCancel(domain.StatusScheduled))
	assert.NoError(t, domain.CanCancel(domain.StatusConfirmed))
	assert.Error(t, domain.CanCancel(domain.StatusCompleted))
	assert.Error(t, domain.CanCancel(domain.StatusCancelled))

	assert.NoError(t, domain.CanComplete(domain.StatusScheduled))
	assert.NoError(t, domain.CanComplete(domain.StatusConfirmed))
	assert.Error(t, domain.CanComplete(domain.StatusNoShow))

	assert.NoError(t, domain.CanConfirm(domain.StatusScheduled))
	assert.Error(t, domain.CanConfirm(domain.StatusConfirmed))

	assert.NoError(t, domain.CanMarkNoShow(domain.StatusConfirmed))
	assert.Error(t, domain.CanMarkNoShow(domain.StatusCompleted))
}

func TestCancelSetsTimestampAndStatus(t *testing.T) {
	ap := appointment(1, at(10, 0), at(11, 0))
	now := at(9, 0)

	err := domain.Cancel(&ap, now)

	assert.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), ap.Status)
	if assert.NotNil(t, ap.CancelledAt) {
		assert.Equal(t, now, *ap.CancelledAt)
	}

	// a second cancel is rejected
	assert.Error(t, domain.Cancel(&ap, now))
}
