package estimate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/fluepoint/service-crm/internal/domain/estimate"
	"github.com/fluepoint/service-crm/internal/models"
)

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

// =============================================================================
// PENDING SET
// =============================================================================

func TestIsPending(t *testing.T) {
	assert.True(t, domain.IsPending(domain.StatusDraft))
	assert.True(t, domain.IsPending(domain.StatusSent))
	assert.True(t, domain.IsPending(domain.StatusPending))

	assert.False(t, domain.IsPending(domain.StatusAccepted))
	assert.False(t, domain.IsPending(domain.StatusRejected))
	assert.False(t, domain.IsPending(domain.StatusExpired))
}

// =============================================================================
// EXPIRY
// =============================================================================

func TestIsExpired(t *testing.T) {
	past := testNow.Add(-time.Minute)
	future := testNow.Add(time.Minute)

	assert.True(t, domain.IsExpired(&models.Estimate{ValidUntil: &past}, testNow))
	assert.False(t, domain.IsExpired(&models.Estimate{ValidUntil: &future}, testNow))

	// no validity window means never expired
	assert.False(t, domain.IsExpired(&models.Estimate{}, testNow))
}

// =============================================================================
// TRANSITIONS
// =============================================================================

func TestMarkSent(t *testing.T) {
	e := models.Estimate{Status: string(domain.StatusDraft)}

	require.NoError(t, domain.MarkSent(&e, testNow))
	assert.Equal(t, string(domain.StatusSent), e.Status)
	if assert.NotNil(t, e.SentAt) {
		assert.Equal(t, testNow, *e.SentAt)
	}

	// sending twice is rejected
	assert.Error(t, domain.MarkSent(&e, testNow))
}

func TestMarkAccepted(t *testing.T) {
	e := models.Estimate{Status: string(domain.StatusSent)}

	require.NoError(t, domain.MarkAccepted(&e, testNow))
	assert.Equal(t, string(domain.StatusAccepted), e.Status)
	assert.NotNil(t, e.AcceptedAt)

	// a draft cannot be accepted before it is sent
	draft := models.Estimate{Status: string(domain.StatusDraft)}
	assert.Error(t, domain.MarkAccepted(&draft, testNow))
}

func TestMarkRejected(t *testing.T) {
	e := models.Estimate{Status: string(domain.StatusSent)}

	require.NoError(t, domain.MarkRejected(&e, testNow))
	assert.Equal(t, string(domain.StatusRejected), e.Status)

	// rejecting an accepted estimate is rejected
	accepted := models.Estimate{Status: string(domain.StatusAccepted)}
	assert.Error(t, domain.MarkRejected(&accepted, testNow))
}
