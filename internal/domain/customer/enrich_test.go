package customer_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/fluepoint/service-crm/internal/domain/customer"
	"github.com/fluepoint/service-crm/internal/models"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func uintPtr(v uint) *uint { return &v }

func floatPtr(v float64) *float64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func job(id uint, status string, materials, labor float64) models.Job {
	return models.Job{
		ID:            id,
		Title:         "Chimney sweep",
		Status:        status,
		MaterialsCost: materials,
		LaborCost:     labor,
	}
}

func estimate(id uint, status string, subtotal float64) models.Estimate {
	return models.Estimate{
		ID:       id,
		Status:   status,
		Subtotal: subtotal,
	}
}

// =============================================================================
// JOBS BREAKDOWN
// =============================================================================

func TestEnrich_JobTotalsAndBreakdown(t *testing.T) {
	// GIVEN: two jobs, 600+400 and 1200+800
	// WHEN: enriching
	// THEN: total value sums derived costs and the breakdown counts statuses

	c := models.Customer{
		Jobs: []models.Job{
			job(1, "completed", 600, 400),
			job(2, "scheduled", 1200, 800),
		},
	}

	rd := domain.Enrich(&c, testNow)

	assert.True(t, rd.Jobs.HasJobs)
	assert.Equal(t, 2, rd.Jobs.TotalCount)
	assert.Equal(t, 3000.0, rd.Jobs.TotalValue)
	assert.Equal(t, map[string]int{"completed": 1, "scheduled": 1}, rd.Jobs.StatusBreakdown)

	require.Len(t, rd.Jobs.Jobs, 2)
	assert.Equal(t, 1000.0, rd.Jobs.Jobs[0].TotalCost)
	assert.Equal(t, 2000.0, rd.Jobs.Jobs[1].TotalCost)

	assert.Equal(t, 1, rd.Summary.ActiveJobs)
	assert.Equal(t, 1, rd.Summary.CompletedJobs)
	assert.Equal(t, 3000.0, rd.Summary.TotalJobValue)
}

func TestEnrich_IsIdempotent(t *testing.T) {
	// enrichment is pure: two runs over the same customer agree exactly

	c := models.Customer{
		Jobs:      []models.Job{job(1, "in_progress", 100, 50)},
		Estimates: []models.Estimate{estimate(1, "sent", 250)},
		Appointments: []models.Appointment{
			{ID: 1, Status: "scheduled", StartTime: testNow.Add(time.Hour)},
		},
	}

	first := domain.Enrich(&c, testNow)
	second := domain.Enrich(&c, testNow)

	assert.Equal(t, first, second)
}

// =============================================================================
// EMPTY CUSTOMER SHAPE
// =============================================================================

func TestEnrich_EmptyCustomerHasEmptyCollections(t *testing.T) {
	// GIVEN: a customer with no relations loaded
	// WHEN: serializing the enriched bundle
	// THEN: lists render as [] and breakdowns as {}, never null

	rd := domain.Enrich(&models.Customer{}, testNow)

	assert.False(t, rd.Jobs.HasJobs)
	assert.Zero(t, rd.Jobs.TotalCount)
	assert.False(t, rd.Appointments.HasAppointments)
	assert.False(t, rd.Estimates.HasEstimates)
	assert.False(t, rd.Services.HasServices)

	raw, err := json.Marshal(rd)
	require.NoError(t, err)

	body := string(raw)
	assert.Contains(t, body, `"jobs":[]`)
	assert.Contains(t, body, `"appointments":[]`)
	assert.Contains(t, body, `"estimates":[]`)
	assert.Contains(t, body, `"services":[]`)
	assert.Contains(t, body, `"unique_services":[]`)
	assert.Contains(t, body, `"status_breakdown":{}`)
	assert.NotContains(t, body, "null,")
}

// =============================================================================
// ESTIMATES: PENDING VALUE
// =============================================================================

func TestEnrich_PendingEstimateValue(t *testing.T) {
	// draft and sent count as pending; accepted and rejected do not

	c := models.Customer{
		Estimates: []models.Estimate{
			estimate(1, "draft", 100),
			estimate(2, "sent", 200),
			estimate(3, "accepted", 400),
			estimate(4, "rejected", 800),
		},
	}

	rd := domain.Enrich(&c, testNow)

	assert.Equal(t, 1500.0, rd.Estimates.TotalValue)
	assert.Equal(t, 300.0, rd.Estimates.PendingValue)

	assert.Equal(t, 2, rd.Summary.PendingEstimates)
	assert.Equal(t, 1, rd.Summary.AcceptedEstimates)
	assert.Equal(t, 300.0, rd.Summary.PendingEstimateValue)
	assert.Equal(t, 1500.0, rd.Summary.TotalEstimateValue)
}

func TestEnrich_ExpiredFlagUsesValidityWindow(t *testing.T) {
	// an estimate past its valid_until reads as expired even while its
	// stored status is still "sent"

	c := models.Customer{
		Estimates: []models.Estimate{
			{ID: 1, Status: "sent", Subtotal: 100, ValidUntil: timePtr(testNow.Add(-time.Hour))},
			{ID: 2, Status: "sent", Subtotal: 100, ValidUntil: timePtr(testNow.Add(time.Hour))},
			{ID: 3, Status: "sent", Subtotal: 100},
		},
	}

	rd := domain.Enrich(&c, testNow)

	require.Len(t, rd.Estimates.Estimates, 3)
	assert.True(t, rd.Estimates.Estimates[0].IsExpired)
	assert.False(t, rd.Estimates.Estimates[1].IsExpired)
	assert.False(t, rd.Estimates.Estimates[2].IsExpired)
}

func TestEnrich_DiscountClampsTotalAtZero(t *testing.T) {
	c := models.Customer{
		Estimates: []models.Estimate{
			{ID: 1, Status: "draft", Subtotal: 100, TaxAmount: 10, DiscountAmount: 500},
		},
	}

	rd := domain.Enrich(&c, testNow)

	assert.Equal(t, 0.0, rd.Estimates.TotalValue)
}

// =============================================================================
// APPOINTMENTS: UPCOMING
// =============================================================================

func TestEnrich_UpcomingCountsByStartTimeOnly(t *testing.T) {
	c := models.Customer{
		Appointments: []models.Appointment{
			{ID: 1, Status: "scheduled", StartTime: testNow.Add(2 * time.Hour)},
			{ID: 2, Status: "cancelled", StartTime: testNow.Add(3 * time.Hour)},
			{ID: 3, Status: "completed", StartTime: testNow.Add(-2 * time.Hour)},
		},
	}

	rd := domain.Enrich(&c, testNow)

	assert.Equal(t, 3, rd.Appointments.TotalCount)
	// cancelled but still in the future counts as upcoming
	assert.Equal(t, 2, rd.Appointments.UpcomingCount)
	assert.Equal(t, 2, rd.Summary.UpcomingAppointments)

	assert.True(t, rd.Appointments.Appointments[0].IsUpcoming)
	assert.True(t, rd.Appointments.Appointments[1].IsUpcoming)
	assert.False(t, rd.Appointments.Appointments[2].IsUpcoming)
}

// =============================================================================
// SERVICES: FLATTENING AND DEDUPLICATION
// =============================================================================

func TestEnrich_ServicesDeduplicateByCatalogID(t *testing.T) {
	sweep := &models.Service{ID: 10, Name: "Sweep", BasePrice: 150}
	inspection := &models.Service{ID: 11, Name: "Inspection", BasePrice: 90}

	c := models.Customer{
		Jobs: []models.Job{
			{
				ID: 1,
				JobServices: []models.JobService{
					{ID: 1, JobID: 1, ServiceID: uintPtr(10), Service: sweep, Quantity: 1, UnitPrice: 150},
					{ID: 2, JobID: 1, ServiceID: uintPtr(11), Service: inspection, Quantity: 2, UnitPrice: 90},
				},
			},
			{
				ID: 2,
				JobServices: []models.JobService{
					{ID: 3, JobID: 2, ServiceID: uintPtr(10), Service: sweep, Quantity: 1, UnitPrice: 150},
				},
			},
		},
	}

	rd := domain.Enrich(&c, testNow)

	assert.True(t, rd.Services.HasServices)
	assert.Equal(t, 3, rd.Services.TotalCount)
	require.Len(t, rd.Services.UniqueServices, 2)
	assert.Equal(t, uint(10), rd.Services.UniqueServices[0].ID)
	assert.Equal(t, uint(11), rd.Services.UniqueServices[1].ID)
}

func TestEnrich_HourlyLinesBillByHours(t *testing.T) {
	hourly := &models.Service{ID: 12, Name: "Repair", HourlyRate: 80}

	c := models.Customer{
		Jobs: []models.Job{
			{
				ID: 1,
				JobServices: []models.JobService{
					{ID: 1, JobID: 1, ServiceID: uintPtr(12), Service: hourly,
						Quantity: 1, UnitPrice: 500, HoursWorked: floatPtr(2.5)},
				},
			},
		},
	}

	rd := domain.Enrich(&c, testNow)

	require.Len(t, rd.Services.Services, 1)
	assert.Equal(t, 200.0, rd.Services.Services[0].TotalPrice)
}

// =============================================================================
// SUMMARY: LAST ACTIVITY
// =============================================================================

func TestEnrich_LastActivityIsMaxUpdatedAt(t *testing.T) {
	base := testNow.Add(-30 * 24 * time.Hour)

	c := models.Customer{
		CreatedAt: base,
		UpdatedAt: base,
		Jobs: []models.Job{
			{ID: 1, UpdatedAt: base.Add(24 * time.Hour)},
		},
		Estimates: []models.Estimate{
			{ID: 1, Status: "draft", UpdatedAt: base.Add(72 * time.Hour)},
		},
		Appointments: []models.Appointment{
			{ID: 1, Status: "completed", UpdatedAt: base.Add(48 * time.Hour)},
		},
	}

	rd := domain.Enrich(&c, testNow)

	assert.Equal(t, base.Add(72*time.Hour), rd.Summary.LastActivity)
	assert.Equal(t, base, rd.Summary.CustomerSince)
}

// =============================================================================
// BATCH
// =============================================================================

func TestEnrichAll_PreservesOrder(t *testing.T) {
	customers := []models.Customer{
		{ID: 3, FirstName: "Ada"},
		{ID: 1, FirstName: "Grace"},
		{ID: 2, FirstName: "Edsger"},
	}

	bundles := domain.EnrichAll(customers, testNow)

	require.Len(t, bundles, 3)
	assert.Equal(t, uint(3), bundles[0].Customer.ID)
	assert.Equal(t, uint(1), bundles[1].Customer.ID)
	assert.Equal(t, uint(2), bundles[2].Customer.ID)
}
