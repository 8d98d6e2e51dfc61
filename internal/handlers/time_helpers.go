package handlers

import (
	"time"

	"github.com/fluepoint/service-crm/internal/models"
	"github.com/fluepoint/service-crm/internal/timezone"
)

// every time-dependent computation in a request uses the tenant's zone

func locationFromTenant(tenant *models.Tenant) *time.Location {
	if tenant != nil {
		return timezone.Location(tenant.Timezone)
	}
	return timezone.Location("")
}

func nowInTenant(tenant *models.Tenant) time.Time {
	return time.Now().In(locationFromTenant(tenant))
}

func parseDateInTenant(tenant *models.Tenant, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromTenant(tenant),
	)
}
