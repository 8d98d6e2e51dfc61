package customer

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/fluepoint/service-crm/internal/cache"
	domain "github.com/fluepoint/service-crm/internal/domain/customer"
	estdomain "github.com/fluepoint/service-crm/internal/domain/estimate"
	"github.com/fluepoint/service-crm/internal/dto"
	"github.com/fluepoint/service-crm/internal/httpresp"
	"github.com/fluepoint/service-crm/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type ListCustomersInput struct {
	TenantID uint

	Page    int
	PerPage int // 0 means default

	// simple=true: flat projection for picker UIs, no enrichment
	Simple bool

	// include_related=false: plain customer rows, no related_data
	IncludeRelated bool

	Search string
	Filter string

	// full request URL, hashed into the cache key
	RequestURL string

	Now time.Time
}

const (
	defaultPerPage   = 15
	simpleMaxPerPage = 1000
	listCacheTTL     = 5 * time.Minute
)

// ======================================================
// USE CASE
// ======================================================

type ListResult struct {
	Data any               `json:"data"`
	Meta httpresp.PageMeta `json:"meta"`
}

type ListCustomers struct {
	repo  domain.Repository
	cache cache.Store
}

func NewListCustomers(repo domain.Repository, cacheStore cache.Store) *ListCustomers {
	return &ListCustomers{
		repo:  repo,
		cache: cacheStore,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute routes among three strategies: flat simple list, cached enriched
// list, and directly computed enriched list. A request is cacheable only
// when it carries no search, no filter and the default page size.
func (uc *ListCustomers) Execute(
	ctx context.Context,
	in ListCustomersInput,
) (*ListResult, error) {

	if in.Simple {
		return uc.simpleList(ctx, in)
	}

	if uc.isCacheable(in) {
		key := uc.cacheKey(in)
		return cache.Remember(ctx, uc.cache, key, listCacheTTL, func() (*ListResult, error) {
			return uc.enrichedList(ctx, in)
		})
	}

	return uc.enrichedList(ctx, in)
}

func (uc *ListCustomers) isCacheable(in ListCustomersInput) bool {
	if in.Filter != "" || in.Search != "" {
		return false
	}
	return in.PerPage == 0 || in.PerPage == defaultPerPage
}

func (uc *ListCustomers) cacheKey(in ListCustomersInput) string {
	sum := sha1.Sum([]byte(in.RequestURL))
	return fmt.Sprintf("customers:t%d:%s", in.TenantID, hex.EncodeToString(sum[:]))
}

// ------------------------------------------------------
// Strategy 1: flat projection for pickers
// ------------------------------------------------------

func (uc *ListCustomers) simpleList(
	ctx context.Context,
	in ListCustomersInput,
) (*ListResult, error) {

	page, err := uc.repo.PaginateByTenant(ctx, in.TenantID, in.Page, simpleMaxPerPage, false)
	if err != nil {
		return nil, err
	}

	data := make([]dto.CustomerSimpleDTO, 0, len(page.Items))
	for i := range page.Items {
		c := &page.Items[i]
		data = append(data, dto.CustomerSimpleDTO{
			ID:        c.ID,
			FirstName: c.FirstName,
			LastName:  c.LastName,
			Email:     c.Email,
			Phone:     c.Phone,
		})
	}

	return &ListResult{Data: data, Meta: pageMeta(page)}, nil
}

// ------------------------------------------------------
// Strategy 2/3: enriched listing
// ------------------------------------------------------

func (uc *ListCustomers) enrichedList(
	ctx context.Context,
	in ListCustomersInput,
) (*ListResult, error) {

	perPage := in.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	page, err := uc.repo.PaginateByTenant(ctx, in.TenantID, in.Page, perPage, in.IncludeRelated)
	if err != nil {
		return nil, err
	}

	// meta is fixed before in-memory filtering: total and last_page keep
	// reflecting the full tenant-scoped count, only the current page's
	// items get narrowed
	meta := pageMeta(page)

	items := page.Items
	if in.Search != "" {
		items = filterBySearch(items, in.Search)
	}
	if in.Filter != "" && in.Filter != "all" {
		items = filterByCategory(items, in.Filter)
	}

	if !in.IncludeRelated {
		return &ListResult{Data: items, Meta: meta}, nil
	}

	return &ListResult{Data: domain.EnrichAll(items, in.Now), Meta: meta}, nil
}

func pageMeta(page *domain.Page) httpresp.PageMeta {
	return httpresp.PageMeta{
		CurrentPage: page.CurrentPage,
		LastPage:    page.LastPage,
		PerPage:     page.PerPage,
		Total:       page.Total,
		From:        page.From,
		To:          page.To,
	}
}

// ------------------------------------------------------
// In-memory page filters
// ------------------------------------------------------

func filterBySearch(items []models.Customer, query string) []models.Customer {
	q := strings.ToLower(query)

	out := make([]models.Customer, 0, len(items))
	for i := range items {
		c := &items[i]
		if strings.Contains(strings.ToLower(c.FirstName), q) ||
			strings.Contains(strings.ToLower(c.LastName), q) ||
			strings.Contains(strings.ToLower(c.Email), q) ||
			strings.Contains(strings.ToLower(c.Phone), q) {
			out = append(out, *c)
		}
	}
	return out
}

// activeAppointmentFilterStatuses is matched against raw status strings:
// in_progress is not part of the appointment lifecycle anymore but the
// legacy filter value is still accepted.
var activeAppointmentFilterStatuses = map[string]bool{
	"scheduled":   true,
	"confirmed":   true,
	"in_progress": true,
}

func filterByCategory(items []models.Customer, filter string) []models.Customer {
	var keep func(*models.Customer) bool

	switch filter {
	case "active_appointments":
		keep = hasActiveAppointment
	case "pending_estimates":
		keep = hasPendingEstimate
	case "has_services":
		keep = hasServiceReference
	default:
		// unknown filter values fall through unfiltered
		return items
	}

	out := make([]models.Customer, 0, len(items))
	for i := range items {
		if keep(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}

func hasActiveAppointment(c *models.Customer) bool {
	for i := range c.Appointments {
		if activeAppointmentFilterStatuses[c.Appointments[i].Status] {
			return true
		}
	}
	return false
}

func hasPendingEstimate(c *models.Customer) bool {
	for i := range c.Estimates {
		if estdomain.IsPending(estdomain.Status(c.Estimates[i].Status)) {
			return true
		}
	}
	return false
}

func hasServiceReference(c *models.Customer) bool {
	for i := range c.Appointments {
		if c.Appointments[i].ServiceID != nil {
			return true
		}
	}
	for i := range c.Jobs {
		for k := range c.Jobs[i].JobServices {
			if c.Jobs[i].JobServices[k].ServiceID != nil {
				return true
			}
		}
	}
	return false
}
