package customer

import (
	"context"

	"github.com/fluepoint/service-crm/internal/models"
)

// Page carries one page of customers plus the paginator metadata computed
// from the full tenant-scoped count, before any in-memory filtering.
type Page struct {
	Items []models.Customer

	CurrentPage int
	LastPage    int
	PerPage     int
	Total       int64
	From        int
	To          int
}

type Repository interface {
	// PaginateByTenant returns one page of the tenant's customers.
	// withRelated eager-loads jobs (with job services and their catalog
	// services), appointments and estimates (with items) so enrichment
	// never issues follow-up queries.
	PaginateByTenant(
		ctx context.Context,
		tenantID uint,
		page int,
		perPage int,
		withRelated bool,
	) (*Page, error)

	FindByID(
		ctx context.Context,
		tenantID uint,
		customerID uint,
	) (*models.Customer, error)
}
