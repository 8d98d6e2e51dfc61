package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/fluepoint/service-crm/internal/domain/customer"
	"github.com/fluepoint/service-crm/internal/models"
)

type CustomerGormRepository struct {
	db *gorm.DB
}

func NewCustomerGormRepository(db *gorm.DB) *CustomerGormRepository {
	return &CustomerGormRepository{db: db}
}

// --------------------------------------------------
// Pagination
// --------------------------------------------------

func (r *CustomerGormRepository) PaginateByTenant(
	ctx context.Context,
	tenantID uint,
	page int,
	perPage int,
	withRelated bool,
) (*domain.Page, error) {

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 15
	}

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("tenant_id = ?", tenantID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("id ASC").
		Offset((page - 1) * perPage).
		Limit(perPage)

	if withRelated {
		// one eager pass so enrichment never issues follow-up queries
		q = q.
			Preload("Jobs").
			Preload("Jobs.JobServices").
			Preload("Jobs.JobServices.Service").
			Preload("Appointments").
			Preload("Appointments.Service").
			Preload("Estimates").
			Preload("Estimates.Items")
	}

	var customers []models.Customer
	if err := q.Find(&customers).Error; err != nil {
		return nil, err
	}

	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	from, to := 0, 0
	if len(customers) > 0 {
		from = (page-1)*perPage + 1
		to = from + len(customers) - 1
	}

	return &domain.Page{
		Items:       customers,
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
		From:        from,
		To:          to,
	}, nil
}

// --------------------------------------------------
// Lookup
// --------------------------------------------------

func (r *CustomerGormRepository) FindByID(
	ctx context.Context,
	tenantID uint,
	customerID uint,
) (*models.Customer, error) {

	var customer models.Customer
	err := r.db.WithContext(ctx).
		Preload("Jobs").
		Preload("Jobs.JobServices").
		Preload("Jobs.JobServices.Service").
		Preload("Appointments").
		Preload("Appointments.Service").
		Preload("Estimates").
		Preload("Estimates.Items").
		Where("id = ? AND tenant_id = ?", customerID, tenantID).
		First(&customer).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &customer, nil
}

// Compile-time check
var _ domain.Repository = (*CustomerGormRepository)(nil)
