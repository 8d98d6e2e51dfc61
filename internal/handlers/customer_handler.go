package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fluepoint/service-crm/internal/audit"
	customerdomain "github.com/fluepoint/service-crm/internal/domain/customer"
	"github.com/fluepoint/service-crm/internal/httperr"
	"github.com/fluepoint/service-crm/internal/httpresp"
	"github.com/fluepoint/service-crm/internal/middleware"
	"github.com/fluepoint/service-crm/internal/models"
	ucCustomer "github.com/fluepoint/service-crm/internal/usecase/customer"
)

// ======================================================
// HANDLER
// ======================================================

type CustomerHandler struct {
	db     *gorm.DB
	listUC *ucCustomer.ListCustomers
	repo   customerdomain.Repository
	audit  *audit.Dispatcher
}

func NewCustomerHandler(
	db *gorm.DB,
	listUC *ucCustomer.ListCustomers,
	repo customerdomain.Repository,
	auditDispatcher *audit.Dispatcher,
) *CustomerHandler {
	return &CustomerHandler{
		db:     db,
		listUC: listUC,
		repo:   repo,
		audit:  auditDispatcher,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateCustomerRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
}

type UpdateCustomerRequest struct {
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Address    *string `json:"address,omitempty"`
	City       *string `json:"city,omitempty"`
	State      *string `json:"state,omitempty"`
	Zip        *string `json:"zip,omitempty"`
	Status     *string `json:"status,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	AssignedTo *uint   `json:"assigned_to,omitempty"`
}

// ======================================================
// LIST
// ======================================================

func (h *CustomerHandler) List(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var tenant models.Tenant
	if err := h.db.First(&tenant, tenantID).Error; err != nil {
		httperr.Internal(c, "tenant_not_found", "Tenant not found.")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))

	// include_related defaults to true; only the literal "false" disables it
	includeRelated := c.DefaultQuery("include_related", "true") != "false"

	result, err := h.listUC.Execute(c.Request.Context(), ucCustomer.ListCustomersInput{
		TenantID:       tenantID,
		Page:           page,
		PerPage:        perPage,
		Simple:         c.Query("simple") == "true",
		IncludeRelated: includeRelated,
		Search:         strings.TrimSpace(c.Query("search")),
		Filter:         strings.TrimSpace(c.Query("filter")),
		RequestURL:     c.Request.URL.String(),
		Now:            nowInTenant(&tenant),
	})
	if err != nil {
		httperr.Internal(c, "failed_to_list_customers", "Could not list customers.")
		return
	}

	httpresp.Paginated(c, result.Data, result.Meta)
}

// ======================================================
// GET (WITH RELATED DATA)
// ======================================================

func (h *CustomerHandler) Get(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var tenant models.Tenant
	if err := h.db.First(&tenant, tenantID).Error; err != nil {
		httperr.Internal(c, "tenant_not_found", "Tenant not found.")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid customer id.")
		return
	}

	customer, err := h.repo.FindByID(c.Request.Context(), tenantID, uint(id))
	if err != nil {
		httperr.Internal(c, "failed_to_get_customer", "Could not load customer.")
		return
	}
	if customer == nil {
		httperr.NotFound(c, "customer_not_found", "Customer not found.")
		return
	}

	c.JSON(http.StatusOK, customerdomain.Bundle{
		Customer:    *customer,
		RelatedData: customerdomain.Enrich(customer, nowInTenant(&tenant)),
	})
}

// ======================================================
// CREATE
// ======================================================

func (h *CustomerHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	status := req.Status
	if status == "" {
		status = "active"
	}

	customer := models.Customer{
		TenantID:  tenantID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     req.Phone,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		Zip:       req.Zip,
		Status:    status,
		Notes:     req.Notes,
		CreatedBy: &userID,
	}

	if err := h.db.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_customer"})
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   &userID,
		Action:   "customer_created",
		Entity:   "customer",
		EntityID: &customer.ID,
	})

	c.JSON(http.StatusCreated, customer)
}

// ======================================================
// UPDATE
// ======================================================

func (h *CustomerHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	id := c.Param("id")

	var customer models.Customer
	if err := h.db.
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&customer).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "customer_not_found", "Customer not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_customer", "Could not load customer.")
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.FirstName != nil {
		customer.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		customer.LastName = *req.LastName
	}
	if req.Email != nil {
		customer.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.City != nil {
		customer.City = *req.City
	}
	if req.State != nil {
		customer.State = *req.State
	}
	if req.Zip != nil {
		customer.Zip = *req.Zip
	}
	if req.Status != nil {
		customer.Status = *req.Status
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}
	if req.AssignedTo != nil {
		customer.AssignedTo = req.AssignedTo
	}

	if err := h.db.Save(&customer).Error; err != nil {
		httperr.Internal(c, "failed_to_update_customer", "Could not update customer.")
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   &userID,
		Action:   "customer_updated",
		Entity:   "customer",
		EntityID: &customer.ID,
	})

	c.JSON(http.StatusOK, customer)
}

// ======================================================
// DELETE
// ======================================================

func (h *CustomerHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	id := c.Param("id")

	var customer models.Customer
	if err := h.db.
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&customer).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "customer_not_found", "Customer not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_customer", "Could not load customer.")
		return
	}

	if err := h.db.Delete(&customer).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_customer", "Could not delete customer.")
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   &userID,
		Action:   "customer_deleted",
		Entity:   "customer",
		EntityID: &customer.ID,
	})

	c.Status(http.StatusNoContent)
}
