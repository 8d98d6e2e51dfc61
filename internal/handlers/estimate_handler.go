package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fluepoint/service-crm/internal/audit"
	estdomain "github.com/fluepoint/service-crm/internal/domain/estimate"
	"github.com/fluepoint/service-crm/internal/httperr"
	"github.com/fluepoint/service-crm/internal/httpresp"
	"github.com/fluepoint/service-crm/internal/middleware"
	"github.com/fluepoint/service-crm/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type EstimateHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewEstimateHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *EstimateHandler {
	return &EstimateHandler{db: db, audit: auditDispatcher}
}

// ======================================================
// REQUESTS
// ======================================================

type EstimateItemRequest struct {
	ServiceID   *uint   `json:"service_id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type CreateEstimateRequest struct {
	CustomerID     uint                  `json:"customer_id" binding:"required"`
	Title          string                `json:"title"`
	Subtotal       float64               `json:"subtotal"`
	TaxAmount      float64               `json:"tax_amount"`
	DiscountAmount float64               `json:"discount_amount"`
	ValidUntil     *time.Time            `json:"valid_until"`
	Items          []EstimateItemRequest `json:"items"`
}

// ======================================================
// LIST BY CUSTOMER
// ======================================================

func (h *EstimateHandler) ListByCustomer(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	customerID := c.Param("id")

	var estimates []models.Estimate
	if err := h.db.
		Preload("Items").
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID).
		Order("created_at DESC").
		Find(&estimates).Error; err != nil {

		httperr.Internal(c, "failed_to_list_estimates", "Could not list estimates.")
		return
	}

	httpresp.List(c, estimates)
}

// ======================================================
// CREATE
// ======================================================

func (h *EstimateHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req CreateEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var customer models.Customer
	if err := h.db.
		Where("id = ? AND tenant_id = ?", req.CustomerID, tenantID).
		First(&customer).Error; err != nil {

		httperr.BadRequest(c, "customer_not_found", "Customer not found.")
		return
	}

	estimate := models.Estimate{
		TenantID:       tenantID,
		CustomerID:     req.CustomerID,
		Title:          req.Title,
		Status:         string(estdomain.StatusDraft),
		Subtotal:       req.Subtotal,
		TaxAmount:      req.TaxAmount,
		DiscountAmount: req.DiscountAmount,
		ValidUntil:     req.ValidUntil,
	}

	for _, item := range req.Items {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		estimate.Items = append(estimate.Items, models.EstimateItem{
			ServiceID:   item.ServiceID,
			Description: item.Description,
			Quantity:    qty,
			UnitPrice:   item.UnitPrice,
		})
	}

	if err := h.db.Create(&estimate).Error; err != nil {
		httperr.Internal(c, "failed_to_create_estimate", "Could not create estimate.")
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   &userID,
		Action:   "estimate_created",
		Entity:   "estimate",
		EntityID: &estimate.ID,
	})

	c.JSON(http.StatusCreated, estimate)
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

func (h *EstimateHandler) MarkAsSent(c *gin.Context) {
	h.transition(c, "estimate_sent", estdomain.MarkSent)
}

func (h *EstimateHandler) MarkAsAccepted(c *gin.Context) {
	h.transition(c, "estimate_accepted", estdomain.MarkAccepted)
}

func (h *EstimateHandler) MarkAsRejected(c *gin.Context) {
	h.transition(c, "estimate_rejected", estdomain.MarkRejected)
}

func (h *EstimateHandler) transition(
	c *gin.Context,
	action string,
	apply func(*models.Estimate, time.Time) error,
) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)
	id := c.Param("id")

	var tenant models.Tenant
	if err := h.db.First(&tenant, tenantID).Error; err != nil {
		httperr.Internal(c, "tenant_not_found", "Tenant not found.")
		return
	}

	var estimate models.Estimate
	if err := h.db.
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&estimate).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "estimate_not_found", "Estimate not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_estimate", "Could not load estimate.")
		return
	}

	if err := apply(&estimate, nowInTenant(&tenant)); err != nil {
		httperr.BadRequest(c, "invalid_state", "Estimate cannot change to that state.")
		return
	}

	if err := h.db.Save(&estimate).Error; err != nil {
		httperr.Internal(c, "failed_to_update_estimate", "Could not update estimate.")
		return
	}

	h.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		UserID:   &userID,
		Action:   action,
		Entity:   "estimate",
		EntityID: &estimate.ID,
	})

	c.JSON(http.StatusOK, estimate)
}
