package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apdomain "github.com/fluepoint/service-crm/internal/domain/appointment"
	"github.com/fluepoint/service-crm/internal/httperr"
	"github.com/fluepoint/service-crm/internal/httpresp"
	"github.com/fluepoint/service-crm/internal/middleware"
	"github.com/fluepoint/service-crm/internal/models"
	ucAppointment "github.com/fluepoint/service-crm/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	repo apdomain.Repository

	createUC       *ucAppointment.CreateAppointment
	availabilityUC *ucAppointment.CheckAvailability
	cancelUC       *ucAppointment.CancelAppointment
	completeUC     *ucAppointment.CompleteAppointment
	transitionUC   *ucAppointment.TransitionAppointment
}

func NewAppointmentHandler(
	repo apdomain.Repository,
	createUC *ucAppointment.CreateAppointment,
	availabilityUC *ucAppointment.CheckAvailability,
	cancelUC *ucAppointment.CancelAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	transitionUC *ucAppointment.TransitionAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		repo:           repo,
		createUC:       createUC,
		availabilityUC: availabilityUC,
		cancelUC:       cancelUC,
		completeUC:     completeUC,
		transitionUC:   transitionUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	CustomerID      uint   `json:"customer_id" binding:"required"`
	ServiceID       *uint  `json:"service_id"`
	AssignedTo      *uint  `json:"assigned_to"`
	Date            string `json:"date" binding:"required"`
	Time            string `json:"time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes"`
	Notes           string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		TenantID:        tenantID,
		UserID:          userID,
		CustomerID:      req.CustomerID,
		ServiceID:       req.ServiceID,
		AssignedTo:      req.AssignedTo,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	})
	if err != nil {
		if fe, ok := httperr.AsField(err); ok {
			httperr.UnprocessableEntity(c, map[string]string{
				fe.Field: "The selected time slot is not available.",
			})
			return
		}
		if httperr.IsBusiness(err, "invalid_date_or_time") {
			httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
			return
		}
		if httperr.IsBusiness(err, "customer_not_found") {
			httperr.BadRequest(c, "customer_not_found", "Customer not found.")
			return
		}
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.BadRequest(c, "service_not_found", "Service not found.")
			return
		}
		httperr.Internal(c, "failed_to_create_appointment", "Could not create appointment.")
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// AVAILABILITY (STANDALONE READ ENDPOINT)
// ======================================================

func (h *AppointmentHandler) CheckAvailability(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	start, err := time.Parse(time.RFC3339, c.Query("start_time"))
	if err != nil {
		httperr.BadRequest(c, "invalid_start_time", "start_time must be RFC3339.")
		return
	}

	end, err := time.Parse(time.RFC3339, c.Query("end_time"))
	if err != nil {
		httperr.BadRequest(c, "invalid_end_time", "end_time must be RFC3339.")
		return
	}

	in := ucAppointment.CheckAvailabilityInput{
		TenantID:  tenantID,
		StartTime: start,
		EndTime:   end,
	}

	if v := c.Query("exclude_appointment_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			excl := uint(id)
			in.ExcludeAppointmentID = &excl
		}
	}

	if v := c.Query("assigned_to"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			assignee := uint(id)
			in.AssignedTo = &assignee
		}
	}

	available, err := h.availabilityUC.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Internal(c, "availability_check_failed", "Could not check availability.")
		return
	}

	httpresp.OK(c, gin.H{"available": available})
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	tenant, err := h.repo.GetTenantByID(c.Request.Context(), tenantID)
	if err != nil {
		httperr.Internal(c, "tenant_not_found", "Tenant not found.")
		return
	}

	date, err := parseDateInTenant(tenant, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.Add(24 * time.Hour)

	aps, err := h.repo.ListAppointmentsForPeriod(c.Request.Context(), tenantID, start, end)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	httpresp.List(c, aps)
}

// ======================================================
// STATE TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, func(tenantID, userID, id uint) (*models.Appointment, error) {
		return h.cancelUC.Execute(c.Request.Context(), tenantID, userID, id)
	})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, func(tenantID, userID, id uint) (*models.Appointment, error) {
		return h.completeUC.Execute(c.Request.Context(), tenantID, userID, id)
	})
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, func(tenantID, userID, id uint) (*models.Appointment, error) {
		return h.transitionUC.Confirm(c.Request.Context(), tenantID, userID, id)
	})
}

func (h *AppointmentHandler) MarkNoShow(c *gin.Context) {
	h.transition(c, func(tenantID, userID, id uint) (*models.Appointment, error) {
		return h.transitionUC.MarkNoShow(c.Request.Context(), tenantID, userID, id)
	})
}

func (h *AppointmentHandler) transition(
	c *gin.Context,
	run func(tenantID, userID, id uint) (*models.Appointment, error),
) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	tenantID := c.MustGet(middleware.ContextTenantID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := run(tenantID, userID, uint(id))
	if err != nil {
		if httperr.IsBusiness(err, "appointment_not_found") {
			httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
			return
		}
		if httperr.IsBusiness(err, "invalid_state") {
			httperr.BadRequest(c, "invalid_state", "Appointment cannot change to that state.")
			return
		}
		httperr.Internal(c, "failed_to_update_appointment", "Could not update appointment.")
		return
	}

	c.JSON(http.StatusOK, ap)
}
