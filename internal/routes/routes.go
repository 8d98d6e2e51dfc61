package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fluepoint/service-crm/internal/audit"
	"github.com/fluepoint/service-crm/internal/cache"
	"github.com/fluepoint/service-crm/internal/config"
	"github.com/fluepoint/service-crm/internal/handlers"
	infraRepo "github.com/fluepoint/service-crm/internal/infra/repository"
	"github.com/fluepoint/service-crm/internal/middleware"
	ucAppointment "github.com/fluepoint/service-crm/internal/usecase/appointment"
	ucCustomer "github.com/fluepoint/service-crm/internal/usecase/customer"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cacheStore cache.Store, cfg *config.Config) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	customerRepo := infraRepo.NewCustomerGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	checkAvailabilityUC := ucAppointment.NewCheckAvailability(
		appointmentRepo,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	transitionAppointmentUC := ucAppointment.NewTransitionAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	// ======================================================
	// USE CASES — CUSTOMERS
	// ======================================================
	listCustomersUC := ucCustomer.NewListCustomers(
		customerRepo,
		cacheStore,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	customerHandler := handlers.NewCustomerHandler(
		db,
		listCustomersUC,
		customerRepo,
		auditDispatcher,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		appointmentRepo,
		createAppointmentUC,
		checkAvailabilityUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		transitionAppointmentUC,
	)

	serviceHandler := handlers.NewServiceHandler(db)
	estimateHandler := handlers.NewEstimateHandler(db, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// CUSTOMERS
			// ------------------------------
			secured.GET("/customers", customerHandler.List)
			secured.POST("/customers", customerHandler.Create)
			secured.GET("/customers/:id", customerHandler.Get)
			secured.PUT("/customers/:id", customerHandler.Update)
			secured.DELETE("/customers/:id", customerHandler.Delete)
			secured.GET("/customers/:id/estimates", estimateHandler.ListByCustomer)

			// ------------------------------
			// SERVICES (CATALOG)
			// ------------------------------
			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/availability", appointmentHandler.CheckAvailability)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/no-show", appointmentHandler.MarkNoShow)

			// ------------------------------
			// ESTIMATES
			// ------------------------------
			secured.POST("/estimates", estimateHandler.Create)
			secured.PATCH("/estimates/:id/send", estimateHandler.MarkAsSent)
			secured.PATCH("/estimates/:id/accept", estimateHandler.MarkAsAccepted)
			secured.PATCH("/estimates/:id/reject", estimateHandler.MarkAsRejected)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
