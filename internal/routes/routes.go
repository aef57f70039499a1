package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/clipperdesk/barber-booking/internal/audit"
	"github.com/clipperdesk/barber-booking/internal/clock"
	"github.com/clipperdesk/barber-booking/internal/config"
	"github.com/clipperdesk/barber-booking/internal/handlers"
	infraRepo "github.com/clipperdesk/barber-booking/internal/infra/repository"
	"github.com/clipperdesk/barber-booking/internal/mailer"
	"github.com/clipperdesk/barber-booking/internal/middleware"
	"github.com/clipperdesk/barber-booking/internal/ratelimit"
	"github.com/clipperdesk/barber-booking/internal/timezone"
	"github.com/clipperdesk/barber-booking/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	repo := infraRepo.NewAppointmentGormRepository(db)

	clk := clock.Real{Loc: timezone.Location()}

	var limiterStore ratelimit.Store = ratelimit.NewGormStore(db)
	if rdb != nil {
		limiterStore = ratelimit.NewRedisStore(rdb)
	}
	limiter := ratelimit.New(limiterStore)

	var sender mailer.Sender = mailer.LogSender{}
	if cfg.SMTPHost != "" {
		sender = mailer.NewSMTPSender(
			cfg.SMTPHost,
			cfg.SMTPPort,
			cfg.SMTPFrom,
			cfg.SMTPPassword,
		)
	}
	mailDispatcher := mailer.NewDispatcher(sender)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// 🧠 USE CASES — BOOKING
	// ======================================================
	slotsUC := booking.NewGetAvailableSlots(repo, clk)

	createUC := booking.NewCreateAppointment(
		repo,
		limiter,
		mailDispatcher,
		auditDispatcher,
		clk,
		cfg.PublicBaseURL,
	)

	listUC := booking.NewListAppointmentsByDate(repo)
	confirmUC := booking.NewConfirmAppointment(repo, auditDispatcher, clk)
	confirmAdminUC := booking.NewConfirmAppointmentByAdmin(repo, auditDispatcher)
	startUC := booking.NewStartAppointment(repo, auditDispatcher, clk)
	completeUC := booking.NewCompleteAppointment(repo, auditDispatcher, clk)
	cancelUC := booking.NewCancelAppointment(repo, auditDispatcher, clk)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	publicHandler := handlers.NewPublicHandler(db, slotsUC, createUC, confirmUC)
	appointmentHandler := handlers.NewAppointmentHandler(
		createUC,
		listUC,
		confirmAdminUC,
		startUC,
		completeUC,
		cancelUC,
	)
	businessHoursHandler := handlers.NewBusinessHoursHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/barbers", publicHandler.ListBarbers)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.POST("/appointments", publicHandler.CreateAppointment)
			publicAPI.GET("/appointments/confirm", publicHandler.ConfirmAppointment)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me/team", authHandler.Team)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/business-hours", businessHoursHandler.Get)
			secured.PUT("/me/business-hours", businessHoursHandler.Update)
			secured.GET("/me/business-rules", businessHoursHandler.GetRules)
			secured.PUT("/me/business-rules", businessHoursHandler.UpdateRules)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/start", appointmentHandler.Start)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
