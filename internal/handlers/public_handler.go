package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clipperdesk/barber-booking/internal/clientip"
	"github.com/clipperdesk/barber-booking/internal/httperr"
	"github.com/clipperdesk/barber-booking/internal/httpresp"
	"github.com/clipperdesk/barber-booking/internal/models"
	"github.com/clipperdesk/barber-booking/internal/timezone"
	"github.com/clipperdesk/barber-booking/internal/usecase/booking"
	"github.com/clipperdesk/barber-booking/internal/validators"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db        *gorm.DB
	slotsUC   *booking.GetAvailableSlots
	createUC  *booking.CreateAppointment
	confirmUC *booking.ConfirmAppointment
}

func NewPublicHandler(
	db *gorm.DB,
	slotsUC *booking.GetAvailableSlots,
	createUC *booking.CreateAppointment,
	confirmUC *booking.ConfirmAppointment,
) *PublicHandler {
	return &PublicHandler{
		db:        db,
		slotsUC:   slotsUC,
		createUC:  createUC,
		confirmUC: confirmUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ServiceID     uint   `json:"service_id" binding:"required"`
	BarberID      uint   `json:"barber_id" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	Date          string `json:"date" binding:"required"` // YYYY-MM-DD
	Time          string `json:"time" binding:"required"` // HH:mm
}

////////////////////////////////////////////////////////
// SERVICES / BARBERS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	var services []models.Service
	if err := h.db.
		Where("active = true").
		Order("id ASC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, services)
}

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	var barbers []models.AdminUser
	if err := h.db.
		Where("active = true").
		Order("id ASC").
		Find(&barbers).Error; err != nil {

		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}

	type barberDTO struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
		Role string `json:"role"`
	}

	out := make([]barberDTO, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, barberDTO{ID: b.ID, Name: b.Name, Role: b.Role})
	}

	httpresp.List(c, out)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", dateStr, timezone.Location())
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.slotsUC.Execute(c.Request.Context(), date)
	if err != nil {
		if httperr.IsBusiness(err, "rules_not_configured") || httperr.IsBusiness(err, "invalid_interval") {
			httperr.BadRequest(c, "rules_not_configured", "Agenda não configurada.")
			return
		}

		httperr.Internal(c, "availability_failed", "Erro ao calcular horários.")
		return
	}

	httpresp.OK(c, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// CREATE (público → pending_confirmation)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	// o binding pega a forma geral; aqui rejeitamos o que o parser de
	// endereço não aceita (listas, endereços truncados etc.)
	if !validators.IsWellFormed(req.CustomerEmail) {
		httperr.BadRequest(c, "invalid_email", "E-mail inválido.")
		return
	}

	startAt, err := time.ParseInLocation(
		"2006-01-02 15:04",
		req.Date+" "+req.Time,
		timezone.Location(),
	)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")
		return
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		booking.CreateAppointmentInput{
			ServiceID:     req.ServiceID,
			BarberID:      req.BarberID,
			CustomerEmail: req.CustomerEmail,
			StartAt:       startAt,
			ClientIP:      clientip.FromRequest(c.Request),
		},
	)
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	httpresp.Created(c, ap)
}

////////////////////////////////////////////////////////
// CONFIRM (link do e-mail)
////////////////////////////////////////////////////////

func (h *PublicHandler) ConfirmAppointment(c *gin.Context) {
	tokenHash := c.Query("token")
	if tokenHash == "" {
		httperr.BadRequest(c, "missing_token", "Token obrigatório.")
		return
	}

	ap, err := h.confirmUC.Execute(c.Request.Context(), tokenHash)
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	httpresp.OK(c, ap)
}
