package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clipperdesk/barber-booking/internal/clientip"
	"github.com/clipperdesk/barber-booking/internal/httperr"
	"github.com/clipperdesk/barber-booking/internal/httpresp"
	"github.com/clipperdesk/barber-booking/internal/middleware"
	"github.com/clipperdesk/barber-booking/internal/timezone"
	"github.com/clipperdesk/barber-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC       *booking.CreateAppointment
	listUC         *booking.ListAppointmentsByDate
	confirmAdminUC *booking.ConfirmAppointmentByAdmin
	startUC        *booking.StartAppointment
	completeUC     *booking.CompleteAppointment
	cancelUC       *booking.CancelAppointment
}

func NewAppointmentHandler(
	createUC *booking.CreateAppointment,
	listUC *booking.ListAppointmentsByDate,
	confirmAdminUC *booking.ConfirmAppointmentByAdmin,
	startUC *booking.StartAppointment,
	completeUC *booking.CompleteAppointment,
	cancelUC *booking.CancelAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:       createUC,
		listUC:         listUC,
		confirmAdminUC: confirmAdminUC,
		startUC:        startUC,
		completeUC:     completeUC,
		cancelUC:       cancelUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AdminCreateAppointmentRequest struct {
	ServiceID     uint     `json:"service_id" binding:"required"`
	BarberID      uint     `json:"barber_id" binding:"required"`
	CustomerEmail string   `json:"customer_email" binding:"required,email"`
	Date          string   `json:"date" binding:"required"`
	Time          string   `json:"time" binding:"required"`
	TotalCost     *float64 `json:"total_cost"`
}

// ======================================================
// CREATE (admin → já confirmado, sem e-mail)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req AdminCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
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
			Confirmed:     true,
			TotalCost:     req.TotalCost,
			ClientIP:      clientip.FromRequest(c.Request),
			AdminID:       &adminID,
		},
	)
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST BY DATE
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
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

	aps, err := h.listUC.Execute(c.Request.Context(), date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, aps)
}

// ======================================================
// STATE TRANSITIONS
// ======================================================

func (h *AppointmentHandler) parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	ap, err := h.confirmAdminUC.Execute(c.Request.Context(), adminID, id)
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Start(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	ap, err := h.startUC.Execute(c.Request.Context(), adminID, id)
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), adminID, id)
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), adminID, id)
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	httpresp.OK(c, ap)
}
