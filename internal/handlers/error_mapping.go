package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/clipperdesk/barber-booking/internal/httperr"
)

// mapBookingErrors converte erros de negócio do pipeline de reserva
// e confirmação em respostas HTTP. Qualquer outra falha colapsa em
// erro genérico, sem vazar detalhe interno.
func mapBookingErrors(c *gin.Context, err error) {
	switch httperr.CodeOf(err) {
	case "duplicate_booking":
		httperr.Conflict(c, "duplicate_booking", "Você já tem um agendamento ativo nesse dia.")
	case "slot_taken":
		httperr.Conflict(c, "slot_taken", "Esse horário acabou de ser reservado.")
	case "rate_limited":
		httperr.TooManyRequests(c, "rate_limited", "Muitas tentativas. Tente novamente mais tarde.")
	case "invalid_service":
		httperr.BadRequest(c, "invalid_service", "Serviço inválido ou inativo.")
	case "invalid_barber":
		httperr.BadRequest(c, "invalid_barber", "Barbeiro inválido ou inativo.")
	case "confirmation_not_found":
		httperr.NotFound(c, "confirmation_not_found", "Confirmação não encontrada.")
	case "confirmation_expired":
		httperr.Gone(c, "confirmation_expired", "Link de confirmação expirado.")
	case "appointment_not_found":
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
	case "invalid_state":
		httperr.Conflict(c, "invalid_state", "Agendamento não está em um status válido para essa ação.")
	default:
		httperr.Internal(c, "booking_failed", "Erro ao processar o agendamento.")
	}
}
