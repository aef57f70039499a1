package appointment

import "github.com/clipperdesk/barber-booking/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPendingConfirmation Status = "pending_confirmation"
	StatusConfirmed           Status = "confirmed"
	StatusInProgress          Status = "in_progress"
	StatusCompleted           Status = "completed"
	StatusCancelled           Status = "cancelled"
	StatusExpired             Status = "expired"
)

// Active: qualquer status fora de cancelado/expirado. Vale para o
// bloqueio de um agendamento ativo por cliente por dia e para a
// ocupação de slots.
func (s Status) Active() bool {
	return s != StatusCancelled && s != StatusExpired
}

// ===============================
// Validations
// ===============================

// CanConfirm: só agendamentos pendentes transitam para confirmado.
func CanConfirm(current Status) error {
	if current != StatusPendingConfirmation {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanStart: atendimento só inicia depois de confirmado.
func CanStart(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete: conclui a partir de confirmado ou em andamento.
func CanComplete(current Status) error {
	if current != StatusConfirmed && current != StatusInProgress {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel: cancela qualquer agendamento ainda não finalizado.
func CanCancel(current Status) error {
	switch current {
	case StatusPendingConfirmation, StatusConfirmed, StatusInProgress:
		return nil
	}
	return httperr.ErrBusiness("invalid_state")
}
