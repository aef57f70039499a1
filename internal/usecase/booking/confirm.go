package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/clipperdesk/barber-booking/internal/audit"
	"github.com/clipperdesk/barber-booking/internal/clock"
	domain "github.com/clipperdesk/barber-booking/internal/domain/appointment"
	"github.com/clipperdesk/barber-booking/internal/httperr"
	"github.com/clipperdesk/barber-booking/internal/models"
)

// ConfirmAppointment transiciona pending_confirmation → confirmed
// via token. A verificação é idempotente: reconfirmar um agendamento
// já confirmado devolve sucesso sem mutação.
type ConfirmAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock clock.Clock
}

func NewConfirmAppointment(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	clk clock.Clock,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:  repo,
		audit: auditDisp,
		clock: clk,
	}
}

// Execute recebe o valor do link de confirmação, que é o próprio hash
// persistido — o lookup é direto pelo hash, o token cru nunca é
// armazenado.
func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	tokenHash string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("confirmation_not_found")
		}
		return nil, err
	}

	now := uc.clock.Now()
	if ap.ConfirmationExpiresAt != nil && ap.ConfirmationExpiresAt.Before(now) {
		// apenas reporta; o status fica como está
		return nil, httperr.ErrBusiness("confirmation_expired")
	}

	if domain.Status(ap.Status) == domain.StatusConfirmed {
		return ap, nil
	}

	customer, err := uc.repo.GetOrCreateCustomer(ctx, ap.CustomerEmail)
	if err != nil {
		return nil, err
	}

	confirmed, err := uc.repo.ConfirmAppointment(ctx, ap.ID, customer.ID)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_confirmed",
		Entity:   "appointment",
		EntityID: &confirmed.ID,
	})

	return confirmed, nil
}
