package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/clipperdesk/barber-booking/internal/audit"
	domain "github.com/clipperdesk/barber-booking/internal/domain/appointment"
	"github.com/clipperdesk/barber-booking/internal/httperr"
	"github.com/clipperdesk/barber-booking/internal/models"
)

// ConfirmAppointmentByAdmin faz a mesma transição do fluxo por token,
// mas chaveada pelo id do agendamento. Exige pending_confirmation;
// idempotente quando já confirmado.
type ConfirmAppointmentByAdmin struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewConfirmAppointmentByAdmin(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
) *ConfirmAppointmentByAdmin {
	return &ConfirmAppointmentByAdmin{
		repo:  repo,
		audit: auditDisp,
	}
}

func (uc *ConfirmAppointmentByAdmin) Execute(
	ctx context.Context,
	adminID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	if domain.Status(ap.Status) == domain.StatusConfirmed {
		return ap, nil
	}

	if err := domain.CanConfirm(domain.Status(ap.Status)); err != nil {
		return nil, err
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
		UserID:   &adminID,
		Action:   "appointment_confirmed_by_admin",
		Entity:   "appointment",
		EntityID: &confirmed.ID,
	})

	return confirmed, nil
}
