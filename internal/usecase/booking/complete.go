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

type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock clock.Clock
}

func NewCompleteAppointment(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	clk clock.Clock,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: auditDisp,
		clock: clk,
	}
}

func (uc *CompleteAppointment) Execute(
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

	if err := domain.Complete(ap, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
