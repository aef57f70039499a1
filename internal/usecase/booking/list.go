package booking

import (
	"context"
	"time"

	domain "github.com/clipperdesk/barber-booking/internal/domain/appointment"
	"github.com/clipperdesk/barber-booking/internal/models"
)

// ListAppointmentsByDate devolve a agenda completa de um dia,
// inclusive cancelados e expirados, para o painel do admin.
type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(repo domain.Repository) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{repo: repo}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	date time.Time,
) ([]models.Appointment, error) {

	loc := date.Location()

	dayStart := time.Date(
		date.Year(), date.Month(), date.Day(),
		0, 0, 0, 0,
		loc,
	)
	dayEnd := dayStart.Add(24 * time.Hour)

	return uc.repo.ListAppointmentsForPeriod(ctx, dayStart, dayEnd)
}
