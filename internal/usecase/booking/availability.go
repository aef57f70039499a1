package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/clipperdesk/barber-booking/internal/clock"
	domain "github.com/clipperdesk/barber-booking/internal/domain/appointment"
	"github.com/clipperdesk/barber-booking/internal/domain/schedule"
	"github.com/clipperdesk/barber-booking/internal/httperr"
)

type GetAvailableSlots struct {
	repo  domain.Repository
	clock clock.Clock
}

func NewGetAvailableSlots(repo domain.Repository, clk clock.Clock) *GetAvailableSlots {
	return &GetAvailableSlots{repo: repo, clock: clk}
}

// ResolveDay aplica a regra semanal e o intervalo configurado à data.
// Sem BusinessRules cadastrada é erro; dia fechado ou sem regra
// semanal é apenas um dia sem slots.
func (uc *GetAvailableSlots) ResolveDay(
	ctx context.Context,
	date time.Time,
) (schedule.DayWindow, error) {

	rules, err := uc.repo.GetBusinessRules(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return schedule.Closed(), httperr.ErrBusiness("rules_not_configured")
		}
		return schedule.Closed(), err
	}

	if rules.ReservationInterval <= 0 {
		return schedule.Closed(), httperr.ErrBusiness("invalid_interval")
	}

	hours, err := uc.repo.GetBusinessHours(ctx, int(date.Weekday()))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return schedule.Closed(), nil
		}
		return schedule.Closed(), err
	}

	if hours.IsClosed || hours.StartTime == "" || hours.EndTime == "" {
		return schedule.Closed(), nil
	}

	return schedule.DayWindow{
		IsOpen:          true,
		StartTime:       hours.StartTime,
		EndTime:         hours.EndTime,
		IntervalMinutes: rules.ReservationInterval,
	}, nil
}

func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	date time.Time,
) ([]schedule.Slot, error) {

	window, err := uc.ResolveDay(ctx, date)
	if err != nil {
		return nil, err
	}

	if !window.IsOpen {
		return []schedule.Slot{}, nil
	}

	loc := date.Location()

	dayStart := time.Date(
		date.Year(), date.Month(), date.Day(),
		0, 0, 0, 0,
		loc,
	)
	dayEnd := dayStart.Add(24 * time.Hour)

	// ocupação é global: qualquer barbeiro com agendamento ativo
	// naquele horário marca o slot como ocupado
	appointments, err := uc.repo.ListActiveAppointmentsBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	occupied := make(map[string]bool, len(appointments))
	for _, ap := range appointments {
		occupied[ap.StartAt.In(loc).Format("15:04")] = true
	}

	now := uc.clock.Now().In(loc)

	return schedule.BuildSlots(window, date, occupied, now), nil
}
