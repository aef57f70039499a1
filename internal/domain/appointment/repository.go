package appointment

import (
	"context"
	"time"

	"github.com/clipperdesk/barber-booking/internal/models"
)

type Repository interface {
	// -------- Calendar --------
	GetBusinessRules(
		ctx context.Context,
	) (*models.BusinessRules, error)

	GetBusinessHours(
		ctx context.Context,
		weekday int,
	) (*models.BusinessHours, error)

	// -------- Service / Barber --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.AdminUser, error)

	// -------- Customer --------
	GetOrCreateCustomer(
		ctx context.Context,
		email string,
	) (*models.Customer, error)

	// -------- Appointment (create / conflict) --------

	// CreateAppointment devolve ErrBusiness("slot_taken") quando o
	// índice único (barber_id, start_at) é violado.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	FindActiveForCustomerOnDay(
		ctx context.Context,
		customerEmail string,
		dayStart time.Time,
		dayEnd time.Time,
	) (*models.Appointment, error)

	// -------- Appointment (lookup / state change) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	GetAppointmentByTokenHash(
		ctx context.Context,
		tokenHash string,
	) (*models.Appointment, error)

	// ConfirmAppointment grava customer_id + status confirmado em um
	// único UPDATE.
	ConfirmAppointment(
		ctx context.Context,
		id uint,
		customerID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	ListActiveAppointmentsBetween(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
