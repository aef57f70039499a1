package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/clipperdesk/barber-booking/internal/domain/appointment"
	"github.com/clipperdesk/barber-booking/internal/httperr"
	"github.com/clipperdesk/barber-booking/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// isUniqueViolation reconhece violação de constraint única do
// Postgres (23505) vinda do driver pgx por baixo do gorm.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// --------------------------------------------------
// Calendar
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBusinessRules(
	ctx context.Context,
) (*models.BusinessRules, error) {

	var rules models.BusinessRules
	if err := r.db.WithContext(ctx).First(&rules).Error; err != nil {
		return nil, err
	}
	return &rules, nil
}

func (r *AppointmentGormRepository) GetBusinessHours(
	ctx context.Context,
	weekday int,
) (*models.BusinessHours, error) {

	var hours models.BusinessHours
	if err := r.db.WithContext(ctx).
		Where("weekday = ?", weekday).
		First(&hours).Error; err != nil {
		return nil, err
	}
	return &hours, nil
}

// --------------------------------------------------
// Service / Barber
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.AdminUser, error) {

	var barber models.AdminUser
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreateCustomer(
	ctx context.Context,
	email string,
) (*models.Customer, error) {

	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&customer).Error

	if err == nil {
		return &customer, nil
	}

	customer = models.Customer{
		Email:    email,
		UserType: "NEW",
	}

	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		// corrida entre duas confirmações do mesmo e-mail: o índice
		// único resolve, relemos o vencedor
		if isUniqueViolation(err) {
			if err2 := r.db.WithContext(ctx).
				Where("email = ?", email).
				First(&customer).Error; err2 == nil {
				return &customer, nil
			}
		}
		return nil, err
	}

	return &customer, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if err := r.db.WithContext(ctx).Create(ap).Error; err != nil {
		if isUniqueViolation(err) {
			return httperr.ErrBusiness("slot_taken")
		}
		return err
	}

	return nil
}

func (r *AppointmentGormRepository) FindActiveForCustomerOnDay(
	ctx context.Context,
	customerEmail string,
	dayStart time.Time,
	dayEnd time.Time,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Where(
			"customer_email = ? AND status NOT IN ? AND start_at >= ? AND start_at < ?",
			customerEmail,
			[]string{string(domain.StatusCancelled), string(domain.StatusExpired)},
			dayStart,
			dayEnd,
		).
		First(&ap).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &ap, nil
}

// --------------------------------------------------
// Appointment (lookup / state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("confirmation_token_hash = ?", tokenHash).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) ConfirmAppointment(
	ctx context.Context,
	id uint,
	customerID uint,
) (*models.Appointment, error) {

	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"customer_id": customerID,
			"status":      string(domain.StatusConfirmed),
		}).Error
	if err != nil {
		return nil, err
	}

	return r.GetAppointment(ctx, id)
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveAppointmentsBetween(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	err := r.db.WithContext(ctx).
		Select("id", "barber_id", "start_at", "status").
		Where(
			"status NOT IN ? AND start_at >= ? AND start_at < ?",
			[]string{string(domain.StatusCancelled), string(domain.StatusExpired)},
			start,
			end,
		).
		Order("start_at ASC").
		Find(&aps).Error

	if err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Barber").
		Where(
			"start_at >= ? AND start_at < ?",
			start,
			end,
		).
		Order("start_at ASC").
		Find(&aps).Error

	if err != nil {
		return nil, err
	}

	return aps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
