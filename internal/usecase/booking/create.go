package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/clipperdesk/barber-booking/internal/audit"
	"github.com/clipperdesk/barber-booking/internal/clock"
	domain "github.com/clipperdesk/barber-booking/internal/domain/appointment"
	"github.com/clipperdesk/barber-booking/internal/httperr"
	"github.com/clipperdesk/barber-booking/internal/mailer"
	"github.com/clipperdesk/barber-booking/internal/models"
	"github.com/clipperdesk/barber-booking/internal/ratelimit"
	"github.com/clipperdesk/barber-booking/internal/token"
)

// Janela de validade do token de confirmação.
const ConfirmationTTL = time.Hour

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ServiceID     uint
	BarberID      uint
	CustomerEmail string
	StartAt       time.Time

	// Fluxo admin: cria direto como confirmado, sem e-mail.
	Confirmed bool

	// Quando ausente cai no preço-base do serviço.
	TotalCost *float64

	ClientIP string
	AdminID  *uint
}

// ======================================================
// USE CASE
// ======================================================

// CreateAppointment é o pipeline de admissão da reserva. Os checks
// rodam em ordem e o primeiro que falhar encerra:
// duplicidade por cliente/dia → rate limit por IP → serviço e
// barbeiro válidos → insert atômico protegido pelo índice único.
type CreateAppointment struct {
	repo    domain.Repository
	limiter *ratelimit.Limiter
	mail    *mailer.Dispatcher
	audit   *audit.Dispatcher
	clock   clock.Clock
	baseURL string
}

func NewCreateAppointment(
	repo domain.Repository,
	limiter *ratelimit.Limiter,
	mail *mailer.Dispatcher,
	auditDisp *audit.Dispatcher,
	clk clock.Clock,
	baseURL string,
) *CreateAppointment {
	return &CreateAppointment{
		repo:    repo,
		limiter: limiter,
		mail:    mail,
		audit:   auditDisp,
		clock:   clk,
		baseURL: baseURL,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	now := uc.clock.Now()
	loc := in.StartAt.Location()

	// --------------------------------------------------
	// 1️⃣ Um agendamento ativo por cliente por dia
	// --------------------------------------------------
	dayStart := time.Date(
		in.StartAt.Year(), in.StartAt.Month(), in.StartAt.Day(),
		0, 0, 0, 0,
		loc,
	)
	dayEnd := dayStart.Add(24 * time.Hour)

	existing, err := uc.repo.FindActiveForCustomerOnDay(
		ctx,
		in.CustomerEmail,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, httperr.ErrBusiness("duplicate_booking")
	}

	// --------------------------------------------------
	// 2️⃣ Rate limit por IP (falha do store degrada aberto)
	// --------------------------------------------------
	allowed, err := uc.limiter.Allow(ctx, in.ClientIP, now)
	if err != nil {
		log.Println("rate limit store error:", err)
		allowed = true
	}
	if !allowed {
		return nil, httperr.ErrBusiness("rate_limited")
	}

	// --------------------------------------------------
	// 3️⃣ Serviço e barbeiro válidos e ativos
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("invalid_service")
		}
		return nil, err
	}
	if !service.Active {
		return nil, httperr.ErrBusiness("invalid_service")
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("invalid_barber")
		}
		return nil, err
	}
	if !barber.Active {
		return nil, httperr.ErrBusiness("invalid_barber")
	}

	// --------------------------------------------------
	// 4️⃣ Reserva atômica (índice único barber_id + start_at)
	// --------------------------------------------------
	_, tokenHash := token.New()
	expiresAt := now.Add(ConfirmationTTL)

	status := domain.StatusPendingConfirmation
	if in.Confirmed {
		status = domain.StatusConfirmed
	}

	totalCost := in.TotalCost
	if totalCost == nil {
		totalCost = service.BasePrice
	}

	ap := &models.Appointment{
		ServiceID:             in.ServiceID,
		BarberID:              in.BarberID,
		CustomerEmail:         in.CustomerEmail,
		StartAt:               in.StartAt,
		Status:                string(status),
		ConfirmationTokenHash: &tokenHash,
		ConfirmationExpiresAt: &expiresAt,
		TotalCost:             totalCost,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ E-mail de confirmação (pós-commit, nunca desfaz a reserva)
	// --------------------------------------------------
	if !in.Confirmed {
		startLocal := in.StartAt.In(loc)

		uc.mail.Dispatch(mailer.ConfirmationEmail{
			To:          in.CustomerEmail,
			Date:        startLocal.Format("02/01/2006"),
			Time:        startLocal.Format("15:04"),
			ServiceName: service.Name,
			BarberName:  barber.Name,
			ConfirmURL: fmt.Sprintf(
				"%s/api/public/appointments/confirm?token=%s",
				uc.baseURL,
				tokenHash,
			),
			ExpiresText: fmt.Sprintf(
				"em 1 hora (às %s)",
				expiresAt.In(loc).Format("15:04"),
			),
		}.Message())
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.AdminID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
