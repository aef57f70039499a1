package booking

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipperdesk/barber-booking/internal/httperr"
	"github.com/clipperdesk/barber-booking/internal/mailer"
	"github.com/clipperdesk/barber-booking/internal/models"
	"github.com/clipperdesk/barber-booking/internal/ratelimit"
)

func seedCatalog(repo *fakeRepo) {
	price := 50.0
	repo.services[1] = &models.Service{
		ID:          1,
		Name:        "Corte masculino",
		DurationMin: 30,
		BasePrice:   &price,
		Active:      true,
	}
	repo.barbers[1] = &models.AdminUser{
		ID:     1,
		Name:   "João",
		Role:   "barber",
		Active: true,
	}
}

func newCreateUC(repo *fakeRepo, store ratelimit.Store, sender *captureSender, now time.Time) *CreateAppointment {
	return NewCreateAppointment(
		repo,
		ratelimit.New(store),
		mailer.NewDispatcher(sender),
		nil,
		fakeClock{now: now},
		"https://barbearia.example.com",
	)
}

func TestCreateAppointment_PendingFlow(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)

	now := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)
	startAt := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	sender := newCaptureSender()
	uc := newCreateUC(repo, newMemoryStore(), sender, now)

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ServiceID:     1,
		BarberID:      1,
		CustomerEmail: "cliente@example.com",
		StartAt:       startAt,
		ClientIP:      "203.0.113.7",
	})
	require.NoError(t, err)
	require.NotNil(t, ap)

	assert.Equal(t, "pending_confirmation", ap.Status)
	require.NotNil(t, ap.ConfirmationTokenHash)
	assert.Len(t, *ap.ConfirmationTokenHash, 64)
	require.NotNil(t, ap.ConfirmationExpiresAt)
	assert.Equal(t, now.Add(time.Hour), *ap.ConfirmationExpiresAt)

	// sem custo explícito, herda o preço-base do serviço
	require.NotNil(t, ap.TotalCost)
	assert.Equal(t, 50.0, *ap.TotalCost)

	msg, ok := sender.wait(time.Second)
	require.True(t, ok, "e-mail de confirmação deveria ter sido enviado")
	assert.Equal(t, "cliente@example.com", msg.To)
	assert.Contains(t, msg.Body, "/api/public/appointments/confirm?token=")
	assert.Contains(t, msg.Body, *ap.ConfirmationTokenHash)
	assert.Contains(t, msg.Body, "15/09/2026")
	assert.Contains(t, msg.Body, "10:00")
}

func TestCreateAppointment_AdminConfirmedSkipsEmail(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)

	now := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)
	startAt := time.Date(2026, 9, 15, 11, 0, 0, 0, time.UTC)

	sender := newCaptureSender()
	uc := newCreateUC(repo, newMemoryStore(), sender, now)

	cost := 75.0
	adminID := uint(9)

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ServiceID:     1,
		BarberID:      1,
		CustomerEmail: "walkin@example.com",
		StartAt:       startAt,
		Confirmed:     true,
		TotalCost:     &cost,
		ClientIP:      "203.0.113.7",
		AdminID:       &adminID,
	})
	require.NoError(t, err)

	assert.Equal(t, "confirmed", ap.Status)
	assert.Equal(t, 75.0, *ap.TotalCost)

	_, got := sender.wait(100 * time.Millisecond)
	assert.False(t, got, "fluxo admin não envia e-mail de confirmação")
}

func TestCreateAppointment_DuplicateForCustomerDay(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)

	now := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)
	uc := newCreateUC(repo, newMemoryStore(), newCaptureSender(), now)

	first := CreateAppointmentInput{
		ServiceID:     1,
		BarberID:      1,
		CustomerEmail: "cliente@example.com",
		StartAt:       time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
		ClientIP:      "203.0.113.7",
	}
	_, err := uc.Execute(context.Background(), first)
	require.NoError(t, err)

	// mesmo cliente, mesmo dia, outro horário
	second := first
	second.StartAt = time.Date(2026, 9, 15, 14, 0, 0, 0, time.UTC)
	_, err = uc.Execute(context.Background(), second)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "duplicate_booking"))

	// dia seguinte libera
	third := first
	third.StartAt = time.Date(2026, 9, 16, 10, 0, 0, 0, time.UTC)
	_, err = uc.Execute(context.Background(), third)
	assert.NoError(t, err)
}

func TestCreateAppointment_CancelledDoesNotBlockNewBooking(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)

	now := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)
	uc := newCreateUC(repo, newMemoryStore(), newCaptureSender(), now)

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ServiceID:     1,
		BarberID:      1,
		CustomerEmail: "cliente@example.com",
		StartAt:       time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
		ClientIP:      "203.0.113.7",
	})
	require.NoError(t, err)

	ap.Status = "cancelled"
	require.NoError(t, repo.UpdateAppointment(context.Background(), ap))

	_, err = uc.Execute(context.Background(), CreateAppointmentInput{
		ServiceID:     1,
		BarberID:      1,
		CustomerEmail: "cliente@example.com",
		StartAt:       time.Date(2026, 9, 15, 14, 0, 0, 0, time.UTC),
		ClientIP:      "203.0.113.7",
	})
	assert.NoError(t, err)
}

func TestCreateAppointment_InvalidServiceAndBarber(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)

	inactive := *repo.services[1]
	inactive.ID = 2
	inactive.Active = false
	repo.services[2] = &inactive

	now := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)
	uc := newCreateUC(repo, newMemoryStore(), newCaptureSender(), now)

	base := CreateAppointmentInput{
		ServiceID:     1,
		BarberID:      1,
		CustomerEmail: "cliente@example.com",
		StartAt:       time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
		ClientIP:      "203.0.113.7",
	}

	missing := base
	missing.ServiceID = 99
	_, err := uc.Execute(context.Background(), missing)
	assert.True(t, httperr.IsBusiness(err, "invalid_service"))

	off := base
	off.ServiceID = 2
	_, err = uc.Execute(context.Background(), off)
	assert.True(t, httperr.IsBusiness(err, "invalid_service"))

	noBarber := base
	noBarber.BarberID = 99
	_, err = uc.Execute(context.Background(), noBarber)
	assert.True(t, httperr.IsBusiness(err, "invalid_barber"))
}

func TestCreateAppointment_RateLimited(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)

	now := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)
	store := newMemoryStore()

	// IP já estourou a janela
	for i := 0; i < ratelimit.DefaultLimit; i++ {
		require.NoError(t, store.Record(context.Background(), "203.0.113.7", now, ratelimit.AttemptTTL))
	}

	uc := newCreateUC(repo, store, newCaptureSender(), now)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ServiceID:     1,
		BarberID:      1,
		CustomerEmail: "cliente@example.com",
		StartAt:       time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
		ClientIP:      "203.0.113.7",
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "rate_limited"))
}

func TestCreateAppointment_LimiterFailureDegradesOpen(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)

	now := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)
	uc := newCreateUC(repo, failingStore{}, newCaptureSender(), now)

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ServiceID:     1,
		BarberID:      1,
		CustomerEmail: "cliente@example.com",
		StartAt:       time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
		ClientIP:      "203.0.113.7",
	})
	require.NoError(t, err, "falha no store de rate limit não pode travar a reserva")
	assert.NotZero(t, ap.ID)
}

func TestCreateAppointment_ConcurrentSameSlotSingleWinner(t *testing.T) {
	repo := newFakeRepo()
	seedCatalog(repo)

	now := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)
	startAt := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

	uc := newCreateUC(repo, newMemoryStore(), newCaptureSender(), now)

	const n = 8
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), CreateAppointmentInput{
				ServiceID:     1,
				BarberID:      1,
				CustomerEmail: "cliente" + strings.Repeat("x", i) + "@example.com",
				StartAt:       startAt,
				ClientIP:      "203.0.113.7",
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		assert.True(t, httperr.IsBusiness(err, "slot_taken"),
			"perdedores devem falhar com slot_taken, veio: %v", err)
	}
	assert.Equal(t, 1, winners, "exatamente uma reserva vence o slot")
}
