package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipperdesk/barber-booking/internal/httperr"
	"github.com/clipperdesk/barber-booking/internal/models"
)

func seedPending(t *testing.T, repo *fakeRepo, email, tokenHash string, expiresAt time.Time) *models.Appointment {
	t.Helper()

	ap := &models.Appointment{
		ServiceID:             1,
		BarberID:              1,
		CustomerEmail:         email,
		StartAt:               time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC),
		Status:                "pending_confirmation",
		ConfirmationTokenHash: &tokenHash,
		ConfirmationExpiresAt: &expiresAt,
	}
	require.NoError(t, repo.CreateAppointment(context.Background(), ap))
	return ap
}

func TestConfirmAppointment_ByToken(t *testing.T) {
	repo := newFakeRepo()
	now := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)

	seedPending(t, repo, "cliente@example.com", "hash-valido", now.Add(time.Hour))

	uc := NewConfirmAppointment(repo, nil, fakeClock{now: now})

	ap, err := uc.Execute(context.Background(), "hash-valido")
	require.NoError(t, err)
	assert.Equal(t, "confirmed", ap.Status)

	// cliente é criado de forma lazy na confirmação
	require.NotNil(t, ap.CustomerID)
	customer, err := repo.GetOrCreateCustomer(context.Background(), "cliente@example.com")
	require.NoError(t, err)
	assert.Equal(t, customer.ID, *ap.CustomerID)
}

func TestConfirmAppointment_UnknownToken(t *testing.T) {
	repo := newFakeRepo()
	now := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)

	uc := NewConfirmAppointment(repo, nil, fakeClock{now: now})

	_, err := uc.Execute(context.Background(), "nao-existe")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "confirmation_not_found"))
}

func TestConfirmAppointment_Expired(t *testing.T) {
	repo := newFakeRepo()
	now := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)

	seeded := seedPending(t, repo, "cliente@example.com", "hash-velho", now.Add(-time.Minute))

	uc := NewConfirmAppointment(repo, nil, fakeClock{now: now})

	_, err := uc.Execute(context.Background(), "hash-velho")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "confirmation_expired"))

	// o status não muda na leitura; expiração física é externa
	stored, err := repo.GetAppointment(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending_confirmation", stored.Status)
}

func TestConfirmAppointment_Idempotent(t *testing.T) {
	repo := newFakeRepo()
	now := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)

	seedPending(t, repo, "cliente@example.com", "hash-valido", now.Add(time.Hour))

	uc := NewConfirmAppointment(repo, nil, fakeClock{now: now})

	first, err := uc.Execute(context.Background(), "hash-valido")
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), "hash-valido")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "confirmed", second.Status)
}

func TestConfirmAppointmentByAdmin(t *testing.T) {
	repo := newFakeRepo()
	now := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)

	seeded := seedPending(t, repo, "cliente@example.com", "hash-admin", now.Add(time.Hour))

	uc := NewConfirmAppointmentByAdmin(repo, nil)

	ap, err := uc.Execute(context.Background(), 7, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", ap.Status)
	require.NotNil(t, ap.CustomerID)

	// reconfirmar é idempotente
	again, err := uc.Execute(context.Background(), 7, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", again.Status)
}

func TestConfirmAppointmentByAdmin_NotFound(t *testing.T) {
	repo := newFakeRepo()
	uc := NewConfirmAppointmentByAdmin(repo, nil)

	_, err := uc.Execute(context.Background(), 7, 999)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

func TestConfirmAppointmentByAdmin_InvalidState(t *testing.T) {
	repo := newFakeRepo()
	now := time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC)

	seeded := seedPending(t, repo, "cliente@example.com", "hash-cancelado", now.Add(time.Hour))
	seeded.Status = "cancelled"
	require.NoError(t, repo.UpdateAppointment(context.Background(), seeded))

	uc := NewConfirmAppointmentByAdmin(repo, nil)

	_, err := uc.Execute(context.Background(), 7, seeded.ID)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}
