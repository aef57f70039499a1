package ratelimit

import (
	"context"
	"time"

	"github.com/clipperdesk/barber-booking/internal/clientip"
)

const (
	// Máximo de tentativas de agendamento por IP na janela.
	DefaultLimit = 10

	// Janela deslizante de contagem.
	Window = 50 * time.Minute

	// Tentativas expiram sozinhas depois de uma hora; a limpeza
	// física é externa.
	AttemptTTL = time.Hour
)

// Store conta e registra tentativas por IP. Implementações: sorted
// set no Redis (janela deslizante) ou linhas no Postgres.
type Store interface {
	CountSince(ctx context.Context, ip string, since time.Time) (int64, error)
	Record(ctx context.Context, ip string, now time.Time, ttl time.Duration) error
}

type Limiter struct {
	store  Store
	limit  int
	window time.Duration
}

func New(store Store) *Limiter {
	return &Limiter{
		store:  store,
		limit:  DefaultLimit,
		window: Window,
	}
}

// Allow verifica a janela e, se permitido, registra a tentativa.
// IP "unknown" nunca é limitado, para não bloquear tráfego local.
func (l *Limiter) Allow(ctx context.Context, ip string, now time.Time) (bool, error) {
	if ip == "" || ip == clientip.Unknown {
		return true, nil
	}

	count, err := l.store.CountSince(ctx, ip, now.Add(-l.window))
	if err != nil {
		return false, err
	}

	if count >= int64(l.limit) {
		return false, nil
	}

	if err := l.store.Record(ctx, ip, now, AttemptTTL); err != nil {
		return false, err
	}

	return true, nil
}
