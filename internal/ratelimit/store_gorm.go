package ratelimit

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/clipperdesk/barber-booking/internal/models"
)

// GormStore conta linhas de rate_limit_attempts. Fallback quando o
// Redis não está configurado; preserva a mesma semântica de janela.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CountSince(ctx context.Context, ip string, since time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.RateLimitAttempt{}).
		Where("ip_address = ? AND created_at >= ?", ip, since).
		Count(&count).Error

	return count, err
}

func (s *GormStore) Record(ctx context.Context, ip string, now time.Time, ttl time.Duration) error {
	attempt := models.RateLimitAttempt{
		IPAddress: ip,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	return s.db.WithContext(ctx).Create(&attempt).Error
}
