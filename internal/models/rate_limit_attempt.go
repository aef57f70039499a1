package models

import "time"

// Registro efêmero de tentativa de agendamento por IP.
// Só é lido para contagem dentro da janela; limpeza é externa.
type RateLimitAttempt struct {
	ID uint `gorm:"primaryKey" json:"id"`

	IPAddress string    `gorm:"size:45;index" json:"ip_address"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
