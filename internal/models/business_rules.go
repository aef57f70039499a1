package models

import "time"

// Singleton de configuração da agenda.
type BusinessRules struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Minutos entre slots gerados. Sempre > 0.
	ReservationInterval int `gorm:"default:30" json:"reservation_interval"`

	// Janela máxima de antecedência, em dias.
	ReservationWindow int `gorm:"default:30" json:"reservation_window"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
