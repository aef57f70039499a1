package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// (barber_id, start_at) é a garantia real contra double-booking:
	// duas requisições concorrentes para o mesmo horário resolvem em
	// exatamente um insert vencedor.
	BarberID uint      `gorm:"uniqueIndex:idx_appointments_barber_start" json:"barber_id"`
	Barber   AdminUser `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	CustomerEmail string    `gorm:"size:100;not null;index" json:"customer_email"`
	CustomerID    *uint     `json:"customer_id"`
	Customer      *Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer,omitempty"`

	StartAt time.Time `gorm:"uniqueIndex:idx_appointments_barber_start;not null" json:"start_at"`

	Status string `gorm:"size:30;default:'pending_confirmation'" json:"status"`

	ConfirmationTokenHash *string    `gorm:"size:64;index" json:"-"`
	ConfirmationExpiresAt *time.Time `json:"confirmation_expires_at"`

	TotalCost *float64 `json:"total_cost"`

	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
