package models

import "time"

// Cliente final, sem login. Criado de forma lazy na primeira
// confirmação de agendamento, chaveado por e-mail.
type Customer struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	UserType string `gorm:"size:20;default:'NEW'" json:"user_type"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
