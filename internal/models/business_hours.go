package models

import "time"

// Um registro por dia da semana (0–6, domingo = 0).
type BusinessHours struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Weekday int `gorm:"uniqueIndex" json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	IsClosed  bool   `json:"is_closed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
