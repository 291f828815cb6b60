package models

import "time"

type Service struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"index" json:"business_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`

	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`

	// BufferMin keeps the staff member unavailable after the service ends.
	// It is applied when checking conflicts, never stored on appointments.
	BufferMin int `gorm:"default:0" json:"buffer_min"`

	Active   bool   `gorm:"default:true" json:"active"`
	Category string `gorm:"size:50" json:"category"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
