package models

import "time"

type Business struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`

	// Slug is the public booking page identifier.
	Slug string `gorm:"size:100;uniqueIndex;not null" json:"slug"`

	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	Timezone string `gorm:"size:64" json:"timezone"`
	Currency string `gorm:"size:3;default:'USD'" json:"currency"`

	AutoConfirmBookings bool `gorm:"default:true" json:"auto_confirm_bookings"`
	MinAdvanceMinutes   int  `gorm:"default:60" json:"min_advance_minutes"`

	Status string `gorm:"size:20;default:'active'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
