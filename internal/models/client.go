package models

import "time"

// Cliente simples, sem login, vinculado ao negócio
type Client struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"index" json:"business_id"`

	FirstName string `gorm:"size:100;not null" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`
	Email     string `gorm:"size:100" json:"email"`
	Phone     string `gorm:"size:20" json:"phone"`

	ReferralSource string `gorm:"size:100" json:"referral_source"`

	FirstVisit  *time.Time `json:"first_visit"`
	LastVisit   *time.Time `json:"last_visit"`
	TotalVisits int        `gorm:"default:0" json:"total_visits"`
	TotalSpent  float64    `gorm:"default:0" json:"total_spent"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
