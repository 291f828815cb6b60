package models

import "time"

// WorkingHours is one weekday row of a weekly schedule. A row with
// StaffID = nil is the business-wide default; a staff-specific row
// overrides it for that staff member.
type WorkingHours struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	BusinessID uint  `gorm:"index" json:"business_id"`
	StaffID    *uint `gorm:"index" json:"staff_id"`

	DayOfWeek int `json:"day_of_week"` // 0 = Sunday

	StartTime string `gorm:"size:8" json:"start_time"` // "HH:MM"
	EndTime   string `gorm:"size:8" json:"end_time"`
	Closed    bool   `gorm:"default:false" json:"closed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
