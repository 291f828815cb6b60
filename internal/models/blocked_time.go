package models

import "time"

// BlockedTime is a manual hold on a staff member's day. It conflicts
// with bookings exactly like an appointment but has no client/service.
type BlockedTime struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	StaffID uint `gorm:"index:idx_blocked_staff_date" json:"staff_id"`

	BlockedDate string `gorm:"size:10;index:idx_blocked_staff_date" json:"blocked_date"` // "YYYY-MM-DD"
	StartTime   string `gorm:"size:8" json:"start_time"`
	EndTime     string `gorm:"size:8" json:"end_time"`

	Reason string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
