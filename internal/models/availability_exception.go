package models

import "time"

const (
	ExceptionUnavailable = "unavailable"
	ExceptionCustomHours = "custom_hours"
)

// AvailabilityException fully supersedes the weekly schedule for one
// staff member on one calendar date.
type AvailabilityException struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	StaffID uint `gorm:"index:idx_exception_staff_date" json:"staff_id"`

	ExceptionDate string `gorm:"size:10;index:idx_exception_staff_date" json:"exception_date"` // "YYYY-MM-DD"
	ExceptionType string `gorm:"size:20;default:'unavailable'" json:"exception_type"`

	StartTime *string `gorm:"size:8" json:"start_time"` // custom_hours only
	EndTime   *string `gorm:"size:8" json:"end_time"`

	Reason string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
