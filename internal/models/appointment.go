package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessID uint     `gorm:"index" json:"business_id"`
	Business   Business `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	StaffID uint  `gorm:"index:idx_appointment_staff_date" json:"staff_id"`
	Staff   Staff `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	// Reference is the client-facing booking identifier.
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	AppointmentDate string `gorm:"size:10;index:idx_appointment_staff_date" json:"appointment_date"` // "YYYY-MM-DD"

	// Start/end are snapshots of the service terms at booking time.
	// EndTime is never re-derived if the service duration changes later.
	StartTime string `gorm:"size:8" json:"start_time"` // "HH:MM:SS"
	EndTime   string `gorm:"size:8" json:"end_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Price         float64 `json:"price"`
	PaymentStatus string  `gorm:"size:20;default:'unpaid'" json:"payment_status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
