package appointment

import "github.com/bookwellhq/booking-scheduler/internal/schedule"

type AvailabilityInput struct {
	BusinessID uint
	StaffID    uint

	Date string // "YYYY-MM-DD"

	DurationMin int
	BufferMin   int

	// ExcludeAppointmentID skips one appointment in conflict checks so
	// an appointment being edited does not conflict with itself.
	ExcludeAppointmentID uint
}

// WorkingInterval is the resolver's answer for one staff/date pair.
type WorkingInterval struct {
	Interval schedule.Interval
	Closed   bool
}

var ClosedDay = WorkingInterval{Closed: true}
