package appointment

import (
	"context"

	domain "github.com/bookwellhq/booking-scheduler/internal/domain/appointment"
	"github.com/bookwellhq/booking-scheduler/internal/models"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(repo domain.Repository) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{repo: repo}
}

// Execute lists a single day for one staff member (or the whole
// business when staffID is zero), every status included.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	businessID uint,
	staffID uint,
	date string,
) ([]models.Appointment, error) {
	return uc.repo.ListAppointmentsForPeriod(ctx, businessID, staffID, date, date)
}
