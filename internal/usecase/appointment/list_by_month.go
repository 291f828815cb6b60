package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/bookwellhq/booking-scheduler/internal/domain/appointment"
	"github.com/bookwellhq/booking-scheduler/internal/models"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(repo domain.Repository) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{repo: repo}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	businessID uint,
	staffID uint,
	year int,
	month int,
) ([]models.Appointment, error) {

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	from := fmt.Sprintf("%04d-%02d-01", year, month)
	to := last.Format("2006-01-02")

	return uc.repo.ListAppointmentsForPeriod(ctx, businessID, staffID, from, to)
}
