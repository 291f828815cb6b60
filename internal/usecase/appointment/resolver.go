package appointment

import (
	"context"
	"time"

	domain "github.com/bookwellhq/booking-scheduler/internal/domain/appointment"
	"github.com/bookwellhq/booking-scheduler/internal/models"
	"github.com/bookwellhq/booking-scheduler/internal/schedule"
)

// ResolveWorkingHours answers "when is this staff member bookable on
// this date". Precedence, highest first:
//
//	date-specific exception > staff weekly row > business weekly row
//
// A missing staff row is not the same as a closed one: it falls through
// to the business-wide default, which is the normal state for staff
// created before any schedule was configured.
type ResolveWorkingHours struct {
	repo domain.Repository
}

func NewResolveWorkingHours(repo domain.Repository) *ResolveWorkingHours {
	return &ResolveWorkingHours{repo: repo}
}

func (uc *ResolveWorkingHours) Execute(
	ctx context.Context,
	businessID uint,
	staffID uint,
	date string,
) (domain.WorkingInterval, error) {

	exc, err := uc.repo.GetAvailabilityException(ctx, staffID, date)
	if err != nil {
		return domain.ClosedDay, err
	}

	if exc != nil {
		return intervalFromException(exc), nil
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return domain.ClosedDay, err
	}
	dayOfWeek := int(day.Weekday())

	wh, err := uc.repo.GetStaffWorkingHours(ctx, businessID, staffID, dayOfWeek)
	if err != nil {
		return domain.ClosedDay, err
	}

	if wh == nil {
		wh, err = uc.repo.GetBusinessWorkingHours(ctx, businessID, dayOfWeek)
		if err != nil {
			return domain.ClosedDay, err
		}
	}

	return intervalFromWorkingHours(wh), nil
}

func intervalFromException(exc *models.AvailabilityException) domain.WorkingInterval {
	if exc.ExceptionType != models.ExceptionCustomHours {
		return domain.ClosedDay
	}

	if exc.StartTime == nil || exc.EndTime == nil {
		return domain.ClosedDay
	}

	iv, err := schedule.ParseInterval(*exc.StartTime, *exc.EndTime)
	if err != nil || !iv.Valid() {
		return domain.ClosedDay
	}

	return domain.WorkingInterval{Interval: iv}
}

func intervalFromWorkingHours(wh *models.WorkingHours) domain.WorkingInterval {
	if wh == nil || wh.Closed || wh.StartTime == "" || wh.EndTime == "" {
		return domain.ClosedDay
	}

	iv, err := schedule.ParseInterval(wh.StartTime, wh.EndTime)
	if err != nil || !iv.Valid() {
		return domain.ClosedDay
	}

	return domain.WorkingInterval{Interval: iv}
}
