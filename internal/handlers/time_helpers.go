package handlers

import (
	"time"

	"github.com/bookwellhq/booking-scheduler/internal/models"
	"github.com/bookwellhq/booking-scheduler/internal/timezone"
)

// --------------------------------------------------
// Timezone centralizado por negócio
// --------------------------------------------------

func locationFromBusiness(business *models.Business) *time.Location {
	if business != nil {
		return timezone.Location(business.Timezone)
	}
	return time.UTC
}

func nowInBusiness(business *models.Business) time.Time {
	return time.Now().In(locationFromBusiness(business))
}

func parseDateInBusiness(business *models.Business, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromBusiness(business),
	)
}

// isPastDate compares calendar dates in the business's timezone. Past
// dates are a legitimate availability query that answers "no slots",
// not an error.
func isPastDate(business *models.Business, dateStr string) bool {
	return dateStr < nowInBusiness(business).Format("2006-01-02")
}
