package appointment

import (
	"context"
	"testing"

	domain "github.com/bookwellhq/booking-scheduler/internal/domain/appointment"
	"github.com/bookwellhq/booking-scheduler/internal/httperr"
	"github.com/bookwellhq/booking-scheduler/internal/models"
)

func storedAppointment() *models.Appointment {
	return &models.Appointment{
		ID:              10,
		BusinessID:      1,
		StaffID:         2,
		ServiceID:       3,
		AppointmentDate: "2030-01-15",
		StartTime:       "10:00:00",
		EndTime:         "10:45:00", // booked when the service was 45min
		Status:          string(domain.StatusConfirmed),
	}
}

func newRescheduleRepo() *mockRepository {
	repo := newBookingRepo()
	repo.getAppointmentFunc = func(ctx context.Context, businessID, appointmentID uint) (*models.Appointment, error) {
		return storedAppointment(), nil
	}
	return repo
}

func TestRescheduleAppointment_KeepsBookedDuration(t *testing.T) {
	repo := newRescheduleRepo()

	// The service was since shortened to 30min; the stored interval wins.
	ap, err := NewRescheduleAppointment(repo, nil, nil).Execute(context.Background(), RescheduleAppointmentInput{
		BusinessID:    1,
		AppointmentID: 10,
		Date:          "2030-01-16",
		StartTime:     "14:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ap.StartTime != "14:00:00" || ap.EndTime != "14:45:00" {
		t.Errorf("expected 14:00:00-14:45:00 from the 45min snapshot, got %s-%s", ap.StartTime, ap.EndTime)
	}
	if ap.AppointmentDate != "2030-01-16" {
		t.Errorf("expected new date, got %s", ap.AppointmentDate)
	}
}

func TestRescheduleAppointment_ExcludesItselfFromConflicts(t *testing.T) {
	repo := newRescheduleRepo()

	var gotExclude uint
	repo.countOverlappingFunc = func(ctx context.Context, staffID uint, date, startTime, endTime string, excludeID uint) (int64, error) {
		gotExclude = excludeID
		return 0, nil
	}

	_, err := NewRescheduleAppointment(repo, nil, nil).Execute(context.Background(), RescheduleAppointmentInput{
		BusinessID:    1,
		AppointmentID: 10,
		Date:          "2030-01-15",
		StartTime:     "10:15",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotExclude != 10 {
		t.Errorf("expected the appointment to be excluded from its own conflict check, got exclude id %d", gotExclude)
	}
}

func TestRescheduleAppointment_ConflictFails(t *testing.T) {
	repo := newRescheduleRepo()
	repo.countOverlappingFunc = func(ctx context.Context, staffID uint, date, startTime, endTime string, excludeID uint) (int64, error) {
		return 1, nil
	}

	_, err := NewRescheduleAppointment(repo, nil, nil).Execute(context.Background(), RescheduleAppointmentInput{
		BusinessID:    1,
		AppointmentID: 10,
		Date:          "2030-01-16",
		StartTime:     "14:00",
	})
	if !httperr.IsBusiness(err, "time_conflict") {
		t.Fatalf("expected time_conflict, got %v", err)
	}
}

func TestRescheduleAppointment_ClosedStateRejected(t *testing.T) {
	repo := newRescheduleRepo()
	repo.getAppointmentFunc = func(ctx context.Context, businessID, appointmentID uint) (*models.Appointment, error) {
		ap := storedAppointment()
		ap.Status = string(domain.StatusCancelled)
		return ap, nil
	}

	_, err := NewRescheduleAppointment(repo, nil, nil).Execute(context.Background(), RescheduleAppointmentInput{
		BusinessID:    1,
		AppointmentID: 10,
		Date:          "2030-01-16",
		StartTime:     "14:00",
	})
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}
}

func TestRescheduleAppointment_NotFound(t *testing.T) {
	repo := newRescheduleRepo()
	repo.getAppointmentFunc = func(ctx context.Context, businessID, appointmentID uint) (*models.Appointment, error) {
		return nil, nil
	}

	_, err := NewRescheduleAppointment(repo, nil, nil).Execute(context.Background(), RescheduleAppointmentInput{
		BusinessID:    1,
		AppointmentID: 10,
		Date:          "2030-01-16",
		StartTime:     "14:00",
	})
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("expected appointment_not_found, got %v", err)
	}
}

func TestRescheduleAppointment_InvalidatesBothDays(t *testing.T) {
	repo := newRescheduleRepo()
	cache := newFakeSlotCache()

	_, err := NewRescheduleAppointment(repo, cache, nil).Execute(context.Background(), RescheduleAppointmentInput{
		BusinessID:    1,
		AppointmentID: 10,
		Date:          "2030-01-16",
		StartTime:     "14:00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cache.invalidated) != 2 ||
		cache.invalidated[0] != "2030-01-15" ||
		cache.invalidated[1] != "2030-01-16" {
		t.Errorf("expected old and new day invalidated, got %v", cache.invalidated)
	}
}
