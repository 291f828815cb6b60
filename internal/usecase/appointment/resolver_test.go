package appointment

import (
	"context"
	"testing"

	"github.com/bookwellhq/booking-scheduler/internal/models"
)

func strPtr(s string) *string { return &s }

func TestResolveWorkingHours_ExceptionBeatsWeeklySchedule(t *testing.T) {
	weeklyConsulted := false

	repo := &mockRepository{
		getExceptionFunc: func(ctx context.Context, staffID uint, date string) (*models.AvailabilityException, error) {
			return &models.AvailabilityException{
				StaffID:       staffID,
				ExceptionDate: date,
				ExceptionType: models.ExceptionCustomHours,
				StartTime:     strPtr("10:00"),
				EndTime:       strPtr("14:00"),
			}, nil
		},
		getStaffHoursFunc: func(ctx context.Context, businessID, staffID uint, dayOfWeek int) (*models.WorkingHours, error) {
			weeklyConsulted = true
			return nil, nil
		},
	}

	working, err := NewResolveWorkingHours(repo).Execute(context.Background(), 1, 2, "2030-01-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if working.Closed {
		t.Fatal("expected open interval from custom_hours exception")
	}
	if working.Interval.Start != 600 || working.Interval.End != 840 {
		t.Errorf("expected 10:00-14:00, got %d-%d", working.Interval.Start, working.Interval.End)
	}
	if weeklyConsulted {
		t.Error("weekly schedule should not be consulted when an exception exists")
	}
}

func TestResolveWorkingHours_UnavailableExceptionClosesDay(t *testing.T) {
	repo := &mockRepository{
		getExceptionFunc: func(ctx context.Context, staffID uint, date string) (*models.AvailabilityException, error) {
			return &models.AvailabilityException{
				ExceptionType: models.ExceptionUnavailable,
			}, nil
		},
	}

	working, err := NewResolveWorkingHours(repo).Execute(context.Background(), 1, 2, "2030-01-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !working.Closed {
		t.Error("expected closed day for unavailable exception")
	}
}

func TestResolveWorkingHours_StaffRowOverridesBusinessRow(t *testing.T) {
	repo := &mockRepository{
		getStaffHoursFunc: func(ctx context.Context, businessID, staffID uint, dayOfWeek int) (*models.WorkingHours, error) {
			return &models.WorkingHours{StartTime: "13:00", EndTime: "15:00"}, nil
		},
		getBusinessHoursFunc: func(ctx context.Context, businessID uint, dayOfWeek int) (*models.WorkingHours, error) {
			return &models.WorkingHours{StartTime: "09:00", EndTime: "18:00"}, nil
		},
	}

	working, err := NewResolveWorkingHours(repo).Execute(context.Background(), 1, 2, "2030-01-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if working.Interval.Start != 780 || working.Interval.End != 900 {
		t.Errorf("expected staff override 13:00-15:00, got %d-%d", working.Interval.Start, working.Interval.End)
	}
}

func TestResolveWorkingHours_MissingStaffRowFallsThrough(t *testing.T) {
	repo := &mockRepository{
		getBusinessHoursFunc: func(ctx context.Context, businessID uint, dayOfWeek int) (*models.WorkingHours, error) {
			return &models.WorkingHours{StartTime: "09:00", EndTime: "18:00"}, nil
		},
	}

	working, err := NewResolveWorkingHours(repo).Execute(context.Background(), 1, 2, "2030-01-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if working.Closed {
		t.Fatal("missing staff row must fall back to the business default, not close the day")
	}
	if working.Interval.Start != 540 || working.Interval.End != 1080 {
		t.Errorf("expected business default 09:00-18:00, got %d-%d", working.Interval.Start, working.Interval.End)
	}
}

func TestResolveWorkingHours_NoConfigurationMeansClosed(t *testing.T) {
	repo := &mockRepository{}

	working, err := NewResolveWorkingHours(repo).Execute(context.Background(), 1, 2, "2030-01-15")
	if err != nil {
		t.Fatalf("absence of configuration must not be an error, got %v", err)
	}
	if !working.Closed {
		t.Error("expected closed day when no configuration exists")
	}
}

func TestResolveWorkingHours_ClosedWeeklyRow(t *testing.T) {
	repo := &mockRepository{
		getStaffHoursFunc: func(ctx context.Context, businessID, staffID uint, dayOfWeek int) (*models.WorkingHours, error) {
			return &models.WorkingHours{Closed: true}, nil
		},
	}

	working, err := NewResolveWorkingHours(repo).Execute(context.Background(), 1, 2, "2030-01-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !working.Closed {
		t.Error("expected closed day for a closed weekly row")
	}
}
