package appointment

import (
	"context"
	"reflect"
	"testing"

	domain "github.com/bookwellhq/booking-scheduler/internal/domain/appointment"
	"github.com/bookwellhq/booking-scheduler/internal/models"
)

func openHours(start, end string) func(ctx context.Context, businessID uint, dayOfWeek int) (*models.WorkingHours, error) {
	return func(ctx context.Context, businessID uint, dayOfWeek int) (*models.WorkingHours, error) {
		return &models.WorkingHours{StartTime: start, EndTime: end}, nil
	}
}

func TestGetAvailability_ExcludesBookedSlots(t *testing.T) {
	repo := &mockRepository{
		getBusinessHoursFunc: openHours("09:00", "12:00"),
		listDayAppointmentsFunc: func(ctx context.Context, businessID, staffID uint, date string, excludeID uint) ([]models.Appointment, error) {
			return []models.Appointment{
				{StartTime: "10:00:00", EndTime: "10:30:00"},
			}, nil
		},
	}

	slots, err := NewGetAvailability(repo, nil).Execute(context.Background(), domain.AvailabilityInput{
		BusinessID:  1,
		StaffID:     2,
		Date:        "2030-01-15",
		DurationMin: 30,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"09:00:00", "09:15:00", "09:30:00",
		"10:30:00", "10:45:00", "11:00:00", "11:15:00", "11:30:00",
	}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("got %v, want %v", slots, want)
	}
}

func TestGetAvailability_UnavailableExceptionYieldsEmpty(t *testing.T) {
	repo := &mockRepository{
		getExceptionFunc: func(ctx context.Context, staffID uint, date string) (*models.AvailabilityException, error) {
			return &models.AvailabilityException{ExceptionType: models.ExceptionUnavailable}, nil
		},
		getBusinessHoursFunc: openHours("09:00", "18:00"),
	}

	slots, err := NewGetAvailability(repo, nil).Execute(context.Background(), domain.AvailabilityInput{
		BusinessID:  1,
		StaffID:     2,
		Date:        "2030-01-15",
		DurationMin: 30,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("expected no slots on an unavailable day, got %v", slots)
	}
}

func TestGetAvailability_CustomHoursExceptionBoundsSlots(t *testing.T) {
	repo := &mockRepository{
		getExceptionFunc: func(ctx context.Context, staffID uint, date string) (*models.AvailabilityException, error) {
			return &models.AvailabilityException{
				ExceptionType: models.ExceptionCustomHours,
				StartTime:     strPtr("10:00"),
				EndTime:       strPtr("11:00"),
			}, nil
		},
	}

	slots, err := NewGetAvailability(repo, nil).Execute(context.Background(), domain.AvailabilityInput{
		BusinessID:  1,
		StaffID:     2,
		Date:        "2030-01-15",
		DurationMin: 30,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"10:00:00", "10:15:00", "10:30:00"}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("got %v, want %v", slots, want)
	}
}

func TestGetAvailability_BufferShortensEndOfDay(t *testing.T) {
	repo := &mockRepository{
		getBusinessHoursFunc: openHours("09:00", "10:00"),
	}

	slots, err := NewGetAvailability(repo, nil).Execute(context.Background(), domain.AvailabilityInput{
		BusinessID:  1,
		StaffID:     2,
		Date:        "2030-01-15",
		DurationMin: 30,
		BufferMin:   15,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 09:30 would end 10:00 exactly but the buffer pushes past closing.
	want := []string{"09:00:00", "09:15:00"}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("got %v, want %v", slots, want)
	}
}

func TestGetAvailability_BlockedTimesAreBusy(t *testing.T) {
	repo := &mockRepository{
		getBusinessHoursFunc: openHours("09:00", "11:00"),
		listBlockedTimesFunc: func(ctx context.Context, staffID uint, date string) ([]models.BlockedTime, error) {
			return []models.BlockedTime{
				{StartTime: "09:00:00", EndTime: "10:00:00"},
			}, nil
		},
	}

	slots, err := NewGetAvailability(repo, nil).Execute(context.Background(), domain.AvailabilityInput{
		BusinessID:  1,
		StaffID:     2,
		Date:        "2030-01-15",
		DurationMin: 30,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"10:00:00", "10:15:00", "10:30:00"}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("got %v, want %v", slots, want)
	}
}

func TestGetAvailability_ExcludeAppointmentPassesThrough(t *testing.T) {
	var gotExclude uint

	repo := &mockRepository{
		getBusinessHoursFunc: openHours("09:00", "10:00"),
		listDayAppointmentsFunc: func(ctx context.Context, businessID, staffID uint, date string, excludeID uint) ([]models.Appointment, error) {
			gotExclude = excludeID
			return []models.Appointment{}, nil
		},
	}

	_, err := NewGetAvailability(repo, nil).Execute(context.Background(), domain.AvailabilityInput{
		BusinessID:           1,
		StaffID:              2,
		Date:                 "2030-01-15",
		DurationMin:          30,
		ExcludeAppointmentID: 77,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotExclude != 77 {
		t.Errorf("expected exclude id 77 to reach the repository, got %d", gotExclude)
	}
}

func TestGetAvailability_NoConfigurationYieldsEmpty(t *testing.T) {
	repo := &mockRepository{}

	slots, err := NewGetAvailability(repo, nil).Execute(context.Background(), domain.AvailabilityInput{
		BusinessID:  1,
		StaffID:     2,
		Date:        "2030-01-15",
		DurationMin: 30,
	})
	if err != nil {
		t.Fatalf("absence of configuration must not be an error, got %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("expected no slots, got %v", slots)
	}
}

func TestGetAvailability_Idempotent(t *testing.T) {
	repo := &mockRepository{
		getBusinessHoursFunc: openHours("09:00", "12:00"),
	}

	uc := NewGetAvailability(repo, nil)
	in := domain.AvailabilityInput{BusinessID: 1, StaffID: 2, Date: "2030-01-15", DurationMin: 45}

	first, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("same inputs produced different slots: %v vs %v", first, second)
	}
}

// ---- cache behaviour ----

type fakeSlotCache struct {
	store       map[string][]string
	invalidated []string
}

func newFakeSlotCache() *fakeSlotCache {
	return &fakeSlotCache{store: map[string][]string{}}
}

func (c *fakeSlotCache) key(in domain.AvailabilityInput) string {
	return in.Date
}

func (c *fakeSlotCache) Get(ctx context.Context, in domain.AvailabilityInput) ([]string, bool) {
	slots, ok := c.store[c.key(in)]
	return slots, ok
}

func (c *fakeSlotCache) Set(ctx context.Context, in domain.AvailabilityInput, slots []string) {
	c.store[c.key(in)] = slots
}

func (c *fakeSlotCache) InvalidateDay(ctx context.Context, staffID uint, date string) {
	c.invalidated = append(c.invalidated, date)
	delete(c.store, date)
}

func TestGetAvailability_CacheHitSkipsComputation(t *testing.T) {
	repoCalled := false

	repo := &mockRepository{
		getBusinessHoursFunc: func(ctx context.Context, businessID uint, dayOfWeek int) (*models.WorkingHours, error) {
			repoCalled = true
			return &models.WorkingHours{StartTime: "09:00", EndTime: "18:00"}, nil
		},
	}

	cache := newFakeSlotCache()
	cache.store["2030-01-15"] = []string{"09:00:00"}

	slots, err := NewGetAvailability(repo, cache).Execute(context.Background(), domain.AvailabilityInput{
		BusinessID:  1,
		StaffID:     2,
		Date:        "2030-01-15",
		DurationMin: 30,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repoCalled {
		t.Error("cache hit must not touch the repository")
	}
	if !reflect.DeepEqual(slots, []string{"09:00:00"}) {
		t.Errorf("expected cached slots, got %v", slots)
	}
}

func TestGetAvailability_CacheMissStoresResult(t *testing.T) {
	repo := &mockRepository{
		getBusinessHoursFunc: openHours("09:00", "10:00"),
	}

	cache := newFakeSlotCache()

	slots, err := NewGetAvailability(repo, cache).Execute(context.Background(), domain.AvailabilityInput{
		BusinessID:  1,
		StaffID:     2,
		Date:        "2030-01-15",
		DurationMin: 30,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, ok := cache.store["2030-01-15"]
	if !ok {
		t.Fatal("expected computed slots to be cached")
	}
	if !reflect.DeepEqual(stored, slots) {
		t.Errorf("cached %v differs from returned %v", stored, slots)
	}
}
