package appointment

import (
	"context"

	domain "github.com/bookwellhq/booking-scheduler/internal/domain/appointment"
	"github.com/bookwellhq/booking-scheduler/internal/schedule"
)

// SlotCache is the optional read-side cache for computed slot lists.
// Implementations must degrade to a miss on any backend failure.
type SlotCache interface {
	Get(ctx context.Context, in domain.AvailabilityInput) ([]string, bool)
	Set(ctx context.Context, in domain.AvailabilityInput, slots []string)
	InvalidateDay(ctx context.Context, staffID uint, date string)
}

type GetAvailability struct {
	repo     domain.Repository
	resolver *ResolveWorkingHours
	cache    SlotCache // nil disables caching
}

func NewGetAvailability(repo domain.Repository, cache SlotCache) *GetAvailability {
	return &GetAvailability{
		repo:     repo,
		resolver: NewResolveWorkingHours(repo),
		cache:    cache,
	}
}

// Execute returns the bookable start times as "HH:MM:SS" strings, in
// ascending order. Absent configuration means a closed day, never an
// error; the empty result is a valid answer.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]string, error) {

	if in.DurationMin <= 0 {
		return []string{}, nil
	}

	if uc.cache != nil {
		if slots, ok := uc.cache.Get(ctx, in); ok {
			return slots, nil
		}
	}

	working, err := uc.resolver.Execute(ctx, in.BusinessID, in.StaffID, in.Date)
	if err != nil {
		return nil, err
	}
	if working.Closed {
		return []string{}, nil
	}

	candidates := schedule.GenerateSlots(working.Interval, schedule.DefaultGranularityMin)

	busy, err := uc.busyIntervals(ctx, in)
	if err != nil {
		return nil, err
	}

	available := schedule.FilterSlots(candidates, in.DurationMin, in.BufferMin, working.Interval, busy)

	slots := make([]string, 0, len(available))
	for _, s := range available {
		slots = append(slots, schedule.FormatClock(s))
	}

	if uc.cache != nil {
		uc.cache.Set(ctx, in, slots)
	}

	return slots, nil
}

func (uc *GetAvailability) busyIntervals(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]schedule.Interval, error) {

	appointments, err := uc.repo.ListDayAppointments(
		ctx,
		in.BusinessID,
		in.StaffID,
		in.Date,
		in.ExcludeAppointmentID,
	)
	if err != nil {
		return nil, err
	}

	blocked, err := uc.repo.ListBlockedTimes(ctx, in.StaffID, in.Date)
	if err != nil {
		return nil, err
	}

	busy := make([]schedule.Interval, 0, len(appointments)+len(blocked))

	for _, ap := range appointments {
		if iv, err := schedule.ParseInterval(ap.StartTime, ap.EndTime); err == nil {
			busy = append(busy, iv)
		}
	}
	for _, bt := range blocked {
		if iv, err := schedule.ParseInterval(bt.StartTime, bt.EndTime); err == nil {
			busy = append(busy, iv)
		}
	}

	return busy, nil
}
