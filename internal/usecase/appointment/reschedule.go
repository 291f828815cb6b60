package appointment

import (
	"context"
	"time"

	"github.com/bookwellhq/booking-scheduler/internal/audit"
	domain "github.com/bookwellhq/booking-scheduler/internal/domain/appointment"
	"github.com/bookwellhq/booking-scheduler/internal/httperr"
	"github.com/bookwellhq/booking-scheduler/internal/models"
	"github.com/bookwellhq/booking-scheduler/internal/schedule"
)

type RescheduleAppointmentInput struct {
	BusinessID    uint
	AppointmentID uint

	Date      string
	StartTime string

	ActorUserID *uint
}

// RescheduleAppointment moves an open appointment to a new slot. The
// appointment keeps its original duration (snapshot semantics: a later
// change to the service's duration never rewrites existing bookings)
// and is excluded from its own conflict check.
type RescheduleAppointment struct {
	repo     domain.Repository
	resolver *ResolveWorkingHours
	cache    SlotCache
	audit    *audit.Dispatcher
}

func NewRescheduleAppointment(
	repo domain.Repository,
	cache SlotCache,
	auditor *audit.Dispatcher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:     repo,
		resolver: NewResolveWorkingHours(repo),
		cache:    cache,
		audit:    auditor,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.BusinessID, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if ap == nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	status := domain.Status(ap.Status)
	if status != domain.StatusPending && status != domain.StatusConfirmed {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	current, err := schedule.ParseInterval(ap.StartTime, ap.EndTime)
	if err != nil {
		return nil, err
	}
	durationMin := current.End - current.Start

	startMin, err := schedule.ParseClock(in.StartTime)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	slot := schedule.Interval{Start: startMin, End: startMin + durationMin}

	bufferMin := 0
	if service, err := uc.repo.GetService(ctx, in.BusinessID, ap.ServiceID); err != nil {
		return nil, err
	} else if service != nil {
		bufferMin = service.BufferMin
	}

	working, err := uc.resolver.Execute(ctx, in.BusinessID, ap.StaffID, in.Date)
	if err != nil {
		return nil, err
	}
	if working.Closed ||
		slot.Start < working.Interval.Start ||
		slot.End+bufferMin > working.Interval.End {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	oldDate := ap.AppointmentDate
	startStr := schedule.FormatClock(slot.Start)
	endStr := schedule.FormatClock(slot.End)

	err = uc.repo.WithinTransaction(ctx, func(tx domain.Repository) error {
		count, err := tx.CountOverlapping(ctx, ap.StaffID, in.Date, startStr, endStr, ap.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		blocked, err := tx.ListBlockedTimes(ctx, ap.StaffID, in.Date)
		if err != nil {
			return err
		}
		for _, bt := range blocked {
			if iv, err := schedule.ParseInterval(bt.StartTime, bt.EndTime); err == nil && slot.Overlaps(iv) {
				return httperr.ErrBusiness("time_conflict")
			}
		}

		ap.AppointmentDate = in.Date
		ap.StartTime = startStr
		ap.EndTime = endStr

		return tx.UpdateAppointment(ctx, ap)
	})

	if err != nil {
		if httperr.IsExclusionConflict(err) {
			err = httperr.ErrBusiness("time_conflict")
		}
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.InvalidateDay(ctx, ap.StaffID, oldDate)
		uc.cache.InvalidateDay(ctx, ap.StaffID, in.Date)
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			BusinessID: in.BusinessID,
			UserID:     in.ActorUserID,
			Action:     "appointment_rescheduled",
			Entity:     "appointment",
			EntityID:   &ap.ID,
			Metadata: map[string]any{
				"from_date": oldDate,
				"to_date":   in.Date,
				"start":     startStr,
			},
		})
	}

	return ap, nil
}
