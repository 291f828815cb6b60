package appointment

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/bookwellhq/booking-scheduler/internal/audit"
	domain "github.com/bookwellhq/booking-scheduler/internal/domain/appointment"
	"github.com/bookwellhq/booking-scheduler/internal/httperr"
	"github.com/bookwellhq/booking-scheduler/internal/models"
	"github.com/bookwellhq/booking-scheduler/internal/notify"
	"github.com/bookwellhq/booking-scheduler/internal/schedule"
	"github.com/bookwellhq/booking-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	BusinessID uint
	StaffID    uint
	ServiceID  uint

	Date      string // "YYYY-MM-DD"
	StartTime string // "HH:MM" or "HH:MM:SS"

	FirstName      string
	LastName       string
	Email          string
	Phone          string
	ReferralSource string
	Notes          string

	// ActorUserID is set for bookings made from the admin panel.
	ActorUserID *uint

	// EnforceMinAdvance applies the business's minimum-advance window;
	// public self-service bookings set it, staff manual entry does not.
	EnforceMinAdvance bool
}

// ======================================================
// USE CASE
// ======================================================

// BookAppointment is the write path: the overlap check and the insert
// run in one transaction, so two concurrent requests for the same slot
// cannot both succeed. A postgres exclusion constraint backstops the
// scan; either failure surfaces as the "time_conflict" business error.
type BookAppointment struct {
	repo     domain.Repository
	resolver *ResolveWorkingHours
	cache    SlotCache
	notify   *notify.Dispatcher
	audit    *audit.Dispatcher
}

func NewBookAppointment(
	repo domain.Repository,
	cache SlotCache,
	notifier *notify.Dispatcher,
	auditor *audit.Dispatcher,
) *BookAppointment {
	return &BookAppointment{
		repo:     repo,
		resolver: NewResolveWorkingHours(repo),
		cache:    cache,
		notify:   notifier,
		audit:    auditor,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	business, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, httperr.ErrBusiness("business_not_found")
	}

	staff, err := uc.repo.GetStaff(ctx, in.BusinessID, in.StaffID)
	if err != nil {
		return nil, err
	}
	if staff == nil || !staff.Active {
		return nil, httperr.ErrBusiness("staff_not_found")
	}

	service, err := uc.repo.GetService(ctx, in.BusinessID, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if service == nil || !service.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	day, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	startMin, err := schedule.ParseClock(in.StartTime)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// End time is a snapshot of the service duration at booking time.
	slot := schedule.Interval{Start: startMin, End: startMin + service.DurationMin}

	if in.EnforceMinAdvance {
		if err := uc.checkMinAdvance(business, day, startMin); err != nil {
			return nil, err
		}
	}

	working, err := uc.resolver.Execute(ctx, in.BusinessID, in.StaffID, in.Date)
	if err != nil {
		return nil, err
	}
	if working.Closed ||
		slot.Start < working.Interval.Start ||
		slot.End+service.BufferMin > working.Interval.End {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	client, err := uc.getOrCreateClient(ctx, in)
	if err != nil {
		return nil, err
	}

	startStr := schedule.FormatClock(slot.Start)
	endStr := schedule.FormatClock(slot.End)

	ap := &models.Appointment{
		BusinessID:      in.BusinessID,
		ClientID:        client.ID,
		StaffID:         in.StaffID,
		ServiceID:       in.ServiceID,
		Reference:       uuid.NewString(),
		AppointmentDate: in.Date,
		StartTime:       startStr,
		EndTime:         endStr,
		Status:          string(domain.InitialStatus(business.AutoConfirmBookings)),
		Price:           service.Price,
		PaymentStatus:   "unpaid",
		Notes:           in.Notes,
	}

	err = uc.repo.WithinTransaction(ctx, func(tx domain.Repository) error {
		count, err := tx.CountOverlapping(ctx, in.StaffID, in.Date, startStr, endStr, 0)
		if err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		blocked, err := tx.ListBlockedTimes(ctx, in.StaffID, in.Date)
		if err != nil {
			return err
		}
		for _, bt := range blocked {
			if iv, err := schedule.ParseInterval(bt.StartTime, bt.EndTime); err == nil && slot.Overlaps(iv) {
				return httperr.ErrBusiness("time_conflict")
			}
		}

		return tx.CreateAppointment(ctx, ap)
	})

	if err != nil {
		if httperr.IsExclusionConflict(err) {
			err = httperr.ErrBusiness("time_conflict")
		}
		if httperr.IsBusiness(err, "time_conflict") && uc.audit != nil {
			uc.audit.Dispatch(audit.Event{
				BusinessID: in.BusinessID,
				UserID:     in.ActorUserID,
				Action:     "appointment_conflict",
				Entity:     "appointment",
				Metadata: map[string]any{
					"staff_id": in.StaffID,
					"date":     in.Date,
					"start":    startStr,
					"end":      endStr,
				},
			})
		}
		return nil, err
	}

	// Side effects past this point are best effort: the booking is
	// committed and must not be rolled back by any of them.
	uc.afterCommit(ctx, business, client, staff, service, ap, in)

	return ap, nil
}

// ======================================================
// HELPERS
// ======================================================

func (uc *BookAppointment) checkMinAdvance(
	business *models.Business,
	day time.Time,
	startMin int,
) error {

	minAdvance := business.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 60
	}

	loc := timezone.Location(business.Timezone)
	start := time.Date(
		day.Year(), day.Month(), day.Day(),
		startMin/60, startMin%60, 0, 0,
		loc,
	)

	now := timezone.NowIn(business.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return httperr.ErrBusiness("too_soon")
	}

	return nil
}

// getOrCreateClient resolves client identity by exact email match
// first, then exact phone match. The order decides which record wins
// when a client has used different contact info across visits; found
// records get newly-supplied contact fields backfilled.
func (uc *BookAppointment) getOrCreateClient(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Client, error) {

	var client *models.Client
	var err error

	if in.Email != "" {
		client, err = uc.repo.FindClientByEmail(ctx, in.BusinessID, in.Email)
		if err != nil {
			return nil, err
		}
	}

	if client == nil && in.Phone != "" {
		client, err = uc.repo.FindClientByPhone(ctx, in.BusinessID, in.Phone)
		if err != nil {
			return nil, err
		}
	}

	if client != nil {
		changed := false
		if in.Email != "" && client.Email != in.Email {
			client.Email = in.Email
			changed = true
		}
		if in.Phone != "" && client.Phone != in.Phone {
			client.Phone = in.Phone
			changed = true
		}
		if changed {
			if err := uc.repo.UpdateClient(ctx, client); err != nil {
				return nil, err
			}
		}
		return client, nil
	}

	now := time.Now()
	client = &models.Client{
		BusinessID:     in.BusinessID,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		Phone:          in.Phone,
		ReferralSource: in.ReferralSource,
		FirstVisit:     &now,
	}

	if err := uc.repo.CreateClient(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

func (uc *BookAppointment) afterCommit(
	ctx context.Context,
	business *models.Business,
	client *models.Client,
	staff *models.Staff,
	service *models.Service,
	ap *models.Appointment,
	in BookAppointmentInput,
) {

	if uc.cache != nil {
		uc.cache.InvalidateDay(ctx, in.StaffID, in.Date)
	}

	if err := uc.repo.RecordClientVisit(ctx, client.ID, ap.Price, time.Now()); err != nil {
		log.Println("client stats error:", err)
	}

	if uc.notify != nil {
		uc.notify.Dispatch(notify.Event{
			BusinessID: business.ID,
			Type:       "new_booking",
			Title:      "New Booking",
			Message: fmt.Sprintf(
				"%s %s booked %s with %s on %s at %s",
				client.FirstName, client.LastName,
				service.Name, staff.Name,
				ap.AppointmentDate, ap.StartTime,
			),
			AppointmentID: &ap.ID,
		})
	}

	if uc.audit == nil {
		return
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: business.ID,
		UserID:     in.ActorUserID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})
}
