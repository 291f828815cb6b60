package appointment

import (
	"context"
	"fmt"

	"github.com/bookwellhq/booking-scheduler/internal/audit"
	"github.com/bookwellhq/booking-scheduler/internal/domain/appointment"
	domain "github.com/bookwellhq/booking-scheduler/internal/domain/appointment"
	"github.com/bookwellhq/booking-scheduler/internal/httperr"
	"github.com/bookwellhq/booking-scheduler/internal/models"
	"github.com/bookwellhq/booking-scheduler/internal/notify"
	"github.com/bookwellhq/booking-scheduler/internal/timezone"
)

// Transition kind for status changes driven from the admin panel.
type transitionKind string

const (
	transitionConfirm  transitionKind = "confirm"
	transitionComplete transitionKind = "complete"
	transitionCancel   transitionKind = "cancel"
	transitionNoShow   transitionKind = "no_show"
)

var transitionActions = map[transitionKind]string{
	transitionConfirm:  "appointment_confirmed",
	transitionComplete: "appointment_completed",
	transitionCancel:   "appointment_cancelled",
	transitionNoShow:   "appointment_no_show",
}

// TransitionAppointment applies one status transition (confirm,
// complete, cancel, no-show). Cancelling releases the slot, so it
// invalidates the availability cache and notifies the business.
// Deleting an appointment routes here as a cancel: history is kept,
// rows are never hard-deleted.
type TransitionAppointment struct {
	repo   domain.Repository
	cache  SlotCache
	notify *notify.Dispatcher
	audit  *audit.Dispatcher
}

func NewTransitionAppointment(
	repo domain.Repository,
	cache SlotCache,
	notifier *notify.Dispatcher,
	auditor *audit.Dispatcher,
) *TransitionAppointment {
	return &TransitionAppointment{
		repo:   repo,
		cache:  cache,
		notify: notifier,
		audit:  auditor,
	}
}

func (uc *TransitionAppointment) Confirm(
	ctx context.Context,
	businessID uint,
	userID *uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.apply(ctx, businessID, userID, appointmentID, transitionConfirm)
}

func (uc *TransitionAppointment) Complete(
	ctx context.Context,
	businessID uint,
	userID *uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.apply(ctx, businessID, userID, appointmentID, transitionComplete)
}

func (uc *TransitionAppointment) Cancel(
	ctx context.Context,
	businessID uint,
	userID *uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.apply(ctx, businessID, userID, appointmentID, transitionCancel)
}

func (uc *TransitionAppointment) MarkNoShow(
	ctx context.Context,
	businessID uint,
	userID *uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return uc.apply(ctx, businessID, userID, appointmentID, transitionNoShow)
}

func (uc *TransitionAppointment) apply(
	ctx context.Context,
	businessID uint,
	userID *uint,
	appointmentID uint,
	kind transitionKind,
) (*models.Appointment, error) {

	business, err := uc.repo.GetBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, httperr.ErrBusiness("business_not_found")
	}

	ap, err := uc.repo.GetAppointment(ctx, businessID, appointmentID)
	if err != nil {
		return nil, err
	}
	if ap == nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(business.Timezone)

	switch kind {
	case transitionConfirm:
		err = appointment.Confirm(ap)
	case transitionComplete:
		err = appointment.Complete(ap, now)
	case transitionCancel:
		err = appointment.Cancel(ap, now)
	case transitionNoShow:
		err = appointment.MarkNoShow(ap)
	}
	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// Cancelled and no-show appointments free their interval.
	if kind == transitionCancel || kind == transitionNoShow {
		if uc.cache != nil {
			uc.cache.InvalidateDay(ctx, ap.StaffID, ap.AppointmentDate)
		}
	}

	if kind == transitionCancel && uc.notify != nil {
		uc.notify.Dispatch(notify.Event{
			BusinessID: businessID,
			Type:       "appointment_cancelled",
			Title:      "Appointment Cancelled",
			Message: fmt.Sprintf(
				"Appointment on %s at %s was cancelled",
				ap.AppointmentDate, ap.StartTime,
			),
			AppointmentID: &ap.ID,
		})
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			BusinessID: businessID,
			UserID:     userID,
			Action:     transitionActions[kind],
			Entity:     "appointment",
			EntityID:   &ap.ID,
		})
	}

	return ap, nil
}
