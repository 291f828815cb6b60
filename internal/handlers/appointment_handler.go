package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bookwellhq/booking-scheduler/internal/dto"
	"github.com/bookwellhq/booking-scheduler/internal/httperr"
	"github.com/bookwellhq/booking-scheduler/internal/middleware"
	"github.com/bookwellhq/booking-scheduler/internal/models"
	uc "github.com/bookwellhq/booking-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	bookUC       *uc.BookAppointment
	rescheduleUC *uc.RescheduleAppointment
	transitionUC *uc.TransitionAppointment
	listByDateUC *uc.ListAppointmentsByDate
	listMonthUC  *uc.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	bookUC *uc.BookAppointment,
	rescheduleUC *uc.RescheduleAppointment,
	transitionUC *uc.TransitionAppointment,
	listByDateUC *uc.ListAppointmentsByDate,
	listMonthUC *uc.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		bookUC:       bookUC,
		rescheduleUC: rescheduleUC,
		transitionUC: transitionUC,
		listByDateUC: listByDateUC,
		listMonthUC:  listMonthUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	StaffID   uint   `json:"staff_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	StartTime string `json:"start_time" binding:"required"`

	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Notes     string `json:"notes"`
}

type RescheduleAppointmentRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
}

// ======================================================
// CREATE (staff manual entry)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	ap, err := h.bookUC.Execute(c.Request.Context(), uc.BookAppointmentInput{
		BusinessID:  businessID,
		StaffID:     req.StaffID,
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Notes:       req.Notes,
		ActorUserID: &userID,
		// Staff may book inside the public min-advance window.
		EnforceMinAdvance: false,
	})

	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(201, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	staffID, _ := strconv.ParseUint(c.Query("staff_id"), 10, 64)

	aps, err := h.listByDateUC.Execute(c.Request.Context(), businessID, uint(staffID), date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	c.JSON(200, gin.H{
		"date":         date,
		"appointments": dto.AppointmentList(aps),
	})
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	staffID, _ := strconv.ParseUint(c.Query("staff_id"), 10, 64)

	appointments, err := h.listMonthUC.Execute(
		c.Request.Context(), businessID, uint(staffID), year, month,
	)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	c.JSON(200, gin.H{
		"year":         year,
		"month":        month,
		"appointments": dto.AppointmentList(appointments),
	})
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), uc.RescheduleAppointmentInput{
		BusinessID:    businessID,
		AppointmentID: uint(id),
		Date:          req.Date,
		StartTime:     req.StartTime,
		ActorUserID:   &userID,
	})

	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, h.transitionUC.Confirm)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, h.transitionUC.Complete)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, h.transitionUC.Cancel)
}

func (h *AppointmentHandler) MarkNoShow(c *gin.Context) {
	h.transition(c, h.transitionUC.MarkNoShow)
}

// Delete keeps history: it cancels instead of removing the row.
func (h *AppointmentHandler) Delete(c *gin.Context) {
	h.transition(c, h.transitionUC.Cancel)
}

type transitionFunc func(
	ctx context.Context,
	businessID uint,
	userID *uint,
	appointmentID uint,
) (*models.Appointment, error)

func (h *AppointmentHandler) transition(c *gin.Context, fn transitionFunc) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := fn(c.Request.Context(), businessID, &userID, uint(id))
	if err != nil {
		mapTransitionError(c, err)
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// ERROR MAPPING
// ======================================================

func mapBookingError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "time_conflict"):
		httperr.Conflict(c, "time_conflict", "This time slot is no longer available. Please choose another time.")
	case httperr.IsBusiness(err, "outside_working_hours"):
		httperr.BadRequest(c, "outside_working_hours", "Outside working hours.")
	case httperr.IsBusiness(err, "too_soon"):
		httperr.BadRequest(c, "too_soon", "This time is too close to now.")
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
	case httperr.IsBusiness(err, "business_not_found"):
		httperr.NotFound(c, "business_not_found", "Business not found.")
	case httperr.IsBusiness(err, "staff_not_found"):
		httperr.BadRequest(c, "staff_not_found", "Staff member not found.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Service not found.")
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.BadRequest(c, "invalid_state", "Appointment cannot be changed in its current state.")
	default:
		httperr.Internal(c, "booking_failed", "Could not process the booking. Please try again.")
	}
}

func mapTransitionError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.BadRequest(c, "invalid_state", "Appointment cannot be changed in its current state.")
	case httperr.IsBusiness(err, "business_not_found"):
		httperr.NotFound(c, "business_not_found", "Business not found.")
	default:
		httperr.Internal(c, "transition_failed", "Could not update the appointment.")
	}
}
