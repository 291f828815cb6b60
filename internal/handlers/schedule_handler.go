package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookwellhq/booking-scheduler/internal/audit"
	"github.com/bookwellhq/booking-scheduler/internal/httperr"
	"github.com/bookwellhq/booking-scheduler/internal/httpresp"
	"github.com/bookwellhq/booking-scheduler/internal/middleware"
	"github.com/bookwellhq/booking-scheduler/internal/models"
	"github.com/bookwellhq/booking-scheduler/internal/schedule"
	uc "github.com/bookwellhq/booking-scheduler/internal/usecase/appointment"
)

// ScheduleHandler manages date-specific availability exceptions and
// blocked times for staff members.
type ScheduleHandler struct {
	db    *gorm.DB
	cache uc.SlotCache
	audit *audit.Dispatcher
}

func NewScheduleHandler(db *gorm.DB, cache uc.SlotCache, auditor *audit.Dispatcher) *ScheduleHandler {
	return &ScheduleHandler{db: db, cache: cache, audit: auditor}
}

func (h *ScheduleHandler) auditEdit(c *gin.Context, action string, entityID uint) {
	if h.audit == nil {
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uint)
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)
	h.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     &userID,
		Action:     action,
		Entity:     "schedule",
		EntityID:   &entityID,
	})
}

// --------------------------------------------------
// Requests
// --------------------------------------------------

type AddExceptionRequest struct {
	StaffID       uint   `json:"staff_id" binding:"required"`
	ExceptionDate string `json:"exception_date" binding:"required"`
	ExceptionType string `json:"exception_type" binding:"required,oneof=unavailable custom_hours"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Reason        string `json:"reason"`
}

type AddBlockedTimeRequest struct {
	StaffID     uint   `json:"staff_id" binding:"required"`
	BlockedDate string `json:"blocked_date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	Reason      string `json:"reason"`
}

func (h *ScheduleHandler) ownedStaff(c *gin.Context, businessID, staffID uint) bool {
	var staff models.Staff
	if err := h.db.
		Where("id = ? AND business_id = ?", staffID, businessID).
		First(&staff).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Staff member not found.")
		return false
	}
	return true
}

func (h *ScheduleHandler) invalidate(c *gin.Context, staffID uint, date string) {
	if h.cache != nil {
		h.cache.InvalidateDay(c.Request.Context(), staffID, date)
	}
}

// --------------------------------------------------
// Exceptions
// --------------------------------------------------

func (h *ScheduleHandler) ListExceptions(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var exceptions []models.AvailabilityException
	if err := h.db.
		Joins("JOIN staff ON staff.id = availability_exceptions.staff_id").
		Where("staff.business_id = ? AND availability_exceptions.exception_date >= ?",
			businessID, time.Now().Format("2006-01-02")).
		Order("availability_exceptions.exception_date ASC").
		Find(&exceptions).Error; err != nil {
		httperr.Internal(c, "failed_to_list_exceptions", "Could not list exceptions.")
		return
	}

	httpresp.List(c, exceptions)
}

func (h *ScheduleHandler) AddException(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var req AddExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	if !h.ownedStaff(c, businessID, req.StaffID) {
		return
	}

	if _, err := time.Parse("2006-01-02", req.ExceptionDate); err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	exc := models.AvailabilityException{
		StaffID:       req.StaffID,
		ExceptionDate: req.ExceptionDate,
		ExceptionType: req.ExceptionType,
		Reason:        req.Reason,
	}

	if req.ExceptionType == models.ExceptionCustomHours {
		iv, err := schedule.ParseInterval(req.StartTime, req.EndTime)
		if err != nil || !iv.Valid() {
			httperr.BadRequest(c, "invalid_hours", "Start time must be before end time.")
			return
		}
		exc.StartTime = &req.StartTime
		exc.EndTime = &req.EndTime
	}

	// One exception per staff/date: replace any existing row.
	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("staff_id = ? AND exception_date = ?", req.StaffID, req.ExceptionDate).
			Delete(&models.AvailabilityException{}).Error; err != nil {
			return err
		}
		return tx.Create(&exc).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_add_exception", "Could not add exception.")
		return
	}

	h.invalidate(c, req.StaffID, req.ExceptionDate)
	h.auditEdit(c, "exception_added", exc.ID)

	c.JSON(http.StatusCreated, exc)
}

func (h *ScheduleHandler) DeleteException(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)
	id := c.Param("id")

	var exc models.AvailabilityException
	if err := h.db.
		Joins("JOIN staff ON staff.id = availability_exceptions.staff_id").
		Where("availability_exceptions.id = ? AND staff.business_id = ?", id, businessID).
		First(&exc).Error; err != nil {
		httperr.NotFound(c, "exception_not_found", "Exception not found.")
		return
	}

	if err := h.db.Delete(&exc).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_exception", "Could not delete exception.")
		return
	}

	h.invalidate(c, exc.StaffID, exc.ExceptionDate)
	h.auditEdit(c, "exception_removed", exc.ID)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// --------------------------------------------------
// Blocked times
// --------------------------------------------------

func (h *ScheduleHandler) ListBlockedTimes(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var blocked []models.BlockedTime
	if err := h.db.
		Joins("JOIN staff ON staff.id = blocked_times.staff_id").
		Where("staff.business_id = ? AND blocked_times.blocked_date >= ?",
			businessID, time.Now().Format("2006-01-02")).
		Order("blocked_times.blocked_date ASC, blocked_times.start_time ASC").
		Find(&blocked).Error; err != nil {
		httperr.Internal(c, "failed_to_list_blocked_times", "Could not list blocked times.")
		return
	}

	httpresp.List(c, blocked)
}

func (h *ScheduleHandler) AddBlockedTime(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var req AddBlockedTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	if !h.ownedStaff(c, businessID, req.StaffID) {
		return
	}

	if _, err := time.Parse("2006-01-02", req.BlockedDate); err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	iv, err := schedule.ParseInterval(req.StartTime, req.EndTime)
	if err != nil || !iv.Valid() {
		httperr.BadRequest(c, "invalid_hours", "Start time must be before end time.")
		return
	}

	bt := models.BlockedTime{
		StaffID:     req.StaffID,
		BlockedDate: req.BlockedDate,
		StartTime:   schedule.FormatClock(iv.Start),
		EndTime:     schedule.FormatClock(iv.End),
		Reason:      req.Reason,
	}

	if err := h.db.Create(&bt).Error; err != nil {
		httperr.Internal(c, "failed_to_add_blocked_time", "Could not add blocked time.")
		return
	}

	h.invalidate(c, req.StaffID, req.BlockedDate)
	h.auditEdit(c, "blocked_time_added", bt.ID)

	c.JSON(http.StatusCreated, bt)
}

func (h *ScheduleHandler) DeleteBlockedTime(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)
	id := c.Param("id")

	var bt models.BlockedTime
	if err := h.db.
		Joins("JOIN staff ON staff.id = blocked_times.staff_id").
		Where("blocked_times.id = ? AND staff.business_id = ?", id, businessID).
		First(&bt).Error; err != nil {
		httperr.NotFound(c, "blocked_time_not_found", "Blocked time not found.")
		return
	}

	if err := h.db.Delete(&bt).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_blocked_time", "Could not delete blocked time.")
		return
	}

	h.invalidate(c, bt.StaffID, bt.BlockedDate)
	h.auditEdit(c, "blocked_time_removed", bt.ID)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
