package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookwellhq/booking-scheduler/internal/audit"
	"github.com/bookwellhq/booking-scheduler/internal/httperr"
	"github.com/bookwellhq/booking-scheduler/internal/middleware"
	"github.com/bookwellhq/booking-scheduler/internal/models"
	"github.com/bookwellhq/booking-scheduler/internal/schedule"
)

type WorkingHoursHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewWorkingHoursHandler(db *gorm.DB, auditor *audit.Dispatcher) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db, audit: auditor}
}

type WorkingDayConfig struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	Closed    bool   `json:"closed"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required"`
}

// staffIDParam reads the optional staff_id query; zero means the
// business-wide default rows.
func (h *WorkingHoursHandler) staffIDParam(c *gin.Context, businessID uint) (*uint, bool) {
	raw := c.Query("staff_id")
	if raw == "" {
		return nil, true
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_staff_id", "Invalid staff id.")
		return nil, false
	}

	var staff models.Staff
	if err := h.db.
		Where("id = ? AND business_id = ?", id, businessID).
		First(&staff).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Staff member not found.")
		return nil, false
	}

	staffID := uint(id)
	return &staffID, true
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	staffID, ok := h.staffIDParam(c, businessID)
	if !ok {
		return
	}

	q := h.db.Where("business_id = ?", businessID)
	if staffID == nil {
		q = q.Where("staff_id IS NULL")
	} else {
		q = q.Where("staff_id = ?", *staffID)
	}

	var hours []models.WorkingHours
	if err := q.Order("day_of_week ASC").Find(&hours).Error; err != nil {
		httperr.Internal(c, "failed_to_get_working_hours", "Could not load working hours.")
		return
	}

	c.JSON(http.StatusOK, hours)
}

// Update replaces the weekly pattern wholesale (delete-and-reinsert),
// either the business default or one staff member's override.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	staffID, ok := h.staffIDParam(c, businessID)
	if !ok {
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	for _, d := range req.Days {
		if d.Closed {
			continue
		}
		iv, err := schedule.ParseInterval(d.StartTime, d.EndTime)
		if err != nil || !iv.Valid() {
			httperr.BadRequest(c, "invalid_hours", "Start time must be before end time.")
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		q := tx.Where("business_id = ?", businessID)
		if staffID == nil {
			q = q.Where("staff_id IS NULL")
		} else {
			q = q.Where("staff_id = ?", *staffID)
		}
		if err := q.Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}

		var toCreate []models.WorkingHours
		for _, d := range req.Days {
			wh := models.WorkingHours{
				BusinessID: businessID,
				StaffID:    staffID,
				DayOfWeek:  d.DayOfWeek,
				Closed:     d.Closed,
				StartTime:  d.StartTime,
				EndTime:    d.EndTime,
			}
			toCreate = append(toCreate, wh)
		}

		if len(toCreate) > 0 {
			if err := tx.Create(&toCreate).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		httperr.Internal(c, "failed_to_save_working_hours", "Could not save working hours.")
		return
	}

	if h.audit != nil {
		userID := c.MustGet(middleware.ContextUserID).(uint)
		h.audit.Dispatch(audit.Event{
			BusinessID: businessID,
			UserID:     &userID,
			Action:     "working_hours_updated",
			Entity:     "schedule",
		})
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
