package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/bookwellhq/booking-scheduler/internal/domain/appointment"
	"github.com/bookwellhq/booking-scheduler/internal/httperr"
	"github.com/bookwellhq/booking-scheduler/internal/models"
	uc "github.com/bookwellhq/booking-scheduler/internal/usecase/appointment"
	"github.com/bookwellhq/booking-scheduler/internal/validators"
)

// PublicHandler serves the unauthenticated booking surface, keyed by
// the business slug in the URL.
type PublicHandler struct {
	db             *gorm.DB
	availabilityUC *uc.GetAvailability
	bookUC         *uc.BookAppointment
}

func NewPublicHandler(
	db *gorm.DB,
	availabilityUC *uc.GetAvailability,
	bookUC *uc.BookAppointment,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		availabilityUC: availabilityUC,
		bookUC:         bookUC,
	}
}

func (h *PublicHandler) businessBySlug(c *gin.Context) *models.Business {
	var business models.Business
	if err := h.db.
		Where("slug = ? AND status = ?", c.Param("slug"), "active").
		First(&business).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return nil
	}
	return &business
}

// --------------------------------------------------
// Business profile
// --------------------------------------------------

func (h *PublicHandler) GetBusiness(c *gin.Context) {
	business := h.businessBySlug(c)
	if business == nil {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":     business.Name,
		"slug":     business.Slug,
		"timezone": business.Timezone,
		"currency": business.Currency,
		"phone":    business.Phone,
		"address":  business.Address,
	})
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	business := h.businessBySlug(c)
	if business == nil {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("business_id = ? AND active = ?", business.ID, true).
		Order("category ASC, name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "services": services})
}

func (h *PublicHandler) ListStaff(c *gin.Context) {
	business := h.businessBySlug(c)
	if business == nil {
		return
	}

	var staff []models.Staff
	if err := h.db.
		Where("business_id = ? AND active = ?", business.ID, true).
		Order("name ASC").
		Find(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Could not list staff.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "staff": staff})
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (h *PublicHandler) Availability(c *gin.Context) {
	business := h.businessBySlug(c)
	if business == nil {
		return
	}

	staffID, err := strconv.ParseUint(c.Query("staff_id"), 10, 64)
	if err != nil || staffID == 0 {
		httperr.BadRequest(c, "invalid_staff_id", "Invalid staff id.")
		return
	}

	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 64)
	if err != nil || serviceID == 0 {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service id.")
		return
	}

	date := c.Query("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	empty := func() {
		c.JSON(http.StatusOK, gin.H{"success": true, "slots": []string{}, "date": date})
	}

	// Past dates answer "no slots" rather than erroring, so date
	// pickers can probe freely.
	if isPastDate(business, date) {
		empty()
		return
	}

	var staff models.Staff
	if err := h.db.
		Where("id = ? AND business_id = ? AND active = ?", staffID, business.ID, true).
		First(&staff).Error; err != nil {
		empty()
		return
	}

	var service models.Service
	if err := h.db.
		Where("id = ? AND business_id = ? AND active = ?", serviceID, business.ID, true).
		First(&service).Error; err != nil {
		empty()
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), domain.AvailabilityInput{
		BusinessID:  business.ID,
		StaffID:     staff.ID,
		Date:        date,
		DurationMin: service.DurationMin,
		BufferMin:   service.BufferMin,
	})
	if err != nil {
		httperr.Internal(c, "failed_to_get_availability", "Could not compute availability.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "slots": slots, "date": date})
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

type PublicBookingRequest struct {
	StaffID   uint   `json:"staff_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`

	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	ReferralSource string `json:"referral_source"`
	Notes          string `json:"notes"`
}

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	business := h.businessBySlug(c)
	if business == nil {
		return
	}

	var req PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	if req.Email == "" && req.Phone == "" {
		httperr.BadRequest(c, "missing_contact", "Email or phone is required.")
		return
	}

	if req.Email != "" && !validators.IsEmailDomainValid(req.Email) {
		httperr.BadRequest(c, "invalid_email", "Email domain does not exist.")
		return
	}

	ap, err := h.bookUC.Execute(c.Request.Context(), uc.BookAppointmentInput{
		BusinessID:        business.ID,
		StaffID:           req.StaffID,
		ServiceID:         req.ServiceID,
		Date:              req.Date,
		StartTime:         req.StartTime,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		ReferralSource:    req.ReferralSource,
		Notes:             req.Notes,
		EnforceMinAdvance: true,
	})

	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"reference": ap.Reference,
		"date":      ap.AppointmentDate,
		"start":     ap.StartTime,
		"end":       ap.EndTime,
		"status":    ap.Status,
	})
}
