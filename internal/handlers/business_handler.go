package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookwellhq/booking-scheduler/internal/httperr"
	"github.com/bookwellhq/booking-scheduler/internal/middleware"
	"github.com/bookwellhq/booking-scheduler/internal/models"
	"github.com/bookwellhq/booking-scheduler/internal/timezone"
)

type BusinessHandler struct {
	db *gorm.DB
}

func NewBusinessHandler(db *gorm.DB) *BusinessHandler {
	return &BusinessHandler{db: db}
}

type UpdateBusinessRequest struct {
	Name                *string `json:"name"`
	Phone               *string `json:"phone"`
	Address             *string `json:"address"`
	Timezone            *string `json:"timezone"`
	Currency            *string `json:"currency"`
	AutoConfirmBookings *bool   `json:"auto_confirm_bookings"`
	MinAdvanceMinutes   *int    `json:"min_advance_minutes"`
}

func (h *BusinessHandler) GetMeBusiness(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var business models.Business
	if err := h.db.First(&business, businessID).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return
	}

	c.JSON(http.StatusOK, business)
}

func (h *BusinessHandler) UpdateMeBusiness(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var business models.Business
	if err := h.db.First(&business, businessID).Error; err != nil {
		httperr.NotFound(c, "business_not_found", "Business not found.")
		return
	}

	var req UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid payload.")
		return
	}

	if req.Timezone != nil && !timezone.IsValid(*req.Timezone) {
		httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
		return
	}

	if req.Name != nil {
		business.Name = *req.Name
	}
	if req.Phone != nil {
		business.Phone = *req.Phone
	}
	if req.Address != nil {
		business.Address = *req.Address
	}
	if req.Timezone != nil {
		business.Timezone = *req.Timezone
	}
	if req.Currency != nil {
		business.Currency = *req.Currency
	}
	if req.AutoConfirmBookings != nil {
		business.AutoConfirmBookings = *req.AutoConfirmBookings
	}
	if req.MinAdvanceMinutes != nil {
		business.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.Save(&business).Error; err != nil {
		httperr.Internal(c, "failed_to_update_business", "Could not save changes.")
		return
	}

	c.JSON(http.StatusOK, business)
}
