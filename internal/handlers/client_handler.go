package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookwellhq/booking-scheduler/internal/httperr"
	"github.com/bookwellhq/booking-scheduler/internal/httpresp"
	"github.com/bookwellhq/booking-scheduler/internal/middleware"
	"github.com/bookwellhq/booking-scheduler/internal/models"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

func (h *ClientHandler) List(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	q := h.db.Where("business_id = ?", businessID)

	if search := strings.TrimSpace(strings.ToLower(c.Query("query"))); search != "" {
		like := "%" + search + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?",
			like, like, like, like,
		)
	}

	var clients []models.Client
	if err := q.Order("last_name ASC, first_name ASC").Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Could not list clients.")
		return
	}

	httpresp.List(c, clients)
}

// Delete refuses while the client still has appointments, mirroring
// the soft-delete rule on appointments themselves.
func (h *ClientHandler) Delete(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)
	id := c.Param("id")

	var client models.Client
	if err := h.db.
		Where("id = ? AND business_id = ?", id, businessID).
		First(&client).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Client not found.")
		return
	}

	var count int64
	h.db.Model(&models.Appointment{}).
		Where("client_id = ? AND business_id = ?", client.ID, businessID).
		Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "client_has_appointments", "Client has appointment history and cannot be deleted.")
		return
	}

	if err := h.db.Delete(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_client", "Could not delete client.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
