package dto

import (
	"strings"

	"github.com/bookwellhq/booking-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID          uint    `json:"id"`
	Reference   string  `json:"reference"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Status      string  `json:"status"`
	ClientName  string  `json:"client_name"`
	ServiceName string  `json:"service_name"`
	StaffName   string  `json:"staff_name"`
	Price       float64 `json:"price"`
}

func AppointmentList(appointments []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, AppointmentListDTO{
			ID:          ap.ID,
			Reference:   ap.Reference,
			Date:        ap.AppointmentDate,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			Status:      ap.Status,
			ClientName:  strings.TrimSpace(ap.Client.FirstName + " " + ap.Client.LastName),
			ServiceName: ap.Service.Name,
			StaffName:   ap.Staff.Name,
			Price:       ap.Price,
		})
	}
	return out
}
