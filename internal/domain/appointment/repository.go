package appointment

import (
	"context"
	"time"

	"github.com/bookwellhq/booking-scheduler/internal/models"
)

// Repository is the persistence port for the booking core. Lookups
// return (nil, nil) when no row exists: for this domain "no data" means
// closed/unavailable, never an error.
type Repository interface {
	// -------- Business --------
	GetBusinessByID(
		ctx context.Context,
		id uint,
	) (*models.Business, error)

	GetBusinessBySlug(
		ctx context.Context,
		slug string,
	) (*models.Business, error)

	// -------- Service / Staff --------
	GetService(
		ctx context.Context,
		businessID uint,
		serviceID uint,
	) (*models.Service, error)

	GetStaff(
		ctx context.Context,
		businessID uint,
		staffID uint,
	) (*models.Staff, error)

	// -------- Schedule configuration --------
	GetAvailabilityException(
		ctx context.Context,
		staffID uint,
		date string,
	) (*models.AvailabilityException, error)

	GetStaffWorkingHours(
		ctx context.Context,
		businessID uint,
		staffID uint,
		dayOfWeek int,
	) (*models.WorkingHours, error)

	GetBusinessWorkingHours(
		ctx context.Context,
		businessID uint,
		dayOfWeek int,
	) (*models.WorkingHours, error)

	// -------- Day snapshot --------
	ListDayAppointments(
		ctx context.Context,
		businessID uint,
		staffID uint,
		date string,
		excludeAppointmentID uint,
	) ([]models.Appointment, error)

	ListBlockedTimes(
		ctx context.Context,
		staffID uint,
		date string,
	) ([]models.BlockedTime, error)

	// -------- Client identity --------
	FindClientByEmail(
		ctx context.Context,
		businessID uint,
		email string,
	) (*models.Client, error)

	FindClientByPhone(
		ctx context.Context,
		businessID uint,
		phone string,
	) (*models.Client, error)

	CreateClient(
		ctx context.Context,
		client *models.Client,
	) error

	UpdateClient(
		ctx context.Context,
		client *models.Client,
	) error

	RecordClientVisit(
		ctx context.Context,
		clientID uint,
		price float64,
		when time.Time,
	) error

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		businessID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForPeriod(
		ctx context.Context,
		businessID uint,
		staffID uint,
		fromDate string,
		toDate string,
	) ([]models.Appointment, error)

	// CountOverlapping scans conflicting appointments for one candidate
	// interval. Inside WithinTransaction the scan locks the matched rows
	// so concurrent bookings for the same staff/date serialize.
	CountOverlapping(
		ctx context.Context,
		staffID uint,
		date string,
		startTime string,
		endTime string,
		excludeAppointmentID uint,
	) (int64, error)

	// WithinTransaction runs fn against a repository bound to one
	// database transaction; fn returning an error rolls everything back.
	WithinTransaction(
		ctx context.Context,
		fn func(Repository) error,
	) error
}
