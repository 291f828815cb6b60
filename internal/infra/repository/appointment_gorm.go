package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/bookwellhq/booking-scheduler/internal/domain/appointment"
	"github.com/bookwellhq/booking-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// firstOrNil maps gorm's not-found to (nil, nil): absence of data is a
// domain answer here, not an error.
func firstOrNil[T any](q *gorm.DB, dest *T) (*T, error) {
	if err := q.First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return dest, nil
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBusinessByID(
	ctx context.Context,
	id uint,
) (*models.Business, error) {

	var business models.Business
	return firstOrNil(r.db.WithContext(ctx).Where("id = ?", id), &business)
}

func (r *AppointmentGormRepository) GetBusinessBySlug(
	ctx context.Context,
	slug string,
) (*models.Business, error) {

	var business models.Business
	return firstOrNil(
		r.db.WithContext(ctx).Where("slug = ? AND status = 'active'", slug),
		&business,
	)
}

// --------------------------------------------------
// Service / Staff
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	businessID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	return firstOrNil(
		r.db.WithContext(ctx).Where("id = ? AND business_id = ?", serviceID, businessID),
		&service,
	)
}

func (r *AppointmentGormRepository) GetStaff(
	ctx context.Context,
	businessID uint,
	staffID uint,
) (*models.Staff, error) {

	var staff models.Staff
	return firstOrNil(
		r.db.WithContext(ctx).Where("id = ? AND business_id = ?", staffID, businessID),
		&staff,
	)
}

// --------------------------------------------------
// Schedule configuration
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAvailabilityException(
	ctx context.Context,
	staffID uint,
	date string,
) (*models.AvailabilityException, error) {

	var exc models.AvailabilityException
	return firstOrNil(
		r.db.WithContext(ctx).
			Where("staff_id = ? AND exception_date = ?", staffID, date),
		&exc,
	)
}

func (r *AppointmentGormRepository) GetStaffWorkingHours(
	ctx context.Context,
	businessID uint,
	staffID uint,
	dayOfWeek int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	return firstOrNil(
		r.db.WithContext(ctx).
			Where(
				"business_id = ? AND staff_id = ? AND day_of_week = ?",
				businessID, staffID, dayOfWeek,
			),
		&wh,
	)
}

func (r *AppointmentGormRepository) GetBusinessWorkingHours(
	ctx context.Context,
	businessID uint,
	dayOfWeek int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	return firstOrNil(
		r.db.WithContext(ctx).
			Where(
				"business_id = ? AND staff_id IS NULL AND day_of_week = ?",
				businessID, dayOfWeek,
			),
		&wh,
	)
}

// --------------------------------------------------
// Day snapshot
// --------------------------------------------------

func (r *AppointmentGormRepository) ListDayAppointments(
	ctx context.Context,
	businessID uint,
	staffID uint,
	date string,
	excludeAppointmentID uint,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time").
		Where(
			"business_id = ? AND staff_id = ? AND appointment_date = ? AND status IN ?",
			businessID, staffID, date, domain.ConflictStatuses(),
		)

	if excludeAppointmentID != 0 {
		q = q.Where("id <> ?", excludeAppointmentID)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListBlockedTimes(
	ctx context.Context,
	staffID uint,
	date string,
) ([]models.BlockedTime, error) {

	var blocked []models.BlockedTime
	if err := r.db.WithContext(ctx).
		Where("staff_id = ? AND blocked_date = ?", staffID, date).
		Order("start_time ASC").
		Find(&blocked).Error; err != nil {
		return nil, err
	}

	return blocked, nil
}

// --------------------------------------------------
// Client identity
// --------------------------------------------------

func (r *AppointmentGormRepository) FindClientByEmail(
	ctx context.Context,
	businessID uint,
	email string,
) (*models.Client, error) {

	var client models.Client
	return firstOrNil(
		r.db.WithContext(ctx).Where("business_id = ? AND email = ?", businessID, email),
		&client,
	)
}

func (r *AppointmentGormRepository) FindClientByPhone(
	ctx context.Context,
	businessID uint,
	phone string,
) (*models.Client, error) {

	var client models.Client
	return firstOrNil(
		r.db.WithContext(ctx).Where("business_id = ? AND phone = ?", businessID, phone),
		&client,
	)
}

func (r *AppointmentGormRepository) CreateClient(
	ctx context.Context,
	client *models.Client,
) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *AppointmentGormRepository) UpdateClient(
	ctx context.Context,
	client *models.Client,
) error {
	return r.db.WithContext(ctx).Save(client).Error
}

func (r *AppointmentGormRepository) RecordClientVisit(
	ctx context.Context,
	clientID uint,
	price float64,
	when time.Time,
) error {

	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", clientID).
		Updates(map[string]any{
			"total_visits": gorm.Expr("total_visits + 1"),
			"total_spent":  gorm.Expr("total_spent + ?", price),
			"last_visit":   when,
		}).Error
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	businessID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	return firstOrNil(
		r.db.WithContext(ctx).
			Where("id = ? AND business_id = ?", appointmentID, businessID),
		&ap,
	)
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	businessID uint,
	staffID uint,
	fromDate string,
	toDate string,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Staff").
		Preload("Service").
		Where(
			"business_id = ? AND appointment_date >= ? AND appointment_date <= ?",
			businessID, fromDate, toDate,
		)

	if staffID != 0 {
		q = q.Where("staff_id = ?", staffID)
	}

	var apps []models.Appointment
	if err := q.
		Order("appointment_date ASC, start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// CountOverlapping locks the matched rows (FOR UPDATE) so that inside
// WithinTransaction two concurrent bookings for the same staff/date
// serialize on the conflict scan. Time strings are fixed-width
// HH:MM:SS, so lexicographic comparison is chronological.
func (r *AppointmentGormRepository) CountOverlapping(
	ctx context.Context,
	staffID uint,
	date string,
	startTime string,
	endTime string,
	excludeAppointmentID uint,
) (int64, error) {

	q := r.db.WithContext(ctx).
		Select("id").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"staff_id = ? AND appointment_date = ? AND status IN ? AND start_time < ? AND end_time > ?",
			staffID, date, domain.ConflictStatuses(), endTime, startTime,
		)

	if excludeAppointmentID != 0 {
		q = q.Where("id <> ?", excludeAppointmentID)
	}

	var conflicts []models.Appointment
	if err := q.Find(&conflicts).Error; err != nil {
		return 0, err
	}

	return int64(len(conflicts)), nil
}

// --------------------------------------------------
// Transaction boundary
// --------------------------------------------------

func (r *AppointmentGormRepository) WithinTransaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
