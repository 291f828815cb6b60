package appointment

import (
	"context"
	"time"

	domain "github.com/bookwellhq/booking-scheduler/internal/domain/appointment"
	"github.com/bookwellhq/booking-scheduler/internal/models"
)

// Mock repository for testing
type mockRepository struct {
	getBusinessByIDFunc     func(ctx context.Context, id uint) (*models.Business, error)
	getBusinessBySlugFunc   func(ctx context.Context, slug string) (*models.Business, error)
	getServiceFunc          func(ctx context.Context, businessID, serviceID uint) (*models.Service, error)
	getStaffFunc            func(ctx context.Context, businessID, staffID uint) (*models.Staff, error)
	getExceptionFunc        func(ctx context.Context, staffID uint, date string) (*models.AvailabilityException, error)
	getStaffHoursFunc       func(ctx context.Context, businessID, staffID uint, dayOfWeek int) (*models.WorkingHours, error)
	getBusinessHoursFunc    func(ctx context.Context, businessID uint, dayOfWeek int) (*models.WorkingHours, error)
	listDayAppointmentsFunc func(ctx context.Context, businessID, staffID uint, date string, excludeID uint) ([]models.Appointment, error)
	listBlockedTimesFunc    func(ctx context.Context, staffID uint, date string) ([]models.BlockedTime, error)
	findClientByEmailFunc   func(ctx context.Context, businessID uint, email string) (*models.Client, error)
	findClientByPhoneFunc   func(ctx context.Context, businessID uint, phone string) (*models.Client, error)
	createClientFunc        func(ctx context.Context, client *models.Client) error
	updateClientFunc        func(ctx context.Context, client *models.Client) error
	recordClientVisitFunc   func(ctx context.Context, clientID uint, price float64, when time.Time) error
	createAppointmentFunc   func(ctx context.Context, ap *models.Appointment) error
	getAppointmentFunc      func(ctx context.Context, businessID, appointmentID uint) (*models.Appointment, error)
	updateAppointmentFunc   func(ctx context.Context, ap *models.Appointment) error
	listForPeriodFunc       func(ctx context.Context, businessID, staffID uint, fromDate, toDate string) ([]models.Appointment, error)
	countOverlappingFunc    func(ctx context.Context, staffID uint, date, startTime, endTime string, excludeID uint) (int64, error)
	withinTransactionFunc   func(ctx context.Context, fn func(domain.Repository) error) error
}

var _ domain.Repository = (*mockRepository)(nil)

func (m *mockRepository) GetBusinessByID(ctx context.Context, id uint) (*models.Business, error) {
	if m.getBusinessByIDFunc != nil {
		return m.getBusinessByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockRepository) GetBusinessBySlug(ctx context.Context, slug string) (*models.Business, error) {
	if m.getBusinessBySlugFunc != nil {
		return m.getBusinessBySlugFunc(ctx, slug)
	}
	return nil, nil
}

func (m *mockRepository) GetService(ctx context.Context, businessID, serviceID uint) (*models.Service, error) {
	if m.getServiceFunc != nil {
		return m.getServiceFunc(ctx, businessID, serviceID)
	}
	return nil, nil
}

func (m *mockRepository) GetStaff(ctx context.Context, businessID, staffID uint) (*models.Staff, error) {
	if m.getStaffFunc != nil {
		return m.getStaffFunc(ctx, businessID, staffID)
	}
	return nil, nil
}

func (m *mockRepository) GetAvailabilityException(ctx context.Context, staffID uint, date string) (*models.AvailabilityException, error) {
	if m.getExceptionFunc != nil {
		return m.getExceptionFunc(ctx, staffID, date)
	}
	return nil, nil
}

func (m *mockRepository) GetStaffWorkingHours(ctx context.Context, businessID, staffID uint, dayOfWeek int) (*models.WorkingHours, error) {
	if m.getStaffHoursFunc != nil {
		return m.getStaffHoursFunc(ctx, businessID, staffID, dayOfWeek)
	}
	return nil, nil
}

func (m *mockRepository) GetBusinessWorkingHours(ctx context.Context, businessID uint, dayOfWeek int) (*models.WorkingHours, error) {
	if m.getBusinessHoursFunc != nil {
		return m.getBusinessHoursFunc(ctx, businessID, dayOfWeek)
	}
	return nil, nil
}

func (m *mockRepository) ListDayAppointments(ctx context.Context, businessID, staffID uint, date string, excludeID uint) ([]models.Appointment, error) {
	if m.listDayAppointmentsFunc != nil {
		return m.listDayAppointmentsFunc(ctx, businessID, staffID, date, excludeID)
	}
	return []models.Appointment{}, nil
}

func (m *mockRepository) ListBlockedTimes(ctx context.Context, staffID uint, date string) ([]models.BlockedTime, error) {
	if m.listBlockedTimesFunc != nil {
		return m.listBlockedTimesFunc(ctx, staffID, date)
	}
	return []models.BlockedTime{}, nil
}

func (m *mockRepository) FindClientByEmail(ctx context.Context, businessID uint, email string) (*models.Client, error) {
	if m.findClientByEmailFunc != nil {
		return m.findClientByEmailFunc(ctx, businessID, email)
	}
	return nil, nil
}

func (m *mockRepository) FindClientByPhone(ctx context.Context, businessID uint, phone string) (*models.Client, error) {
	if m.findClientByPhoneFunc != nil {
		return m.findClientByPhoneFunc(ctx, businessID, phone)
	}
	return nil, nil
}

func (m *mockRepository) CreateClient(ctx context.Context, client *models.Client) error {
	if m.createClientFunc != nil {
		return m.createClientFunc(ctx, client)
	}
	return nil
}

func (m *mockRepository) UpdateClient(ctx context.Context, client *models.Client) error {
	if m.updateClientFunc != nil {
		return m.updateClientFunc(ctx, client)
	}
	return nil
}

func (m *mockRepository) RecordClientVisit(ctx context.Context, clientID uint, price float64, when time.Time) error {
	if m.recordClientVisitFunc != nil {
		return m.recordClientVisitFunc(ctx, clientID, price, when)
	}
	return nil
}

func (m *mockRepository) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	if m.createAppointmentFunc != nil {
		return m.createAppointmentFunc(ctx, ap)
	}
	return nil
}

func (m *mockRepository) GetAppointment(ctx context.Context, businessID, appointmentID uint) (*models.Appointment, error) {
	if m.getAppointmentFunc != nil {
		return m.getAppointmentFunc(ctx, businessID, appointmentID)
	}
	return nil, nil
}

func (m *mockRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	if m.updateAppointmentFunc != nil {
		return m.updateAppointmentFunc(ctx, ap)
	}
	return nil
}

func (m *mockRepository) ListAppointmentsForPeriod(ctx context.Context, businessID, staffID uint, fromDate, toDate string) ([]models.Appointment, error) {
	if m.listForPeriodFunc != nil {
		return m.listForPeriodFunc(ctx, businessID, staffID, fromDate, toDate)
	}
	return []models.Appointment{}, nil
}

func (m *mockRepository) CountOverlapping(ctx context.Context, staffID uint, date, startTime, endTime string, excludeID uint) (int64, error) {
	if m.countOverlappingFunc != nil {
		return m.countOverlappingFunc(ctx, staffID, date, startTime, endTime, excludeID)
	}
	return 0, nil
}

func (m *mockRepository) WithinTransaction(ctx context.Context, fn func(domain.Repository) error) error {
	if m.withinTransactionFunc != nil {
		return m.withinTransactionFunc(ctx, fn)
	}
	return fn(m)
}
