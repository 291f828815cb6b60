package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/bookwellhq/booking-scheduler/internal/config"
	"github.com/bookwellhq/booking-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Business{},
		&models.User{},
		&models.Staff{},
		&models.Service{},
		&models.WorkingHours{},
		&models.AvailabilityException{},
		&models.BlockedTime{},
		&models.Client{},
		&models.Appointment{},
		&models.Notification{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Backstop for the booking race: even if two transactions slip past
	// the FOR UPDATE scan, the second overlapping insert fails with
	// SQLSTATE 23P01, which the booking path maps to a conflict.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        DO $$
        BEGIN
            IF NOT EXISTS (
                SELECT 1 FROM pg_constraint WHERE conname = 'appointments_no_overlap'
            ) THEN
                ALTER TABLE appointments
                ADD CONSTRAINT appointments_no_overlap
                EXCLUDE USING gist (
                    staff_id WITH =,
                    appointment_date WITH =,
                    int4range(
                        substring(start_time from 1 for 2)::int * 60 + substring(start_time from 4 for 2)::int,
                        substring(end_time from 1 for 2)::int * 60 + substring(end_time from 4 for 2)::int
                    ) WITH &&
                )
                WHERE (status IN ('pending', 'confirmed', 'completed'));
            END IF;
        END $$;
    `)

	db.Exec(`
        UPDATE businesses
        SET timezone = 'UTC'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return db
}
