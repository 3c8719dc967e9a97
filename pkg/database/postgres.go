package database

import (
	"log"

	"github.com/confstay/booking-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Enrollment{},
		&models.TicketType{},
		&models.Ticket{},
		&models.Hotel{},
		&models.Room{},
		&models.Booking{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Schema-level guard for the one-booking-per-user invariant. The
	// capacity check itself is not transactional, so this is the only
	// constraint the database enforces.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_booking_user
		ON bookings (user_id)
	`)

	return db
}
