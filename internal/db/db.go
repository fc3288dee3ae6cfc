package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/northlight-studio/studio-scheduler/internal/config"
	"github.com/northlight-studio/studio-scheduler/internal/models"
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
		&models.Studio{},
		&models.User{},
		&models.Service{},
		&models.WorkingHours{},
		&models.Client{},
		&models.Booking{},
		&models.GalleryAlbum{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// The race backstop for concurrent submissions: at most one active
	// booking per service and start time. Partial indexes are beyond
	// AutoMigrate, so raw SQL.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_booking_slot
        ON bookings (service_id, start_time)
        WHERE status IN ('pending', 'confirmed')
    `)

	db.Exec(`
        UPDATE studios
        SET timezone = 'America/Denver'
        WHERE timezone IS NULL OR timezone = ''
    `)

	return db
}
