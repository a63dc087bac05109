package config

import (
	"log/slog"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Burgess-GLAY/psdahs-alumni-sub003/models"
)

var DB *gorm.DB

// ConnectDB opens the Postgres connection from DB_URL. The application
// cannot run without a database, so failure here is fatal.
func ConnectDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		slog.Error("DB_URL environment variable is not set")
		os.Exit(1)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	DB = db
	slog.Info("Database connection established")
}

// MigrateDB runs AutoMigrate over every model.
func MigrateDB() error {
	return DB.AutoMigrate(
		&models.User{},
		&models.Alumnus{},
		&models.ClassGroup{},
		&models.ClassGroupMember{},
		&models.Event{},
		&models.EventRSVP{},
		&models.Announcement{},
		&models.Donation{},
	)
}
