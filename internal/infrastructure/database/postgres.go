package database

import (
	"fmt"
	"log"

	"github.com/labomak/dashboard/internal/config"
	"github.com/labomak/dashboard/internal/domain/entity"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB opens the hosted Postgres backend.
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate creates the dashboard tables when they do not exist yet. The
// hosted schema is authoritative, so this only runs with DB_AUTO_MIGRATE=true.
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.Customer{},
		&entity.Product{},
		&entity.Offer{},
		&entity.User{},

		&entity.Activity{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedAdmin creates the admin kullanici from ADMIN_USERNAME / ADMIN_PASSWORD
// when both are set and the user does not exist.
func SeedAdmin(db *gorm.DB) error {
	username := viper.GetString("ADMIN_USERNAME")
	password := viper.GetString("ADMIN_PASSWORD")
	if username == "" || password == "" {
		return nil
	}

	var existing entity.User
	err := db.Where("kullanici_adi = ?", username).Limit(1).Find(&existing).Error
	if err != nil {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}
	if existing.ID != 0 {
		log.Printf("Admin user already exists: %s", username)
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := entity.User{
		Username:     username,
		Email:        viper.GetString("ADMIN_EMAIL"),
		PasswordHash: string(hashed),
		Role:         "admin",
		Active:       true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Printf("Admin user created: %s", username)
	return nil
}
