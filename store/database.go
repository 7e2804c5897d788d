package store

import (
	"fmt"

	"gym-management-api/config"
	"gym-management-api/logger"
	"gym-management-api/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/clause"
)

// Open connects to the configured database.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s database: %w", cfg.Driver, err)
	}
	return db, nil
}

// Migrate creates or updates every table of the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Member{},
		&models.Trainer{},
		&models.Plan{},
		&models.Attendance{},
	)
}

// Seed inserts the plan catalog and the admin account. It is idempotent.
func Seed(db *gorm.DB, admin config.AdminConfig) error {
	plans := models.DefaultPlans()
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&plans).Error; err != nil {
		return fmt.Errorf("seed plans: %w", err)
	}

	email := models.NormalizeEmail(admin.Email)
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return fmt.Errorf("look up admin: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	user := models.User{
		Name:         admin.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		Verified:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	logger.GetLogger().Info("seeded admin account", "email", email, "user_id", user.ID)
	return nil
}
