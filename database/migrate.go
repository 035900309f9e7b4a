package database

import (
	"errors"
	"fmt"

	"inviteme_backend/internal/auth"
	"inviteme_backend/internal/config"
	"inviteme_backend/internal/logger"
	"inviteme_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var gormDB *gorm.DB

// ConnectGorm инициализирует GORM с DSN из конфигурации
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate выполняет миграцию всех моделей
func AutoMigrate() error {
	db, err := ConnectGorm()
	if err != nil {
		return err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Template{},
		&models.Invitation{},
		&models.Payment{},
		&models.RSVP{},
		&models.SystemSettings{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}

	logger.Info("AutoMigrate completed")
	return nil
}

// SeedSettings гарантирует единственную строку системных настроек.
// Сервисы читают ее без find-or-create на каждый запрос.
func SeedSettings(db *gorm.DB) error {
	var settings models.SystemSettings
	err := db.First(&settings).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if _, err := createDefaultSettings(db); err != nil {
		return err
	}
	return nil
}

// createDefaultSettings вставляет строку настроек по умолчанию
func createDefaultSettings(db *gorm.DB) (*models.SystemSettings, error) {
	defaults := models.DefaultSystemSettings()
	if err := db.Create(&defaults).Error; err != nil {
		return nil, fmt.Errorf("seed settings failed: %w", err)
	}

	logger.Info("Seeded system settings", "scratchDesignPrice", defaults.ScratchDesignPrice)
	return &defaults, nil
}

// SeedFirstAdmin создает первого админа из конфигурации, если админов
// еще нет. Пустые креды в конфиге пропускают посев.
func SeedFirstAdmin(db *gorm.DB) error {
	cfg := config.GetConfig()
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		logger.Warn("Admin credentials not configured, skipping admin seed")
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.UserRoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("hash admin password failed: %w", err)
	}

	name := cfg.Admin.Name
	if name == "" {
		name = "Admin"
	}

	admin := &models.User{
		Name:         name,
		Email:        cfg.Admin.Email,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("seed admin failed: %w", err)
	}

	logger.Info("Seeded first admin user", "email", cfg.Admin.Email)
	return nil
}
