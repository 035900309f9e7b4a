package repositories

import (
	"errors"

	"inviteme_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSettingsNotSeeded = errors.New("system settings row is missing")

// SettingsRepository работает с единственной строкой system_settings.
// Строка создается при старте (database.SeedSettings); отсутствие строки —
// ошибка развертывания, а не повод для find-or-create в рантайме.
type SettingsRepository interface {
	Get(db *gorm.DB) (*models.SystemSettings, error)
	Update(db *gorm.DB, settings *models.SystemSettings) error
}

type SettingsRepositoryImpl struct{}

func NewSettingsRepository() SettingsRepository {
	return &SettingsRepositoryImpl{}
}

func (r *SettingsRepositoryImpl) Get(db *gorm.DB) (*models.SystemSettings, error) {
	var settings models.SystemSettings
	err := db.First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotSeeded
		}
		return nil, err
	}
	return &settings, nil
}

func (r *SettingsRepositoryImpl) Update(db *gorm.DB, settings *models.SystemSettings) error {
	return db.Save(settings).Error
}
