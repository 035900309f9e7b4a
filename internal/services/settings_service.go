package services

import (
	"inviteme_backend/internal/models"
	"inviteme_backend/internal/repositories"
	"inviteme_backend/internal/services/dto"
	"inviteme_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type SettingsService interface {
	Get(db *gorm.DB) (*models.SystemSettings, error)
	Update(db *gorm.DB, req *dto.UpdateSettingsRequest) (*models.SystemSettings, error)
}

type settingsService struct {
	settingsRepo repositories.SettingsRepository
}

func NewSettingsService(settingsRepo repositories.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

func (s *settingsService) Get(db *gorm.DB) (*models.SystemSettings, error) {
	settings, err := s.settingsRepo.Get(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return settings, nil
}

func (s *settingsService) Update(db *gorm.DB, req *dto.UpdateSettingsRequest) (*models.SystemSettings, error) {
	settings, err := s.settingsRepo.Get(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if req.ScratchDesignPrice != nil {
		settings.ScratchDesignPrice = *req.ScratchDesignPrice
	}

	if err := s.settingsRepo.Update(db, settings); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return settings, nil
}
