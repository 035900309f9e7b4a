package repositories

import (
	"errors"
	"time"

	"inviteme_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrSlugTaken          = errors.New("slug already taken")
)

type InvitationRepository interface {
	Create(db *gorm.DB, invitation *models.Invitation) error
	FindByID(db *gorm.DB, id string) (*models.Invitation, error)
	FindBySlug(db *gorm.DB, slug string) (*models.Invitation, error)
	FindByUser(db *gorm.DB, userID string, limit, offset int) ([]models.Invitation, int64, error)
	Update(db *gorm.DB, invitation *models.Invitation) error
	Delete(db *gorm.DB, id string) error

	SlugExists(db *gorm.DB, slug string, excludeID string) (bool, error)
	IncrementViews(db *gorm.DB, id string) error
	IncrementRSVPCount(db *gorm.DB, id string) error

	// Expiry sweep
	FindExpired(db *gorm.DB, now time.Time, limit int) ([]models.Invitation, error)
	MarkExpired(db *gorm.DB, ids []string) (int64, error)
	DeleteExpiredAutoDelete(db *gorm.DB, olderThan time.Time) (int64, error)

	// Admin
	CountAll(db *gorm.DB) (int64, error)
	CountByStatus(db *gorm.DB, status models.InvitationStatus) (int64, error)
}

type InvitationRepositoryImpl struct{}

func NewInvitationRepository() InvitationRepository {
	return &InvitationRepositoryImpl{}
}

func (r *InvitationRepositoryImpl) Create(db *gorm.DB, invitation *models.Invitation) error {
	return db.Create(invitation).Error
}

func (r *InvitationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Invitation, error) {
	var invitation models.Invitation
	err := db.Preload("Template").First(&invitation, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}
	return &invitation, nil
}

func (r *InvitationRepositoryImpl) FindBySlug(db *gorm.DB, slug string) (*models.Invitation, error) {
	var invitation models.Invitation
	err := db.Preload("Template").Where("slug = ?", slug).First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}
	return &invitation, nil
}

func (r *InvitationRepositoryImpl) FindByUser(db *gorm.DB, userID string, limit, offset int) ([]models.Invitation, int64, error) {
	query := db.Model(&models.Invitation{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invitations []models.Invitation
	err := query.Preload("Template").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&invitations).Error
	return invitations, total, err
}

func (r *InvitationRepositoryImpl) Update(db *gorm.DB, invitation *models.Invitation) error {
	return db.Save(invitation).Error
}

func (r *InvitationRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Invitation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvitationNotFound
	}
	return nil
}

// SlugExists — предварительная проверка для внятной ошибки; гонку
// закрывает уникальный индекс slug.
func (r *InvitationRepositoryImpl) SlugExists(db *gorm.DB, slug string, excludeID string) (bool, error) {
	query := db.Model(&models.Invitation{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *InvitationRepositoryImpl) IncrementViews(db *gorm.DB, id string) error {
	return db.Model(&models.Invitation{}).Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}

func (r *InvitationRepositoryImpl) IncrementRSVPCount(db *gorm.DB, id string) error {
	return db.Model(&models.Invitation{}).Where("id = ?", id).
		Update("rsvp_count", gorm.Expr("rsvp_count + 1")).Error
}

func (r *InvitationRepositoryImpl) FindExpired(db *gorm.DB, now time.Time, limit int) ([]models.Invitation, error) {
	var invitations []models.Invitation
	err := db.Where("expires_at IS NOT NULL AND expires_at < ? AND status <> ?", now, models.InvitationStatusExpired).
		Limit(limit).
		Find(&invitations).Error
	return invitations, err
}

func (r *InvitationRepositoryImpl) MarkExpired(db *gorm.DB, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := db.Model(&models.Invitation{}).Where("id IN ?", ids).
		Update("status", models.InvitationStatusExpired)
	return result.RowsAffected, result.Error
}

// DeleteExpiredAutoDelete удаляет приглашения с auto_delete, просроченные
// дольше чем olderThan (зависимые RSVP снимает каскад на стороне БД).
func (r *InvitationRepositoryImpl) DeleteExpiredAutoDelete(db *gorm.DB, olderThan time.Time) (int64, error) {
	result := db.Where("auto_delete = ? AND expires_at IS NOT NULL AND expires_at < ?", true, olderThan).
		Delete(&models.Invitation{})
	return result.RowsAffected, result.Error
}

func (r *InvitationRepositoryImpl) CountAll(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Invitation{}).Count(&count).Error
	return count, err
}

func (r *InvitationRepositoryImpl) CountByStatus(db *gorm.DB, status models.InvitationStatus) (int64, error) {
	var count int64
	err := db.Model(&models.Invitation{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
