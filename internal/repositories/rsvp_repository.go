package repositories

import (
	"errors"

	"inviteme_backend/internal/models"

	"gorm.io/gorm"
)

var ErrRSVPNotFound = errors.New("rsvp not found")

// RSVPStats — агрегаты по ответам одного приглашения.
type RSVPStats struct {
	Total        int64 `json:"total"`
	Attending    int64 `json:"attending"`
	NotAttending int64 `json:"notAttending"`
	Maybe        int64 `json:"maybe"`
	TotalGuests  int64 `json:"totalGuests"` // сумма numberOfGuests по attending
}

type RSVPRepository interface {
	Create(db *gorm.DB, rsvp *models.RSVP) error
	FindByID(db *gorm.DB, id string) (*models.RSVP, error)
	FindByInvitationAndEmail(db *gorm.DB, invitationID, email string) (*models.RSVP, error)
	FindByInvitation(db *gorm.DB, invitationID string) ([]models.RSVP, error)
	Update(db *gorm.DB, rsvp *models.RSVP) error
	Delete(db *gorm.DB, id string) error

	GetStats(db *gorm.DB, invitationID string) (*RSVPStats, error)
}

type RSVPRepositoryImpl struct{}

func NewRSVPRepository() RSVPRepository {
	return &RSVPRepositoryImpl{}
}

func (r *RSVPRepositoryImpl) Create(db *gorm.DB, rsvp *models.RSVP) error {
	return db.Create(rsvp).Error
}

func (r *RSVPRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.RSVP, error) {
	var rsvp models.RSVP
	err := db.First(&rsvp, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRSVPNotFound
		}
		return nil, err
	}
	return &rsvp, nil
}

func (r *RSVPRepositoryImpl) FindByInvitationAndEmail(db *gorm.DB, invitationID, email string) (*models.RSVP, error) {
	var rsvp models.RSVP
	err := db.Where("invitation_id = ? AND email = ?", invitationID, email).First(&rsvp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRSVPNotFound
		}
		return nil, err
	}
	return &rsvp, nil
}

func (r *RSVPRepositoryImpl) FindByInvitation(db *gorm.DB, invitationID string) ([]models.RSVP, error) {
	var rsvps []models.RSVP
	// Свежие ответы сверху - и в списке, и в CSV-экспорте
	err := db.Where("invitation_id = ?", invitationID).
		Order("created_at DESC").
		Find(&rsvps).Error
	return rsvps, err
}

func (r *RSVPRepositoryImpl) Update(db *gorm.DB, rsvp *models.RSVP) error {
	return db.Save(rsvp).Error
}

func (r *RSVPRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.RSVP{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRSVPNotFound
	}
	return nil
}

func (r *RSVPRepositoryImpl) GetStats(db *gorm.DB, invitationID string) (*RSVPStats, error) {
	stats := &RSVPStats{}

	base := db.Model(&models.RSVP{}).Where("invitation_id = ?", invitationID)
	if err := base.Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	counts := []struct {
		response models.RSVPResponse
		dest     *int64
	}{
		{models.RSVPResponseAttending, &stats.Attending},
		{models.RSVPResponseNotAttending, &stats.NotAttending},
		{models.RSVPResponseMaybe, &stats.Maybe},
	}
	for _, c := range counts {
		err := db.Model(&models.RSVP{}).
			Where("invitation_id = ? AND response = ?", invitationID, c.response).
			Count(c.dest).Error
		if err != nil {
			return nil, err
		}
	}

	err := db.Model(&models.RSVP{}).
		Where("invitation_id = ? AND response = ?", invitationID, models.RSVPResponseAttending).
		Select("COALESCE(SUM(number_of_guests), 0)").
		Scan(&stats.TotalGuests).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
