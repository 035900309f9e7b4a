package repositories

import (
	"errors"

	"inviteme_backend/internal/models"

	"gorm.io/gorm"
)

var ErrTemplateNotFound = errors.New("template not found")

// TemplateFilter — параметры выборки витрины шаблонов.
type TemplateFilter struct {
	CategoryID string
	IsPremium  *bool
	ActiveOnly bool
	Limit      int
	Offset     int
}

type TemplateRepository interface {
	Create(db *gorm.DB, template *models.Template) error
	FindByID(db *gorm.DB, id string) (*models.Template, error)
	Update(db *gorm.DB, template *models.Template) error
	Delete(db *gorm.DB, id string) error

	FindWithFilter(db *gorm.DB, filter TemplateFilter) ([]models.Template, int64, error)
	IncrementUsage(db *gorm.DB, id string) error
	CountInvitations(db *gorm.DB, templateID string) (int64, error)
}

type TemplateRepositoryImpl struct{}

func NewTemplateRepository() TemplateRepository {
	return &TemplateRepositoryImpl{}
}

func (r *TemplateRepositoryImpl) Create(db *gorm.DB, template *models.Template) error {
	return db.Create(template).Error
}

func (r *TemplateRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Template, error) {
	var template models.Template
	err := db.Preload("Category").First(&template, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &template, nil
}

func (r *TemplateRepositoryImpl) Update(db *gorm.DB, template *models.Template) error {
	return db.Save(template).Error
}

func (r *TemplateRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Template{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func (r *TemplateRepositoryImpl) FindWithFilter(db *gorm.DB, filter TemplateFilter) ([]models.Template, int64, error) {
	query := db.Model(&models.Template{})

	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.IsPremium != nil {
		query = query.Where("is_premium = ?", *filter.IsPremium)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Preload("Category").Order("usage_count DESC, created_at DESC")
	// Limit <= 0 означает выборку без пагинации
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	var templates []models.Template
	err := query.Find(&templates).Error
	return templates, total, err
}

// IncrementUsage — атомарный инкремент счетчика на стороне БД,
// без read-modify-write.
func (r *TemplateRepositoryImpl) IncrementUsage(db *gorm.DB, id string) error {
	result := db.Model(&models.Template{}).Where("id = ?", id).
		Update("usage_count", gorm.Expr("usage_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

// CountInvitations считает только оплаченные приглашения: неоплаченный
// черновик не должен блокировать удаление шаблона.
func (r *TemplateRepositoryImpl) CountInvitations(db *gorm.DB, templateID string) (int64, error) {
	var count int64
	err := db.Model(&models.Invitation{}).
		Where("template_id = ? AND is_paid = ?", templateID, true).
		Count(&count).Error
	return count, err
}
