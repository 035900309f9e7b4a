package repositories

import (
	"errors"

	"inviteme_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category with this name already exists")
)

type CategoryRepository interface {
	Create(db *gorm.DB, category *models.Category) error
	FindByID(db *gorm.DB, id string) (*models.Category, error)
	FindBySlug(db *gorm.DB, slug string) (*models.Category, error)
	FindByName(db *gorm.DB, name string) (*models.Category, error)
	Update(db *gorm.DB, category *models.Category) error
	Delete(db *gorm.DB, id string) error

	FindAll(db *gorm.DB) ([]models.Category, error)
	FindPublished(db *gorm.DB) ([]models.Category, error)
	CountTemplates(db *gorm.DB, categoryID string) (int64, error)
	CountActiveTemplates(db *gorm.DB, categoryID string) (int64, error)
}

type CategoryRepositoryImpl struct{}

func NewCategoryRepository() CategoryRepository {
	return &CategoryRepositoryImpl{}
}

func (r *CategoryRepositoryImpl) Create(db *gorm.DB, category *models.Category) error {
	var existing models.Category
	if err := db.Where("name = ? OR slug = ?", category.Name, category.Slug).First(&existing).Error; err == nil {
		return ErrCategoryAlreadyExists
	}
	return db.Create(category).Error
}

func (r *CategoryRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Category, error) {
	var category models.Category
	err := db.First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepositoryImpl) FindBySlug(db *gorm.DB, slug string) (*models.Category, error) {
	var category models.Category
	err := db.Where("slug = ?", slug).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepositoryImpl) FindByName(db *gorm.DB, name string) (*models.Category, error) {
	var category models.Category
	err := db.Where("name = ?", name).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepositoryImpl) Update(db *gorm.DB, category *models.Category) error {
	return db.Save(category).Error
}

func (r *CategoryRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepositoryImpl) FindAll(db *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	err := db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepositoryImpl) FindPublished(db *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	err := db.Where("is_published = ?", true).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepositoryImpl) CountTemplates(db *gorm.DB, categoryID string) (int64, error) {
	var count int64
	err := db.Model(&models.Template{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

func (r *CategoryRepositoryImpl) CountActiveTemplates(db *gorm.DB, categoryID string) (int64, error) {
	var count int64
	err := db.Model(&models.Template{}).
		Where("category_id = ? AND is_active = ?", categoryID, true).
		Count(&count).Error
	return count, err
}
