package services

import (
	"fmt"

	"inviteme_backend/internal/models"
	"inviteme_backend/internal/repositories"
	"inviteme_backend/internal/services/dto"
	"inviteme_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type CategoryService interface {
	Create(db *gorm.DB, req *dto.CreateCategoryRequest) (*models.Category, error)
	GetByID(db *gorm.DB, id string) (*models.Category, error)
	GetAll(db *gorm.DB) ([]dto.CategoryResponse, error)
	GetPublished(db *gorm.DB) ([]models.Category, error)
	Update(db *gorm.DB, id string, req *dto.UpdateCategoryRequest) (*models.Category, error)
	Delete(db *gorm.DB, id string) error
	Publish(db *gorm.DB, id string) (*models.Category, error)
	Unpublish(db *gorm.DB, id string) (*models.Category, error)
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
}

func NewCategoryService(categoryRepo repositories.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(db *gorm.DB, req *dto.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		Name:        req.Name,
		Slug:        models.CategorySlug(req.Name),
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
	}

	if err := s.categoryRepo.Create(db, category); err != nil {
		if apperrors.Is(err, repositories.ErrCategoryAlreadyExists) {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return category, nil
}

func (s *categoryService) GetByID(db *gorm.DB, id string) (*models.Category, error) {
	category, err := s.categoryRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return category, nil
}

func (s *categoryService) GetAll(db *gorm.DB) ([]dto.CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		count, err := s.categoryRepo.CountTemplates(db, categories[i].ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		out = append(out, dto.CategoryResponse{Category: categories[i], TemplateCount: count})
	}
	return out, nil
}

// GetPublished - витрина: только опубликованные категории.
func (s *categoryService) GetPublished(db *gorm.DB) ([]models.Category, error) {
	categories, err := s.categoryRepo.FindPublished(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return categories, nil
}

func (s *categoryService) Update(db *gorm.DB, id string, req *dto.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.GetByID(db, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != category.Name {
		// Slug следует за именем; коллизии имени и slug'а проверяются
		// до записи, уникальные индексы остаются страховкой
		newSlug := models.CategorySlug(*req.Name)
		if other, err := s.categoryRepo.FindByName(db, *req.Name); err == nil && other.ID != category.ID {
			return nil, apperrors.ErrConflict(repositories.ErrCategoryAlreadyExists, "category", "Category with this name already exists")
		}
		if other, err := s.categoryRepo.FindBySlug(db, newSlug); err == nil && other.ID != category.ID {
			return nil, apperrors.ErrConflict(repositories.ErrCategoryAlreadyExists, "category", "Category with this slug already exists")
		}
		category.Name = *req.Name
		category.Slug = newSlug
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Thumbnail != nil {
		category.Thumbnail = *req.Thumbnail
	}

	if err := s.categoryRepo.Update(db, category); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return category, nil
}

func (s *categoryService) Delete(db *gorm.DB, id string) error {
	category, err := s.GetByID(db, id)
	if err != nil {
		return err
	}

	count, err := s.categoryRepo.CountTemplates(db, category.ID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if count > 0 {
		return apperrors.ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(db, category.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *categoryService) Publish(db *gorm.DB, id string) (*models.Category, error) {
	category, err := s.GetByID(db, id)
	if err != nil {
		return nil, err
	}

	activeCount, err := s.categoryRepo.CountActiveTemplates(db, category.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !models.CanPublishCategory(activeCount) {
		return nil, apperrors.ErrInvalidOperation("category",
			fmt.Sprintf("Cannot publish category. Requires at least %d active templates. Currently has %d.",
				models.MinActiveTemplatesToPublish, activeCount))
	}

	category.IsPublished = true
	if err := s.categoryRepo.Update(db, category); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return category, nil
}

// Unpublish снимает категорию с витрины. Гейт трех шаблонов здесь не
// действует: снятие допустимо всегда.
func (s *categoryService) Unpublish(db *gorm.DB, id string) (*models.Category, error) {
	category, err := s.GetByID(db, id)
	if err != nil {
		return nil, err
	}

	category.IsPublished = false
	if err := s.categoryRepo.Update(db, category); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return category, nil
}
