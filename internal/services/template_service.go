package services

import (
	"inviteme_backend/internal/models"
	"inviteme_backend/internal/repositories"
	"inviteme_backend/internal/services/dto"
	"inviteme_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type TemplateService interface {
	Create(db *gorm.DB, req *dto.CreateTemplateRequest) (*models.Template, error)
	GetByID(db *gorm.DB, id string) (*models.Template, error)
	List(db *gorm.DB, req *dto.TemplateListRequest, activeOnly bool) (*dto.TemplateListResponse, error)
	Update(db *gorm.DB, id string, req *dto.UpdateTemplateRequest) (*models.Template, error)
	Delete(db *gorm.DB, id string) error
	SetActive(db *gorm.DB, id string, active bool) (*models.Template, error)
	GetCategoryShowcase(db *gorm.DB, slug string) (*dto.PublicCategoryTemplates, error)
}

type templateService struct {
	templateRepo repositories.TemplateRepository
	categoryRepo repositories.CategoryRepository
}

func NewTemplateService(templateRepo repositories.TemplateRepository, categoryRepo repositories.CategoryRepository) TemplateService {
	return &templateService{
		templateRepo: templateRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *templateService) Create(db *gorm.DB, req *dto.CreateTemplateRequest) (*models.Template, error) {
	if _, err := s.categoryRepo.FindByID(db, req.CategoryID); err != nil {
		if apperrors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	design := models.NewDesign()
	if req.Design != nil {
		if err := req.Design.Validate(); err != nil {
			return nil, apperrors.ValidationError(err.Error())
		}
		design = *req.Design
	}

	defaultContent := models.DefaultTemplateContent()
	if req.DefaultContent != nil {
		defaultContent = *req.DefaultContent
	}

	template := &models.Template{
		Name:               req.Name,
		Description:        req.Description,
		CategoryID:         req.CategoryID,
		PreviewImage:       req.PreviewImage,
		PreviewImages:      req.PreviewImages,
		IsPremium:          req.IsPremium,
		Price:              req.Price,
		IsActive:           true,
		Design:             design,
		CustomizableFields: req.CustomizableFields,
		DefaultContent:     defaultContent,
	}

	if !template.NormalizePricing() {
		return nil, apperrors.ErrPremiumPriceRequired
	}

	if err := s.templateRepo.Create(db, template); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return template, nil
}

func (s *templateService) GetByID(db *gorm.DB, id string) (*models.Template, error) {
	template, err := s.templateRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTemplateNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return template, nil
}

func (s *templateService) List(db *gorm.DB, req *dto.TemplateListRequest, activeOnly bool) (*dto.TemplateListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	templates, total, err := s.templateRepo.FindWithFilter(db, repositories.TemplateFilter{
		CategoryID: req.CategoryID,
		IsPremium:  req.IsPremium,
		ActiveOnly: activeOnly,
		Limit:      pageSize,
		Offset:     (page - 1) * pageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.TemplateListResponse{
		Templates: templates,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	}, nil
}

// GetCategoryShowcase - публичная витрина категории: опубликованная
// категория и ее активные шаблоны без полной спецификации дизайна.
func (s *templateService) GetCategoryShowcase(db *gorm.DB, slug string) (*dto.PublicCategoryTemplates, error) {
	category, err := s.categoryRepo.FindBySlug(db, slug)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if !category.IsPublished {
		return nil, apperrors.ErrNotFound(repositories.ErrCategoryNotFound)
	}

	templates, _, err := s.templateRepo.FindWithFilter(db, repositories.TemplateFilter{
		CategoryID: category.ID,
		ActiveOnly: true,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	views := make([]dto.PublicTemplateView, 0, len(templates))
	for i := range templates {
		views = append(views, dto.NewPublicTemplateView(&templates[i]))
	}
	return &dto.PublicCategoryTemplates{
		Category:  category,
		Templates: views,
	}, nil
}

func (s *templateService) Update(db *gorm.DB, id string, req *dto.UpdateTemplateRequest) (*models.Template, error) {
	template, err := s.GetByID(db, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		template.Name = *req.Name
	}
	if req.Description != nil {
		template.Description = *req.Description
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(db, *req.CategoryID); err != nil {
			if apperrors.Is(err, repositories.ErrCategoryNotFound) {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, apperrors.InternalError(err)
		}
		template.CategoryID = *req.CategoryID
	}
	if req.PreviewImage != nil {
		template.PreviewImage = *req.PreviewImage
	}
	if req.PreviewImages != nil {
		template.PreviewImages = req.PreviewImages
	}
	if req.IsPremium != nil {
		template.IsPremium = *req.IsPremium
	}
	if req.Price != nil {
		template.Price = *req.Price
	}
	if req.IsActive != nil {
		template.IsActive = *req.IsActive
	}
	if req.Design != nil {
		if err := req.Design.Validate(); err != nil {
			return nil, apperrors.ValidationError(err.Error())
		}
		template.Design = *req.Design
	}
	if req.CustomizableFields != nil {
		template.CustomizableFields = req.CustomizableFields
	}
	if req.DefaultContent != nil {
		template.DefaultContent = *req.DefaultContent
	}

	// Связка premium/цена проверяется после применения всех полей
	if !template.NormalizePricing() {
		return nil, apperrors.ErrPremiumPriceRequired
	}

	if err := s.templateRepo.Update(db, template); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return template, nil
}

// Delete удаляет шаблон, если он не используется приглашениями;
// иначе предлагается деактивация.
func (s *templateService) Delete(db *gorm.DB, id string) error {
	template, err := s.GetByID(db, id)
	if err != nil {
		return err
	}

	count, err := s.templateRepo.CountInvitations(db, template.ID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if count > 0 {
		return apperrors.ErrTemplateInUse
	}

	if err := s.templateRepo.Delete(db, template.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *templateService) SetActive(db *gorm.DB, id string, active bool) (*models.Template, error) {
	template, err := s.GetByID(db, id)
	if err != nil {
		return nil, err
	}

	template.IsActive = active
	if err := s.templateRepo.Update(db, template); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return template, nil
}
