package dto

import (
	"inviteme_backend/internal/models"

	"gorm.io/datatypes"
)

// CreateTemplateRequest - создание шаблона (админ)
type CreateTemplateRequest struct {
	Name               string         `json:"name" binding:"required,min=2,max=150"`
	Description        string         `json:"description" binding:"max=1000"`
	CategoryID         string         `json:"categoryId" binding:"required,uuid"`
	PreviewImage       string         `json:"previewImage" binding:"required,url"`
	PreviewImages      []string       `json:"previewImages" binding:"omitempty,dive,url"`
	IsPremium          bool           `json:"isPremium"`
	Price              float64        `json:"price" binding:"gte=0"`
	Design             *models.Design `json:"design"`
	CustomizableFields []string       `json:"customizableFields"`
	DefaultContent     *models.DefaultContent `json:"defaultContent"`
}

// UpdateTemplateRequest - частичное обновление шаблона
type UpdateTemplateRequest struct {
	Name               *string        `json:"name" binding:"omitempty,min=2,max=150"`
	Description        *string        `json:"description" binding:"omitempty,max=1000"`
	CategoryID         *string        `json:"categoryId" binding:"omitempty,uuid"`
	PreviewImage       *string        `json:"previewImage" binding:"omitempty,url"`
	PreviewImages      []string       `json:"previewImages" binding:"omitempty,dive,url"`
	IsPremium          *bool          `json:"isPremium"`
	Price              *float64       `json:"price" binding:"omitempty,gte=0"`
	IsActive           *bool          `json:"isActive"`
	Design             *models.Design `json:"design"`
	CustomizableFields []string       `json:"customizableFields"`
	DefaultContent     *models.DefaultContent `json:"defaultContent"`
}

// TemplateListRequest - фильтры витрины шаблонов
type TemplateListRequest struct {
	CategoryID string `form:"categoryId" binding:"omitempty,uuid"`
	IsPremium  *bool  `form:"isPremium"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// TemplateListResponse - страница шаблонов
type TemplateListResponse struct {
	Templates []models.Template `json:"templates"`
	Total     int64             `json:"total"`
	Page      int               `json:"page"`
	PageSize  int               `json:"pageSize"`
}

// PublicTemplateView - урезанное представление шаблона для витрины:
// без дизайна, чтобы не отдавать полную спецификацию до выбора.
type PublicTemplateView struct {
	ID            string                      `json:"id"`
	Name          string                      `json:"name"`
	Description   string                      `json:"description,omitempty"`
	PreviewImage  string                      `json:"previewImage"`
	PreviewImages datatypes.JSONSlice[string] `json:"previewImages,omitempty"`
	IsPremium     bool                        `json:"isPremium"`
	Price         float64                     `json:"price"`
	CategoryID    string                      `json:"categoryId"`
	UsageCount    int64                       `json:"usageCount"`
}

// NewPublicTemplateView строит витринное представление из модели
func NewPublicTemplateView(t *models.Template) PublicTemplateView {
	return PublicTemplateView{
		ID:            t.ID,
		Name:          t.Name,
		Description:   t.Description,
		PreviewImage:  t.PreviewImage,
		PreviewImages: t.PreviewImages,
		IsPremium:     t.IsPremium,
		Price:         t.Price,
		CategoryID:    t.CategoryID,
		UsageCount:    t.UsageCount,
	}
}
