package dto

import "inviteme_backend/internal/models"

// CreateCategoryRequest - создание категории (админ)
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=500"`
	Thumbnail   string `json:"thumbnail" binding:"omitempty,url"`
}

// UpdateCategoryRequest - частичное обновление категории
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Thumbnail   *string `json:"thumbnail" binding:"omitempty,url"`
}

// CategoryResponse - категория с количеством шаблонов
type CategoryResponse struct {
	models.Category
	TemplateCount int64 `json:"templateCount,omitempty"`
}

// PublicCategoryTemplates - публичная витрина: категория + ее активные шаблоны
type PublicCategoryTemplates struct {
	Category  *models.Category     `json:"category"`
	Templates []PublicTemplateView `json:"templates"`
}
