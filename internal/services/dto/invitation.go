package dto

import (
	"time"

	"inviteme_backend/internal/models"

	"gorm.io/datatypes"
)

// CreateInvitationRequest - создание приглашения: либо по шаблону
// (templateId), либо с нуля (design). Хотя бы одно обязательно.
type CreateInvitationRequest struct {
	TemplateID *string                  `json:"templateId" binding:"omitempty,uuid"`
	Design     *models.Design           `json:"design"`
	Content    models.InvitationContent `json:"content" binding:"required"`
	CustomData datatypes.JSONMap        `json:"customData"`
}

// UpdateInvitationRequest - частичное обновление; nil-поля не трогаются
type UpdateInvitationRequest struct {
	Content    *models.InvitationContent `json:"content"`
	Status     *models.InvitationStatus  `json:"status" binding:"omitempty,is-invitation-status"`
	CustomData datatypes.JSONMap         `json:"customData"`
	Design     *models.Design            `json:"design"`
	Slug       *string                   `json:"slug"`
	ExpiresAt  *time.Time                `json:"expiresAt"`
	AutoDelete *bool                     `json:"autoDelete"`
}

// InvitationResponse - приглашение с вычисляемым isExpired
type InvitationResponse struct {
	models.Invitation
	IsExpired bool `json:"isExpired"`
}

// NewInvitationResponse строит ответ из модели
func NewInvitationResponse(inv *models.Invitation) *InvitationResponse {
	return &InvitationResponse{
		Invitation: *inv,
		IsExpired:  inv.IsExpired(),
	}
}

// InvitationListResponse - страница приглашений пользователя
type InvitationListResponse struct {
	Invitations []InvitationResponse `json:"invitations"`
	Total       int64                `json:"total"`
	Page        int                  `json:"page"`
	PageSize    int                  `json:"pageSize"`
}

// PublicInvitationResponse - публичный вид по slug: без владельца и платежей
type PublicInvitationResponse struct {
	ID         string                   `json:"id"`
	Slug       string                   `json:"slug"`
	Content    models.InvitationContent `json:"content"`
	CustomData datatypes.JSONMap        `json:"customData,omitempty"`
	Design     *models.Design           `json:"design,omitempty"`
	Template   *models.Template         `json:"template,omitempty"`
	Status     models.InvitationStatus  `json:"status"`
	Views      int64                    `json:"views"`
}
