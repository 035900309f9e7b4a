package services

import (
	"net/http"

	"inviteme_backend/internal/models"
	"inviteme_backend/internal/repositories"
	"inviteme_backend/internal/services/dto"
	"inviteme_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type InvitationService interface {
	Create(db *gorm.DB, userID string, req *dto.CreateInvitationRequest) (*dto.InvitationResponse, error)
	GetMine(db *gorm.DB, userID string, page, pageSize int) (*dto.InvitationListResponse, error)
	GetByID(db *gorm.DB, userID, id string) (*dto.InvitationResponse, error)
	Update(db *gorm.DB, userID, id string, req *dto.UpdateInvitationRequest) (*dto.InvitationResponse, error)
	Delete(db *gorm.DB, userID, id string) error
	GetPublicBySlug(db *gorm.DB, slug string) (*dto.PublicInvitationResponse, error)
}

type invitationService struct {
	invitationRepo repositories.InvitationRepository
	templateRepo   repositories.TemplateRepository
	settingsRepo   repositories.SettingsRepository
}

func NewInvitationService(
	invitationRepo repositories.InvitationRepository,
	templateRepo repositories.TemplateRepository,
	settingsRepo repositories.SettingsRepository,
) InvitationService {
	return &invitationService{
		invitationRepo: invitationRepo,
		templateRepo:   templateRepo,
		settingsRepo:   settingsRepo,
	}
}

// Create создает приглашение одним из двух путей: по шаблону или с нуля.
// Бесплатный шаблон публикуется сразу; premium и scratch стартуют как
// draft и ждут оплаты.
func (s *invitationService) Create(db *gorm.DB, userID string, req *dto.CreateInvitationRequest) (*dto.InvitationResponse, error) {
	invitation := &models.Invitation{
		UserID:     userID,
		Slug:       models.NewInvitationSlug(),
		Content:    req.Content,
		CustomData: req.CustomData,
	}

	switch {
	case req.TemplateID != nil:
		template, err := s.templateRepo.FindByID(db, *req.TemplateID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrTemplateNotFound) {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, apperrors.InternalError(err)
		}
		if !template.IsActive {
			return nil, apperrors.ErrInvalidOperation("invitation", "This template is not available")
		}

		invitation.TemplateID = req.TemplateID
		invitation.IsPaid = !template.IsPremium
		if template.IsPremium {
			invitation.Price = template.Price
			invitation.Status = models.InvitationStatusDraft
		} else {
			invitation.Status = models.InvitationStatusPublished
		}
		// Необязательная инлайн-копия дизайна поверх шаблона
		if req.Design != nil {
			if err := req.Design.Validate(); err != nil {
				return nil, apperrors.ValidationError(err.Error())
			}
			invitation.Design = req.Design
		}

	case req.Design != nil:
		// Дизайн с нуля всегда платный, по глобальной цене
		if err := req.Design.Validate(); err != nil {
			return nil, apperrors.ValidationError(err.Error())
		}
		settings, err := s.settingsRepo.Get(db)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}

		invitation.Design = req.Design
		invitation.IsPaid = false
		invitation.Price = settings.ScratchDesignPrice
		invitation.Status = models.InvitationStatusDraft

	default:
		return nil, apperrors.ErrInvalidOperation("invitation", "Template or design data is required")
	}

	if err := s.invitationRepo.Create(db, invitation); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if invitation.TemplateID != nil {
		if err := s.templateRepo.IncrementUsage(db, *invitation.TemplateID); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	created, err := s.invitationRepo.FindByID(db, invitation.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewInvitationResponse(created), nil
}

func (s *invitationService) GetMine(db *gorm.DB, userID string, page, pageSize int) (*dto.InvitationListResponse, error) {
	invitations, total, err := s.invitationRepo.FindByUser(db, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.InvitationResponse, 0, len(invitations))
	for i := range invitations {
		out = append(out, *dto.NewInvitationResponse(&invitations[i]))
	}
	return &dto.InvitationListResponse{
		Invitations: out,
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
	}, nil
}

// findOwned возвращает приглашение только его владельцу.
func (s *invitationService) findOwned(db *gorm.DB, userID, id string) (*models.Invitation, error) {
	invitation, err := s.invitationRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrInvitationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if invitation.UserID != userID {
		return nil, apperrors.NewForbiddenError("Not authorized to access this invitation")
	}
	return invitation, nil
}

func (s *invitationService) GetByID(db *gorm.DB, userID, id string) (*dto.InvitationResponse, error) {
	invitation, err := s.findOwned(db, userID, id)
	if err != nil {
		return nil, err
	}
	return dto.NewInvitationResponse(invitation), nil
}

func (s *invitationService) Update(db *gorm.DB, userID, id string, req *dto.UpdateInvitationRequest) (*dto.InvitationResponse, error) {
	invitation, err := s.findOwned(db, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		invitation.Content = *req.Content
	}
	if req.Status != nil {
		invitation.Status = *req.Status
	}
	if req.CustomData != nil {
		invitation.CustomData = req.CustomData
	}
	if req.Design != nil {
		if err := req.Design.Validate(); err != nil {
			return nil, apperrors.ValidationError(err.Error())
		}
		invitation.Design = req.Design
	}

	// Брендированная ссылка: санитизация и проверка занятости
	if req.Slug != nil && *req.Slug != invitation.Slug {
		sanitized, ok := models.SanitizeSlug(*req.Slug)
		if !ok {
			return nil, apperrors.ErrInvalidSlug
		}
		taken, err := s.invitationRepo.SlugExists(db, sanitized, invitation.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if taken {
			return nil, apperrors.ErrSlugTaken
		}
		invitation.Slug = sanitized
	}

	// Владелец может задать срок явно или сбросить к автологике (null)
	if req.ExpiresAt != nil {
		invitation.ExpiresAt = req.ExpiresAt
	}
	if req.AutoDelete != nil {
		invitation.AutoDelete = *req.AutoDelete
	}

	if err := s.invitationRepo.Update(db, invitation); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewInvitationResponse(invitation), nil
}

func (s *invitationService) Delete(db *gorm.DB, userID, id string) error {
	invitation, err := s.findOwned(db, userID, id)
	if err != nil {
		return err
	}

	// Оплаченное опубликованное приглашение защищено от случайного удаления
	if invitation.IsPaid && invitation.Status == models.InvitationStatusPublished {
		return apperrors.ErrInvalidOperation("invitation", "Cannot delete a published paid invitation")
	}

	if err := s.invitationRepo.Delete(db, invitation.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// GetPublicBySlug — публичный просмотр. Доступны только оплаченные
// приглашения; истекшие отвечают 410. Счетчик просмотров растет атомарно.
func (s *invitationService) GetPublicBySlug(db *gorm.DB, slug string) (*dto.PublicInvitationResponse, error) {
	invitation, err := s.invitationRepo.FindBySlug(db, slug)
	if err != nil {
		if apperrors.Is(err, repositories.ErrInvitationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if !invitation.IsPaid {
		return nil, apperrors.New(apperrors.CodeNotFound, "invitation",
			"Invitation not found or not yet published", http.StatusNotFound)
	}
	if invitation.IsExpired() {
		return nil, apperrors.ErrInvitationExpired
	}

	if err := s.invitationRepo.IncrementViews(db, invitation.ID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	invitation.Views++

	return &dto.PublicInvitationResponse{
		ID:         invitation.ID,
		Slug:       invitation.Slug,
		Content:    invitation.Content,
		CustomData: invitation.CustomData,
		Design:     invitation.Design,
		Template:   invitation.Template,
		Status:     invitation.Status,
		Views:      invitation.Views,
	}, nil
}
