package services

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"inviteme_backend/internal/models"
	"inviteme_backend/internal/repositories"
	"inviteme_backend/internal/services/dto"
	"inviteme_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type RSVPService interface {
	Submit(db *gorm.DB, req *dto.SubmitRSVPRequest) (*dto.SubmitRSVPResponse, error)
	GetByInvitation(db *gorm.DB, userID, invitationID string) (*dto.RSVPListResponse, error)
	ExportCSV(db *gorm.DB, userID, invitationID string) (filename string, csv string, err error)
}

type rsvpService struct {
	rsvpRepo       repositories.RSVPRepository
	invitationRepo repositories.InvitationRepository
}

func NewRSVPService(rsvpRepo repositories.RSVPRepository, invitationRepo repositories.InvitationRepository) RSVPService {
	return &rsvpService{
		rsvpRepo:       rsvpRepo,
		invitationRepo: invitationRepo,
	}
}

// Submit принимает ответ гостя по id или slug приглашения. Повторная
// отправка с тем же email обновляет прежний ответ (upsert), счетчик
// приглашения растет только на создании.
func (s *rsvpService) Submit(db *gorm.DB, req *dto.SubmitRSVPRequest) (*dto.SubmitRSVPResponse, error) {
	invitation, err := s.resolveInvitation(db, req)
	if err != nil {
		return nil, err
	}

	if !invitation.IsPaid {
		return nil, apperrors.New(apperrors.CodeNotFound, "rsvp",
			"Invitation not found or not yet active", http.StatusNotFound)
	}
	if invitation.Content.RSVPDeadline != nil && time.Now().After(*invitation.Content.RSVPDeadline) {
		return nil, apperrors.ErrRSVPClosed
	}

	response := req.Response
	if response == "" {
		response = models.RSVPResponseAttending
	}
	guests := req.NumberOfGuests
	if guests < 1 {
		guests = 1
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.rsvpRepo.FindByInvitationAndEmail(db, invitation.ID, email)
	if err == nil {
		existing.Name = req.Name
		existing.Phone = req.Phone
		existing.Response = response
		existing.NumberOfGuests = guests
		existing.Message = req.Message
		if err := s.rsvpRepo.Update(db, existing); err != nil {
			return nil, apperrors.InternalError(err)
		}
		return &dto.SubmitRSVPResponse{Message: "RSVP updated", Created: false, RSVP: existing}, nil
	}
	if !apperrors.Is(err, repositories.ErrRSVPNotFound) {
		return nil, apperrors.InternalError(err)
	}

	rsvp := &models.RSVP{
		InvitationID:   invitation.ID,
		Name:           req.Name,
		Email:          email,
		Phone:          req.Phone,
		Response:       response,
		NumberOfGuests: guests,
		Message:        req.Message,
	}
	if err := s.rsvpRepo.Create(db, rsvp); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.invitationRepo.IncrementRSVPCount(db, invitation.ID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.SubmitRSVPResponse{Message: "RSVP submitted", Created: true, RSVP: rsvp}, nil
}

func (s *rsvpService) resolveInvitation(db *gorm.DB, req *dto.SubmitRSVPRequest) (*models.Invitation, error) {
	var (
		invitation *models.Invitation
		err        error
	)
	switch {
	case req.InvitationID != "":
		invitation, err = s.invitationRepo.FindByID(db, req.InvitationID)
	case req.Slug != "":
		invitation, err = s.invitationRepo.FindBySlug(db, req.Slug)
	default:
		return nil, apperrors.NewBadRequestError("invitationId or slug is required")
	}
	if err != nil {
		if apperrors.Is(err, repositories.ErrInvitationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return invitation, nil
}

// findOwnedInvitation — доступ к ответам имеет только владелец приглашения.
func (s *rsvpService) findOwnedInvitation(db *gorm.DB, userID, invitationID string) (*models.Invitation, error) {
	invitation, err := s.invitationRepo.FindByID(db, invitationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrInvitationNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if invitation.UserID != userID {
		return nil, apperrors.NewForbiddenError("Not authorized to access these RSVPs")
	}
	return invitation, nil
}

func (s *rsvpService) GetByInvitation(db *gorm.DB, userID, invitationID string) (*dto.RSVPListResponse, error) {
	invitation, err := s.findOwnedInvitation(db, userID, invitationID)
	if err != nil {
		return nil, err
	}

	rsvps, err := s.rsvpRepo.FindByInvitation(db, invitation.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	stats, err := s.rsvpRepo.GetStats(db, invitation.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.RSVPListResponse{
		RSVPs: rsvps,
		Stats: &dto.RSVPStats{
			Total:        stats.Total,
			Attending:    stats.Attending,
			NotAttending: stats.NotAttending,
			Maybe:        stats.Maybe,
			TotalGuests:  stats.TotalGuests,
		},
	}, nil
}

func (s *rsvpService) ExportCSV(db *gorm.DB, userID, invitationID string) (string, string, error) {
	invitation, err := s.findOwnedInvitation(db, userID, invitationID)
	if err != nil {
		return "", "", err
	}

	rsvps, err := s.rsvpRepo.FindByInvitation(db, invitation.ID)
	if err != nil {
		return "", "", apperrors.InternalError(err)
	}

	filename := fmt.Sprintf("rsvps-%s.csv", invitation.Slug)
	return filename, BuildRSVPCSV(rsvps), nil
}

// BuildRSVPCSV собирает экспорт: каждая ячейка в кавычках, кавычки в
// тексте удваиваются, строки разделяются \n, даты в RFC3339 UTC.
func BuildRSVPCSV(rsvps []models.RSVP) string {
	var b strings.Builder
	b.WriteString("Name,Email,Phone,Response,Guests,Message,Date\n")
	for i, r := range rsvps {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, `"%s","%s","%s","%s","%d","%s","%s"`,
			csvEscape(r.Name),
			csvEscape(r.Email),
			csvEscape(r.Phone),
			r.Response,
			r.NumberOfGuests,
			csvEscape(r.Message),
			r.CreatedAt.UTC().Format(time.RFC3339),
		)
	}
	return b.String()
}

func csvEscape(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}
