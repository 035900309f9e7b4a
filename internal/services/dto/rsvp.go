package dto

import "inviteme_backend/internal/models"

// SubmitRSVPRequest - ответ гостя. Приглашение задается slug'ом либо id.
type SubmitRSVPRequest struct {
	InvitationID   string              `json:"invitationId" binding:"omitempty,uuid"`
	Slug           string              `json:"slug" binding:"omitempty"`
	Name           string              `json:"name" binding:"required,min=1,max=150"`
	Email          string              `json:"email" binding:"required,email"`
	Phone          string              `json:"phone" binding:"max=30"`
	Response       models.RSVPResponse `json:"response" binding:"omitempty,is-rsvp-response"`
	NumberOfGuests int                 `json:"numberOfGuests" binding:"omitempty,min=1,max=50"`
	Message        string              `json:"message" binding:"max=1000"`
}

// SubmitRSVPResponse - результат отправки: created=false при обновлении
type SubmitRSVPResponse struct {
	Message string       `json:"message"`
	Created bool         `json:"created"`
	RSVP    *models.RSVP `json:"rsvp"`
}

// RSVPListResponse - ответы гостей со статистикой
type RSVPListResponse struct {
	RSVPs []models.RSVP `json:"rsvps"`
	Stats *RSVPStats    `json:"stats"`
}

// RSVPStats - агрегаты по приглашению
type RSVPStats struct {
	Total        int64 `json:"total"`
	Attending    int64 `json:"attending"`
	NotAttending int64 `json:"notAttending"`
	Maybe        int64 `json:"maybe"`
	TotalGuests  int64 `json:"totalGuests"`
}
