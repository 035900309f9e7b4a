package models

// RSVP — ответ гостя на опубликованное приглашение. Email уникален в рамках
// приглашения (составной индекс), повторная отправка обновляет прежний ответ.
type RSVP struct {
	BaseModel
	InvitationID string      `gorm:"type:uuid;not null;uniqueIndex:idx_rsvps_invitation_email" json:"invitation_id"`
	Invitation   *Invitation `gorm:"foreignKey:InvitationID" json:"-"`

	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"not null;uniqueIndex:idx_rsvps_invitation_email" json:"email"`
	Phone string `json:"phone,omitempty"`

	Response       RSVPResponse `gorm:"type:varchar(20);default:'attending'" json:"response"`
	NumberOfGuests int          `gorm:"default:1" json:"number_of_guests"`
	Message        string       `json:"message,omitempty"`
}

// IsAttending учитывается при подсчете гостей в статистике.
func (r *RSVP) IsAttending() bool {
	return r.Response == RSVPResponseAttending
}
