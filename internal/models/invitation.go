package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ExpiryAfterEvent — приглашение живет 30 дней после даты события,
// если владелец не задал срок явно.
const ExpiryAfterEvent = 30 * 24 * time.Hour

// InvitationContent — событийные поля приглашения (не дизайн).
type InvitationContent struct {
	EventName      string     `json:"eventName"`
	HostName       string     `json:"hostName"`
	EventDate      time.Time  `json:"eventDate"`
	EventTime      string     `json:"eventTime"`
	Venue          string     `json:"venue"`
	VenueAddress   string     `json:"venueAddress"`
	HostContact    string     `json:"hostContact"`
	Message        string     `json:"message"`
	RSVPDeadline   *time.Time `json:"rsvpDeadline,omitempty"`
	GoogleMapsLink string     `json:"googleMapsLink"`
	Images         []string   `json:"images"`
}

// Invitation — пользовательский экземпляр приглашения. Источник контента
// ровно один: либо TemplateID (ссылка на шаблон), либо Design (инлайн-копия);
// при наличии обоих приоритет у шаблона.
type Invitation struct {
	BaseModel
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID" json:"-"`

	TemplateID *string   `gorm:"type:uuid;index" json:"template_id,omitempty"`
	Template   *Template `gorm:"foreignKey:TemplateID" json:"template,omitempty"`

	Design *Design `gorm:"serializer:json" json:"design,omitempty"`

	// Публичный адрес приглашения. Уникальность гарантирует индекс БД,
	// проверка в сервисе — только ради внятного сообщения об ошибке.
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`

	Content    InvitationContent `gorm:"serializer:json" json:"content"`
	CustomData datatypes.JSONMap `json:"custom_data"`

	IsPaid bool    `gorm:"default:false" json:"is_paid"`
	Price  float64 `gorm:"default:0" json:"price"` // снапшот цены на момент создания

	PaymentID *string  `gorm:"type:uuid" json:"payment_id,omitempty"`
	Payment   *Payment `gorm:"foreignKey:PaymentID" json:"-"`

	Status InvitationStatus `gorm:"type:varchar(20);default:'draft';index" json:"status"`

	Views     int64 `gorm:"default:0" json:"views"`
	RSVPCount int64 `gorm:"default:0" json:"rsvp_count"`

	ExpiresAt  *time.Time `gorm:"index" json:"expires_at,omitempty"`
	AutoDelete bool       `gorm:"default:true" json:"auto_delete"`

	// Relations
	RSVPs []RSVP `gorm:"foreignKey:InvitationID" json:"rsvps,omitempty"`
}

// BeforeSave выставляет срок жизни один раз: eventDate + 30 дней, если
// владелец не задал его сам. Уже установленный ExpiresAt автологика
// не пересчитывает, даже если дата события изменилась.
func (inv *Invitation) BeforeSave(tx *gorm.DB) error {
	if inv.ExpiresAt == nil && !inv.Content.EventDate.IsZero() {
		exp := inv.Content.EventDate.Add(ExpiryAfterEvent)
		inv.ExpiresAt = &exp
	}
	return nil
}

// IsExpired — вычисляемое поле, не хранится в БД.
func (inv *Invitation) IsExpired() bool {
	if inv.ExpiresAt == nil {
		return false
	}
	return time.Now().After(*inv.ExpiresAt)
}

// NewInvitationSlug — дефолтный 8-символьный публичный slug.
func NewInvitationSlug() string {
	return uuid.NewString()[:8]
}

// Границы длины пользовательского slug.
const (
	SlugMinLen = 3
	SlugMaxLen = 50
)

// SanitizeSlug приводит пользовательский slug к виду [a-z0-9-]:
// lowercase, запрещенные символы выбрасываются, длина ограничивается
// SlugMaxLen. Вторым значением возвращает false, если после очистки
// slug короче SlugMinLen.
func SanitizeSlug(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if len(s) > SlugMaxLen {
		s = s[:SlugMaxLen]
	}
	return s, len(s) >= SlugMinLen
}
