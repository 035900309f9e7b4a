package models

import (
	"time"

	"gorm.io/datatypes"
)

// DefaultContent — демо-контент шаблона для превью на витрине.
type DefaultContent struct {
	EventName    string     `json:"eventName"`
	HostName     string     `json:"hostName"`
	EventDate    *time.Time `json:"eventDate,omitempty"`
	EventTime    string     `json:"eventTime"`
	Venue        string     `json:"venue"`
	VenueAddress string     `json:"venueAddress"`
	Message      string     `json:"message"`
}

func DefaultTemplateContent() DefaultContent {
	return DefaultContent{
		EventName:    "Beautiful Celebration",
		HostName:     "John & Jane",
		EventTime:    "6:00 PM",
		Venue:        "Grand Ballroom",
		VenueAddress: "123 Celebration Street, City",
		Message:      "We would be honored to have you celebrate with us!",
	}
}

// Template — управляемый админом дизайн-шаблон, привязанный к категории.
// Premium-шаблон обязан иметь цену > 0; для остальных цена принудительно 0
// (NormalizePricing).
type Template struct {
	BaseModel
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`

	CategoryID string    `gorm:"type:uuid;not null;index:idx_templates_category_active" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	PreviewImage  string                      `gorm:"not null" json:"preview_image"`
	PreviewImages datatypes.JSONSlice[string] `json:"preview_images"` // карусель превью

	IsPremium bool    `gorm:"default:false;index" json:"is_premium"`
	Price     float64 `gorm:"default:0" json:"price"`
	IsActive  bool    `gorm:"default:true;index:idx_templates_category_active" json:"is_active"`

	Design Design `gorm:"serializer:json" json:"design"`

	// Пути дизайна, которые клиент может менять,
	// например "theme.colors.primary" или "theme.fonts.heading".
	CustomizableFields datatypes.JSONSlice[string] `json:"customizable_fields"`

	DefaultContent DefaultContent `gorm:"serializer:json" json:"default_content"`

	UsageCount int64 `gorm:"default:0" json:"usage_count"`
}

// NormalizePricing применяет связку premium/цена на каждой записи:
// не-premium шаблон всегда стоит 0, premium обязан стоить больше 0.
// Возвращает false, если пара невалидна.
func (t *Template) NormalizePricing() bool {
	if !t.IsPremium {
		t.Price = 0
		return true
	}
	return t.Price > 0
}
