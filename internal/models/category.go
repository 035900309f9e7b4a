package models

import "strings"

// Category группирует шаблоны витрины (Wedding, Birthday, ...).
type Category struct {
	BaseModel
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Slug        string `gorm:"uniqueIndex" json:"slug"`
	Description string `json:"description"`
	IsPublished bool   `gorm:"default:false;index" json:"is_published"`
	Thumbnail   string `json:"thumbnail"` // URL в хранилище изображений

	// Relations
	Templates []Template `gorm:"foreignKey:CategoryID" json:"templates,omitempty"`
}

// MinActiveTemplatesToPublish — категория публикуется только при таком
// количестве активных шаблонов.
const MinActiveTemplatesToPublish = 3

// CategorySlug детерминированно выводит slug из имени:
// lowercase, пробелы заменяются дефисами.
func CategorySlug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// CanPublishCategory — гейт публикации: не меньше
// MinActiveTemplatesToPublish активных шаблонов.
func CanPublishCategory(activeTemplates int64) bool {
	return activeTemplates >= MinActiveTemplatesToPublish
}
