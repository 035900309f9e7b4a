package models

// DefaultScratchDesignPrice — цена приглашения «с нуля» (без шаблона).
const DefaultScratchDesignPrice float64 = 99

// SystemSettings — глобальные настройки площадки. В таблице всегда ровно
// одна строка: она создается при старте (SeedSettings), чтение/запись идут
// по единственной записи, find-or-create на каждый запрос не нужен.
type SystemSettings struct {
	BaseModel
	ScratchDesignPrice float64 `gorm:"not null;default:99" json:"scratchDesignPrice"`
}

// DefaultSystemSettings — строка, которой сидируется таблица.
func DefaultSystemSettings() SystemSettings {
	return SystemSettings{ScratchDesignPrice: DefaultScratchDesignPrice}
}
