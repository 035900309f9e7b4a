package dto

// UpdateSettingsRequest - обновление глобальных настроек (админ)
type UpdateSettingsRequest struct {
	ScratchDesignPrice *float64 `json:"scratchDesignPrice" binding:"omitempty,gt=0"`
}
