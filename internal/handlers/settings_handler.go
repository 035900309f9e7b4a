package handlers

import (
	"net/http"

	"inviteme_backend/internal/middleware"
	"inviteme_backend/internal/models"
	"inviteme_backend/internal/services"
	"inviteme_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// SettingsHandler - глобальные настройки площадки. Чтение открыто:
// клиенту нужна цена scratch-дизайна до авторизации.
type SettingsHandler struct {
	*BaseHandler
	settingsService services.SettingsService
}

func NewSettingsHandler(base *BaseHandler, settingsService services.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		BaseHandler:     base,
		settingsService: settingsService,
	}
}

func (h *SettingsHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/settings", h.Get)

	admin := rg.Group("/admin/settings")
	admin.Use(authMW, middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.PUT("", h.Update)
	}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	db := h.GetDB(c)

	settings, err := h.settingsService.Get(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	settings, err := h.settingsService.Update(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, settings)
}
