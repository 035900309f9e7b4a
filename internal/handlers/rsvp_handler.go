package handlers

import (
	"net/http"

	"inviteme_backend/internal/middleware"
	"inviteme_backend/internal/services"
	"inviteme_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// RSVPHandler - публичная отправка ответов гостей. Аутентификация не
// требуется: ссылку на приглашение получают гости без аккаунта.
type RSVPHandler struct {
	*BaseHandler
	rsvpService services.RSVPService
}

func NewRSVPHandler(base *BaseHandler, rsvpService services.RSVPService) *RSVPHandler {
	return &RSVPHandler{
		BaseHandler: base,
		rsvpService: rsvpService,
	}
}

func (h *RSVPHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rsvpLimit := middleware.NewRateLimiter(middleware.RSVPRateLimit).Middleware()

	rsvps := rg.Group("/rsvps")
	{
		rsvps.POST("", rsvpLimit, h.Submit)
	}
}

// Submit создает или обновляет ответ гостя: повторная отправка с тем же
// email перезаписывает предыдущий ответ.
func (h *RSVPHandler) Submit(c *gin.Context) {
	var req dto.SubmitRSVPRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	response, err := h.rsvpService.Submit(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	status := http.StatusOK
	if response.Created {
		status = http.StatusCreated
	}
	c.JSON(status, response)
}
