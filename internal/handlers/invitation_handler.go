package handlers

import (
	"net/http"

	"inviteme_backend/internal/services"
	"inviteme_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// InvitationHandler - приглашения текущего пользователя.
// Публичный просмотр по slug живет в PublicHandler.
type InvitationHandler struct {
	*BaseHandler
	invitationService services.InvitationService
	rsvpService       services.RSVPService
}

func NewInvitationHandler(base *BaseHandler, invitationService services.InvitationService, rsvpService services.RSVPService) *InvitationHandler {
	return &InvitationHandler{
		BaseHandler:       base,
		invitationService: invitationService,
		rsvpService:       rsvpService,
	}
}

func (h *InvitationHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	invitations := rg.Group("/invitations")
	invitations.Use(authMW)
	{
		invitations.POST("", h.Create)
		invitations.GET("", h.ListMine)
		invitations.GET("/:id", h.Get)
		invitations.PUT("/:id", h.Update)
		invitations.DELETE("/:id", h.Delete)

		// Ответы гостей видит только владелец приглашения
		invitations.GET("/:id/rsvps", h.ListRSVPs)
		invitations.GET("/:id/rsvps/export", h.ExportRSVPs)
	}
}

func (h *InvitationHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateInvitationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	invitation, err := h.invitationService.Create(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, invitation)
}

func (h *InvitationHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	page, pageSize := ParsePagination(c)

	response, err := h.invitationService.GetMine(db, userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *InvitationHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	invitation, err := h.invitationService.GetByID(db, userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, invitation)
}

func (h *InvitationHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateInvitationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	invitation, err := h.invitationService.Update(db, userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, invitation)
}

func (h *InvitationHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.invitationService.Delete(db, userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invitation deleted successfully"})
}

func (h *InvitationHandler) ListRSVPs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	response, err := h.rsvpService.GetByInvitation(db, userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ExportRSVPs отдает CSV вложением: список гостей для печати.
func (h *InvitationHandler) ExportRSVPs(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	filename, csv, err := h.rsvpService.ExportCSV(db, userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", []byte(csv))
}
