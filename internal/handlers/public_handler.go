package handlers

import (
	"net/http"

	"inviteme_backend/internal/repositories"
	"inviteme_backend/internal/services"
	"inviteme_backend/internal/services/dto"
	"inviteme_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// PublicHandler - витрина без аутентификации: просмотр приглашений по
// slug, опубликованные категории и активные шаблоны.
type PublicHandler struct {
	*BaseHandler
	invitationService services.InvitationService
	categoryService   services.CategoryService
	templateService   services.TemplateService
}

func NewPublicHandler(
	base *BaseHandler,
	invitationService services.InvitationService,
	categoryService services.CategoryService,
	templateService services.TemplateService,
) *PublicHandler {
	return &PublicHandler{
		BaseHandler:       base,
		invitationService: invitationService,
		categoryService:   categoryService,
		templateService:   templateService,
	}
}

func (h *PublicHandler) RegisterRoutes(rg *gin.RouterGroup) {
	public := rg.Group("/public")
	{
		public.GET("/invitations/:slug", h.GetInvitation)
		public.GET("/categories", h.ListCategories)
		public.GET("/categories/:slug", h.GetCategoryShowcase)
		public.GET("/templates", h.ListTemplates)
		public.GET("/templates/:id", h.GetTemplate)
	}
}

// GetInvitation - просмотр приглашения гостем. Каждый просмотр
// инкрементирует счетчик; истекшие приглашения отдают 410.
func (h *PublicHandler) GetInvitation(c *gin.Context) {
	db := h.GetDB(c)

	invitation, err := h.invitationService.GetPublicBySlug(db, c.Param("slug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, invitation)
}

func (h *PublicHandler) ListCategories(c *gin.Context) {
	db := h.GetDB(c)

	categories, err := h.categoryService.GetPublished(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *PublicHandler) GetCategoryShowcase(c *gin.Context) {
	db := h.GetDB(c)

	showcase, err := h.templateService.GetCategoryShowcase(db, c.Param("slug"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, showcase)
}

func (h *PublicHandler) ListTemplates(c *gin.Context) {
	var req dto.TemplateListRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	db := h.GetDB(c)

	response, err := h.templateService.List(db, &req, true)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	views := make([]dto.PublicTemplateView, 0, len(response.Templates))
	for i := range response.Templates {
		views = append(views, dto.NewPublicTemplateView(&response.Templates[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"templates": views,
		"total":     response.Total,
		"page":      response.Page,
		"pageSize":  response.PageSize,
	})
}

func (h *PublicHandler) GetTemplate(c *gin.Context) {
	db := h.GetDB(c)

	template, err := h.templateService.GetByID(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	// Неактивные шаблоны с витрины не отдаются
	if !template.IsActive {
		h.HandleServiceError(c, apperrors.ErrNotFound(repositories.ErrTemplateNotFound))
		return
	}

	c.JSON(http.StatusOK, dto.NewPublicTemplateView(template))
}
