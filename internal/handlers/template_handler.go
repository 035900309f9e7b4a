package handlers

import (
	"net/http"

	"inviteme_backend/internal/middleware"
	"inviteme_backend/internal/models"
	"inviteme_backend/internal/services"
	"inviteme_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// TemplateHandler - админский CRUD шаблонов. Админский листинг включает
// неактивные шаблоны, в отличие от публичной витрины.
type TemplateHandler struct {
	*BaseHandler
	templateService services.TemplateService
}

func NewTemplateHandler(base *BaseHandler, templateService services.TemplateService) *TemplateHandler {
	return &TemplateHandler{
		BaseHandler:     base,
		templateService: templateService,
	}
}

func (h *TemplateHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	templates := rg.Group("/admin/templates")
	templates.Use(authMW, middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		templates.POST("", h.Create)
		templates.GET("", h.List)
		templates.GET("/:id", h.Get)
		templates.PUT("/:id", h.Update)
		templates.DELETE("/:id", h.Delete)
		templates.PUT("/:id/activate", h.Activate)
		templates.PUT("/:id/deactivate", h.Deactivate)
	}
}

func (h *TemplateHandler) Create(c *gin.Context) {
	var req dto.CreateTemplateRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	template, err := h.templateService.Create(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, template)
}

func (h *TemplateHandler) List(c *gin.Context) {
	var req dto.TemplateListRequest
	if !h.BindAndValidate_Query(c, &req) {
		return
	}

	db := h.GetDB(c)

	response, err := h.templateService.List(db, &req, false)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *TemplateHandler) Get(c *gin.Context) {
	db := h.GetDB(c)

	template, err := h.templateService.GetByID(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}

func (h *TemplateHandler) Update(c *gin.Context) {
	var req dto.UpdateTemplateRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	template, err := h.templateService.Update(db, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}

func (h *TemplateHandler) Delete(c *gin.Context) {
	db := h.GetDB(c)

	if err := h.templateService.Delete(db, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template deleted successfully"})
}

func (h *TemplateHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

func (h *TemplateHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *TemplateHandler) setActive(c *gin.Context, active bool) {
	db := h.GetDB(c)

	template, err := h.templateService.SetActive(db, c.Param("id"), active)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}
