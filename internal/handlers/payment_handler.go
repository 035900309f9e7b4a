package handlers

import (
	"net/http"

	"inviteme_backend/internal/middleware"
	"inviteme_backend/internal/models"
	"inviteme_backend/internal/services/dto"
	"inviteme_backend/internal/services/payment"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	*BaseHandler
	paymentService payment.Service
}

func NewPaymentHandler(base *BaseHandler, paymentService payment.Service) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	payments := rg.Group("/payments")
	payments.Use(authMW)
	{
		payments.POST("/orders", h.CreateOrder)
		payments.POST("/verify", h.Verify)
		payments.GET("/me", h.ListMine)
	}

	admin := rg.Group("/admin/payments")
	admin.Use(authMW, middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.GET("", h.ListAll)
	}
}

func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	response, err := h.paymentService.CreateOrder(c.Request.Context(), db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *PaymentHandler) Verify(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.VerifyPaymentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	response, err := h.paymentService.Verify(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *PaymentHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	page, pageSize := ParsePagination(c)

	response, err := h.paymentService.GetMyPayments(db, userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *PaymentHandler) ListAll(c *gin.Context) {
	db := h.GetDB(c)
	page, pageSize := ParsePagination(c)

	response, err := h.paymentService.GetAllPayments(db, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
