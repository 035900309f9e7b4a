package handlers

import (
	"net/http"

	"inviteme_backend/internal/auth"
	"inviteme_backend/internal/logger"
	"inviteme_backend/internal/middleware"
	"inviteme_backend/internal/services"
	"inviteme_backend/internal/services/dto"
	"inviteme_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	issuer      *auth.TokenIssuer
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, issuer *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		issuer:      issuer,
	}
}

// RegisterRoutes регистрирует маршруты аутентификации.
// Чувствительные эндпоинты прикрыты отдельными лимитами.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	authLimit := middleware.NewRateLimiter(middleware.AuthRateLimit).Middleware()
	resetLimit := middleware.NewRateLimiter(middleware.ResetRateLimit).Middleware()

	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", authLimit, h.Register)
		authGroup.POST("/login", authLimit, h.Login)
		authGroup.POST("/refresh", h.Refresh)
		authGroup.POST("/logout", h.Logout)
		authGroup.POST("/forgot-password", resetLimit, h.ForgotPassword)
		authGroup.PUT("/reset-password/:token", resetLimit, h.ResetPassword)

		me := authGroup.Group("")
		me.Use(authMW)
		{
			me.GET("/me", h.GetProfile)
			me.PUT("/profile", h.UpdateProfile)
			me.PUT("/change-password", h.ChangePassword)
		}
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	response, err := h.authService.Register(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setAuthCookies(c, response)
	c.JSON(http.StatusCreated, response)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	response, err := h.authService.Login(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setAuthCookies(c, response)
	c.JSON(http.StatusOK, response)
}

// Refresh берет refresh-токен из http-only cookie; тело с полем
// refreshToken остается fallback'ом для клиентов без cookie.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, _ := c.Cookie(auth.RefreshCookie)
	if refreshToken == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			refreshToken = body.RefreshToken
		}
	}
	if refreshToken == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Refresh token not provided"))
		return
	}

	db := h.GetDB(c)

	response, err := h.authService.Refresh(db, refreshToken)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setAuthCookies(c, response)
	c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.issuer.ClearAuthCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	user, err := h.authService.GetProfile(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	user, err := h.authService.UpdateProfile(db, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.authService.ChangePassword(db, userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// ForgotPassword всегда отвечает одинаково: существование email не
// раскрывается.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.authService.RequestPasswordReset(db, req.Email); err != nil {
		logger.CtxWarn(c.Request.Context(), "Password reset request failed (hiding from user)",
			"error", err.Error(),
		)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "If an account with that email exists, a reset link has been sent",
	})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	if err := h.authService.ResetPassword(db, c.Param("token"), req.Password); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}

func (h *AuthHandler) setAuthCookies(c *gin.Context, resp *dto.AuthResponse) {
	h.issuer.SetAuthCookies(c, &auth.TokenPair{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	})
}
