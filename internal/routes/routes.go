package routes

import (
	"inviteme_backend/internal/auth"
	"inviteme_backend/internal/handlers"
	"inviteme_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты под /api/v1.
// Общий лимит на IP действует на весь API, точечные лимиты
// (auth, reset, rsvp) навешиваются внутри хендлеров.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	issuer *auth.TokenIssuer,
) {
	authMW := middleware.AuthMiddleware(issuer)
	apiLimit := middleware.NewRateLimiter(middleware.APIRateLimit).Middleware()

	api := ginRouter.Group("/api/v1")
	api.Use(apiLimit)
	{
		appHandlers.AuthHandler.RegisterRoutes(api, authMW)
		appHandlers.UserHandler.RegisterRoutes(api, authMW)
		appHandlers.CategoryHandler.RegisterRoutes(api, authMW)
		appHandlers.TemplateHandler.RegisterRoutes(api, authMW)
		appHandlers.InvitationHandler.RegisterRoutes(api, authMW)
		appHandlers.PaymentHandler.RegisterRoutes(api, authMW)
		appHandlers.RSVPHandler.RegisterRoutes(api)
		appHandlers.SettingsHandler.RegisterRoutes(api, authMW)
		appHandlers.PublicHandler.RegisterRoutes(api)
		appHandlers.UploadHandler.RegisterRoutes(api, authMW)
	}
}
