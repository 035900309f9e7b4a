package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"inviteme_backend/database"
	"inviteme_backend/internal/auth"
	"inviteme_backend/internal/config"
	"inviteme_backend/internal/email"
	"inviteme_backend/internal/handlers"
	"inviteme_backend/internal/logger"
	"inviteme_backend/internal/middleware"
	"inviteme_backend/internal/repositories"
	"inviteme_backend/internal/routes"
	"inviteme_backend/internal/services"
	"inviteme_backend/internal/services/payment"
	"inviteme_backend/internal/storage"
	"inviteme_backend/internal/validator"
	"inviteme_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}
	if err := database.SeedSettings(gormDB); err != nil {
		logger.Fatal("Failed to seed system settings", "error", err)
	}
	if err := database.SeedFirstAdmin(gormDB); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	issuer := newTokenIssuer(cfg)
	ginRouter := SetupRouter(cfg, gormDB, issuer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	invitationRepo := repositories.NewInvitationRepository()
	workers.NewExpiryWorker(gormDB, invitationRepo).Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:    address,
		Handler: ginRouter,
	}

	go func() {
		logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	logger.Info("Server stopped")
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB, issuer *auth.TokenIssuer) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:     cfg.Storage.Type,
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	emailProvider := newEmailProvider(cfg)

	serviceContainer := initializeServices(cfg, issuer, emailProvider, storageInstance)
	appHandlers := initializeHandlers(cfg, serviceContainer, issuer, storageInstance)

	ginRouter := initializeGinRouter(cfg, gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers, issuer)

	return ginRouter
}

func newTokenIssuer(cfg *config.Config) *auth.TokenIssuer {
	// Secure-cookie только вне dev-окружения: локально фронтенд ходит по http
	secureCookies := cfg.Server.Env != "development"
	return auth.NewTokenIssuer(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		time.Duration(cfg.JWT.AccessTTLMin)*time.Minute,
		time.Duration(cfg.JWT.RefreshTTLDay)*24*time.Hour,
		secureCookies,
	)
}

func newEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured, password reset emails will be dropped")
		return &MockEmailProvider{}
	}

	return email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		UseTLS:    cfg.Email.UseTLS,
	})
}

func initializeServices(
	cfg *config.Config,
	issuer *auth.TokenIssuer,
	emailProvider email.Provider,
	storageInstance storage.Storage,
) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository()
	categoryRepo := repositories.NewCategoryRepository()
	templateRepo := repositories.NewTemplateRepository()
	invitationRepo := repositories.NewInvitationRepository()
	paymentRepo := repositories.NewPaymentRepository()
	rsvpRepo := repositories.NewRSVPRepository()
	settingsRepo := repositories.NewSettingsRepository()

	gateway := payment.NewRazorpayGateway(cfg.Payment.KeyID, cfg.Payment.KeySecret)

	return &services.ServiceContainer{
		AuthService:       services.NewAuthService(userRepo, issuer, emailProvider),
		UserService:       services.NewUserService(userRepo, invitationRepo, paymentRepo),
		CategoryService:   services.NewCategoryService(categoryRepo),
		TemplateService:   services.NewTemplateService(templateRepo, categoryRepo),
		InvitationService: services.NewInvitationService(invitationRepo, templateRepo, settingsRepo),
		PaymentService:    payment.NewService(gateway, paymentRepo, invitationRepo, templateRepo),
		RSVPService:       services.NewRSVPService(rsvpRepo, invitationRepo),
		SettingsService:   services.NewSettingsService(settingsRepo),
		EmailService:      emailProvider,
		Storage:           storageInstance,
	}
}

func initializeHandlers(
	cfg *config.Config,
	svc *services.ServiceContainer,
	issuer *auth.TokenIssuer,
	storageInstance storage.Storage,
) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:       handlers.NewAuthHandler(baseHandler, svc.AuthService, issuer),
		UserHandler:       handlers.NewUserHandler(baseHandler, svc.UserService),
		CategoryHandler:   handlers.NewCategoryHandler(baseHandler, svc.CategoryService),
		TemplateHandler:   handlers.NewTemplateHandler(baseHandler, svc.TemplateService),
		InvitationHandler: handlers.NewInvitationHandler(baseHandler, svc.InvitationService, svc.RSVPService),
		PaymentHandler:    handlers.NewPaymentHandler(baseHandler, svc.PaymentService),
		RSVPHandler:       handlers.NewRSVPHandler(baseHandler, svc.RSVPService),
		SettingsHandler:   handlers.NewSettingsHandler(baseHandler, svc.SettingsService),
		PublicHandler:     handlers.NewPublicHandler(baseHandler, svc.InvitationService, svc.CategoryService, svc.TemplateService),
		UploadHandler:     handlers.NewUploadHandler(baseHandler, storageInstance, cfg),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.ClientURL))
	router.Use(middleware.DBMiddleware(db))
	return router
}
