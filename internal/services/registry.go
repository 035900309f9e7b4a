package services

import (
	"inviteme_backend/internal/email"
	"inviteme_backend/internal/services/payment"
	"inviteme_backend/internal/storage"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService       AuthService
	UserService       UserService
	CategoryService   CategoryService
	TemplateService   TemplateService
	InvitationService InvitationService
	PaymentService    payment.Service
	RSVPService       RSVPService
	SettingsService   SettingsService
	EmailService      email.Provider
	Storage           storage.Storage
}
