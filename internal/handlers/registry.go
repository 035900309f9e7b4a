package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler       *AuthHandler
	UserHandler       *UserHandler
	CategoryHandler   *CategoryHandler
	TemplateHandler   *TemplateHandler
	InvitationHandler *InvitationHandler
	PaymentHandler    *PaymentHandler
	RSVPHandler       *RSVPHandler
	SettingsHandler   *SettingsHandler
	PublicHandler     *PublicHandler
	UploadHandler     *UploadHandler
}
