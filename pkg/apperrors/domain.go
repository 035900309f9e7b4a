package apperrors

import (
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для общих ошибок бизнес-логики и домена.
*/

// =========================================================================
// Фабричные ФУНКЦИИ (Используются для оборачивания ошибок, напр. из репозитория)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - фабрика для невалидных статусов (400)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ (Для частых, статичных ошибок)
// =========================================================================

// --- Auth ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// ErrCannotModifySelf - админ не может удалить или понизить сам себя.
var ErrCannotModifySelf = New(
	CodeForbidden,
	"business_logic",
	"Operation on self is not allowed",
	http.StatusForbidden,
)

// --- Invitations ---

// ErrSlugTaken - публичный адрес уже занят другим приглашением.
var ErrSlugTaken = New(
	CodeConflict,
	"invitation",
	"This URL is already taken",
	http.StatusConflict,
)

// ErrInvalidSlug - после санитизации slug оказался слишком коротким.
var ErrInvalidSlug = New(
	CodeValidationFailed,
	"invitation",
	"Slug must contain at least 3 characters (a-z, 0-9, hyphen)",
	http.StatusBadRequest,
)

// ErrInvitationNotPaid - операция доступна только для оплаченного приглашения.
var ErrInvitationNotPaid = New(
	CodeInvalidOperation,
	"invitation",
	"Invitation is not paid",
	http.StatusBadRequest,
)

// ErrAlreadyPaid - повторная оплата уже оплаченного приглашения.
var ErrAlreadyPaid = New(
	CodeInvalidOperation,
	"payment",
	"Invitation is already paid",
	http.StatusBadRequest,
)

// ErrInvitationExpired - приглашение истекло и недоступно публично.
var ErrInvitationExpired = New(
	CodeInvalidStatus,
	"invitation",
	"This invitation has expired",
	http.StatusGone,
)

// --- Payments ---

// ErrInvalidPaymentSignature - подпись шлюза не сошлась; платеж помечается failed.
var ErrInvalidPaymentSignature = New(
	CodeExternalServiceError,
	"payment",
	"Payment verification failed: invalid signature",
	http.StatusBadRequest,
)

// ErrPaymentGateway - общая ошибка интеграции с платежным шлюзом.
var ErrPaymentGateway = New(
	CodeExternalServiceError,
	"payment",
	"Payment provider error",
	http.StatusServiceUnavailable,
)

// ErrInvalidPaymentAmount - сумма платежа не совпадает с ценой приглашения.
var ErrInvalidPaymentAmount = New(
	CodeConflict,
	"payment",
	"Invalid payment amount",
	http.StatusConflict,
)

// --- Templates & Categories ---

// ErrPremiumPriceRequired - premium-шаблон обязан иметь цену больше нуля.
var ErrPremiumPriceRequired = New(
	CodeValidationFailed,
	"template",
	"Premium template must have a price greater than zero",
	http.StatusBadRequest,
)

// ErrCategoryNotPublishable - в категории меньше трех активных шаблонов.
var ErrCategoryNotPublishable = New(
	CodeInvalidOperation,
	"category",
	"Category needs at least 3 active templates to be published",
	http.StatusBadRequest,
)

// ErrCategoryInUse - категорию с шаблонами удалить нельзя.
var ErrCategoryInUse = New(
	CodeConflict,
	"category",
	"Category still contains templates",
	http.StatusConflict,
)

// ErrTemplateInUse - шаблон используется приглашениями, деактивируйте вместо удаления.
var ErrTemplateInUse = New(
	CodeConflict,
	"template",
	"Template is used by existing invitations, deactivate it instead",
	http.StatusConflict,
)

// --- RSVP ---

// ErrRSVPClosed - дедлайн RSVP прошел, новые ответы не принимаются.
var ErrRSVPClosed = New(
	CodeInvalidOperation,
	"rsvp",
	"RSVP deadline has passed",
	http.StatusBadRequest,
)

// --- Uploads & Files ---

// ErrFileTooLarge - файл превышает максимальный размер для одного запроса.
var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

// ErrInvalidFileType - MIME-тип файла не разрешен.
var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)
