package validator

import (
	"log"

	"inviteme_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {

	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Если правило не удалось зарегистрировать, приложение
			// не должно запускаться, так как это критическая ошибка.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// Правила, основанные на 'statuses.go'
	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-invitation-status", validateInvitationStatus)
	mustRegister("is-rsvp-response", validateRSVPResponse)
	mustRegister("is-payment-status", validatePaymentStatus)

	// Правила конструктора дизайна
	mustRegister("is-block-type", validateBlockType)
	mustRegister("slug-chars", validateSlugChars)
}

// --- Функции валидации ---
// Пустые значения пропускаются: для обязательности есть 'required'.

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ValidUserRole(models.UserRole(value))
}

func validateInvitationStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ValidInvitationStatus(models.InvitationStatus(value))
}

func validateRSVPResponse(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ValidRSVPResponse(models.RSVPResponse(value))
}

func validatePaymentStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.PaymentStatus(value) {
	case models.PaymentStatusCreated, models.PaymentStatusCaptured, models.PaymentStatusFailed:
		return true
	default:
		return false
	}
}

func validateBlockType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ValidBlockType(models.BlockType(value))
}

// validateSlugChars проверяет форму slug'а до санитизации не требуя ее:
// только [a-z0-9-].
func validateSlugChars(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	for _, r := range value {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}
