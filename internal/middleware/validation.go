package middleware

import (
	"birdcall-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the validation middleware.
const (
	LocalVoiceType   = "validated_voice_type"
	LocalSpeciesName = "validated_species_name"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateVoiceType checks the optional voice_type query parameter.
func (vm *ValidationMiddleware) ValidateVoiceType() fiber.Handler {
	return func(c *fiber.Ctx) error {
		voiceType := c.Query("voice_type")
		if errors := vm.validator.ValidateVoiceType(voiceType); len(errors) > 0 {
			return errors
		}
		c.Locals(LocalVoiceType, voiceType)
		return c.Next()
	}
}

// ValidateSpeciesParam checks the :name path parameter after URL decoding.
func (vm *ValidationMiddleware) ValidateSpeciesParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := decodedParam(c, "name")
		if errors := vm.validator.ValidateSpeciesName("name", name); len(errors) > 0 {
			return errors
		}
		c.Locals(LocalSpeciesName, name)
		return c.Next()
	}
}
