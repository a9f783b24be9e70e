package validation

import (
	"strings"
	"unicode/utf8"

	"birdcall-quiz/internal/domain"
)

const (
	maxAnswerLength      = 100
	maxSpeciesNameLength = 100
	maxVoiceTypeLength   = 50
	MinSearchLimit       = 1
	MaxSearchLimit       = 50
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAnswerRequest checks the fields of an answer submission. The
// question id format is not checked here: unknown ids are a 404, not a 400.
func (v *Validator) ValidateAnswerRequest(questionID, userAnswer string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(questionID) == "" {
		errors = append(errors, domain.NewMissingFieldError("question_id"))
	}

	if strings.TrimSpace(userAnswer) == "" {
		errors = append(errors, domain.NewMissingFieldError("user_answer"))
	} else if n := utf8.RuneCountInString(userAnswer); n > maxAnswerLength {
		errors = append(errors, domain.NewOutOfRangeError("user_answer", n, 1, maxAnswerLength))
	}

	return errors
}

// ValidateVoiceType accepts an empty value or any short xeno-canto type tag.
func (v *Validator) ValidateVoiceType(voiceType string) domain.ValidationErrors {
	if n := utf8.RuneCountInString(voiceType); n > maxVoiceTypeLength {
		return domain.ValidationErrors{domain.NewOutOfRangeError("voice_type", n, 0, maxVoiceTypeLength)}
	}
	return nil
}

// ValidateSpeciesName validates a species local name
func (v *Validator) ValidateSpeciesName(field, name string) domain.ValidationErrors {
	if strings.TrimSpace(name) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError(field)}
	}
	if n := utf8.RuneCountInString(name); n > maxSpeciesNameLength {
		return domain.ValidationErrors{domain.NewOutOfRangeError(field, n, 1, maxSpeciesNameLength)}
	}
	return nil
}

// ValidateSearchRequest validates search parameters. A nil limit means the default.
func (v *Validator) ValidateSearchRequest(speciesName, voiceType string, limit *int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	errors = append(errors, v.ValidateSpeciesName("species_name", speciesName)...)
	errors = append(errors, v.ValidateVoiceType(voiceType)...)

	if limit != nil && (*limit < MinSearchLimit || *limit > MaxSearchLimit) {
		errors = append(errors, domain.NewOutOfRangeError("limit", *limit, MinSearchLimit, MaxSearchLimit))
	}

	return errors
}
