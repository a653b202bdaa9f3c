package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	_ = v.RegisterValidation("tasktype", validateTaskType)
	_ = v.RegisterValidation("attribute", validateAttribute)
	_ = v.RegisterValidation("difficulty", validateDifficulty)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map.
// This prevents leaking internal struct names and provides cleaner messages.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "tasktype":
			errs[field] = "Must be 'daily' or 'todo'"
		case "attribute":
			errs[field] = "Must be 'strength', 'intellect' or 'stamina'"
		case "difficulty":
			errs[field] = "Must be 'easy', 'medium' or 'hard'"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "gte":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "excludesall":
			errs[field] = "Contains invalid characters"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

func validateTaskType(fl validator.FieldLevel) bool {
	t := strings.ToLower(fl.Field().String())
	return t == domain.TaskTypeDaily || t == domain.TaskTypeTodo
}

func validateAttribute(fl validator.FieldLevel) bool {
	a := fl.Field().String()
	if a == "" {
		return true
	}
	return domain.ValidAttribute(domain.Attribute(strings.ToLower(a)))
}

func validateDifficulty(fl validator.FieldLevel) bool {
	return domain.ValidDifficulty(domain.Difficulty(strings.ToLower(fl.Field().String())))
}
