package utils

import (
	"reflect"
	"strings"

	apperrors "github.com/PathFinder-2025/discovery-service/internal/errors"
	"github.com/PathFinder-2025/discovery-service/internal/models"
	"github.com/PathFinder-2025/discovery-service/internal/quiz"
	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground struct validation plus the custom tags the
// domain models declare.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with all custom tags registered.
func NewValidator() *Validator {
	v := validator.New()
	RegisterCustomValidators(v)
	return &Validator{validate: v}
}

// Validate runs struct tag validation and converts failures into the shared
// ValidationErrors type.
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		if errs := apperrors.ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// Custom validation functions

func ValidateQuestionType(fl validator.FieldLevel) bool {
	return quiz.QuestionType(fl.Field().String()).Valid()
}

func ValidateTestType(fl validator.FieldLevel) bool {
	switch models.TestType(fl.Field().String()) {
	case models.TestTypeGeneral, models.TestTypeMissions:
		return true
	}
	return false
}

// RegisterCustomValidators registers all custom validators
func RegisterCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("question_type", ValidateQuestionType)
	validate.RegisterValidation("test_type", ValidateTestType)

	// Use json tag names in validation error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
