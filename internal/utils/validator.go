// internal/utils/validator.go
package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/shamaim/admin-dashboard/internal/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("catalog_genre", validateCatalogGenre)
	validate.RegisterValidation("catalog_size", validateCatalogSize)
	validate.RegisterValidation("catalog_category", validateCatalogCategory)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidateVar checks a single value against a tag such as "required".
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}

func validateCatalogGenre(fl validator.FieldLevel) bool {
	return models.IsKnownGenre(fl.Field().String())
}

func validateCatalogSize(fl validator.FieldLevel) bool {
	return models.IsKnownSize(fl.Field().String())
}

func validateCatalogCategory(fl validator.FieldLevel) bool {
	_, ok := models.FindCategory(fl.Field().String())
	return ok
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "catalog_genre":
		return e.Field() + " is not a known genre"
	case "catalog_size":
		return e.Field() + " is not a known size"
	case "catalog_category":
		return e.Field() + " is not a known category"
	default:
		return e.Field() + " is invalid"
	}
}
