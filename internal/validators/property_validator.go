package validators

import (
	"estatehub/internal/models"
)

type propertyValidator struct{}

func NewPropertyValidator() PropertyValidator {
	return &propertyValidator{}
}

func (v *propertyValidator) ValidateCreate(input *models.PropertyInput) error {
	if input == nil {
		return invalid("property data is required")
	}
	return ValidateStruct(input)
}

func (v *propertyValidator) ValidateUpdate(update *models.PropertyUpdate) error {
	if update == nil || update.IsEmpty() {
		return invalid("at least one field must be provided")
	}
	return ValidateStruct(update)
}
