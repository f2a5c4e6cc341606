package validators

import (
	"estatehub/internal/models"
)

// Every validator error wraps errors.ErrValidation.

type PropertyValidator interface {
	ValidateCreate(input *models.PropertyInput) error
	ValidateUpdate(update *models.PropertyUpdate) error
}

type UserValidator interface {
	ValidateRegister(name, email, password string) error
	ValidateLogin(email, password string) error
}

type RecommendationValidator interface {
	ValidateRecommend(recipientEmail, message string) error
}
