package validators

import (
	"strings"
)

type userValidator struct{}

func NewUserValidator() UserValidator {
	return &userValidator{}
}

type registerInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (v *userValidator) ValidateRegister(name, email, password string) error {
	return ValidateStruct(registerInput{
		Name:     strings.TrimSpace(name),
		Email:    strings.TrimSpace(email),
		Password: password,
	})
}

func (v *userValidator) ValidateLogin(email, password string) error {
	return ValidateStruct(loginInput{Email: strings.TrimSpace(email), Password: password})
}
