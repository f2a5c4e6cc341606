package validators

type recommendationValidator struct{}

func NewRecommendationValidator() RecommendationValidator {
	return &recommendationValidator{}
}

type recommendInput struct {
	RecipientEmail string `json:"recipientEmail" validate:"required,email"`
	Message        string `json:"message" validate:"max=500"`
}

func (v *recommendationValidator) ValidateRecommend(recipientEmail, message string) error {
	return ValidateStruct(recommendInput{RecipientEmail: recipientEmail, Message: message})
}
