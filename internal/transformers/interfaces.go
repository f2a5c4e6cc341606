package transformers

import (
	"estatehub/internal/models"
)

// PropertyTransformer cleans client payloads before validation and persistence.
type PropertyTransformer interface {
	NormalizeInput(input *models.PropertyInput)
	NormalizeUpdate(update *models.PropertyUpdate)
}

type AddressTransformer interface {
	NormalizeAddressComponent(input string) string
	NormalizeState(input string) string
}
