package transformers

import (
	"strings"

	"estatehub/internal/models"
)

type propertyTransformer struct {
	addr AddressTransformer
}

func NewPropertyTransformer(addr AddressTransformer) PropertyTransformer {
	if addr == nil {
		addr = NewAddressTransformer()
	}
	return &propertyTransformer{addr: addr}
}

func (t *propertyTransformer) NormalizeInput(input *models.PropertyInput) {
	if input == nil {
		return
	}
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Type = strings.ToLower(strings.TrimSpace(input.Type))
	input.ListingType = strings.ToLower(strings.TrimSpace(input.ListingType))
	input.Address = t.addr.NormalizeAddressComponent(input.Address)
	input.City = t.addr.NormalizeAddressComponent(input.City)
	input.State = t.addr.NormalizeState(input.State)
	input.ZipCode = strings.TrimSpace(input.ZipCode)
	input.Amenities = trimAll(input.Amenities)
	input.Tags = trimAll(input.Tags)
}

func (t *propertyTransformer) NormalizeUpdate(update *models.PropertyUpdate) {
	if update == nil {
		return
	}
	trimPtr(update.Title, strings.TrimSpace)
	trimPtr(update.Description, strings.TrimSpace)
	trimPtr(update.Type, func(s string) string { return strings.ToLower(strings.TrimSpace(s)) })
	trimPtr(update.ListingType, func(s string) string { return strings.ToLower(strings.TrimSpace(s)) })
	trimPtr(update.Address, t.addr.NormalizeAddressComponent)
	trimPtr(update.City, t.addr.NormalizeAddressComponent)
	trimPtr(update.State, t.addr.NormalizeState)
	trimPtr(update.ZipCode, strings.TrimSpace)
	if update.Amenities != nil {
		update.Amenities = trimAll(update.Amenities)
	}
	if update.Tags != nil {
		update.Tags = trimAll(update.Tags)
	}
}

func trimPtr(s *string, fn func(string) string) {
	if s != nil {
		*s = fn(*s)
	}
}

// trimAll drops blank entries.
func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
