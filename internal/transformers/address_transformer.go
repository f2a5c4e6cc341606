package transformers

import (
	"strings"
)

type addressTransformer struct{}

func NewAddressTransformer() AddressTransformer {
	return &addressTransformer{}
}

// NormalizeAddressComponent trims and collapses inner whitespace. Case is kept since city
// filters match exactly.
func (t *addressTransformer) NormalizeAddressComponent(input string) string {
	return strings.Join(strings.Fields(input), " ")
}

// NormalizeState upper-cases two-letter state codes and leaves full names as typed.
func (t *addressTransformer) NormalizeState(input string) string {
	state := t.NormalizeAddressComponent(input)
	if len(state) == 2 {
		return strings.ToUpper(state)
	}
	return state
}
