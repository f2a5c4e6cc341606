// Package filter compiles raw catalog query parameters into a canonical, order-independent
// predicate over properties.
package filter

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	apperrors "estatehub/internal/errors"
	"estatehub/internal/models"
)

type Op string

const (
	OpEq       Op = "eq"
	OpContains Op = "contains"
	OpGte      Op = "gte"
	OpRange    Op = "range"
)

// Property attribute names, as stored.
const (
	FieldTitle       = "title"
	FieldType        = "type"
	FieldState       = "state"
	FieldCity        = "city"
	FieldListingType = "listingType"
	FieldFurnished   = "furnished"
	FieldIsVerified  = "isVerified"
	FieldBedrooms    = "bedrooms"
	FieldBathrooms   = "bathrooms"
	FieldPrice       = "price"
	FieldAreaSqFt    = "areaSqFt"
	FieldRating      = "rating"
)

// Constraint is one attribute's predicate. Value is a string, bool or float64 for eq,
// a string for contains and a float64 for gte. Range uses Min and/or Max.
type Constraint struct {
	Op    Op          `json:"op"`
	Value interface{} `json:"value,omitempty"`
	Min   *float64    `json:"min,omitempty"`
	Max   *float64    `json:"max,omitempty"`
}

// Spec is a compiled filter: attribute name to constraint. The empty Spec matches everything.
type Spec struct {
	constraints map[string]Constraint
}

var exactStringParams = []string{FieldType, FieldState, FieldCity, FieldListingType}

var booleanParams = []string{FieldFurnished, FieldIsVerified}

var minimumParams = []string{FieldBedrooms, FieldBathrooms}

var rangeParams = []struct {
	min, max, field string
}{
	{"minPrice", "maxPrice", FieldPrice},
	{"minArea", "maxArea", FieldAreaSqFt},
}

// Compile builds a Spec from query parameters. Only the first value of a repeated parameter
// is used; absent, blank and unknown parameters are ignored.
func Compile(params url.Values) (*Spec, error) {
	spec := &Spec{constraints: make(map[string]Constraint)}

	// Matching is case-insensitive, so case must not split the cache key.
	if search := strings.ToLower(param(params, "search")); search != "" {
		spec.constraints[FieldTitle] = Constraint{Op: OpContains, Value: search}
	}

	for _, name := range exactStringParams {
		if v := param(params, name); v != "" {
			spec.constraints[name] = Constraint{Op: OpEq, Value: v}
		}
	}

	for _, name := range booleanParams {
		if v := param(params, name); v != "" {
			spec.constraints[name] = Constraint{Op: OpEq, Value: v == "true"}
		}
	}

	for _, name := range minimumParams {
		n, ok, err := number(params, name)
		if err != nil {
			return nil, err
		}
		if ok {
			spec.constraints[name] = Constraint{Op: OpGte, Value: n}
		}
	}

	for _, r := range rangeParams {
		lo, hasLo, err := number(params, r.min)
		if err != nil {
			return nil, err
		}
		hi, hasHi, err := number(params, r.max)
		if err != nil {
			return nil, err
		}
		if !hasLo && !hasHi {
			continue
		}
		c := Constraint{Op: OpRange}
		if hasLo {
			c.Min = &lo
		}
		if hasHi {
			c.Max = &hi
		}
		spec.constraints[r.field] = c
	}

	rating, ok, err := number(params, FieldRating)
	if err != nil {
		return nil, err
	}
	if ok {
		spec.constraints[FieldRating] = Constraint{Op: OpEq, Value: rating}
	}

	return spec, nil
}

func param(params url.Values, name string) string {
	return strings.TrimSpace(params.Get(name))
}

func number(params url.Values, name string) (float64, bool, error) {
	raw := param(params, name)
	if raw == "" {
		return 0, false, nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false, fmt.Errorf("%w: %s must be a number, got %q", apperrors.ErrInvalidFilter, name, raw)
	}
	return n, true, nil
}

// Len is the number of constrained attributes.
func (s *Spec) Len() int {
	return len(s.constraints)
}

// Fields returns the constrained attribute names in sorted order.
func (s *Spec) Fields() []string {
	fields := make([]string, 0, len(s.constraints))
	for f := range s.constraints {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Constraint returns the constraint on field, if any.
func (s *Spec) Constraint(field string) (Constraint, bool) {
	c, ok := s.constraints[field]
	return c, ok
}

// CanonicalJSON encodes the spec with sorted keys and no insignificant whitespace, so two
// specs built from the same parameters in any order encode identically.
func (s *Spec) CanonicalJSON() ([]byte, error) {
	// encoding/json writes map keys in sorted order.
	return json.Marshal(s.constraints)
}

func (s *Spec) String() string {
	raw, err := s.CanonicalJSON()
	if err != nil {
		return fmt.Sprintf("filter(%d fields)", len(s.constraints))
	}
	return string(raw)
}

// Matches evaluates the spec against p in memory.
func (s *Spec) Matches(p *models.Property) bool {
	for field, c := range s.constraints {
		if !c.matches(fieldValue(p, field)) {
			return false
		}
	}
	return true
}

func fieldValue(p *models.Property, field string) interface{} {
	switch field {
	case FieldTitle:
		return p.Title
	case FieldType:
		return p.Type
	case FieldState:
		return p.State
	case FieldCity:
		return p.City
	case FieldListingType:
		return p.ListingType
	case FieldFurnished:
		return p.Furnished
	case FieldIsVerified:
		return p.IsVerified
	case FieldBedrooms:
		return float64(p.Bedrooms)
	case FieldBathrooms:
		return float64(p.Bathrooms)
	case FieldPrice:
		return p.Price
	case FieldAreaSqFt:
		return p.AreaSqFt
	case FieldRating:
		return p.Rating
	}
	return nil
}

func (c Constraint) matches(actual interface{}) bool {
	switch c.Op {
	case OpEq:
		return actual == c.Value
	case OpContains:
		text, ok := actual.(string)
		needle, _ := c.Value.(string)
		return ok && strings.Contains(strings.ToLower(text), strings.ToLower(needle))
	case OpGte:
		n, ok := actual.(float64)
		floor, _ := c.Value.(float64)
		return ok && n >= floor
	case OpRange:
		n, ok := actual.(float64)
		if !ok {
			return false
		}
		if c.Min != nil && n < *c.Min {
			return false
		}
		if c.Max != nil && n > *c.Max {
			return false
		}
		return true
	}
	return false
}
