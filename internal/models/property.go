// internal/models/property.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ListingTypeSale = "sale"
	ListingTypeRent = "rent"
)

// PropertyTypes lists the accepted values of Property.Type.
var PropertyTypes = []string{"house", "apartment", "condo", "townhouse"}

// ListingTypes lists the accepted values of Property.ListingType.
var ListingTypes = []string{ListingTypeSale, ListingTypeRent}

type Property struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title         string             `json:"title" bson:"title"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	Type          string             `json:"type" bson:"type"`
	Price         float64            `json:"price" bson:"price"`
	Bedrooms      int                `json:"bedrooms" bson:"bedrooms"`
	Bathrooms     int                `json:"bathrooms" bson:"bathrooms"`
	AreaSqFt      float64            `json:"areaSqFt" bson:"areaSqFt"`
	Address       string             `json:"address,omitempty" bson:"address,omitempty"`
	State         string             `json:"state" bson:"state"`
	City          string             `json:"city" bson:"city"`
	ZipCode       string             `json:"zipCode,omitempty" bson:"zipCode,omitempty"`
	ListingType   string             `json:"listingType" bson:"listingType"`
	Furnished     bool               `json:"furnished" bson:"furnished"`
	IsVerified    bool               `json:"isVerified" bson:"isVerified"`
	Rating        float64            `json:"rating" bson:"rating"`
	Amenities     []string           `json:"amenities" bson:"amenities"`
	Tags          []string           `json:"tags" bson:"tags"`
	AvailableFrom *time.Time         `json:"availableFrom,omitempty" bson:"availableFrom,omitempty"`
	ListedBy      string             `json:"listedBy,omitempty" bson:"listedBy,omitempty"`
	ColorTheme    string             `json:"colorTheme,omitempty" bson:"colorTheme,omitempty"`
	CreatedBy     primitive.ObjectID `json:"createdBy" bson:"createdBy"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// PropertyInput is the create payload. The owner always comes from the authenticated user.
type PropertyInput struct {
	Title         string     `json:"title" validate:"required,notblank,max=200"`
	Description   string     `json:"description"`
	Type          string     `json:"type" validate:"required,oneof=house apartment condo townhouse"`
	Price         float64    `json:"price" validate:"gte=0"`
	Bedrooms      int        `json:"bedrooms" validate:"gte=0"`
	Bathrooms     int        `json:"bathrooms" validate:"gte=0"`
	AreaSqFt      float64    `json:"areaSqFt" validate:"gte=0"`
	Address       string     `json:"address"`
	State         string     `json:"state" validate:"required,notblank"`
	City          string     `json:"city" validate:"required,notblank"`
	ZipCode       string     `json:"zipCode"`
	ListingType   string     `json:"listingType" validate:"required,oneof=sale rent"`
	Furnished     bool       `json:"furnished"`
	IsVerified    bool       `json:"isVerified"`
	Rating        float64    `json:"rating" validate:"gte=0,lte=5"`
	Amenities     []string   `json:"amenities"`
	Tags          []string   `json:"tags"`
	AvailableFrom *time.Time `json:"availableFrom"`
	ListedBy      string     `json:"listedBy"`
	ColorTheme    string     `json:"colorTheme"`
}

// ToProperty builds a new, not yet persisted, record owned by owner.
func (in PropertyInput) ToProperty(owner primitive.ObjectID, now time.Time) *Property {
	return &Property{
		Title:         in.Title,
		Description:   in.Description,
		Type:          in.Type,
		Price:         in.Price,
		Bedrooms:      in.Bedrooms,
		Bathrooms:     in.Bathrooms,
		AreaSqFt:      in.AreaSqFt,
		Address:       in.Address,
		State:         in.State,
		City:          in.City,
		ZipCode:       in.ZipCode,
		ListingType:   in.ListingType,
		Furnished:     in.Furnished,
		IsVerified:    in.IsVerified,
		Rating:        in.Rating,
		Amenities:     dedupe(in.Amenities),
		Tags:          dedupe(in.Tags),
		AvailableFrom: in.AvailableFrom,
		ListedBy:      in.ListedBy,
		ColorTheme:    in.ColorTheme,
		CreatedBy:     owner,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// PropertyUpdate is a partial update: nil fields are left untouched.
type PropertyUpdate struct {
	Title         *string    `json:"title,omitempty" bson:"title,omitempty" validate:"omitempty,notblank,max=200"`
	Description   *string    `json:"description,omitempty" bson:"description,omitempty"`
	Type          *string    `json:"type,omitempty" bson:"type,omitempty" validate:"omitempty,oneof=house apartment condo townhouse"`
	Price         *float64   `json:"price,omitempty" bson:"price,omitempty" validate:"omitempty,gte=0"`
	Bedrooms      *int       `json:"bedrooms,omitempty" bson:"bedrooms,omitempty" validate:"omitempty,gte=0"`
	Bathrooms     *int       `json:"bathrooms,omitempty" bson:"bathrooms,omitempty" validate:"omitempty,gte=0"`
	AreaSqFt      *float64   `json:"areaSqFt,omitempty" bson:"areaSqFt,omitempty" validate:"omitempty,gte=0"`
	Address       *string    `json:"address,omitempty" bson:"address,omitempty"`
	State         *string    `json:"state,omitempty" bson:"state,omitempty" validate:"omitempty,notblank"`
	City          *string    `json:"city,omitempty" bson:"city,omitempty" validate:"omitempty,notblank"`
	ZipCode       *string    `json:"zipCode,omitempty" bson:"zipCode,omitempty"`
	ListingType   *string    `json:"listingType,omitempty" bson:"listingType,omitempty" validate:"omitempty,oneof=sale rent"`
	Furnished     *bool      `json:"furnished,omitempty" bson:"furnished,omitempty"`
	IsVerified    *bool      `json:"isVerified,omitempty" bson:"isVerified,omitempty"`
	Rating        *float64   `json:"rating,omitempty" bson:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Amenities     []string   `json:"amenities,omitempty" bson:"amenities,omitempty"`
	Tags          []string   `json:"tags,omitempty" bson:"tags,omitempty"`
	AvailableFrom *time.Time `json:"availableFrom,omitempty" bson:"availableFrom,omitempty"`
	ListedBy      *string    `json:"listedBy,omitempty" bson:"listedBy,omitempty"`
	ColorTheme    *string    `json:"colorTheme,omitempty" bson:"colorTheme,omitempty"`
}

// IsEmpty reports whether the update carries no field at all.
func (u PropertyUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Type == nil && u.Price == nil &&
		u.Bedrooms == nil && u.Bathrooms == nil && u.AreaSqFt == nil && u.Address == nil &&
		u.State == nil && u.City == nil && u.ZipCode == nil && u.ListingType == nil &&
		u.Furnished == nil && u.IsVerified == nil && u.Rating == nil && u.Amenities == nil &&
		u.Tags == nil && u.AvailableFrom == nil && u.ListedBy == nil && u.ColorTheme == nil
}

// Normalized returns the update with amenities and tags reduced to sets.
func (u PropertyUpdate) Normalized() PropertyUpdate {
	if u.Amenities != nil {
		u.Amenities = dedupe(u.Amenities)
	}
	if u.Tags != nil {
		u.Tags = dedupe(u.Tags)
	}
	return u
}

// Apply copies every set field onto p. Used by in-memory stores; Mongo applies the same
// document through $set.
func (u PropertyUpdate) Apply(p *Property) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Type != nil {
		p.Type = *u.Type
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Bedrooms != nil {
		p.Bedrooms = *u.Bedrooms
	}
	if u.Bathrooms != nil {
		p.Bathrooms = *u.Bathrooms
	}
	if u.AreaSqFt != nil {
		p.AreaSqFt = *u.AreaSqFt
	}
	if u.Address != nil {
		p.Address = *u.Address
	}
	if u.State != nil {
		p.State = *u.State
	}
	if u.City != nil {
		p.City = *u.City
	}
	if u.ZipCode != nil {
		p.ZipCode = *u.ZipCode
	}
	if u.ListingType != nil {
		p.ListingType = *u.ListingType
	}
	if u.Furnished != nil {
		p.Furnished = *u.Furnished
	}
	if u.IsVerified != nil {
		p.IsVerified = *u.IsVerified
	}
	if u.Rating != nil {
		p.Rating = *u.Rating
	}
	if u.Amenities != nil {
		p.Amenities = dedupe(u.Amenities)
	}
	if u.Tags != nil {
		p.Tags = dedupe(u.Tags)
	}
	if u.AvailableFrom != nil {
		p.AvailableFrom = u.AvailableFrom
	}
	if u.ListedBy != nil {
		p.ListedBy = *u.ListedBy
	}
	if u.ColorTheme != nil {
		p.ColorTheme = *u.ColorTheme
	}
}

// PropertySummary is the property detail attached to inbox entries.
type PropertySummary struct {
	ID          primitive.ObjectID `json:"_id"`
	Title       string             `json:"title"`
	Price       float64            `json:"price"`
	City        string             `json:"city"`
	State       string             `json:"state"`
	Type        string             `json:"type"`
	ListingType string             `json:"listingType"`
}

func (p *Property) Summary() *PropertySummary {
	return &PropertySummary{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		City:        p.City,
		State:       p.State,
		Type:        p.Type,
		ListingType: p.ListingType,
	}
}

// amenities and tags are sets.
func dedupe(values []string) []string {
	if values == nil {
		return []string{}
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
