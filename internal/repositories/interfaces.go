package repositories

import (
	"context"
	"time"

	"estatehub/internal/filter"
	"estatehub/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PropertyRepository is the Catalog Store. Lookups of a missing id fail with
// errors.ErrPropertyNotFound.
type PropertyRepository interface {
	Find(ctx context.Context, spec *filter.Spec) ([]models.Property, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error)
	// FindByIDs returns the existing properties among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Property, error)
	Create(ctx context.Context, property *models.Property) error
	Update(ctx context.Context, id primitive.ObjectID, update models.PropertyUpdate, now time.Time) (*models.Property, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UserRepository defines the interface for user data operations, including the favorites
// set and recommendation inbox embedded in each user document.
type UserRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindSummaries(ctx context.Context, ids []primitive.ObjectID) ([]models.UserSummary, error)
	SearchByEmail(ctx context.Context, fragment string, limit int) ([]models.UserSummary, error)
	Create(ctx context.Context, user *models.User) error

	// AddFavorite appends propertyID unless already present (errors.ErrAlreadyFavorited).
	AddFavorite(ctx context.Context, userID, propertyID primitive.ObjectID) (*models.FavoritesSet, error)
	RemoveFavorite(ctx context.Context, userID, propertyID primitive.ObjectID) (*models.FavoritesSet, error)

	PushRecommendation(ctx context.Context, recipientID primitive.ObjectID, rec models.Recommendation) error
	// MarkRecommendationRead fails with errors.ErrEntryNotFound unless entryID is in recipientID's inbox.
	MarkRecommendationRead(ctx context.Context, recipientID, entryID primitive.ObjectID) error
	// FindRecipientsOf returns every user holding at least one entry sent by senderID.
	FindRecipientsOf(ctx context.Context, senderID primitive.ObjectID) ([]models.User, error)
}
