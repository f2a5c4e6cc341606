package handlers

import (
	"context"
	"net/url"

	"estatehub/internal/auth"
	"estatehub/internal/models"
)

// Services consumed by the HTTP layer; implemented by internal/services.

type PropertyService interface {
	QueryProperties(ctx context.Context, params url.Values) ([]models.Property, error)
	GetProperty(ctx context.Context, id string) (*models.Property, error)
	CreateProperty(ctx context.Context, ownerID string, input *models.PropertyInput) (*models.Property, error)
	UpdateProperty(ctx context.Context, requesterID, id string, update *models.PropertyUpdate) (*models.Property, error)
	DeleteProperty(ctx context.Context, requesterID, id string) error
}

type FavoriteService interface {
	AddFavorite(ctx context.Context, userID, propertyID string) (*models.FavoritesSet, error)
	RemoveFavorite(ctx context.Context, userID, propertyID string) (*models.FavoritesSet, error)
	ListFavorites(ctx context.Context, userID string) ([]models.Property, error)
}

type RecommendationService interface {
	Recommend(ctx context.Context, senderID, recipientEmail, propertyID, message string) (*models.Recommendation, error)
	MarkRead(ctx context.Context, recipientID, entryID string) error
	ListReceived(ctx context.Context, recipientID string) ([]models.ReceivedRecommendation, error)
	ListSent(ctx context.Context, senderID string) ([]models.SentRecommendation, error)
}

type UserService interface {
	Register(ctx context.Context, name, email, password string) (*auth.TokenDetails, *models.User, error)
	Login(ctx context.Context, email, password string) (*auth.TokenDetails, *models.User, error)
	SearchByEmail(ctx context.Context, fragment string) ([]models.UserSummary, error)
}
