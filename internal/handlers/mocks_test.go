package handlers_test

import (
	"context"
	"net/url"

	"estatehub/internal/auth"
	"estatehub/internal/models"

	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockPropertyService struct {
	mock.Mock
}

func (m *MockPropertyService) QueryProperties(ctx context.Context, params url.Values) ([]models.Property, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Property), args.Error(1)
}

func (m *MockPropertyService) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockPropertyService) CreateProperty(ctx context.Context, ownerID string, input *models.PropertyInput) (*models.Property, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockPropertyService) UpdateProperty(ctx context.Context, requesterID, id string, update *models.PropertyUpdate) (*models.Property, error) {
	args := m.Called(ctx, requesterID, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockPropertyService) DeleteProperty(ctx context.Context, requesterID, id string) error {
	args := m.Called(ctx, requesterID, id)
	return args.Error(0)
}

type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) AddFavorite(ctx context.Context, userID, propertyID string) (*models.FavoritesSet, error) {
	args := m.Called(ctx, userID, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FavoritesSet), args.Error(1)
}

func (m *MockFavoriteService) RemoveFavorite(ctx context.Context, userID, propertyID string) (*models.FavoritesSet, error) {
	args := m.Called(ctx, userID, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FavoritesSet), args.Error(1)
}

func (m *MockFavoriteService) ListFavorites(ctx context.Context, userID string) ([]models.Property, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Property), args.Error(1)
}

type MockRecommendationService struct {
	mock.Mock
}

func (m *MockRecommendationService) Recommend(ctx context.Context, senderID, recipientEmail, propertyID, message string) (*models.Recommendation, error) {
	args := m.Called(ctx, senderID, recipientEmail, propertyID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recommendation), args.Error(1)
}

func (m *MockRecommendationService) MarkRead(ctx context.Context, recipientID, entryID string) error {
	args := m.Called(ctx, recipientID, entryID)
	return args.Error(0)
}

func (m *MockRecommendationService) ListReceived(ctx context.Context, recipientID string) ([]models.ReceivedRecommendation, error) {
	args := m.Called(ctx, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReceivedRecommendation), args.Error(1)
}

func (m *MockRecommendationService) ListSent(ctx context.Context, senderID string) ([]models.SentRecommendation, error) {
	args := m.Called(ctx, senderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SentRecommendation), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, name, email, password string) (*auth.TokenDetails, *models.User, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(1) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*auth.TokenDetails), args.Get(1).(*models.User), args.Error(2)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*auth.TokenDetails, *models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*auth.TokenDetails), args.Get(1).(*models.User), args.Error(2)
}

func (m *MockUserService) SearchByEmail(ctx context.Context, fragment string) ([]models.UserSummary, error) {
	args := m.Called(ctx, fragment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserSummary), args.Error(1)
}
