package services

import (
	"context"

	"estatehub/internal/models"
	"estatehub/internal/repositories"
	"estatehub/internal/utils"
	"estatehub/pkg/cache"
	"estatehub/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FavoriteService struct {
	users      repositories.UserRepository
	properties repositories.PropertyRepository
	cache      *cache.ReadThrough
}

func NewFavoriteService(users repositories.UserRepository, properties repositories.PropertyRepository, rt *cache.ReadThrough) *FavoriteService {
	return &FavoriteService{
		users:      users,
		properties: properties,
		cache:      rt,
	}
}

// AddFavorite appends propertyID to the user's favorites. It fails with ErrPropertyNotFound
// for an unknown property and ErrAlreadyFavorited when the id is already present.
func (s *FavoriteService) AddFavorite(ctx context.Context, userID, propertyID string) (*models.FavoritesSet, error) {
	uid, pid, err := parseFavoriteIDs(userID, propertyID)
	if err != nil {
		return nil, err
	}

	if _, err := s.properties.FindByID(ctx, pid); err != nil {
		return nil, err
	}

	set, err := s.users.AddFavorite(ctx, uid, pid)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, cache.FavoritesKey(uid.Hex()))
	logger.GlobalLogger.Debugf("Favorite added: user=%s, property=%s", userID, propertyID)
	return set, nil
}

// RemoveFavorite drops propertyID from the user's favorites; an absent id is not an error.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, propertyID string) (*models.FavoritesSet, error) {
	uid, pid, err := parseFavoriteIDs(userID, propertyID)
	if err != nil {
		return nil, err
	}

	set, err := s.users.RemoveFavorite(ctx, uid, pid)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, cache.FavoritesKey(uid.Hex()))
	logger.GlobalLogger.Debugf("Favorite removed: user=%s, property=%s", userID, propertyID)
	return set, nil
}

// ListFavorites returns the user's favorited properties in favorite order. Ids whose
// property no longer exists are skipped.
func (s *FavoriteService) ListFavorites(ctx context.Context, userID string) ([]models.Property, error) {
	uid, err := utils.ParseObjectID("user id", userID)
	if err != nil {
		return nil, err
	}

	return cache.Resolve(ctx, s.cache, cache.FavoritesKey(uid.Hex()), func(ctx context.Context) ([]models.Property, error) {
		return s.loadFavorites(ctx, uid)
	})
}

func (s *FavoriteService) loadFavorites(ctx context.Context, uid primitive.ObjectID) ([]models.Property, error) {
	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	found, err := s.properties.FindByIDs(ctx, user.Favorites)
	if err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.Property, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	properties := make([]models.Property, 0, len(user.Favorites))
	for _, id := range user.Favorites {
		if p, ok := byID[id]; ok {
			properties = append(properties, p)
		}
	}
	return properties, nil
}

func parseFavoriteIDs(userID, propertyID string) (primitive.ObjectID, primitive.ObjectID, error) {
	uid, err := utils.ParseObjectID("user id", userID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	pid, err := utils.ParseObjectID("property id", propertyID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	return uid, pid, nil
}
