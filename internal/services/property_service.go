package services

import (
	"context"
	"fmt"
	"net/url"
	"time"

	apperrors "estatehub/internal/errors"
	"estatehub/internal/filter"
	"estatehub/internal/models"
	"estatehub/internal/repositories"
	"estatehub/internal/transformers"
	"estatehub/internal/utils"
	"estatehub/internal/validators"
	"estatehub/pkg/cache"
	"estatehub/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PropertyService struct {
	repo      repositories.PropertyRepository
	cache     *cache.ReadThrough
	trans     transformers.PropertyTransformer
	validator validators.PropertyValidator
	now       func() time.Time
}

func NewPropertyService(
	repo repositories.PropertyRepository,
	rt *cache.ReadThrough,
	trans transformers.PropertyTransformer,
	validator validators.PropertyValidator,
) *PropertyService {
	return &PropertyService{
		repo:      repo,
		cache:     rt,
		trans:     trans,
		validator: validator,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// QueryProperties compiles params into a filter and serves the matching properties through
// the read-through cache.
func (s *PropertyService) QueryProperties(ctx context.Context, params url.Values) ([]models.Property, error) {
	spec, err := filter.Compile(params)
	if err != nil {
		return nil, err
	}

	load := func(ctx context.Context) ([]models.Property, error) {
		return s.repo.Find(ctx, spec)
	}

	key, err := cache.PropertiesKey(spec)
	if err != nil {
		logger.GlobalLogger.Warnf("Skipping cache for filter %s: %v", spec, err)
		return load(ctx)
	}
	return cache.Resolve(ctx, s.cache, key, load)
}

// GetProperty reads a single property straight from the store.
func (s *PropertyService) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	pid, err := utils.ParseObjectID("property id", id)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, pid)
}

func (s *PropertyService) CreateProperty(ctx context.Context, ownerID string, input *models.PropertyInput) (*models.Property, error) {
	owner, err := utils.ParseObjectID("owner id", ownerID)
	if err != nil {
		return nil, err
	}

	s.trans.NormalizeInput(input)
	if err := s.validator.ValidateCreate(input); err != nil {
		return nil, err
	}

	property := input.ToProperty(owner, s.now())
	if err := s.repo.Create(ctx, property); err != nil {
		return nil, utils.WrapError(err, "create property")
	}

	s.cache.Invalidate(ctx, cache.PropertiesPattern)
	logger.GlobalLogger.Printf("Property created: id=%s, owner=%s", property.ID.Hex(), ownerID)
	return property, nil
}

func (s *PropertyService) UpdateProperty(ctx context.Context, requesterID, id string, update *models.PropertyUpdate) (*models.Property, error) {
	if update == nil {
		update = &models.PropertyUpdate{}
	}
	s.trans.NormalizeUpdate(update)
	if err := s.validator.ValidateUpdate(update); err != nil {
		return nil, err
	}

	pid, err := s.authorize(ctx, requesterID, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, pid, update.Normalized(), s.now())
	if err != nil {
		return nil, utils.WrapError(err, "update property %s", id)
	}

	s.invalidateAfterChange(ctx)
	logger.GlobalLogger.Printf("Property updated: id=%s", id)
	return updated, nil
}

func (s *PropertyService) DeleteProperty(ctx context.Context, requesterID, id string) error {
	pid, err := s.authorize(ctx, requesterID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, pid); err != nil {
		return utils.WrapError(err, "delete property %s", id)
	}

	s.invalidateAfterChange(ctx)
	logger.GlobalLogger.Printf("Property deleted: id=%s", id)
	return nil
}

// authorize checks ownership against the store, never the cache.
func (s *PropertyService) authorize(ctx context.Context, requesterID, id string) (primitive.ObjectID, error) {
	requester, err := utils.ParseObjectID("user id", requesterID)
	if err != nil {
		return primitive.NilObjectID, err
	}
	pid, err := utils.ParseObjectID("property id", id)
	if err != nil {
		return primitive.NilObjectID, err
	}

	existing, err := s.repo.FindByID(ctx, pid)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if existing.CreatedBy != requester {
		return primitive.NilObjectID, fmt.Errorf("%w: property %s", apperrors.ErrUnauthorized, id)
	}
	return pid, nil
}

// Favorites lists embed property details, so they go stale with the catalog.
func (s *PropertyService) invalidateAfterChange(ctx context.Context) {
	s.cache.Invalidate(ctx, cache.PropertiesPattern)
	s.cache.Invalidate(ctx, cache.AllFavoritesPattern)
}
