package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "estatehub/internal/errors"
	"estatehub/internal/filter"
	"estatehub/internal/models"
	"estatehub/internal/utils"
	"estatehub/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type propertyRepository struct {
	collection *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) PropertyRepository {
	return &propertyRepository{
		collection: db.Collection(database.PropertiesCollection),
	}
}

func (r *propertyRepository) Find(ctx context.Context, spec *filter.Spec) ([]models.Property, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	start := time.Now()
	cursor, err := r.collection.Find(ctx, filterToBSON(spec), findOptions)
	utils.ObserveMongo("find", database.PropertiesCollection, start, err)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return r.decodeAll(ctx, cursor)
}

func (r *propertyRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Property, error) {
	start := time.Now()
	var property models.Property
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	utils.ObserveMongo("find_one", database.PropertiesCollection, start, err)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrPropertyNotFound, id.Hex())
		}
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &property, nil
}

func (r *propertyRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Property, error) {
	if len(ids) == 0 {
		return []models.Property{}, nil
	}
	start := time.Now()
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	utils.ObserveMongo("find", database.PropertiesCollection, start, err)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return r.decodeAll(ctx, cursor)
}

func (r *propertyRepository) decodeAll(ctx context.Context, cursor *mongo.Cursor) ([]models.Property, error) {
	defer cursor.Close(ctx)

	properties := []models.Property{}
	start := time.Now()
	err := cursor.All(ctx, &properties)
	utils.ObserveMongo("cursor_all", database.PropertiesCollection, start, err)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return properties, nil
}

func (r *propertyRepository) Create(ctx context.Context, property *models.Property) error {
	property.ID = primitive.NewObjectID()
	start := time.Now()
	_, err := r.collection.InsertOne(ctx, property)
	utils.ObserveMongo("insert", database.PropertiesCollection, start, err)
	if err != nil {
		return fmt.Errorf("database insert failed: %w", err)
	}
	return nil
}

func (r *propertyRepository) Update(ctx context.Context, id primitive.ObjectID, update models.PropertyUpdate, now time.Time) (*models.Property, error) {
	set, err := updateToBSON(update)
	if err != nil {
		return nil, err
	}
	set["updatedAt"] = now

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	start := time.Now()
	var property models.Property
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&property)
	utils.ObserveMongo("find_one_and_update", database.PropertiesCollection, start, err)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrPropertyNotFound, id.Hex())
		}
		return nil, fmt.Errorf("database update failed: %w", err)
	}
	return &property, nil
}

func (r *propertyRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	start := time.Now()
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	utils.ObserveMongo("delete_one", database.PropertiesCollection, start, err)
	if err != nil {
		return fmt.Errorf("database delete failed: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrPropertyNotFound, id.Hex())
	}
	return nil
}

// updateToBSON renders the set fields of update as a $set document. Explicitly emptied
// amenities or tags survive, which omitempty alone would drop.
func updateToBSON(update models.PropertyUpdate) (bson.M, error) {
	raw, err := bson.Marshal(update)
	if err != nil {
		return nil, fmt.Errorf("encode property update: %w", err)
	}
	set := bson.M{}
	if err := bson.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("encode property update: %w", err)
	}
	if update.Amenities != nil {
		set["amenities"] = update.Amenities
	}
	if update.Tags != nil {
		set["tags"] = update.Tags
	}
	return set, nil
}
