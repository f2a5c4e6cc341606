package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	apperrors "estatehub/internal/errors"
	"estatehub/internal/models"
	"estatehub/internal/utils"
	"estatehub/pkg/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var summaryProjection = bson.M{"name": 1, "email": 1}

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{
		collection: db.Collection(database.UsersCollection),
	}
}

func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userRepository) findOne(ctx context.Context, query bson.M) (*models.User, error) {
	var user models.User
	start := time.Now()
	err := r.collection.FindOne(ctx, query).Decode(&user)
	utils.ObserveMongo("find_one", database.UsersCollection, start, err)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return &user, nil
}

func (r *userRepository) FindSummaries(ctx context.Context, ids []primitive.ObjectID) ([]models.UserSummary, error) {
	if len(ids) == 0 {
		return []models.UserSummary{}, nil
	}
	return r.findSummaries(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetProjection(summaryProjection))
}

func (r *userRepository) SearchByEmail(ctx context.Context, fragment string, limit int) ([]models.UserSummary, error) {
	query := bson.M{"email": primitive.Regex{Pattern: regexp.QuoteMeta(fragment), Options: "i"}}
	opts := options.Find().
		SetProjection(summaryProjection).
		SetSort(bson.D{{Key: "email", Value: 1}}).
		SetLimit(int64(limit))
	return r.findSummaries(ctx, query, opts)
}

func (r *userRepository) findSummaries(ctx context.Context, query bson.M, opts *options.FindOptions) ([]models.UserSummary, error) {
	start := time.Now()
	cursor, err := r.collection.Find(ctx, query, opts)
	utils.ObserveMongo("find", database.UsersCollection, start, err)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	defer cursor.Close(ctx)

	summaries := []models.UserSummary{}
	start = time.Now()
	err = cursor.All(ctx, &summaries)
	utils.ObserveMongo("cursor_all", database.UsersCollection, start, err)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return summaries, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	if user.Favorites == nil {
		user.Favorites = []primitive.ObjectID{}
	}
	if user.RecommendationsReceived == nil {
		user.RecommendationsReceived = []models.Recommendation{}
	}
	start := time.Now()
	_, err := r.collection.InsertOne(ctx, user)
	utils.ObserveMongo("insert", database.UsersCollection, start, err)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", apperrors.ErrEmailTaken, user.Email)
		}
		return fmt.Errorf("database insert failed: %w", err)
	}
	return nil
}

func (r *userRepository) AddFavorite(ctx context.Context, userID, propertyID primitive.ObjectID) (*models.FavoritesSet, error) {
	// The $ne guard makes check-and-append a single atomic document write.
	query := bson.M{"_id": userID, "favorites": bson.M{"$ne": propertyID}}
	update := bson.M{
		"$push": bson.M{"favorites": propertyID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	set, err := r.updateFavorites(ctx, query, update)
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return set, err
	}

	// Nothing matched: either the user is gone or the id is already there.
	start := time.Now()
	n, countErr := r.collection.CountDocuments(ctx, bson.M{"_id": userID})
	utils.ObserveMongo("count_documents", database.UsersCollection, start, countErr)
	if countErr != nil {
		return nil, fmt.Errorf("database query failed: %w", countErr)
	}
	if n == 0 {
		return nil, apperrors.ErrUserNotFound
	}
	return nil, apperrors.ErrAlreadyFavorited
}

func (r *userRepository) RemoveFavorite(ctx context.Context, userID, propertyID primitive.ObjectID) (*models.FavoritesSet, error) {
	update := bson.M{
		"$pull": bson.M{"favorites": propertyID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	set, err := r.updateFavorites(ctx, bson.M{"_id": userID}, update)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrUserNotFound
	}
	return set, err
}

// updateFavorites returns mongo.ErrNoDocuments unwrapped when nothing matched.
func (r *userRepository) updateFavorites(ctx context.Context, query, update bson.M) (*models.FavoritesSet, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"favorites": 1})

	var user models.User
	start := time.Now()
	err := r.collection.FindOneAndUpdate(ctx, query, update, opts).Decode(&user)
	utils.ObserveMongo("find_one_and_update", database.UsersCollection, start, err)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		return nil, fmt.Errorf("database update failed: %w", err)
	}
	favorites := user.Favorites
	if favorites == nil {
		favorites = []primitive.ObjectID{}
	}
	return &models.FavoritesSet{UserID: user.ID, Favorites: favorites}, nil
}

func (r *userRepository) PushRecommendation(ctx context.Context, recipientID primitive.ObjectID, rec models.Recommendation) error {
	update := bson.M{"$push": bson.M{"recommendationsReceived": rec}}
	start := time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": recipientID}, update)
	utils.ObserveMongo("update_one", database.UsersCollection, start, err)
	if err != nil {
		return fmt.Errorf("database update failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrRecipientNotFound
	}
	return nil
}

func (r *userRepository) MarkRecommendationRead(ctx context.Context, recipientID, entryID primitive.ObjectID) error {
	query := bson.M{"_id": recipientID, "recommendationsReceived._id": entryID}
	update := bson.M{"$set": bson.M{"recommendationsReceived.$.status": models.RecommendationRead}}
	start := time.Now()
	result, err := r.collection.UpdateOne(ctx, query, update)
	utils.ObserveMongo("update_one", database.UsersCollection, start, err)
	if err != nil {
		return fmt.Errorf("database update failed: %w", err)
	}
	// Matched but unmodified means already read.
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrEntryNotFound, entryID.Hex())
	}
	return nil
}

func (r *userRepository) FindRecipientsOf(ctx context.Context, senderID primitive.ObjectID) ([]models.User, error) {
	opts := options.Find().
		SetProjection(bson.M{"name": 1, "email": 1, "recommendationsReceived": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	start := time.Now()
	cursor, err := r.collection.Find(ctx, bson.M{"recommendationsReceived.from": senderID}, opts)
	utils.ObserveMongo("find", database.UsersCollection, start, err)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	start = time.Now()
	err = cursor.All(ctx, &users)
	utils.ObserveMongo("cursor_all", database.UsersCollection, start, err)
	if err != nil {
		return nil, fmt.Errorf("database query failed: %w", err)
	}
	return users, nil
}
