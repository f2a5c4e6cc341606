package repositories

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "estatehub/internal/errors"
	"estatehub/internal/models"
	"estatehub/pkg/database"
)

// testDatabase connects to MONGO_URI and returns a throwaway database, dropped on cleanup.
func testDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set; skipping MongoDB integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	db := client.Database(fmt.Sprintf("estatehub_test_%d", time.Now().UnixNano()))
	require.NoError(t, database.EnsureIndexes(db))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func TestMongoPropertyRepository(t *testing.T) {
	db := testDatabase(t)
	repo := NewPropertyRepository(db)
	ctx := context.Background()
	owner := primitive.NewObjectID()

	cheap := &models.Property{Title: "Cozy flat", City: "Austin", Price: 250000, Bedrooms: 3, CreatedBy: owner}
	pricey := &models.Property{Title: "Penthouse", City: "Austin", Price: 600000, Bedrooms: 3, CreatedBy: owner}
	require.NoError(t, repo.Create(ctx, cheap))
	require.NoError(t, repo.Create(ctx, pricey))

	found, err := repo.Find(ctx, compile(t, "minPrice=100000&maxPrice=500000&bedrooms=2"))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, cheap.ID, found[0].ID)

	found, err = repo.Find(ctx, compile(t, "search=HOUSE"))
	require.NoError(t, err)
	assert.Empty(t, found)

	price := 450000.0
	updated, err := repo.Update(ctx, pricey.ID, models.PropertyUpdate{Price: &price}, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, price, updated.Price)
	assert.Equal(t, "Penthouse", updated.Title)

	byIDs, err := repo.FindByIDs(ctx, []primitive.ObjectID{cheap.ID, primitive.NewObjectID()})
	require.NoError(t, err)
	assert.Len(t, byIDs, 1)

	require.NoError(t, repo.Delete(ctx, cheap.ID))
	_, err = repo.FindByID(ctx, cheap.ID)
	assert.ErrorIs(t, err, apperrors.ErrPropertyNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, cheap.ID), apperrors.ErrPropertyNotFound)
}

func TestMongoUserRepository_FavoritesAndInbox(t *testing.T) {
	db := testDatabase(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	alice := &models.User{Name: "Alice", Email: "alice@example.com", Password: "x"}
	bob := &models.User{Name: "Bob", Email: "bob@example.com", Password: "x"}
	require.NoError(t, users.Create(ctx, alice))
	require.NoError(t, users.Create(ctx, bob))
	assert.ErrorIs(t, users.Create(ctx, &models.User{Email: "bob@example.com"}), apperrors.ErrEmailTaken)

	pid := primitive.NewObjectID()
	set, err := users.AddFavorite(ctx, alice.ID, pid)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{pid}, set.Favorites)

	_, err = users.AddFavorite(ctx, alice.ID, pid)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyFavorited)
	_, err = users.AddFavorite(ctx, primitive.NewObjectID(), pid)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	set, err = users.RemoveFavorite(ctx, alice.ID, primitive.NewObjectID())
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{pid}, set.Favorites)

	entry := models.Recommendation{
		ID:            primitive.NewObjectID(),
		From:          alice.ID,
		Property:      pid,
		Message:       "Check this out",
		Status:        models.RecommendationUnread,
		RecommendedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	require.NoError(t, users.PushRecommendation(ctx, bob.ID, entry))

	require.NoError(t, users.MarkRecommendationRead(ctx, bob.ID, entry.ID))
	require.NoError(t, users.MarkRecommendationRead(ctx, bob.ID, entry.ID))
	assert.ErrorIs(t, users.MarkRecommendationRead(ctx, alice.ID, entry.ID), apperrors.ErrEntryNotFound)

	recipients, err := users.FindRecipientsOf(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	assert.Equal(t, "bob@example.com", recipients[0].Email)
	require.Len(t, recipients[0].RecommendationsReceived, 1)
	assert.Equal(t, models.RecommendationRead, recipients[0].RecommendationsReceived[0].Status)

	found, err := users.SearchByEmail(ctx, "EXAMPLE.", 5)
	require.NoError(t, err)
	assert.Len(t, found, 2)
}
