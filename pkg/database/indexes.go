package database

import (
	"context"
	"time"

	"estatehub/pkg/logger"
	"estatehub/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PropertyIndexes back the equality/range attributes the catalog filter compiles to.
func PropertyIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "city", Value: 1}, {Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "state", Value: 1}}},
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "listingType", Value: 1}}},
		{Keys: bson.D{{Key: "bedrooms", Value: 1}}},
		{Keys: bson.D{{Key: "createdBy", Value: 1}}},
	}
}

// UserIndexes include the multikey index on inbox senders that serves the "sent" projection.
func UserIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "recommendationsReceived.from", Value: 1}}},
	}
}

// EnsureIndexes creates the catalog and user indexes.
func EnsureIndexes(db *mongo.Database) error {
	if err := createIndexes(db, PropertiesCollection, PropertyIndexes()); err != nil {
		return err
	}
	return createIndexes(db, UsersCollection, UserIndexes())
}

func createIndexes(db *mongo.Database, collection string, models []mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	start := time.Now()
	_, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
	metrics.MongoOperationDuration.WithLabelValues("create_indexes", collection).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("create_indexes", collection).Inc()
		logger.GlobalLogger.Errorf("Failed to create indexes on %s: %v", collection, err)
		return err
	}

	logger.GlobalLogger.Printf("MongoDB indexes on %s created successfully.", collection)
	return nil
}
