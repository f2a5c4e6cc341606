package utils

import (
	"errors"
	"time"

	"estatehub/pkg/metrics"

	"go.mongodb.org/mongo-driver/mongo"
)

func RecordMongoOperationDuration(operation, collection string, start time.Time) {
	duration := time.Since(start).Seconds()
	metrics.MongoOperationDuration.WithLabelValues(operation, collection).Observe(duration)
}

func RecordMongoError(operation, collection string) {
	metrics.MongoErrorsTotal.WithLabelValues(operation, collection).Inc()
}

// ObserveMongo records the duration of a MongoDB call and counts it as an error unless it
// succeeded or simply found nothing.
func ObserveMongo(operation, collection string, start time.Time, err error) {
	RecordMongoOperationDuration(operation, collection, start)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		RecordMongoError(operation, collection)
	}
}
