package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const RestroomsCollection = "restrooms"

// RestroomIndexes returns the index set the restrooms collection relies on.
func RestroomIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "location.coordinates", Value: "2dsphere"}},
			Options: options.Index().SetName("location_2dsphere"),
		},
		{
			Keys: bson.D{{Key: "dedupKey", Value: 1}},
			Options: options.Index().
				SetName("dedupKey_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"dedupKey": bson.M{
						"$exists": true,
					},
				}),
		},
	}
}

func EnsureRestroomIndexes(db *mongo.Database, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection(RestroomsCollection).Indexes()

	logger.Info("EnsureRestroomIndexes: creating indexes")
	names, err := indexes.CreateMany(ctx, RestroomIndexes())
	if err != nil {
		logger.Error("EnsureRestroomIndexes: index error", zap.Error(err))
		return err
	}
	logger.Info("EnsureRestroomIndexes: indexes created", zap.Strings("names", names))
	return nil
}
