package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"pottyspotty/internal/database"
	"pottyspotty/internal/models"
)

const queryTimeout = 5 * time.Second

// MongoStore keeps restrooms in a single MongoDB collection.
type MongoStore struct {
	db   *mongo.Database
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		db:   db,
		coll: db.Collection(database.RestroomsCollection),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *MongoStore) Ping(ctx context.Context) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return s.db.Client().Ping(checkCtx, readpref.Primary())
}

func (s *MongoStore) ListAll(ctx context.Context) ([]models.Restroom, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	return s.find(ctx, bson.M{}, opts)
}

func (s *MongoStore) ListInBounds(ctx context.Context, bounds models.Bounds) ([]models.Restroom, error) {
	if err := bounds.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return s.find(ctx, inBoundsFilter(bounds), options.Find())
}

func (s *MongoStore) ListNearby(ctx context.Context, lat, lng, maxDistanceKm float64, limit int) ([]models.Restroom, error) {
	maxDistanceKm, limit, err := NearbyParams(lat, lng, maxDistanceKm, limit)
	if err != nil {
		return nil, err
	}
	// $nearSphere already orders by distance.
	opts := options.Find().SetLimit(int64(limit))
	return s.find(ctx, nearbyFilter(lat, lng, maxDistanceKm), opts)
}

func (s *MongoStore) Exists(ctx context.Context, name, street, city string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	count, err := s.coll.CountDocuments(ctx, existsFilter(name, street, city), options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return count > 0, nil
}

func (s *MongoStore) Insert(ctx context.Context, restroom *models.Restroom) (models.Restroom, error) {
	doc, err := s.prepare(*restroom)
	if err != nil {
		return models.Restroom{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Restroom{}, ErrDuplicate
		}
		return models.Restroom{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		doc.ID = id
	}
	return doc, nil
}

func (s *MongoStore) ReplaceAll(ctx context.Context, restrooms []models.Restroom) (int, error) {
	docs := make([]interface{}, 0, len(restrooms))
	for _, r := range restrooms {
		doc, err := s.prepare(r)
		if err != nil {
			return 0, fmt.Errorf("restroom %q: %w", r.Name, err)
		}
		docs = append(docs, doc)
	}

	if _, err := s.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if len(docs) == 0 {
		return 0, nil
	}

	// Unordered so one duplicate row does not abort the rest of the batch.
	result, err := s.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		inserted := 0
		var bulkErr mongo.BulkWriteException
		if errors.As(err, &bulkErr) {
			inserted = len(docs) - len(bulkErr.WriteErrors)
		}
		if mongo.IsDuplicateKeyError(err) {
			return inserted, fmt.Errorf("%w: %d rows skipped", ErrDuplicate, len(docs)-inserted)
		}
		return inserted, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return len(result.InsertedIDs), nil
}

// prepare validates a restroom and stamps the fields the store owns.
func (s *MongoStore) prepare(r models.Restroom) (models.Restroom, error) {
	r.Name = strings.TrimSpace(r.Name)
	if err := validateRecord(r); err != nil {
		return models.Restroom{}, err
	}

	now := s.now()
	r.ID = primitive.NilObjectID
	r.DedupKey = models.DedupKey(r.Name, r.Address.Street, r.Address.City)
	r.CreatedAt = now
	r.UpdatedAt = now
	return r, nil
}

func (s *MongoStore) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Restroom, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	defer cursor.Close(ctx)

	restrooms := make([]models.Restroom, 0)
	if err := cursor.All(ctx, &restrooms); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrPersistence, err)
	}
	return restrooms, nil
}
