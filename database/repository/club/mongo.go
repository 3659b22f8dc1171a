package clubRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoStore implements Store using MongoDB.
type MongoStore struct {
	memberships  *mongo.Collection
	profiles     *mongo.Collection
	staff        *mongo.Collection
	units        *mongo.Collection
	catalog      *mongo.Collection
	reservations *mongo.Collection
	enrollments  *mongo.Collection
	lockers      *mongo.Collection
	rentals      *mongo.Collection
	statements   *mongo.Collection
	payments     *mongo.Collection
}

// NewMongoStore creates a Store backed by the named database.
func NewMongoStore(client *mongo.Client, dbName string, logger *zap.Logger) *MongoStore {
	db := client.Database(dbName)
	s := &MongoStore{
		memberships:  db.Collection("memberships"),
		profiles:     db.Collection("profiles"),
		staff:        db.Collection("staff"),
		units:        db.Collection("units"),
		catalog:      db.Collection("catalog"),
		reservations: db.Collection("reservations"),
		enrollments:  db.Collection("enrollments"),
		lockers:      db.Collection("lockers"),
		rentals:      db.Collection("rentals"),
		statements:   db.Collection("statements"),
		payments:     db.Collection("payments"),
	}
	if err := s.ensureIndexes(); err != nil {
		logger.Warn("failed to create indexes", zap.Error(err))
	}
	return s
}

// newContext derives a context with the given timeout.
func newContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

func findOne(ctx context.Context, coll *mongo.Collection, filter bson.M, out interface{}) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	err := coll.FindOne(ctx, filter).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", coll.Name(), err)
	}
	return nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", coll.Name(), err)
	}
	return out, nil
}

func insert(ctx context.Context, coll *mongo.Collection, doc interface{}) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", coll.Name(), err)
	}
	return nil
}

func updateOne(ctx context.Context, coll *mongo.Collection, filter, update bson.M) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", coll.Name(), err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (s *MongoStore) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	unique := func(keys ...string) mongo.IndexModel {
		d := bson.D{}
		for _, k := range keys {
			d = append(d, bson.E{Key: k, Value: 1})
		}
		return mongo.IndexModel{Keys: d, Options: options.Index().SetUnique(true)}
	}
	plain := func(keys ...string) mongo.IndexModel {
		d := bson.D{}
		for _, k := range keys {
			d = append(d, bson.E{Key: k, Value: 1})
		}
		return mongo.IndexModel{Keys: d}
	}

	indexes := map[*mongo.Collection][]mongo.IndexModel{
		s.memberships:  {unique("id"), unique("number")},
		s.profiles:     {unique("id"), plain("membership_id")},
		s.staff:        {unique("id"), unique("username")},
		s.units:        {unique("id"), unique("name")},
		s.catalog:      {unique("id"), plain("unit")},
		s.reservations: {unique("id"), plain("user_id"), plain("service_id", "date", "start_time"), plain("resource_id", "date", "start_time")},
		s.enrollments:  {unique("id"), unique("user_id", "activity_id")},
		s.lockers:      {unique("id"), plain("unit_id")},
		s.rentals:      {unique("id"), plain("user_id"), plain("locker_id", "status")},
		s.statements:   {unique("membership_id")},
		s.payments:     {unique("id"), plain("membership_id")},
	}
	for coll, models := range indexes {
		if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll.Name(), err)
		}
	}
	return nil
}
