package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/restaurants-starter/restaurants-service/internal/restaurant"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements Repository on a MongoDB collection. Documents are
// written with the bson layout declared on restaurant.Restaurant.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	return &MongoRepo{col: col}
}

// EnsureIndexes creates the lookup index on restaurant_id. The index is not
// unique: duplicate business ids are allowed.
func (m *MongoRepo) EnsureIndexes(ctx context.Context) error {
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "restaurant_id", Value: 1}},
		Options: options.Index().SetName("restaurant_id_1"),
	}
	if _, err := m.col.Indexes().CreateOne(ctx, idx); err != nil {
		return fmt.Errorf("create restaurant_id index: %w", err)
	}
	return nil
}

func (m *MongoRepo) Count(ctx context.Context) (int64, error) {
	return m.col.CountDocuments(ctx, bson.D{})
}

func (m *MongoRepo) FindByRestaurantID(ctx context.Context, restaurantID string) (*restaurant.Restaurant, error) {
	var r restaurant.Restaurant
	err := m.col.FindOne(ctx, bson.M{"restaurant_id": restaurantID}).Decode(&r)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	r.ApplyDefaults()
	return &r, nil
}

func (m *MongoRepo) Insert(ctx context.Context, r *restaurant.Restaurant) (*restaurant.Restaurant, error) {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	r.ApplyDefaults()
	if _, err := m.col.InsertOne(ctx, r); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateID, err)
		}
		return nil, err
	}
	return r, nil
}

func (m *MongoRepo) Save(ctx context.Context, r *restaurant.Restaurant) (*restaurant.Restaurant, error) {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	r.ApplyDefaults()
	opts := options.Replace().SetUpsert(true)
	if _, err := m.col.ReplaceOne(ctx, bson.M{"_id": r.ID}, r, opts); err != nil {
		return nil, err
	}
	return r, nil
}

func (m *MongoRepo) Delete(ctx context.Context, r *restaurant.Restaurant) error {
	_, err := m.col.DeleteOne(ctx, bson.M{"_id": r.ID})
	return err
}
