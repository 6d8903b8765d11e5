package repository

import (
	"context"
	"errors"

	"github.com/restaurants-starter/restaurants-service/internal/restaurant"
)

var (
	ErrNotFound    = errors.New("restaurant not found")
	ErrDuplicateID = errors.New("duplicate storage id")
)

// Repository is the collection-access capability shared by all requests.
// Implementations must be safe for concurrent use; no operation is
// transactional across calls.
type Repository interface {
	// Count returns the number of documents in the collection.
	Count(ctx context.Context) (int64, error)
	// FindByRestaurantID returns the first document whose business id matches,
	// or ErrNotFound.
	FindByRestaurantID(ctx context.Context, restaurantID string) (*restaurant.Restaurant, error)
	// Insert stores r, assigning a storage id when it has none.
	Insert(ctx context.Context, r *restaurant.Restaurant) (*restaurant.Restaurant, error)
	// Save replaces the document with r's storage id, inserting it if missing.
	Save(ctx context.Context, r *restaurant.Restaurant) (*restaurant.Restaurant, error)
	// Delete removes the document with r's storage id.
	Delete(ctx context.Context, r *restaurant.Restaurant) error
}
