package service

import (
	"context"
	"errors"

	"github.com/restaurants-starter/restaurants-service/internal/restaurant"
	"github.com/restaurants-starter/restaurants-service/internal/restaurant/repository"
	"github.com/restaurants-starter/restaurants-service/pkg/logger"
	"github.com/restaurants-starter/restaurants-service/pkg/metrics"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound = errors.New("not found")
)

// UpdatedName is the name written by Update.
const UpdatedName = "Update"

// Service defines the restaurant operations used by the handler layer.
// Implementations hold no per-request state.
type Service interface {
	Count(ctx context.Context) (int64, error)
	Get(ctx context.Context, restaurantID string) (*restaurant.Restaurant, error)
	CreateSample(ctx context.Context) (*restaurant.Restaurant, error)
	Create(ctx context.Context, r *restaurant.Restaurant) (*restaurant.Restaurant, error)
	Delete(ctx context.Context, restaurantID string) error
	Update(ctx context.Context, restaurantID string) (*restaurant.Restaurant, error)
}

// New returns a Service on top of the given repository.
func New(repo repository.Repository) Service {
	return &restaurantService{repo: repo}
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService() Service {
	return New(repository.NewMemoryRepo())
}

// NewMongoService returns a Service backed by a MongoDB collection.
// Caller owns the client and is responsible for index creation.
func NewMongoService(col *mongo.Collection) Service {
	return New(repository.NewMongoRepo(col))
}

type restaurantService struct {
	repo repository.Repository
}

func observe(op string, err error) {
	result := "ok"
	switch {
	case errors.Is(err, repository.ErrNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
	}
	metrics.StoreOperations.WithLabelValues(op, result).Inc()
	if result == "error" {
		logger.Errorf("restaurants: %s failed: %v", op, err)
	}
}

func (s *restaurantService) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	observe("count", err)
	return n, err
}

func (s *restaurantService) Get(ctx context.Context, restaurantID string) (*restaurant.Restaurant, error) {
	r, err := s.repo.FindByRestaurantID(ctx, restaurantID)
	observe("find", err)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *restaurantService) CreateSample(ctx context.Context) (*restaurant.Restaurant, error) {
	r := restaurant.Sample()
	return s.Create(ctx, &r)
}

func (s *restaurantService) Create(ctx context.Context, r *restaurant.Restaurant) (*restaurant.Restaurant, error) {
	out, err := s.repo.Insert(ctx, r)
	observe("insert", err)
	if err != nil {
		return nil, err
	}
	logger.Debugf("restaurants: inserted %s (restaurant_id=%q)", out.ID.Hex(), out.RestaurantID)
	return out, nil
}

// Delete removes the first restaurant with the business id. A missing id is
// not an error.
func (s *restaurantService) Delete(ctx context.Context, restaurantID string) error {
	r, err := s.repo.FindByRestaurantID(ctx, restaurantID)
	observe("find", err)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	err = s.repo.Delete(ctx, r)
	observe("delete", err)
	if err == nil {
		logger.Debugf("restaurants: deleted %s (restaurant_id=%q)", r.ID.Hex(), restaurantID)
	}
	return err
}

// Update renames the restaurant to UpdatedName, keeping every other field.
// It returns (nil, nil) when no restaurant has the business id.
func (s *restaurantService) Update(ctx context.Context, restaurantID string) (*restaurant.Restaurant, error) {
	r, err := s.repo.FindByRestaurantID(ctx, restaurantID)
	observe("find", err)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	updated := r.WithName(UpdatedName)
	out, err := s.repo.Save(ctx, &updated)
	observe("save", err)
	if err != nil {
		return nil, err
	}
	return out, nil
}
