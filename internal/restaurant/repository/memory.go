package repository

import (
	"context"
	"sync"

	"github.com/restaurants-starter/restaurants-service/internal/restaurant"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-memory repository used when no MongoDB is configured
// and in unit tests. Stored records are clones, so callers never share state
// with the store.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[primitive.ObjectID]restaurant.Restaurant
	order []primitive.ObjectID
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[primitive.ObjectID]restaurant.Restaurant)}
}

func (m *MemoryRepo) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.store)), nil
}

func (m *MemoryRepo) FindByRestaurantID(ctx context.Context, restaurantID string) (*restaurant.Restaurant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	// insertion order, like Mongo's natural order for an unsorted findOne
	for _, id := range m.order {
		r := m.store[id]
		if r.RestaurantID == restaurantID {
			out := r.Clone()
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) Insert(ctx context.Context, r *restaurant.Restaurant) (*restaurant.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	if _, ok := m.store[r.ID]; ok {
		return nil, ErrDuplicateID
	}
	r.ApplyDefaults()
	m.store[r.ID] = r.Clone()
	m.order = append(m.order, r.ID)
	return r, nil
}

func (m *MemoryRepo) Save(ctx context.Context, r *restaurant.Restaurant) (*restaurant.Restaurant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	r.ApplyDefaults()
	if _, ok := m.store[r.ID]; !ok {
		m.order = append(m.order, r.ID)
	}
	m.store[r.ID] = r.Clone()
	return r, nil
}

func (m *MemoryRepo) Delete(ctx context.Context, r *restaurant.Restaurant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[r.ID]; !ok {
		return nil
	}
	delete(m.store, r.ID)
	for i, id := range m.order {
		if id == r.ID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}
