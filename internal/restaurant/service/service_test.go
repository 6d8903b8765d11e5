package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/restaurants-starter/restaurants-service/internal/restaurant"
	"github.com/restaurants-starter/restaurants-service/internal/restaurant/repository"
	"github.com/restaurants-starter/restaurants-service/pkg/metrics"
	"github.com/stretchr/testify/require"
)

// failingRepo returns err from every call
type failingRepo struct {
	err error
}

func (f *failingRepo) Count(ctx context.Context) (int64, error) { return 0, f.err }
func (f *failingRepo) FindByRestaurantID(ctx context.Context, id string) (*restaurant.Restaurant, error) {
	return nil, f.err
}
func (f *failingRepo) Insert(ctx context.Context, r *restaurant.Restaurant) (*restaurant.Restaurant, error) {
	return nil, f.err
}
func (f *failingRepo) Save(ctx context.Context, r *restaurant.Restaurant) (*restaurant.Restaurant, error) {
	return nil, f.err
}
func (f *failingRepo) Delete(ctx context.Context, r *restaurant.Restaurant) error { return f.err }

func insert(t *testing.T, svc Service, id, name string) *restaurant.Restaurant {
	t.Helper()
	r := restaurant.New()
	r.RestaurantID = id
	r.Name = name
	out, err := svc.Create(context.Background(), &r)
	require.NoError(t, err)
	return out
}

func count(t *testing.T, svc Service) int64 {
	t.Helper()
	n, err := svc.Count(context.Background())
	require.NoError(t, err)
	return n
}

func TestGetRoundTrip(t *testing.T) {
	svc := NewMemoryService()
	r := restaurant.New()
	r.RestaurantID = "40356018"
	r.Name = "Riviera Caterer"
	r.Borough = "Brooklyn"
	r.Cuisine = "American"
	r.Address = restaurant.Address{Building: "2780", Street: "Stillwell Avenue", Zipcode: "11224", Coordinate: []float64{-73.98241999999999, 40.579505}}
	r.Grades = []restaurant.Grade{
		{Date: time.Date(2014, 6, 10, 0, 0, 0, 0, time.UTC), Rating: "A", Score: 5},
		{Date: time.Date(2013, 6, 5, 0, 0, 0, 0, time.UTC), Rating: "A", Score: 7},
	}
	want := r.Clone()

	created, err := svc.Create(context.Background(), &r)
	require.NoError(t, err)
	want.ID = created.ID

	got, err := svc.Get(context.Background(), "40356018")
	require.NoError(t, err)
	require.Equal(t, want, *got)
}

func TestGetUnknown(t *testing.T) {
	svc := NewMemoryService()
	_, err := svc.Get(context.Background(), "never-inserted")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCountArithmetic(t *testing.T) {
	svc := NewMemoryService()
	insert(t, svc, "pre", "existing")
	before := count(t, svc)

	for _, id := range []string{"a", "b", "c", "d"} {
		insert(t, svc, id, id)
	}
	for _, id := range []string{"a", "c"} {
		require.NoError(t, svc.Delete(context.Background(), id))
	}
	require.Equal(t, before+4-2, count(t, svc))
}

func TestDeleteUnknownIsNoop(t *testing.T) {
	svc := NewMemoryService()
	insert(t, svc, "1", "A")
	require.NoError(t, svc.Delete(context.Background(), "missing"))
	require.EqualValues(t, 1, count(t, svc))
}

func TestUpdateChangesOnlyName(t *testing.T) {
	svc := NewMemoryService()
	r := restaurant.New()
	r.RestaurantID = "9"
	r.Name = "Original"
	r.Borough = "Manhattan"
	r.Cuisine = "Irish"
	r.Address.Coordinate = []float64{-73.9, 40.7}
	r.Grades = []restaurant.Grade{{Date: time.Date(2014, 9, 6, 0, 0, 0, 0, time.UTC), Rating: "B", Score: 14}}
	created, err := svc.Create(context.Background(), &r)
	require.NoError(t, err)
	before := created.Clone()

	updated, err := svc.Update(context.Background(), "9")
	require.NoError(t, err)
	require.Equal(t, UpdatedName, updated.Name)

	got, err := svc.Get(context.Background(), "9")
	require.NoError(t, err)
	require.Equal(t, before.WithName(UpdatedName), *got)
	require.EqualValues(t, 1, count(t, svc))
}

func TestUpdateUnknownReturnsNil(t *testing.T) {
	svc := NewMemoryService()
	insert(t, svc, "1", "A")
	got, err := svc.Update(context.Background(), "missing")
	require.NoError(t, err)
	require.Nil(t, got)

	still, err := svc.Get(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, "A", still.Name)
	require.EqualValues(t, 1, count(t, svc))
}

func TestCreateSampleAllowsDuplicates(t *testing.T) {
	svc := NewMemoryService()
	before := count(t, svc)
	a, err := svc.CreateSample(context.Background())
	require.NoError(t, err)
	b, err := svc.CreateSample(context.Background())
	require.NoError(t, err)

	require.Equal(t, "33332", a.RestaurantID)
	require.Equal(t, "33332", b.RestaurantID)
	require.Equal(t, "sample", a.Name)
	require.NotEqual(t, a.ID, b.ID)
	require.Equal(t, before+2, count(t, svc))
}

func TestStoreFaultsPropagate(t *testing.T) {
	boom := errors.New("connection refused")
	svc := New(&failingRepo{err: boom})
	ctx := context.Background()

	errBefore := testutil.ToFloat64(metrics.StoreOperations.WithLabelValues("find", "error"))

	_, err := svc.Count(ctx)
	require.ErrorIs(t, err, boom)
	_, err = svc.Get(ctx, "1")
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, ErrNotFound)
	_, err = svc.CreateSample(ctx)
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, svc.Delete(ctx, "1"), boom)
	_, err = svc.Update(ctx, "1")
	require.ErrorIs(t, err, boom)

	require.Equal(t, errBefore+3, testutil.ToFloat64(metrics.StoreOperations.WithLabelValues("find", "error")))
}

func TestNotFoundIsCounted(t *testing.T) {
	svc := New(repository.NewMemoryRepo())
	before := testutil.ToFloat64(metrics.StoreOperations.WithLabelValues("find", "not_found"))
	_, _ = svc.Get(context.Background(), "nope")
	require.Equal(t, before+1, testutil.ToFloat64(metrics.StoreOperations.WithLabelValues("find", "not_found")))
}
