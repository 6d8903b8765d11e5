package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/restaurants-starter/restaurants-service/internal/restaurant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepoCRUD(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()

	rec := restaurant.New()
	rec.RestaurantID = "1"
	rec.Name = "A"
	got, err := r.Insert(ctx, &rec)
	require.NoError(t, err)
	require.False(t, got.ID.IsZero())

	n, err := r.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	found, err := r.FindByRestaurantID(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, *got, *found)

	updated := found.WithName("Update")
	_, err = r.Save(ctx, &updated)
	require.NoError(t, err)
	found2, err := r.FindByRestaurantID(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, "Update", found2.Name)
	require.Equal(t, got.ID, found2.ID)

	n, err = r.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	require.NoError(t, r.Delete(ctx, found2))
	_, err = r.FindByRestaurantID(ctx, "1")
	require.ErrorIs(t, err, ErrNotFound)

	// deleting again is a no-op
	require.NoError(t, r.Delete(ctx, found2))
}

func TestMemoryRepoDuplicateStorageID(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	rec := restaurant.Sample()
	_, err := r.Insert(ctx, &rec)
	require.NoError(t, err)

	again := rec.Clone()
	_, err = r.Insert(ctx, &again)
	require.ErrorIs(t, err, ErrDuplicateID)
}

func TestMemoryRepoDuplicateBusinessIDReturnsFirst(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	first := restaurant.Sample()
	first.Borough = "Bronx"
	second := restaurant.Sample()
	second.Borough = "Queens"
	_, err := r.Insert(ctx, &first)
	require.NoError(t, err)
	_, err = r.Insert(ctx, &second)
	require.NoError(t, err)

	got, err := r.FindByRestaurantID(ctx, "33332")
	require.NoError(t, err)
	require.Equal(t, "Bronx", got.Borough)

	require.NoError(t, r.Delete(ctx, got))
	got, err = r.FindByRestaurantID(ctx, "33332")
	require.NoError(t, err)
	require.Equal(t, "Queens", got.Borough)
}

func TestMemoryRepoDoesNotAlias(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	rec := restaurant.New()
	rec.RestaurantID = "7"
	rec.Grades = []restaurant.Grade{{Rating: "A", Score: 3}}
	_, err := r.Insert(ctx, &rec)
	require.NoError(t, err)

	rec.Grades[0].Score = 100
	got, err := r.FindByRestaurantID(ctx, "7")
	require.NoError(t, err)
	require.Equal(t, 3, got.Grades[0].Score)

	got.Name = "changed"
	again, err := r.FindByRestaurantID(ctx, "7")
	require.NoError(t, err)
	require.Empty(t, again.Name)
}

func TestMemoryRepoConcurrentInserts(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := restaurant.Sample()
			_, err := r.Insert(ctx, &rec)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	n, err := r.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 50, n)
}
