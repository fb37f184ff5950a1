package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liamd101/logiwa-shipments/internal/domain/shipment"
)

func TestGormStagingStore_Append(t *testing.T) {
	db := setupShipmentTestDB(t)
	store := NewGormStagingStore(db)
	ctx := context.Background()

	t.Run("empty batch is a no-op", func(t *testing.T) {
		require.NoError(t, store.Append(ctx, nil))

		entries, err := store.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("assigns ids and normalizes fetch time", func(t *testing.T) {
		local := time.FixedZone("CST", -6*3600)
		fetchedAt := time.Date(2024, 3, 1, 4, 30, 0, 123456789, local)
		entries := []shipment.StagingEntry{
			{OrderID: 7, RawJSON: []byte(`{"ID":7}`), FetchedAt: fetchedAt},
			{OrderID: 5, RawJSON: []byte(`{"ID":5}`), FetchedAt: fetchedAt},
		}

		require.NoError(t, store.Append(ctx, entries))
		assert.NotZero(t, entries[0].ID)
		assert.NotZero(t, entries[1].ID)

		listed, err := store.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, listed, 2)
		assert.Equal(t, int64(5), listed[0].OrderID)
		assert.Equal(t, `{"ID":5}`, string(listed[0].RawJSON))
		assert.True(t, listed[0].FetchedAt.Equal(time.Date(2024, 3, 1, 10, 30, 0, 123456000, time.UTC)))
	})
}

func TestGormStagingStore_ListAllOrdering(t *testing.T) {
	db := setupShipmentTestDB(t)
	store := NewGormStagingStore(db)
	ctx := context.Background()

	later := testFetchedAt.Add(time.Minute)
	require.NoError(t, store.Append(ctx, []shipment.StagingEntry{
		{OrderID: 2, RawJSON: []byte(`{"ID":2,"v":2}`), FetchedAt: later},
		{OrderID: 1, RawJSON: []byte(`{"ID":1}`), FetchedAt: testFetchedAt},
		{OrderID: 2, RawJSON: []byte(`{"ID":2,"v":1}`), FetchedAt: testFetchedAt},
	}))

	entries, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, int64(1), entries[0].OrderID)
	assert.Equal(t, `{"ID":2,"v":1}`, string(entries[1].RawJSON))
	assert.Equal(t, `{"ID":2,"v":2}`, string(entries[2].RawJSON))

	groups := shipment.GroupStaged(entries)
	require.Len(t, groups, 2)
	assert.Equal(t, `{"ID":2,"v":2}`, string(groups[1].Latest.RawJSON))
	assert.Len(t, groups[1].Superseded, 1)
}

func TestGormStagingStore_Delete(t *testing.T) {
	db := setupShipmentTestDB(t)
	store := NewGormStagingStore(db)
	ctx := context.Background()

	later := testFetchedAt.Add(time.Hour)
	require.NoError(t, store.Append(ctx, []shipment.StagingEntry{
		{OrderID: 9, RawJSON: []byte(`{"ID":9,"v":1}`), FetchedAt: testFetchedAt.Add(-time.Hour)},
		{OrderID: 9, RawJSON: []byte(`{"ID":9,"v":2}`), FetchedAt: testFetchedAt},
		{OrderID: 9, RawJSON: []byte(`{"ID":9,"v":3}`), FetchedAt: later},
		{OrderID: 10, RawJSON: []byte(`{"ID":10}`), FetchedAt: testFetchedAt},
	}))

	require.NoError(t, store.Delete(ctx, 9, testFetchedAt))

	entries, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, `{"ID":9,"v":3}`, string(entries[0].RawJSON))
	assert.Equal(t, int64(10), entries[1].OrderID)
}
