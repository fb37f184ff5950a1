package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liamd101/logiwa-shipments/internal/domain/shipment"
)

func TestGormRunLedger_LastSuccessfulRun(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	t.Run("nil when the ledger is empty", func(t *testing.T) {
		ledger := NewGormRunLedger(setupShipmentTestDB(t))

		last, err := ledger.LastSuccessfulRun(ctx)
		require.NoError(t, err)
		assert.Nil(t, last)
	})

	t.Run("nil when only failed runs exist", func(t *testing.T) {
		ledger := NewGormRunLedger(setupShipmentTestDB(t))
		require.NoError(t, ledger.RecordRun(ctx, shipment.RunRecord{
			RunID: "r1", StartedAt: base, FinishedAt: base.Add(time.Minute), Succeeded: false,
		}))

		last, err := ledger.LastSuccessfulRun(ctx)
		require.NoError(t, err)
		assert.Nil(t, last)
	})

	t.Run("latest successful start wins over later failures", func(t *testing.T) {
		ledger := NewGormRunLedger(setupShipmentTestDB(t))
		runs := []shipment.RunRecord{
			{RunID: "r1", StartedAt: base, FinishedAt: base.Add(time.Minute), Succeeded: true},
			{RunID: "r2", StartedAt: base.Add(time.Hour), FinishedAt: base.Add(61 * time.Minute), Succeeded: true, OrdersCommitted: 4},
			{RunID: "r3", StartedAt: base.Add(2 * time.Hour), FinishedAt: base.Add(121 * time.Minute), Succeeded: false, ErrorMessage: "credential unavailable"},
		}
		for _, run := range runs {
			require.NoError(t, ledger.RecordRun(ctx, run))
		}

		last, err := ledger.LastSuccessfulRun(ctx)
		require.NoError(t, err)
		require.NotNil(t, last)
		assert.True(t, last.Equal(base.Add(time.Hour)), "got %s", last)
	})
}

func TestGormRunLedger_History(t *testing.T) {
	ctx := context.Background()
	ledger := NewGormRunLedger(setupShipmentTestDB(t))
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, ledger.RecordRun(ctx, shipment.RunRecord{
			RunID:      string(rune('a' + i)),
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			FinishedAt: base.Add(time.Duration(i)*time.Hour + time.Minute),
			Succeeded:  i != 1,
		}))
	}

	records, err := ledger.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "c", records[0].RunID)
	assert.Equal(t, "b", records[1].RunID)
	assert.False(t, records[1].Succeeded)
	assert.NotZero(t, records[0].ID)
}
