package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liamd101/logiwa-shipments/internal/application/ingest"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/logiwa"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/persistence"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/persistence/models"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/ratelimit"
)

// logiwaStub serves the token and order search endpoints from canned pages
type logiwaStub struct {
	mu       sync.Mutex
	pages    map[int64][][]json.RawMessage
	searches []logiwa.SearchRequest
}

func (s *logiwaStub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(logiwa.DefaultTokenPath, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(logiwa.TokenResponse{
			AccessToken: "integration-token",
			TokenType:   "bearer",
			ExpiresIn:   3600,
		})
	})
	mux.HandleFunc(logiwa.DefaultSearchPath, func(w http.ResponseWriter, r *http.Request) {
		var req logiwa.SearchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		s.searches = append(s.searches, req)
		pages := s.pages[req.WarehouseID]
		s.mu.Unlock()

		resp := logiwa.SearchResponse{Data: []json.RawMessage{}}
		if req.SelectedPageIndex >= 1 && req.SelectedPageIndex <= len(pages) {
			resp.Data = pages[req.SelectedPageIndex-1]
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
	return mux
}

func (s *logiwaStub) lastSearch() logiwa.SearchRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searches[len(s.searches)-1]
}

func newPipeline(t *testing.T, tdb *TestDB, serverURL string, warehouses ...int64) *ingest.Pipeline {
	t.Helper()

	cfg := logiwa.NewConfig("integration", "secret")
	cfg.BaseURL = serverURL
	client, err := logiwa.NewClient(cfg, ratelimit.New(time.Millisecond), nil)
	require.NoError(t, err)

	staging := persistence.NewGormStagingStore(tdb.DB)
	collector := ingest.NewWarehouseCollector(client, staging, 2)
	return ingest.NewPipeline(ingest.Config{WindowDays: 45, RunTimeout: time.Minute},
		client,
		ingest.NewFetchCoordinator(logiwa.NewStaticPartitionLookup(warehouses), collector, 2),
		ingest.NewProcessor(staging, nil, persistence.NewGormCommitWriter(tdb.DB), nil),
		persistence.NewGormRunLedger(tdb.DB),
	)
}

func TestPipeline_PostgresEndToEnd(t *testing.T) {
	tdb := NewTestDB(t)
	ctx := context.Background()

	stub := &logiwaStub{pages: map[int64][][]json.RawMessage{
		202: {
			{
				json.RawMessage(`{"ID": 42, "Code": "A1", "DetailInfo": [{"ID": 1, "Code": "L1"}], "WarehouseOrderStatusID": [7]}`),
				json.RawMessage(`{"ID": 43, "Code": "A2", "CarrierID": [11, 12]}`),
			},
			{
				json.RawMessage(`{"ID": 44, "Code": "A3", "ThirdPartyAccount": {"AccountNumber": "ACC-1", "Address": {"City": "Austin"}}}`),
			},
		},
		303: {
			{json.RawMessage(`{"ID": 42, "Code": "A1-rev", "DetailInfo": [{"ID": 1, "Code": "L1"}], "WarehouseOrderStatusID": [7]}`)},
		},
	}}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	pipeline := newPipeline(t, tdb, server.URL, 202, 303)

	result, err := pipeline.Run(ctx, ingest.RunOptions{})
	require.NoError(t, err)
	assert.True(t, result.Succeeded)
	assert.Equal(t, 4, result.Fetch.Documents())
	assert.Equal(t, 3, result.Process.OrdersCommitted)
	assert.Equal(t, 1, result.Process.SupersededRemoved)

	assert.Equal(t, int64(3), tdb.Count("shipment_orders", "1 = 1"))
	assert.Equal(t, int64(1), tdb.Count("shipment_order_lines", "order_id = ? AND line_id = ?", 42, 1))
	assert.Equal(t, int64(1), tdb.Count("shipment_order_statuses", "order_id = ? AND tag_id = ?", 42, 7))
	assert.Equal(t, int64(2), tdb.Count("shipment_order_carriers", "order_id = ?", 43))
	assert.Equal(t, int64(1), tdb.Count("shipment_order_addresses", "order_id = ?", 44))
	assert.Equal(t, int64(0), tdb.Count("shipment_order_staging", "1 = 1"))

	var header models.ShipmentOrderModel
	require.NoError(t, tdb.DB.First(&header, "order_id = ?", 42).Error)
	assert.Contains(t, []string{"A1", "A1-rev"}, header.Code)

	// second run carries the watermark and leaves the store unchanged
	_, err = pipeline.Run(ctx, ingest.RunOptions{})
	require.NoError(t, err)
	last := stub.lastSearch()
	require.NotNil(t, last.LastModifiedDateStart)
	assert.Equal(t, logiwa.FormatDate(result.StartedAt, time.UTC), *last.LastModifiedDateStart)
	assert.Equal(t, int64(3), tdb.Count("shipment_orders", "1 = 1"))
	assert.Equal(t, int64(1), tdb.Count("shipment_order_lines", "order_id = ?", 42))

	history, err := persistence.NewGormRunLedger(tdb.DB).History(ctx, 5)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].Succeeded)
	assert.Equal(t, 3, history[0].OrdersCommitted)
}

func TestPipeline_PostgresCredentialFailure(t *testing.T) {
	tdb := NewTestDB(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"bad password"}`))
	}))
	defer server.Close()

	_, err := newPipeline(t, tdb, server.URL, 202).Run(context.Background(), ingest.RunOptions{})
	require.Error(t, err)

	history, err := persistence.NewGormRunLedger(tdb.DB).History(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.False(t, history[0].Succeeded)
	assert.NotEmpty(t, history[0].ErrorMessage)
}
