package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/liamd101/logiwa-shipments/internal/domain/shipment"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

// MockCredentialProvider is a mock implementation of shipment.CredentialProvider
type MockCredentialProvider struct {
	mock.Mock
}

func (m *MockCredentialProvider) Credential(ctx context.Context) (shipment.Credential, error) {
	args := m.Called(ctx)
	return args.Get(0).(shipment.Credential), args.Error(1)
}

// MockPartitionLookup is a mock implementation of shipment.PartitionLookup
type MockPartitionLookup struct {
	mock.Mock
}

func (m *MockPartitionLookup) Partitions(ctx context.Context, cred shipment.Credential) ([]int64, error) {
	args := m.Called(ctx, cred)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

// fakeFetcher serves scripted pages per warehouse; pages past the script are empty
type fakeFetcher struct {
	mu       sync.Mutex
	pages    map[int64][]shipment.Page
	failAt   map[int64]int
	failWith error
	requests []shipment.PageRequest
	inFlight int
	maxSeen  int
	delay    time.Duration
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		pages:    map[int64][]shipment.Page{},
		failAt:   map[int64]int{},
		failWith: errors.New("connection reset"),
	}
}

func (f *fakeFetcher) addPages(warehouseID int64, firstOrderID int64, sizes ...int) {
	next := firstOrderID
	for i, size := range sizes {
		page := shipment.Page{Index: i + 1}
		for j := 0; j < size; j++ {
			page.Documents = append(page.Documents, orderDoc(next))
			next++
		}
		f.pages[warehouseID] = append(f.pages[warehouseID], page)
	}
}

func (f *fakeFetcher) FetchPage(ctx context.Context, cred shipment.Credential, req shipment.PageRequest) (shipment.Page, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.inFlight++
	if f.inFlight > f.maxSeen {
		f.maxSeen = f.inFlight
	}
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return shipment.Page{}, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return shipment.Page{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if at, ok := f.failAt[req.WarehouseID]; ok && at == req.PageIndex {
		return shipment.Page{}, f.failWith
	}
	pages := f.pages[req.WarehouseID]
	if req.PageIndex > len(pages) {
		return shipment.Page{Index: req.PageIndex}, nil
	}
	return pages[req.PageIndex-1], nil
}

func (f *fakeFetcher) requestsFor(warehouseID int64) []shipment.PageRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]shipment.PageRequest, 0)
	for _, r := range f.requests {
		if r.WarehouseID == warehouseID {
			out = append(out, r)
		}
	}
	return out
}

func orderDoc(orderID int64) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{"ID": %d, "Code": "SO-%d"}`, orderID, orderID))
}

// memStaging is an in-memory shipment.StagingStore
type memStaging struct {
	mu        sync.Mutex
	entries   []shipment.StagingEntry
	nextID    int64
	appendErr error
	listErr   error
}

func (s *memStaging) Append(_ context.Context, entries []shipment.StagingEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return s.appendErr
	}
	for _, e := range entries {
		s.nextID++
		e.ID = s.nextID
		s.entries = append(s.entries, e)
	}
	return nil
}

func (s *memStaging) ListAll(_ context.Context) ([]shipment.StagingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]shipment.StagingEntry, len(s.entries))
	copy(out, s.entries)
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderID != out[j].OrderID {
			return out[i].OrderID < out[j].OrderID
		}
		if !out[i].FetchedAt.Equal(out[j].FetchedAt) {
			return out[i].FetchedAt.Before(out[j].FetchedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *memStaging) Delete(_ context.Context, orderID int64, through time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.OrderID == orderID && !e.FetchedAt.After(through) {
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
	return nil
}

func (s *memStaging) orderIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.entries))
	for _, e := range s.entries {
		ids = append(ids, e.OrderID)
	}
	return ids
}

// fakeWriter commits into a map and clears staging the way the real writer does
type fakeWriter struct {
	mu        sync.Mutex
	staging   *memStaging
	committed map[int64]*shipment.NormalizedOrder
	fail      map[int64]bool
	commits   int
}

func newFakeWriter(staging *memStaging) *fakeWriter {
	return &fakeWriter{
		staging:   staging,
		committed: map[int64]*shipment.NormalizedOrder{},
		fail:      map[int64]bool{},
	}
}

func (w *fakeWriter) Commit(ctx context.Context, order *shipment.NormalizedOrder) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.commits++
	if w.fail[order.OrderID()] {
		return fmt.Errorf("%w: order %d: %w", shipment.ErrCommitFailed, order.OrderID(), errors.New("constraint violation"))
	}
	w.committed[order.OrderID()] = order
	return w.staging.Delete(ctx, order.OrderID(), order.Order.FetchedAt)
}

// memLedger is an in-memory shipment.RunLedger
type memLedger struct {
	mu        sync.Mutex
	records   []shipment.RunRecord
	readErr   error
	recordErr error
}

func (l *memLedger) RecordRun(_ context.Context, record shipment.RunRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.recordErr != nil {
		return l.recordErr
	}
	l.records = append(l.records, record)
	return nil
}

func (l *memLedger) LastSuccessfulRun(_ context.Context) (*time.Time, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.readErr != nil {
		return nil, l.readErr
	}
	var latest *time.Time
	for _, r := range l.records {
		if r.Succeeded && (latest == nil || r.StartedAt.After(*latest)) {
			started := r.StartedAt
			latest = &started
		}
	}
	return latest, nil
}

func (l *memLedger) last() shipment.RunRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.records[len(l.records)-1]
}

// fakeArchive records stored keys
type fakeArchive struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (a *fakeArchive) Store(_ context.Context, key string, _ shipment.Page) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.keys = append(a.keys, key)
	return nil
}

// heldLock always reports the lock as taken
type heldLock struct{}

func (heldLock) Acquire(context.Context) (shipment.ReleaseFunc, error) {
	return nil, shipment.ErrRunLockHeld
}

// countingLock tracks acquire and release calls
type countingLock struct {
	mu       sync.Mutex
	acquired int
	released int
}

func (l *countingLock) Acquire(context.Context) (shipment.ReleaseFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.acquired++
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.released++
		return nil
	}, nil
}

var testCred = shipment.Credential{AccessToken: "tok-123"}

var testWindow = shipment.WindowAround(time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC), 45)
