package shipment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// ---------------------------------------------------------------------------
// Credentials
// ---------------------------------------------------------------------------

// Credential is a bearer token obtained for one run.
// It is passed explicitly to every collaborator that talks to the API.
type Credential struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// IsZero returns true if no token is present
func (c Credential) IsZero() bool {
	return c.AccessToken == ""
}

// AuthorizationHeader returns the value of the Authorization header
func (c Credential) AuthorizationHeader() string {
	return "Bearer " + c.AccessToken
}

// CredentialProvider obtains a credential or fails
type CredentialProvider interface {
	Credential(ctx context.Context) (Credential, error)
}

// ---------------------------------------------------------------------------
// Partitions and paging
// ---------------------------------------------------------------------------

// PartitionLookup lists the warehouse ids to fetch
type PartitionLookup interface {
	Partitions(ctx context.Context, cred Credential) ([]int64, error)
}

// SearchWindow bounds OrderDate of fetched orders
type SearchWindow struct {
	Start time.Time
	End   time.Time
}

// WindowAround returns the symmetric window now-days .. now+days
func WindowAround(now time.Time, days int) SearchWindow {
	span := time.Duration(days) * 24 * time.Hour
	return SearchWindow{Start: now.Add(-span), End: now.Add(span)}
}

// String returns a log friendly form of the window
func (w SearchWindow) String() string {
	return fmt.Sprintf("%s..%s", w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))
}

// PageRequest identifies one page of one partition
type PageRequest struct {
	WarehouseID   int64
	PageIndex     int
	PageSize      int
	Window        SearchWindow
	ModifiedSince *time.Time
}

// Page is one page of raw order documents
type Page struct {
	Index     int
	Documents []json.RawMessage
}

// Exhausted returns true if the page carries no documents
func (p Page) Exhausted() bool {
	return len(p.Documents) == 0
}

// PageFetcher retrieves one page of raw documents for one partition
type PageFetcher interface {
	FetchPage(ctx context.Context, cred Credential, req PageRequest) (Page, error)
}

// PageArchive keeps a copy of every fetched page outside the database
type PageArchive interface {
	Store(ctx context.Context, key string, page Page) error
}

// ---------------------------------------------------------------------------
// Commit
// ---------------------------------------------------------------------------

// CommitWriter writes one order's record set atomically.
// On success the staged entries of that order up to Order.FetchedAt are gone;
// on failure nothing was written and the staged entries remain.
type CommitWriter interface {
	Commit(ctx context.Context, order *NormalizedOrder) error
}

// ---------------------------------------------------------------------------
// Run lock
// ---------------------------------------------------------------------------

// ReleaseFunc gives up a held run lock
type ReleaseFunc func(ctx context.Context) error

// RunLock keeps two ingestion runs from overlapping.
// Acquire returns ErrRunLockHeld when another run holds the lock.
type RunLock interface {
	Acquire(ctx context.Context) (ReleaseFunc, error)
}
