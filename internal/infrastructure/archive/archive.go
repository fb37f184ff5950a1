// Package archive keeps a copy of every fetched Logiwa page outside the database.
// Pages are written as JSON Lines, one raw order document per line, so a run can be
// replayed or audited after staging rows are gone.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"go.uber.org/zap"

	"github.com/liamd101/logiwa-shipments/internal/domain/shipment"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/config"
)

// Driver names accepted by New
const (
	DriverNone  = "none"
	DriverLocal = "local"
	DriverS3    = "s3"
)

// ContentType of archived pages
const ContentType = "application/x-ndjson"

// PageKey returns the object key of one page, relative to the archive root
func PageKey(runID string, warehouseID int64, pageIndex int) string {
	return path.Join(runID, fmt.Sprintf("%d", warehouseID), fmt.Sprintf("page-%d.jsonl", pageIndex))
}

// EncodePage renders page as JSON Lines
func EncodePage(page shipment.Page) ([]byte, error) {
	var buf bytes.Buffer
	for i, doc := range page.Documents {
		if err := json.Compact(&buf, doc); err != nil {
			return nil, fmt.Errorf("encode document %d of page %d: %w", i, page.Index, err)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// NopArchive discards pages
type NopArchive struct{}

// Store implements shipment.PageArchive
func (NopArchive) Store(context.Context, string, shipment.Page) error {
	return nil
}

// New builds the archive selected by cfg.Driver
func New(ctx context.Context, cfg config.ArchiveConfig, logger *zap.Logger) (shipment.PageArchive, error) {
	switch cfg.Driver {
	case "", DriverNone:
		return NopArchive{}, nil
	case DriverLocal:
		return NewLocalArchive(cfg.Dir)
	case DriverS3:
		return NewS3Archive(ctx, cfg, WithLogger(logger))
	default:
		return nil, fmt.Errorf("unknown archive driver %q", cfg.Driver)
	}
}

var (
	_ shipment.PageArchive = NopArchive{}
	_ shipment.PageArchive = (*LocalArchive)(nil)
	_ shipment.PageArchive = (*S3Archive)(nil)
)
