package archive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/liamd101/logiwa-shipments/internal/domain/shipment"
)

// LocalArchive writes pages below a directory
type LocalArchive struct {
	root string
}

// NewLocalArchive creates the root directory if needed
func NewLocalArchive(root string) (*LocalArchive, error) {
	if root == "" {
		return nil, errors.New("archive directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	return &LocalArchive{root: root}, nil
}

// Store writes the page to root/key, replacing an earlier copy
func (a *LocalArchive) Store(ctx context.Context, key string, page shipment.Page) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := filepath.Join(a.root, filepath.FromSlash(key))
	rel, err := filepath.Rel(a.root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("archive key %q escapes the archive directory", key)
	}

	data, err := EncodePage(page)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create archive directory: %w", err)
	}

	// write then rename so a reader never sees half a page
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write archive page %s: %w", key, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write archive page %s: %w", key, err)
	}
	return nil
}
