package archive

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/liamd101/logiwa-shipments/internal/domain/shipment"
	"github.com/liamd101/logiwa-shipments/internal/infrastructure/config"
)

func testPage() shipment.Page {
	return shipment.Page{
		Index: 3,
		Documents: []json.RawMessage{
			json.RawMessage("{\n  \"ID\": 1,\n  \"Code\": \"SO-1\"\n}"),
			json.RawMessage(`{"ID":2}`),
		},
	}
}

func TestPageKey(t *testing.T) {
	assert.Equal(t, "run-1/202/page-3.jsonl", PageKey("run-1", 202, 3))
}

func TestEncodePage(t *testing.T) {
	t.Run("one compact document per line", func(t *testing.T) {
		data, err := EncodePage(testPage())
		require.NoError(t, err)
		assert.Equal(t, "{\"ID\":1,\"Code\":\"SO-1\"}\n{\"ID\":2}\n", string(data))
	})

	t.Run("empty page encodes to nothing", func(t *testing.T) {
		data, err := EncodePage(shipment.Page{Index: 9})
		require.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("invalid document is an error", func(t *testing.T) {
		_, err := EncodePage(shipment.Page{Documents: []json.RawMessage{json.RawMessage(`{bad`)}})
		require.Error(t, err)
	})
}

func TestLocalArchive_Store(t *testing.T) {
	root := t.TempDir()
	a, err := NewLocalArchive(root)
	require.NoError(t, err)

	key := PageKey("run-1", 202, 3)
	require.NoError(t, a.Store(context.Background(), key, testPage()))

	data, err := os.ReadFile(filepath.Join(root, "run-1", "202", "page-3.jsonl"))
	require.NoError(t, err)
	assert.Equal(t, "{\"ID\":1,\"Code\":\"SO-1\"}\n{\"ID\":2}\n", string(data))

	_, err = os.Stat(filepath.Join(root, "run-1", "202", "page-3.jsonl.tmp"))
	assert.True(t, os.IsNotExist(err))

	t.Run("rejects keys outside the root", func(t *testing.T) {
		err := a.Store(context.Background(), "../escape.jsonl", testPage())
		require.Error(t, err)
	})

	t.Run("honors a cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, a.Store(ctx, key, testPage()), context.Canceled)
	})
}

func TestNewLocalArchive_RequiresDir(t *testing.T) {
	_, err := NewLocalArchive("")
	require.Error(t, err)
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	a, err := New(ctx, config.ArchiveConfig{Driver: DriverNone}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, NopArchive{}, a)
	assert.NoError(t, a.Store(ctx, "k", testPage()))

	a, err = New(ctx, config.ArchiveConfig{Driver: DriverLocal, Dir: t.TempDir()}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &LocalArchive{}, a)

	_, err = New(ctx, config.ArchiveConfig{Driver: "ftp"}, zap.NewNop())
	require.Error(t, err)
}

func TestS3Archive(t *testing.T) {
	t.Run("missing bucket returns error", func(t *testing.T) {
		_, err := NewS3Archive(context.Background(), config.ArchiveConfig{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("puts the page under the prefix", func(t *testing.T) {
		var (
			mu     sync.Mutex
			method string
			path   string
			body   string
		)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, _ := io.ReadAll(r.Body)
			mu.Lock()
			method, path, body = r.Method, r.URL.Path, string(data)
			mu.Unlock()
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		a, err := NewS3Archive(context.Background(), config.ArchiveConfig{
			Bucket:       "shipments-archive",
			Prefix:       "/logiwa/orders/",
			Region:       "us-east-1",
			Endpoint:     server.URL,
			AccessKey:    "test-key",
			SecretKey:    "test-secret",
			UsePathStyle: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "shipments-archive", a.Bucket())

		require.NoError(t, a.Store(context.Background(), PageKey("run-1", 202, 3), testPage()))

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, http.MethodPut, method)
		assert.Equal(t, "/shipments-archive/logiwa/orders/run-1/202/page-3.jsonl", path)
		assert.Contains(t, body, `{"ID":2}`)
	})

	t.Run("surfaces upload errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		a, err := NewS3Archive(context.Background(), config.ArchiveConfig{
			Bucket:       "shipments-archive",
			Endpoint:     server.URL,
			AccessKey:    "test-key",
			SecretKey:    "test-secret",
			UsePathStyle: true,
		})
		require.NoError(t, err)

		err = a.Store(context.Background(), "k.jsonl", testPage())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upload archive page")
	})
}
