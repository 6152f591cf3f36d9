package source

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kSibalic/nba/internal/files"
	"github.com/kSibalic/nba/internal/shared/testutil"
)

func readAll(t *testing.T, rc io.ReadCloser) string {
	t.Helper()
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}

func TestFileFetcher(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "data", "regular.csv"), []byte(testutil.SampleRegular()), 0o644))

	fetcher := NewFileFetcher(files.NewManager(root, nil))

	rc, err := fetcher.Fetch(context.Background(), "data/regular.csv")
	require.NoError(t, err)
	assert.Equal(t, testutil.SampleRegular(), readAll(t, rc))

	_, err = fetcher.Fetch(context.Background(), "data/missing.csv")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = fetcher.Fetch(ctx, "data/regular.csv")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPFetcher(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/regular.csv":
			w.Header().Set("Content-Type", "text/csv")
			_, _ = io.WriteString(w, testutil.SamplePlayoff())
		case "/slow.csv":
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	tests := []struct {
		name    string
		path    string
		timeout time.Duration
		wantErr string
	}{
		{name: "ok", path: "/regular.csv"},
		{name: "not found", path: "/missing.csv", wantErr: "status: 404"},
		{name: "timeout", path: "/slow.csv", timeout: 50 * time.Millisecond, wantErr: "deadline exceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := NewHTTPFetcher(server.Client(), tt.timeout)
			rc, err := fetcher.Fetch(context.Background(), server.URL+tt.path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testutil.SamplePlayoff(), readAll(t, rc))
		})
	}
}

func TestRouter(t *testing.T) {
	var got []string
	record := func(tag string) Fetcher {
		return FetcherFunc(func(_ context.Context, location string) (io.ReadCloser, error) {
			got = append(got, tag+":"+location)
			return io.NopCloser(strings.NewReader("")), nil
		})
	}
	router := NewRouter(record("file"), record("http"))

	for _, loc := range []string{"data/a.csv", "https://example.com/b.csv", "HTTP://example.com/c.csv", "/abs/d.csv"} {
		rc, err := router.Fetch(context.Background(), loc)
		require.NoError(t, err)
		rc.Close()
	}

	assert.Equal(t, []string{
		"file:data/a.csv",
		"http:https://example.com/b.csv",
		"http:HTTP://example.com/c.csv",
		"file:/abs/d.csv",
	}, got)
}

func TestSnapshotReturnsCopies(t *testing.T) {
	fetcher := stubFetcher(map[string]string{
		"regular.csv": testutil.SampleRegular(),
		"playoff.csv": testutil.SamplePlayoff(),
	}, nil)
	snapshot, err := LoadSeason(context.Background(), fetcher, dataConfig())
	require.NoError(t, err)

	season := snapshot.Season()
	season.Regular.Records[0].Player = "Mutated"
	season.Playoff.Records = nil

	again := snapshot.Season()
	assert.Equal(t, "Jayson Tatum", again.Regular.Records[0].Player)
	assert.Equal(t, 2, again.Playoff.Len())

	_, ok := snapshot.Dataset("preseason")
	assert.False(t, ok)
}
