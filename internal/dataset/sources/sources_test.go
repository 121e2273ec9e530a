package sources

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, s Source) string {
	t.Helper()
	rc, err := s.Open(context.Background())
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(b)
}

func fastSource(client *http.Client, url string) *HTTPSource {
	s := NewHTTPSource(client, url)
	s.httpCfg.Backoff = BackoffConfig{MaxRetries: 2, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}
	return s
}

func TestFromLocation(t *testing.T) {
	assert.IsType(t, &HTTPSource{}, FromLocation("https://example.org/a.csv", http.DefaultClient))
	assert.IsType(t, &HTTPSource{}, FromLocation("HTTP://example.org/a.csv", http.DefaultClient))
	assert.IsType(t, &FileSource{}, FromLocation("data/a.csv", http.DefaultClient))
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rentals.csv")
	require.NoError(t, os.WriteFile(path, []byte("Day,Total Rentals\n"), 0o644))

	s := NewFileSource(path)
	assert.Equal(t, path, s.Name())
	assert.Equal(t, "Day,Total Rentals\n", readAll(t, s))

	_, err := NewFileSource(filepath.Join(t.TempDir(), "missing.csv")).Open(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHTTPSourceRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("Day,Total Rentals\n2021-01-01,10\n"))
	}))
	defer srv.Close()

	s := fastSource(srv.Client(), srv.URL)
	assert.Equal(t, "Day,Total Rentals\n2021-01-01,10\n", readAll(t, s))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestHTTPSourceFailsFastOnClientError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := fastSource(srv.Client(), srv.URL).Open(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errUnexpected)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestHTTPSourceGivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := fastSource(srv.Client(), srv.URL).Open(context.Background())
	assert.ErrorIs(t, err, errRateLimited)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestHTTPSourceNeedsClient(t *testing.T) {
	_, err := NewHTTPSource(nil, "http://127.0.0.1:1/x.csv").Open(context.Background())
	assert.ErrorIs(t, err, errNoHTTPClient)
}
