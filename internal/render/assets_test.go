// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pdiddy/export-pdf/internal/httputil"
)

func init() {
	httputil.RetryBaseDelay = 1 * time.Millisecond
}

// withAssetOverrides points the resolver at a test server and a temp cache
// dir, restoring both on cleanup.
func withAssetOverrides(t *testing.T, url string) string {
	t.Helper()
	cacheDir := t.TempDir()

	oldURL := mermaidFetchURL
	oldDir := mermaidCacheDir
	mermaidFetchURL = url
	mermaidCacheDir = func() (string, error) { return cacheDir, nil }
	t.Cleanup(func() {
		mermaidFetchURL = oldURL
		mermaidCacheDir = oldDir
	})
	return cacheDir
}

func TestResolveMermaid_FetchesAndCaches(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte("/* mermaid lib */"))
	}))
	defer ts.Close()

	cacheDir := withAssetOverrides(t, ts.URL)

	got := ResolveMermaid(context.Background(), ts.Client())
	if got != "/* mermaid lib */" {
		t.Fatalf("got %q", got)
	}

	// Second resolve must come from the cache.
	got = ResolveMermaid(context.Background(), ts.Client())
	if got != "/* mermaid lib */" {
		t.Fatalf("cached resolve got %q", got)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("server hit %d times, want 1", n)
	}

	cached, err := os.ReadFile(filepath.Join(cacheDir, "mermaid-"+mermaidVersion+".min.js"))
	if err != nil {
		t.Fatalf("cache file not written: %v", err)
	}
	if string(cached) != "/* mermaid lib */" {
		t.Errorf("cache content %q", cached)
	}
}

func TestResolveMermaid_RetriesTransientFailure(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("lib"))
	}))
	defer ts.Close()

	withAssetOverrides(t, ts.URL)

	got := ResolveMermaid(context.Background(), ts.Client())
	if got != "lib" {
		t.Fatalf("got %q", got)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("server hit %d times, want 2", n)
	}
}

func TestResolveMermaid_UnreachableReturnsEmpty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	withAssetOverrides(t, ts.URL)

	if got := ResolveMermaid(context.Background(), ts.Client()); got != "" {
		t.Fatalf("got %q, want empty fallback", got)
	}
}

func TestResolveMermaid_PrefersExistingCache(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("server must not be hit when the cache is warm")
	}))
	defer ts.Close()

	cacheDir := withAssetOverrides(t, ts.URL)
	path := filepath.Join(cacheDir, "mermaid-"+mermaidVersion+".min.js")
	if err := os.WriteFile(path, []byte("warm"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := ResolveMermaid(context.Background(), ts.Client()); got != "warm" {
		t.Fatalf("got %q", got)
	}
}
