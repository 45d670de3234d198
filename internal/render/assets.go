// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pdiddy/export-pdf/internal/httputil"
)

const (
	// mermaidVersion pins the diagram library. Bump deliberately; themes and
	// rendering output shift between majors.
	mermaidVersion = "10.9.1"

	mermaidCDN = "https://cdn.jsdelivr.net/npm/mermaid@" + mermaidVersion + "/dist/mermaid.min.js"

	// maxAssetBytes caps the fetched script size.
	maxAssetBytes = 8 << 20
)

// mermaidFetchURL is where the library is fetched from. Tests point it at
// a local server.
var mermaidFetchURL = mermaidCDN

// mermaidCacheDir overrides the cache location in tests.
var mermaidCacheDir = func() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "export-pdf"), nil
}

// ResolveMermaid returns the mermaid library source for inlining into the
// page, from the local cache or by fetching it once per pinned version. An
// empty return means the asset could not be resolved; the page then falls
// back to a CDN script tag and diagram rendering degrades gracefully.
func ResolveMermaid(ctx context.Context, client *http.Client) string {
	dir, err := mermaidCacheDir()
	if err != nil {
		return fetchMermaid(ctx, client, "")
	}
	cachePath := filepath.Join(dir, fmt.Sprintf("mermaid-%s.min.js", mermaidVersion))

	if data, err := os.ReadFile(cachePath); err == nil && len(data) > 0 {
		return string(data)
	}
	return fetchMermaid(ctx, client, cachePath)
}

// fetchMermaid downloads the pinned mermaid build and caches it at cachePath
// when non-empty. Any failure returns "" rather than an error; the export
// must not fail because a diagram asset was unreachable.
func fetchMermaid(ctx context.Context, client *http.Client, cachePath string) string {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mermaidFetchURL, nil)
	if err != nil {
		return ""
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes))
	if err != nil || len(data) == 0 {
		return ""
	}

	if cachePath != "" {
		// Cache writes are best effort.
		if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err == nil {
			_ = os.WriteFile(cachePath, data, 0o644)
		}
	}
	return string(data)
}
