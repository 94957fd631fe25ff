// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lookup implements the external source-lookup collaborators: a
// case-law search, an academic-paper search, a book-metadata search, and a
// generic page fetcher with a web-archive fallback.
//
// Every client is best-effort. A transport error, a non-200 status, or a
// malformed response is absorbed at the call site and reported as "no
// result" (a nil pointer); classification never sees a lookup failure.
package lookup

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/meshintel/notesmith/internal/httputil"
	"github.com/meshintel/notesmith/pkg/types"
)

// maxBodyBytes caps how much of a response body a lookup client reads.
const maxBodyBytes = 4 << 20

// clientWithTimeout builds an http.Client from the config, falling back to
// the given per-service default when no timeout is configured.
func clientWithTimeout(cfg types.HTTPConfig, fallback time.Duration) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = fallback
	}
	return &http.Client{Timeout: timeout}
}

// fetchJSON performs a GET and returns the body on HTTP 200, or nil on any
// failure. extraHeaders may be nil.
func fetchJSON(ctx context.Context, client *http.Client, url, userAgent string, extraHeaders map[string]string) []byte {
	req, err := httputil.NewRequest(ctx, url, userAgent)
	if err != nil {
		return nil
	}
	for k, v := range extraHeaders {
		req.Header.Set(k, v)
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil
	}
	return body
}
