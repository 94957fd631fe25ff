// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/meshintel/notesmith/internal/httputil"
	"github.com/meshintel/notesmith/pkg/types"
)

// waybackAPIBase is the archive.org snapshot-availability endpoint. Declared
// as a var so tests can substitute an httptest server.
var waybackAPIBase = "http://archive.org/wayback/available"

// fetcherUserAgent is a browser-like agent; several newspaper sites refuse
// obvious bot agents outright.
const fetcherUserAgent = "Mozilla/5.0"

// Fetcher retrieves live pages, falling back to the nearest web-archive
// snapshot when the origin refuses the request.
type Fetcher struct {
	Client    *http.Client
	UserAgent string
}

// NewFetcher builds a page fetcher with a 3 s default timeout.
func NewFetcher(cfg types.LookupConfig) *Fetcher {
	ua := cfg.UserAgent
	if ua == "" {
		ua = fetcherUserAgent
	}
	return &Fetcher{
		Client:    clientWithTimeout(cfg.HTTPConfig, 3*time.Second),
		UserAgent: ua,
	}
}

// FetchPage returns the page body, trying the live URL first and the closest
// archive snapshot when the origin answers 403 or 429. A nil body means the
// page could not be retrieved anywhere.
func (f *Fetcher) FetchPage(ctx context.Context, pageURL string) []byte {
	body, status := f.get(ctx, pageURL)
	if status == http.StatusOK {
		return body
	}

	if status == http.StatusForbidden || status == http.StatusTooManyRequests {
		if snapshot := f.closestSnapshot(ctx, pageURL); snapshot != "" {
			if body, status := f.get(ctx, snapshot); status == http.StatusOK {
				return body
			}
		}
	}
	return nil
}

// get performs a single GET and returns (body, status); status 0 means the
// request itself failed.
func (f *Fetcher) get(ctx context.Context, pageURL string) ([]byte, int) {
	req, err := httputil.NewRequest(ctx, pageURL, f.UserAgent)
	if err != nil {
		return nil, 0
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, 0
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, resp.StatusCode
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, 0
	}
	return body, http.StatusOK
}

// closestSnapshot asks the wayback availability API for the nearest archived
// copy of the URL, returning "" when none exists.
func (f *Fetcher) closestSnapshot(ctx context.Context, pageURL string) string {
	query := waybackAPIBase + "?url=" + url.QueryEscape(pageURL)
	body := fetchJSON(ctx, f.Client, query, f.UserAgent, nil)
	if body == nil {
		return ""
	}

	var wr waybackResponse
	if err := json.Unmarshal(body, &wr); err != nil {
		return ""
	}
	return wr.ArchivedSnapshots.Closest.URL
}

// Wayback availability JSON structures.
type waybackResponse struct {
	ArchivedSnapshots struct {
		Closest struct {
			URL string `json:"url"`
		} `json:"closest"`
	} `json:"archived_snapshots"`
}
