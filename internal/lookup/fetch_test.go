// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meshintel/notesmith/pkg/types"
)

func TestFetchPageDirect(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html><body>ok</body></html>")
	}))
	defer ts.Close()

	f := NewFetcher(types.LookupConfig{})
	f.Client = ts.Client()
	body := f.FetchPage(context.Background(), ts.URL)
	if body == nil {
		t.Fatal("FetchPage returned nil for a 200 page")
	}
}

func TestFetchPageArchiveFallbackOn403(t *testing.T) {
	// Snapshot server stands in for web.archive.org.
	snapshot := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html><body>archived copy</body></html>")
	}))
	defer snapshot.Close()

	var waybackAsked bool
	wayback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		waybackAsked = true
		if r.URL.Query().Get("url") == "" {
			t.Error("wayback availability query missing url param")
		}
		fmt.Fprintf(w, `{"archived_snapshots":{"closest":{"url":%q}}}`, snapshot.URL)
	}))
	defer wayback.Close()

	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer origin.Close()

	old := waybackAPIBase
	waybackAPIBase = wayback.URL
	defer func() { waybackAPIBase = old }()

	f := NewFetcher(types.LookupConfig{})
	body := f.FetchPage(context.Background(), origin.URL)
	if !waybackAsked {
		t.Fatal("403 did not trigger the archive-snapshot fallback")
	}
	if string(body) != "<html><body>archived copy</body></html>" {
		t.Errorf("body = %q, want archived copy", body)
	}
}

func TestFetchPageNoFallbackOn404(t *testing.T) {
	var waybackAsked bool
	wayback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		waybackAsked = true
		fmt.Fprint(w, `{"archived_snapshots":{}}`)
	}))
	defer wayback.Close()

	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer origin.Close()

	old := waybackAPIBase
	waybackAPIBase = wayback.URL
	defer func() { waybackAPIBase = old }()

	f := NewFetcher(types.LookupConfig{})
	if body := f.FetchPage(context.Background(), origin.URL); body != nil {
		t.Errorf("FetchPage = %q, want nil", body)
	}
	if waybackAsked {
		t.Error("404 should not consult the archive")
	}
}

func TestArticleJSONLD(t *testing.T) {
	page := `<html><head>
		<script type="application/ld+json">{
			"headline": "Senate Passes Bill",
			"datePublished": "2021-03-04T10:00:00Z",
			"author": [{"name": "Jane Smith"}, {"name": "Bob Lee"}]
		}</script>
	</head><body></body></html>`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer ts.Close()

	f := NewFetcher(types.LookupConfig{})
	f.Client = ts.Client()
	meta := f.Article(context.Background(), ts.URL)
	if meta.Title != "Senate Passes Bill" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Date != "2021-03-04" {
		t.Errorf("Date = %q, want 2021-03-04", meta.Date)
	}
	if meta.Author != "Jane Smith and Bob Lee" {
		t.Errorf("Author = %q", meta.Author)
	}
}

func TestArticleOGTitleFallback(t *testing.T) {
	page := `<html><head>
		<meta property="og:title" content="City Approves Budget | The Daily Bugle">
	</head><body></body></html>`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer ts.Close()

	f := NewFetcher(types.LookupConfig{})
	f.Client = ts.Client()
	meta := f.Article(context.Background(), ts.URL)
	if meta.Title != "City Approves Budget" {
		t.Errorf("Title = %q, want og:title without site suffix", meta.Title)
	}
}

func TestArticleDateFromURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	f := NewFetcher(types.LookupConfig{})
	f.Client = ts.Client()
	meta := f.Article(context.Background(), ts.URL+"/2019/07/some-story.html")
	if meta.Date != "July 2019" {
		t.Errorf("Date = %q, want July 2019", meta.Date)
	}
	if meta.Title != "" {
		t.Errorf("Title = %q, want empty on fetch failure", meta.Title)
	}
}
