// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/meshintel/notesmith/pkg/types"
)

// booksAPIBase is the Google Books volumes endpoint. Declared as a var so
// tests can substitute an httptest server.
var booksAPIBase = "https://www.googleapis.com/books/v1/volumes"

var (
	// leadingNumberRe strips a leading endnote number ("12. " or "12 ").
	leadingNumberRe = regexp.MustCompile(`^\s*\d+\.?\s*`)

	// trailingPagesRe strips a trailing page reference (", pp. 10-12.").
	trailingPagesRe = regexp.MustCompile(`,?\s*pp?\.?\s*\d+(-\d+)?\.?$`)
)

// BookResult is the best-effort outcome of a book-metadata search.
type BookResult struct {
	Title         string
	Subtitle      string
	Authors       []string
	Publisher     string
	PublishedDate string
}

// BooksClient queries the Google Books volumes API.
type BooksClient struct {
	Client    *http.Client
	APIKey    string
	UserAgent string
	Cache     *Cache
}

// NewBooksClient builds a book-search client with a 4 s default timeout.
func NewBooksClient(cfg types.LookupConfig, cache *Cache) *BooksClient {
	return &BooksClient{
		Client:    clientWithTimeout(cfg.HTTPConfig, 4*time.Second),
		APIKey:    cfg.GoogleBooksAPIKey,
		UserAgent: cfg.UserAgent,
		Cache:     cache,
	}
}

// Search returns the first volume matching the query, or nil when the API
// returns no items or anything fails. The query is cleaned of leading note
// numbers and trailing page references before searching.
func (c *BooksClient) Search(ctx context.Context, query string) *BookResult {
	clean := cleanBookQuery(query)
	if clean == "" {
		return nil
	}

	body, hit := c.Cache.Get("google_books", clean)
	if !hit {
		params := url.Values{
			"q":          {clean},
			"maxResults": {"1"},
			"printType":  {"books"},
		}
		if c.APIKey != "" {
			params.Set("key", c.APIKey)
		}

		body = fetchJSON(ctx, c.Client, booksAPIBase+"?"+params.Encode(), c.UserAgent, nil)
		if body == nil {
			return nil
		}
		c.Cache.Put("google_books", clean, body)
	}

	var br booksResponse
	if err := json.Unmarshal(body, &br); err != nil {
		return nil
	}
	if len(br.Items) == 0 {
		return nil
	}

	info := br.Items[0].VolumeInfo
	return &BookResult{
		Title:         info.Title,
		Subtitle:      info.Subtitle,
		Authors:       info.Authors,
		Publisher:     info.Publisher,
		PublishedDate: info.PublishedDate,
	}
}

// cleanBookQuery removes note-number and page-reference noise that hurts
// book search relevance.
func cleanBookQuery(query string) string {
	clean := leadingNumberRe.ReplaceAllString(query, "")
	clean = trailingPagesRe.ReplaceAllString(clean, "")
	return strings.TrimSpace(clean)
}

// Google Books API JSON structures.
type booksResponse struct {
	Items []booksItem `json:"items"`
}

type booksItem struct {
	VolumeInfo booksVolumeInfo `json:"volumeInfo"`
}

type booksVolumeInfo struct {
	Title         string   `json:"title"`
	Subtitle      string   `json:"subtitle"`
	Authors       []string `json:"authors"`
	Publisher     string   `json:"publisher"`
	PublishedDate string   `json:"publishedDate"`
}
