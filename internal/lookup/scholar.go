// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/meshintel/notesmith/pkg/types"
)

// scholarAPIBase is the Semantic Scholar paper search endpoint. Declared as
// a var so tests can substitute an httptest server.
var scholarAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const scholarFields = "title,authors,venue,publicationVenue,year,volume,issue,pages,externalIds"

// PaperResult is the best-effort outcome of an academic-paper search.
type PaperResult struct {
	Title   string
	Authors []string
	Venue   string
	Year    string
	Volume  string
	Issue   string
	Pages   string
	DOI     string
}

// ScholarClient queries the Semantic Scholar graph API for a single best
// match per query.
type ScholarClient struct {
	Client    *http.Client
	APIKey    string
	UserAgent string
	Cache     *Cache
}

// NewScholarClient builds a paper-search client with a 4 s default timeout.
func NewScholarClient(cfg types.LookupConfig, cache *Cache) *ScholarClient {
	return &ScholarClient{
		Client:    clientWithTimeout(cfg.HTTPConfig, 4*time.Second),
		APIKey:    cfg.SemanticScholarAPIKey,
		UserAgent: cfg.UserAgent,
		Cache:     cache,
	}
}

// Search returns the top paper for the query, or nil when the API reports a
// zero result count or anything fails.
func (c *ScholarClient) Search(ctx context.Context, query string) *PaperResult {
	if query == "" {
		return nil
	}

	body, hit := c.Cache.Get("semantic_scholar", query)
	if !hit {
		params := url.Values{
			"query":  {query},
			"limit":  {"1"},
			"fields": {scholarFields},
		}
		headers := map[string]string{}
		if c.APIKey != "" {
			headers["x-api-key"] = c.APIKey
		}

		body = fetchJSON(ctx, c.Client, scholarAPIBase+"?"+params.Encode(), c.UserAgent, headers)
		if body == nil {
			return nil
		}
		c.Cache.Put("semantic_scholar", query, body)
	}

	var sr scholarResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil
	}
	if sr.Total == 0 || len(sr.Data) == 0 {
		return nil
	}

	paper := sr.Data[0]
	res := &PaperResult{
		Title:  paper.Title,
		Volume: paper.Volume,
		Issue:  paper.Issue,
		Pages:  paper.Pages,
		DOI:    paper.ExternalIDs.DOI,
	}
	if paper.Year > 0 {
		res.Year = fmt.Sprintf("%d", paper.Year)
	}
	for _, a := range paper.Authors {
		if a.Name != "" {
			res.Authors = append(res.Authors, a.Name)
		}
	}
	res.Venue = paper.Venue
	if res.Venue == "" {
		res.Venue = paper.PublicationVenue.Name
	}
	return res
}

// Semantic Scholar API JSON structures.
type scholarResponse struct {
	Total int            `json:"total"`
	Data  []scholarPaper `json:"data"`
}

type scholarPaper struct {
	Title            string            `json:"title"`
	Year             int               `json:"year"`
	Volume           string            `json:"volume"`
	Issue            string            `json:"issue"`
	Pages            string            `json:"pages"`
	Venue            string            `json:"venue"`
	PublicationVenue scholarVenue      `json:"publicationVenue"`
	Authors          []scholarAuthor   `json:"authors"`
	ExternalIDs      scholarExternalID `json:"externalIds"`
}

type scholarVenue struct {
	Name string `json:"name"`
}

type scholarAuthor struct {
	Name string `json:"name"`
}

type scholarExternalID struct {
	DOI string `json:"DOI"`
}
