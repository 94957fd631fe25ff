// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/meshintel/notesmith/pkg/types"
)

// caselawAPIBase is the CourtListener opinion search endpoint. Declared as a
// var so tests can substitute an httptest server.
var caselawAPIBase = "https://www.courtlistener.com/api/rest/v3/search/"

// CaseResult is the best-effort outcome of a case-law search.
type CaseResult struct {
	CaseName string
	Citation string
	Year     string
}

// CaseLawClient queries the CourtListener search API.
type CaseLawClient struct {
	Client    *http.Client
	Token     string
	UserAgent string
	Cache     *Cache

	limiter *rate.Limiter
}

// NewCaseLawClient builds a case-law client with a 5 s default timeout and
// 100 ms pacing between requests.
func NewCaseLawClient(cfg types.LookupConfig, cache *Cache) *CaseLawClient {
	return &CaseLawClient{
		Client:    clientWithTimeout(cfg.HTTPConfig, 5*time.Second),
		Token:     cfg.CourtListenerToken,
		UserAgent: cfg.UserAgent,
		Cache:     cache,
		limiter:   rate.NewLimiter(rate.Every(100*time.Millisecond), 1),
	}
}

// Search returns the best matching case for the query: the first of the top
// five results that carries a citation, else the first result, else nil.
// Any failure yields nil.
func (c *CaseLawClient) Search(ctx context.Context, query string) *CaseResult {
	if query == "" {
		return nil
	}

	body, hit := c.Cache.Get("courtlistener", query)
	if !hit {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil
			}
		}

		params := url.Values{
			"q":        {query},
			"type":     {"o"},
			"order_by": {"score desc"},
			"format":   {"json"},
		}
		headers := map[string]string{}
		if c.Token != "" {
			headers["Authorization"] = "Token " + c.Token
		}

		body = fetchJSON(ctx, c.Client, caselawAPIBase+"?"+params.Encode(), c.UserAgent, headers)
		if body == nil {
			return nil
		}
		c.Cache.Put("courtlistener", query, body)
	}

	var cr caselawResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return nil
	}
	if len(cr.Results) == 0 {
		return nil
	}

	best := cr.Results[0]
	for i, r := range cr.Results {
		if i >= 5 {
			break
		}
		if firstCitation(r.Citation) != "" || len(r.Citations) > 0 {
			best = r
			break
		}
	}

	res := &CaseResult{
		CaseName: best.CaseName,
		Citation: firstCitation(best.Citation),
	}
	if res.Citation == "" && len(best.Citations) > 0 {
		res.Citation = best.Citations[0]
	}
	if len(best.DateFiled) >= 4 {
		res.Year = best.DateFiled[:4]
	}
	return res
}

// CourtListener JSON structures. The citation field has been observed as
// both a string and a list, so it decodes through a RawMessage.
type caselawResponse struct {
	Results []caselawResult `json:"results"`
}

type caselawResult struct {
	CaseName  string          `json:"caseName"`
	Citation  json.RawMessage `json:"citation"`
	Citations []string        `json:"citations"`
	DateFiled string          `json:"dateFiled"`
}

// firstCitation extracts a citation string from a value that may be a JSON
// string, a list of strings, or absent.
func firstCitation(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0]
	}
	return ""
}
