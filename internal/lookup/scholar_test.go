// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/meshintel/notesmith/pkg/types"
)

func TestScholarSearchRequestParams(t *testing.T) {
	var captured *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		fmt.Fprint(w, `{"total":0,"data":[]}`)
	}))
	defer ts.Close()

	old := scholarAPIBase
	scholarAPIBase = ts.URL
	defer func() { scholarAPIBase = old }()

	c := NewScholarClient(types.LookupConfig{SemanticScholarAPIKey: "sk_1"}, nil)
	c.Client = ts.Client()
	c.Search(context.Background(), "attention is all you need")

	q := captured.URL.Query()
	if got := q.Get("query"); got != "attention is all you need" {
		t.Errorf("query param = %q", got)
	}
	if got := q.Get("limit"); got != "1" {
		t.Errorf("limit param = %q, want 1", got)
	}
	for _, f := range []string{"venue", "volume", "issue", "pages", "externalIds"} {
		if !strings.Contains(q.Get("fields"), f) {
			t.Errorf("fields param %q missing %q", q.Get("fields"), f)
		}
	}
	if got := captured.Header.Get("x-api-key"); got != "sk_1" {
		t.Errorf("x-api-key header = %q, want sk_1", got)
	}
}

func TestScholarSearchParsesResult(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"total":1,"data":[{
			"title":"Attention Is All You Need",
			"year":2017,
			"volume":"30","issue":"2","pages":"5998-6008",
			"venue":"NeurIPS",
			"authors":[{"name":"Ashish Vaswani"},{"name":"Noam Shazeer"}],
			"externalIds":{"DOI":"10.5555/3295222"}
		}]}`)
	}))
	defer ts.Close()

	old := scholarAPIBase
	scholarAPIBase = ts.URL
	defer func() { scholarAPIBase = old }()

	c := NewScholarClient(types.LookupConfig{}, nil)
	c.Client = ts.Client()
	res := c.Search(context.Background(), "attention")
	if res == nil {
		t.Fatal("Search returned nil")
	}
	if res.Title != "Attention Is All You Need" {
		t.Errorf("Title = %q", res.Title)
	}
	if res.Year != "2017" {
		t.Errorf("Year = %q, want 2017", res.Year)
	}
	if len(res.Authors) != 2 || res.Authors[0] != "Ashish Vaswani" {
		t.Errorf("Authors = %v", res.Authors)
	}
	if res.Venue != "NeurIPS" {
		t.Errorf("Venue = %q", res.Venue)
	}
	if res.Volume != "30" || res.Issue != "2" || res.Pages != "5998-6008" {
		t.Errorf("details = %q/%q/%q", res.Volume, res.Issue, res.Pages)
	}
	if res.DOI != "10.5555/3295222" {
		t.Errorf("DOI = %q", res.DOI)
	}
}

func TestScholarSearchVenueFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"total":1,"data":[{
			"title":"A Paper",
			"publicationVenue":{"name":"Journal of Tests"}
		}]}`)
	}))
	defer ts.Close()

	old := scholarAPIBase
	scholarAPIBase = ts.URL
	defer func() { scholarAPIBase = old }()

	c := NewScholarClient(types.LookupConfig{}, nil)
	c.Client = ts.Client()
	res := c.Search(context.Background(), "a paper")
	if res == nil {
		t.Fatal("Search returned nil")
	}
	if res.Venue != "Journal of Tests" {
		t.Errorf("Venue = %q, want Journal of Tests", res.Venue)
	}
}

func TestScholarSearchZeroTotalYieldsNil(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"total":0,"data":[]}`)
	}))
	defer ts.Close()

	old := scholarAPIBase
	scholarAPIBase = ts.URL
	defer func() { scholarAPIBase = old }()

	c := NewScholarClient(types.LookupConfig{}, nil)
	c.Client = ts.Client()
	if res := c.Search(context.Background(), "no such paper"); res != nil {
		t.Errorf("Search = %+v, want nil", res)
	}
}

func TestScholarSearchServerErrorYieldsNil(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	old := scholarAPIBase
	scholarAPIBase = ts.URL
	defer func() { scholarAPIBase = old }()

	c := NewScholarClient(types.LookupConfig{}, nil)
	c.Client = ts.Client()
	if res := c.Search(context.Background(), "anything"); res != nil {
		t.Errorf("Search = %+v, want nil", res)
	}
}
