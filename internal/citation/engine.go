// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citation classifies raw endnote text into source types and renders
// Chicago-style citations with per-document deduplication (full note on first
// use, short form on reuse, "Ibid." on immediate repetition).
package citation

import (
	"context"
	"strings"
	"time"

	"github.com/meshintel/notesmith/internal/lookup"
	"github.com/meshintel/notesmith/pkg/types"
)

// CaseLawFinder resolves a case name to its reporter citation.
type CaseLawFinder interface {
	Search(ctx context.Context, query string) *lookup.CaseResult
}

// PaperFinder resolves free text to journal-article metadata.
type PaperFinder interface {
	Search(ctx context.Context, query string) *lookup.PaperResult
}

// BookFinder resolves free text to book metadata.
type BookFinder interface {
	Search(ctx context.Context, query string) *lookup.BookResult
}

// ArticleFetcher scrapes title, author, and date from a news URL.
type ArticleFetcher interface {
	Article(ctx context.Context, pageURL string) lookup.ArticleMeta
}

// Sources bundles the external enrichment backends. Any field may be nil, in
// which case the corresponding branch degrades to local parsing.
type Sources struct {
	CaseLaw CaseLawFinder
	Papers  PaperFinder
	Books   BookFinder
	Pages   ArticleFetcher
}

// Engine formats one document's citations. It carries the citation history
// for dedup, so an Engine must not be shared across documents and is not safe
// for concurrent use.
type Engine struct {
	citationStyle string
	sources       Sources
	now           func() time.Time

	history   []*types.CitationData
	seenWorks map[string]*types.CitationData
}

// New returns an Engine with an empty history. citationStyle names the
// format family; empty or unrecognized values fall back to "chicago", the
// only family implemented.
func New(citationStyle string, sources Sources) *Engine {
	if citationStyle != "chicago" {
		citationStyle = "chicago"
	}
	return &Engine{
		citationStyle: citationStyle,
		sources:       sources,
		now:           time.Now,
		seenWorks:     make(map[string]*types.CitationData),
	}
}

// CitationStyle reports the citation format family the engine renders.
func (e *Engine) CitationStyle() string { return e.citationStyle }

// History returns the citations formatted so far, in order.
func (e *Engine) History() []*types.CitationData { return e.history }

// Format classifies and renders one raw citation, updating the dedup
// history. It returns the rendered text and the extracted URL ("" if none).
// Interviews are rendered but never enter the history.
func (e *Engine) Format(ctx context.Context, raw string) (string, string) {
	d := e.Parse(ctx, raw)
	if d.Type == types.TypeInterview {
		return renderInterview(d), d.URL
	}

	fp := fingerprint(d)
	var out string
	switch {
	case fp != "" && len(e.history) > 0 && fingerprint(e.history[len(e.history)-1]) == fp:
		out = renderIbid(d)
	case fp != "" && e.seenWorks[fp] != nil:
		out = renderShort(d)
	default:
		if fp != "" {
			e.seenWorks[fp] = d
		}
		out = renderFull(d)
	}
	e.history = append(e.history, d)

	if d.URL != "" && d.URLSuffix != "" {
		out += ". " + d.URLSuffix + "."
	}
	return out, d.URL
}

// Parse classifies raw citation text without touching the dedup history.
func (e *Engine) Parse(ctx context.Context, raw string) *types.CitationData {
	d := &types.CitationData{Raw: raw, Type: types.TypeGeneric}

	text, pageURL := ExtractURL(raw)
	d.URL = pageURL
	if pageURL != "" {
		d.AccessDate = e.now().Format("January 2, 2006")
		if !isDOIURL(pageURL) {
			d.URLSuffix = "Accessed " + d.AccessDate
		}
	}

	// Page numbers come off before routing so they don't pollute queries.
	// The interview branch still sees the pre-strip text because a trailing
	// ", March 3, 2021." would otherwise lose its year to this regex.
	clean := strings.TrimSpace(text)
	preStrip := clean
	if m := trailingPageRe.FindStringSubmatchIndex(clean); m != nil {
		d.Page = clean[m[2]:m[3]]
		clean = strings.TrimRight(strings.TrimSpace(clean[:m[0]]), ".,")
		clean = strings.TrimSpace(clean)
	}

	switch {
	// URL branches route even when no text remains: a bare news link is
	// still a newspaper citation.
	case pageURL != "" && matchNewspaper(pageURL) != "":
		e.parseNewspaper(ctx, pageURL, clean, d)
	case pageURL != "" && isGovURL(pageURL):
		e.parseGovernment(pageURL, clean, d)
	case clean == "":
		return d
	case isInterview(clean):
		parseInterview(clean, preStrip, d)
	case isLegal(clean):
		e.parseLegal(ctx, clean, d)
	default:
		// Short fragments are not worth an API round trip.
		if len(strings.Fields(clean)) > 3 {
			if e.parseJournal(ctx, clean, d) {
				return d
			}
			if e.parseBook(ctx, clean, d) {
				return d
			}
		}
		parseGeneric(clean, d)
	}
	return d
}
