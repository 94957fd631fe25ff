// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"context"
	"net/url"
	"path"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/meshintel/notesmith/pkg/types"
)

var (
	// urlPhraseRe captures a URL together with any "Accessed <date>" style
	// phrase in front of it, so both come out of the working text at once.
	urlPhraseRe = regexp.MustCompile(`(?:[Aa]ccessed|[Rr]etrieved)?\s*(?:on\s+)?(?:[A-Za-z]+\.?\s+\d{1,2},?\s+\d{4})?[\s,.]*([Hh]ttps?://\S+)`)

	// trailingPageRe matches a page number (or range) hanging off the end of
	// a citation, e.g. ", 115." or ", pp. 214-216" has already been handled
	// by the book-query cleaner.
	trailingPageRe = regexp.MustCompile(`[,.]\s*(\d+(?:[-\x{2013}]\d+)?)\.?$`)

	// genericSplitRe finds the first sentence boundary followed by a capital
	// or opening quote, the usual seam between author and title.
	genericSplitRe = regexp.MustCompile(`\.\s+([A-Z"'\x{201C}])`)

	interviewComplexRe = regexp.MustCompile(`(?i)^([^,]+?)\s+interview\s+with\s+([^,]+)`)
	interviewSimpleRe  = regexp.MustCompile(`(?i)interview\s+with\s+([^,]+)`)
	interviewDateRe    = regexp.MustCompile(`(?i)(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}`)
	bareYearRe         = regexp.MustCompile(`\b(?:19|20)\d\d\b`)

	// reporterRe recognizes the "<volume> <reporter> <page>" shape of a
	// legal citation, e.g. "410 U.S. 113".
	reporterRe = regexp.MustCompile(`\b\d+\s+[A-Za-z][A-Za-z0-9.\s]*?\s*\d+\b`)

	landmarkKeys = sortedLandmarkKeys()

	slugCaser = cases.Title(language.AmericanEnglish)
)

func sortedLandmarkKeys() []string {
	keys := make([]string, 0, len(landmarkCases))
	for k := range landmarkCases {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ExtractURL removes the first URL (and any leading "Accessed <date>"
// phrase) from text, returning the remaining text and the URL.
func ExtractURL(text string) (string, string) {
	m := urlPhraseRe.FindStringSubmatchIndex(text)
	if m == nil {
		return text, ""
	}
	pageURL := text[m[2]:m[3]]
	before := strings.TrimRightFunc(text[:m[0]], unicode.IsSpace)
	after := strings.TrimSpace(text[m[1]:])
	switch {
	case before == "":
		return after, pageURL
	case after == "":
		return before, pageURL
	default:
		return before + " " + after, pageURL
	}
}

func isDOIURL(u string) bool { return strings.Contains(u, "doi.org") }

// urlHost returns the lowercased host of pageURL, or the whole string
// lowercased when it does not parse as a URL. Routing only ever looks at
// the host; a news domain appearing in the path must not match.
func urlHost(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err == nil && u.Host != "" {
		return strings.ToLower(u.Host)
	}
	return strings.ToLower(pageURL)
}

// matchNewspaper returns the publication name for a known news host, or "".
// Table order decides when one domain contains another.
func matchNewspaper(pageURL string) string {
	host := urlHost(pageURL)
	for _, n := range newspaperDomains {
		if strings.Contains(host, n.domain) {
			return n.name
		}
	}
	return ""
}

func isGovURL(pageURL string) bool {
	host := urlHost(pageURL)
	if strings.Contains(host, ".gov") {
		return true
	}
	for _, g := range govDomains {
		if strings.Contains(host, g.domain) {
			return true
		}
	}
	return false
}

func isInterview(text string) bool {
	lower := strings.ToLower(text)
	for _, trig := range interviewTriggers {
		if strings.Contains(lower, trig) {
			return true
		}
	}
	return false
}

func isLegal(text string) bool {
	lower := strings.ToLower(text)
	if strings.Contains(lower, " v. ") || strings.Contains(lower, " vs. ") || strings.Contains(lower, " vs ") {
		return true
	}
	if _, ok := matchLandmark(normalizeLegal(text)); ok {
		return true
	}
	return reporterRe.MatchString(text)
}

// normalizeLegal lowercases, drops periods and commas, and collapses the
// "v." variants so case names line up with landmarkCases keys.
func normalizeLegal(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer(".", "", ",", "").Replace(s)
	s = strings.ReplaceAll(s, " versus ", " v ")
	s = strings.ReplaceAll(s, " vs ", " v ")
	return strings.Join(strings.Fields(s), " ")
}

// matchLandmark resolves a normalized case name against the local cache,
// exactly first and then fuzzily. A citation that still carries reporter
// numbers ("roe v wade 410 us 113") fuzzes too far from its key, so the
// digit-free prefix gets a second try.
func matchLandmark(norm string) (landmarkCase, bool) {
	if norm == "" {
		return landmarkCase{}, false
	}
	if lc, ok := landmarkCases[norm]; ok {
		return lc, true
	}
	if key, ok := bestMatch(norm, landmarkKeys, 0.8); ok {
		return landmarkCases[key], true
	}
	if i := strings.IndexAny(norm, "0123456789"); i > 0 {
		prefix := strings.TrimSpace(norm[:i])
		if lc, ok := landmarkCases[prefix]; ok {
			return lc, true
		}
		if key, ok := bestMatch(prefix, landmarkKeys, 0.8); ok {
			return landmarkCases[key], true
		}
	}
	return landmarkCase{}, false
}

func (e *Engine) parseNewspaper(ctx context.Context, pageURL, text string, d *types.CitationData) {
	d.Type = types.TypeNewspaper
	d.Journal = matchNewspaper(pageURL)
	d.Title = text
	if e.sources.Pages == nil {
		return
	}
	meta := e.sources.Pages.Article(ctx, pageURL)
	if meta.Title != "" {
		d.Title = meta.Title
	}
	d.Author = meta.Author
	if meta.Date != "" {
		d.Year = meta.Date
	}
}

func (e *Engine) parseGovernment(pageURL, text string, d *types.CitationData) {
	d.Type = types.TypeGovernment
	host := strings.TrimPrefix(urlHost(pageURL), "www.")
	for _, g := range govDomains {
		if strings.Contains(host, g.domain) {
			d.Author = g.name
			break
		}
	}
	if d.Author == "" {
		if name, ok := bestMatch(text, agencyNames, 0.6); ok {
			d.Author = name
		} else {
			d.Author = "U.S. Government"
		}
	}
	if utf8.RuneCountInString(text) < 10 {
		if slug := titleFromSlug(pageURL); slug != "" {
			d.Title = slug
			return
		}
	}
	d.Title = text
}

// titleFromSlug reconstructs a document title from the URL's last path
// segment, e.g. "/press/annual-budget-report.pdf" -> "Annual Budget Report".
func titleFromSlug(pageURL string) string {
	seg := path.Base(strings.TrimRight(pageURL, "/"))
	if i := strings.IndexAny(seg, "?#"); i >= 0 {
		seg = seg[:i]
	}
	seg = strings.TrimSuffix(seg, path.Ext(seg))
	seg = strings.NewReplacer("-", " ", "_", " ").Replace(seg)
	seg = strings.TrimSpace(seg)
	if seg == "" || strings.Contains(seg, "://") {
		return ""
	}
	return slugCaser.String(seg)
}

// parseInterview reads names from the page-stripped text but dates from the
// pre-strip text: a trailing ", March 3, 2021." loses its year to the page
// regex otherwise.
func parseInterview(text, preStrip string, d *types.CitationData) {
	d.Type = types.TypeInterview
	if m := interviewDateRe.FindString(preStrip); m != "" {
		d.InterviewDate = m
	} else if y := bareYearRe.FindString(preStrip); y != "" {
		d.InterviewDate = y
	}
	if m := interviewComplexRe.FindStringSubmatch(text); m != nil {
		d.Interviewer = strings.TrimSpace(m[1])
		d.Interviewee = strings.TrimSpace(m[2])
		return
	}
	if m := interviewSimpleRe.FindStringSubmatch(text); m != nil {
		d.Interviewee = strings.TrimSpace(m[1])
		return
	}
	d.Title = text
}

func (e *Engine) parseLegal(ctx context.Context, text string, d *types.CitationData) {
	d.Type = types.TypeLegal
	if lc, ok := matchLandmark(normalizeLegal(text)); ok {
		d.Title = lc.caseName
		d.Details = lc.citation
		d.Year = lc.year
		return
	}
	if e.sources.CaseLaw != nil {
		if res := e.sources.CaseLaw.Search(ctx, text); res != nil {
			d.Title = res.CaseName
			if d.Title == "" {
				d.Title = text
			}
			d.Details = res.Citation
			d.Year = res.Year
			return
		}
	}
	d.Title = text
}

func (e *Engine) parseJournal(ctx context.Context, text string, d *types.CitationData) bool {
	if e.sources.Papers == nil {
		return false
	}
	res := e.sources.Papers.Search(ctx, text)
	if res == nil || res.Title == "" {
		return false
	}
	d.Type = types.TypeJournal
	d.Title = res.Title
	d.Year = res.Year
	d.Author = joinAuthors(res.Authors)
	d.Journal = res.Venue
	d.Details = journalDetails(res.Volume, res.Issue, res.Pages)
	if res.DOI != "" {
		d.URL = "https://doi.org/" + res.DOI
		d.URLSuffix = ""
	}
	return true
}

func (e *Engine) parseBook(ctx context.Context, text string, d *types.CitationData) bool {
	if e.sources.Books == nil {
		return false
	}
	res := e.sources.Books.Search(ctx, text)
	if res == nil || res.Title == "" {
		return false
	}
	d.Type = types.TypeBook
	d.Title = res.Title
	if res.Subtitle != "" {
		d.Title += ": " + res.Subtitle
	}
	if len(res.Authors) > 0 {
		d.Author = res.Authors[0]
	}
	d.Publisher = res.Publisher
	if len(res.PublishedDate) >= 4 {
		d.Year = res.PublishedDate[:4]
	}
	for _, p := range publisherPlaces {
		if res.Publisher != "" && strings.Contains(strings.ToLower(res.Publisher), strings.ToLower(p.domain)) {
			d.City = p.name
			break
		}
	}
	return true
}

func parseGeneric(text string, d *types.CitationData) {
	d.Type = types.TypeGeneric
	if m := genericSplitRe.FindStringSubmatchIndex(text); m != nil {
		first := strings.TrimSpace(text[:m[0]])
		rest := strings.TrimSpace(text[m[2]:])
		if utf8.RuneCountInString(first) < 60 && strings.Contains(first, " ") && rest != "" {
			d.Author = first
			d.Title = rest
			return
		}
	}
	d.Title = text
}

func joinAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return authors[0]
	default:
		return authors[0] + " et al."
	}
}

func journalDetails(vol, issue, pages string) string {
	var parts []string
	if vol != "" {
		parts = append(parts, "vol. "+vol)
	}
	if issue != "" {
		parts = append(parts, "no. "+issue)
	}
	if pages != "" {
		parts = append(parts, "pp. "+pages)
	}
	return strings.Join(parts, ", ")
}
