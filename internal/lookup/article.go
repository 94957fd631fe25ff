// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"regexp"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// ArticleMeta is the structured descriptor of a news article page. Empty
// fields mean the page did not expose that information.
type ArticleMeta struct {
	Title  string
	Author string
	Date   string
}

// urlDateRe matches a /YYYY/MM/ path segment many newspaper URLs carry.
var urlDateRe = regexp.MustCompile(`/(\d{4})/(\d{2})/`)

// Article fetches the page and extracts a structured article descriptor:
// JSON-LD headline/author/date when embedded, else the og:title meta tag,
// else a readability pass for the title. A date embedded in the URL path
// serves as the fallback date. Fetch or parse failure yields an empty meta,
// never an error.
func (f *Fetcher) Article(ctx context.Context, pageURL string) ArticleMeta {
	var meta ArticleMeta

	if m := urlDateRe.FindStringSubmatch(pageURL); m != nil {
		if t, err := time.Parse("2006-01", m[1]+"-"+m[2]); err == nil {
			meta.Date = t.Format("January 2006")
		}
	}

	body := f.FetchPage(ctx, pageURL)
	if body == nil {
		return meta
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return meta
	}

	applyJSONLD(doc, &meta)

	if meta.Title == "" {
		meta.Title = ogTitle(doc)
	}
	if meta.Title == "" {
		if u, err := url.Parse(pageURL); err == nil {
			if article, err := readability.FromReader(bytes.NewReader(body), u); err == nil {
				meta.Title = strings.TrimSpace(article.Title)
			}
		}
	}
	return meta
}

// applyJSONLD scans script[type="application/ld+json"] blocks for article
// headline, author, and publication date.
func applyJSONLD(doc *html.Node, meta *ArticleMeta) {
	for _, script := range findNodes(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "script" &&
			attrValue(n, "type") == "application/ld+json"
	}) {
		if script.FirstChild == nil {
			continue
		}
		obj := decodeJSONLD(script.FirstChild.Data)
		if obj == nil {
			continue
		}

		if headline, ok := obj["headline"].(string); ok && meta.Title == "" {
			meta.Title = headline
		}
		if published, ok := obj["datePublished"].(string); ok && published != "" {
			if len(published) > 10 {
				published = published[:10]
			}
			meta.Date = published
		}
		if meta.Author == "" {
			meta.Author = jsonLDAuthors(obj["author"])
		}
		if meta.Title != "" {
			return
		}
	}
}

// decodeJSONLD unmarshals a JSON-LD payload, unwrapping a top-level array.
func decodeJSONLD(raw string) map[string]any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil
	}
	switch t := v.(type) {
	case map[string]any:
		return t
	case []any:
		if len(t) > 0 {
			if obj, ok := t[0].(map[string]any); ok {
				return obj
			}
		}
	}
	return nil
}

// jsonLDAuthors joins author names from a JSON-LD author value, which may be
// a single object or a list of objects.
func jsonLDAuthors(v any) string {
	switch t := v.(type) {
	case map[string]any:
		if name, ok := t["name"].(string); ok {
			return name
		}
	case []any:
		var names []string
		for _, entry := range t {
			if obj, ok := entry.(map[string]any); ok {
				if name, ok := obj["name"].(string); ok && name != "" {
					names = append(names, name)
				}
			}
		}
		return strings.Join(names, " and ")
	}
	return ""
}

// ogTitle returns the og:title meta content, trimmed of a trailing
// "| Site Name" segment.
func ogTitle(doc *html.Node) string {
	for _, n := range findNodes(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "meta" &&
			attrValue(n, "property") == "og:title"
	}) {
		content := attrValue(n, "content")
		if content != "" {
			title, _, _ := strings.Cut(content, "|")
			return strings.TrimSpace(title)
		}
	}
	return ""
}

// findNodes walks the tree in document order collecting nodes the predicate
// accepts.
func findNodes(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return found
}

// attrValue returns the value of the named attribute, or "".
func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
