// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/meshintel/notesmith/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Publisher      string    `yaml:"publisher,omitempty"`
	PublisherPlace string    `yaml:"publisher-place,omitempty"`
	Page           string    `yaml:"page,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
	Accessed       string    `yaml:"accessed,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// cslTypes maps internal citation types to CSL item types.
var cslTypes = map[types.CitationType]string{
	types.TypeNewspaper:  "article-newspaper",
	types.TypeGovernment: "report",
	types.TypeInterview:  "interview",
	types.TypeLegal:      "legal_case",
	types.TypeJournal:    "article-journal",
	types.TypeBook:       "book",
	types.TypeGeneric:    "document",
}

// FormatCSL writes parsed citations as a CSL-YAML list to w.
func FormatCSL(citations []*types.CitationData, w io.Writer) error {
	items := make([]CSLItem, len(citations))
	for i, d := range citations {
		items[i] = toCSLItem(d, i)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts one citation to a CSLItem. The fingerprint doubles as
// the item ID so repeated works share one entry key; untitled citations fall
// back to a positional ID.
func toCSLItem(d *types.CitationData, i int) CSLItem {
	id := fingerprint(d)
	if id == "" {
		id = fmt.Sprintf("citation-%d", i+1)
	}

	item := CSLItem{
		ID:             id,
		Type:           cslTypes[d.Type],
		Title:          d.Title,
		ContainerTitle: d.Journal,
		Publisher:      d.Publisher,
		PublisherPlace: d.City,
		Page:           d.Page,
		URL:            d.URL,
	}
	if item.Type == "" {
		item.Type = "document"
	}

	switch d.Type {
	case types.TypeInterview:
		if d.Interviewee != "" {
			item.Author = []CSLName{parseAuthorName(d.Interviewee)}
		}
		if d.Title == "" {
			item.Title = strings.TrimSpace(d.Raw)
		}
	case types.TypeLegal:
		// Reporter citation rides in container-title for legal_case items.
		item.ContainerTitle = d.Details
	default:
		if d.Author != "" {
			item.Author = []CSLName{parseAuthorName(strings.TrimSuffix(d.Author, " et al."))}
		}
	}

	if y := leadingYear(d.Year); y != 0 {
		item.Issued = &CSLDate{DateParts: [][]int{{y}}}
	}
	if d.URL != "" && d.AccessDate != "" && !isDOIURL(d.URL) {
		item.Accessed = d.AccessDate
	}
	return item
}

// leadingYear pulls a 4-digit year out of strings like "1974", "2021-03-04",
// or "March 2019". Zero means no year found.
func leadingYear(s string) int {
	if m := bareYearRe.FindString(s); m != "" {
		y, err := strconv.Atoi(m)
		if err == nil {
			return y
		}
	}
	return 0
}

// parseAuthorName splits a full name string into CSL family/given parts.
// It splits on the last space: everything before is given, the last token
// is family. Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
