// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"strings"
	"unicode"

	"github.com/meshintel/notesmith/pkg/types"
)

const fingerprintLen = 30

// fingerprint identifies a work for dedup: the title with everything but
// letters and digits removed, lowercased, truncated to 30 runes. Empty
// titles yield "" and never dedup.
func fingerprint(d *types.CitationData) string {
	if d.Title == "" {
		return ""
	}
	var b strings.Builder
	n := 0
	for _, r := range d.Title {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
		n++
		if n == fingerprintLen {
			break
		}
	}
	return b.String()
}

func pageSuffix(d *types.CitationData) string {
	if d.Page == "" {
		return ""
	}
	return ", " + d.Page
}

func renderIbid(d *types.CitationData) string {
	return "Ibid." + pageSuffix(d)
}

// renderShort is the shortened form for a work already cited: author surname
// segment plus a truncated title.
func renderShort(d *types.CitationData) string {
	title := d.Title
	if i := strings.Index(title, ":"); i >= 0 {
		title = title[:i]
	}
	words := strings.Fields(title)
	if len(words) > 4 {
		title = strings.Join(words[:4], " ") + "..."
	} else {
		title = strings.Join(words, " ")
	}

	var parts []string
	if d.Author != "" {
		auth := d.Author
		if i := strings.Index(auth, ","); i >= 0 {
			auth = auth[:i]
		}
		parts = append(parts, auth)
	}
	if title != "" {
		parts = append(parts, title)
	}
	return strings.Join(parts, ", ") + pageSuffix(d)
}

func renderFull(d *types.CitationData) string {
	if d.Type == types.TypeLegal {
		out := d.Title
		if d.Details != "" {
			out += ", " + d.Details
		}
		if d.Year != "" {
			out += " (" + d.Year + ")"
		}
		return out + pageSuffix(d)
	}

	var b strings.Builder
	if d.Author != "" {
		b.WriteString(d.Author)
		b.WriteString(", ")
	}
	b.WriteString(d.Title)

	pub := joinNonEmpty(", ", d.City, d.Publisher, d.Year)
	if pub != "" {
		pub = " (" + pub + ")"
	}

	if d.Journal != "" {
		out := b.String() + " " + d.Journal
		if d.Details != "" {
			out += " " + d.Details
		}
		return out + pub + pageSuffix(d)
	}
	return b.String() + pub + pageSuffix(d)
}

// renderInterview formats an interview note. Interviews are one-off events,
// so they never shorten to Ibid. and never enter the history.
func renderInterview(d *types.CitationData) string {
	if d.Interviewee == "" {
		if d.Title != "" && d.InterviewDate != "" && !strings.Contains(d.Title, d.InterviewDate) {
			return d.Title + ", " + d.InterviewDate
		}
		if d.Title != "" {
			return d.Title
		}
		return d.Raw
	}
	by := d.Interviewer
	if by == "" {
		by = "author"
	}
	out := d.Interviewee + ", interview by " + by
	if d.InterviewLocation != "" {
		out += ", " + d.InterviewLocation
	}
	if d.InterviewDate != "" {
		out += ", " + d.InterviewDate
	}
	return out
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
