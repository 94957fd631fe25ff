// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"strings"

	"github.com/beevik/etree"

	"github.com/meshintel/notesmith/internal/citation"
	"github.com/meshintel/notesmith/internal/docx"
	"github.com/meshintel/notesmith/internal/incipit"
)

// extractIncipits maps endnote id to the incipit of the clause its marker
// sits in. Markers resolve independently against their own offsets, so two
// markers in one paragraph get different incipits.
func (j *Job) extractIncipits(doc *etree.Document) map[string]string {
	out := make(map[string]string)
	if !j.opts.ExtractIncipit {
		return out
	}
	for _, p := range docx.Paragraphs(doc) {
		text, markers := docx.ParagraphText(p)
		for _, m := range markers {
			if sentinelID(m.ID) {
				continue
			}
			out[m.ID] = incipit.Extract(text, m.Offset, j.opts.WordCount)
		}
	}
	return out
}

// renderNotes fills in the formatted text for every endnote. With formatting
// off, only URL extraction runs and the job stays fully offline.
func (j *Job) renderNotes(ctx context.Context) {
	for i := range j.endnotes {
		n := &j.endnotes[i]
		if j.opts.ApplyFormatting {
			n.Formatted, n.URL = j.engine.Format(ctx, n.Raw)
		} else {
			text, u := citation.ExtractURL(n.Raw)
			n.Formatted, n.URL = strings.TrimSpace(text), u
		}
	}
}
