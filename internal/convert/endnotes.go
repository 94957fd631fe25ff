// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/meshintel/notesmith/internal/docx"
	"github.com/meshintel/notesmith/pkg/types"
)

// leadingNumRe strips a "<number> " prefix the host format sometimes embeds
// inside the first text run of an endnote.
var leadingNumRe = regexp.MustCompile(`^\d+\s+`)

// sentinelID reports the separator/continuation pseudo-endnotes that carry
// no citation text.
func sentinelID(id string) bool { return id == "-1" || id == "0" }

// extractEndnotes reads the endnotes part and returns the real endnotes in
// ascending numeric id order.
func (j *Job) extractEndnotes() ([]types.Endnote, error) {
	doc, err := docx.LoadPart(j.workDir, docx.EndnotesPart)
	if err != nil {
		return nil, err
	}

	var notes []types.Endnote
	for _, en := range doc.FindElements("//w:endnote") {
		id := en.SelectAttrValue("w:id", "")
		if id == "" || sentinelID(id) {
			continue
		}
		notes = append(notes, types.Endnote{ID: id, Raw: endnoteText(en)})
	}

	sort.Slice(notes, func(a, b int) bool {
		na, _ := strconv.Atoi(notes[a].ID)
		nb, _ := strconv.Atoi(notes[b].ID)
		return na < nb
	})
	return notes, nil
}

// endnoteText flattens an endnote's runs, skipping runs that hold only the
// auto-numbering marker.
func endnoteText(en *etree.Element) string {
	var b strings.Builder
	for _, r := range en.FindElements(".//w:r") {
		if r.FindElement("w:endnoteRef") != nil {
			continue
		}
		for _, t := range r.FindElements(".//w:t") {
			b.WriteString(t.Text())
		}
	}
	raw := strings.TrimSpace(b.String())
	return leadingNumRe.ReplaceAllString(raw, "")
}
