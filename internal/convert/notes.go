// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/meshintel/notesmith/internal/docx"
	"github.com/meshintel/notesmith/pkg/types"
)

// Seeds keep generated ids clear of anything the authoring tool allocated.
const (
	bookmarkSeed = 9000
	relSeed      = 1000
)

const notesHeading = "Notes"

func bookmarkName(endnoteID string) string { return "NoteRef_" + endnoteID }

// rewriteDocument replaces in-body endnote markers with bookmark pairs,
// appends the Notes section, and persists hyperlink relationships.
func (j *Job) rewriteDocument(doc *etree.Document) error {
	body := docx.Body(doc)
	if body == nil {
		return ErrNoBody
	}

	bookmarks := rewriteMarkers(doc)

	rels, err := j.loadRels()
	if err != nil {
		return err
	}
	relIDs := make(map[string]string)
	next := relSeed
	for _, n := range j.endnotes {
		if n.URL == "" {
			continue
		}
		id := fmt.Sprintf("rIdLink%d", next)
		next++
		docx.AddRelationship(rels, id, docx.HyperlinkRelType, n.URL)
		relIDs[n.ID] = id
	}

	j.appendNotes(body, bookmarks, relIDs)

	return docx.SavePart(rels, j.workDir, docx.DocumentRels)
}

// rewriteMarkers swaps every non-sentinel endnote marker for a bookmark pair
// around its run. The marker element goes away; a run left with no visible
// content goes with it. A repeated reference to the same endnote keeps the
// first bookmark, so each name is defined exactly once. Returns endnote
// id -> bookmark name.
func rewriteMarkers(doc *etree.Document) map[string]string {
	names := make(map[string]string)
	bmkID := bookmarkSeed
	for _, ref := range doc.FindElements("//w:endnoteReference") {
		id := ref.SelectAttrValue("w:id", "")
		if id == "" || sentinelID(id) {
			continue
		}
		run := ref.Parent()
		if run == nil || run.Parent() == nil {
			continue
		}
		parent := run.Parent()

		if _, seen := names[id]; !seen {
			name := bookmarkName(id)

			start := etree.NewElement("w:bookmarkStart")
			start.CreateAttr("w:id", strconv.Itoa(bmkID))
			start.CreateAttr("w:name", name)
			end := etree.NewElement("w:bookmarkEnd")
			end.CreateAttr("w:id", strconv.Itoa(bmkID))
			bmkID++

			parent.InsertChildAt(run.Index(), start)
			parent.InsertChildAt(run.Index()+1, end)
			names[id] = name
		}

		run.RemoveChild(ref)
		if !hasVisibleContent(run) {
			parent.RemoveChild(run)
		}
	}
	return names
}

// hasVisibleContent reports whether a run still renders anything once its
// marker is gone (run properties alone do not).
func hasVisibleContent(run *etree.Element) bool {
	for _, ch := range run.ChildElements() {
		if ch.Tag != "rPr" {
			return true
		}
	}
	return false
}

// appendNotes adds the Notes section before any trailing section properties:
// a page break, a heading, then one paragraph per endnote with a
// page-reference field, the rendered citation, and an optional hyperlink.
func (j *Job) appendNotes(body *etree.Element, bookmarks, relIDs map[string]string) {
	paras := []*etree.Element{pageBreakPara(), headingPara()}
	for _, n := range j.endnotes {
		paras = append(paras, j.notePara(n, bookmarks[n.ID], relIDs[n.ID]))
	}

	sectPr := body.FindElement("w:sectPr")
	for _, p := range paras {
		if sectPr != nil {
			body.InsertChildAt(sectPr.Index(), p)
		} else {
			body.AddChild(p)
		}
	}
}

func pageBreakPara() *etree.Element {
	p := etree.NewElement("w:p")
	br := p.CreateElement("w:r").CreateElement("w:br")
	br.CreateAttr("w:type", "page")
	return p
}

func headingPara() *etree.Element {
	p := etree.NewElement("w:p")
	style := p.CreateElement("w:pPr").CreateElement("w:pStyle")
	style.CreateAttr("w:val", "Heading1")
	addTextRun(p, notesHeading, "")
	return p
}

// notePara composes one Notes paragraph. The page-reference field result is
// a placeholder; the host application refreshes field values on open.
func (j *Job) notePara(n types.Endnote, bookmark, relID string) *etree.Element {
	p := etree.NewElement("w:p")

	addFieldChar(p, "begin")
	instr := p.CreateElement("w:r").CreateElement("w:instrText")
	instr.CreateAttr("xml:space", "preserve")
	instr.SetText(" PAGEREF " + bookmark + ` \h `)
	addFieldChar(p, "separate")
	addTextRun(p, "1", "")
	addFieldChar(p, "end")

	addTextRun(p, ". ", "")
	if inc := j.incipits[n.ID]; inc != "" {
		addTextRun(p, inc+": ", styleTag(j.opts.FormatStyle))
	}
	addTextRun(p, n.Formatted, "")

	if n.URL != "" && relID != "" {
		h := p.CreateElement("w:hyperlink")
		h.CreateAttr("r:id", relID)
		r := h.CreateElement("w:r")
		rstyle := r.CreateElement("w:rPr").CreateElement("w:rStyle")
		rstyle.CreateAttr("w:val", "Hyperlink")
		t := r.CreateElement("w:t")
		t.CreateAttr("xml:space", "preserve")
		t.SetText(" " + n.URL)
	}
	return p
}

func styleTag(s types.FormatStyle) string {
	if s == types.StyleItalic {
		return "w:i"
	}
	return "w:b"
}

// addTextRun appends a run holding text; emphasis is the run-property tag to
// set ("w:b", "w:i"), or "" for none.
func addTextRun(p *etree.Element, text, emphasis string) {
	r := p.CreateElement("w:r")
	if emphasis != "" {
		r.CreateElement("w:rPr").CreateElement(emphasis)
	}
	t := r.CreateElement("w:t")
	t.CreateAttr("xml:space", "preserve")
	t.SetText(text)
}

func addFieldChar(p *etree.Element, fldType string) {
	fc := p.CreateElement("w:r").CreateElement("w:fldChar")
	fc.CreateAttr("w:fldCharType", fldType)
}

// loadRels opens the document relationship table, creating a fresh one when
// the package has none.
func (j *Job) loadRels() (*etree.Document, error) {
	if docx.HasPart(j.workDir, docx.DocumentRels) {
		return docx.LoadPart(j.workDir, docx.DocumentRels)
	}
	return docx.NewRelationships(), nil
}
