// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
)

// Relationship namespace URI used when a fresh rels part must be created.
const relsNamespace = "http://schemas.openxmlformats.org/package/2006/relationships"

// HyperlinkRelType is the relationship type for external hyperlinks.
const HyperlinkRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"

// LoadPart parses one XML part of the unpacked tree.
func LoadPart(dir, part string) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(filepath.Join(dir, filepath.FromSlash(part))); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", part, err)
	}
	return doc, nil
}

// SavePart writes the document back to its part path.
func SavePart(doc *etree.Document, dir, part string) error {
	target := filepath.Join(dir, filepath.FromSlash(part))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if err := doc.WriteToFile(target); err != nil {
		return fmt.Errorf("writing %s: %w", part, err)
	}
	return nil
}

// Marker is one endnote reference inside a paragraph: the endnote id and the
// rune offset in the flattened paragraph text immediately after the marker.
type Marker struct {
	ID     string
	Offset int
}

// ParagraphText flattens a w:p element into its visible text and collects
// the endnote markers in document order. Marker offsets index the returned
// string in runes, so they can be handed straight to the incipit extractor.
func ParagraphText(p *etree.Element) (string, []Marker) {
	var runes []rune
	var markers []Marker
	walk(p, func(el *etree.Element) {
		switch el.Tag {
		case "t":
			runes = append(runes, []rune(el.Text())...)
		case "endnoteReference":
			if id := el.SelectAttrValue("w:id", ""); id != "" {
				markers = append(markers, Marker{ID: id, Offset: len(runes)})
			}
		}
	})
	return string(runes), markers
}

// Paragraphs returns the w:p elements under the document body in order.
func Paragraphs(doc *etree.Document) []*etree.Element {
	return doc.FindElements("//w:body/w:p")
}

// Body returns the w:body element, or nil.
func Body(doc *etree.Document) *etree.Element {
	return doc.FindElement("//w:body")
}

// NewRelationships builds an empty rels part for documents that had no
// hyperlinks before conversion.
func NewRelationships() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	root := doc.CreateElement("Relationships")
	root.CreateAttr("xmlns", relsNamespace)
	return doc
}

// AddRelationship appends an external-target relationship and returns the
// element for further decoration.
func AddRelationship(doc *etree.Document, id, relType, target string) *etree.Element {
	root := doc.Root()
	rel := root.CreateElement("Relationship")
	rel.CreateAttr("Id", id)
	rel.CreateAttr("Type", relType)
	rel.CreateAttr("Target", target)
	rel.CreateAttr("TargetMode", "External")
	return rel
}

func walk(el *etree.Element, fn func(*etree.Element)) {
	for _, ch := range el.ChildElements() {
		fn(ch)
		walk(ch, fn)
	}
}
