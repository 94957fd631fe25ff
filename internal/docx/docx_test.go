// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p>
      <w:r><w:t>He called it </w:t></w:r>
      <w:r><w:t>a landmark case.</w:t></w:r>
      <w:r><w:rPr><w:vertAlign w:val="superscript"/></w:rPr><w:endnoteReference w:id="2"/></w:r>
      <w:r><w:t> More text follows.</w:t></w:r>
      <w:r><w:endnoteReference w:id="3"/></w:r>
    </w:p>
    <w:p>
      <w:r><w:t>Second paragraph.</w:t></w:r>
    </w:p>
    <w:sectPr/>
  </w:body>
</w:document>`

func TestPackUnpackRoundTrip(t *testing.T) {
	srcDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(srcDir, "word", "_rels"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "word", "document.xml"), []byte(sampleDocument), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "word", "_rels", "document.xml.rels"), []byte("<Relationships/>"), 0o644))

	archive := filepath.Join(t.TempDir(), "out.docx")
	require.NoError(t, Pack(srcDir, archive))

	destDir := t.TempDir()
	require.NoError(t, Unpack(archive, destDir))

	got, err := os.ReadFile(filepath.Join(destDir, "word", "document.xml"))
	require.NoError(t, err)
	assert.Equal(t, sampleDocument, string(got))
	assert.True(t, HasPart(destDir, DocumentRels))
	assert.False(t, HasPart(destDir, EndnotesPart))
}

func TestUnpackRejectsEscapingEntries(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "evil.zip")
	f, err := os.Create(archive)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("../outside.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("nope"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	err = Unpack(archive, t.TempDir())
	assert.Error(t, err)
}

func TestParagraphTextCollectsMarkers(t *testing.T) {
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(sampleDocument))

	paras := Paragraphs(doc)
	require.Len(t, paras, 2)

	text, markers := ParagraphText(paras[0])
	assert.Equal(t, "He called it a landmark case. More text follows.", text)
	require.Len(t, markers, 2)

	assert.Equal(t, "2", markers[0].ID)
	assert.Equal(t, len([]rune("He called it a landmark case.")), markers[0].Offset)
	assert.Equal(t, "3", markers[1].ID)
	assert.Equal(t, len([]rune(text)), markers[1].Offset)
}

func TestBodyAndSectPr(t *testing.T) {
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(sampleDocument))
	body := Body(doc)
	require.NotNil(t, body)
	assert.NotNil(t, body.FindElement("w:sectPr"))
}

func TestNewRelationshipsAndAdd(t *testing.T) {
	doc := NewRelationships()
	AddRelationship(doc, "rIdLink1000", HyperlinkRelType, "https://example.org")

	rel := doc.FindElement("//Relationship")
	require.NotNil(t, rel)
	assert.Equal(t, "rIdLink1000", rel.SelectAttrValue("Id", ""))
	assert.Equal(t, "External", rel.SelectAttrValue("TargetMode", ""))
	assert.Equal(t, HyperlinkRelType, rel.SelectAttrValue("Type", ""))
}
