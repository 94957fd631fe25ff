// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshintel/notesmith/internal/citation"
	"github.com/meshintel/notesmith/internal/docx"
	"github.com/meshintel/notesmith/pkg/types"
)

const testDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <w:body>
    <w:p>
      <w:r><w:t>A sentence with a note.</w:t></w:r>
      <w:r><w:endnoteReference w:id="2"/></w:r>
    </w:p>
  </w:body>
</w:document>`

const testEndnotesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:endnotes xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:endnote w:id="2"><w:p><w:r><w:endnoteRef/></w:r><w:r><w:t>Some Report.</w:t></w:r></w:p></w:endnote>
</w:endnotes>`

func buildDocx(t *testing.T, withEndnotes bool) []byte {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "word"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "word", "document.xml"), []byte(testDocumentXML), 0o644))
	if withEndnotes {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "word", "endnotes.xml"), []byte(testEndnotesXML), 0o644))
	}
	archive := filepath.Join(t.TempDir(), "in.docx")
	require.NoError(t, docx.Pack(dir, archive))
	data, err := os.ReadFile(archive)
	require.NoError(t, err)
	return data
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := types.Config{
		Convert: types.ConvertConfig{WorkDir: t.TempDir()},
		Server:  types.ServerConfig{Addr: ":0"},
	}
	return New(cfg, citation.Sources{}, nil)
}

func uploadRequest(t *testing.T, doc []byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("document", "paper.docx")
	require.NoError(t, err)
	_, err = fw.Write(doc)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/convert", &buf)
	req.Header.Set(echoContentType, mw.FormDataContentType())
	return req
}

const echoContentType = "Content-Type"

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestFormServed(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="document"`)
	assert.Contains(t, rec.Body.String(), `action="/convert"`)
}

func TestConvertRoundTrip(t *testing.T) {
	s := newTestServer(t)
	req := uploadRequest(t, buildDocx(t, true), map[string]string{
		"word_count":      "3",
		"extract_incipit": "on",
	})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "paper-notes.docx")

	// The response body is a valid package with a Notes paragraph.
	archive := filepath.Join(t.TempDir(), "out.docx")
	require.NoError(t, os.WriteFile(archive, rec.Body.Bytes(), 0o644))
	outDir := t.TempDir()
	require.NoError(t, docx.Unpack(archive, outDir))
	doc, err := docx.LoadPart(outDir, docx.DocumentPart)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.FindElements("//w:instrText"))
	assert.True(t, docx.HasPart(outDir, docx.DocumentRels))
}

func TestConvertNoDocument(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/convert", strings.NewReader(""))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConvertNoEndnotesIsUnprocessable(t *testing.T) {
	s := newTestServer(t)
	req := uploadRequest(t, buildDocx(t, false), nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "endnotes")
}

func TestOptionsFromFormClamping(t *testing.T) {
	s := newTestServer(t)
	req := uploadRequest(t, buildDocx(t, true), map[string]string{
		"word_count":   "99",
		"format_style": "italic",
	})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSweepStaleWork(t *testing.T) {
	workDir := t.TempDir()
	stale := filepath.Join(workDir, "notesmith-stale")
	fresh := filepath.Join(workDir, "notesmith-fresh")
	other := filepath.Join(workDir, "keepme")
	for _, d := range []string{stale, fresh, other} {
		require.NoError(t, os.Mkdir(d, 0o755))
	}
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))
	require.NoError(t, os.Chtimes(other, old, old))

	cfg := types.Config{Convert: types.ConvertConfig{WorkDir: workDir}}
	s := New(cfg, citation.Sources{}, nil)
	s.sweepStaleWork()

	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err), "stale job dir should be swept")
	_, err = os.Stat(fresh)
	assert.NoError(t, err, "fresh job dir must survive")
	_, err = os.Stat(other)
	assert.NoError(t, err, "unrelated dirs must survive")
}
