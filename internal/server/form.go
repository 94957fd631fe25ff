// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

// uploadForm is the single-page UI. It posts straight to /convert and the
// browser downloads the converted document.
const uploadForm = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Notesmith</title>
  <style>
    body { font-family: Georgia, serif; max-width: 42em; margin: 3em auto; color: #222; }
    fieldset { border: 1px solid #bbb; margin-bottom: 1.5em; padding: 1em; }
    legend { font-weight: bold; }
    label { display: block; margin: 0.5em 0; }
    button { font-size: 1.1em; padding: 0.4em 1.6em; }
  </style>
</head>
<body>
  <h1>Notesmith</h1>
  <p>Upload a document with endnotes. You get it back with the endnotes
  converted to a Notes section of page references.</p>
  <form action="/convert" method="post" enctype="multipart/form-data">
    <fieldset>
      <legend>Document</legend>
      <input type="file" name="document" accept=".docx" required>
    </fieldset>
    <fieldset>
      <legend>Options</legend>
      <label>
        Incipit length (words, 1&ndash;10):
        <input type="number" name="word_count" value="3" min="1" max="10">
      </label>
      <label><input type="checkbox" name="extract_incipit" checked> Prefix notes with sentence incipits</label>
      <label><input type="checkbox" name="apply_formatting"> Classify and reformat citations (uses external lookups)</label>
      <label>
        Incipit style:
        <select name="format_style">
          <option value="bold" selected>Bold</option>
          <option value="italic">Italic</option>
        </select>
      </label>
      <label>
        Citation style:
        <select name="citation_style">
          <option value="chicago" selected>Chicago</option>
        </select>
      </label>
    </fieldset>
    <button type="submit">Convert</button>
  </form>
</body>
</html>`
