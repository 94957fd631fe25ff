// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx reads and writes the OOXML package format: a zip archive of
// XML parts. It knows nothing about citations; it gives the conversion
// pipeline a filesystem tree to work on and puts it back together.
package docx

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Well-known part paths inside the package.
const (
	DocumentPart  = "word/document.xml"
	EndnotesPart  = "word/endnotes.xml"
	DocumentRels  = "word/_rels/document.xml.rels"
)

// Unpack extracts the archive at src into destDir, preserving the part
// paths. Entries escaping destDir are rejected.
func Unpack(src, destDir string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("opening document archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		target := filepath.Join(destDir, filepath.FromSlash(f.Name))
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry %q escapes extraction dir", f.Name)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := extractFile(f, target); err != nil {
			return fmt.Errorf("extracting %s: %w", f.Name, err)
		}
	}
	return nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, rc)
	return err
}

// Pack zips the tree under srcDir into a new archive at dest, with
// forward-slash entry names as the format requires.
func Pack(srcDir, dest string) error {
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating output archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	err = filepath.WalkDir(srcDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(srcDir, p)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		in, err := os.Open(p)
		if err != nil {
			return err
		}
		defer in.Close()
		_, err = io.Copy(w, in)
		return err
	})
	if err != nil {
		zw.Close()
		return fmt.Errorf("packing document tree: %w", err)
	}
	return zw.Close()
}

// HasPart reports whether the unpacked tree contains the named part.
func HasPart(dir, part string) bool {
	_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(part)))
	return err == nil
}
