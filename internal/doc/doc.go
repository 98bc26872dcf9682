// Package doc provides the document-level services behind the tool
// surface: descriptors, text extraction with explicit fallback chains,
// flat-text editing, creation, statistics and search.
//
// Extraction and persistence are modeled as ordered strategy lists. Each
// strategy either succeeds, fails with a recoverable error (letting the
// next strategy run), or fails hard (aborting the chain). The office
// suite converter is always the preferred strategy; the native odf codec
// and the docx parser are fallbacks for when it is absent or fails.
package doc

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Descriptor is the file-level view of a document.
type Descriptor struct {
	Path         string    `json:"path"`
	Filename     string    `json:"filename"`
	Format       string    `json:"format"`
	SizeBytes    int64     `json:"size_bytes"`
	ModifiedTime time.Time `json:"modified_time"`
	Exists       bool      `json:"exists"`
}

// Info describes the file at path. It never fails: a missing file yields
// a descriptor with Exists false and zero size.
func Info(path string) Descriptor {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	d := Descriptor{
		Path:     abs,
		Filename: filepath.Base(abs),
		Format:   format(abs),
	}
	if fi, err := os.Stat(abs); err == nil {
		d.SizeBytes = fi.Size()
		d.ModifiedTime = fi.ModTime()
		d.Exists = true
	} else {
		d.ModifiedTime = time.Now()
	}
	return d
}

// format is the lowercased extension without the dot.
func format(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
