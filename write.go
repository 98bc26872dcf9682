package odf

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/flate"
)

// Function variables for testing injection.
var (
	createTemp = os.CreateTemp
	renameFile = os.Rename
	zipCreate  = func(zw *zip.Writer, h *zip.FileHeader) (io.Writer, error) { return zw.CreateHeader(h) }
	zipClose   = func(zw *zip.Writer) error { return zw.Close() }
)

// Write synthesizes a minimal ODT container at path holding body as its
// flat text content. Any existing file at path is overwritten.
//
// The archive is staged in a temporary file in the target directory and
// renamed into place on success, so a failure never leaves a partial
// container behind. Entries are emitted in the fixed order the format
// requires: the stored mimetype entry first, then the manifest, then
// content.xml, then the optional styles and meta parts.
//
// Every paragraph of body is emitted, zero-length ones as an explicit
// empty paragraph element; omitting them would corrupt the round-trip
// with Read. Write returns ErrIO when the target directory is not
// writable and ErrEncoding when body contains invalid UTF-8 (flat text is
// stored as UTF-8 XML, so this branch is defensive rather than expected).
func Write(path string, body TextBody, opts ...WriteOption) error {
	cfg := writeConfig{styles: true, meta: true, generator: "go-odf"}
	for _, opt := range opts {
		opt(&cfg)
	}
	for i, p := range body {
		if !utf8.ValidString(p) {
			return fmt.Errorf("%w: paragraph %d is not valid UTF-8", ErrEncoding, i)
		}
	}

	tmp, err := createTemp(filepath.Dir(path), ".odf-write-*")
	if err != nil {
		return fmt.Errorf("%w: staging file: %v", ErrIO, err)
	}
	tmpPath := tmp.Name()
	if err := writeArchive(tmp, body, cfg); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: closing staging file: %v", ErrIO, err)
	}
	if err := renameFile(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: replacing %s: %v", ErrIO, path, err)
	}
	return nil
}

func writeArchive(w io.Writer, body TextBody, cfg writeConfig) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.DefaultCompression)
	})

	// The mimetype entry must be the first physical entry and stored
	// uncompressed so format sniffers can read the media type at a fixed
	// offset without inflating anything.
	if err := addEntry(zw, EntryMimetype, zip.Store, []byte(MimeType)); err != nil {
		return err
	}
	if err := addEntry(zw, EntryManifest, zip.Deflate, manifestXML(cfg)); err != nil {
		return err
	}
	if err := addEntry(zw, EntryContent, zip.Deflate, contentXML(body)); err != nil {
		return err
	}
	if cfg.styles {
		if err := addEntry(zw, EntryStyles, zip.Deflate, []byte(stylesXML)); err != nil {
			return err
		}
	}
	if cfg.meta {
		if err := addEntry(zw, EntryMeta, zip.Deflate, metaXML(cfg.generator)); err != nil {
			return err
		}
	}
	if err := zipClose(zw); err != nil {
		return fmt.Errorf("%w: finalizing archive: %v", ErrIO, err)
	}
	return nil
}

func addEntry(zw *zip.Writer, name string, method uint16, data []byte) error {
	e, err := zipCreate(zw, &zip.FileHeader{Name: name, Method: method})
	if err != nil {
		return fmt.Errorf("%w: entry %s: %v", ErrIO, name, err)
	}
	if _, err := e.Write(data); err != nil {
		return fmt.Errorf("%w: entry %s: %v", ErrIO, name, err)
	}
	return nil
}

// manifestXML lists exactly the parts the writer emits, plus the root
// declaration carrying the same media type as the mimetype entry.
func manifestXML(cfg writeConfig) []byte {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<manifest:manifest xmlns:manifest="` + nsManifest + `" manifest:version="1.2">` + "\n")
	b.WriteString(` <manifest:file-entry manifest:full-path="/" manifest:media-type="` + MimeType + `"/>` + "\n")
	b.WriteString(` <manifest:file-entry manifest:full-path="content.xml" manifest:media-type="text/xml"/>` + "\n")
	if cfg.styles {
		b.WriteString(` <manifest:file-entry manifest:full-path="styles.xml" manifest:media-type="text/xml"/>` + "\n")
	}
	if cfg.meta {
		b.WriteString(` <manifest:file-entry manifest:full-path="meta.xml" manifest:media-type="text/xml"/>` + "\n")
	}
	b.WriteString(`</manifest:manifest>` + "\n")
	return []byte(b.String())
}

func contentXML(body TextBody) []byte {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<office:document-content xmlns:office="` + nsOffice +
		`" xmlns:text="` + nsText +
		`" xmlns:style="` + nsStyle +
		`" xmlns:fo="` + nsFo + `" office:version="1.2">` + "\n")
	b.WriteString(" <office:scripts/>\n")
	b.WriteString(" <office:font-face-decls/>\n")
	b.WriteString(" <office:automatic-styles/>\n")
	b.WriteString(" <office:body>\n")
	b.WriteString("  <office:text>\n")
	for _, p := range body {
		if p == "" {
			b.WriteString(`   <text:p text:style-name="Standard"/>` + "\n")
			continue
		}
		b.WriteString(`   <text:p text:style-name="Standard">`)
		b.WriteString(escapeXML(p))
		b.WriteString("</text:p>\n")
	}
	b.WriteString("  </office:text>\n")
	b.WriteString(" </office:body>\n")
	b.WriteString("</office:document-content>\n")
	return []byte(b.String())
}

func metaXML(generator string) []byte {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<office:document-meta xmlns:office="` + nsOffice +
		`" xmlns:meta="` + nsMetaNS + `" office:version="1.2">` + "\n")
	b.WriteString(" <office:meta>\n")
	b.WriteString("  <meta:generator>" + escapeXML(generator) + "</meta:generator>\n")
	b.WriteString(" </office:meta>\n")
	b.WriteString("</office:document-meta>\n")
	return []byte(b.String())
}

const stylesXML = xml.Header + `<office:document-styles xmlns:office="` + nsOffice +
	`" xmlns:style="` + nsStyle +
	`" xmlns:text="` + nsText +
	`" xmlns:fo="` + nsFo + `" office:version="1.2">
 <office:styles>
  <style:default-style style:family="paragraph">
   <style:paragraph-properties fo:hyphenation-ladder-count="no-limit"/>
   <style:text-properties style:tab-stop-distance="0.5in"/>
  </style:default-style>
  <style:style style:name="Standard" style:family="paragraph" style:class="text"/>
 </office:styles>
 <office:automatic-styles/>
 <office:master-styles/>
</office:document-styles>
`

// escapeXML escapes text for embedding in markup: &, <, > and both quote
// characters at minimum (xml.EscapeText also encodes tabs and newlines as
// character references, which round-trip through any conforming parser).
func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s)) // only fails if the writer fails
	return buf.String()
}
