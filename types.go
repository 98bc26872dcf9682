package odf

import "strings"

// MimeType is the ASCII media-type identifier for an OpenDocument Text
// document. It is the byte content of the container's first entry and the
// media type declared for the manifest root.
const MimeType = "application/vnd.oasis.opendocument.text"

// Fixed entry names inside the container.
const (
	EntryMimetype = "mimetype"
	EntryManifest = "META-INF/manifest.xml"
	EntryContent  = "content.xml"
	EntryStyles   = "styles.xml"
	EntryMeta     = "meta.xml"
)

// OpenDocument namespace URIs used by content.xml.
const (
	nsOffice   = "urn:oasis:names:tc:opendocument:xmlns:office:1.0"
	nsText     = "urn:oasis:names:tc:opendocument:xmlns:text:1.0"
	nsStyle    = "urn:oasis:names:tc:opendocument:xmlns:style:1.0"
	nsFo       = "urn:oasis:names:tc:opendocument:xmlns:xsl-fo-compatible:1.0"
	nsManifest = "urn:oasis:names:tc:opendocument:xmlns:manifest:1.0"
	nsMetaNS   = "urn:oasis:names:tc:opendocument:xmlns:meta:1.0"
)

// TextBody is the flat text content of a document: an ordered sequence of
// paragraphs with no styling. Zero-length paragraphs are allowed and
// significant; they round-trip through Write and Read.
type TextBody []string

// Split derives a TextBody from s using the writer's splitting rule:
// paragraphs are separated by "\n", with a trailing "\r" stripped from each
// so CRLF input behaves the same as LF input. Split("") is a body holding
// one empty paragraph, not an empty body.
func Split(s string) TextBody {
	parts := strings.Split(s, "\n")
	body := make(TextBody, len(parts))
	for i, p := range parts {
		body[i] = strings.TrimSuffix(p, "\r")
	}
	return body
}

// String flattens the body back to a single string with "\n" separators.
// It is the inverse of Split.
func (b TextBody) String() string {
	return strings.Join(b, "\n")
}
