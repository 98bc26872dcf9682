package odf

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/klauspost/compress/flate"
)

// Function variables for testing injection.
var (
	zipOpenReader = zip.OpenReader
	zipOpenEntry  = func(f *zip.File) (io.ReadCloser, error) { return f.Open() }
)

// Matches paragraph-level elements regardless of the prefix the producer
// bound for the text namespace; the namespace itself is checked after.
var paragraphExpr = xpath.MustCompile("//*[local-name()='p' or local-name()='h']")

// Read extracts the flat text body from the ODT container at path.
//
// For containers written by Write the result is exact: one TextBody
// paragraph per paragraph element, character content unescaped, empty
// paragraphs preserved. For containers produced elsewhere the extraction
// is best effort: each paragraph or heading element contributes one
// paragraph of concatenated character data, and anything that is neither
// (tables, frames, tracked changes) is flattened or lost.
//
// Read returns ErrNotFound when path or the content entry is absent,
// ErrParse when the file is not an archive or the content entry is not
// well-formed markup, and ErrLimitExceeded when the configured read
// limits are hit.
func Read(path string, opts ...ReadOption) (TextBody, error) {
	root, err := parseContent(path, opts...)
	if err != nil {
		return nil, err
	}

	var body TextBody
	for _, n := range xmlquery.QuerySelectorAll(root, paragraphExpr) {
		if n.NamespaceURI != nsText {
			continue
		}
		body = append(body, nodeText(n))
	}
	if body != nil {
		return body, nil
	}

	// No paragraph elements at all: fall back to a single flattened
	// paragraph so character content still comes back.
	flat := flattenText(root)
	return TextBody{flat}, nil
}

// ExtractText is the intentionally lossy fallback extraction: every
// character-data node in the content entry, in document order, joined by
// single spaces, with leading and trailing whitespace trimmed. Paragraph
// boundaries are not preserved; use Read when they matter.
func ExtractText(path string, opts ...ReadOption) (string, error) {
	root, err := parseContent(path, opts...)
	if err != nil {
		return "", err
	}
	return flattenText(root), nil
}

// parseContent opens the container, locates the content entry and parses
// it as markup.
func parseContent(path string, opts ...ReadOption) (*xmlquery.Node, error) {
	cfg := readConfig{limits: defaultLimits()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()

	zr, err := zipOpenReader(path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		case errors.Is(err, zip.ErrFormat):
			return nil, fmt.Errorf("%w: %s is not a container: %v", ErrParse, path, err)
		default:
			return nil, fmt.Errorf("%w: opening %s: %v", ErrIO, path, err)
		}
	}
	defer zr.Close()
	zr.RegisterDecompressor(zip.Deflate, func(r io.Reader) io.ReadCloser {
		return flate.NewReader(r)
	})

	if len(zr.File) > cfg.limits.MaxEntries {
		return nil, fmt.Errorf("%w: %d archive entries", ErrLimitExceeded, len(zr.File))
	}
	var content *zip.File
	for _, f := range zr.File {
		if f.Name == EntryContent {
			content = f
			break
		}
	}
	if content == nil {
		return nil, fmt.Errorf("%w: %s has no %s entry", ErrNotFound, path, EntryContent)
	}
	if content.UncompressedSize64 > cfg.limits.MaxContentSize ||
		content.UncompressedSize64 > cfg.limits.MaxEntrySize {
		return nil, fmt.Errorf("%w: %s declares %d bytes", ErrLimitExceeded, EntryContent, content.UncompressedSize64)
	}

	rc, err := zipOpenEntry(content)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrParse, EntryContent, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, int64(cfg.limits.MaxContentSize)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrParse, EntryContent, err)
	}
	if uint64(len(data)) > cfg.limits.MaxContentSize {
		return nil, fmt.Errorf("%w: %s inflated beyond limit", ErrLimitExceeded, EntryContent)
	}

	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, EntryContent, err)
	}
	return root, nil
}

// nodeText concatenates the character data under n in document order,
// with no separator: a paragraph written by this codec holds exactly one
// text node, so its content comes back verbatim.
func nodeText(n *xmlquery.Node) string {
	var b strings.Builder
	collectText(n, &b)
	return b.String()
}

func collectText(n *xmlquery.Node, b *strings.Builder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			b.WriteString(c.Data)
		default:
			collectText(c, b)
		}
	}
}

// flattenText joins every non-blank character-data node under n with
// single spaces and trims the result.
func flattenText(n *xmlquery.Node) string {
	var parts []string
	var walk func(*xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case xmlquery.TextNode, xmlquery.CharDataNode:
				if t := strings.TrimSpace(c.Data); t != "" {
					parts = append(parts, t)
				}
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}
