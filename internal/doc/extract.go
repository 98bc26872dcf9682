package doc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	odf "github.com/logicossoftware/go-odf"
	"github.com/logicossoftware/go-odf/internal/office"
)

// Extractor recovers flat text from documents. The preferred path is the
// office-suite converter; when it is unavailable or fails with a
// recoverable error, the native container codec, the docx parser and
// finally a plain-text read are tried in that order.
type Extractor struct {
	Conv office.Converter
}

// Text extracts the document at path with word and character counts.
func (e *Extractor) Text(ctx context.Context, path string) (TextContent, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return TextContent{}, fmt.Errorf("%w: %s", odf.ErrNotFound, path)
		}
		return TextContent{}, fmt.Errorf("%w: %v", odf.ErrIO, err)
	}

	content, err := runChain(ctx, "extract "+filepath.Base(path), []strategy{
		{"converter", func(ctx context.Context) (string, error) { return e.viaConverter(ctx, path) }},
		{"container codec", func(context.Context) (string, error) { return viaContainer(path) }},
		{"docx parser", func(context.Context) (string, error) { return viaDocx(path) }},
		{"plain text", func(context.Context) (string, error) { return viaPlainText(path) }},
	})
	if err != nil {
		return TextContent{}, err
	}
	return NewTextContent(content), nil
}

func (e *Extractor) viaConverter(ctx context.Context, path string) (string, error) {
	if e.Conv == nil {
		return "", errSkip
	}
	dir, err := os.MkdirTemp("", "odfmcp-extract-")
	if err != nil {
		return "", fmt.Errorf("%w: %v", odf.ErrIO, err)
	}
	defer os.RemoveAll(dir)

	out, err := e.Conv.Convert(ctx, path, dir, "txt")
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(out)
	if err != nil {
		return "", fmt.Errorf("%w: converted output: %v", odf.ErrIO, err)
	}
	return string(b), nil
}

// viaContainer reads ODT containers directly. It is exact for documents
// this codec wrote and best effort for everything else.
func viaContainer(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".odt", ".ott":
	default:
		return "", errSkip
	}
	body, err := odf.Read(path)
	if err != nil {
		return "", err
	}
	return body.String(), nil
}

// viaPlainText is the last resort: read the file verbatim. Binary
// content is rejected so a failed chain reports failure instead of
// returning garbage.
func viaPlainText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", odf.ErrIO, err)
	}
	if !utf8.Valid(b) || strings.ContainsRune(string(b), 0) {
		return "", fmt.Errorf("%w: not a text file", odf.ErrParse)
	}
	return string(b), nil
}
