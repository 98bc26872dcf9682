package doc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	odf "github.com/logicossoftware/go-odf"
	"github.com/logicossoftware/go-odf/internal/office"
)

// Creator creates new documents.
type Creator struct {
	Conv office.Converter
}

// DefaultMergeSeparator sits between documents merged by MergeText.
const DefaultMergeSeparator = "\n\n---\n\n"

var extByType = map[string]string{
	"writer":  ".odt",
	"calc":    ".ods",
	"impress": ".odp",
	"draw":    ".odg",
}

// DocTypes lists the supported document types.
func DocTypes() []string {
	return []string{"writer", "calc", "impress", "draw"}
}

// Create creates a document of docType at path and returns the final
// path (the matching extension is appended when path has none). Writer
// documents carry content through the converter or, failing that, the
// native container codec. Other types are created empty; seeding them
// with content needs the office suite's own document model.
func (c *Creator) Create(ctx context.Context, path, docType, content string) (string, error) {
	ext, ok := extByType[docType]
	if !ok {
		return "", fmt.Errorf("%w: document type %q, use one of %s",
			odf.ErrUnsupportedFormat, docType, strings.Join(DocTypes(), ", "))
	}
	if filepath.Ext(path) == "" {
		path += ext
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", odf.ErrIO, err)
	}

	if docType == "writer" {
		if err := persistText(ctx, c.Conv, path, odf.Split(content)); err != nil {
			return "", err
		}
		return path, nil
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", odf.ErrIO, err)
	}
	return path, nil
}

// MergeText concatenates the text of the given documents, each under a
// filename banner, and persists the result as a new writer document at
// output. Documents that cannot be read contribute an error banner
// instead of aborting the merge.
func (c *Creator) MergeText(ctx context.Context, ext *Extractor, paths []string, output, separator string) (string, error) {
	if separator == "" {
		separator = DefaultMergeSeparator
	}
	sections := make([]string, 0, len(paths))
	for _, p := range paths {
		name := filepath.Base(p)
		tc, err := ext.Text(ctx, p)
		if err != nil {
			sections = append(sections, fmt.Sprintf("=== %s ===\n\nError reading document: %v", name, err))
			continue
		}
		sections = append(sections, fmt.Sprintf("=== %s ===\n\n%s", name, tc.Content))
	}
	return c.Create(ctx, output, "writer", strings.Join(sections, separator))
}
