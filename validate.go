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

// Issue describes one way a container deviates from the fixed layout.
type Issue struct {
	Entry   string
	Problem string
}

func (i Issue) String() string {
	if i.Entry == "" {
		return i.Problem
	}
	return i.Entry + ": " + i.Problem
}

var fileEntryExpr = xpath.MustCompile("//*[local-name()='file-entry']")

// ValidateFile checks the container at path against the layout invariants
// a standards-compliant reader relies on: the mimetype entry is first,
// stored uncompressed and carries the expected media type; the manifest
// is present, lists exactly the parts in the archive, and its root
// declaration agrees with the mimetype entry; and the content entry
// exists. It returns the list of deviations found (empty for a valid
// container) and an error only when the file cannot be inspected at all.
func ValidateFile(path string, opts ...ReadOption) ([]Issue, error) {
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

	var issues []Issue
	report := func(entry, format string, args ...any) {
		issues = append(issues, Issue{Entry: entry, Problem: fmt.Sprintf(format, args...)})
	}

	if len(zr.File) == 0 {
		return []Issue{{Problem: "archive is empty"}}, nil
	}
	if len(zr.File) > cfg.limits.MaxEntries {
		return nil, fmt.Errorf("%w: %d archive entries", ErrLimitExceeded, len(zr.File))
	}

	present := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		present[f.Name] = f
	}

	first := zr.File[0]
	if first.Name != EntryMimetype {
		report(first.Name, "first entry must be %s", EntryMimetype)
	}
	if mt, ok := present[EntryMimetype]; ok {
		if mt.Method != zip.Store {
			report(EntryMimetype, "must be stored uncompressed")
		}
		data, err := readEntry(mt, cfg.limits.MaxEntrySize)
		if err != nil {
			report(EntryMimetype, "unreadable: %v", err)
		} else if string(data) != MimeType {
			report(EntryMimetype, "media type %q, want %q", data, MimeType)
		}
	} else {
		report(EntryMimetype, "entry missing")
	}

	if _, ok := present[EntryContent]; !ok {
		report(EntryContent, "entry missing")
	}

	mf, ok := present[EntryManifest]
	if !ok {
		report(EntryManifest, "entry missing")
		return issues, nil
	}
	data, err := readEntry(mf, cfg.limits.MaxEntrySize)
	if err != nil {
		report(EntryManifest, "unreadable: %v", err)
		return issues, nil
	}
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		report(EntryManifest, "malformed markup: %v", err)
		return issues, nil
	}

	declared := make(map[string]string)
	for _, n := range xmlquery.QuerySelectorAll(root, fileEntryExpr) {
		if n.NamespaceURI != nsManifest {
			continue
		}
		declared[attrLocal(n, "full-path")] = attrLocal(n, "media-type")
	}

	rootType, ok := declared["/"]
	if !ok {
		report(EntryManifest, "no root file-entry")
	} else if rootType != MimeType {
		report(EntryManifest, "root media type %q disagrees with mimetype entry", rootType)
	}

	// The manifest must list exactly the parts present. The mimetype entry
	// and the manifest itself are layout, not parts, and directories only
	// group parts.
	for full := range declared {
		if full == "/" || strings.HasSuffix(full, "/") {
			continue
		}
		if _, ok := present[full]; !ok {
			report(EntryManifest, "declares absent entry %q", full)
		}
	}
	for name := range present {
		if name == EntryMimetype || name == EntryManifest || strings.HasSuffix(name, "/") {
			continue
		}
		if _, ok := declared[name]; !ok {
			report(name, "not declared in manifest")
		}
	}

	return issues, nil
}

func readEntry(f *zip.File, maxSize uint64) ([]byte, error) {
	if f.UncompressedSize64 > maxSize {
		return nil, fmt.Errorf("%w: declares %d bytes", ErrLimitExceeded, f.UncompressedSize64)
	}
	rc, err := zipOpenEntry(f)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(io.LimitReader(rc, int64(maxSize)+1))
}

func attrLocal(n *xmlquery.Node, local string) string {
	for _, a := range n.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
