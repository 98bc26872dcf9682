package doc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	odf "github.com/logicossoftware/go-odf"
	"github.com/logicossoftware/go-odf/internal/office"
)

// Editor applies flat-text edits to existing documents.
//
// Edits rewrite the whole body as flat text: any rich formatting the
// document carried is discarded. This is defined behavior of the
// recombination policy, not an accident (see the odf package doc).
type Editor struct {
	Conv office.Converter
	Ext  *Extractor
}

// Insert reads the existing text, recombines it with text at the given
// anchor and rewrites the document. The previous file is kept as a
// backup for the duration of the rewrite and restored on failure, so a
// failed edit never leaves a corrupt document behind.
func (ed *Editor) Insert(ctx context.Context, path, text string, anchor odf.Anchor) error {
	existing, err := ed.Ext.Text(ctx, path)
	if err != nil {
		return err
	}
	body := odf.Apply(odf.Split(existing.Content), odf.EditRequest{Text: text, Anchor: anchor})

	backup := path + ".backup"
	if err := copyFile(path, backup); err != nil {
		return fmt.Errorf("%w: backup: %v", odf.ErrIO, err)
	}
	defer os.Remove(backup)

	if err := persistText(ctx, ed.Conv, path, body); err != nil {
		if restoreErr := copyFile(backup, path); restoreErr != nil {
			slog.Error("restoring backup failed", "path", path, "error", restoreErr)
		}
		return err
	}
	return nil
}

// persistText writes body to path in the format implied by its
// extension, trying the converter first and the native codec second.
// Office formats the codec cannot produce are never written as plain
// text: a corrupt .docx is worse than a failed edit.
func persistText(ctx context.Context, conv office.Converter, path string, body odf.TextBody) error {
	chain := []struct {
		name string
		run  func() error
	}{
		{"converter", func() error { return convertTextTo(ctx, conv, body.String(), path) }},
		{"container codec", func() error { return writeContainer(path, body) }},
		{"plain text", func() error { return writePlain(path, body) }},
	}

	var failures []error
	for _, s := range chain {
		err := s.run()
		if err == nil {
			return nil
		}
		if !recoverable(err) {
			return err
		}
		if !errors.Is(err, errSkip) {
			slog.Debug("fallback strategy failed", "operation", "persist "+filepath.Base(path), "strategy", s.name, "error", err)
		}
		failures = append(failures, fmt.Errorf("%s: %w", s.name, err))
	}
	return fmt.Errorf("%w: persist %s: %v", odf.ErrConversion, path, errors.Join(failures...))
}

// convertTextTo routes body through the office converter: the text is
// staged as a temporary file, converted into the target's directory and
// renamed over the target. Only the file named after the staging stem is
// accepted; anything else the converter may have located is left alone.
func convertTextTo(ctx context.Context, conv office.Converter, content, target string) error {
	if conv == nil {
		return errSkip
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(target)), ".")
	switch format {
	case "odt", "doc", "docx", "rtf":
	default:
		return errSkip
	}

	tmp, err := os.CreateTemp("", "odfmcp-*.txt")
	if err != nil {
		return fmt.Errorf("%w: staging text: %v", odf.ErrIO, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: staging text: %v", odf.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: staging text: %v", odf.ErrIO, err)
	}

	outDir := filepath.Dir(target)
	out, err := conv.Convert(ctx, tmpPath, outDir, format)
	if err != nil {
		return err
	}
	stem := strings.TrimSuffix(filepath.Base(tmpPath), ".txt")
	want := filepath.Join(outDir, stem+"."+format)
	if out != want {
		return fmt.Errorf("%w: converter produced %s, expected %s", odf.ErrConversion, out, want)
	}
	if err := os.Rename(out, target); err != nil {
		os.Remove(out)
		return fmt.Errorf("%w: %v", odf.ErrIO, err)
	}
	return nil
}

func writeContainer(path string, body odf.TextBody) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".odt", ".ott":
		return odf.Write(path, body)
	}
	return errSkip
}

// writePlain handles text-like extensions only; office formats are
// excluded so a converter outage cannot silently corrupt them.
func writePlain(path string, body odf.TextBody) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".odt", ".ott", ".doc", ".docx", ".rtf", ".ods", ".odp", ".odg":
		return errSkip
	}
	if err := os.WriteFile(path, []byte(body.String()), 0o644); err != nil {
		return fmt.Errorf("%w: %v", odf.ErrIO, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
