package doc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	odf "github.com/logicossoftware/go-odf"
)

func newCodecEditor() *Editor {
	ext := &Extractor{}
	return &Editor{Ext: ext}
}

func TestInsertAppend(t *testing.T) {
	path := writeTestODT(t, t.TempDir(), "doc.odt", odf.TextBody{"existing"})

	ed := newCodecEditor()
	require.NoError(t, ed.Insert(context.Background(), path, "appended", odf.AnchorEnd))

	body, err := odf.Read(path)
	require.NoError(t, err)
	assert.Equal(t, odf.TextBody{"existing", "appended"}, body)
}

func TestInsertPrepend(t *testing.T) {
	path := writeTestODT(t, t.TempDir(), "doc.odt", odf.TextBody{"existing"})

	ed := newCodecEditor()
	require.NoError(t, ed.Insert(context.Background(), path, "first", odf.AnchorStart))

	body, err := odf.Read(path)
	require.NoError(t, err)
	assert.Equal(t, odf.TextBody{"first", "existing"}, body)
}

func TestInsertReplace(t *testing.T) {
	path := writeTestODT(t, t.TempDir(), "doc.odt", odf.TextBody{"old one", "old two"})

	ed := newCodecEditor()
	require.NoError(t, ed.Insert(context.Background(), path, "brand new", odf.AnchorReplace))

	body, err := odf.Read(path)
	require.NoError(t, err)
	assert.Equal(t, odf.TextBody{"brand new"}, body)
}

func TestInsertMissingDocument(t *testing.T) {
	ed := newCodecEditor()
	err := ed.Insert(context.Background(), filepath.Join(t.TempDir(), "absent.odt"), "x", odf.AnchorEnd)
	assert.ErrorIs(t, err, odf.ErrNotFound)
}

func TestInsertFailedPersistRestoresOriginal(t *testing.T) {
	// A .docx target with no working converter: extraction succeeds via
	// the fake, persisting fails everywhere, and the original bytes must
	// survive.
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.docx")
	original := []byte("pretend docx payload")
	require.NoError(t, os.WriteFile(path, original, 0o644))

	conv := converterFunc(func(_ context.Context, src, outDir, format string) (string, error) {
		if format == "txt" {
			out := filepath.Join(outDir, "doc.txt")
			require.NoError(t, os.WriteFile(out, []byte("extracted"), 0o644))
			return out, nil
		}
		return "", fmt.Errorf("%w: export filter missing", odf.ErrConversion)
	})
	ed := &Editor{Conv: conv, Ext: &Extractor{Conv: conv}}

	err := ed.Insert(context.Background(), path, "more", odf.AnchorEnd)
	assert.ErrorIs(t, err, odf.ErrConversion)

	after, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, original, after)

	_, statErr := os.Stat(path + ".backup")
	assert.True(t, os.IsNotExist(statErr), "backup should be cleaned up")
}

func TestInsertRewritesViaConverter(t *testing.T) {
	dir := t.TempDir()
	path := writeTestODT(t, dir, "doc.odt", odf.TextBody{"existing"})

	var converted bool
	conv := converterFunc(func(_ context.Context, src, outDir, format string) (string, error) {
		if format != "odt" {
			return "", fmt.Errorf("%w: only persistence is faked", odf.ErrConversion)
		}
		converted = true
		stem := filepath.Base(src)
		stem = stem[:len(stem)-len(filepath.Ext(stem))]
		out := filepath.Join(outDir, stem+".odt")
		require.NoError(t, odf.Write(out, odf.TextBody{"converted body"}))
		return out, nil
	})
	ed := &Editor{Conv: conv, Ext: &Extractor{Conv: conv}}

	require.NoError(t, ed.Insert(context.Background(), path, "more", odf.AnchorEnd))
	assert.True(t, converted)

	body, err := odf.Read(path)
	require.NoError(t, err)
	assert.Equal(t, odf.TextBody{"converted body"}, body)
}

func TestWritePlainRefusesOfficeFormats(t *testing.T) {
	for _, name := range []string{"a.odt", "a.docx", "a.ods", "a.rtf"} {
		err := writePlain(filepath.Join(t.TempDir(), name), odf.TextBody{"x"})
		assert.ErrorIs(t, err, errSkip, name)
	}
}

func TestWritePlainHandlesTextFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, writePlain(path, odf.TextBody{"line one", "line two"}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", string(b))
}
