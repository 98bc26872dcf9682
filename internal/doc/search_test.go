package doc

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	odf "github.com/logicossoftware/go-odf"
)

func TestListDocuments(t *testing.T) {
	dir := t.TempDir()
	writeTestODT(t, dir, "b.odt", odf.TextBody{"x"})
	writeTestODT(t, dir, "a.odt", odf.TextBody{"x"})
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "c.docx"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignore.txt"), []byte("x"), 0o644))

	docs := ListDocuments([]string{dir})
	require.Len(t, docs, 3)
	assert.Equal(t, filepath.Join(dir, "a.odt"), docs[0])
	assert.Equal(t, filepath.Join(dir, "b.odt"), docs[1])
	assert.Equal(t, filepath.Join(dir, "sub", "c.docx"), docs[2])
}

func TestListDocumentsMissingRoot(t *testing.T) {
	docs := ListDocuments([]string{filepath.Join(t.TempDir(), "absent")})
	assert.Empty(t, docs)
}

func TestSearchFindsMatches(t *testing.T) {
	dir := t.TempDir()
	writeTestODT(t, dir, "hit.odt", odf.TextBody{"the Needle is in here"})
	writeTestODT(t, dir, "miss.odt", odf.TextBody{"nothing relevant"})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hit.txt"), []byte("another needle sighting"), 0o644))

	e := &Extractor{}
	results := e.Search(context.Background(), "NEEDLE", []string{dir})
	require.Len(t, results, 2)

	for _, r := range results {
		assert.Contains(t, []string{"hit.odt", "hit.txt"}, r.Filename)
		assert.NotEmpty(t, r.MatchContext)
		assert.Positive(t, r.WordCount)
	}
}

func TestSearchSkipsUnreadableDocuments(t *testing.T) {
	dir := t.TempDir()
	writeTestODT(t, dir, "good.odt", odf.TextBody{"needle"})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.odt"), []byte{0x00, 0xff, 0x00}, 0o644))

	e := &Extractor{}
	results := e.Search(context.Background(), "needle", []string{dir})
	require.Len(t, results, 1)
	assert.Equal(t, "good.odt", results[0].Filename)
}

func TestSearchNoMatches(t *testing.T) {
	dir := t.TempDir()
	writeTestODT(t, dir, "doc.odt", odf.TextBody{"content"})

	e := &Extractor{}
	results := e.Search(context.Background(), "absent term", []string{dir})
	assert.Empty(t, results)
}

func TestDefaultRootsIncludesWorkingDirectory(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Contains(t, DefaultRoots(), cwd)
}
