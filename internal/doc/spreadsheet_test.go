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

// csvConverter fakes a CSV export of the active sheet.
func csvConverter(t *testing.T, csv string) converterFunc {
	return func(_ context.Context, src, outDir, format string) (string, error) {
		require.Equal(t, "csv", format)
		base := filepath.Base(src)
		stem := base[:len(base)-len(filepath.Ext(base))]
		out := filepath.Join(outDir, stem+".csv")
		require.NoError(t, os.WriteFile(out, []byte(csv), 0o644))
		return out, nil
	}
}

func writeStubSheet(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.ods")
	require.NoError(t, os.WriteFile(path, []byte("stub"), 0o644))
	return path
}

func TestSpreadsheetMissingFile(t *testing.T) {
	e := &Extractor{Conv: csvConverter(t, "")}
	_, err := e.Spreadsheet(context.Background(), filepath.Join(t.TempDir(), "absent.ods"), "", 10)
	assert.ErrorIs(t, err, odf.ErrNotFound)
}

func TestSpreadsheetNeedsConverter(t *testing.T) {
	path := writeStubSheet(t)
	e := &Extractor{}
	_, err := e.Spreadsheet(context.Background(), path, "", 10)
	assert.ErrorIs(t, err, odf.ErrConversion)
}

func TestSpreadsheetReadsRows(t *testing.T) {
	path := writeStubSheet(t)
	e := &Extractor{Conv: csvConverter(t, "name,qty\nwidget,3\ngadget,5\n")}

	data, err := e.Spreadsheet(context.Background(), path, "", 10)
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", data.SheetName)
	assert.Equal(t, 3, data.RowCount)
	assert.Equal(t, 2, data.ColCount)
	assert.Equal(t, []string{"widget", "3"}, data.Data[1])
}

func TestSpreadsheetRaggedRows(t *testing.T) {
	path := writeStubSheet(t)
	e := &Extractor{Conv: csvConverter(t, "a,b,c\nd\ne,f\n")}

	data, err := e.Spreadsheet(context.Background(), path, "", 10)
	require.NoError(t, err)
	assert.Equal(t, 3, data.RowCount)
	assert.Equal(t, 3, data.ColCount)
}

func TestSpreadsheetMaxRows(t *testing.T) {
	path := writeStubSheet(t)
	e := &Extractor{Conv: csvConverter(t, "1\n2\n3\n4\n5\n")}

	data, err := e.Spreadsheet(context.Background(), path, "Inventory", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, data.RowCount)
	assert.Equal(t, "Inventory", data.SheetName)
}
