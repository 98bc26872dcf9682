package tools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	odf "github.com/logicossoftware/go-odf"
	"github.com/logicossoftware/go-odf/internal/doc"
	"github.com/logicossoftware/go-odf/internal/office"
)

// converterFunc adapts a function to the office.Converter interface.
type converterFunc func(ctx context.Context, src, outDir, format string) (string, error)

func (f converterFunc) Convert(ctx context.Context, src, outDir, format string) (string, error) {
	return f(ctx, src, outDir, format)
}

var unavailableConverter = converterFunc(func(context.Context, string, string, string) (string, error) {
	return "", office.ErrUnavailable
})

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return tc.Text
}

func decodeResult(t *testing.T, res *mcp.CallToolResult, v any) {
	t.Helper()
	require.False(t, res.IsError, "tool error: %s", resultText(t, res))
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), v))
}

func TestCreateToolHandle(t *testing.T) {
	dir := t.TempDir()
	tool := NewCreateTool(&doc.Creator{})

	res, err := tool.Handle(context.Background(), callRequest("create_document", map[string]any{
		"path":    filepath.Join(dir, "report"),
		"content": "Initial text",
	}))
	require.NoError(t, err)

	var info doc.Descriptor
	decodeResult(t, res, &info)
	assert.True(t, info.Exists)
	assert.Equal(t, "report.odt", info.Filename)
	assert.Equal(t, "odt", info.Format)
}

func TestCreateToolMissingPath(t *testing.T) {
	tool := NewCreateTool(&doc.Creator{})
	res, err := tool.Handle(context.Background(), callRequest("create_document", map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestCreateToolUnknownType(t *testing.T) {
	tool := NewCreateTool(&doc.Creator{})
	res, err := tool.Handle(context.Background(), callRequest("create_document", map[string]any{
		"path":     filepath.Join(t.TempDir(), "doc"),
		"doc_type": "slideshow",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "slideshow")
}

func TestReadToolHandle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.odt")
	require.NoError(t, odf.Write(path, odf.TextBody{"Hello tool"}))

	tool := NewReadTool(&doc.Extractor{Conv: unavailableConverter})
	res, err := tool.Handle(context.Background(), callRequest("read_document_text", map[string]any{
		"path": path,
	}))
	require.NoError(t, err)

	var tc doc.TextContent
	decodeResult(t, res, &tc)
	assert.Equal(t, "Hello tool", tc.Content)
	assert.Equal(t, 2, tc.WordCount)
}

func TestReadToolMissingFile(t *testing.T) {
	tool := NewReadTool(&doc.Extractor{})
	res, err := tool.Handle(context.Background(), callRequest("read_document_text", map[string]any{
		"path": filepath.Join(t.TempDir(), "absent.odt"),
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestInsertToolHandle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.odt")
	require.NoError(t, odf.Write(path, odf.TextBody{"existing"}))

	ext := &doc.Extractor{}
	tool := NewInsertTool(&doc.Editor{Ext: ext})
	res, err := tool.Handle(context.Background(), callRequest("insert_text_at_position", map[string]any{
		"path":     path,
		"text":     "added",
		"position": "start",
	}))
	require.NoError(t, err)

	var info doc.Descriptor
	decodeResult(t, res, &info)
	assert.True(t, info.Exists)

	body, err := odf.Read(path)
	require.NoError(t, err)
	assert.Equal(t, odf.TextBody{"added", "existing"}, body)
}

func TestInsertToolInvalidPosition(t *testing.T) {
	tool := NewInsertTool(&doc.Editor{Ext: &doc.Extractor{}})
	res, err := tool.Handle(context.Background(), callRequest("insert_text_at_position", map[string]any{
		"path":     "whatever.odt",
		"text":     "x",
		"position": "middle",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestInfoToolHandle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.odt")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))

	tool := NewInfoTool()
	res, err := tool.Handle(context.Background(), callRequest("get_document_info", map[string]any{
		"path": path,
	}))
	require.NoError(t, err)

	var info doc.Descriptor
	decodeResult(t, res, &info)
	assert.True(t, info.Exists)
	assert.Equal(t, int64(3), info.SizeBytes)
}

func TestStatsToolHandle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.odt")
	require.NoError(t, odf.Write(path, odf.TextBody{"One sentence here. And another one."}))

	tool := NewStatsTool(&doc.Extractor{})
	res, err := tool.Handle(context.Background(), callRequest("get_document_statistics", map[string]any{
		"path": path,
	}))
	require.NoError(t, err)

	var stats doc.Statistics
	decodeResult(t, res, &stats)
	assert.True(t, stats.FileInfo.Exists)
	assert.Equal(t, 6, stats.ContentStats.WordCount)
	assert.Equal(t, 2, stats.ContentStats.SentenceCount)
}

func TestStatsToolUnreadableContentStillReportsFileInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.odt")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0xff}, 0o644))

	tool := NewStatsTool(&doc.Extractor{})
	res, err := tool.Handle(context.Background(), callRequest("get_document_statistics", map[string]any{
		"path": path,
	}))
	require.NoError(t, err)

	var payload struct {
		FileInfo doc.Descriptor `json:"file_info"`
		Error    string         `json:"error"`
	}
	decodeResult(t, res, &payload)
	assert.True(t, payload.FileInfo.Exists)
	assert.NotEmpty(t, payload.Error)
}

func TestConvertToolHandle(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "doc.odt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))
	target := filepath.Join(dir, "doc.pdf")

	conv := converterFunc(func(_ context.Context, src, outDir, format string) (string, error) {
		out := filepath.Join(outDir, "doc."+format)
		require.NoError(t, os.WriteFile(out, []byte("converted"), 0o644))
		return out, nil
	})
	tool := NewConvertTool(conv)
	res, err := tool.Handle(context.Background(), callRequest("convert_document", map[string]any{
		"source_path":   src,
		"target_path":   target,
		"target_format": "pdf",
	}))
	require.NoError(t, err)

	var cr doc.ConversionResult
	decodeResult(t, res, &cr)
	assert.True(t, cr.Success)
	assert.FileExists(t, target)
}

func TestConvertToolFailureIsDataNotError(t *testing.T) {
	dir := t.TempDir()
	tool := NewConvertTool(unavailableConverter)
	res, err := tool.Handle(context.Background(), callRequest("convert_document", map[string]any{
		"source_path":   filepath.Join(dir, "absent.odt"),
		"target_path":   filepath.Join(dir, "out.pdf"),
		"target_format": "pdf",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var cr doc.ConversionResult
	decodeResult(t, res, &cr)
	assert.False(t, cr.Success)
	assert.NotEmpty(t, cr.ErrorMessage)
}

func TestMergeToolRequiresDocuments(t *testing.T) {
	tool := NewMergeTool(&doc.Creator{}, &doc.Extractor{})
	res, err := tool.Handle(context.Background(), callRequest("merge_text_documents", map[string]any{
		"output_path": filepath.Join(t.TempDir(), "out.odt"),
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestMergeToolHandle(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.odt")
	b := filepath.Join(dir, "b.odt")
	require.NoError(t, odf.Write(a, odf.TextBody{"alpha"}))
	require.NoError(t, odf.Write(b, odf.TextBody{"beta"}))
	out := filepath.Join(dir, "merged.odt")

	tool := NewMergeTool(&doc.Creator{}, &doc.Extractor{})
	res, err := tool.Handle(context.Background(), callRequest("merge_text_documents", map[string]any{
		"document_paths": []any{a, b},
		"output_path":    out,
	}))
	require.NoError(t, err)

	var info doc.Descriptor
	decodeResult(t, res, &info)
	assert.True(t, info.Exists)

	body, err := odf.Read(out)
	require.NoError(t, err)
	assert.Contains(t, body.String(), "alpha")
	assert.Contains(t, body.String(), "beta")
}

func TestSearchToolHandle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hit.odt")
	require.NoError(t, odf.Write(path, odf.TextBody{"the needle document"}))

	tool := NewSearchTool(&doc.Extractor{})
	res, err := tool.Handle(context.Background(), callRequest("search_documents", map[string]any{
		"query":       "needle",
		"search_path": dir,
	}))
	require.NoError(t, err)

	var results []doc.SearchResult
	decodeResult(t, res, &results)
	require.Len(t, results, 1)
	assert.Equal(t, "hit.odt", results[0].Filename)
}

func TestSpreadsheetToolHandle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.ods")
	require.NoError(t, os.WriteFile(path, []byte("stub"), 0o644))

	conv := converterFunc(func(_ context.Context, src, outDir, format string) (string, error) {
		base := filepath.Base(src)
		out := filepath.Join(outDir, base[:len(base)-len(filepath.Ext(base))]+".csv")
		require.NoError(t, os.WriteFile(out, []byte("a,b\nc,d\n"), 0o644))
		return out, nil
	})
	tool := NewSpreadsheetTool(&doc.Extractor{Conv: conv})
	res, err := tool.Handle(context.Background(), callRequest("read_spreadsheet_data", map[string]any{
		"path":     path,
		"max_rows": 5,
	}))
	require.NoError(t, err)

	var data doc.SpreadsheetData
	decodeResult(t, res, &data)
	assert.Equal(t, 2, data.RowCount)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, data.Data)
}
