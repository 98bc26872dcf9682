package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/logicossoftware/go-odf/internal/doc"
)

// InfoTool reports file-level metadata for a document.
type InfoTool struct{}

func NewInfoTool() *InfoTool {
	return &InfoTool{}
}

func (t *InfoTool) Definition() mcp.Tool {
	return mcp.NewTool("get_document_info",
		mcp.WithDescription("Get file-level information about a document: path, format, size and modification time."),
		mcp.WithString("path", mcp.Required(),
			mcp.Description("Path to the document file.")),
	)
}

func (t *InfoTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return errResult(err)
	}
	return jsonResult(doc.Info(path))
}

// StatsTool combines the file descriptor with content-derived counts.
// When text extraction fails the file info is still returned, with the
// extraction error alongside it instead of content stats.
type StatsTool struct {
	ext *doc.Extractor
}

func NewStatsTool(e *doc.Extractor) *StatsTool {
	return &StatsTool{ext: e}
}

func (t *StatsTool) Definition() mcp.Tool {
	return mcp.NewTool("get_document_statistics",
		mcp.WithDescription("Get detailed statistics for a document: word, character, line, paragraph and sentence counts with averages."),
		mcp.WithString("path", mcp.Required(),
			mcp.Description("Path to the document file.")),
	)
}

func (t *StatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return errResult(err)
	}
	info := doc.Info(path)

	tc, err := t.ext.Text(ctx, path)
	if err != nil {
		return jsonResult(map[string]any{
			"file_info": info,
			"error":     err.Error(),
		})
	}
	return jsonResult(doc.Statistics{
		FileInfo:     info,
		ContentStats: doc.Analyze(tc.Content),
	})
}
