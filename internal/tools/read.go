package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/logicossoftware/go-odf/internal/doc"
)

// ReadTool extracts the flat text of a document.
type ReadTool struct {
	ext *doc.Extractor
}

func NewReadTool(e *doc.Extractor) *ReadTool {
	return &ReadTool{ext: e}
}

func (t *ReadTool) Definition() mcp.Tool {
	return mcp.NewTool("read_document_text",
		mcp.WithDescription("Extract the plain text content of a document, with word and character counts. Formatting is not preserved."),
		mcp.WithString("path", mcp.Required(),
			mcp.Description("Path to the document file.")),
	)
}

func (t *ReadTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return errResult(err)
	}
	tc, err := t.ext.Text(ctx, path)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(tc)
}
