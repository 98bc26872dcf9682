package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	odf "github.com/logicossoftware/go-odf"
	"github.com/logicossoftware/go-odf/internal/doc"
)

// InsertTool edits a document through the flat-text recombination
// policy. The whole body is rewritten as flat text, so any rich
// formatting the document carried is discarded.
type InsertTool struct {
	editor *doc.Editor
}

func NewInsertTool(e *doc.Editor) *InsertTool {
	return &InsertTool{editor: e}
}

func (t *InsertTool) Definition() mcp.Tool {
	return mcp.NewTool("insert_text_at_position",
		mcp.WithDescription("Insert text into a document at the start, at the end, or replacing the whole body. The document is rewritten as flat text; rich formatting is discarded."),
		mcp.WithString("path", mcp.Required(),
			mcp.Description("Path to the document file.")),
		mcp.WithString("text", mcp.Required(),
			mcp.Description("Text to insert.")),
		mcp.WithString("position",
			mcp.Description("Where to insert: start, end or replace."),
			mcp.DefaultString("end")),
	)
}

func (t *InsertTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return errResult(err)
	}
	text, err := req.RequireString("text")
	if err != nil {
		return errResult(err)
	}
	anchor, err := odf.ParseAnchor(req.GetString("position", "end"))
	if err != nil {
		return errResult(err)
	}

	if err := t.editor.Insert(ctx, path, text, anchor); err != nil {
		return errResult(err)
	}
	return jsonResult(doc.Info(path))
}
