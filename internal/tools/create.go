package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/logicossoftware/go-odf/internal/doc"
)

// CreateTool creates new office documents.
type CreateTool struct {
	creator *doc.Creator
}

func NewCreateTool(c *doc.Creator) *CreateTool {
	return &CreateTool{creator: c}
}

func (t *CreateTool) Definition() mcp.Tool {
	return mcp.NewTool("create_document",
		mcp.WithDescription("Create a new office document. Writer documents can be seeded with flat text content; other types are created empty."),
		mcp.WithString("path", mcp.Required(),
			mcp.Description("Full path where the document should be created. The matching extension is appended when missing.")),
		mcp.WithString("doc_type",
			mcp.Description("Document type: writer, calc, impress or draw."),
			mcp.DefaultString("writer")),
		mcp.WithString("content",
			mcp.Description("Initial content for writer documents.")),
	)
}

func (t *CreateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return errResult(err)
	}
	docType := req.GetString("doc_type", "writer")
	content := req.GetString("content", "")

	final, err := t.creator.Create(ctx, path, docType, content)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(doc.Info(final))
}
