package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/logicossoftware/go-odf/internal/doc"
)

// SearchTool finds documents containing a text query.
type SearchTool struct {
	ext *doc.Extractor
}

func NewSearchTool(e *doc.Extractor) *SearchTool {
	return &SearchTool{ext: e}
}

func (t *SearchTool) Definition() mcp.Tool {
	return mcp.NewTool("search_documents",
		mcp.WithDescription("Search documents for text content. Without a search path the user's Documents and Desktop directories and the working directory are searched."),
		mcp.WithString("query", mcp.Required(),
			mcp.Description("Text to search for, matched case-insensitively.")),
		mcp.WithString("search_path",
			mcp.Description("Directory to search. Defaults to the common document locations.")),
	)
}

func (t *SearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return errResult(err)
	}
	roots := doc.DefaultRoots()
	if p := req.GetString("search_path", ""); p != "" {
		roots = []string{p}
	}
	return jsonResult(t.ext.Search(ctx, query, roots))
}

// MergeTool concatenates the text of several documents into one.
type MergeTool struct {
	creator *doc.Creator
	ext     *doc.Extractor
}

func NewMergeTool(c *doc.Creator, e *doc.Extractor) *MergeTool {
	return &MergeTool{creator: c, ext: e}
}

func (t *MergeTool) Definition() mcp.Tool {
	return mcp.NewTool("merge_text_documents",
		mcp.WithDescription("Merge the text of multiple documents into a single new document. Each section carries the source filename as a banner; unreadable documents contribute an error banner."),
		mcp.WithArray("document_paths", mcp.Required(),
			mcp.Description("Paths of the documents to merge, in order."),
			mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("output_path", mcp.Required(),
			mcp.Description("Path for the merged document.")),
		mcp.WithString("separator",
			mcp.Description("Separator between document sections."),
			mcp.DefaultString(doc.DefaultMergeSeparator)),
	)
}

func (t *MergeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	paths := req.GetStringSlice("document_paths", nil)
	if len(paths) == 0 {
		return errResult(errNoDocuments)
	}
	output, err := req.RequireString("output_path")
	if err != nil {
		return errResult(err)
	}
	separator := req.GetString("separator", doc.DefaultMergeSeparator)

	final, err := t.creator.MergeText(ctx, t.ext, paths, output, separator)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(doc.Info(final))
}
