package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/logicossoftware/go-odf/internal/doc"
	"github.com/logicossoftware/go-odf/internal/office"
)

// ConvertTool converts one document to another format.
type ConvertTool struct {
	conv office.Converter
}

func NewConvertTool(c office.Converter) *ConvertTool {
	return &ConvertTool{conv: c}
}

func (t *ConvertTool) Definition() mcp.Tool {
	return mcp.NewTool("convert_document",
		mcp.WithDescription("Convert a document to a different format using the office suite. The result reports success per file; a failed conversion is data, not a tool error."),
		mcp.WithString("source_path", mcp.Required(),
			mcp.Description("Path to the source document.")),
		mcp.WithString("target_path", mcp.Required(),
			mcp.Description("Path where the converted document should be saved.")),
		mcp.WithString("target_format", mcp.Required(),
			mcp.Description("Target format: pdf, docx, xlsx, pptx, html, txt, and other formats the office suite exports.")),
	)
}

func (t *ConvertTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := req.RequireString("source_path")
	if err != nil {
		return errResult(err)
	}
	target, err := req.RequireString("target_path")
	if err != nil {
		return errResult(err)
	}
	format, err := req.RequireString("target_format")
	if err != nil {
		return errResult(err)
	}
	return jsonResult(doc.ConvertFile(ctx, t.conv, source, target, format))
}

// BatchConvertTool converts every matching document in a directory.
type BatchConvertTool struct {
	conv office.Converter
}

func NewBatchConvertTool(c office.Converter) *BatchConvertTool {
	return &BatchConvertTool{conv: c}
}

func (t *BatchConvertTool) Definition() mcp.Tool {
	return mcp.NewTool("batch_convert_documents",
		mcp.WithDescription("Convert all documents in a directory to a target format. Files that fail are reported in their individual results and do not stop the batch."),
		mcp.WithString("source_dir", mcp.Required(),
			mcp.Description("Directory containing the documents to convert.")),
		mcp.WithString("target_dir", mcp.Required(),
			mcp.Description("Directory where converted documents are written.")),
		mcp.WithString("target_format", mcp.Required(),
			mcp.Description("Target format for all conversions.")),
		mcp.WithArray("source_extensions",
			mcp.Description("Source file extensions to pick up. Defaults to the common office formats."),
			mcp.Items(map[string]any{"type": "string"})),
	)
}

func (t *BatchConvertTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	srcDir, err := req.RequireString("source_dir")
	if err != nil {
		return errResult(err)
	}
	dstDir, err := req.RequireString("target_dir")
	if err != nil {
		return errResult(err)
	}
	format, err := req.RequireString("target_format")
	if err != nil {
		return errResult(err)
	}
	extensions := req.GetStringSlice("source_extensions", nil)

	results, err := doc.BatchConvert(ctx, t.conv, srcDir, dstDir, format, extensions)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(results)
}
