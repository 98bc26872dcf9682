package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/logicossoftware/go-odf/internal/doc"
)

// SpreadsheetTool reads spreadsheet cells through a CSV export.
type SpreadsheetTool struct {
	ext *doc.Extractor
}

func NewSpreadsheetTool(e *doc.Extractor) *SpreadsheetTool {
	return &SpreadsheetTool{ext: e}
}

func (t *SpreadsheetTool) Definition() mcp.Tool {
	return mcp.NewTool("read_spreadsheet_data",
		mcp.WithDescription("Read cell data from a spreadsheet (.ods, .xlsx, .csv and similar). The office suite exports the active sheet as CSV."),
		mcp.WithString("path", mcp.Required(),
			mcp.Description("Path to the spreadsheet file.")),
		mcp.WithString("sheet_name",
			mcp.Description("Sheet name recorded in the result. The export always covers the active sheet.")),
		mcp.WithNumber("max_rows",
			mcp.Description("Maximum number of rows to return."),
			mcp.DefaultNumber(doc.DefaultMaxRows)),
	)
}

func (t *SpreadsheetTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return errResult(err)
	}
	sheetName := req.GetString("sheet_name", "")
	maxRows := req.GetInt("max_rows", doc.DefaultMaxRows)

	data, err := t.ext.Spreadsheet(ctx, path, sheetName, maxRows)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(data)
}
