// Package tools implements the MCP tool surface over the document
// services. Tools are thin: argument decoding, one call into
// internal/doc, internal/office or internal/watch, and JSON rendering.
// Domain failures become tool-error results; only marshalling bugs
// surface as protocol errors.
package tools

import (
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
)

var errNoDocuments = errors.New("document_paths must name at least one document")

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(b)), nil
}

func errResult(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
