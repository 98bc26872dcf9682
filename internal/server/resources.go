package server

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/logicossoftware/go-odf/internal/doc"
)

// registerResources exposes the document listing and per-document text
// as MCP resources.
func registerResources(s *server.MCPServer, ext *doc.Extractor) {
	listing := mcp.NewResource(
		"documents://",
		"documents",
		mcp.WithResourceDescription("Office documents found in the user's Documents and Desktop directories and the working directory."),
		mcp.WithMIMEType("application/json"),
	)
	s.AddResource(listing, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		docs := doc.ListDocuments(doc.DefaultRoots())
		b, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	})

	content := mcp.NewResourceTemplate(
		"document://{path}",
		"document content",
		mcp.WithTemplateDescription("Plain text content of the document at the given path."),
		mcp.WithTemplateMIMEType("text/plain"),
	)
	s.AddResourceTemplate(content, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		path := strings.TrimPrefix(req.Params.URI, "document://")
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		text := documentText(ctx, ext, path)
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "text/plain",
				Text:     text,
			},
		}, nil
	})
}

// documentText renders a document for resource consumption. Errors are
// rendered into the text: resource reads are best-effort previews.
func documentText(ctx context.Context, ext *doc.Extractor, path string) string {
	tc, err := ext.Text(ctx, path)
	if err != nil {
		return fmt.Sprintf("Error reading document %s: %v", path, err)
	}
	return fmt.Sprintf("Document: %s\nWords: %d, Characters: %d\n\n%s",
		filepath.Base(path), tc.WordCount, tc.CharCount, tc.Content)
}
