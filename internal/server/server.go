// Package server wires the document services into an MCP server.
//
// This is the composition root: it builds the office runner, the
// extractor, editor and creator, and registers every tool and resource.
// No document logic lives here, only wiring.
package server

import (
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/logicossoftware/go-odf/internal/doc"
	"github.com/logicossoftware/go-odf/internal/office"
	"github.com/logicossoftware/go-odf/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config carries the settings the composition root needs.
type Config struct {
	Soffice string        // explicit office executable; empty enables discovery
	Timeout time.Duration // per-conversion bound
}

// New creates the MCP server with all tools and resources registered.
func New(cfg Config) *server.MCPServer {
	runner := office.NewRunner(office.Config{
		Executable: cfg.Soffice,
		Timeout:    cfg.Timeout,
	})
	extractor := &doc.Extractor{Conv: runner}
	editor := &doc.Editor{Conv: runner, Ext: extractor}
	creator := &doc.Creator{Conv: runner}

	s := server.NewMCPServer(
		"odfmcp",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	createTool := tools.NewCreateTool(creator)
	s.AddTool(createTool.Definition(), createTool.Handle)

	readTool := tools.NewReadTool(extractor)
	s.AddTool(readTool.Definition(), readTool.Handle)

	insertTool := tools.NewInsertTool(editor)
	s.AddTool(insertTool.Definition(), insertTool.Handle)

	convertTool := tools.NewConvertTool(runner)
	s.AddTool(convertTool.Definition(), convertTool.Handle)

	batchTool := tools.NewBatchConvertTool(runner)
	s.AddTool(batchTool.Definition(), batchTool.Handle)

	infoTool := tools.NewInfoTool()
	s.AddTool(infoTool.Definition(), infoTool.Handle)

	statsTool := tools.NewStatsTool(extractor)
	s.AddTool(statsTool.Definition(), statsTool.Handle)

	sheetTool := tools.NewSpreadsheetTool(extractor)
	s.AddTool(sheetTool.Definition(), sheetTool.Handle)

	searchTool := tools.NewSearchTool(extractor)
	s.AddTool(searchTool.Definition(), searchTool.Handle)

	mergeTool := tools.NewMergeTool(creator, extractor)
	s.AddTool(mergeTool.Definition(), mergeTool.Handle)

	openTool := tools.NewOpenTool(runner)
	s.AddTool(openTool.Definition(), openTool.Handle)

	refreshTool := tools.NewRefreshTool()
	s.AddTool(refreshTool.Definition(), refreshTool.Handle)

	watchTool := tools.NewWatchTool()
	s.AddTool(watchTool.Definition(), watchTool.Handle)

	sessionTool := tools.NewSessionTool(runner)
	s.AddTool(sessionTool.Definition(), sessionTool.Handle)

	registerResources(s, extractor)

	return s
}

// ServeStdio runs the server over stdin/stdout until the client
// disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func serverInstructions() string {
	return `This server works with office documents (LibreOffice/OpenDocument and
Microsoft formats) on the local filesystem.

Capabilities:
- create_document, read_document_text, insert_text_at_position for basic
  document work. Text editing rewrites documents as flat text; rich
  formatting in the original is discarded.
- convert_document and batch_convert_documents for format conversion
  (pdf, docx, html, txt and other formats the office suite exports).
  Conversion results report success per file; check the success field.
- get_document_info and get_document_statistics for metadata and
  word/character/sentence counts.
- read_spreadsheet_data for spreadsheet cells, search_documents and
  merge_text_documents for working across documents.
- open_document_in_libreoffice, refresh_document, watch_document_changes
  and create_live_editing_session for driving a local LibreOffice GUI.

Most tools work without LibreOffice installed by falling back to native
document parsing, but conversion, spreadsheet reading and the GUI tools
need a LibreOffice installation on PATH (or configured explicitly).`
}
