package tools

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	odf "github.com/logicossoftware/go-odf"
	"github.com/logicossoftware/go-odf/internal/watch"
)

// Launcher opens a document in the office suite GUI as a detached
// process, returning its pid.
type Launcher interface {
	Open(ctx context.Context, path string, readonly bool) (int, error)
}

// OpenTool opens a document in the office suite GUI for live viewing.
type OpenTool struct {
	launcher Launcher
}

func NewOpenTool(l Launcher) *OpenTool {
	return &OpenTool{launcher: l}
}

func (t *OpenTool) Definition() mcp.Tool {
	return mcp.NewTool("open_document_in_libreoffice",
		mcp.WithDescription("Open a document in the LibreOffice GUI for live viewing. The GUI runs detached from the server."),
		mcp.WithString("path", mcp.Required(),
			mcp.Description("Path to the document to open.")),
		mcp.WithBoolean("readonly",
			mcp.Description("Open the document in view mode."),
			mcp.DefaultBool(false)),
	)
}

func (t *OpenTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return errResult(err)
	}
	readonly := req.GetBool("readonly", false)

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if _, err := os.Stat(abs); err != nil {
		return errResult(fmt.Errorf("%w: %s", odf.ErrNotFound, path))
	}

	pid, err := t.launcher.Open(ctx, abs, readonly)
	if err != nil {
		return errResult(err)
	}
	return jsonResult(map[string]any{
		"success":    true,
		"message":    fmt.Sprintf("Opened %s in LibreOffice GUI", filepath.Base(abs)),
		"path":       abs,
		"readonly":   readonly,
		"process_id": pid,
		"note":       "Document is now open for live viewing. Changes made via the server will be reflected after saving and refreshing.",
	})
}

// RefreshTool nudges a running GUI to reload a document by touching its
// modification time. LibreOffice detects the change and prompts to
// reload; there is no reliable way to force it from outside.
type RefreshTool struct{}

func NewRefreshTool() *RefreshTool {
	return &RefreshTool{}
}

func (t *RefreshTool) Definition() mcp.Tool {
	return mcp.NewTool("refresh_document",
		mcp.WithDescription("Signal LibreOffice to reload a document by updating its modification time. LibreOffice prompts to reload when it notices the change."),
		mcp.WithString("path", mcp.Required(),
			mcp.Description("Path to the document to refresh.")),
	)
}

func (t *RefreshTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return errResult(err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if _, err := os.Stat(abs); err != nil {
		return errResult(fmt.Errorf("%w: %s", odf.ErrNotFound, path))
	}

	now := time.Now()
	if err := os.Chtimes(abs, now, now); err != nil {
		return jsonResult(map[string]any{
			"success": false,
			"message": fmt.Sprintf("Failed to refresh document: %v", err),
			"path":    abs,
			"note":    "Try manually reloading in LibreOffice (File > Reload).",
		})
	}
	return jsonResult(map[string]any{
		"success": true,
		"message": fmt.Sprintf("Refresh signal sent for %s", filepath.Base(abs)),
		"path":    abs,
		"note":    "LibreOffice should detect the file change and prompt to reload. Manual refresh may be needed.",
	})
}

// WatchTool polls a document for size or mtime changes over a bounded
// window and reports what it saw.
type WatchTool struct{}

func NewWatchTool() *WatchTool {
	return &WatchTool{}
}

const defaultWatchSeconds = 30

func (t *WatchTool) Definition() mcp.Tool {
	return mcp.NewTool("watch_document_changes",
		mcp.WithDescription("Watch a document for changes over a period of time, polling once per second, and report every size or modification-time change observed."),
		mcp.WithString("path", mcp.Required(),
			mcp.Description("Path to the document to watch.")),
		mcp.WithNumber("duration_seconds",
			mcp.Description("How long to watch for changes."),
			mcp.DefaultNumber(defaultWatchSeconds)),
	)
}

func (t *WatchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return errResult(err)
	}
	seconds := req.GetInt("duration_seconds", defaultWatchSeconds)
	if seconds <= 0 {
		seconds = defaultWatchSeconds
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	duration := time.Duration(seconds) * time.Second
	changes, err := watch.Watch(ctx, abs, watch.Options{Duration: duration})
	interrupted := errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
	if err != nil && !interrupted {
		return errResult(err)
	}

	payload := map[string]any{
		"success":          true,
		"path":             abs,
		"watch_duration":   seconds,
		"changes_detected": len(changes),
		"changes":          changes,
		"message": fmt.Sprintf("Watched %s for %d seconds, detected %d changes",
			filepath.Base(abs), seconds, len(changes)),
	}
	if interrupted {
		// Changes collected before cancellation are still worth reporting.
		payload["message"] = fmt.Sprintf("Watch of %s ended early, detected %d changes",
			filepath.Base(abs), len(changes))
		payload["note"] = "The watch was interrupted before the full duration elapsed."
	}
	return jsonResult(payload)
}

// SessionTool opens a document in the GUI and hands the client a session
// descriptor explaining how to drive live edits against it.
type SessionTool struct {
	launcher Launcher
}

func NewSessionTool(l Launcher) *SessionTool {
	return &SessionTool{launcher: l}
}

func (t *SessionTool) Definition() mcp.Tool {
	return mcp.NewTool("create_live_editing_session",
		mcp.WithDescription("Open a document in the LibreOffice GUI and set up a live editing session: server-side edits land on disk and the GUI prompts to reload."),
		mcp.WithString("path", mcp.Required(),
			mcp.Description("Path to the document for live editing.")),
		mcp.WithBoolean("auto_refresh",
			mcp.Description("Touch the file after server-side edits so the GUI notices them."),
			mcp.DefaultBool(true)),
	)
}

func (t *SessionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return errResult(err)
	}
	autoRefresh := req.GetBool("auto_refresh", true)

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if _, err := os.Stat(abs); err != nil {
		return errResult(fmt.Errorf("%w: %s", odf.ErrNotFound, path))
	}

	_, openErr := t.launcher.Open(ctx, abs, false)

	session := map[string]any{
		"session_id":           "live_session_" + uuid.NewString(),
		"document_path":        abs,
		"document_name":        filepath.Base(abs),
		"opened_in_gui":        openErr == nil,
		"auto_refresh_enabled": autoRefresh,
		"created_at":           time.Now().Format(time.RFC3339),
		"instructions": map[string]string{
			"view_changes":   "Document is open in the LibreOffice GUI",
			"make_edits":     "Use insert_text_at_position, convert_document and the other document tools",
			"see_updates":    "LibreOffice will detect file changes and prompt to reload",
			"manual_refresh": "Press Ctrl+Shift+R in LibreOffice to force a reload",
			"end_session":    "Close the LibreOffice window when done",
		},
	}
	if openErr != nil {
		session["gui_error"] = openErr.Error()
	}
	if autoRefresh {
		session["monitoring"] = "File modification time is updated after server-side edits"
	}
	return jsonResult(session)
}
