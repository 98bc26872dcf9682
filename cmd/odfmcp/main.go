// Command odfmcp serves office-document tools over the Model Context
// Protocol on stdin/stdout.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/logicossoftware/go-odf/internal/office"
	"github.com/logicossoftware/go-odf/internal/server"
)

// CLI defines the command-line interface for odfmcp.
var CLI struct {
	Soffice  string        `help:"Path to the LibreOffice executable. Discovered on PATH when empty." env:"ODFMCP_SOFFICE"`
	Timeout  time.Duration `help:"Timeout for a single office-suite invocation." env:"ODFMCP_TIMEOUT" default:"30s"`
	LogLevel string        `name:"log-level" help:"Log level: debug, info, warn, error." env:"ODFMCP_LOG_LEVEL" default:"info" enum:"debug,info,warn,error"`

	Serve   ServeCmd   `cmd:"" default:"1" help:"Serve MCP over stdin/stdout"`
	Check   CheckCmd   `cmd:"" help:"Probe the LibreOffice installation"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// ServeCmd runs the MCP server until the client disconnects.
type ServeCmd struct{}

func (c *ServeCmd) Run() error {
	s := server.New(server.Config{
		Soffice: CLI.Soffice,
		Timeout: CLI.Timeout,
	})
	slog.Info("serving MCP on stdio", "version", server.Version)
	return server.ServeStdio(s)
}

// CheckCmd reports whether a usable LibreOffice installation is present.
type CheckCmd struct{}

func (c *CheckCmd) Run() error {
	runner := office.NewRunner(office.Config{
		Executable: CLI.Soffice,
		Timeout:    CLI.Timeout,
	})
	banner, err := runner.Version(context.Background())
	if err != nil {
		fmt.Println("LibreOffice: not available")
		fmt.Printf("  %v\n", err)
		fmt.Println("Conversion, spreadsheet and GUI tools will be unavailable;")
		fmt.Println("document reading and editing fall back to native parsing.")
		return nil
	}
	fmt.Printf("LibreOffice: %s\n", banner)
	return nil
}

// VersionCmd prints the server version.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("odfmcp %s\n", server.Version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("odfmcp"),
		kong.Description("MCP server for LibreOffice and OpenDocument files"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	var level slog.Level
	switch CLI.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	// stdout carries the MCP stream; logs go to stderr only.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
