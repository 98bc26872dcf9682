// Package office drives a headless LibreOffice installation through its
// command-line interface. Everything here treats the office suite as an
// external, fallible collaborator: the executable may be missing, a
// conversion may time out or exit non-zero, and the only authoritative
// success signal is the presence of the output file. Callers fall back to
// the native odf codec on recoverable failures.
package office

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	odf "github.com/logicossoftware/go-odf"
)

// ErrUnavailable reports that no office-suite executable could be found.
// It is a recoverable error: callers fall back to the native codec.
var ErrUnavailable = errors.New("office: no libreoffice executable found")

// candidates in discovery order, matching common installations.
var candidates = []string{"libreoffice", "loffice", "soffice"}

// DefaultTimeout bounds a single headless invocation.
const DefaultTimeout = 30 * time.Second

// Config configures a Runner. The zero value discovers the executable
// and uses DefaultTimeout.
type Config struct {
	Executable string        // explicit executable path; empty enables discovery
	Timeout    time.Duration // per-invocation bound
}

// Converter is the conversion capability consumed by the tool layer:
// given a source file and a target format it produces a converted file in
// outDir and returns the produced path.
type Converter interface {
	Convert(ctx context.Context, src, outDir, format string) (string, error)
}

// Runner implements Converter over process invocation.
type Runner struct {
	cfg Config
}

func NewRunner(cfg Config) *Runner {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Runner{cfg: cfg}
}

// Function variables for testing injection.
var (
	lookPath   = exec.LookPath
	newCommand = exec.CommandContext
	releaseCmd = func(cmd *exec.Cmd) error { return cmd.Process.Release() }
)

func (r *Runner) executable() (string, error) {
	if r.cfg.Executable != "" {
		return r.cfg.Executable, nil
	}
	for _, name := range candidates {
		if p, err := lookPath(name); err == nil {
			return p, nil
		}
	}
	return "", ErrUnavailable
}

// run invokes the executable with a bounded timeout, capturing output for
// diagnostics. A non-zero exit is returned as-is: some soffice versions
// exit non-zero on successful conversions, so callers must judge success
// by the produced file, not the exit status.
func (r *Runner) run(ctx context.Context, args ...string) (stdout, stderr string, err error) {
	exe, err := r.executable()
	if err != nil {
		return "", "", err
	}
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	cmd := newCommand(ctx, exe, args...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	runErr := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return outBuf.String(), errBuf.String(),
			fmt.Errorf("%w: timed out after %s", odf.ErrConversion, r.cfg.Timeout)
	}
	return outBuf.String(), errBuf.String(), runErr
}

// Convert converts src to format into outDir and returns the path of the
// produced file. format may carry an export filter after a colon
// ("txt:Text (encoded)"); the part before the colon is the output
// extension. The captured stderr is included in the ErrConversion report
// when no output appears, never swallowed.
func (r *Runner) Convert(ctx context.Context, src, outDir, format string) (string, error) {
	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", odf.ErrNotFound, src)
		}
		return "", fmt.Errorf("%w: %v", odf.ErrIO, err)
	}

	_, stderr, err := r.run(ctx, "--headless", "--convert-to", format, "--outdir", outDir, src)
	if err != nil {
		if errors.Is(err, ErrUnavailable) || errors.Is(err, odf.ErrConversion) {
			return "", err
		}
		// Exit-status noise; fall through to the output check.
	}

	if out := findOutput(outDir, src, format); out != "" {
		return out, nil
	}
	msg := strings.TrimSpace(stderr)
	if msg == "" {
		msg = "no diagnostic output"
	}
	return "", fmt.Errorf("%w: no output for %s in %s (%s)", odf.ErrConversion, filepath.Base(src), outDir, msg)
}

// findOutput locates the converted file. soffice names it after the
// source stem, but the exact name has varied across versions, so a few
// candidates are tried before falling back to any file with the target
// extension.
func findOutput(outDir, src, format string) string {
	ext := format
	if i := strings.IndexByte(format, ':'); i >= 0 {
		ext = format[:i]
	}
	base := filepath.Base(src)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	for _, name := range []string{
		stem + "." + ext,
		base + "." + ext,
		"output." + ext,
	} {
		p := filepath.Join(outDir, name)
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p
		}
	}
	matches, _ := filepath.Glob(filepath.Join(outDir, "*."+ext))
	for _, m := range matches {
		if fi, err := os.Stat(m); err == nil && !fi.IsDir() {
			return m
		}
	}
	return ""
}

// Open launches the office suite GUI on path as a detached process and
// returns its pid. With readonly the document opens in view mode.
func (r *Runner) Open(ctx context.Context, path string, readonly bool) (int, error) {
	exe, err := r.executable()
	if err != nil {
		return 0, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", odf.ErrIO, err)
	}
	args := []string{}
	if readonly {
		args = append(args, "--view")
	}
	args = append(args, abs)

	cmd := exec.Command(exe, args...)
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("%w: launching gui: %v", odf.ErrConversion, err)
	}
	pid := cmd.Process.Pid
	if err := releaseCmd(cmd); err != nil {
		return pid, fmt.Errorf("%w: detaching gui process: %v", odf.ErrIO, err)
	}
	return pid, nil
}

// Version probes the installation and returns its version banner.
func (r *Runner) Version(ctx context.Context) (string, error) {
	stdout, stderr, err := r.run(ctx, "--version")
	if err != nil {
		if errors.Is(err, ErrUnavailable) || errors.Is(err, odf.ErrConversion) {
			return "", err
		}
		return "", fmt.Errorf("%w: version probe: %v (%s)", odf.ErrConversion, err, strings.TrimSpace(stderr))
	}
	return strings.TrimSpace(stdout), nil
}
