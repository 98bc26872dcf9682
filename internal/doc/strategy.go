package doc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	odf "github.com/logicossoftware/go-odf"
	"github.com/logicossoftware/go-odf/internal/office"
)

// errSkip marks a strategy that does not apply to the file at hand
// (wrong extension, dependency absent). Always recoverable.
var errSkip = errors.New("doc: strategy not applicable")

// strategy is one step of a fallback chain.
type strategy struct {
	name string
	run  func(context.Context) (string, error)
}

// recoverable reports whether the next strategy in a chain may run after
// err. Anything outside this set aborts the chain: a hard failure must
// surface, not be papered over by a weaker fallback.
func recoverable(err error) bool {
	return errors.Is(err, errSkip) ||
		errors.Is(err, office.ErrUnavailable) ||
		errors.Is(err, odf.ErrConversion) ||
		errors.Is(err, odf.ErrParse) ||
		errors.Is(err, odf.ErrNotFound) ||
		errors.Is(err, odf.ErrUnsupportedFormat)
}

// runChain tries each strategy in order, moving on only for recoverable
// errors. When every strategy fails the combined report is returned as a
// conversion failure so callers can surface all diagnostics at once.
func runChain(ctx context.Context, what string, chain []strategy) (string, error) {
	var failures []error
	for _, s := range chain {
		out, err := s.run(ctx)
		if err == nil {
			return out, nil
		}
		if !recoverable(err) {
			return "", err
		}
		if !errors.Is(err, errSkip) {
			slog.Debug("fallback strategy failed", "operation", what, "strategy", s.name, "error", err)
		}
		failures = append(failures, fmt.Errorf("%s: %w", s.name, err))
	}
	return "", fmt.Errorf("%w: %s: %v", odf.ErrConversion, what, errors.Join(failures...))
}
