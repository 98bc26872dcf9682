// Package watch detects document changes by polling file size and
// modification time. Polling is deliberate: the office suite saves
// in-place on every platform this runs on, and callers must not depend
// on sub-second latency, so no OS-level change notification is used.
package watch

import (
	"context"
	"fmt"
	"os"
	"time"

	odf "github.com/logicossoftware/go-odf"
)

// Change is one detected modification of the watched file.
type Change struct {
	Timestamp  time.Time `json:"timestamp"`
	SizeBefore int64     `json:"size_before"`
	SizeAfter  int64     `json:"size_after"`
	SizeDelta  int64     `json:"size_change"`
	ModTime    time.Time `json:"modification_time"`
}

const (
	DefaultInterval = time.Second
	DefaultDuration = 30 * time.Second
)

// Options configures a watch. Zero values take the defaults.
type Options struct {
	Interval time.Duration
	Duration time.Duration
}

// Watch samples path every Interval for Duration and returns the changes
// seen. Each change re-baselines the watcher, so successive saves are
// reported individually. The watch ends early when the file disappears
// or ctx is canceled; changes collected so far are returned either way.
func Watch(ctx context.Context, path string, opts Options) ([]Change, error) {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}

	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", odf.ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", odf.ErrIO, err)
	}
	baseSize := fi.Size()
	baseMod := fi.ModTime()

	changes := []Change{}
	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()
	deadline := time.NewTimer(opts.Duration)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return changes, ctx.Err()
		case <-deadline.C:
			return changes, nil
		case <-ticker.C:
			fi, err := os.Stat(path)
			if err != nil {
				// Deleted mid-watch: report what was seen.
				return changes, nil
			}
			size, mod := fi.Size(), fi.ModTime()
			if mod.After(baseMod) || size != baseSize {
				changes = append(changes, Change{
					Timestamp:  time.Now(),
					SizeBefore: baseSize,
					SizeAfter:  size,
					SizeDelta:  size - baseSize,
					ModTime:    mod,
				})
				baseSize, baseMod = size, mod
			}
		}
	}
}
