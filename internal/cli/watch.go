package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/exinc"
	"github.com/aretw0/exinc/internal/presentation/tui"
	"github.com/fsnotify/fsnotify"
)

// settle is how long the watcher waits for a burst of writes to end before re-running.
const settle = 100 * time.Millisecond

// RunWatch expands the input, then expands again whenever the input or a file it
// inlined changes, or a missing include appears, until ctx is cancelled.
func RunWatch(ctx context.Context, opts Options, s Streams) error {
	if opts.Input == "" {
		return errWatchNeedsInput
	}
	logger := createLogger(opts.Debug, s.Err)
	cfg, err := LoadConfig(opts.ConfigPath, s.Err)
	if err != nil {
		return err
	}
	tui.PrintBanner(s.Err, exinc.Version)

	root, err := canonical(opts.Input)
	if err != nil {
		return err
	}

	for {
		p, err := expand(ctx, opts, s, cfg, logger)
		switch {
		case err == nil:
			printSystemMessage(s.Err, "Expanded '%s' (%d files inlined).", opts.Input, len(p.files))
		case errors.Is(err, ErrReported):
		default:
			tui.NewReportPrinter(s.Err).Message(Message(err))
		}

		printSystemMessage(s.Err, "Waiting for changes...")
		watched := append(append([]string{root}, p.files...), p.missing...)
		changed, ok, err := waitForChange(ctx, watched, logger)
		if err != nil {
			return err
		}
		if !ok {
			logger.Info("Stopping watcher")
			return nil
		}
		printSystemMessage(s.Err, "Change detected in '%s'.", changed)
	}
}

// waitForChange blocks until one of files is written, created, renamed or removed.
// It returns false when ctx is done first.
func waitForChange(ctx context.Context, files []string, logger *slog.Logger) (string, bool, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return "", false, fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	// Directories are watched rather than files so editors that replace files on save are seen.
	watched := make(map[string]struct{}, len(files))
	dirs := make(map[string]struct{})
	for _, f := range files {
		watched[f] = struct{}{}
		dir := filepath.Dir(f)
		if _, ok := dirs[dir]; ok {
			continue
		}
		dirs[dir] = struct{}{}
		if err := w.Add(dir); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Debug("Directory not watched, it does not exist", "dir", dir)
				continue
			}
			logger.Warn("Cannot watch directory", "dir", dir, "err", err)
		}
	}

	const interesting = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove
	var changed string
	var timer <-chan time.Time
	errs := w.Errors
	for {
		select {
		case <-ctx.Done():
			return "", false, nil
		case ev, ok := <-w.Events:
			if !ok {
				return "", false, nil
			}
			if _, hit := watched[ev.Name]; !hit || ev.Op&interesting == 0 {
				continue
			}
			logger.Debug("File changed", "file", ev.Name, "op", ev.Op.String())
			changed = ev.Name
			timer = time.After(settle)
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn("Watcher error", "err", err)
		case <-timer:
			return changed, true, nil
		}
	}
}

// canonical returns the absolute path of name with symlinks resolved.
func canonical(name string) (string, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}
