package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrNoFiles is returned when Run is given nothing to watch.
var ErrNoFiles = errors.New("no files to watch")

// RunFunc is called each time the watcher triggers a regeneration.
type RunFunc func(ctx context.Context) (*RunResult, error)

// RunResult summarizes one regeneration.
type RunResult struct {
	ResourceCount int
	Written       []string
}

// Options configures the watch behaviour.
type Options struct {
	// Files are the files whose changes trigger a regeneration. Their parent
	// directories are watched so that files replaced by editors, or created
	// after the watcher starts, are still noticed.
	Files []string

	// Debounce is the quiet period before triggering a regeneration.
	Debounce time.Duration

	// Logger is used for structured logging.
	Logger *slog.Logger

	// Out is the writer for user-facing status messages.
	Out io.Writer
}

// DefaultOptions returns the options used by the watch command.
func DefaultOptions() Options {
	return Options{
		Debounce: 500 * time.Millisecond,
		Logger:   slog.Default(),
		Out:      os.Stderr,
	}
}

// Run performs an initial regeneration and then one more after every burst
// of changes to opts.Files. It blocks until ctx is cancelled or a SIGINT or
// SIGTERM is received.
func Run(ctx context.Context, opts Options, runFn RunFunc) error {
	if len(opts.Files) == 0 {
		return ErrNoFiles
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.Out == nil {
		opts.Out = io.Discard
	}

	targets, dirs, err := resolve(opts.Files)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching directory %q: %w", dir, err)
		}
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, _ = fmt.Fprintf(opts.Out, "watching %d file(s) (debounce=%s)\n", len(targets), opts.Debounce)

	var mu sync.Mutex

	run := func(trigger string) {
		mu.Lock()
		defer mu.Unlock()

		if sigCtx.Err() != nil {
			return
		}

		doRun(sigCtx, opts, runFn, trigger)
	}

	run("(initial)")

	debouncer := NewDebouncer(opts.Debounce, run, opts.Logger)
	defer debouncer.Stop()

	for {
		select {
		case <-sigCtx.Done():
			_, _ = fmt.Fprintln(opts.Out, "\nshutting down watcher")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !isRelevant(event, targets) {
				continue
			}

			opts.Logger.Debug("file changed",
				slog.String("path", event.Name),
				slog.String("op", event.Op.String()),
			)

			debouncer.Trigger(event.Name)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			opts.Logger.Error("watcher error", slog.String("error", watchErr.Error()))
		}
	}
}

// doRun executes a single regeneration and prints the status line.
func doRun(ctx context.Context, opts Options, runFn RunFunc, trigger string) {
	now := time.Now().Format("15:04:05")

	result, err := runFn(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(opts.Out, "[%s] %s → ERROR: %v\n", now, trigger, err)
		return
	}

	_, _ = fmt.Fprintf(opts.Out, "[%s] %s → OK (%d resources, %d files written)\n",
		now, trigger, result.ResourceCount, len(result.Written))
}

// resolve returns the absolute watched file paths and the distinct
// directories that contain them.
func resolve(files []string) (map[string]bool, []string, error) {
	targets := make(map[string]bool, len(files))

	var dirs []string

	seen := map[string]bool{}

	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, nil, fmt.Errorf("resolving %q: %w", f, err)
		}

		targets[abs] = true

		dir := filepath.Dir(abs)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	return targets, dirs, nil
}

// isRelevant reports whether event modifies one of the watched files.
func isRelevant(event fsnotify.Event, targets map[string]bool) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	return targets[filepath.Clean(event.Name)]
}
