package watch

import (
	"log/slog"
	"sync"
	"time"
)

// Debouncer turns a burst of file events into one regeneration. Each Trigger
// restarts the quiet period; when it elapses, fire receives the path of the
// most recent event.
type Debouncer struct {
	quiet  time.Duration
	fire   func(path string)
	logger *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending string
}

// NewDebouncer returns a Debouncer that calls fire after quiet has passed
// without a new event. A nil logger falls back to slog.Default.
func NewDebouncer(quiet time.Duration, fire func(path string), logger *slog.Logger) *Debouncer {
	if logger == nil {
		logger = slog.Default()
	}

	return &Debouncer{
		quiet:  quiet,
		fire:   fire,
		logger: logger,
	}
}

// Trigger records an event for path and restarts the quiet period.
func (d *Debouncer) Trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = path

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.quiet, d.flush)
}

// Stop drops any event still waiting for its quiet period.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// flush runs on the timer goroutine. A panicking regeneration is logged so
// the watch loop keeps serving later events.
func (d *Debouncer) flush() {
	d.mu.Lock()
	path := d.pending
	d.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("regeneration panicked", slog.String("path", path), slog.Any("panic", r))
		}
	}()

	d.fire(path)
}
