package apps

import (
	"context"
	"sync"
	"time"

	"github.com/yllada/tunnelsplit/common"
)

// AllowedWriter is the part of the Service the saver needs.
type AllowedWriter interface {
	SetAllowedApps(ctx context.Context, packageNames []string) error
}

// Saver debounces selection changes before pushing them to the helper.
// Rapid toggles collapse into a single setAllowedApps call once the
// quiet period elapses. Completed and failed saves are announced through
// the registered callbacks, which fire on the saver's goroutine.
type Saver struct {
	mu      sync.Mutex
	writer  AllowedWriter
	delay   time.Duration
	timer   *time.Timer
	pending []string
	// gen invalidates timers that fire after being superseded. A timer
	// stopped too late still runs its callback; the generation check
	// keeps it from committing a newer snapshot before its quiet period.
	gen uint64

	onSaved func(snapshot []string)
	onError func(err error)
}

// NewSaver creates a saver with the given quiet period.
func NewSaver(writer AllowedWriter, delay time.Duration) *Saver {
	if delay <= 0 {
		delay = common.DefaultSaveDebounce
	}
	return &Saver{
		writer: writer,
		delay:  delay,
	}
}

// SetOnSaved registers a callback invoked after a successful save with
// the snapshot that was persisted.
func (s *Saver) SetOnSaved(fn func(snapshot []string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSaved = fn
}

// SetOnError registers a callback invoked when a save fails.
func (s *Saver) SetOnError(fn func(err error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onError = fn
}

// Schedule records the latest selection snapshot and (re)starts the
// debounce timer. Earlier pending snapshots are superseded.
func (s *Saver) Schedule(snapshot []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = append([]string(nil), snapshot...)
	s.gen++
	gen := s.gen

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, func() { s.commitPending(gen) })
}

// Flush commits a pending snapshot immediately, if any.
// Used when the UI exits before the quiet period elapses.
func (s *Saver) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	gen := s.gen
	s.mu.Unlock()

	s.commitPending(gen)
}

// Cancel drops a pending snapshot without saving it.
func (s *Saver) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = nil
}

// Pending reports whether a snapshot is waiting to be saved.
func (s *Saver) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// commitPending pushes the pending snapshot through the writer and
// fires the outcome callback. A failed save keeps nothing queued; the
// next toggle schedules a fresh snapshot and retries. A stale
// generation means a newer Schedule owns the snapshot now.
func (s *Saver) commitPending(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	snapshot := s.pending
	s.pending = nil
	s.timer = nil
	onSaved := s.onSaved
	onError := s.onError
	s.mu.Unlock()

	if snapshot == nil {
		return
	}

	if err := s.writer.SetAllowedApps(context.Background(), snapshot); err != nil {
		common.LogError("debounced save failed: %v", err)
		if onError != nil {
			onError(err)
		}
		return
	}

	if onSaved != nil {
		onSaved(snapshot)
	}
}
