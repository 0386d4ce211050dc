// Package watcher watches a workspace for descriptor changes and coalesces them into regeneration batches.
package watcher

import (
	"maps"
	"slices"
	"sync"
	"time"
)

// Debouncer collects changed paths and hands them over as one sorted batch once
// no new path has arrived for the configured window.
type Debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	deliver func(paths []string)
	changed map[string]struct{}
	timer   *time.Timer
	stopped bool

	inflight sync.WaitGroup
}

// NewDebouncer returns a Debouncer that calls deliver with each batch. A nil deliver drops batches.
func NewDebouncer(window time.Duration, deliver func(paths []string)) *Debouncer {
	return &Debouncer{
		window:  window,
		deliver: deliver,
		changed: make(map[string]struct{}),
	}
}

// Add records path as changed and restarts the quiet window.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.changed[path] = struct{}{}
	if d.timer == nil {
		d.timer = time.AfterFunc(d.window, d.expire)
		return
	}
	d.timer.Reset(d.window)
}

func (d *Debouncer) expire() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	batch := d.takeLocked()
	if batch == nil || d.deliver == nil {
		return
	}
	d.inflight.Go(func() { d.deliver(batch) })
}

// Stop drops pending paths, ignores later adds and waits for batches already being delivered.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
	clear(d.changed)
	d.mu.Unlock()

	d.inflight.Wait()
}

// Flush delivers the pending batch right away and waits for deliver to return.
// If the window already expired, the batch belongs to that expiry and Flush does nothing.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil && !d.timer.Stop() {
		d.mu.Unlock()
		return
	}
	batch := d.takeLocked()
	d.mu.Unlock()

	if batch != nil && d.deliver != nil {
		d.deliver(batch)
	}
}

// takeLocked empties the pending set. It returns nil when nothing is pending.
func (d *Debouncer) takeLocked() []string {
	if len(d.changed) == 0 {
		return nil
	}
	batch := slices.Sorted(maps.Keys(d.changed))
	clear(d.changed)
	return batch
}
