package telemetry_test

import (
	"context"
	"sync"
	"time"
)

// recordingRenderer is a simple test double for ports.Renderer.
type recordingRenderer struct {
	mu        sync.Mutex
	plans     [][]string
	started   []string
	logs      map[string][]byte
	completed map[string]error
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{
		logs:      make(map[string][]byte),
		completed: make(map[string]error),
	}
}

func (r *recordingRenderer) Start(_ context.Context) error { return nil }
func (r *recordingRenderer) Stop() error                   { return nil }
func (r *recordingRenderer) Wait() error                   { return nil }

func (r *recordingRenderer) OnPlanEmit(steps []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans = append(r.plans, steps)
}

func (r *recordingRenderer) OnStepStart(_, _, name string, _ time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, name)
}

func (r *recordingRenderer) OnStepLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs[spanID] = append(r.logs[spanID], data...)
}

func (r *recordingRenderer) OnStepComplete(spanID string, _ time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed[spanID] = err
}

func (r *recordingRenderer) logFor(spanID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return string(r.logs[spanID])
}
