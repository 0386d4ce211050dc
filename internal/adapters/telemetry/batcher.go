// Package telemetry traces pipeline stages and tool invocations with OpenTelemetry and
// feeds their lifecycle and output to a renderer.
package telemetry

import (
	"bytes"
	"sync"
	"time"

	"go.trai.ch/zerr"
)

const (
	// DefaultBatchSize is the number of buffered bytes that forces delivery.
	DefaultBatchSize = 4096
	// DefaultBatchDelay bounds how long output may wait in the buffer.
	DefaultBatchDelay = 50 * time.Millisecond
)

var errBatcherClosed = zerr.New("output batcher is closed")

// OutputBatcher coalesces tool output into larger chunks for the renderer. A chunk is
// delivered when DefaultBatchSize bytes are buffered or when the oldest buffered byte has
// waited for the delay, whichever comes first. It is safe for concurrent use.
type OutputBatcher struct {
	size    int
	delay   time.Duration
	deliver func([]byte)

	mu     sync.Mutex
	buf    bytes.Buffer
	timer  *time.Timer
	closed bool
}

// NewOutputBatcher returns a batcher handing chunks to deliver. Non-positive size and delay
// select the defaults. deliver runs with the batcher locked, so chunks arrive in order.
func NewOutputBatcher(size int, delay time.Duration, deliver func([]byte)) *OutputBatcher {
	if size <= 0 {
		size = DefaultBatchSize
	}
	if delay <= 0 {
		delay = DefaultBatchDelay
	}
	return &OutputBatcher{size: size, delay: delay, deliver: deliver}
}

// Write buffers p. The delay timer is armed by the first byte of a chunk.
func (b *OutputBatcher) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, errBatcherClosed
	}

	_, _ = b.buf.Write(p)
	if b.buf.Len() >= b.size {
		b.flushLocked()
		return len(p), nil
	}
	if b.timer == nil {
		b.timer = time.AfterFunc(b.delay, b.Flush)
	}
	return len(p), nil
}

// Flush delivers whatever is buffered.
func (b *OutputBatcher) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.closed {
		b.flushLocked()
	}
}

// Close delivers the remaining output. Later writes fail; Close itself is idempotent.
func (b *OutputBatcher) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.flushLocked()
	b.closed = true
	return nil
}

// flushLocked must be called with mu held.
func (b *OutputBatcher) flushLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	if b.buf.Len() == 0 {
		return
	}

	chunk := bytes.Clone(b.buf.Bytes())
	b.buf.Reset()
	if b.deliver != nil {
		b.deliver(chunk)
	}
}
