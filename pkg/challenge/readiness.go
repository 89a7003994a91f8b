package challenge

import (
	"sync"

	"go.uber.org/zap"
)

// Readiness latches the widget script's load signal and holds callbacks that
// must wait for it. The latch never resets; the script does not unload.
type Readiness struct {
	mu     sync.Mutex
	ready  bool
	queue  []func()
	logger *zap.Logger
}

// NewReadiness constructs an unlatched Readiness. A nil logger defaults to a
// no-op logger.
func NewReadiness(logger *zap.Logger) *Readiness {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Readiness{logger: logger}
}

// Ready reports whether the load signal has been observed.
func (r *Readiness) Ready() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ready
}

// MarkReady latches readiness and drains the queued callbacks once, in
// enqueue order. A panic in one callback is recovered and logged so the
// remainder of the queue still runs. Calling MarkReady again is a no-op.
func (r *Readiness) MarkReady() {
	r.mu.Lock()
	if r.ready {
		r.mu.Unlock()
		return
	}
	r.ready = true
	queue := r.queue
	r.queue = nil
	r.mu.Unlock()

	for _, fn := range queue {
		r.run(fn)
	}
}

// WhenReady invokes fn synchronously when the latch is already set, otherwise
// appends it to the drain queue. Each queued callback runs exactly once.
func (r *Readiness) WhenReady(fn func()) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	if !r.ready {
		r.queue = append(r.queue, fn)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	r.run(fn)
}

func (r *Readiness) run(fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("challenge: readiness callback panicked", zap.Any("panic", rec))
		}
	}()
	fn()
}
