package fsops

import (
	"context"
	"sync"
	"time"
)

const (
	tombstoneSweepSize = 100
	tombstoneMaxAge    = time.Minute
)

// Registry tracks cancellable operations by id. Cancelling an id that has not
// begun yet plants a tombstone, so the operation starts cancelled the moment
// it registers. That closes the race between a fast Begin and an earlier
// Cancel arriving out of order.
type Registry struct {
	mu  sync.Mutex
	ops map[string]*operation
}

type operation struct {
	cancel    context.CancelFunc
	cancelled bool
	planted   time.Time
}

func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]*operation)}
}

// Begin registers id and returns a context derived from parent plus a release
// function to call when the operation ends. If id was cancelled before Begin,
// the returned context is already cancelled.
func (r *Registry) Begin(parent context.Context, id string) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	op := &operation{cancel: cancel}
	r.mu.Lock()
	if prior, ok := r.ops[id]; ok && prior.cancelled {
		cancel()
		op.cancelled = true
	}
	r.ops[id] = op
	r.mu.Unlock()
	release := func() {
		r.mu.Lock()
		if current, ok := r.ops[id]; ok && current == op {
			delete(r.ops, id)
		}
		r.mu.Unlock()
		cancel()
	}
	return ctx, release
}

// Cancel cancels the operation registered under id. An unknown id is
// tombstoned so a later Begin with the same id starts cancelled.
func (r *Registry) Cancel(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if op, ok := r.ops[id]; ok {
		if op.cancel != nil {
			op.cancel()
		}
		op.cancelled = true
		return
	}
	r.sweepLocked()
	r.ops[id] = &operation{cancelled: true, planted: time.Now()}
}

// Active reports whether id has a live, uncancelled operation.
func (r *Registry) Active(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	op, ok := r.ops[id]
	return ok && op.cancel != nil && !op.cancelled
}

// sweepLocked drops stale tombstones once the registry grows past the sweep
// threshold, so cancels for ids that never register cannot accumulate.
func (r *Registry) sweepLocked() {
	if len(r.ops) <= tombstoneSweepSize {
		return
	}
	cutoff := time.Now().Add(-tombstoneMaxAge)
	for id, op := range r.ops {
		if op.cancel == nil && op.planted.Before(cutoff) {
			delete(r.ops, id)
		}
	}
}
