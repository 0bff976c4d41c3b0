// Package watch keeps a displayed auction snapshot converging to server truth
// by re-fetching on a fixed cadence. Ticks are wall-clock anchored: a slow or
// failed fetch never delays or cancels the next one. Responses race, so only
// the most recently initiated fetch may apply its result; anything superseded
// or arriving after Stop is discarded.
package watch

import (
	"context"
	"sync"
	"time"

	"auction-client/utils"
)

// Fixed cadences used by the surrounding views
const (
	// DetailInterval refreshes a single auction detail view
	DetailInterval = 10 * time.Second
	// CollectionInterval refreshes a user's auction collection view
	CollectionInterval = 30 * time.Second
)

// FetchFunc retrieves a fresh snapshot. The context is cancelled when the
// watcher stops, so in-flight requests can be abandoned.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// ApplyFunc receives a snapshot that won the supersession check. The watcher
// is the single writer: ApplyFunc is never invoked concurrently and never
// after Stop returns.
type ApplyFunc[T any] func(T)

// Handle controls one running watcher
type Handle[T any] struct {
	fetch    FetchFunc[T]
	apply    ApplyFunc[T]
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	stopped bool
	latest  uint64 // generation of the most recently initiated fetch
}

// Start launches a watcher: one immediate fetch, then one per interval tick
// until Stop is called.
func Start[T any](fetch FetchFunc[T], apply ApplyFunc[T], interval time.Duration) *Handle[T] {
	ctx, cancel := context.WithCancel(context.Background())
	h := &Handle[T]{
		fetch:    fetch,
		apply:    apply,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Handle[T]) run() {
	defer close(h.done)

	h.launch()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return
		case <-ticker.C:
			h.launch()
		}
	}
}

// launch starts one independent fetch. Each fetch runs in its own goroutine
// so an overrunning request cannot hold up the tick loop.
func (h *Handle[T]) launch() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.latest++
	generation := h.latest
	h.mu.Unlock()

	go func() {
		snapshot, err := h.fetch(h.ctx)
		if err != nil {
			if h.ctx.Err() == nil {
				utils.Warn("watch: fetch failed", map[string]any{
					"generation": generation,
					"error":      err.Error(),
				})
			}
			return
		}

		h.mu.Lock()
		defer h.mu.Unlock()
		if h.stopped || generation != h.latest {
			// Superseded by a newer fetch, or stopped while in flight.
			return
		}
		h.apply(snapshot)
	}()
}

// Stop halts the watcher and cancels any fetch still in flight. Idempotent.
// Once Stop returns, no further ApplyFunc invocation can occur: the stopped
// flag is flipped under the same mutex that guards apply, so a response
// resolving afterwards is discarded.
func (h *Handle[T]) Stop() {
	h.mu.Lock()
	alreadyStopped := h.stopped
	h.stopped = true
	h.mu.Unlock()

	if alreadyStopped {
		return
	}
	h.cancel()
	<-h.done
}
