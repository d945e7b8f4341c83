package git

import (
	"context"
	"sync"
	"time"

	"github.com/notegit/notegit/internal/watch"
)

// DefaultDebounceWindow is the delay after the last trigger before a
// debounced refresh actually runs.
const DefaultDebounceWindow = 500 * time.Millisecond

// Poller maintains an eventually-consistent view of the working tree by
// polling the external status command. It owns the one schedulable unit
// of concurrency in the system: a single-slot debounce timer that
// collapses bursts of change notifications into one poll.
type Poller struct {
	gateway   *Gateway
	debouncer *watch.Debouncer

	mu   sync.Mutex
	last *Status
}

// NewPoller creates a poller refreshing through the given gateway. A
// zero window falls back to DefaultDebounceWindow.
func NewPoller(gateway *Gateway, window time.Duration) *Poller {
	if window == 0 {
		window = DefaultDebounceWindow
	}
	p := &Poller{gateway: gateway}
	p.debouncer = watch.NewDebouncer(window, func() {
		// Debounced refreshes are fire-and-forget; consumers read the
		// snapshot through Last and decide how to show a failure.
		_, _ = p.Refresh(context.Background())
	})
	return p
}

// Refresh invokes the external status command, parses the output, and
// replaces the cached snapshot. On failure the previous snapshot is
// left untouched and the error is returned; there is no automatic
// retry.
func (p *Poller) Refresh(ctx context.Context) (Status, error) {
	output, err := p.gateway.RawStatus(ctx)
	if err != nil {
		return Status{}, err
	}
	status := ParseStatus(output)

	p.mu.Lock()
	p.last = &status
	p.mu.Unlock()
	return status, nil
}

// RefreshDebounced schedules a refresh, collapsing any number of calls
// within the window into exactly one Refresh after the window elapses
// from the last call.
func (p *Poller) RefreshDebounced() {
	p.debouncer.Trigger()
}

// Last returns the most recent snapshot, or false when no successful
// poll has happened yet.
func (p *Poller) Last() (Status, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == nil {
		return Status{}, false
	}
	return *p.last, true
}

// Close synchronously cancels any pending debounced refresh so no
// callback fires after teardown. An in-flight subprocess invocation is
// not killed; it completes and its result is discarded.
func (p *Poller) Close() {
	p.debouncer.Stop()
}
