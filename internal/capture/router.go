//go:generate moq --stub -out 0moq_test.go . Listener:ListenerMock

package capture

import (
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/slog"
)

// Listener receives every event published through the router. Listeners
// are compared by identity, so implementations should be pointers.
type Listener interface {
	// OnEvent should handle the event quickly and must not log through
	// the router itself.
	OnEvent(e Event) error
}

// DeliveryError is reported when a listener fails to handle an event.
type DeliveryError struct {
	Err error
}

// Error returns the error message.
func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivering log event: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Router is the process-wide distribution point of log events. Delivery
// is synchronous: Publish returns once every attached listener handled
// the event.
type Router struct {
	log *slog.Logger

	mu        sync.RWMutex
	listeners []Listener

	failures atomic.Uint64

	failed struct {
		mu   sync.Mutex
		seen map[Listener]struct{}
	}
}

// NewRouter creates a new router. The logger is used to report listener
// failures and must not be backed by the router.
func NewRouter(log *slog.Logger) *Router {
	r := &Router{
		log: log.With("job", "capture-router"),
	}

	r.failed.seen = make(map[Listener]struct{})

	return r
}

// Attach registers the listener. Attaching the same listener twice has
// no effect.
func (r *Router) Attach(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, al := range r.listeners {
		if al == l {
			return
		}
	}

	r.listeners = append(r.listeners, l)
}

// Detach deregisters the listener. Once it returns, no publish is in
// progress towards the listener and no later publish reaches it.
func (r *Router) Detach(l Listener) {
	r.mu.Lock()

	for i, al := range r.listeners {
		if al != l {
			continue
		}

		// NOTE: A fresh slice is built so that the backing array of the
		// old one is never written to.
		listeners := make([]Listener, 0, len(r.listeners)-1)
		listeners = append(listeners, r.listeners[:i]...)
		r.listeners = append(listeners, r.listeners[i+1:]...)

		break
	}

	r.mu.Unlock()

	r.failed.mu.Lock()
	delete(r.failed.seen, l)
	r.failed.mu.Unlock()
}

// Publish delivers the event to every attached listener. A failing
// listener does not affect the others nor the caller.
func (r *Router) Publish(e Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, l := range r.listeners {
		if err := deliver(l, e); err != nil {
			r.fail(l, err)
		}
	}
}

// Len returns the amount of attached listeners.
func (r *Router) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.listeners)
}

// Failures returns the total amount of failed deliveries.
func (r *Router) Failures() uint64 {
	return r.failures.Load()
}

// fail records a failed delivery, logging only the first failure of each
// listener.
func (r *Router) fail(l Listener, err error) {
	r.failures.Add(1)

	r.failed.mu.Lock()
	_, seen := r.failed.seen[l]
	r.failed.seen[l] = struct{}{}
	r.failed.mu.Unlock()

	if seen {
		return
	}

	r.log.Error("listener failed", slog.String("error", err.Error()))
}

// deliver passes the event to the listener, turning panics into errors.
func deliver(l Listener, e Event) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &DeliveryError{Err: fmt.Errorf("panic: %v", rec)}
		}
	}()

	if err := l.OnEvent(e); err != nil {
		return &DeliveryError{Err: err}
	}

	return nil
}
