package hookstorm

import (
	"runtime/debug"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Handler is a callback invoked synchronously each time an event is
// triggered under the kind it was registered for. Handlers receive the
// event by value and return nothing. Any state a handler captures is
// the handler author's responsibility to synchronize; the registry only
// synchronizes its own kind-to-handler map.
type Handler func(Event)

// PanicHandler is called after a handler panic has been recovered
// during Trigger. It receives the kind the trigger was keyed by, the
// event being delivered, the recovered panic value, and the stack
// captured at the point of recovery.
type PanicHandler func(kind string, event Event, recovered any, stack []byte)

// Stats contains registry dispatch counters.
type Stats struct {
	// EventsTriggered is the total number of Trigger calls.
	EventsTriggered uint64

	// HandlersInvoked is the total number of handler executions.
	HandlersInvoked uint64

	// HandlerPanics is the number of handler executions that panicked.
	HandlerPanics uint64
}

// Registry is the shared, concurrency-safe store mapping event kinds to
// ordered handler lists. Registration appends, never replaces; Trigger
// invokes a kind's handlers in registration order on the calling
// goroutine. All methods are safe for concurrent use without external
// synchronization.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string][]Handler

	logger       zerolog.Logger
	panicHandler PanicHandler

	eventsTriggered atomic.Uint64
	handlersInvoked atomic.Uint64
	handlerPanics   atomic.Uint64
}

// New creates an empty registry with the given options.
func New(opts ...Option) *Registry {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Registry{
		handlers:     make(map[string][]Handler),
		logger:       cfg.logger,
		panicHandler: cfg.panicHandler,
	}
}

// Register appends handler to the list for kind, creating the list on
// first registration. Handlers already registered for kind are
// retained; a later Trigger for kind runs all of them in registration
// order. Register always succeeds and imposes no bound on handler
// count.
func (r *Registry) Register(kind string, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers[kind] = append(r.handlers[kind], handler)
}

// Trigger synchronously invokes every handler registered for kind, in
// registration order, passing each the event. Dispatch is keyed by the
// kind argument alone; event.Kind is not consulted, so triggering under
// one key with an event naming another kind is legal. Triggering a
// kind with no handlers is a no-op. Trigger returns only after every
// handler has run; handler panics are recovered per handler and never
// propagate to the caller.
//
// The handler list is snapshotted under the read lock and the lock is
// released before the first handler runs. Handlers may therefore call
// Register, Trigger, or Clear on the same registry without
// deadlocking, and a slow handler does not block operations on other
// kinds. Handlers registered for kind after the snapshot is taken do
// not run in that Trigger call.
func (r *Registry) Trigger(kind string, event Event) {
	r.eventsTriggered.Add(1)

	r.mu.RLock()
	registered := r.handlers[kind]
	snapshot := make([]Handler, len(registered))
	copy(snapshot, registered)
	r.mu.RUnlock()

	for _, h := range snapshot {
		r.invoke(kind, event, h)
	}
}

// invoke runs one handler inside its own recovery boundary so a
// panicking handler cannot cancel the handlers after it or poison the
// registry for later Trigger calls.
func (r *Registry) invoke(kind string, event Event, h Handler) {
	defer func() {
		if rec := recover(); rec != nil {
			r.handlerPanics.Add(1)
			stack := debug.Stack()

			r.logger.Error().
				Str("kind", kind).
				Str("event_kind", event.Kind).
				Interface("panic", rec).
				Bytes("stack", stack).
				Msg("hook handler panicked")

			if r.panicHandler != nil {
				// The sink must not break dispatch either.
				func() {
					defer func() { _ = recover() }()
					r.panicHandler(kind, event, rec, stack)
				}()
			}
		}
	}()

	r.handlersInvoked.Add(1)
	h(event)
}

// HandlerCount returns the number of handlers currently registered for
// kind, zero if none.
func (r *Registry) HandlerCount(kind string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.handlers[kind])
}

// HasHandlers reports whether at least one handler is registered for
// kind.
func (r *Registry) HasHandlers(kind string) bool {
	return r.HandlerCount(kind) > 0
}

// Clear removes all handlers for kind. It is a no-op if none are
// registered and never affects other kinds.
func (r *Registry) Clear(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.handlers, kind)
}

// ClearAll removes every registered kind and its handlers, returning
// the registry to its initial empty state. The registry remains usable
// afterward.
func (r *Registry) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers = make(map[string][]Handler)
}

// Kinds returns the kinds that currently have at least one registered
// handler, sorted lexicographically.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	kinds := make([]string, 0, len(r.handlers))
	for kind := range r.handlers {
		kinds = append(kinds, kind)
	}
	r.mu.RUnlock()

	sort.Strings(kinds)
	return kinds
}

// Stats returns a snapshot of the registry's dispatch counters. The
// counters are monotonic for the life of the registry; Clear and
// ClearAll do not reset them.
func (r *Registry) Stats() Stats {
	return Stats{
		EventsTriggered: r.eventsTriggered.Load(),
		HandlersInvoked: r.handlersInvoked.Load(),
		HandlerPanics:   r.handlerPanics.Load(),
	}
}
