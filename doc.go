// Package hookstorm provides an in-process, synchronous hook registry.
//
// Host applications expose "extension points" in their execution
// lifecycle by triggering named events; extensions attach behavior by
// registering handlers under those names. The core logic never depends
// on the extensions: triggering a kind nobody registered for is a
// no-op, and a failing handler is logged, not propagated.
//
// # Core Types
//
//   - Event: an immutable value carrying a kind string and an optional
//     opaque payload.
//   - Handler: func(Event), invoked synchronously on the triggering
//     goroutine.
//   - Registry: the concurrency-safe store mapping kind to an ordered
//     handler list.
//
// # Basic Usage
//
//	reg := hookstorm.New()
//
//	reg.Register(hookstorm.KindTurnComplete, func(e hookstorm.Event) {
//	    fmt.Println("turn finished:", e.Kind)
//	})
//
//	evt := hookstorm.NewEvent(hookstorm.KindTurnComplete).
//	    WithData(map[string]any{"turn": 1})
//	reg.Trigger(hookstorm.KindTurnComplete, evt)
//
// # Dispatch Semantics
//
// Handlers for a kind run in registration order, each exactly once per
// Trigger call. Dispatch is keyed by the kind passed to Trigger, never
// by the event's own Kind field. Handlers run synchronously; Trigger
// returns after the last handler for that call finishes. There is no
// cancellation or timeout: a handler that blocks, blocks the
// triggering goroutine. Keep handlers fast.
//
// # Concurrency
//
// All Registry methods are safe for concurrent use. Internally the
// kind-to-handler map is guarded by a single RWMutex; Trigger copies
// the handler list under the read lock and releases it before invoking
// anything, so handlers may re-enter the same registry (register more
// handlers, trigger further events, clear kinds) without deadlocking.
//
// # Failure Isolation
//
// Each handler invocation runs inside its own recover boundary. A
// panicking handler does not stop the handlers registered after it and
// does not corrupt the registry. Panics are reported through the
// logger configured with WithLogger and, if set, the WithPanicHandler
// sink; the caller of Trigger never sees them.
//
// # Standard Kinds
//
// The Kind* constants name the lifecycle points conversational hosts
// conventionally expose (turn_complete, user_input, tool_before, ...).
// They are plain strings with no special treatment; any string is a
// valid kind.
//
// # Subpackages
//
//   - payload: path-based helpers over JSON event payloads
//   - luahook: handlers backed by sandboxed Lua scripts
//   - exechook: handlers backed by external commands
//   - manifest: declarative hook wiring loaded from TOML/YAML files
package hookstorm
