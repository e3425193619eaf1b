package luahook

import "errors"

// Errors for script loading and invocation.
var (
	// ErrScriptClosed is returned when invoking a closed script.
	ErrScriptClosed = errors.New("lua script is closed")

	// ErrNoEntrypoint is returned when a script does not define the
	// on_event global function.
	ErrNoEntrypoint = errors.New("script does not define on_event")
)
