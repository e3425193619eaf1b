// Package exechook runs hook handlers as external commands.
//
// Each delivered event spawns one process. The event arrives two ways:
// as a JSON envelope on stdin and as environment variables for shell
// one-liners that do not want to parse JSON.
//
// The stdin envelope:
//
//	{
//	  "delivery_id": "8f14e45f-...",
//	  "kind": "tool_after",
//	  "timestamp": "2026-08-25T14:03:07Z",
//	  "data": {"tool": "search", "ms": 42}
//	}
//
// The environment carries HOOKSTORM_EVENT_KIND and
// HOOKSTORM_DELIVERY_ID.
//
// # Usage
//
//	notify, err := exechook.New(
//	    []string{"notify-send", "turn done"},
//	    exechook.WithTimeout(3*time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	reg.Register(hookstorm.KindTurnComplete, notify.Handler())
//
// # Failure Behavior
//
// Handlers produced by Handler log delivery failures (non-zero exit,
// spawn error, timeout) and swallow them; a broken hook command never
// breaks the triggering host. Processes that outlive the timeout are
// killed.
package exechook
