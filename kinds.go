package hookstorm

// Standard event kinds fired by conversational hosts at their
// lifecycle points. These are conventions, not an enumeration: the
// registry accepts any string, and hosts may define custom hook points
// alongside these.
const (
	// KindTurnComplete fires after the host finishes processing a turn.
	KindTurnComplete = "turn_complete"

	// KindError fires when the host encounters an error.
	KindError = "error"

	// KindUserInput fires when user input is received.
	KindUserInput = "user_input"

	// KindResponseStart fires when the host begins producing a response.
	KindResponseStart = "response_start"

	// KindResponseComplete fires when a response has been fully produced.
	KindResponseComplete = "response_complete"

	// KindToolBefore fires immediately before a tool invocation.
	KindToolBefore = "tool_before"

	// KindToolAfter fires immediately after a tool invocation returns.
	KindToolAfter = "tool_after"

	// KindConversationStart fires when a conversation begins.
	KindConversationStart = "conversation_start"

	// KindConversationEnd fires when a conversation ends.
	KindConversationEnd = "conversation_end"
)
