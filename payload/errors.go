package payload

import "errors"

// Sentinel errors for payload documents.
var (
	// ErrInvalidJSON is returned when input bytes are not valid JSON.
	ErrInvalidJSON = errors.New("payload is not valid JSON")
)
