package exechook

import "errors"

// Errors for command hook construction and delivery.
var (
	// ErrNoCommand is returned when a command is created with an empty
	// argument vector.
	ErrNoCommand = errors.New("command requires at least one argument")

	// ErrTimeout is returned when a delivery exceeds the command's
	// timeout and the process is killed.
	ErrTimeout = errors.New("command timed out")
)
