package manifest

import "errors"

// Sentinel errors for manifest loading and validation.
var (
	// ErrInvalidHook is returned when a hook declaration fails
	// validation.
	ErrInvalidHook = errors.New("invalid hook")

	// ErrUnknownFormat is returned when a manifest file's extension is
	// neither TOML nor YAML.
	ErrUnknownFormat = errors.New("unknown manifest format")
)
