package hookstorm

import "github.com/rs/zerolog"

// Option configures a Registry.
type Option func(*config)

// config contains Registry configuration. Options only affect how
// recovered handler panics are reported, never dispatch semantics.
type config struct {
	// logger receives a report for every recovered handler panic.
	logger zerolog.Logger

	// panicHandler, if set, is called with the details of every
	// recovered handler panic.
	panicHandler PanicHandler
}

// defaultConfig returns the configuration used when no options are
// given: no panic sink and a no-op logger, so the bare registry stays
// silent.
func defaultConfig() config {
	return config{
		logger: zerolog.Nop(),
	}
}

// WithLogger sets the logger used to report recovered handler panics.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithPanicHandler sets a sink invoked after each recovered handler
// panic, in addition to the logger. The sink runs on the triggering
// goroutine; a panic inside the sink itself is swallowed.
func WithPanicHandler(h PanicHandler) Option {
	return func(c *config) {
		if h != nil {
			c.panicHandler = h
		}
	}
}
