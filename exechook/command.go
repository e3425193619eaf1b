package exechook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tidwall/sjson"

	"github.com/dshills/hookstorm"
)

// DefaultTimeout bounds a single delivery. A process still running
// when it expires is killed.
const DefaultTimeout = 10 * time.Second

// Environment variables set for every spawned hook process.
const (
	// EnvEventKind carries the kind the trigger was keyed by.
	EnvEventKind = "HOOKSTORM_EVENT_KIND"

	// EnvDeliveryID carries the unique id of this delivery, matching
	// the delivery_id field of the stdin envelope.
	EnvDeliveryID = "HOOKSTORM_DELIVERY_ID"
)

// maxErrOutput caps how much process output is attached to a delivery
// error.
const maxErrOutput = 512

// Command is a hook handler backed by an external program. Each
// delivered event spawns one process; the event is passed as a JSON
// envelope on stdin and in environment variables. Deliveries run
// sequentially per trigger (handlers are synchronous) but a Command
// may be registered on several kinds and is safe for concurrent use.
type Command struct {
	name    string
	argv    []string
	dir     string
	env     []string
	timeout time.Duration
	logger  zerolog.Logger
}

// Option configures a Command.
type Option func(*Command)

// WithName sets the diagnostic name used in logs and errors. It
// defaults to the program name.
func WithName(name string) Option {
	return func(c *Command) {
		if name != "" {
			c.name = name
		}
	}
}

// WithDir sets the working directory for spawned processes.
func WithDir(dir string) Option {
	return func(c *Command) {
		c.dir = dir
	}
}

// WithEnv appends KEY=VALUE entries to the spawned process
// environment, on top of the parent environment.
func WithEnv(entries ...string) Option {
	return func(c *Command) {
		c.env = append(c.env, entries...)
	}
}

// WithTimeout bounds each delivery.
func WithTimeout(d time.Duration) Option {
	return func(c *Command) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used to report delivery failures from
// handlers returned by Handler.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Command) {
		c.logger = logger
	}
}

// New creates a command hook from an argument vector. argv[0] is the
// program; the rest are its arguments.
func New(argv []string, opts ...Option) (*Command, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, ErrNoCommand
	}

	c := &Command{
		name:    argv[0],
		argv:    argv,
		timeout: DefaultTimeout,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Name returns the command's diagnostic name.
func (c *Command) Name() string {
	return c.name
}

// Handler adapts the command into a registry handler. Delivery
// failures are logged and swallowed, matching the registry's contract
// that extension failures never reach the host.
func (c *Command) Handler() hookstorm.Handler {
	return func(event hookstorm.Event) {
		if err := c.Deliver(event); err != nil {
			c.logger.Error().
				Err(err).
				Str("command", c.name).
				Str("kind", event.Kind).
				Msg("exec hook failed")
		}
	}
}

// Deliver spawns the command once for event, feeding the JSON envelope
// on stdin. It blocks until the process exits or the timeout kills it.
// A non-zero exit is an error carrying up to 512 bytes of combined
// output.
func (c *Command) Deliver(event hookstorm.Event) error {
	deliveryID := uuid.NewString()

	env, err := envelope(event, deliveryID, time.Now())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.argv[0], c.argv[1:]...)
	cmd.Dir = c.dir
	cmd.Stdin = bytes.NewReader(env)
	cmd.Env = append(os.Environ(),
		EnvEventKind+"="+event.Kind,
		EnvDeliveryID+"="+deliveryID,
	)
	cmd.Env = append(cmd.Env, c.env...)

	start := time.Now()
	out, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%s: %w after %s", c.name, ErrTimeout, c.timeout)
		}
		return fmt.Errorf("%s: %w: %s", c.name, err, trimOutput(out))
	}

	c.logger.Debug().
		Str("command", c.name).
		Str("kind", event.Kind).
		Str("delivery_id", deliveryID).
		Dur("duration", time.Since(start)).
		Msg("exec hook delivered")
	return nil
}

// envelope encodes the event as the JSON document written to the
// process's stdin.
func envelope(event hookstorm.Event, deliveryID string, now time.Time) ([]byte, error) {
	raw := []byte(`{}`)

	raw, err := sjson.SetBytes(raw, "delivery_id", deliveryID)
	if err != nil {
		return nil, fmt.Errorf("encoding envelope: %w", err)
	}
	raw, err = sjson.SetBytes(raw, "kind", event.Kind)
	if err != nil {
		return nil, fmt.Errorf("encoding envelope: %w", err)
	}
	raw, err = sjson.SetBytes(raw, "timestamp", now.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("encoding envelope: %w", err)
	}
	if event.HasData() {
		raw, err = sjson.SetBytes(raw, "data", event.Data)
		if err != nil {
			return nil, fmt.Errorf("encoding envelope: %w", err)
		}
	}
	return raw, nil
}

// trimOutput keeps errors readable when a process dumps a lot before
// failing.
func trimOutput(out []byte) string {
	s := string(bytes.TrimSpace(out))
	if len(s) > maxErrOutput {
		return s[:maxErrOutput] + "..."
	}
	return s
}
