package manifest

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Hook declares one handler attachment: the event kind it fires on and
// the script or command that runs.
type Hook struct {
	// Event is the kind the hook is registered under.
	Event string `toml:"event" yaml:"event" validate:"required"`

	// Name labels the hook in listings and logs. Optional; defaults to
	// the script or program name.
	Name string `toml:"name" yaml:"name"`

	// Type selects the handler backend: "lua" or "exec".
	Type string `toml:"type" yaml:"type" validate:"required,oneof=lua exec"`

	// Path locates the Lua script. Required for lua hooks; relative
	// paths resolve against the manifest's directory.
	Path string `toml:"path" yaml:"path" validate:"required_if=Type lua"`

	// Command is the argument vector for exec hooks. Required for exec
	// hooks.
	Command []string `toml:"command" yaml:"command" validate:"required_if=Type exec"`

	// Dir is the working directory for exec hooks. Optional.
	Dir string `toml:"dir" yaml:"dir"`

	// Env adds environment entries for exec hooks. Optional.
	Env map[string]string `toml:"env" yaml:"env"`

	// Timeout bounds one invocation, as a Go duration string ("500ms",
	// "3s"). Optional; the applier's default is used when empty.
	Timeout string `toml:"timeout" yaml:"timeout"`
}

// Manifest is a set of hook declarations, typically one file's worth.
type Manifest struct {
	Hooks []Hook `toml:"hooks" yaml:"hooks"`
}

// DisplayName returns the hook's name, falling back to its script path
// or program.
func (h *Hook) DisplayName() string {
	if h.Name != "" {
		return h.Name
	}
	if h.Type == "lua" {
		return h.Path
	}
	if len(h.Command) > 0 {
		return h.Command[0]
	}
	return "(unnamed)"
}

// TimeoutOr parses the hook's timeout, returning fallback when the
// field is empty.
func (h *Hook) TimeoutOr(fallback time.Duration) time.Duration {
	if h.Timeout == "" {
		return fallback
	}
	d, err := time.ParseDuration(h.Timeout)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Validate checks one hook declaration.
func (h *Hook) Validate() error {
	if err := validate.Struct(h); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, verr := range verrs {
				fields = append(fields, describeFieldError(verr))
			}
		} else {
			fields = append(fields, err.Error())
		}
		return fmt.Errorf("%w: %s", ErrInvalidHook, strings.Join(fields, "; "))
	}

	if h.Timeout != "" {
		if _, err := time.ParseDuration(h.Timeout); err != nil {
			return fmt.Errorf("%w: timeout %q is not a duration", ErrInvalidHook, h.Timeout)
		}
	}
	return nil
}

// Validate checks every hook, reporting the first failure with its
// position and display name.
func (m *Manifest) Validate() error {
	for i := range m.Hooks {
		if err := m.Hooks[i].Validate(); err != nil {
			return fmt.Errorf("hook %d (%s): %w", i, m.Hooks[i].DisplayName(), err)
		}
	}
	return nil
}

// ByEvent groups the manifest's hooks by the kind they fire on.
func (m *Manifest) ByEvent() map[string][]Hook {
	grouped := make(map[string][]Hook)
	for _, h := range m.Hooks {
		grouped[h.Event] = append(grouped[h.Event], h)
	}
	return grouped
}

func describeFieldError(verr validator.FieldError) string {
	field := strings.ToLower(verr.Field())
	switch verr.Tag() {
	case "required":
		return fmt.Sprintf("the %s field is required", field)
	case "oneof":
		return fmt.Sprintf("the %s field must be one of: %s", field, verr.Param())
	case "required_if":
		return fmt.Sprintf("the %s field is required for this hook type", field)
	default:
		return fmt.Sprintf("the %s field is invalid", field)
	}
}
