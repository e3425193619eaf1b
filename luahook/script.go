package luahook

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/hookstorm"
)

// Entrypoint is the global function a hook script must define. It is
// called once per delivered event with a single table argument holding
// "kind" and "data" fields.
const Entrypoint = "on_event"

// DefaultTimeout bounds a single script invocation. Lua code that does
// not return in time is interrupted at its next instruction boundary.
const DefaultTimeout = 5 * time.Second

// Script is a hook handler backed by a sandboxed Lua chunk.
//
// gopher-lua's LState is not goroutine-safe, so every invocation runs
// under the script's mutex: one event at a time per script, in trigger
// order. Scripts keep their global state between invocations, which
// lets a hook accumulate context across events.
type Script struct {
	name  string
	state *lua.LState

	mu     sync.Mutex
	closed bool

	timeout time.Duration
	logger  zerolog.Logger
}

// Option configures a Script.
type Option func(*Script)

// WithTimeout bounds each invocation of the script's entrypoint.
func WithTimeout(d time.Duration) Option {
	return func(s *Script) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the logger used to report script failures from
// handlers returned by Handler.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Script) {
		s.logger = logger
	}
}

// Load reads and executes the Lua file at path in a fresh sandboxed
// state, then verifies it defined the on_event entrypoint. The chunk
// body runs once at load time; use it to set up script state.
func Load(path string, opts ...Option) (*Script, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	s := newScript(name, opts...)

	if err := s.state.DoFile(path); err != nil {
		s.state.Close()
		return nil, fmt.Errorf("loading script %s: %w", path, err)
	}
	if err := s.checkEntrypoint(); err != nil {
		s.state.Close()
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	return s, nil
}

// LoadString executes a Lua chunk given as source text. name is used
// in diagnostics only.
func LoadString(name, code string, opts ...Option) (*Script, error) {
	s := newScript(name, opts...)

	if err := s.state.DoString(code); err != nil {
		s.state.Close()
		return nil, fmt.Errorf("loading script %s: %w", name, err)
	}
	if err := s.checkEntrypoint(); err != nil {
		s.state.Close()
		return nil, fmt.Errorf("script %s: %w", name, err)
	}
	return s, nil
}

// LoadDir loads every *.lua file directly inside dir, sorted by file
// name. It returns the scripts loaded so far alongside the first
// error, so callers may choose to run with the healthy subset.
func LoadDir(dir string, opts ...Option) ([]*Script, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading script dir %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	scripts := make([]*Script, 0, len(names))
	for _, name := range names {
		s, err := Load(filepath.Join(dir, name), opts...)
		if err != nil {
			return scripts, err
		}
		scripts = append(scripts, s)
	}
	return scripts, nil
}

// checkEntrypoint verifies the loaded chunk defined the on_event
// global as a function.
func (s *Script) checkEntrypoint() error {
	if s.state.GetGlobal(Entrypoint).Type() != lua.LTFunction {
		return ErrNoEntrypoint
	}
	return nil
}

func newScript(name string, opts ...Option) *Script {
	s := &Script{
		name:    name,
		timeout: DefaultTimeout,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	openSafeLibraries(L)
	s.state = L
	return s
}

// openSafeLibraries opens only the Lua standard libraries that cannot
// touch the file system or the process.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Not opened: io, os, debug, package.

	// The base library still exposes loaders that reach the file system
	// or compile arbitrary source. Remove them.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// Name returns the script's diagnostic name.
func (s *Script) Name() string {
	return s.name
}

// Handler adapts the script into a registry handler. Invocation
// failures are logged and swallowed, matching the registry's contract
// that extension failures never reach the host.
func (s *Script) Handler() hookstorm.Handler {
	return func(event hookstorm.Event) {
		if err := s.Invoke(event); err != nil {
			s.logger.Error().
				Err(err).
				Str("script", s.name).
				Str("kind", event.Kind).
				Msg("lua hook failed")
		}
	}
}

// Invoke calls the script's on_event function with the event. It
// blocks until the script returns, errs, or the timeout interrupts it.
func (s *Script) Invoke(event hookstorm.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrScriptClosed
	}

	fn := s.state.GetGlobal(Entrypoint)
	if fn.Type() != lua.LTFunction {
		return ErrNoEntrypoint
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.state.SetContext(ctx)
	defer s.state.RemoveContext()

	arg := eventToLua(s.state, event)
	return s.callWithRecovery(fn, arg)
}

// callWithRecovery performs the protected call. gopher-lua can panic
// on runtime faults even in protected mode, so the call also runs
// inside a recover boundary.
func (s *Script) callWithRecovery(fn lua.LValue, arg lua.LValue) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	return s.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, arg)
}

// Global reads a global variable from the script's state, converted to
// a JSON-like Go value. Useful for inspecting state a hook script
// accumulated across events.
func (s *Script) Global(name string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrScriptClosed
	}
	return toGo(s.state.GetGlobal(name)), nil
}

// Close releases the underlying Lua state. Further invocations return
// ErrScriptClosed; handlers already registered log the error and
// otherwise do nothing.
func (s *Script) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.state.Close()
	s.closed = true
	return nil
}
