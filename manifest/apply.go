package manifest

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/hookstorm"
	"github.com/dshills/hookstorm/exechook"
	"github.com/dshills/hookstorm/luahook"
)

// Deps carries host-supplied settings for Apply.
type Deps struct {
	// Logger is handed to every constructed handler for failure
	// reporting.
	Logger zerolog.Logger

	// BaseDir resolves relative Lua script paths, typically the
	// manifest directory. Empty means the working directory.
	BaseDir string

	// LuaTimeout bounds lua hooks that declare no timeout of their own.
	LuaTimeout time.Duration

	// ExecTimeout bounds exec hooks that declare no timeout of their
	// own.
	ExecTimeout time.Duration
}

// Applied owns the resources Apply created, currently the loaded Lua
// scripts. Close releases them; a handler whose script was closed logs
// the failure and otherwise does nothing, like any other hook failure.
type Applied struct {
	scripts []*luahook.Script
}

// Close releases every held resource, returning the first error.
func (a *Applied) Close() error {
	var firstErr error
	for _, s := range a.scripts {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Apply constructs a handler for every hook in m and registers it on
// reg under the hook's event kind, preserving manifest order. On
// error, resources built so far are released and the registry may hold
// a partial registration set; callers should discard it.
func Apply(reg *hookstorm.Registry, m *Manifest, deps Deps) (*Applied, error) {
	applied := &Applied{}

	for i := range m.Hooks {
		h := &m.Hooks[i]

		switch h.Type {
		case "lua":
			script, err := loadScript(h, deps)
			if err != nil {
				applied.Close()
				return nil, fmt.Errorf("hook %d (%s): %w", i, h.DisplayName(), err)
			}
			applied.scripts = append(applied.scripts, script)
			reg.Register(h.Event, script.Handler())

		case "exec":
			cmd, err := buildCommand(h, deps)
			if err != nil {
				applied.Close()
				return nil, fmt.Errorf("hook %d (%s): %w", i, h.DisplayName(), err)
			}
			reg.Register(h.Event, cmd.Handler())

		default:
			// Validate rejects unknown types; this guards manifests
			// assembled in code.
			applied.Close()
			return nil, fmt.Errorf("hook %d (%s): %w: type %q", i, h.DisplayName(), ErrInvalidHook, h.Type)
		}
	}

	log.Debug().
		Int("hooks", len(m.Hooks)).
		Msg("manifest applied")

	return applied, nil
}

func loadScript(h *Hook, deps Deps) (*luahook.Script, error) {
	path := h.Path
	if !filepath.IsAbs(path) && deps.BaseDir != "" {
		path = filepath.Join(deps.BaseDir, path)
	}

	return luahook.Load(path,
		luahook.WithTimeout(h.TimeoutOr(deps.LuaTimeout)),
		luahook.WithLogger(deps.Logger),
	)
}

func buildCommand(h *Hook, deps Deps) (*exechook.Command, error) {
	opts := []exechook.Option{
		exechook.WithName(h.DisplayName()),
		exechook.WithTimeout(h.TimeoutOr(deps.ExecTimeout)),
		exechook.WithLogger(deps.Logger),
	}
	if h.Dir != "" {
		opts = append(opts, exechook.WithDir(h.Dir))
	}

	// Sorted for a reproducible child environment.
	keys := make([]string, 0, len(h.Env))
	for k := range h.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		opts = append(opts, exechook.WithEnv(k+"="+h.Env[k]))
	}

	return exechook.New(h.Command, opts...)
}
