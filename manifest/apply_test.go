package manifest_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/hookstorm"
	"github.com/dshills/hookstorm/manifest"
)

func TestApply_RegistersHooks(t *testing.T) {
	dir := t.TempDir()

	// A lua hook that records what it saw, and an exec hook that leaves
	// a marker file.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "record.lua"), []byte(`
function on_event(event)
    marker = event.kind
end
`), 0o644))
	markerPath := filepath.Join(dir, "fired.txt")

	m := &manifest.Manifest{
		Hooks: []manifest.Hook{
			{Event: "turn_complete", Type: "lua", Path: "record.lua"},
			{Event: "turn_complete", Type: "exec", Command: []string{"sh", "-c", "echo ran >> " + markerPath}},
			{Event: "error", Type: "exec", Command: []string{"true"}},
		},
	}
	require.NoError(t, m.Validate())

	reg := hookstorm.New()
	applied, err := manifest.Apply(reg, m, manifest.Deps{
		BaseDir:     dir,
		LuaTimeout:  time.Second,
		ExecTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	defer applied.Close()

	assert.Equal(t, 2, reg.HandlerCount("turn_complete"))
	assert.Equal(t, 1, reg.HandlerCount("error"))

	reg.Trigger("turn_complete", hookstorm.NewEvent("turn_complete"))

	raw, err := os.ReadFile(markerPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "ran")
}

func TestApply_MissingScriptFails(t *testing.T) {
	m := &manifest.Manifest{
		Hooks: []manifest.Hook{
			{Event: "error", Type: "lua", Path: "nowhere.lua"},
		},
	}

	reg := hookstorm.New()
	_, err := manifest.Apply(reg, m, manifest.Deps{BaseDir: t.TempDir()})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "hook 0")
}

func TestApply_EmptyCommandFails(t *testing.T) {
	m := &manifest.Manifest{
		Hooks: []manifest.Hook{
			{Event: "error", Type: "exec"},
		},
	}

	reg := hookstorm.New()
	_, err := manifest.Apply(reg, m, manifest.Deps{})
	assert.Error(t, err)
}

func TestApply_UnknownTypeFails(t *testing.T) {
	m := &manifest.Manifest{
		Hooks: []manifest.Hook{
			{Event: "error", Type: "carrier-pigeon"},
		},
	}

	reg := hookstorm.New()
	_, err := manifest.Apply(reg, m, manifest.Deps{})
	assert.ErrorIs(t, err, manifest.ErrInvalidHook)
}

func TestApply_AbsoluteScriptPathIgnoresBaseDir(t *testing.T) {
	scriptDir := t.TempDir()
	scriptPath := filepath.Join(scriptDir, "abs.lua")
	require.NoError(t, os.WriteFile(scriptPath, []byte(`
function on_event(event) end
`), 0o644))

	m := &manifest.Manifest{
		Hooks: []manifest.Hook{
			{Event: "user_input", Type: "lua", Path: scriptPath},
		},
	}

	reg := hookstorm.New()
	applied, err := manifest.Apply(reg, m, manifest.Deps{BaseDir: t.TempDir()})
	require.NoError(t, err)
	defer applied.Close()

	assert.True(t, reg.HasHandlers("user_input"))
}

func TestApplied_Close(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "noop.lua"), []byte(`
function on_event(event) end
`), 0o644))

	m := &manifest.Manifest{
		Hooks: []manifest.Hook{
			{Event: "conversation_end", Type: "lua", Path: "noop.lua"},
		},
	}

	reg := hookstorm.New()
	applied, err := manifest.Apply(reg, m, manifest.Deps{BaseDir: dir})
	require.NoError(t, err)

	assert.NoError(t, applied.Close())
	// Closing twice is harmless.
	assert.NoError(t, applied.Close())

	// Triggering after close must not panic; the handler logs and
	// moves on.
	reg.Trigger("conversation_end", hookstorm.NewEvent("conversation_end"))
}
