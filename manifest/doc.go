// Package manifest loads declarative hook wiring from TOML and YAML
// files, so deployments attach scripts and commands to event kinds
// without writing Go.
//
// A manifest file declares hooks:
//
//	# hooks/notify.toml
//	[[hooks]]
//	event   = "turn_complete"
//	name    = "announce"
//	type    = "exec"
//	command = ["notify-send", "turn done"]
//	timeout = "3s"
//
//	[[hooks]]
//	event = "tool_before"
//	type  = "lua"
//	path  = "audit.lua"
//
// or in YAML:
//
//	# hooks/audit.yaml
//	hooks:
//	  - event: error
//	    type: lua
//	    path: capture.lua
//
// # Loading and Applying
//
//	m, err := manifest.LoadDir("hooks")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	reg := hookstorm.New()
//	applied, err := manifest.Apply(reg, m, manifest.Deps{
//	    BaseDir:     "hooks",
//	    LuaTimeout:  5 * time.Second,
//	    ExecTimeout: 10 * time.Second,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer applied.Close()
//
// Hooks register in manifest order (file name order across a
// directory), which is the order they fire in for a given kind.
// Declarations are validated on load: every hook needs an event and a
// type, lua hooks need a script path, exec hooks need a command.
package manifest
