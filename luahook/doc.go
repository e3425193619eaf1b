// Package luahook runs hook handlers written in Lua.
//
// A hook script is an ordinary Lua file that defines a global on_event
// function. The chunk body runs once at load time; on_event runs once
// per delivered event, receiving a table with "kind" and "data":
//
//	-- count-turns.lua
//	turns = 0
//
//	function on_event(event)
//	    if event.kind == "turn_complete" then
//	        turns = turns + 1
//	        print("turns so far: " .. turns)
//	    end
//	end
//
// # Loading and Registering
//
//	script, err := luahook.Load("hooks/count-turns.lua",
//	    luahook.WithTimeout(time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer script.Close()
//
//	reg.Register(hookstorm.KindTurnComplete, script.Handler())
//
// # Sandbox
//
// Scripts run with only the base, table, string, and math libraries
// opened. The io, os, debug, and package libraries are never loaded,
// and the base loaders (dofile, loadfile, load, loadstring) are
// removed, so a hook script cannot touch the file system, spawn
// processes, or compile source it was not loaded with. Hooks that need
// those effects belong in exechook.
//
// # Failure Behavior
//
// Handlers produced by Handler log script errors and swallow them; a
// broken or slow script never breaks the triggering host. Each
// invocation carries a deadline; a script that overruns it is
// interrupted at its next instruction boundary.
package luahook
