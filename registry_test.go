package hookstorm

import (
	"bytes"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	reg := New()
	if reg == nil {
		t.Fatal("New() returned nil")
	}
	if got := reg.HandlerCount(KindTurnComplete); got != 0 {
		t.Errorf("expected 0 handlers on a fresh registry, got %d", got)
	}
}

func TestRegistry_RegisterAndTrigger(t *testing.T) {
	reg := New()

	var counter atomic.Int32
	reg.Register(KindTurnComplete, func(e Event) {
		counter.Add(1)
	})

	reg.Trigger(KindTurnComplete, NewEvent(KindTurnComplete))
	reg.Trigger(KindTurnComplete, NewEvent(KindTurnComplete))

	if counter.Load() != 2 {
		t.Errorf("expected counter 2 after two triggers, got %d", counter.Load())
	}
}

func TestRegistry_Trigger_Order(t *testing.T) {
	reg := New()

	var order []int
	for i := 0; i < 5; i++ {
		reg.Register("ordered", func(e Event) {
			order = append(order, i)
		})
	}

	reg.Trigger("ordered", NewEvent("ordered"))

	if len(order) != 5 {
		t.Fatalf("expected 5 invocations, got %d", len(order))
	}
	for i, got := range order {
		if got != i {
			t.Errorf("position %d: expected handler %d, got %d", i, i, got)
		}
	}
}

func TestRegistry_Trigger_NoHandlers(t *testing.T) {
	reg := New()

	// Must be a no-op, not a fault.
	reg.Trigger("nobody_home", NewEvent("nobody_home"))

	if reg.HasHandlers("nobody_home") {
		t.Error("expected no handlers after triggering an unregistered kind")
	}
}

func TestRegistry_Trigger_KeyedByArgument(t *testing.T) {
	reg := New()

	var fired atomic.Bool
	reg.Register("x", func(e Event) {
		fired.Store(true)
	})

	// Dispatch is keyed by the trigger argument, not event.Kind.
	reg.Trigger("y", NewEvent("x"))
	if fired.Load() {
		t.Error("expected handler for 'x' not to fire on Trigger(\"y\")")
	}

	reg.Trigger("x", NewEvent("y"))
	if !fired.Load() {
		t.Error("expected handler for 'x' to fire on Trigger(\"x\")")
	}
}

func TestRegistry_Trigger_DeliversEvent(t *testing.T) {
	reg := New()

	var got Event
	reg.Register(KindUserInput, func(e Event) {
		got = e
	})

	sent := NewEvent(KindUserInput).WithData(map[string]any{"text": "hello"})
	reg.Trigger(KindUserInput, sent)

	if got.Kind != KindUserInput {
		t.Errorf("expected kind %q, got %q", KindUserInput, got.Kind)
	}
	data, ok := got.Data.(map[string]any)
	if !ok || data["text"] != "hello" {
		t.Errorf("expected delivered data to carry text 'hello', got %v", got.Data)
	}
}

func TestRegistry_HandlerCount(t *testing.T) {
	reg := New()

	if got := reg.HandlerCount("a"); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}

	reg.Register("a", func(Event) {})
	reg.Register("a", func(Event) {})
	reg.Register("b", func(Event) {})

	if got := reg.HandlerCount("a"); got != 2 {
		t.Errorf("expected 2 handlers for 'a', got %d", got)
	}
	if got := reg.HandlerCount("b"); got != 1 {
		t.Errorf("expected 1 handler for 'b', got %d", got)
	}
}

func TestRegistry_HasHandlers(t *testing.T) {
	reg := New()

	if reg.HasHandlers("a") {
		t.Error("expected HasHandlers false on empty registry")
	}

	reg.Register("a", func(Event) {})
	if !reg.HasHandlers("a") {
		t.Error("expected HasHandlers true after Register")
	}
}

func TestRegistry_Clear(t *testing.T) {
	reg := New()

	reg.Register("a", func(Event) {})
	reg.Register("a", func(Event) {})
	reg.Register("b", func(Event) {})

	reg.Clear("a")

	if got := reg.HandlerCount("a"); got != 0 {
		t.Errorf("expected 0 handlers for 'a' after Clear, got %d", got)
	}
	if got := reg.HandlerCount("b"); got != 1 {
		t.Errorf("expected 'b' untouched by Clear(\"a\"), got %d handlers", got)
	}

	// Clearing an unregistered kind is a no-op.
	reg.Clear("never_registered")
}

func TestRegistry_ClearAll(t *testing.T) {
	reg := New()

	reg.Register("a", func(Event) {})
	reg.Register("b", func(Event) {})
	reg.Register("c", func(Event) {})

	reg.ClearAll()

	for _, kind := range []string{"a", "b", "c"} {
		if got := reg.HandlerCount(kind); got != 0 {
			t.Errorf("expected 0 handlers for %q after ClearAll, got %d", kind, got)
		}
	}

	// The registry stays usable.
	var fired atomic.Bool
	reg.Register("a", func(Event) { fired.Store(true) })
	reg.Trigger("a", NewEvent("a"))
	if !fired.Load() {
		t.Error("expected registry to remain usable after ClearAll")
	}
}

func TestRegistry_Kinds(t *testing.T) {
	reg := New()

	if got := reg.Kinds(); len(got) != 0 {
		t.Errorf("expected no kinds on empty registry, got %v", got)
	}

	reg.Register("charlie", func(Event) {})
	reg.Register("alpha", func(Event) {})
	reg.Register("bravo", func(Event) {})
	reg.Register("alpha", func(Event) {})

	got := reg.Kinds()
	want := []string{"alpha", "bravo", "charlie"}
	if len(got) != len(want) {
		t.Fatalf("expected %d kinds, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestRegistry_PanicIsolation(t *testing.T) {
	reg := New()

	var before, after atomic.Int32
	reg.Register("risky", func(Event) { before.Add(1) })
	reg.Register("risky", func(Event) { panic("handler exploded") })
	reg.Register("risky", func(Event) { after.Add(1) })

	reg.Trigger("risky", NewEvent("risky"))

	if before.Load() != 1 {
		t.Errorf("expected handler before the panic to run once, got %d", before.Load())
	}
	if after.Load() != 1 {
		t.Errorf("expected handler after the panic to still run, got %d", after.Load())
	}

	// A later, independent trigger is unaffected.
	reg.Trigger("risky", NewEvent("risky"))
	if after.Load() != 2 {
		t.Errorf("expected subsequent trigger to run all handlers, got %d", after.Load())
	}

	stats := reg.Stats()
	if stats.HandlerPanics != 2 {
		t.Errorf("expected 2 recorded panics, got %d", stats.HandlerPanics)
	}
}

func TestRegistry_PanicHandler(t *testing.T) {
	var (
		gotKind  string
		gotEvent Event
		gotValue any
		gotStack []byte
	)

	reg := New(WithPanicHandler(func(kind string, event Event, recovered any, stack []byte) {
		gotKind = kind
		gotEvent = event
		gotValue = recovered
		gotStack = stack
	}))

	reg.Register("boom", func(Event) { panic("kaboom") })
	reg.Trigger("boom", NewEvent("boom").WithData("payload"))

	if gotKind != "boom" {
		t.Errorf("expected sink to receive kind 'boom', got %q", gotKind)
	}
	if gotEvent.Data != "payload" {
		t.Errorf("expected sink to receive the event payload, got %v", gotEvent.Data)
	}
	if gotValue != "kaboom" {
		t.Errorf("expected recovered value 'kaboom', got %v", gotValue)
	}
	if len(gotStack) == 0 {
		t.Error("expected a non-empty stack trace")
	}
}

func TestRegistry_PanicHandler_SinkPanics(t *testing.T) {
	reg := New(WithPanicHandler(func(string, Event, any, []byte) {
		panic("sink is broken too")
	}))

	var after atomic.Int32
	reg.Register("boom", func(Event) { panic("first") })
	reg.Register("boom", func(Event) { after.Add(1) })

	// A panicking sink must not break dispatch.
	reg.Trigger("boom", NewEvent("boom"))

	if after.Load() != 1 {
		t.Errorf("expected handler after the panic to run despite broken sink, got %d", after.Load())
	}
}

func TestRegistry_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	reg := New(WithLogger(logger))
	reg.Register("noisy", func(Event) { panic("logged failure") })
	reg.Trigger("noisy", NewEvent("noisy"))

	out := buf.String()
	if !strings.Contains(out, "hook handler panicked") {
		t.Errorf("expected panic log line, got %q", out)
	}
	if !strings.Contains(out, `"kind":"noisy"`) {
		t.Errorf("expected kind field in log output, got %q", out)
	}
	if !strings.Contains(out, "logged failure") {
		t.Errorf("expected panic value in log output, got %q", out)
	}
}

func TestRegistry_ReentrantHandlers(t *testing.T) {
	reg := New()

	var chained atomic.Int32
	reg.Register("second", func(Event) { chained.Add(1) })

	// Handlers may register and trigger on the registry they run in.
	reg.Register("first", func(e Event) {
		reg.Register("late", func(Event) {})
		reg.Trigger("second", NewEvent("second"))
	})

	reg.Trigger("first", NewEvent("first"))

	if chained.Load() != 1 {
		t.Errorf("expected nested trigger to fire, got %d", chained.Load())
	}
	if !reg.HasHandlers("late") {
		t.Error("expected registration from inside a handler to take effect")
	}
}

func TestRegistry_RegistrationDuringTriggerNotDelivered(t *testing.T) {
	reg := New()

	var added atomic.Int32
	reg.Register("k", func(Event) {
		reg.Register("k", func(Event) { added.Add(1) })
	})

	reg.Trigger("k", NewEvent("k"))
	if added.Load() != 0 {
		t.Errorf("expected handler added mid-trigger to wait for the next trigger, got %d", added.Load())
	}

	reg.Trigger("k", NewEvent("k"))
	if added.Load() != 1 {
		t.Errorf("expected handler added mid-trigger to fire on the next trigger, got %d", added.Load())
	}
}

func TestRegistry_ConcurrentRegister(t *testing.T) {
	reg := New()

	kinds := []string{"alpha", "bravo", "charlie", "delta"}
	counters := make([]*atomic.Int32, len(kinds))
	for i := range counters {
		counters[i] = &atomic.Int32{}
	}

	// 8 goroutines, 100 registrations each, spread across 4 kinds.
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			kindIdx := g % len(kinds)
			for i := 0; i < 100; i++ {
				reg.Register(kinds[kindIdx], func(Event) {
					counters[kindIdx].Add(1)
				})
			}
		}(g)
	}
	wg.Wait()

	for _, kind := range kinds {
		if got := reg.HandlerCount(kind); got != 200 {
			t.Errorf("expected 200 handlers for %q, got %d", kind, got)
		}
	}

	// Each trigger delivers exactly its own kind's handlers.
	for i, kind := range kinds {
		reg.Trigger(kind, NewEvent(kind))
		if got := counters[i].Load(); got != 200 {
			t.Errorf("expected 200 invocations for %q, got %d", kind, got)
		}
	}
}

func TestRegistry_ConcurrentMixedOperations(t *testing.T) {
	reg := New()

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				reg.Register("mixed", func(Event) {})
				reg.Trigger("mixed", NewEvent("mixed"))
				reg.HandlerCount("mixed")
				reg.HasHandlers("mixed")
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 25; i++ {
			reg.Clear("mixed")
		}
	}()
	wg.Wait()
}

func TestRegistry_Stats(t *testing.T) {
	reg := New()

	reg.Register("s", func(Event) {})
	reg.Register("s", func(Event) { panic("oops") })

	reg.Trigger("s", NewEvent("s"))
	reg.Trigger("unregistered", NewEvent("unregistered"))

	stats := reg.Stats()
	if stats.EventsTriggered != 2 {
		t.Errorf("expected 2 events triggered, got %d", stats.EventsTriggered)
	}
	if stats.HandlersInvoked != 2 {
		t.Errorf("expected 2 handlers invoked, got %d", stats.HandlersInvoked)
	}
	if stats.HandlerPanics != 1 {
		t.Errorf("expected 1 handler panic, got %d", stats.HandlerPanics)
	}

	// Clearing handlers does not reset counters.
	reg.ClearAll()
	if got := reg.Stats().EventsTriggered; got != 2 {
		t.Errorf("expected counters to survive ClearAll, got %d", got)
	}
}
