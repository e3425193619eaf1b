package hookstorm

import (
	"reflect"
	"testing"
)

func TestNewEvent(t *testing.T) {
	evt := NewEvent(KindTurnComplete)

	if evt.Kind != "turn_complete" {
		t.Errorf("expected kind 'turn_complete', got %q", evt.Kind)
	}
	if evt.Data != nil {
		t.Errorf("expected nil data, got %v", evt.Data)
	}
	if evt.HasData() {
		t.Error("expected HasData() to be false for a fresh event")
	}
}

func TestNewEvent_EmptyKind(t *testing.T) {
	evt := NewEvent("")
	if evt.Kind != "" {
		t.Errorf("expected empty kind, got %q", evt.Kind)
	}
}

func TestEvent_WithData(t *testing.T) {
	data := map[string]any{"turn": float64(3), "ok": true}

	base := NewEvent(KindToolAfter)
	evt := base.WithData(data)

	if !evt.HasData() {
		t.Error("expected HasData() to be true after WithData")
	}
	if !reflect.DeepEqual(evt.Data, data) {
		t.Errorf("expected data %v, got %v", data, evt.Data)
	}
	if evt.Kind != base.Kind {
		t.Errorf("expected kind to be preserved, got %q", evt.Kind)
	}

	// The receiver is a value; the original must be untouched.
	if base.HasData() {
		t.Error("expected original event to remain without data")
	}
}

func TestEvent_WithData_LastValueWins(t *testing.T) {
	evt := NewEvent("custom").WithData("first").WithData("second")

	got, ok := evt.Data.(string)
	if !ok || got != "second" {
		t.Errorf("expected data 'second', got %v", evt.Data)
	}
}
