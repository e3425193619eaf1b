// Package payload provides path-based access to JSON event payloads.
//
// Hook payloads are opaque to the registry and conventionally shaped as
// JSON. Doc wraps a JSON document so hosts and handlers can read and
// build payloads by path instead of declaring struct types for every
// hook point.
//
// # Reading
//
//	doc, err := payload.ParseString(`{"tool":{"name":"search","ms":42}}`)
//	if err != nil {
//	    return err
//	}
//	name := doc.GetString("tool.name") // "search"
//	ms := doc.GetInt("tool.ms")        // 42
//
// # Building
//
//	doc := payload.Empty()
//	doc, _ = doc.Set("turn", 3)
//	doc, _ = doc.Set("usage.tokens", 1280)
//
//	evt := hookstorm.NewEvent(hookstorm.KindTurnComplete).
//	    WithData(doc.Value())
//
// Doc is an immutable value: Set, SetRaw, and Delete return new
// documents and never modify the receiver, so a Doc may be shared
// across handlers without synchronization.
package payload
