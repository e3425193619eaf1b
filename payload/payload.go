package payload

import (
	"encoding/json"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Doc is an immutable JSON document with path-based access. It lets
// hosts build and inspect event payloads without defining struct types
// for every hook point. Mutating operations return a new Doc; the
// receiver is never modified. The zero Doc behaves as an empty
// document.
type Doc struct {
	raw []byte
}

// Empty returns a Doc holding an empty JSON object.
func Empty() Doc {
	return Doc{raw: []byte("{}")}
}

// Parse validates raw as JSON and wraps it in a Doc. The input is
// copied, so callers may reuse the slice.
func Parse(raw []byte) (Doc, error) {
	if !gjson.ValidBytes(raw) {
		return Doc{}, ErrInvalidJSON
	}
	buf := make([]byte, len(raw))
	copy(buf, raw)
	return Doc{raw: buf}, nil
}

// ParseString validates s as JSON and wraps it in a Doc.
func ParseString(s string) (Doc, error) {
	return Parse([]byte(s))
}

// FromValue marshals v to JSON and wraps it in a Doc. v must be
// JSON-marshalable.
func FromValue(v any) (Doc, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return Doc{}, err
	}
	return Doc{raw: raw}, nil
}

// Raw returns the underlying JSON bytes. Callers must not modify the
// returned slice.
func (d Doc) Raw() []byte {
	if len(d.raw) == 0 {
		return []byte("{}")
	}
	return d.raw
}

// String returns the document as a JSON string.
func (d Doc) String() string {
	return string(d.Raw())
}

// Get returns the value at path. Paths use dot notation with optional
// array indexes and wildcards ("tool.name", "steps.0.status").
func (d Doc) Get(path string) gjson.Result {
	return gjson.GetBytes(d.Raw(), path)
}

// GetString returns the string value at path, empty if absent.
func (d Doc) GetString(path string) string {
	return d.Get(path).String()
}

// GetInt returns the integer value at path, zero if absent.
func (d Doc) GetInt(path string) int64 {
	return d.Get(path).Int()
}

// GetFloat returns the float value at path, zero if absent.
func (d Doc) GetFloat(path string) float64 {
	return d.Get(path).Float()
}

// GetBool returns the boolean value at path, false if absent.
func (d Doc) GetBool(path string) bool {
	return d.Get(path).Bool()
}

// Exists reports whether a value is present at path.
func (d Doc) Exists(path string) bool {
	return d.Get(path).Exists()
}

// Set returns a new Doc with value stored at path, creating
// intermediate objects as needed.
func (d Doc) Set(path string, value any) (Doc, error) {
	raw, err := sjson.SetBytes(d.Raw(), path, value)
	if err != nil {
		return Doc{}, err
	}
	return Doc{raw: raw}, nil
}

// SetRaw returns a new Doc with the pre-encoded JSON fragment stored
// at path.
func (d Doc) SetRaw(path string, rawJSON string) (Doc, error) {
	raw, err := sjson.SetRawBytes(d.Raw(), path, []byte(rawJSON))
	if err != nil {
		return Doc{}, err
	}
	return Doc{raw: raw}, nil
}

// Delete returns a new Doc with the value at path removed. Deleting an
// absent path is not an error.
func (d Doc) Delete(path string) (Doc, error) {
	raw, err := sjson.DeleteBytes(d.Raw(), path)
	if err != nil {
		return Doc{}, err
	}
	return Doc{raw: raw}, nil
}

// Pretty returns the document indented for humans.
func (d Doc) Pretty() []byte {
	return pretty.Pretty(d.Raw())
}

// Compact returns the document with all insignificant whitespace
// removed.
func (d Doc) Compact() []byte {
	return pretty.Ugly(d.Raw())
}

// Value decodes the document into plain Go values (nil, bool, float64,
// string, []any, map[string]any), the shape event payloads
// conventionally carry.
func (d Doc) Value() any {
	return gjson.ParseBytes(d.Raw()).Value()
}
