// Package descriptor is the declarative UI-control description emitted for
// a field, in the shape consumed by dynamic form front-ends.
package descriptor

import (
	json "github.com/goccy/go-json"
)

// Recognised top-level keys.
const (
	KeyCls         = "cls"
	KeyID          = "id"
	KeyLabel       = "label"
	KeyPlaceholder = "placeholder"
	KeyType        = "type"
	KeyRequired    = "required"
	KeyOptions     = "options"
	KeyInputType   = "inputType"
	KeyAdditional  = "additional"
)

// Control kinds.
const (
	ControlInput    = "INPUT"
	ControlTextArea = "TEXTAREA"
	ControlCheckbox = "CHECKBOX"
	ControlCalendar = "CALENDAR"
	ControlSelect   = "SELECT"
)

// Descriptor is a JSON-compatible control description. Annotation metadata
// may add arbitrary keys, so it is a map rather than a struct.
type Descriptor map[string]any

// Option is one entry of an enumerated control. The placeholder option has
// no value.
type Option struct {
	Label string `json:"label"`
	Value any    `json:"value,omitempty"`
}

// Additional returns the nested "additional" object, creating it if needed.
func (d Descriptor) Additional() map[string]any {
	if add, ok := d[KeyAdditional].(map[string]any); ok {
		return add
	}
	add := map[string]any{}
	d[KeyAdditional] = add
	return add
}

// String returns the value of key when it is a string.
func (d Descriptor) String(key string) string {
	s, _ := d[key].(string)
	return s
}

// Options returns the options list, if any.
func (d Descriptor) Options() []Option {
	opts, _ := d[KeyOptions].([]Option)
	return opts
}

// Marshal renders descriptors as JSON.
func Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// MarshalIndent renders descriptors as indented JSON.
func MarshalIndent(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }

// DefaultCls is the grouping classes attached to every control.
func DefaultCls() map[string]any {
	return map[string]any{
		"element": map[string]any{"label": "ui-widget"},
		"grid": map[string]any{
			"container": "ui-g",
			"label":     "ui-g-4",
			"control":   "ui-g-8",
		},
	}
}
