package xsdform

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeInvalidFormat = "invalid_format"
	CodeInvalidEnum   = "invalid_enum"
	CodeRequired      = "required"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	// Structural problems between schema and document.
	CodeStructural = "structural"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // Location of the offending node (for example: /order/@status).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, format names, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"value":"x", "type":"integer"})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_format at /@count
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// StructuralError reports a schema declaration that cannot back a field, or a
// document node that does not match the declaration it is bound to.
type StructuralError struct {
	Name string // declaration or node name, when known
	Msg  string
}

func (e *StructuralError) Error() string {
	if e.Name == "" {
		return "structural error: " + e.Msg
	}
	return fmt.Sprintf("structural error in %q: %s", e.Name, e.Msg)
}

// Structuralf builds a StructuralError for the named declaration.
func Structuralf(name, format string, args ...any) error {
	return &StructuralError{Name: name, Msg: fmt.Sprintf(format, args...)}
}

// IsStructural reports whether err is or wraps a StructuralError.
func IsStructural(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}

// InvalidOutcomeValueError is returned when a value is written to a field
// that is not bound to any document node.
type InvalidOutcomeValueError struct {
	Field string
}

func (e *InvalidOutcomeValueError) Error() string {
	return fmt.Sprintf("node for %q does not exist", e.Field)
}

// IsInvalidOutcomeValue reports whether err is or wraps an
// InvalidOutcomeValueError.
func IsInvalidOutcomeValue(err error) bool {
	var ie *InvalidOutcomeValueError
	return errors.As(err, &ie)
}

// IssueAt creates an Issue at the given path with provided code, message and params map.
func IssueAt(p PathRef, code, msg string, params map[string]any) Issue {
	return Issue{Path: p.Pointer(), Code: code, Message: msg, Params: params}
}
