// Package codec converts between the canonical lexical forms of XML Schema
// builtin types and Go values.
package codec

import (
	xsdform "github.com/reoring/xsdform"
	"github.com/reoring/xsdform/i18n"
	"github.com/reoring/xsdform/schema"
)

// Codec converts between a lexical form and a Go value.
type Codec[T any] interface {
	Decode(text string) (T, error)
	Encode(v T) string
}

// Canonical parses text as a value of the given kind and returns its
// canonical lexical form. String kinds are returned unchanged.
func Canonical(kind schema.DataKind, text string) (string, error) {
	switch kind {
	case schema.KindBoolean:
		return roundtrip(Boolean(), text)
	case schema.KindInteger:
		return roundtrip(Integer(), text)
	case schema.KindDecimal:
		return roundtrip(Decimal(), text)
	case schema.KindDate:
		return roundtrip(Date(), text)
	case schema.KindTime:
		return roundtrip(Time(), text)
	case schema.KindDateTime:
		return roundtrip(DateTime(), text)
	default:
		return text, nil
	}
}

// Check reports whether text is a valid lexical value of the given kind.
func Check(kind schema.DataKind, text string) error {
	_, err := Canonical(kind, text)
	return err
}

func roundtrip[T any](c Codec[T], text string) (string, error) {
	v, err := c.Decode(text)
	if err != nil {
		return "", err
	}
	return c.Encode(v), nil
}

func formatIssue(kind schema.DataKind, text string, cause error) error {
	return xsdform.Issues{{
		Path:    "/",
		Code:    xsdform.CodeInvalidFormat,
		Message: i18n.T(xsdform.CodeInvalidFormat, map[string]string{"type": kind.String()}),
		Hint:    kind.String(),
		Cause:   cause,
		Params:  map[string]any{"value": text, "type": kind.String()},
	}}
}
