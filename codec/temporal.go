package codec

import (
	"strings"
	"time"

	"github.com/reoring/xsdform/schema"
)

// Now is the placeholder value standing for the current instant.
const Now = "now"

// Canonical layouts written for the temporal kinds.
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02T15:04:05"
)

// Date returns a Codec for xs:date. An optional zone suffix is accepted on
// decode; encode writes the local date only.
func Date() Codec[time.Time] {
	return temporalCodec{kind: schema.KindDate, layout: DateLayout, accept: []string{
		"2006-01-02Z07:00",
		DateLayout,
	}}
}

// Time returns a Codec for xs:time.
func Time() Codec[time.Time] {
	return temporalCodec{kind: schema.KindTime, layout: TimeLayout, accept: []string{
		"15:04:05.999999999Z07:00",
		"15:04:05.999999999",
	}}
}

// DateTime returns a Codec for xs:dateTime. RFC 3339 input with or without a
// zone is accepted.
func DateTime() Codec[time.Time] {
	return temporalCodec{kind: schema.KindDateTime, layout: DateTimeLayout, accept: []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999",
	}}
}

type temporalCodec struct {
	kind   schema.DataKind
	layout string
	accept []string
}

func (c temporalCodec) Decode(text string) (time.Time, error) {
	s := strings.TrimSpace(text)
	var firstErr error
	for _, layout := range c.accept {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, formatIssue(c.kind, text, firstErr)
}

func (c temporalCodec) Encode(v time.Time) string { return v.Format(c.layout) }

// Layout returns the canonical layout of a temporal kind, or "" for other
// kinds.
func Layout(kind schema.DataKind) string {
	switch kind {
	case schema.KindDate:
		return DateLayout
	case schema.KindTime:
		return TimeLayout
	case schema.KindDateTime:
		return DateTimeLayout
	}
	return ""
}

// ExpandNow replaces the Now placeholder with the given instant formatted for
// kind. Any other text is returned unchanged.
func ExpandNow(kind schema.DataKind, text string, now time.Time) string {
	if strings.TrimSpace(text) != Now {
		return text
	}
	if layout := Layout(kind); layout != "" {
		return now.Format(layout)
	}
	return text
}
