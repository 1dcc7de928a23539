package field

import (
	"time"

	"github.com/rs/zerolog"
)

// Options configures field construction. The zero value is usable: nothing
// is logged, value-list hints are resolved by the built-in StaticLists
// resolver and "now" reads the wall clock.
type Options struct {
	Logger *zerolog.Logger
	Lists  ListResolver
	Clock  func() time.Time
}

func (o Options) logger() zerolog.Logger {
	if o.Logger == nil {
		return zerolog.Nop()
	}
	return *o.Logger
}

func (o Options) lists() ListResolver {
	if o.Lists == nil {
		return StaticLists{}
	}
	return o.Lists
}

func (o Options) now() time.Time {
	if o.Clock == nil {
		return time.Now()
	}
	return o.Clock()
}
