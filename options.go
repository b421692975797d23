package xlcalc

import (
	"io"
	"log/slog"
)

// DefaultMaxDepth bounds how many formula cells a single evaluation may chain
// through before giving up.
const DefaultMaxDepth = 64

// options holds configuration shared by Sheet, Engine and Session.
type options struct {
	logger   *slog.Logger
	maxDepth int
}

func defaultOptions() *options {
	return &options{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxDepth: DefaultMaxDepth,
	}
}

func buildOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option configures a Sheet, Engine or Session.
type Option func(*options)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMaxDepth sets how deep formula-to-formula evaluation may recurse.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}
