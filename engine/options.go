package engine

import "log/slog"

type options struct {
	logger  *slog.Logger
	workers int
}

// Option configures an engine
type Option func(*options)

// WithLogger sets the logger used for per-generation debug output
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithWorkers sets how many clusters the quadtree engine steps in parallel.
// Each worker owns its own arena. Values below 1 mean serial.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = max(1, n)
	}
}

func applyOptions(opts []Option) options {
	o := options{
		logger:  slog.New(slog.DiscardHandler),
		workers: 1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
