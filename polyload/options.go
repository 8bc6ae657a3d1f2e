package polyload

import (
	"log/slog"
	"runtime"
)

type options struct {
	threads     int
	skipInvalid bool
	progress    func()
	logger      *slog.Logger
}

func loadOptions(opts ...Option) options {
	o := options{
		threads:  runtime.GOMAXPROCS(0),
		progress: func() {},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt.apply(&o)
	}
	o.logger = o.logger.With("component", "polyload")
	return o
}

type Option interface {
	apply(*options)
}

type threads int

func (t threads) apply(o *options) {
	if t > 0 {
		o.threads = int(t)
	}
}

// Default: GOMAXPROCS
func WithThreads(n int) Option {
	return threads(n)
}

type skipInvalid bool

func (s skipInvalid) apply(o *options) {
	o.skipInvalid = bool(s)
}

// WithSkipInvalid makes decoding and loading log and skip features that
// cannot be indexed instead of failing.
func WithSkipInvalid(skip bool) Option {
	return skipInvalid(skip)
}

type progress func()

func (p progress) apply(o *options) {
	if p != nil {
		o.progress = p
	}
}

// WithProgress registers a callback invoked once per feature handled by Load.
func WithProgress(fn func()) Option {
	return progress(fn)
}

type loggerOption struct {
	logger *slog.Logger
}

func (l loggerOption) apply(o *options) {
	if l.logger != nil {
		o.logger = l.logger
	}
}

// Default: slog.Default()
func WithLogger(l *slog.Logger) Option {
	return loggerOption{logger: l}
}
