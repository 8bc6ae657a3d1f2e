package quadtree

import (
	"fmt"
	"log/slog"
)

const (
	// DefaultCapacity is the number of ids a leaf holds before it splits.
	DefaultCapacity = 8
	// DefaultMaxDepth bounds the tree height; nodes at this depth never split.
	DefaultMaxDepth = 12
)

type options struct {
	capacity int
	maxDepth int
	maxNodes int
	logger   *slog.Logger
}

func loadOptions(opts ...Option) (options, error) {
	o := options{
		capacity: DefaultCapacity,
		maxDepth: DefaultMaxDepth,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt.apply(&o)
	}

	if o.capacity < 1 {
		return o, fmt.Errorf("capacity must be positive, got %d", o.capacity)
	}
	if o.maxDepth < 0 {
		return o, fmt.Errorf("max depth must not be negative, got %d", o.maxDepth)
	}
	if o.maxNodes < 0 {
		return o, fmt.Errorf("max nodes must not be negative, got %d", o.maxNodes)
	}
	return o, nil
}

type Option interface {
	apply(*options)
}

type capacity int

func (c capacity) apply(o *options) {
	o.capacity = int(c)
}

// Default: 8
func WithCapacity(c int) Option {
	return capacity(c)
}

type maxDepth int

func (d maxDepth) apply(o *options) {
	o.maxDepth = int(d)
}

// Default: 12
func WithMaxDepth(d int) Option {
	return maxDepth(d)
}

type maxNodes int

func (n maxNodes) apply(o *options) {
	o.maxNodes = int(n)
}

// WithMaxNodes caps the number of live tree nodes, root included. A split
// that would exceed it fails with ErrOutOfMemory. Zero means no limit.
func WithMaxNodes(n int) Option {
	return maxNodes(n)
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
