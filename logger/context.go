package logger

import (
	"errors"
	"io"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"
)

// Context is the active logging configuration: the level sequence and its
// aliases, the [Defaults], the table of viewer factories and the registry
// of viewers.
//
// All methods are safe for concurrent use. Viewers are invoked after the
// registry lock is released, so a viewer may itself log through the same
// Context.
//
// Create instances with [New] and release them with [Context.Close].
type Context struct {
	log       *slog.Logger
	clock     func() time.Time
	factories map[string]Factory
	aliases   map[string]AliasFunc
	views     map[ViewerID]*registration
	defaults  Defaults
	levels    []string
	order     []ViewerID
	lastID    int64
	mu        sync.RWMutex
}

type registration struct {
	viewer Viewer
	opts   ViewerOptions
}

// Option configures a [Context].
type Option func(*Context)

// WithFactories adds every viewer kind in factories to the Context.
func WithFactories(factories map[string]Factory) Option {
	return func(c *Context) {
		maps.Copy(c.factories, factories)
	}
}

// WithFactory adds a single viewer kind.
func WithFactory(kind string, f Factory) Option {
	return func(c *Context) {
		c.factories[kind] = f
	}
}

// WithLogger sets the logger receiving diagnostics. By default diagnostics
// are discarded.
func WithLogger(l *slog.Logger) Option {
	return func(c *Context) {
		if l != nil {
			c.log = l
		}
	}
}

// WithClock sets the time source used to generate viewer ids.
func WithClock(now func() time.Time) Option {
	return func(c *Context) {
		if now != nil {
			c.clock = now
		}
	}
}

// WithDefaults replaces the initial [Defaults].
func WithDefaults(d Defaults) Option {
	return func(c *Context) {
		c.defaults = d.clone()
	}
}

// New creates a [Context] using [DefaultLevels] and [DefaultDefaults],
// with no viewers registered.
func New(opts ...Option) *Context {
	c := &Context{
		log:       slog.New(slog.DiscardHandler),
		clock:     time.Now,
		factories: map[string]Factory{},
		aliases:   map[string]AliasFunc{},
		views:     map[ViewerID]*registration{},
		defaults:  DefaultDefaults(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.replaceLevels(DefaultLevels())

	return c
}

// Defaults returns a copy of the current [Defaults].
func (c *Context) Defaults() Defaults {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.defaults.clone()
}

// SetDefaults replaces the current [Defaults]. Viewers that are already
// registered keep the filters they were given.
func (c *Context) SetDefaults(d Defaults) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.defaults = d.clone()
}

// Kinds returns the registered viewer kind names, sorted.
func (c *Context) Kinds() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Sorted(maps.Keys(c.factories))
}

// Close removes every registered viewer and closes those implementing
// [io.Closer]. The Context stays usable afterwards.
func (c *Context) Close() error {
	c.mu.Lock()
	views := c.views
	order := c.order
	c.views = map[ViewerID]*registration{}
	c.order = nil
	c.mu.Unlock()

	var errs []error

	for _, id := range order {
		closer, ok := views[id].viewer.(io.Closer)
		if !ok {
			continue
		}

		err := closer.Close()
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// env snapshots what a [Factory] may need. The caller holds c.mu.
func (c *Context) env() Env {
	factories := maps.Clone(c.factories)

	return Env{
		Logger:       c.log,
		DefaultTopic: c.defaults.Topic,
		Levels:       slices.Clone(c.levels),
		Lookup: func(kind string) (Factory, bool) {
			f, ok := factories[kind]
			return f, ok
		},
		Current: c.currentEnv,
	}
}

func (c *Context) currentEnv() Env {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.env()
}
