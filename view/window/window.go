package window

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"go.jacobcolvin.com/logview/logger"
	"go.jacobcolvin.com/logview/page"
)

// Kind is the viewer type name this package registers under.
const Kind = "window"

// State is the lifecycle state of a window [Viewer].
type State int

const (
	// StateUnopened means no surface has been opened yet.
	StateUnopened State = iota
	// StateOpen means the surface is open and the delegate is drawing on it.
	StateOpen
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnopened:
		return "unopened"
	case StateOpen:
		return "open"
	}

	return fmt.Sprintf("State(%d)", int(s))
}

// Opener opens a new top-level surface.
type Opener func() (page.Surface, error)

// closedReporter is implemented by surfaces that can tell when the user
// has closed them.
type closedReporter interface {
	Closed() bool
}

// Viewer opens a surface lazily and forwards messages to the viewer
// embedded in it.
//
// Create instances with a factory from [NewFactory].
type Viewer struct {
	surface  page.Surface
	delegate logger.Viewer
	open     Opener
	embed    logger.Factory
	log      *slog.Logger
	env      logger.Env
	opts     logger.ViewerOptions
	state    State
	dropped  bool
	mu       sync.Mutex
}

// NewFactory returns the [logger.Factory] for the window kind. Surfaces are
// created with open.
//
// The factory fails with [logger.ErrUnknownViewerType] when
// opts.BlockViewer does not name a registered kind, and with
// [logger.ErrInvalidArgument] when it names the window kind itself.
func NewFactory(open Opener) logger.Factory {
	return func(opts logger.ViewerOptions, env logger.Env) (logger.Viewer, error) {
		if opts.BlockViewer == Kind {
			return nil, fmt.Errorf("%w: %s viewer cannot embed itself", logger.ErrInvalidArgument, Kind)
		}

		var (
			embed logger.Factory
			ok    bool
		)

		if env.Lookup != nil {
			embed, ok = env.Lookup(opts.BlockViewer)
		}

		if !ok {
			return nil, fmt.Errorf("%w: block viewer %q", logger.ErrUnknownViewerType, opts.BlockViewer)
		}

		log := env.Logger
		if log == nil {
			log = slog.New(slog.DiscardHandler)
		}

		return &Viewer{
			open:  open,
			embed: embed,
			log:   log,
			env:   env,
			opts:  opts,
		}, nil
	}
}

// Open opens the surface and builds the delegate if that has not happened
// yet. The delegate sees the levels and default topic active at this
// point, not those of construction time. A stylesheet named by the CSSFile option is loaded at this point;
// failing to load it is logged and the default stylesheet is used.
func (v *Viewer) Open() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.openLocked()
}

func (v *Viewer) openLocked() error {
	if v.state == StateOpen {
		return nil
	}

	surface, err := v.open()
	if err != nil {
		return fmt.Errorf("open %s surface: %w", Kind, err)
	}

	opts := v.opts
	opts.Block = surface

	if opts.CSSFile != "" {
		sheet, err := page.LoadStylesheet(opts.CSSFile)
		if err != nil {
			v.log.Warn("loading window stylesheet", "path", opts.CSSFile, "error", err)
		} else {
			opts.Stylesheet = sheet
		}
	}

	env := v.env
	if env.Current != nil {
		env = env.Current()
	}

	delegate, err := v.embed(opts, env)
	if err != nil {
		closeErr := closeSurface(surface)

		return errors.Join(fmt.Errorf("create %s viewer in %s: %w", opts.BlockViewer, Kind, err), closeErr)
	}

	v.surface = surface
	v.delegate = delegate
	v.state = StateOpen

	return nil
}

// Output opens the surface on first use and forwards the message to the
// delegate. Messages are dropped while the surface cannot be opened or
// after the user has closed it.
func (v *Viewer) Output(msg, level, topic string) {
	v.mu.Lock()

	err := v.openLocked()
	if err != nil {
		v.mu.Unlock()
		v.log.Error("window viewer dropped a message", "error", err)

		return
	}

	if cr, ok := v.surface.(closedReporter); ok && cr.Closed() {
		warn := !v.dropped
		v.dropped = true
		v.mu.Unlock()

		if warn {
			v.log.Warn("window surface was closed, dropping further messages")
		}

		return
	}

	delegate := v.delegate
	v.mu.Unlock()

	delegate.Output(msg, level, topic)
}

// State returns the lifecycle state.
func (v *Viewer) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.state
}

// Delegate returns the embedded viewer, or nil before the window is open.
func (v *Viewer) Delegate() logger.Viewer {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.delegate
}

// Close closes the surface if it is open and implements [io.Closer]. The
// state stays [StateOpen].
func (v *Viewer) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.surface == nil {
		return nil
	}

	return closeSurface(v.surface)
}

func closeSurface(s page.Surface) error {
	c, ok := s.(io.Closer)
	if !ok {
		return nil
	}

	return c.Close()
}
