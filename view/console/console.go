package console

import (
	"os"
	"sync"

	"charm.land/log/v2"

	"go.jacobcolvin.com/logview/logger"
)

// Kind is the viewer type name this package registers under.
const Kind = "console"

// levelled lists the levels routed to a level-named method. Fatal is left
// out so a user-defined "fatal" level never terminates the process.
var levelled = map[string]log.Level{
	"debug": log.DebugLevel,
	"info":  log.InfoLevel,
	"warn":  log.WarnLevel,
	"error": log.ErrorLevel,
}

// Viewer writes messages to a console stream.
//
// Create instances with [New].
type Viewer struct {
	out          *log.Logger
	defaultTopic string
	mu           sync.Mutex
}

// New is the [logger.Factory] for the console kind. It writes to
// opts.Output, or stderr when unset.
func New(opts logger.ViewerOptions, env logger.Env) (logger.Viewer, error) {
	w := opts.Output
	if w == nil {
		w = os.Stderr
	}

	return &Viewer{
		out: log.NewWithOptions(w, log.Options{
			Level: log.DebugLevel,
		}),
		defaultTopic: env.DefaultTopic,
	}, nil
}

// Output writes msg with the method matching level.
func (v *Viewer) Output(msg, level, topic string) {
	if topic != v.defaultTopic {
		msg = topic + ": " + msg
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	lvl, ok := levelled[level]
	if !ok {
		v.out.Print(msg)
		return
	}

	v.out.Log(lvl, msg)
}
