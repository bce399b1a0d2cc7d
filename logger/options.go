package logger

import (
	"io"
	"log/slog"
	"slices"

	"go.jacobcolvin.com/logview/page"
)

// DefaultBlockViewer is the viewer kind a window viewer embeds when
// [ViewerOptions.BlockViewer] is unset.
const DefaultBlockViewer = "pageList"

// Defaults holds the settings applied when a call or a viewer leaves a
// value unspecified.
type Defaults struct {
	// Level is used by [Context.Log] and for unrecognized levels.
	Level string
	// Topic is used when a message carries no topic.
	Topic string
	// LevelFilter is assigned to viewers added without one.
	LevelFilter string
	// TopicFilter is assigned to viewers added without one.
	TopicFilter []string
}

// DefaultLevels returns the level sequence a new [Context] starts with.
func DefaultLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// DefaultDefaults returns the [Defaults] a new [Context] starts with.
func DefaultDefaults() Defaults {
	return Defaults{
		Level:       "info",
		Topic:       "raw",
		LevelFilter: "info",
		TopicFilter: []string{Wildcard},
	}
}

func (d Defaults) clone() Defaults {
	d.TopicFilter = slices.Clone(d.TopicFilter)
	return d
}

// ViewerOptions configures a viewer registered with [Context.AddView].
// Fields other than Type, TopicFilter and LevelFilter are only read by the
// viewer kinds that need them.
type ViewerOptions struct {
	// Block is the surface page-based viewers draw on.
	Block page.Surface
	// Output is where the console viewer writes. Defaults to stderr.
	Output io.Writer
	// Stylesheet styles page rendering. Page viewers fall back to
	// [page.DefaultStylesheet].
	Stylesheet *page.Stylesheet
	// Type names the viewer kind. Required.
	Type string
	// CSSFile is a stylesheet path loaded by the window viewer when it opens.
	CSSFile string
	// BlockViewer names the viewer kind a window viewer embeds.
	BlockViewer string
	// LevelFilter is the minimum level delivered to the viewer.
	LevelFilter string
	// TopicFilter lists the topic segments delivered to the viewer.
	TopicFilter []string
}

// Viewer is an output sink for messages that passed its filters.
type Viewer interface {
	Output(msg, level, topic string)
}

// Factory constructs a viewer of one kind from fully defaulted options.
type Factory func(opts ViewerOptions, env Env) (Viewer, error)

// Env is the view of the owning [Context] given to a [Factory]. It is a
// snapshot taken when the viewer is constructed.
type Env struct {
	// Logger receives diagnostics. Never nil.
	Logger *slog.Logger
	// Lookup resolves another viewer kind by name.
	Lookup func(kind string) (Factory, bool)
	// DefaultTopic is the topic messages without one are given.
	DefaultTopic string
	// Levels is the active level sequence.
	Levels []string
	// Current returns an Env reflecting the Context at call time, for
	// viewers that build other viewers after construction.
	Current func() Env
}

// ViewerID identifies a registered viewer.
type ViewerID string

// Entry is a single message with an explicit level and topic.
type Entry struct {
	Msg   string
	Level string
	Topic string
}
