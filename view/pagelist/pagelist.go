package pagelist

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"go.jacobcolvin.com/logview/logger"
	"go.jacobcolvin.com/logview/page"
)

const (
	// Kind is the viewer type name this package registers under.
	Kind = "pageList"
	// All is the filter selection that disables a dimension.
	All = "all"
)

// Viewer renders a filterable list of messages onto a [page.Surface].
//
// Create instances with [New].
type Viewer struct {
	surface  page.Surface
	style    *page.Stylesheet
	log      *slog.Logger
	topicIDs map[string]int
	levels   []string
	topics   []string
	entries  []entry
	level    string
	topic    string
	mu       sync.Mutex
}

type entry struct {
	level string
	msg   string
	topic int
}

// New is the [logger.Factory] for the pageList kind. opts.Block is
// required. The level choices are taken from env.Levels; a viewer built
// before a level change keeps the old choices.
func New(opts logger.ViewerOptions, env logger.Env) (logger.Viewer, error) {
	if opts.Block == nil {
		return nil, fmt.Errorf("%w: %s viewer needs a block", logger.ErrMissingRenderSurface, Kind)
	}

	style := opts.Stylesheet
	if style == nil {
		style = page.DefaultStylesheet()
	}

	log := env.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	v := &Viewer{
		surface:  opts.Block,
		style:    style,
		log:      log,
		topicIDs: map[string]int{},
		levels:   slices.Clone(env.Levels),
		level:    All,
		topic:    All,
	}

	v.mu.Lock()
	v.draw()
	v.mu.Unlock()

	return v, nil
}

// Output appends msg to the list and redraws.
func (v *Viewer) Output(msg, level, topic string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.entries = append(v.entries, entry{level: level, msg: msg, topic: v.topicID(topic)})

	v.draw()
}

// SetFilter selects the level and topic shown. level is [All] or one of
// the level choices and shows only entries of exactly that level; topic is
// [All] or a topic already seen. Returns [logger.ErrInvalidArgument] for
// any other value and keeps the previous selection.
func (v *Viewer) SetFilter(level, topic string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if level != All && !slices.Contains(v.levels, level) {
		return fmt.Errorf("%w: level choice %q", logger.ErrInvalidArgument, level)
	}

	if _, ok := v.topicIDs[topic]; topic != All && !ok {
		return fmt.Errorf("%w: topic choice %q", logger.ErrInvalidArgument, topic)
	}

	v.level = level
	v.topic = topic
	v.draw()

	return nil
}

// Filter returns the current level and topic selection.
func (v *Viewer) Filter() (level, topic string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.level, v.topic
}

// TopicID returns the id assigned to topic, if it has been seen.
func (v *Viewer) TopicID(topic string) (int, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id, ok := v.topicIDs[topic]

	return id, ok
}

// Visible returns the messages passing the current selection, oldest
// first.
func (v *Viewer) Visible() []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	var out []string

	for _, e := range v.entries {
		if v.shows(e) {
			out = append(out, e.msg)
		}
	}

	return out
}

// topicID returns the id for topic, assigning the next one on first use.
// The caller holds v.mu.
func (v *Viewer) topicID(topic string) int {
	id, ok := v.topicIDs[topic]
	if !ok {
		v.topics = append(v.topics, topic)
		id = len(v.topics)
		v.topicIDs[topic] = id
	}

	return id
}

func (v *Viewer) shows(e entry) bool {
	if v.level != All && e.level != v.level {
		return false
	}

	return v.topic == All || e.topic == v.topicIDs[v.topic]
}

// draw renders the filter control followed by the visible entries. The
// caller holds v.mu.
func (v *Viewer) draw() {
	var sb strings.Builder

	sb.WriteString(v.style.RenderHeading("level: " + choices(v.level, v.levels)))
	sb.WriteByte('\n')

	topics := make([]string, len(v.topics))
	for i, t := range v.topics {
		topics[i] = t + "#" + strconv.Itoa(i+1)
	}

	selected := v.topic
	if selected != All {
		selected += "#" + strconv.Itoa(v.topicIDs[selected])
	}

	sb.WriteString(v.style.RenderHeading("topic: " + choices(selected, topics)))

	for _, e := range v.entries {
		if !v.shows(e) {
			continue
		}

		sb.WriteByte('\n')
		sb.WriteString(v.style.RenderLevel(e.level, fmt.Sprintf("%s #%d %s", e.level, e.topic, e.msg)))
	}

	err := v.surface.Draw(sb.String())
	if err != nil {
		v.log.Warn("drawing message list", "error", err)
	}
}

// choices renders All followed by options, bracketing the selected one.
func choices(selected string, options []string) string {
	all := append([]string{All}, options...)
	for i, o := range all {
		if o == selected {
			all[i] = "[" + o + "]"
		}
	}

	return strings.Join(all, " ")
}
