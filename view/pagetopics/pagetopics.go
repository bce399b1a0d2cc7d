package pagetopics

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"go.jacobcolvin.com/logview/logger"
	"go.jacobcolvin.com/logview/page"
)

// Kind is the viewer type name this package registers under.
const Kind = "pageTopics"

// Viewer renders messages grouped by topic onto a [page.Surface].
//
// Create instances with [New].
type Viewer struct {
	surface page.Surface
	style   *page.Stylesheet
	log     *slog.Logger
	byTopic map[string]*block
	blocks  []*block
	mu      sync.Mutex
}

type block struct {
	topic     string
	lines     []line
	collapsed bool
}

type line struct {
	level string
	msg   string
}

// New is the [logger.Factory] for the pageTopics kind. opts.Block is
// required.
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

	return &Viewer{
		surface: opts.Block,
		style:   style,
		log:     log,
		byTopic: map[string]*block{},
	}, nil
}

// Output appends msg to the block for topic and redraws.
func (v *Viewer) Output(msg, level, topic string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	b, ok := v.byTopic[topic]
	if !ok {
		b = &block{topic: topic}
		v.byTopic[topic] = b
		v.blocks = append(v.blocks, b)
	}

	b.lines = append(b.lines, line{level: level, msg: msg})

	v.draw()
}

// Toggle collapses or expands the block for topic and returns whether it
// is now collapsed. Unknown topics are ignored.
func (v *Viewer) Toggle(topic string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	b, ok := v.byTopic[topic]
	if !ok {
		return false
	}

	b.collapsed = !b.collapsed
	v.draw()

	return b.collapsed
}

// Topics returns the topics seen so far, in order of first appearance.
func (v *Viewer) Topics() []string {
	v.mu.Lock()
	defer v.mu.Unlock()

	topics := make([]string, len(v.blocks))
	for i, b := range v.blocks {
		topics[i] = b.topic
	}

	return topics
}

// draw renders every block. The caller holds v.mu.
func (v *Viewer) draw() {
	var sb strings.Builder

	for i, b := range v.blocks {
		if i > 0 {
			sb.WriteByte('\n')
		}

		if b.collapsed {
			sb.WriteString(v.style.RenderHeading(fmt.Sprintf("▸ %s (%d)", b.topic, len(b.lines))))
			continue
		}

		sb.WriteString(v.style.RenderHeading("▾ " + b.topic))

		for _, l := range b.lines {
			sb.WriteString("\n  ")
			sb.WriteString(v.style.RenderLevel(l.level, l.msg))
		}
	}

	err := v.surface.Draw(sb.String())
	if err != nil {
		v.log.Warn("drawing topic blocks", "error", err)
	}
}
