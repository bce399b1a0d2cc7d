package logger

import (
	"fmt"
	"io"
	"slices"
	"strconv"
)

// AddView registers a new viewer under a generated id and returns the id.
// See [Context.AddViewWithID].
func (c *Context) AddView(opts ViewerOptions) (ViewerID, error) {
	return c.AddViewWithID(opts, "")
}

// AddViewWithID registers a new viewer under id and returns id.
//
// opts.Type must name a registered kind, otherwise [ErrUnknownViewerType]
// is returned. Unset filters are taken from [Defaults] and an unset
// BlockViewer becomes [DefaultBlockViewer]. An empty id is replaced by one
// derived from the current time in milliseconds. A viewer already
// registered under id is replaced and, if it implements [io.Closer],
// closed.
func (c *Context) AddViewWithID(opts ViewerOptions, id ViewerID) (ViewerID, error) {
	c.mu.RLock()
	factory, ok := c.factories[opts.Type]
	defaults := c.defaults.clone()
	env := c.env()
	c.mu.RUnlock()

	if opts.Type == "" || !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownViewerType, opts.Type)
	}

	if opts.TopicFilter == nil {
		opts.TopicFilter = defaults.TopicFilter
	}

	if opts.LevelFilter == "" {
		opts.LevelFilter = defaults.LevelFilter
	}

	if opts.BlockViewer == "" {
		opts.BlockViewer = DefaultBlockViewer
	}

	opts.TopicFilter = slices.Clone(opts.TopicFilter)

	if !slices.Contains(env.Levels, opts.LevelFilter) {
		c.log.Warn("level filter is not an active level, viewer accepts every level",
			"type", opts.Type, "level_filter", opts.LevelFilter)
	}

	v, err := factory(opts, env)
	if err != nil {
		return "", fmt.Errorf("create %s viewer: %w", opts.Type, err)
	}

	c.mu.Lock()

	if id == "" {
		id = c.nextID()
	}

	prev, replaced := c.views[id]
	if !replaced {
		c.order = append(c.order, id)
	}

	c.views[id] = &registration{viewer: v, opts: opts}
	c.mu.Unlock()

	c.log.Debug("viewer added", "id", id, "type", opts.Type,
		"level_filter", opts.LevelFilter, "topic_filter", opts.TopicFilter)

	if replaced {
		c.closeViewer(id, prev.viewer)
	}

	return id, nil
}

// DeleteView removes the viewer registered under id and closes it if it
// implements [io.Closer]. Unknown ids are ignored.
func (c *Context) DeleteView(id ViewerID) {
	c.mu.Lock()

	r, ok := c.views[id]
	if ok {
		delete(c.views, id)
		c.order = slices.DeleteFunc(c.order, func(v ViewerID) bool { return v == id })
	}

	c.mu.Unlock()

	if !ok {
		return
	}

	c.log.Debug("viewer deleted", "id", id)
	c.closeViewer(id, r.viewer)
}

// ViewIDs returns the ids of all registered viewers in registration order.
func (c *Context) ViewIDs() []ViewerID {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.order)
}

// ViewOptions returns the resolved options of the viewer registered under
// id.
func (c *Context) ViewOptions(id ViewerID) (ViewerOptions, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.views[id]
	if !ok {
		return ViewerOptions{}, false
	}

	opts := r.opts
	opts.TopicFilter = slices.Clone(opts.TopicFilter)

	return opts, true
}

// nextID returns an unused id derived from the clock. Ids are strictly
// increasing so two viewers added within the same millisecond do not
// collide. The caller holds c.mu.
func (c *Context) nextID() ViewerID {
	n := max(c.clock().UnixMilli(), c.lastID+1)
	for {
		id := ViewerID(strconv.FormatInt(n, 10))
		if _, taken := c.views[id]; !taken {
			c.lastID = n
			return id
		}

		n++
	}
}

func (c *Context) closeViewer(id ViewerID, v Viewer) {
	closer, ok := v.(io.Closer)
	if !ok {
		return
	}

	err := closer.Close()
	if err != nil {
		c.log.Warn("closing viewer", "id", id, "error", err)
	}
}
