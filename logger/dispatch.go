package logger

import "slices"

// Log delivers msg at the default level with the default topic.
// An empty msg is ignored.
func (c *Context) Log(msg string) {
	c.Dispatch(Entry{Msg: msg})
}

// LogWith delivers msg with a single qualifier. When levelOrTopic is an
// active level it is used as the level and the message gets the default
// topic; otherwise it is used as the topic and the message gets the
// default level. An empty levelOrTopic leaves both at their defaults.
func (c *Context) LogWith(msg, levelOrTopic string) {
	if msg == "" {
		return
	}

	c.mu.RLock()

	e := Entry{Msg: msg, Topic: levelOrTopic}
	if slices.Contains(c.levels, levelOrTopic) {
		e = Entry{Msg: msg, Level: levelOrTopic}
	}

	targets := c.match(&e)
	c.mu.RUnlock()

	deliver(targets, e)
}

// LogFull delivers msg with an explicit level and topic. A level outside
// the active sequence becomes the default level; an empty topic becomes
// the default topic.
func (c *Context) LogFull(msg, level, topic string) {
	c.Dispatch(Entry{Msg: msg, Level: level, Topic: topic})
}

// Dispatch delivers e to every viewer whose filters accept it, as
// [Context.LogFull] does.
func (c *Context) Dispatch(e Entry) {
	if e.Msg == "" {
		return
	}

	c.mu.RLock()
	targets := c.match(&e)
	c.mu.RUnlock()

	deliver(targets, e)
}

// match normalizes e and returns the viewers accepting it. The caller holds
// c.mu for reading.
func (c *Context) match(e *Entry) []Viewer {
	if !slices.Contains(c.levels, e.Level) {
		e.Level = c.defaults.Level
	}

	if e.Topic == "" {
		e.Topic = c.defaults.Topic
	}

	var targets []Viewer

	for _, id := range c.order {
		r := c.views[id]
		if FilterTopic(e.Topic, r.opts.TopicFilter) && FilterLevel(c.levels, e.Level, r.opts.LevelFilter) {
			targets = append(targets, r.viewer)
		}
	}

	return targets
}

func deliver(targets []Viewer, e Entry) {
	for _, v := range targets {
		v.Output(e.Msg, e.Level, e.Topic)
	}
}
