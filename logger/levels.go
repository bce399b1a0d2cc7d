package logger

import (
	"fmt"
	"maps"
	"slices"
)

// AliasFunc logs msg at the level it was created for. An empty topic means
// the default topic.
type AliasFunc func(msg, topic string)

// SetLevels replaces the level sequence, ordered from least to most severe.
// Aliases for the previous sequence are removed and one alias per new level
// is installed.
//
// Returns [ErrInvalidArgument] when levels is empty, or contains an empty
// or duplicated name. The previous sequence stays active in that case.
func (c *Context) SetLevels(levels []string) error {
	if len(levels) == 0 {
		return fmt.Errorf("%w: levels must be a non-empty list of strings", ErrInvalidArgument)
	}

	for i, l := range levels {
		if l == "" {
			return fmt.Errorf("%w: level %d is empty", ErrInvalidArgument, i)
		}

		if slices.Index(levels, l) != i {
			return fmt.Errorf("%w: duplicate level %q", ErrInvalidArgument, l)
		}
	}

	c.replaceLevels(levels)

	c.log.Debug("logging levels replaced", "levels", levels)

	return nil
}

func (c *Context) replaceLevels(levels []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, l := range c.levels {
		delete(c.aliases, l)
	}

	c.levels = slices.Clone(levels)
	for _, l := range c.levels {
		c.aliases[l] = c.newAlias(l)
	}
}

func (c *Context) newAlias(level string) AliasFunc {
	return func(msg, topic string) {
		c.LogFull(msg, level, topic)
	}
}

// Levels returns a copy of the active level sequence.
func (c *Context) Levels() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.levels)
}

// IsLevel reports whether s is in the active level sequence.
func (c *Context) IsLevel(s string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Contains(c.levels, s)
}

// Alias returns the alias for level, if level is active.
func (c *Context) Alias(level string) (AliasFunc, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	fn, ok := c.aliases[level]

	return fn, ok
}

// Aliases returns the names of all installed aliases in level order.
func (c *Context) Aliases() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.SortedFunc(maps.Keys(c.aliases), func(a, b string) int {
		return LevelIndex(c.levels, a) - LevelIndex(c.levels, b)
	})
}
