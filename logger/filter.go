package logger

import (
	"slices"
	"strings"
)

// Wildcard is the topic filter entry that matches every topic.
const Wildcard = "*"

// FilterTopic reports whether topic passes filter. It passes when filter
// contains [Wildcard] or when any dot-separated segment of topic is listed
// in filter.
func FilterTopic(topic string, filter []string) bool {
	if slices.Contains(filter, Wildcard) {
		return true
	}

	for segment := range strings.SplitSeq(topic, ".") {
		if slices.Contains(filter, segment) {
			return true
		}
	}

	return false
}

// FilterLevel reports whether level is at least as severe as filter within
// levels.
//
// A value missing from levels has index -1. A filter that is not a known
// level therefore lets every message through.
func FilterLevel(levels []string, level, filter string) bool {
	return LevelIndex(levels, level) >= LevelIndex(levels, filter)
}

// LevelIndex returns the position of level in levels, or -1.
func LevelIndex(levels []string, level string) int {
	return slices.Index(levels, level)
}
