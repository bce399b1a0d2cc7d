// Package pagetopics implements the "pageTopics" viewer kind: messages are
// grouped into one block per topic, created when the topic is first seen.
// Each block can be collapsed and expanded independently with
// [Viewer.Toggle].
package pagetopics
